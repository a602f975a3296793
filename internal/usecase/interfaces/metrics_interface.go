package interfaces

// IPaymentMetrics records payment flow counters.
type IPaymentMetrics interface {
	IncIntentCreated(kind string)
	// IncConfirmation counts confirmations by source (interactive, webhook)
	// and outcome (applied, duplicate, unknown_order, rejected, failed).
	IncConfirmation(source, outcome string)
	IncSignatureRejected(source string)
	ObserveCapturedAmount(kind string, amount int64)
	AddAttemptsExpired(n int)
}
