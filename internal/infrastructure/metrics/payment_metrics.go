package metrics

import (
	"projectease/internal/usecase/interfaces"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type paymentMetrics struct {
	intentsCreated    *prometheus.CounterVec
	confirmations     *prometheus.CounterVec
	signatureRejected *prometheus.CounterVec
	capturedAmount    *prometheus.HistogramVec
	attemptsExpired   prometheus.Counter
}

// NewPaymentMetrics registers the payment collectors on registry.
func NewPaymentMetrics(registry prometheus.Registerer) interfaces.IPaymentMetrics {
	factory := promauto.With(registry)

	return &paymentMetrics{
		intentsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_intents_created_total",
				Help: "The total number of payment intents created",
			},
			[]string{"kind"},
		),
		confirmations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_confirmations_total",
				Help: "Payment confirmations by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		signatureRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_signature_rejected_total",
				Help: "Confirmations rejected for a bad signature",
			},
			[]string{"source"},
		),
		capturedAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_captured_amount",
				Help:    "Captured payment amounts in whole currency units",
				Buckets: prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"kind"},
		),
		attemptsExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "payment_attempts_expired_total",
			Help: "Pending payment attempts closed by the expiry sweep",
		}),
	}
}

func (m *paymentMetrics) IncIntentCreated(kind string) {
	m.intentsCreated.WithLabelValues(kind).Inc()
}

func (m *paymentMetrics) IncConfirmation(source, outcome string) {
	m.confirmations.WithLabelValues(source, outcome).Inc()
}

func (m *paymentMetrics) IncSignatureRejected(source string) {
	m.signatureRejected.WithLabelValues(source).Inc()
}

func (m *paymentMetrics) ObserveCapturedAmount(kind string, amount int64) {
	m.capturedAmount.WithLabelValues(kind).Observe(float64(amount))
}

func (m *paymentMetrics) AddAttemptsExpired(n int) {
	if n > 0 {
		m.attemptsExpired.Add(float64(n))
	}
}
