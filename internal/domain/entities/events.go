package entities

import "time"

type EventType string

const (
	EventRequestReceived      EventType = "request.received"
	EventRequestApproved      EventType = "request.approved"
	EventStatusUpdated        EventType = "request.status_updated"
	EventStatusChanged        EventType = "request.status_changed"
	EventNotesUpdated         EventType = "request.notes_updated"
	EventPriceUpdated         EventType = "request.price_updated"
	EventPaymentOptionChanged EventType = "request.payment_option_changed"
	EventPaymentIntentCreated EventType = "payment.intent_created"
	EventPaymentCompleted     EventType = "payment.completed"
	EventPaymentFailed        EventType = "payment.failed"
	EventPaymentExpired       EventType = "payment.expired"
)

// NotifiesClient reports whether the event produces a message to the client.
func (t EventType) NotifiesClient() bool {
	switch t {
	case EventRequestReceived, EventRequestApproved, EventStatusUpdated, EventNotesUpdated, EventPaymentCompleted:
		return true
	}
	return false
}

// Event describes something that happened to a request. State changes
// return events instead of performing side effects; the caller dispatches
// them once the change is persisted.
type Event struct {
	Type           EventType     `json:"type"`
	RequestID      string        `json:"request_id"`
	Status         RequestStatus `json:"status"`
	PreviousStatus RequestStatus `json:"previous_status,omitempty"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	Notes          string        `json:"notes,omitempty"`
	PaymentID      string        `json:"payment_id,omitempty"`
	GatewayOrderID string        `json:"gateway_order_id,omitempty"`
	Amount         int64         `json:"amount,omitempty"`
	OccurredAt     time.Time     `json:"occurred_at"`
}

func (r Request) newEvent(t EventType, at time.Time) Event {
	return Event{
		Type:          t,
		RequestID:     r.ID,
		Status:        r.Status,
		PaymentStatus: r.PaymentStatus,
		OccurredAt:    at,
	}
}

// PaymentEvent builds an event for an attempt of this request.
func (r Request) PaymentEvent(t EventType, p PaymentAttempt, at time.Time) Event {
	ev := r.newEvent(t, at)
	ev.PaymentID = p.PaymentID
	ev.GatewayOrderID = p.GatewayOrderID
	ev.Amount = p.Amount
	ev.Notes = p.FailureReason
	return ev
}

// ReceivedEvent is emitted once when the request is submitted.
func (r Request) ReceivedEvent(at time.Time) Event {
	return r.newEvent(EventRequestReceived, at)
}
