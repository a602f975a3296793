package entities

import (
	"fmt"
	"strings"
	"time"
)

var allowedTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:    {RequestStatusApproved, RequestStatusRejected},
	RequestStatusApproved:   {RequestStatusInProgress, RequestStatusRejected},
	RequestStatusInProgress: {RequestStatusCompleted},
	RequestStatusRejected:   nil,
	RequestStatusCompleted:  nil,
}

func (s RequestStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

func (s RequestStatus) IsTerminal() bool {
	return s.Valid() && len(allowedTransitions[s]) == 0
}

// CanTransition reports whether from -> to is in the transition table.
func CanTransition(from, to RequestStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StatusUpdate is an admin edit of a request. Nil fields are left untouched.
type StatusUpdate struct {
	Status             *RequestStatus
	AdminNotes         *string
	ActualPrice        *int64
	CurrentModule      *string
	GithubLink         *string
	ExpectedCompletion *time.Time
}

// TransitionPolicy controls how strictly status moves are checked.
type TransitionPolicy struct {
	// Strict rejects moves that are not in the transition table. When false,
	// any known status is accepted.
	Strict bool
}

// ApplyStatusUpdate applies an admin update and returns what happened as
// events. At most one event in the result notifies the client:
//
//  1. the first time the request is set to approved (approval notice)
//  2. a status change after approval was announced (status update)
//  3. new admin notes without a status change (notes update)
//
// Nothing is mutated when an error is returned.
func (r *Request) ApplyStatusUpdate(u StatusUpdate, actorID string, policy TransitionPolicy, now time.Time) ([]Event, error) {
	oldStatus := r.Status
	statusChanged := false

	if u.Status != nil {
		next := *u.Status
		if !next.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
		}
		if next != oldStatus {
			if policy.Strict && !CanTransition(oldStatus, next) {
				return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, oldStatus, next)
			}
			statusChanged = true
		}
	}
	if u.ActualPrice != nil && *u.ActualPrice < 0 {
		return nil, fmt.Errorf("%w: actual price cannot be negative", ErrValidation)
	}

	notes := ""
	if u.AdminNotes != nil {
		notes = strings.TrimSpace(*u.AdminNotes)
	}

	var events []Event
	if u.ActualPrice != nil && *u.ActualPrice > 0 && *u.ActualPrice != r.ActualPrice {
		r.ActualPrice = *u.ActualPrice
		r.RecomputePricing()
		events = append(events, r.newEvent(EventPriceUpdated, now))
	}
	if notes != "" {
		r.AdminNotes = notes
	}
	if u.CurrentModule != nil && strings.TrimSpace(*u.CurrentModule) != "" {
		r.CurrentModule = strings.TrimSpace(*u.CurrentModule)
	}
	if u.GithubLink != nil && strings.TrimSpace(*u.GithubLink) != "" {
		r.GithubLink = strings.TrimSpace(*u.GithubLink)
	}
	if u.ExpectedCompletion != nil {
		r.ExpectedCompletion = cloneTime(u.ExpectedCompletion)
	}

	if statusChanged {
		r.Status = *u.Status
		historyNotes := notes
		if historyNotes == "" {
			historyNotes = fmt.Sprintf("Status changed to %s", r.Status)
		}
		r.StatusHistory = append(r.StatusHistory, StatusHistoryEntry{
			Status:    r.Status,
			Notes:     historyNotes,
			UpdatedBy: actorID,
			UpdatedAt: now,
		})
		stamp := now
		switch r.Status {
		case RequestStatusApproved:
			r.ApprovedAt = &stamp
		case RequestStatusCompleted:
			r.CompletedAt = &stamp
		}
	}

	switch {
	case u.Status != nil && r.Status == RequestStatusApproved && !r.ApprovalEmailSent:
		r.ApprovalEmailSent = true
		ev := r.newEvent(EventRequestApproved, now)
		ev.PreviousStatus = oldStatus
		ev.Notes = notes
		events = append(events, ev)
	case statusChanged && r.ApprovalEmailSent:
		ev := r.newEvent(EventStatusUpdated, now)
		ev.PreviousStatus = oldStatus
		ev.Notes = notes
		events = append(events, ev)
	case statusChanged:
		// Not announced to the client, still part of the audit stream.
		ev := r.newEvent(EventStatusChanged, now)
		ev.PreviousStatus = oldStatus
		ev.Notes = notes
		events = append(events, ev)
	case notes != "":
		ev := r.newEvent(EventNotesUpdated, now)
		ev.Notes = notes
		events = append(events, ev)
	}

	return events, nil
}

// UpdatePaymentOption switches the installment schedule. Only approved
// requests that have not collected anything yet can change it.
func (r *Request) UpdatePaymentOption(option PaymentOption, now time.Time) ([]Event, error) {
	if !option.Valid() {
		return nil, fmt.Errorf("%w: invalid payment option %q", ErrValidation, option)
	}
	if r.Status != RequestStatusApproved {
		return nil, fmt.Errorf("%w: payment option can only change while approved (status %s)", ErrInvalidState, r.Status)
	}
	if r.TotalPaid() > 0 {
		return nil, fmt.Errorf("%w: payments already collected", ErrInvalidState)
	}
	if option == r.PaymentOption {
		return nil, nil
	}

	r.PaymentOption = option
	r.RecomputePricing()
	return []Event{r.newEvent(EventPaymentOptionChanged, now)}, nil
}
