package entities

import (
	"fmt"
	"strings"
	"time"
)

// RequestStatus represents the lifecycle of a project request.
//
// Legal moves are listed in transitions.go; rejected and completed are terminal.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusApproved   RequestStatus = "approved"
	RequestStatusRejected   RequestStatus = "rejected"
	RequestStatusInProgress RequestStatus = "in-progress"
	RequestStatusCompleted  RequestStatus = "completed"
)

type RequestType string

const (
	RequestTypeExisting RequestType = "existing"
	RequestTypeCustom   RequestType = "custom"
)

type ClientType string

const (
	ClientTypeRegistered ClientType = "registered"
	ClientTypeGuest      ClientType = "guest"
)

// PaymentOption is the schedule the client picked for paying the total.
type PaymentOption string

const (
	PaymentOptionAdvance PaymentOption = "advance"
	PaymentOptionFull    PaymentOption = "full"
)

func (o PaymentOption) Valid() bool {
	return o == PaymentOptionAdvance || o == PaymentOptionFull
}

// PaymentStatus is the aggregate payment state of a request. It is always
// derived from the ledger, see DerivePaymentStatus.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPartial   PaymentStatus = "partial"
	PaymentStatusCompleted PaymentStatus = "completed"
)

type GuestInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type CustomProject struct {
	Name                   string   `json:"name"`
	Description            string   `json:"description"`
	Technologies           []string `json:"technologies,omitempty"`
	AdditionalRequirements string   `json:"additional_requirements,omitempty"`
}

type StatusHistoryEntry struct {
	Status    RequestStatus `json:"status"`
	Notes     string        `json:"notes"`
	UpdatedBy string        `json:"updated_by"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Request is the commission of a catalog or custom project by a client.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (user_id-index): user_id, only present for registered clients
//   - Version is the optimistic-lock counter checked on every update.
//
// Monetary representation:
//   - whole currency units (int64), never floats.
//   - TotalAmount/AdvanceAmount/RemainingAmount are derived by RecomputePricing.
type Request struct {
	ID            string         `json:"id"`
	Type          RequestType    `json:"type"`
	ProjectID     string         `json:"project_id,omitempty"`
	ProjectName   string         `json:"project_name"`
	CustomProject *CustomProject `json:"custom_project,omitempty"`

	ClientType ClientType `json:"client_type"`
	UserID     string     `json:"user_id,omitempty"`
	GuestInfo  *GuestInfo `json:"guest_info,omitempty"`

	Status             RequestStatus `json:"status"`
	AdminNotes         string        `json:"admin_notes"`
	CurrentModule      string        `json:"current_module"`
	GithubLink         string        `json:"github_link"`
	ExpectedCompletion *time.Time    `json:"expected_completion,omitempty"`

	EstimatedPrice  int64         `json:"estimated_price"`
	ActualPrice     int64         `json:"actual_price"`
	PaymentOption   PaymentOption `json:"payment_option"`
	TotalAmount     int64         `json:"total_amount"`
	AdvanceAmount   int64         `json:"advance_amount"`
	RemainingAmount int64         `json:"remaining_amount"`
	PaymentStatus   PaymentStatus `json:"payment_status"`

	Payments      []PaymentAttempt     `json:"payments"`
	StatusHistory []StatusHistoryEntry `json:"status_history"`

	ApprovalEmailSent bool       `json:"approval_email_sent"`
	ApprovedAt        *time.Time `json:"approved_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	Version           int64      `json:"version"`
}

// EffectivePrice is the amount the client owes in total: the admin-set
// actual price when present, otherwise the estimate taken at creation.
func (r Request) EffectivePrice() int64 {
	if r.ActualPrice > 0 {
		return r.ActualPrice
	}
	return r.EstimatedPrice
}

// RecomputePricing refreshes the derived monetary fields and the payment
// status from EffectivePrice and PaymentOption. A request without a price
// yet carries zero amounts.
func (r *Request) RecomputePricing() {
	split, err := SplitAmounts(r.EffectivePrice(), r.PaymentOption)
	if err != nil {
		r.TotalAmount, r.AdvanceAmount, r.RemainingAmount = 0, 0, 0
	} else {
		r.TotalAmount, r.AdvanceAmount, r.RemainingAmount = split.Total, split.Advance, split.Remaining
	}
	r.PaymentStatus = r.DerivedPaymentStatus()
}

// Validate checks the structural rules of a freshly built request.
func (r Request) Validate() error {
	switch r.Type {
	case RequestTypeExisting:
		if strings.TrimSpace(r.ProjectID) == "" {
			return fmt.Errorf("%w: project id is required for catalog requests", ErrValidation)
		}
	case RequestTypeCustom:
		if r.CustomProject == nil || strings.TrimSpace(r.CustomProject.Name) == "" || strings.TrimSpace(r.CustomProject.Description) == "" {
			return fmt.Errorf("%w: custom project name and description are required", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown request type %q", ErrValidation, r.Type)
	}

	switch r.ClientType {
	case ClientTypeRegistered:
		if strings.TrimSpace(r.UserID) == "" || r.GuestInfo != nil {
			return fmt.Errorf("%w: registered requests need a user and no guest info", ErrValidation)
		}
	case ClientTypeGuest:
		if r.UserID != "" || r.GuestInfo == nil {
			return fmt.Errorf("%w: guest requests need guest info and no user", ErrValidation)
		}
		if strings.TrimSpace(r.GuestInfo.Name) == "" || strings.TrimSpace(r.GuestInfo.Email) == "" {
			return fmt.Errorf("%w: guest name and email are required", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown client type %q", ErrValidation, r.ClientType)
	}

	if r.EstimatedPrice < 0 {
		return fmt.Errorf("%w: estimated price cannot be negative", ErrValidation)
	}
	return nil
}

// OwnedBy reports whether the actor is the registered client of the request.
func (r Request) OwnedBy(a Actor) bool {
	return r.ClientType == ClientTypeRegistered && a.ID != "" && r.UserID == a.ID
}

// VisibleTo reports whether the actor may read or act on the request as its client.
func (r Request) VisibleTo(a Actor) bool {
	return a.IsAdmin() || r.OwnedBy(a)
}

// DisplayName is the project name used in messages.
func (r Request) DisplayName() string {
	if r.ProjectName != "" {
		return r.ProjectName
	}
	if r.CustomProject != nil {
		return r.CustomProject.Name
	}
	return r.ID
}

// Clone returns a copy that shares no slices or pointers with r.
func (r Request) Clone() Request {
	out := r
	if r.CustomProject != nil {
		cp := *r.CustomProject
		cp.Technologies = append([]string(nil), r.CustomProject.Technologies...)
		out.CustomProject = &cp
	}
	if r.GuestInfo != nil {
		gi := *r.GuestInfo
		out.GuestInfo = &gi
	}
	out.ExpectedCompletion = cloneTime(r.ExpectedCompletion)
	out.ApprovedAt = cloneTime(r.ApprovedAt)
	out.CompletedAt = cloneTime(r.CompletedAt)

	if r.Payments != nil {
		out.Payments = make([]PaymentAttempt, len(r.Payments))
		for i, p := range r.Payments {
			out.Payments[i] = p.clone()
		}
	}
	if r.StatusHistory != nil {
		out.StatusHistory = append([]StatusHistoryEntry(nil), r.StatusHistory...)
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
