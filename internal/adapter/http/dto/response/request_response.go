package response

import (
	"time"

	"projectease/internal/domain/entities"
)

type GuestInfoResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact,omitempty"`
}

type CustomProjectResponse struct {
	Name                   string   `json:"name"`
	Description            string   `json:"description"`
	Technologies           []string `json:"technologies,omitempty"`
	AdditionalRequirements string   `json:"additional_requirements,omitempty"`
}

type StatusHistoryResponse struct {
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
	UpdatedBy string    `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RequestResponse struct {
	ID            string                 `json:"id"`
	Type          string                 `json:"type"`
	ProjectID     string                 `json:"project_id,omitempty"`
	ProjectName   string                 `json:"project_name"`
	CustomProject *CustomProjectResponse `json:"custom_project,omitempty"`
	ClientType    string                 `json:"client_type"`
	UserID        string                 `json:"user_id,omitempty"`
	GuestInfo     *GuestInfoResponse     `json:"guest_info,omitempty"`

	Status             string     `json:"status"`
	AdminNotes         string     `json:"admin_notes"`
	CurrentModule      string     `json:"current_module"`
	GithubLink         string     `json:"github_link"`
	ExpectedCompletion *time.Time `json:"expected_completion,omitempty"`

	EstimatedPrice  int64  `json:"estimated_price"`
	ActualPrice     int64  `json:"actual_price"`
	PaymentOption   string `json:"payment_option"`
	TotalAmount     int64  `json:"total_amount"`
	AdvanceAmount   int64  `json:"advance_amount"`
	RemainingAmount int64  `json:"remaining_amount"`
	PaymentStatus   string `json:"payment_status"`
	TotalPaid       int64  `json:"total_paid"`
	Outstanding     int64  `json:"outstanding"`

	Payments      []PaymentAttemptResponse `json:"payments"`
	StatusHistory []StatusHistoryResponse  `json:"status_history"`

	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromRequest(r entities.Request) RequestResponse {
	out := RequestResponse{
		ID:                 r.ID,
		Type:               string(r.Type),
		ProjectID:          r.ProjectID,
		ProjectName:        r.ProjectName,
		ClientType:         string(r.ClientType),
		UserID:             r.UserID,
		Status:             string(r.Status),
		AdminNotes:         r.AdminNotes,
		CurrentModule:      r.CurrentModule,
		GithubLink:         r.GithubLink,
		ExpectedCompletion: r.ExpectedCompletion,
		EstimatedPrice:     r.EstimatedPrice,
		ActualPrice:        r.ActualPrice,
		PaymentOption:      string(r.PaymentOption),
		TotalAmount:        r.TotalAmount,
		AdvanceAmount:      r.AdvanceAmount,
		RemainingAmount:    r.RemainingAmount,
		PaymentStatus:      string(r.PaymentStatus),
		TotalPaid:          r.TotalPaid(),
		Outstanding:        r.Outstanding(),
		Payments:           make([]PaymentAttemptResponse, 0, len(r.Payments)),
		StatusHistory:      make([]StatusHistoryResponse, 0, len(r.StatusHistory)),
		ApprovedAt:         r.ApprovedAt,
		CompletedAt:        r.CompletedAt,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	if r.CustomProject != nil {
		out.CustomProject = &CustomProjectResponse{
			Name:                   r.CustomProject.Name,
			Description:            r.CustomProject.Description,
			Technologies:           r.CustomProject.Technologies,
			AdditionalRequirements: r.CustomProject.AdditionalRequirements,
		}
	}
	if r.GuestInfo != nil {
		out.GuestInfo = &GuestInfoResponse{Name: r.GuestInfo.Name, Email: r.GuestInfo.Email, Contact: r.GuestInfo.Contact}
	}
	for _, p := range r.Payments {
		out.Payments = append(out.Payments, FromPaymentAttempt(p))
	}
	for _, h := range r.StatusHistory {
		out.StatusHistory = append(out.StatusHistory, StatusHistoryResponse{
			Status:    string(h.Status),
			Notes:     h.Notes,
			UpdatedBy: h.UpdatedBy,
			UpdatedAt: h.UpdatedAt,
		})
	}
	return out
}

func FromRequests(rs []entities.Request) []RequestResponse {
	out := make([]RequestResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromRequest(r))
	}
	return out
}
