package request

import (
	"errors"
	"strings"
	"time"

	"projectease/internal/domain/entities"
	"projectease/internal/usecase"
)

var ErrInvalidPaymentOption = errors.New("invalid payment option")

type GuestInfoRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type CustomProjectRequest struct {
	Name                   string   `json:"name"`
	Description            string   `json:"description"`
	Technologies           []string `json:"technologies"`
	AdditionalRequirements string   `json:"additional_requirements"`
	EstimatedPrice         int64    `json:"estimated_price"`
}

// CreateRequestRequest submits a catalog (`project_id`) or custom
// (`custom_project`) commission. Guests must send `guest_info`.
type CreateRequestRequest struct {
	Type          string                `json:"type" binding:"required,oneof=existing custom"`
	ProjectID     string                `json:"project_id"`
	CustomProject *CustomProjectRequest `json:"custom_project"`
	ClientType    string                `json:"client_type" binding:"required,oneof=registered guest"`
	GuestInfo     *GuestInfoRequest     `json:"guest_info"`
	PaymentOption string                `json:"payment_option"`
}

func (r CreateRequestRequest) ToInput() usecase.CreateRequestInput {
	in := usecase.CreateRequestInput{
		Type:          entities.RequestType(r.Type),
		ProjectID:     strings.TrimSpace(r.ProjectID),
		ClientType:    entities.ClientType(r.ClientType),
		PaymentOption: entities.PaymentOption(strings.TrimSpace(r.PaymentOption)),
	}
	if r.CustomProject != nil {
		in.CustomProject = &entities.CustomProject{
			Name:                   strings.TrimSpace(r.CustomProject.Name),
			Description:            strings.TrimSpace(r.CustomProject.Description),
			Technologies:           r.CustomProject.Technologies,
			AdditionalRequirements: r.CustomProject.AdditionalRequirements,
		}
		in.EstimatedPrice = r.CustomProject.EstimatedPrice
	}
	if r.GuestInfo != nil {
		in.GuestInfo = &entities.GuestInfo{
			Name:    strings.TrimSpace(r.GuestInfo.Name),
			Email:   strings.TrimSpace(r.GuestInfo.Email),
			Contact: strings.TrimSpace(r.GuestInfo.Contact),
		}
	}
	return in
}

// UpdateRequestRequest carries the admin's partial update. Absent fields are
// left untouched.
type UpdateRequestRequest struct {
	Status             *string    `json:"status"`
	AdminNotes         *string    `json:"admin_notes"`
	ActualPrice        *int64     `json:"actual_price"`
	CurrentModule      *string    `json:"current_module"`
	GithubLink         *string    `json:"github_link"`
	ExpectedCompletion *time.Time `json:"expected_completion"`
}

func (r UpdateRequestRequest) ToStatusUpdate() entities.StatusUpdate {
	u := entities.StatusUpdate{
		AdminNotes:         r.AdminNotes,
		ActualPrice:        r.ActualPrice,
		CurrentModule:      r.CurrentModule,
		GithubLink:         r.GithubLink,
		ExpectedCompletion: r.ExpectedCompletion,
	}
	if r.Status != nil {
		s := entities.RequestStatus(strings.TrimSpace(*r.Status))
		u.Status = &s
	}
	return u
}

type UpdatePaymentOptionRequest struct {
	PaymentOption string `json:"payment_option" binding:"required"`
}

func (r UpdatePaymentOptionRequest) ResolveOption() (entities.PaymentOption, error) {
	o := entities.PaymentOption(strings.TrimSpace(r.PaymentOption))
	if !o.Valid() {
		return "", ErrInvalidPaymentOption
	}
	return o, nil
}
