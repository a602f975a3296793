package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"projectease/internal/domain/entities"
	"projectease/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateRequestInput carries a new commission. Type and ClientType are
// inferred when empty: a ProjectID means a catalog request, an authenticated
// caller means a registered client.
type CreateRequestInput struct {
	Type           entities.RequestType
	ProjectID      string
	CustomProject  *entities.CustomProject
	EstimatedPrice int64
	ClientType     entities.ClientType
	GuestInfo      *entities.GuestInfo
	PaymentOption  entities.PaymentOption
}

// IRequestUseCase exposes the request lifecycle:
//   - submission by registered clients or guests
//   - listing (own / all)
//   - admin updates (status, notes, price, progress)
//   - payment option choice by the client
type IRequestUseCase interface {
	CreateRequest(ctx context.Context, actor entities.Actor, in CreateRequestInput) (entities.Request, error)
	ListOwn(ctx context.Context, actor entities.Actor) ([]entities.Request, error)
	ListAll(ctx context.Context, actor entities.Actor) ([]entities.Request, error)
	GetByID(ctx context.Context, actor entities.Actor, id string) (entities.Request, error)
	UpdateRequest(ctx context.Context, actor entities.Actor, id string, u entities.StatusUpdate) (entities.Request, error)
	UpdatePaymentOption(ctx context.Context, actor entities.Actor, id string, option entities.PaymentOption) (entities.Request, error)
}

type RequestUseCase struct {
	store      *requestStore
	projects   interfaces.IProjectRepository
	dispatcher *EventDispatcher
	policy     entities.TransitionPolicy
	log        *zap.Logger
	now        func() time.Time
}

var _ IRequestUseCase = (*RequestUseCase)(nil)

func NewRequestUseCase(
	repo interfaces.IRequestRepository,
	projects interfaces.IProjectRepository,
	locker interfaces.ILocker,
	dispatcher *EventDispatcher,
	policy entities.TransitionPolicy,
	log *zap.Logger,
) *RequestUseCase {
	log = log.Named("request.usecase")
	now := func() time.Time { return time.Now().UTC() }
	return &RequestUseCase{
		store:      &requestStore{repo: repo, locker: locker, log: log, now: now},
		projects:   projects,
		dispatcher: dispatcher,
		policy:     policy,
		log:        log,
		now:        now,
	}
}

func (u *RequestUseCase) CreateRequest(ctx context.Context, actor entities.Actor, in CreateRequestInput) (entities.Request, error) {
	now := u.now()
	r := entities.Request{
		ID:            uuid.NewString(),
		Status:        entities.RequestStatusPending,
		PaymentOption: entities.PaymentOptionAdvance,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.PaymentOption != "" {
		if !in.PaymentOption.Valid() {
			return entities.Request{}, fmt.Errorf("%w: invalid payment option %q", entities.ErrValidation, in.PaymentOption)
		}
		r.PaymentOption = in.PaymentOption
	}

	reqType := in.Type
	if reqType == "" {
		if strings.TrimSpace(in.ProjectID) != "" {
			reqType = entities.RequestTypeExisting
		} else if in.CustomProject != nil {
			reqType = entities.RequestTypeCustom
		} else {
			return entities.Request{}, fmt.Errorf("%w: either project id or custom project details are required", entities.ErrValidation)
		}
	}
	r.Type = reqType

	switch reqType {
	case entities.RequestTypeExisting:
		projectID := strings.TrimSpace(in.ProjectID)
		if projectID == "" {
			return entities.Request{}, fmt.Errorf("%w: project id is required", entities.ErrValidation)
		}
		p, err := u.projects.GetByID(ctx, projectID)
		if err != nil {
			return entities.Request{}, err
		}
		if p.ID == "" {
			return entities.Request{}, fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
		}
		r.ProjectID = p.ID
		r.ProjectName = p.Name
		r.EstimatedPrice = p.Price
	case entities.RequestTypeCustom:
		if in.CustomProject == nil {
			return entities.Request{}, fmt.Errorf("%w: custom project name and description are required", entities.ErrValidation)
		}
		cp := *in.CustomProject
		cp.Name = strings.TrimSpace(cp.Name)
		cp.Description = strings.TrimSpace(cp.Description)
		cp.Technologies = append([]string(nil), in.CustomProject.Technologies...)
		r.CustomProject = &cp
		r.ProjectName = cp.Name
		r.EstimatedPrice = in.EstimatedPrice
	}

	clientType := in.ClientType
	if clientType == "" {
		if actor.Authenticated() {
			clientType = entities.ClientTypeRegistered
		} else {
			clientType = entities.ClientTypeGuest
		}
	}
	r.ClientType = clientType
	switch clientType {
	case entities.ClientTypeRegistered:
		if !actor.Authenticated() {
			return entities.Request{}, fmt.Errorf("%w: registered requests need a signed-in user", entities.ErrAuthenticationRequired)
		}
		r.UserID = actor.ID
	case entities.ClientTypeGuest:
		if in.GuestInfo == nil {
			return entities.Request{}, fmt.Errorf("%w: guest information is required", entities.ErrValidation)
		}
		gi := entities.GuestInfo{
			Name:    strings.TrimSpace(in.GuestInfo.Name),
			Email:   strings.TrimSpace(in.GuestInfo.Email),
			Contact: strings.TrimSpace(in.GuestInfo.Contact),
		}
		r.GuestInfo = &gi
	}

	if err := r.Validate(); err != nil {
		return entities.Request{}, err
	}
	r.RecomputePricing()

	created, err := u.store.repo.Create(ctx, r)
	if err != nil {
		u.log.Error("create request failed", zap.String("request_id", r.ID), zap.Error(err))
		return entities.Request{}, err
	}
	u.log.Info("request created",
		zap.String("request_id", created.ID),
		zap.String("type", string(created.Type)),
		zap.String("client_type", string(created.ClientType)),
		zap.Int64("estimated_price", created.EstimatedPrice),
	)

	u.dispatcher.Dispatch(ctx, created, []entities.Event{created.ReceivedEvent(now)})
	return created, nil
}

func (u *RequestUseCase) ListOwn(ctx context.Context, actor entities.Actor) ([]entities.Request, error) {
	if !actor.Authenticated() {
		return nil, entities.ErrAuthenticationRequired
	}
	items, err := u.store.repo.ListByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	return items, nil
}

func (u *RequestUseCase) ListAll(ctx context.Context, actor entities.Actor) ([]entities.Request, error) {
	if !actor.IsAdmin() {
		return nil, entities.ErrAuthorization
	}
	items, err := u.store.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	return items, nil
}

func (u *RequestUseCase) GetByID(ctx context.Context, actor entities.Actor, id string) (entities.Request, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Request{}, ErrInvalidRequestID
	}
	if !actor.Authenticated() {
		return entities.Request{}, entities.ErrAuthenticationRequired
	}
	r, err := u.store.load(ctx, id)
	if err != nil {
		return entities.Request{}, err
	}
	if !r.VisibleTo(actor) {
		return entities.Request{}, entities.ErrAuthorization
	}
	return r, nil
}

func (u *RequestUseCase) UpdateRequest(ctx context.Context, actor entities.Actor, id string, upd entities.StatusUpdate) (entities.Request, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Request{}, ErrInvalidRequestID
	}
	if !actor.IsAdmin() {
		return entities.Request{}, entities.ErrAuthorization
	}

	saved, events, err := u.store.mutate(ctx, id, func(r *entities.Request) (bool, []entities.Event, error) {
		evs, err := r.ApplyStatusUpdate(upd, actor.ID, u.policy, u.now())
		return true, evs, err
	})
	if err != nil {
		u.log.Warn("update request rejected", zap.String("request_id", id), zap.Error(err))
		return entities.Request{}, err
	}
	u.log.Info("request updated",
		zap.String("request_id", saved.ID),
		zap.String("status", string(saved.Status)),
		zap.Int("events", len(events)),
	)

	u.dispatcher.Dispatch(ctx, saved, events)
	return saved, nil
}

func (u *RequestUseCase) UpdatePaymentOption(ctx context.Context, actor entities.Actor, id string, option entities.PaymentOption) (entities.Request, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Request{}, ErrInvalidRequestID
	}
	if !actor.Authenticated() {
		return entities.Request{}, entities.ErrAuthenticationRequired
	}

	saved, events, err := u.store.mutate(ctx, id, func(r *entities.Request) (bool, []entities.Event, error) {
		if !r.VisibleTo(actor) {
			return false, nil, entities.ErrAuthorization
		}
		evs, err := r.UpdatePaymentOption(option, u.now())
		return len(evs) > 0, evs, err
	})
	if err != nil {
		return entities.Request{}, err
	}
	u.log.Info("payment option updated",
		zap.String("request_id", saved.ID),
		zap.String("payment_option", string(saved.PaymentOption)),
	)

	u.dispatcher.Dispatch(ctx, saved, events)
	return saved, nil
}

func sortNewestFirst(items []entities.Request) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
