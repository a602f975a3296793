package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"projectease/internal/adapter/persistence/memory"
	"projectease/internal/domain/entities"
	"projectease/internal/infrastructure/lock"
	mock_interfaces "projectease/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var (
	admin  = entities.Actor{ID: "admin-1", Role: entities.RoleAdmin}
	client = entities.Actor{ID: "user-1", Role: entities.RoleUser}
	other  = entities.Actor{ID: "user-2", Role: entities.RoleUser}
)

type testEnv struct {
	repo      *memory.RequestRepository
	projects  *memory.ProjectRepository
	users     *memory.UserRepository
	notifier  *mock_interfaces.MockINotifier
	publisher *mock_interfaces.MockIEventPublisher
	requests  *RequestUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	env := &testEnv{
		repo:      memory.NewRequestRepository(),
		projects:  memory.NewProjectRepository(entities.Project{ID: "proj-1", Name: "Smart Attendance", Price: 10000}),
		users:     memory.NewUserRepository(entities.User{ID: "user-1", Username: "asha", Email: "asha@example.com"}),
		notifier:  mock_interfaces.NewMockINotifier(ctrl),
		publisher: mock_interfaces.NewMockIEventPublisher(ctrl),
	}
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	dispatcher := NewEventDispatcher(env.notifier, env.publisher, env.users, zap.NewNop())
	env.requests = NewRequestUseCase(env.repo, env.projects, lock.NewLocalLocker(), dispatcher, entities.TransitionPolicy{Strict: true}, zap.NewNop())
	return env
}

// seed stores a request directly, bypassing the creation notice.
func (e *testEnv) seed(t *testing.T, status entities.RequestStatus, price int64) entities.Request {
	t.Helper()
	r := entities.Request{
		ID:             "req-" + string(status),
		Type:           entities.RequestTypeExisting,
		ProjectID:      "proj-1",
		ProjectName:    "Smart Attendance",
		ClientType:     entities.ClientTypeRegistered,
		UserID:         client.ID,
		Status:         status,
		EstimatedPrice: price,
		PaymentOption:  entities.PaymentOptionAdvance,
		CreatedAt:      time.Now().UTC(),
	}
	r.RecomputePricing()
	created, err := e.repo.Create(context.Background(), r)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return created
}

func TestRequestUseCase_CreateRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("catalog request by registered client", func(t *testing.T) {
		env := newTestEnv(t)
		env.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, n entities.Notification) error {
				if n.To != "asha@example.com" || n.Subject != "Project Request Received - Smart Attendance" {
					t.Fatalf("unexpected notification: %+v", n)
				}
				return nil
			},
		)

		r, err := env.requests.CreateRequest(ctx, client, CreateRequestInput{ProjectID: "proj-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Type != entities.RequestTypeExisting || r.ClientType != entities.ClientTypeRegistered || r.UserID != client.ID {
			t.Fatalf("unexpected request: %+v", r)
		}
		if r.Status != entities.RequestStatusPending || r.EstimatedPrice != 10000 || r.AdvanceAmount != 7000 || r.RemainingAmount != 3000 {
			t.Fatalf("unexpected pricing: %+v", r)
		}
		if r.PaymentStatus != entities.PaymentStatusPending || r.Version != 1 {
			t.Fatalf("unexpected payment status/version: %s %d", r.PaymentStatus, r.Version)
		}
	})

	t.Run("custom request by guest", func(t *testing.T) {
		env := newTestEnv(t)
		env.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, n entities.Notification) error {
				if n.To != "guest@example.com" || n.Name != "Ravi" {
					t.Fatalf("unexpected recipient: %+v", n)
				}
				return nil
			},
		)

		r, err := env.requests.CreateRequest(ctx, entities.Actor{}, CreateRequestInput{
			CustomProject:  &entities.CustomProject{Name: " Chat bot ", Description: "support bot"},
			EstimatedPrice: 5000,
			GuestInfo:      &entities.GuestInfo{Name: "Ravi", Email: "guest@example.com"},
			PaymentOption:  entities.PaymentOptionFull,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.ClientType != entities.ClientTypeGuest || r.ProjectName != "Chat bot" || r.AdvanceAmount != 5000 {
			t.Fatalf("unexpected request: %+v", r)
		}
	})

	t.Run("notification failure does not fail creation", func(t *testing.T) {
		env := newTestEnv(t)
		env.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

		if _, err := env.requests.CreateRequest(ctx, client, CreateRequestInput{ProjectID: "proj-1"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("validation errors", func(t *testing.T) {
		env := newTestEnv(t)

		cases := []struct {
			name  string
			actor entities.Actor
			in    CreateRequestInput
			want  error
		}{
			{name: "nothing requested", actor: client, in: CreateRequestInput{}, want: entities.ErrValidation},
			{name: "unknown project", actor: client, in: CreateRequestInput{ProjectID: "nope"}, want: ErrProjectNotFound},
			{name: "guest without info", actor: entities.Actor{}, in: CreateRequestInput{ProjectID: "proj-1"}, want: entities.ErrValidation},
			{name: "registered without login", actor: entities.Actor{}, in: CreateRequestInput{ProjectID: "proj-1", ClientType: entities.ClientTypeRegistered}, want: entities.ErrAuthenticationRequired},
			{name: "custom without description", actor: client, in: CreateRequestInput{CustomProject: &entities.CustomProject{Name: "x"}}, want: entities.ErrValidation},
			{name: "bad payment option", actor: client, in: CreateRequestInput{ProjectID: "proj-1", PaymentOption: "weekly"}, want: entities.ErrValidation},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := env.requests.CreateRequest(ctx, tc.actor, tc.in)
				if !errors.Is(err, tc.want) {
					t.Fatalf("expected %v, got %v", tc.want, err)
				}
			})
		}
	})
}

func TestRequestUseCase_Reads(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seeded := env.seed(t, entities.RequestStatusPending, 10000)

	t.Run("owner can read", func(t *testing.T) {
		r, err := env.requests.GetByID(ctx, client, seeded.ID)
		if err != nil || r.ID != seeded.ID {
			t.Fatalf("unexpected result: %v %v", r.ID, err)
		}
	})

	t.Run("admin can read", func(t *testing.T) {
		if _, err := env.requests.GetByID(ctx, admin, seeded.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("other user cannot read", func(t *testing.T) {
		if _, err := env.requests.GetByID(ctx, other, seeded.ID); !errors.Is(err, entities.ErrAuthorization) {
			t.Fatalf("expected ErrAuthorization, got %v", err)
		}
	})

	t.Run("missing request", func(t *testing.T) {
		_, err := env.requests.GetByID(ctx, admin, "missing")
		if !errors.Is(err, ErrRequestNotFound) || !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected ErrRequestNotFound, got %v", err)
		}
	})

	t.Run("list all is admin only", func(t *testing.T) {
		if _, err := env.requests.ListAll(ctx, client); !errors.Is(err, entities.ErrAuthorization) {
			t.Fatalf("expected ErrAuthorization, got %v", err)
		}
		items, err := env.requests.ListAll(ctx, admin)
		if err != nil || len(items) != 1 {
			t.Fatalf("unexpected list: %d %v", len(items), err)
		}
	})

	t.Run("list own newest first", func(t *testing.T) {
		older := seeded.Clone()
		older.ID = "req-older"
		older.CreatedAt = seeded.CreatedAt.Add(-time.Hour)
		_, _ = env.repo.Create(ctx, older)

		items, err := env.requests.ListOwn(ctx, client)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 2 || items[0].ID != seeded.ID || items[1].ID != "req-older" {
			t.Fatalf("unexpected order: %+v", items)
		}
		if _, err := env.requests.ListOwn(ctx, entities.Actor{}); !errors.Is(err, entities.ErrAuthenticationRequired) {
			t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
		}
	})
}

func TestRequestUseCase_UpdateRequest(t *testing.T) {
	ctx := context.Background()
	approved := entities.RequestStatusApproved

	t.Run("admin only", func(t *testing.T) {
		env := newTestEnv(t)
		r := env.seed(t, entities.RequestStatusPending, 10000)
		_, err := env.requests.UpdateRequest(ctx, client, r.ID, entities.StatusUpdate{Status: &approved})
		if !errors.Is(err, entities.ErrAuthorization) {
			t.Fatalf("expected ErrAuthorization, got %v", err)
		}
	})

	t.Run("approval notice sent once", func(t *testing.T) {
		env := newTestEnv(t)
		r := env.seed(t, entities.RequestStatusPending, 10000)
		env.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, n entities.Notification) error {
				if n.Subject != "Project Approved - Smart Attendance" {
					t.Fatalf("unexpected subject %q", n.Subject)
				}
				return nil
			},
		).Times(1)

		saved, err := env.requests.UpdateRequest(ctx, admin, r.ID, entities.StatusUpdate{Status: &approved})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !saved.ApprovalEmailSent || saved.ApprovedAt == nil || saved.Version != 2 {
			t.Fatalf("unexpected request: %+v", saved)
		}

		saved, err = env.requests.UpdateRequest(ctx, admin, r.ID, entities.StatusUpdate{Status: &approved})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(saved.StatusHistory) != 1 {
			t.Fatalf("expected single history entry, got %d", len(saved.StatusHistory))
		}
	})

	t.Run("illegal transition", func(t *testing.T) {
		env := newTestEnv(t)
		r := env.seed(t, entities.RequestStatusPending, 10000)
		completed := entities.RequestStatusCompleted
		_, err := env.requests.UpdateRequest(ctx, admin, r.ID, entities.StatusUpdate{Status: &completed})
		if !errors.Is(err, entities.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		stored, _ := env.repo.GetByID(ctx, r.ID)
		if stored.Status != entities.RequestStatusPending || stored.Version != r.Version {
			t.Fatalf("request changed on rejected update")
		}
	})
}

func TestRequestUseCase_UpdatePaymentOption(t *testing.T) {
	ctx := context.Background()

	t.Run("pending request", func(t *testing.T) {
		env := newTestEnv(t)
		r := env.seed(t, entities.RequestStatusPending, 10000)
		_, err := env.requests.UpdatePaymentOption(ctx, client, r.ID, entities.PaymentOptionFull)
		if !errors.Is(err, entities.ErrInvalidState) {
			t.Fatalf("expected ErrInvalidState, got %v", err)
		}
	})

	t.Run("other user", func(t *testing.T) {
		env := newTestEnv(t)
		r := env.seed(t, entities.RequestStatusApproved, 10000)
		_, err := env.requests.UpdatePaymentOption(ctx, other, r.ID, entities.PaymentOptionFull)
		if !errors.Is(err, entities.ErrAuthorization) {
			t.Fatalf("expected ErrAuthorization, got %v", err)
		}
	})

	t.Run("owner switches to full", func(t *testing.T) {
		env := newTestEnv(t)
		r := env.seed(t, entities.RequestStatusApproved, 10000)
		saved, err := env.requests.UpdatePaymentOption(ctx, client, r.ID, entities.PaymentOptionFull)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved.PaymentOption != entities.PaymentOptionFull || saved.AdvanceAmount != 10000 || saved.RemainingAmount != 0 {
			t.Fatalf("unexpected request: %+v", saved)
		}
	})
}
