package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"projectease/internal/adapter/persistence/memory"
	"projectease/internal/domain/entities"
	mock_interfaces "projectease/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEventDispatcher_Dispatch(t *testing.T) {
	now := time.Now().UTC()
	req := entities.Request{
		ID:            "req-1",
		ProjectName:   "Inventory",
		ClientType:    entities.ClientTypeGuest,
		GuestInfo:     &entities.GuestInfo{Name: "Mia", Email: "mia@example.com"},
		Status:        entities.RequestStatusInProgress,
		CurrentModule: "Auth",
	}

	t.Run("notifies only client facing events and publishes all", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		publisher := mock_interfaces.NewMockIEventPublisher(ctrl)
		d := NewEventDispatcher(notifier, publisher, nil, zap.NewNop())

		events := []entities.Event{
			{Type: entities.EventPriceUpdated, RequestID: req.ID, OccurredAt: now},
			{Type: entities.EventStatusUpdated, RequestID: req.ID, Notes: "module 1 shipped", OccurredAt: now},
		}
		notifier.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, n entities.Notification) error {
				if n.To != "mia@example.com" || n.Subject != "Update - Inventory" {
					t.Fatalf("unexpected notification: %+v", n)
				}
				if !strings.Contains(n.Body, "Status: In-progress") || !strings.Contains(n.Body, "Update Details: module 1 shipped") {
					t.Fatalf("unexpected body: %s", n.Body)
				}
				return nil
			},
		)
		publisher.EXPECT().Publish(gomock.Any(), events).Return(nil)

		d.Dispatch(context.Background(), req, events)
	})

	t.Run("delivery errors are swallowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		publisher := mock_interfaces.NewMockIEventPublisher(ctrl)
		core, logs := observer.New(zap.WarnLevel)
		d := NewEventDispatcher(notifier, publisher, nil, zap.New(core))

		notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("queue down"))
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		d.Dispatch(context.Background(), req, []entities.Event{{Type: entities.EventNotesUpdated, Notes: "x"}})

		failed := logs.FilterMessage("event publish failed").All()
		if len(failed) != 1 {
			t.Fatalf("expected one publish warning, got %d", len(failed))
		}
		if name := failed[0].LoggerName; name != "dispatcher" {
			t.Fatalf("expected logger dispatcher, got %q", name)
		}
	})

	t.Run("registered client resolved through users", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		users := memory.NewUserRepository(entities.User{ID: "u1", Username: "kai", Email: "kai@example.com"})
		d := NewEventDispatcher(notifier, nil, users, zap.NewNop())

		registered := req
		registered.GuestInfo = nil
		registered.ClientType = entities.ClientTypeRegistered
		registered.UserID = "u1"

		notifier.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, n entities.Notification) error {
				if n.To != "kai@example.com" || !strings.HasPrefix(n.Body, "Hi kai,") {
					t.Fatalf("unexpected notification: %+v", n)
				}
				return nil
			},
		)
		d.Dispatch(context.Background(), registered, []entities.Event{{Type: entities.EventPaymentCompleted, Amount: 700}})
	})

	t.Run("unknown user skips notification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		d := NewEventDispatcher(notifier, nil, memory.NewUserRepository(), zap.NewNop())

		orphan := req
		orphan.GuestInfo = nil
		orphan.UserID = "ghost"
		d.Dispatch(context.Background(), orphan, []entities.Event{{Type: entities.EventRequestApproved}})
	})
}
