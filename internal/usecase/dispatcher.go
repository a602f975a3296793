package usecase

import (
	"context"
	"time"

	"projectease/internal/domain/entities"
	"projectease/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const defaultDispatchTimeout = 10 * time.Second

// EventDispatcher turns committed domain events into client notifications and
// stream messages. Delivery is best-effort: failures are logged and never
// reach the caller, and the request state is already persisted.
type EventDispatcher struct {
	notifier  interfaces.INotifier
	publisher interfaces.IEventPublisher
	users     interfaces.IUserRepository
	log       *zap.Logger
	timeout   time.Duration
}

func NewEventDispatcher(notifier interfaces.INotifier, publisher interfaces.IEventPublisher, users interfaces.IUserRepository, log *zap.Logger) *EventDispatcher {
	return &EventDispatcher{
		notifier:  notifier,
		publisher: publisher,
		users:     users,
		log:       log.Named("dispatcher"),
		timeout:   defaultDispatchTimeout,
	}
}

// Dispatch must be called after the request lock is released.
func (d *EventDispatcher) Dispatch(ctx context.Context, r entities.Request, events []entities.Event) {
	if d == nil || len(events) == 0 {
		return
	}
	// The HTTP request may be finished by now; delivery keeps its own deadline.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	if d.notifier != nil {
		d.notify(ctx, r, events)
	}
	if d.publisher != nil {
		if err := d.publisher.Publish(ctx, events); err != nil {
			d.log.Warn("event publish failed",
				zap.String("request_id", r.ID),
				zap.Int("events", len(events)),
				zap.Error(err),
			)
		}
	}
}

func (d *EventDispatcher) notify(ctx context.Context, r entities.Request, events []entities.Event) {
	var (
		resolved    bool
		email, name string
	)
	for _, ev := range events {
		if !ev.Type.NotifiesClient() {
			continue
		}
		if !resolved {
			email, name = d.recipient(ctx, r)
			resolved = true
		}
		if email == "" {
			d.log.Warn("no recipient for notification",
				zap.String("request_id", r.ID),
				zap.String("event", string(ev.Type)),
			)
			return
		}

		subject, body, ok := renderNotification(ev, r, name)
		if !ok {
			continue
		}
		n := entities.Notification{To: email, Name: name, Subject: subject, Body: body}
		if err := d.notifier.Send(ctx, n); err != nil {
			d.log.Warn("notification failed",
				zap.String("request_id", r.ID),
				zap.String("event", string(ev.Type)),
				zap.Error(err),
			)
			continue
		}
		d.log.Info("notification sent",
			zap.String("request_id", r.ID),
			zap.String("event", string(ev.Type)),
		)
	}
}

func (d *EventDispatcher) recipient(ctx context.Context, r entities.Request) (email, name string) {
	if r.GuestInfo != nil {
		return r.GuestInfo.Email, r.GuestInfo.Name
	}
	if r.UserID == "" || d.users == nil {
		return "", ""
	}
	u, err := d.users.GetByID(ctx, r.UserID)
	if err != nil {
		d.log.Warn("recipient lookup failed", zap.String("user_id", r.UserID), zap.Error(err))
		return "", ""
	}
	return u.Email, u.Username
}
