package notification

import (
	"context"

	"projectease/internal/domain/entities"
	"projectease/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// LogNotifier writes notifications to the log. Used when no broker is set.
type LogNotifier struct {
	log *zap.Logger
}

var _ interfaces.INotifier = (*LogNotifier)(nil)

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(_ context.Context, msg entities.Notification) error {
	n.log.Info("notification",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
