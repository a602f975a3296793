package interfaces

import (
	"context"
	"errors"
	"time"

	"projectease/internal/domain/entities"
)

// ErrConcurrentUpdate is returned by Update when the stored version no longer
// matches the one the caller loaded.
var ErrConcurrentUpdate = errors.New("request was modified concurrently")

// IRequestRepository abstracts persistence for the Request aggregate.
//
// Lookups return a zero Request (empty ID) and a nil error when nothing
// matches. Update is a compare-and-swap on r.Version: it succeeds only if
// the stored version equals r.Version, and stores r.Version+1.
type IRequestRepository interface {
	Create(ctx context.Context, r entities.Request) (entities.Request, error)
	GetByID(ctx context.Context, id string) (entities.Request, error)
	GetByGatewayOrderID(ctx context.Context, orderID string) (entities.Request, error)
	GetByPaymentID(ctx context.Context, paymentID string) (entities.Request, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Request, error)
	ListAll(ctx context.Context) ([]entities.Request, error)
	// ListWithPendingAttempts returns requests holding a pending attempt
	// created before olderThan.
	ListWithPendingAttempts(ctx context.Context, olderThan time.Time) ([]entities.Request, error)
	Update(ctx context.Context, r entities.Request) (entities.Request, error)
}
