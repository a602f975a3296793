package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"projectease/internal/domain/entities"
	"projectease/internal/usecase/interfaces"
)

// RequestRepository keeps requests in process memory. It honours the same
// contract as the DynamoDB repository: version compare-and-swap on Update and
// unique gateway order ids across all requests.
type RequestRepository struct {
	mu       sync.RWMutex
	requests map[string]entities.Request
	orders   map[string]string // gateway order id -> request id
	payments map[string]string // payment id -> request id
}

var _ interfaces.IRequestRepository = (*RequestRepository)(nil)

func NewRequestRepository() *RequestRepository {
	return &RequestRepository{
		requests: make(map[string]entities.Request),
		orders:   make(map[string]string),
		payments: make(map[string]string),
	}
}

func (r *RequestRepository) Create(_ context.Context, req entities.Request) (entities.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[req.ID]; ok {
		return entities.Request{}, fmt.Errorf("request %s already exists", req.ID)
	}
	if err := r.checkIndexes(req); err != nil {
		return entities.Request{}, err
	}
	req.Version = 1
	r.store(req)
	return req.Clone(), nil
}

func (r *RequestRepository) GetByID(_ context.Context, id string) (entities.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.get(id), nil
}

func (r *RequestRepository) GetByGatewayOrderID(_ context.Context, orderID string) (entities.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.get(r.orders[orderID]), nil
}

func (r *RequestRepository) GetByPaymentID(_ context.Context, paymentID string) (entities.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.get(r.payments[paymentID]), nil
}

func (r *RequestRepository) ListByUserID(_ context.Context, userID string) ([]entities.Request, error) {
	return r.filter(func(req entities.Request) bool { return req.UserID != "" && req.UserID == userID }), nil
}

func (r *RequestRepository) ListAll(_ context.Context) ([]entities.Request, error) {
	return r.filter(func(entities.Request) bool { return true }), nil
}

func (r *RequestRepository) ListWithPendingAttempts(_ context.Context, olderThan time.Time) ([]entities.Request, error) {
	return r.filter(func(req entities.Request) bool {
		for _, p := range req.Payments {
			if p.Status == entities.AttemptStatusPending && p.CreatedAt.Before(olderThan) {
				return true
			}
		}
		return false
	}), nil
}

func (r *RequestRepository) Update(_ context.Context, req entities.Request) (entities.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.requests[req.ID]
	if !ok || current.Version != req.Version {
		return entities.Request{}, interfaces.ErrConcurrentUpdate
	}
	if err := r.checkIndexes(req); err != nil {
		return entities.Request{}, err
	}
	req.Version++
	r.store(req)
	return req.Clone(), nil
}

func (r *RequestRepository) checkIndexes(req entities.Request) error {
	for _, p := range req.Payments {
		if owner, ok := r.orders[p.GatewayOrderID]; ok && owner != req.ID {
			return fmt.Errorf("%w: gateway order %s", entities.ErrDuplicateAttempt, p.GatewayOrderID)
		}
		if owner, ok := r.payments[p.PaymentID]; ok && owner != req.ID {
			return fmt.Errorf("%w: payment %s", entities.ErrDuplicateAttempt, p.PaymentID)
		}
	}
	return nil
}

func (r *RequestRepository) store(req entities.Request) {
	r.requests[req.ID] = req.Clone()
	for _, p := range req.Payments {
		r.orders[p.GatewayOrderID] = req.ID
		r.payments[p.PaymentID] = req.ID
	}
}

func (r *RequestRepository) get(id string) entities.Request {
	if id == "" {
		return entities.Request{}
	}
	req, ok := r.requests[id]
	if !ok {
		return entities.Request{}
	}
	return req.Clone()
}

func (r *RequestRepository) filter(keep func(entities.Request) bool) []entities.Request {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Request, 0)
	for _, req := range r.requests {
		if keep(req) {
			out = append(out, req.Clone())
		}
	}
	return out
}
