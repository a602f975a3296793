package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"projectease/internal/domain/entities"
	"projectease/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const maxUpdateRetries = 3

// mutation edits a working copy of a request. Returning persist=false skips
// the write (no-op commands such as a repeated confirmation).
type mutation func(r *entities.Request) (persist bool, events []entities.Event, err error)

// requestStore runs every read-modify-write of a Request under the per-request
// lock and a version compare-and-swap.
type requestStore struct {
	repo   interfaces.IRequestRepository
	locker interfaces.ILocker
	log    *zap.Logger
	now    func() time.Time
}

func (s *requestStore) load(ctx context.Context, id string) (entities.Request, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Request{}, err
	}
	if r.ID == "" {
		return entities.Request{}, fmt.Errorf("%w: %s", ErrRequestNotFound, id)
	}
	return r, nil
}

func (s *requestStore) mutate(ctx context.Context, id string, fn mutation) (entities.Request, []entities.Event, error) {
	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, "request:"+id)
		if err != nil {
			return entities.Request{}, nil, fmt.Errorf("acquire request lock: %w", err)
		}
		defer unlock()
	}

	var lastErr error
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		current, err := s.load(ctx, id)
		if err != nil {
			return entities.Request{}, nil, err
		}

		working := current.Clone()
		persist, events, err := fn(&working)
		if err != nil {
			return current, nil, err
		}
		if !persist {
			return current, events, nil
		}

		working.UpdatedAt = s.now()
		saved, err := s.repo.Update(ctx, working)
		if err == nil {
			return saved, events, nil
		}
		if !errors.Is(err, interfaces.ErrConcurrentUpdate) {
			return entities.Request{}, nil, err
		}
		s.log.Warn("concurrent request update, retrying",
			zap.String("request_id", id),
			zap.Int64("version", current.Version),
			zap.Int("attempt", attempt+1),
		)
		lastErr = err
	}
	return entities.Request{}, nil, lastErr
}
