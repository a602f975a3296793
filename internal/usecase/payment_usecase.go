package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"projectease/internal/domain/entities"
	"projectease/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SourceInteractive = "interactive"
	SourceWebhook     = "webhook"

	OutcomeApplied      = "applied"
	OutcomeDuplicate    = "duplicate"
	OutcomeUnknownOrder = "unknown_order"
	OutcomeRejected     = "rejected"
	OutcomeIgnored      = "ignored"

	WebhookEventCaptured = "payment.captured"
	WebhookEventFailed   = "payment.failed"

	defaultCurrency    = "INR"
	defaultAttemptTTL  = 30 * time.Minute
	attemptExpiryGrace = 5 * time.Minute
)

// PaymentConfig holds the secrets and limits of the payment flow.
type PaymentConfig struct {
	Currency string
	// KeySecret signs "orderId|paymentId" for interactive confirmations.
	KeySecret string
	// WebhookSecret signs raw webhook bodies.
	WebhookSecret string
	// AttemptTTL is how long a pending attempt may wait for a capture. The
	// gateway order is opened with the same deadline.
	AttemptTTL time.Duration
}

// PaymentIntent is what the client needs to open the checkout.
type PaymentIntent struct {
	RequestID      string
	PaymentID      string
	GatewayOrderID string
	CheckoutURL    string
	Amount         int64
	Currency       string
	Kind           entities.PaymentKind
}

// Confirmation is the outcome of an applied (or already applied) capture.
type Confirmation struct {
	Request        entities.Request
	Attempt        entities.PaymentAttempt
	AlreadyApplied bool
}

// WebhookResult reports what a verified webhook did. Every verified event is
// acknowledged, including unknown orders and duplicates.
type WebhookResult struct {
	Event     string
	Outcome   string
	RequestID string
	PaymentID string
}

// PaymentView is one attempt together with the request it belongs to.
type PaymentView struct {
	Request entities.Request
	Attempt entities.PaymentAttempt
}

type webhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID               string `json:"id"`
				OrderID          string `json:"order_id"`
				ErrorDescription string `json:"error_description"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// IPaymentUseCase reconciles gateway payments with request ledgers.
//
// Both confirmation paths (interactive verify and webhook) end in the same
// idempotent ledger command, so a payment confirmed twice counts once.
type IPaymentUseCase interface {
	CreatePaymentIntent(ctx context.Context, actor entities.Actor, requestID string, kind entities.PaymentKind) (PaymentIntent, error)
	ConfirmInteractive(ctx context.Context, actor entities.Actor, orderID, gatewayPaymentID, signature string) (Confirmation, error)
	HandleWebhook(ctx context.Context, rawBody []byte, signature string) (WebhookResult, error)
	GetPaymentStatus(ctx context.Context, actor entities.Actor, paymentID string) (PaymentView, error)
	ExpireStaleAttempts(ctx context.Context) (int, error)
}

type PaymentUseCase struct {
	store      *requestStore
	gateway    interfaces.IPaymentGateway
	dispatcher *EventDispatcher
	metrics    interfaces.IPaymentMetrics
	cfg        PaymentConfig
	log        *zap.Logger
	now        func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(
	repo interfaces.IRequestRepository,
	locker interfaces.ILocker,
	gateway interfaces.IPaymentGateway,
	dispatcher *EventDispatcher,
	metrics interfaces.IPaymentMetrics,
	cfg PaymentConfig,
	log *zap.Logger,
) *PaymentUseCase {
	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}
	if cfg.AttemptTTL <= 0 {
		cfg.AttemptTTL = defaultAttemptTTL
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	log = log.Named("payment.usecase")
	now := func() time.Time { return time.Now().UTC() }
	return &PaymentUseCase{
		store:      &requestStore{repo: repo, locker: locker, log: log, now: now},
		gateway:    gateway,
		dispatcher: dispatcher,
		metrics:    metrics,
		cfg:        cfg,
		log:        log,
		now:        now,
	}
}

// intentAmount is what an attempt of kind must collect right now.
func intentAmount(r entities.Request, kind entities.PaymentKind) (int64, error) {
	switch r.Status {
	case entities.RequestStatusApproved, entities.RequestStatusInProgress, entities.RequestStatusCompleted:
	default:
		return 0, fmt.Errorf("%w: request is %s", entities.ErrInvalidState, r.Status)
	}

	base := r.EffectivePrice()
	if base <= 0 {
		return 0, entities.ErrPriceNotSet
	}
	// One open checkout per request. Two payable orders could both be
	// captured and overpay the request.
	if r.HasPendingAttempts() {
		return 0, fmt.Errorf("%w: a payment is already pending", entities.ErrInvalidState)
	}
	committed := r.TotalPaid() + r.PendingAmount()

	switch kind {
	case entities.PaymentKindAdvance:
		if committed > 0 {
			return 0, fmt.Errorf("%w: advance already collected", entities.ErrInvalidState)
		}
		split, err := entities.SplitAmounts(base, r.PaymentOption)
		if err != nil {
			return 0, err
		}
		return split.Advance, nil
	case entities.PaymentKindFull:
		if committed > 0 {
			return 0, fmt.Errorf("%w: payments already collected, pay the remaining amount", entities.ErrInvalidState)
		}
		return base, nil
	case entities.PaymentKindRemaining:
		owed := base - committed
		if owed <= 0 {
			return 0, entities.ErrNothingOwed
		}
		return owed, nil
	default:
		return 0, fmt.Errorf("%w: unknown payment type %q", entities.ErrValidation, kind)
	}
}

func (u *PaymentUseCase) CreatePaymentIntent(ctx context.Context, actor entities.Actor, requestID string, kind entities.PaymentKind) (PaymentIntent, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return PaymentIntent{}, ErrInvalidRequestID
	}
	if !kind.Valid() {
		return PaymentIntent{}, fmt.Errorf("%w: unknown payment type %q", entities.ErrValidation, kind)
	}
	if !actor.Authenticated() {
		return PaymentIntent{}, entities.ErrAuthenticationRequired
	}
	if u.gateway == nil {
		return PaymentIntent{}, ErrPaymentGatewayNotEnabled
	}

	paymentID := uuid.NewString()
	expiresAt := u.now().Add(u.cfg.AttemptTTL)
	var (
		order       *interfaces.GatewayOrder
		orderAmount int64
		attempt     entities.PaymentAttempt
	)

	saved, events, err := u.store.mutate(ctx, requestID, func(r *entities.Request) (bool, []entities.Event, error) {
		if !r.VisibleTo(actor) {
			return false, nil, entities.ErrAuthorization
		}
		amount, err := intentAmount(*r, kind)
		if err != nil {
			return false, nil, err
		}

		// A retried write reuses the order opened on the first pass.
		if order == nil {
			o, err := u.gateway.CreateOrder(ctx, interfaces.OrderRequest{
				Amount:      amount,
				Currency:    u.cfg.Currency,
				Receipt:     paymentID,
				ExpiresAt:   expiresAt,
				Description: fmt.Sprintf("%s payment for %s", kind, r.DisplayName()),
				Metadata: map[string]string{
					"request_id":   r.ID,
					"payment_id":   paymentID,
					"payment_type": string(kind),
				},
			})
			if err != nil {
				return false, nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
			}
			order, orderAmount = &o, amount
		} else if orderAmount != amount {
			return false, nil, interfaces.ErrConcurrentUpdate
		}

		attempt = entities.PaymentAttempt{
			PaymentID:      paymentID,
			GatewayOrderID: order.OrderID,
			Amount:         amount,
			Currency:       u.cfg.Currency,
			Kind:           kind,
			CreatedAt:      u.now(),
		}
		if err := r.AppendAttempt(attempt); err != nil {
			return false, nil, err
		}
		attempt.Status = entities.AttemptStatusPending
		return true, []entities.Event{r.PaymentEvent(entities.EventPaymentIntentCreated, attempt, u.now())}, nil
	})
	if err != nil {
		u.log.Warn("payment intent rejected",
			zap.String("request_id", requestID),
			zap.String("payment_type", string(kind)),
			zap.Error(err),
		)
		return PaymentIntent{}, err
	}

	u.metrics.IncIntentCreated(string(kind))
	u.log.Info("payment intent created",
		zap.String("request_id", requestID),
		zap.String("payment_id", attempt.PaymentID),
		zap.String("gateway_order_id", attempt.GatewayOrderID),
		zap.Int64("amount", attempt.Amount),
	)
	u.dispatcher.Dispatch(ctx, saved, events)

	return PaymentIntent{
		RequestID:      requestID,
		PaymentID:      attempt.PaymentID,
		GatewayOrderID: attempt.GatewayOrderID,
		CheckoutURL:    order.CheckoutURL,
		Amount:         attempt.Amount,
		Currency:       attempt.Currency,
		Kind:           kind,
	}, nil
}

func (u *PaymentUseCase) ConfirmInteractive(ctx context.Context, actor entities.Actor, orderID, gatewayPaymentID, signature string) (Confirmation, error) {
	orderID = strings.TrimSpace(orderID)
	gatewayPaymentID = strings.TrimSpace(gatewayPaymentID)
	if orderID == "" || gatewayPaymentID == "" || strings.TrimSpace(signature) == "" {
		return Confirmation{}, fmt.Errorf("%w: order id, payment id and signature are required", entities.ErrValidation)
	}
	if !actor.Authenticated() {
		return Confirmation{}, entities.ErrAuthenticationRequired
	}

	if !verifySignature(u.cfg.KeySecret, []byte(orderID+"|"+gatewayPaymentID), signature) {
		u.metrics.IncSignatureRejected(SourceInteractive)
		u.log.Warn("payment signature mismatch",
			zap.String("source", SourceInteractive),
			zap.String("gateway_order_id", orderID),
			zap.String("actor_id", actor.ID),
		)
		return Confirmation{}, entities.ErrSignatureMismatch
	}

	c, err := u.applyPaymentCaptured(ctx, orderID, gatewayPaymentID, signature, SourceInteractive)
	if err != nil {
		return Confirmation{}, err
	}
	return c, nil
}

func (u *PaymentUseCase) HandleWebhook(ctx context.Context, rawBody []byte, signature string) (WebhookResult, error) {
	if !verifySignature(u.cfg.WebhookSecret, rawBody, signature) {
		u.metrics.IncSignatureRejected(SourceWebhook)
		u.log.Warn("payment signature mismatch", zap.String("source", SourceWebhook), zap.Int("body_len", len(rawBody)))
		return WebhookResult{}, entities.ErrSignatureMismatch
	}

	var p webhookPayload
	if err := json.Unmarshal(rawBody, &p); err != nil {
		return WebhookResult{}, fmt.Errorf("%w: webhook body is not valid json", entities.ErrValidation)
	}
	entity := p.Payload.Payment.Entity
	res := WebhookResult{Event: p.Event}

	var err error
	switch p.Event {
	case WebhookEventCaptured:
		var c Confirmation
		// The body signature authenticates the webhook, not the payment.
		c, err = u.applyPaymentCaptured(ctx, entity.OrderID, entity.ID, "", SourceWebhook)
		res.RequestID, res.PaymentID = c.Request.ID, c.Attempt.PaymentID
		res.Outcome = OutcomeApplied
		if c.AlreadyApplied {
			res.Outcome = OutcomeDuplicate
		}
	case WebhookEventFailed:
		var v PaymentView
		var applied bool
		v, applied, err = u.applyPaymentFailed(ctx, entity.OrderID, entity.ErrorDescription)
		res.RequestID, res.PaymentID = v.Request.ID, v.Attempt.PaymentID
		res.Outcome = OutcomeApplied
		if !applied {
			res.Outcome = OutcomeDuplicate
		}
	default:
		res.Outcome = OutcomeIgnored
		u.log.Info("webhook event ignored", zap.String("event", p.Event))
		return res, nil
	}

	switch {
	case err == nil:
	case errors.Is(err, entities.ErrNotFound):
		res.Outcome = OutcomeUnknownOrder
		u.metrics.IncConfirmation(SourceWebhook, OutcomeUnknownOrder)
		u.log.Warn("webhook for unknown order", zap.String("event", p.Event), zap.String("gateway_order_id", entity.OrderID))
	case errors.Is(err, entities.ErrInvalidTransition):
		res.Outcome = OutcomeRejected
		u.metrics.IncConfirmation(SourceWebhook, OutcomeRejected)
		u.log.Warn("webhook transition rejected", zap.String("event", p.Event), zap.String("gateway_order_id", entity.OrderID), zap.Error(err))
	default:
		return WebhookResult{}, err
	}
	return res, nil
}

// applyPaymentCaptured is the single capture path shared by the interactive
// and webhook confirmations.
func (u *PaymentUseCase) applyPaymentCaptured(ctx context.Context, orderID, gatewayPaymentID, signature, source string) (Confirmation, error) {
	owner, err := u.store.repo.GetByGatewayOrderID(ctx, orderID)
	if err != nil {
		return Confirmation{}, err
	}
	if owner.ID == "" {
		if source == SourceInteractive {
			u.metrics.IncConfirmation(source, OutcomeUnknownOrder)
		}
		return Confirmation{}, fmt.Errorf("%w: gateway order %s", ErrPaymentNotFound, orderID)
	}

	var (
		result  entities.LedgerResult
		attempt entities.PaymentAttempt
	)
	saved, events, err := u.store.mutate(ctx, owner.ID, func(r *entities.Request) (bool, []entities.Event, error) {
		now := u.now()
		res, err := r.MarkCompleted(orderID, gatewayPaymentID, signature, now)
		if err != nil {
			return false, nil, err
		}
		result = res
		attempt, _ = r.FindByGatewayOrderID(orderID)
		if res == entities.LedgerAlreadyApplied {
			return false, nil, nil
		}
		return true, []entities.Event{r.PaymentEvent(entities.EventPaymentCompleted, attempt, now)}, nil
	})
	if err != nil {
		if source == SourceInteractive && errors.Is(err, entities.ErrInvalidTransition) {
			u.metrics.IncConfirmation(source, OutcomeRejected)
		}
		return Confirmation{}, err
	}

	if result == entities.LedgerAlreadyApplied {
		u.metrics.IncConfirmation(source, OutcomeDuplicate)
		u.log.Info("payment already confirmed",
			zap.String("source", source),
			zap.String("request_id", saved.ID),
			zap.String("payment_id", attempt.PaymentID),
		)
		return Confirmation{Request: saved, Attempt: attempt, AlreadyApplied: true}, nil
	}

	u.metrics.IncConfirmation(source, OutcomeApplied)
	u.metrics.ObserveCapturedAmount(string(attempt.Kind), attempt.Amount)
	u.log.Info("payment captured",
		zap.String("source", source),
		zap.String("request_id", saved.ID),
		zap.String("payment_id", attempt.PaymentID),
		zap.String("gateway_order_id", orderID),
		zap.Int64("amount", attempt.Amount),
		zap.String("payment_status", string(saved.PaymentStatus)),
	)
	u.dispatcher.Dispatch(ctx, saved, events)
	return Confirmation{Request: saved, Attempt: attempt}, nil
}

func (u *PaymentUseCase) applyPaymentFailed(ctx context.Context, orderID, reason string) (PaymentView, bool, error) {
	owner, err := u.store.repo.GetByGatewayOrderID(ctx, orderID)
	if err != nil {
		return PaymentView{}, false, err
	}
	if owner.ID == "" {
		return PaymentView{}, false, fmt.Errorf("%w: gateway order %s", ErrPaymentNotFound, orderID)
	}

	var (
		result  entities.LedgerResult
		attempt entities.PaymentAttempt
	)
	saved, events, err := u.store.mutate(ctx, owner.ID, func(r *entities.Request) (bool, []entities.Event, error) {
		now := u.now()
		res, err := r.MarkFailed(orderID, reason, now)
		if err != nil {
			return false, nil, err
		}
		result = res
		attempt, _ = r.FindByGatewayOrderID(orderID)
		if res == entities.LedgerAlreadyApplied {
			return false, nil, nil
		}
		return true, []entities.Event{r.PaymentEvent(entities.EventPaymentFailed, attempt, now)}, nil
	})
	if err != nil {
		return PaymentView{}, false, err
	}

	applied := result == entities.LedgerApplied
	if applied {
		u.metrics.IncConfirmation(SourceWebhook, "failed")
		u.log.Info("payment failed",
			zap.String("request_id", saved.ID),
			zap.String("payment_id", attempt.PaymentID),
			zap.String("reason", reason),
		)
		u.dispatcher.Dispatch(ctx, saved, events)
	} else {
		u.metrics.IncConfirmation(SourceWebhook, OutcomeDuplicate)
	}
	return PaymentView{Request: saved, Attempt: attempt}, applied, nil
}

func (u *PaymentUseCase) GetPaymentStatus(ctx context.Context, actor entities.Actor, paymentID string) (PaymentView, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return PaymentView{}, ErrInvalidPaymentID
	}
	if !actor.Authenticated() {
		return PaymentView{}, entities.ErrAuthenticationRequired
	}

	r, err := u.store.repo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return PaymentView{}, err
	}
	if r.ID == "" {
		return PaymentView{}, fmt.Errorf("%w: %s", ErrPaymentNotFound, paymentID)
	}
	if !r.VisibleTo(actor) {
		return PaymentView{}, entities.ErrAuthorization
	}
	a, err := r.FindByPaymentID(paymentID)
	if err != nil {
		return PaymentView{}, fmt.Errorf("%w: %s", ErrPaymentNotFound, paymentID)
	}
	return PaymentView{Request: r, Attempt: a}, nil
}

// ExpireStaleAttempts closes pending attempts older than the attempt TTL.
// Requests are handled one at a time under their lock; a failure on one
// request does not stop the sweep.
func (u *PaymentUseCase) ExpireStaleAttempts(ctx context.Context) (int, error) {
	// The gateway order closes at AttemptTTL; the grace lets captures made
	// right at the deadline land before the attempt is expired.
	cutoff := u.now().Add(-u.cfg.AttemptTTL - attemptExpiryGrace)
	candidates, err := u.store.repo.ListWithPendingAttempts(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	var (
		total int
		errs  []error
	)
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		expired := 0
		saved, events, err := u.store.mutate(ctx, c.ID, func(r *entities.Request) (bool, []entities.Event, error) {
			now := u.now()
			var evs []entities.Event
			for _, p := range r.Payments {
				if p.Status != entities.AttemptStatusPending || !p.CreatedAt.Before(cutoff) {
					continue
				}
				if _, err := r.MarkExpired(p.GatewayOrderID, now); err != nil {
					return false, nil, err
				}
				closed, _ := r.FindByGatewayOrderID(p.GatewayOrderID)
				evs = append(evs, r.PaymentEvent(entities.EventPaymentExpired, closed, now))
			}
			expired = len(evs)
			return expired > 0, evs, nil
		})
		if err != nil {
			u.log.Warn("expire attempts failed", zap.String("request_id", c.ID), zap.Error(err))
			errs = append(errs, fmt.Errorf("request %s: %w", c.ID, err))
			continue
		}
		if expired > 0 {
			total += expired
			u.dispatcher.Dispatch(ctx, saved, events)
		}
	}

	if total > 0 {
		u.metrics.AddAttemptsExpired(total)
		u.log.Info("stale payment attempts expired", zap.Int("count", total))
	}
	return total, errors.Join(errs...)
}

type noopMetrics struct{}

func (noopMetrics) IncIntentCreated(string)             {}
func (noopMetrics) IncConfirmation(string, string)      {}
func (noopMetrics) IncSignatureRejected(string)         {}
func (noopMetrics) ObserveCapturedAmount(string, int64) {}
func (noopMetrics) AddAttemptsExpired(int)              {}
