package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"projectease/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/zap"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// preferenceCreator is the part of preference.Client the gateway calls.
type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type MercadoPagoOptions struct {
	AccessToken string
	// NotificationURL is where Mercado Pago posts payment notifications.
	NotificationURL string
	// Mock skips the SDK and returns synthetic orders.
	Mock bool
}

// MercadoPagoGateway opens checkout preferences sized to the amount owed.
type MercadoPagoGateway struct {
	client          preferenceCreator
	notificationURL string
	mockMode        bool
	log             *zap.Logger
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(opts MercadoPagoOptions, log *zap.Logger) (*MercadoPagoGateway, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Mock {
		log.Info("payment gateway mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, log: log}, nil
	}

	if opts.AccessToken == "" {
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(opts.AccessToken)
	if err != nil {
		log.Error("failed creating mercado pago sdk config", zap.Error(err))
		return nil, err
	}
	log.Info("mercado pago client initialized")

	return &MercadoPagoGateway{
		client:          preference.NewClient(cfg),
		notificationURL: opts.NotificationURL,
		log:             log,
	}, nil
}

func (g *MercadoPagoGateway) CreateOrder(ctx context.Context, req interfaces.OrderRequest) (interfaces.GatewayOrder, error) {
	if req.Amount <= 0 {
		return interfaces.GatewayOrder{}, fmt.Errorf("invalid order amount %d", req.Amount)
	}

	if g != nil && g.mockMode {
		id := "order_" + uuid.NewString()
		g.log.Info("mock order created",
			zap.String("gateway_order_id", id),
			zap.String("receipt", req.Receipt),
			zap.Int64("amount", req.Amount),
		)
		return interfaces.GatewayOrder{OrderID: id, CheckoutURL: "https://checkout.mock/" + id}, nil
	}

	if g == nil || g.client == nil {
		return interfaces.GatewayOrder{}, ErrMercadoPagoGatewayNotConfigured
	}

	pref, err := g.buildPreference(req)
	if err != nil {
		return interfaces.GatewayOrder{}, err
	}

	resp, err := g.client.Create(ctx, pref)
	if err != nil {
		g.log.Error("sdk create preference failed", zap.String("receipt", req.Receipt), zap.Error(err))
		return interfaces.GatewayOrder{}, err
	}

	order, err := decodeOrder(resp)
	if err != nil {
		return interfaces.GatewayOrder{}, err
	}
	g.log.Info("order created",
		zap.String("gateway_order_id", order.OrderID),
		zap.String("receipt", req.Receipt),
		zap.Int64("amount", req.Amount),
	)
	return order, nil
}

// buildPreference goes through JSON so the payload keeps the wire names of
// the Mercado Pago API.
func (g *MercadoPagoGateway) buildPreference(req interfaces.OrderRequest) (preference.Request, error) {
	title := req.Description
	if title == "" {
		title = "Project payment " + req.Receipt
	}

	metadata := map[string]any{}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	payload := map[string]any{
		"external_reference": req.Receipt,
		"items": []map[string]any{{
			"id":          req.Receipt,
			"title":       title,
			"quantity":    1,
			"currency_id": req.Currency,
			"unit_price":  float64(req.Amount),
		}},
		"metadata": metadata,
	}
	if g.notificationURL != "" {
		payload["notification_url"] = g.notificationURL
	}
	if !req.ExpiresAt.IsZero() {
		payload["expires"] = true
		payload["expiration_date_to"] = req.ExpiresAt.UTC().Format(time.RFC3339)
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return preference.Request{}, err
	}
	var pref preference.Request
	if err := json.Unmarshal(b, &pref); err != nil {
		return preference.Request{}, err
	}
	return pref, nil
}

func decodeOrder(resp *preference.Response) (interfaces.GatewayOrder, error) {
	if resp == nil {
		return interfaces.GatewayOrder{}, errors.New("empty preference response")
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return interfaces.GatewayOrder{}, err
	}
	var out struct {
		ID        string `json:"id"`
		InitPoint string `json:"init_point"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return interfaces.GatewayOrder{}, err
	}
	if out.ID == "" {
		return interfaces.GatewayOrder{}, errors.New("preference response without id")
	}
	return interfaces.GatewayOrder{OrderID: out.ID, CheckoutURL: out.InitPoint}, nil
}
