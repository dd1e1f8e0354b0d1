package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"diplomakids/internal/repositories"
	"diplomakids/pkg/metrics"
	"diplomakids/pkg/utils"
)

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string // empty disables signature checks
	Currency      string
}

type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentGateway is the slice of the payment processor the service uses.
type PaymentGateway interface {
	CreateCustomer(ctx context.Context, email, name string) (string, error)
	CreatePaymentIntent(ctx context.Context, amountMinor int64, metadata map[string]string) (*PaymentIntent, error)
	VerifyWebhook(payload []byte, signatureHeader string) error
}

type stripeGateway struct {
	api *client.API
	cfg StripeConfig
}

func NewStripeGateway(cfg StripeConfig) (PaymentGateway, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("STRIPE_SECRET_KEY is not set")
	}
	if cfg.Currency == "" {
		cfg.Currency = string(stripe.CurrencyUSD)
	}
	sc := &client.API{}
	sc.Init(cfg.SecretKey, nil)
	return &stripeGateway{api: sc, cfg: cfg}, nil
}

func (g *stripeGateway) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.Context = ctx

	customer, err := g.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: create customer: %v", utils.ErrPaymentGateway, err)
	}
	return customer.ID, nil
}

func (g *stripeGateway) CreatePaymentIntent(ctx context.Context, amountMinor int64, metadata map[string]string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(g.cfg.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: create payment intent: %v", utils.ErrPaymentGateway, err)
	}
	return &PaymentIntent{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

func (g *stripeGateway) VerifyWebhook(payload []byte, signatureHeader string) error {
	return verifyStripeSignature(payload, signatureHeader, g.cfg.WebhookSecret)
}

func verifyStripeSignature(payload []byte, signatureHeader, secret string) error {
	if secret == "" {
		return nil
	}
	_, err := webhook.ConstructEventWithOptions(payload, signatureHeader, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return fmt.Errorf("%w: signature: %v", utils.ErrInvalidWebhookPayload, err)
	}
	return nil
}

// ToMinorUnits converts a decimal amount to cents, rounding half away from zero.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

const EventPaymentIntentSucceeded = "payment_intent.succeeded"

type WebhookResult struct {
	Received bool   `json:"received"`
	Type     string `json:"type,omitempty"`
	Applied  bool   `json:"applied"`
}

type WebhookServiceInterface interface {
	HandleStripeEvent(ctx context.Context, payload []byte, signatureHeader string) (*WebhookResult, error)
}

type WebhookService struct {
	gateway          PaymentGateway
	contributionRepo repositories.ContributionRepository
	metrics          *metrics.Metrics
	log              *zap.Logger
}

func NewWebhookService(
	gateway PaymentGateway,
	contributionRepo repositories.ContributionRepository,
	m *metrics.Metrics,
	log *zap.Logger,
) WebhookServiceInterface {
	return &WebhookService{gateway: gateway, contributionRepo: contributionRepo, metrics: m, log: log}
}

func (s *WebhookService) HandleStripeEvent(ctx context.Context, payload []byte, signatureHeader string) (*WebhookResult, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("%w: body is not JSON", utils.ErrInvalidWebhookPayload)
	}
	if err := s.gateway.VerifyWebhook(payload, signatureHeader); err != nil {
		s.metrics.RecordWebhookEvent("unknown", "rejected")
		return nil, err
	}

	event := gjson.GetManyBytes(payload, "type", "data.object.id", "data.object.latest_charge")
	eventType, intentID, chargeID := event[0].String(), event[1].String(), event[2].String()
	if eventType == "" {
		return nil, fmt.Errorf("%w: missing event type", utils.ErrInvalidWebhookPayload)
	}

	result := &WebhookResult{Received: true, Type: eventType}
	if eventType != EventPaymentIntentSucceeded {
		s.metrics.RecordWebhookEvent(eventType, "ignored")
		return result, nil
	}
	if intentID == "" {
		return nil, fmt.Errorf("%w: missing payment intent id", utils.ErrInvalidWebhookPayload)
	}

	contribution, err := s.contributionRepo.MarkSucceeded(ctx, intentID, chargeID)
	if err != nil {
		return nil, fmt.Errorf("%w: reconcile %s: %v", utils.ErrDatabaseError, intentID, err)
	}
	if contribution == nil {
		s.log.Info("webhook for unknown payment intent", zap.String("payment_intent", intentID))
		s.metrics.RecordWebhookEvent(eventType, "unmatched")
		return result, nil
	}

	s.log.Info("payment settled",
		zap.String("payment_intent", intentID),
		zap.String("contribution_id", contribution.ID.String()))
	s.metrics.RecordWebhookEvent(eventType, "applied")
	result.Applied = true
	return result, nil
}
