package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"diplomakids/internal/repositories"
	"diplomakids/internal/testutil"
	"diplomakids/pkg/metrics"
	"diplomakids/pkg/utils"
)

type intentCall struct {
	amountMinor int64
	metadata    map[string]string
}

type fakeGateway struct {
	mu        sync.Mutex
	intents   []intentCall
	customers []string
	failWith  error
	verifyErr error
}

func (g *fakeGateway) CreateCustomer(_ context.Context, email, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failWith != nil {
		return "", g.failWith
	}
	g.customers = append(g.customers, email)
	return "cus_" + email, nil
}

func (g *fakeGateway) CreatePaymentIntent(_ context.Context, amountMinor int64, metadata map[string]string) (*PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failWith != nil {
		return nil, g.failWith
	}
	g.intents = append(g.intents, intentCall{amountMinor: amountMinor, metadata: metadata})
	id := fmt.Sprintf("pi_test_%d", len(g.intents))
	return &PaymentIntent{ID: id, ClientSecret: id + "_secret"}, nil
}

func (g *fakeGateway) VerifyWebhook([]byte, string) error { return g.verifyErr }

type sentMail struct {
	to, subject, html, text string
}

type recordingTransport struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (r *recordingTransport) Send(_ context.Context, to, subject, html, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, sentMail{to: to, subject: subject, html: html, text: text})
	return nil
}

var errGatewayDown = errors.Join(utils.ErrPaymentGateway, errors.New("connection refused"))

// fixture wires the real repositories against an in-memory database.
type fixture struct {
	db            *gorm.DB
	families      repositories.FamilyRepository
	children      repositories.ChildRepository
	contributions repositories.ContributionRepository
	milestones    repositories.MilestoneRepository
	connections   repositories.ConnectionRepository
	achievements  repositories.AchievementRepository
	outbox        repositories.OutboxRepository
	notifications repositories.NotificationRepository
	metrics       *metrics.Metrics
	log           *zap.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	return &fixture{
		db:            db,
		families:      repositories.NewFamilyRepository(db),
		children:      repositories.NewChildRepository(db),
		contributions: repositories.NewContributionRepository(db),
		milestones:    repositories.NewMilestoneRepository(db),
		connections:   repositories.NewConnectionRepository(db),
		achievements:  repositories.NewAchievementRepository(db),
		outbox:        repositories.NewOutboxRepository(db),
		notifications: repositories.NewNotificationRepository(db),
		metrics:       metrics.New(),
		log:           zap.NewNop(),
	}
}

func (f *fixture) achievementService() AchievementServiceInterface {
	return NewAchievementService(f.achievements, f.contributions, f.milestones, f.metrics, f.log)
}
