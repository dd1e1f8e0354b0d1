package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diplomakids/internal/models/db_models"
	"diplomakids/internal/testutil"
	"diplomakids/pkg/utils"
)

func succeededEvent(intentID, chargeID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"object": "event",
		"type": "payment_intent.succeeded",
		"data": {"object": {"id": %q, "object": "payment_intent", "latest_charge": %q}}
	}`, intentID, chargeID))
}

func signStripePayload(payload []byte, secret string, at time.Time) string {
	ts := at.Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.", ts)))
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestToMinorUnits(t *testing.T) {
	assert.EqualValues(t, 1999, ToMinorUnits(19.99))
	assert.EqualValues(t, 100, ToMinorUnits(1))
	assert.EqualValues(t, 1, ToMinorUnits(0.005))
	assert.EqualValues(t, 2550, ToMinorUnits(25.5))
}

func TestWebhookSettlesMatchingContribution(t *testing.T) {
	f := newFixture(t)
	svc := NewWebhookService(&fakeGateway{}, f.contributions, f.metrics, f.log)
	ctx := context.Background()

	family := testutil.SeedFamily(t, f.db, "f@example.com")
	child := testutil.SeedChild(t, f.db, family.ID, "Ada")
	target := &db_models.Contribution{ChildID: child.ID, Amount: 40, ContributionType: db_models.ContributionOneTime, StripePaymentIntentID: "pi_target"}
	bystander := &db_models.Contribution{ChildID: child.ID, Amount: 10, ContributionType: db_models.ContributionOneTime, StripePaymentIntentID: "pi_other"}
	require.NoError(t, f.contributions.InsertWithTasks(ctx, target, nil))
	require.NoError(t, f.contributions.InsertWithTasks(ctx, bystander, nil))

	result, err := svc.HandleStripeEvent(ctx, succeededEvent("pi_target", "ch_9"), "")
	require.NoError(t, err)
	assert.True(t, result.Received)
	assert.True(t, result.Applied)

	var got db_models.Contribution
	require.NoError(t, f.db.First(&got, "id = ?", target.ID).Error)
	assert.Equal(t, db_models.ContributionSucceeded, got.Status)
	assert.Equal(t, "ch_9", got.StripeChargeID)

	var other db_models.Contribution
	require.NoError(t, f.db.First(&other, "id = ?", bystander.ID).Error)
	assert.Equal(t, db_models.ContributionPending, other.Status)
	assert.Empty(t, other.StripeChargeID)

	var kid db_models.Child
	require.NoError(t, f.db.First(&kid, "id = ?", child.ID).Error)
	assert.InDelta(t, 40, kid.CurrentSavings, 0.001)
}

func TestWebhookUnknownIntentIsNoop(t *testing.T) {
	f := newFixture(t)
	svc := NewWebhookService(&fakeGateway{}, f.contributions, f.metrics, f.log)

	result, err := svc.HandleStripeEvent(context.Background(), succeededEvent("pi_"+uuid.NewString(), ""), "")
	require.NoError(t, err)
	assert.True(t, result.Received)
	assert.False(t, result.Applied)
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	f := newFixture(t)
	svc := NewWebhookService(&fakeGateway{}, f.contributions, f.metrics, f.log)

	result, err := svc.HandleStripeEvent(context.Background(), []byte(`{"type":"customer.created","data":{"object":{"id":"cus_1"}}}`), "")
	require.NoError(t, err)
	assert.Equal(t, "customer.created", result.Type)
	assert.False(t, result.Applied)
}

func TestWebhookRejectsMalformedPayloads(t *testing.T) {
	f := newFixture(t)
	svc := NewWebhookService(&fakeGateway{}, f.contributions, f.metrics, f.log)
	ctx := context.Background()

	_, err := svc.HandleStripeEvent(ctx, []byte(`{not json`), "")
	assert.ErrorIs(t, err, utils.ErrInvalidWebhookPayload)

	_, err = svc.HandleStripeEvent(ctx, []byte(`{"data":{}}`), "")
	assert.ErrorIs(t, err, utils.ErrInvalidWebhookPayload)

	_, err = svc.HandleStripeEvent(ctx, []byte(`{"type":"payment_intent.succeeded","data":{"object":{}}}`), "")
	assert.ErrorIs(t, err, utils.ErrInvalidWebhookPayload)
}

func TestWebhookSignatureRejection(t *testing.T) {
	f := newFixture(t)
	gw := &fakeGateway{verifyErr: fmt.Errorf("%w: signature: bad", utils.ErrInvalidWebhookPayload)}
	svc := NewWebhookService(gw, f.contributions, f.metrics, f.log)

	_, err := svc.HandleStripeEvent(context.Background(), succeededEvent("pi_x", ""), "t=1,v1=00")
	assert.ErrorIs(t, err, utils.ErrInvalidWebhookPayload)
}

func TestVerifyStripeSignature(t *testing.T) {
	payload := succeededEvent("pi_sig", "ch_sig")
	secret := "whsec_test"

	assert.NoError(t, verifyStripeSignature(payload, "", ""), "no secret configured accepts unsigned payloads")
	assert.NoError(t, verifyStripeSignature(payload, signStripePayload(payload, secret, time.Now()), secret))

	err := verifyStripeSignature(payload, signStripePayload(payload, "whsec_other", time.Now()), secret)
	assert.ErrorIs(t, err, utils.ErrInvalidWebhookPayload)

	err = verifyStripeSignature(payload, signStripePayload(payload, secret, time.Now().Add(-time.Hour)), secret)
	assert.ErrorIs(t, err, utils.ErrInvalidWebhookPayload)

	err = verifyStripeSignature(payload, "", secret)
	assert.ErrorIs(t, err, utils.ErrInvalidWebhookPayload)
}

func TestNewStripeGatewayRequiresKey(t *testing.T) {
	_, err := NewStripeGateway(StripeConfig{})
	assert.Error(t, err)

	gw, err := NewStripeGateway(StripeConfig{SecretKey: "sk_test_123"})
	require.NoError(t, err)
	assert.NotNil(t, gw)
}
