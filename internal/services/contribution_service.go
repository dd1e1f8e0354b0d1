package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"diplomakids/internal/models/db_models"
	"diplomakids/internal/models/request_models"
	"diplomakids/internal/models/response_models"
	"diplomakids/internal/repositories"
	"diplomakids/pkg/utils"
)

const (
	defaultContributionPageSize = 50
	maxPageSize                 = 100
)

type ContributionConfig struct {
	StorageBaseURL string
	UploadMaxBytes int64
}

type ContributionServiceInterface interface {
	// Create opens a payment intent and records the pending contribution with its
	// follow-up tasks. Nothing is stored when the gateway call fails.
	Create(ctx context.Context, request request_models.CreateContributionRequest) (*response_models.ContributionCreated, error)
	ListByChild(ctx context.Context, childID uuid.UUID, limit, offset int) ([]db_models.Contribution, error)
	UploadThankYou(ctx context.Context, familyID, contributionID uuid.UUID, size int64) (*response_models.ThankYouUploaded, error)
	// UploadLimit is the largest accepted video in bytes; 0 means unlimited.
	UploadLimit() int64
}

type ContributionService struct {
	cfg              ContributionConfig
	contributionRepo repositories.ContributionRepository
	childRepo        repositories.ChildRepository
	gateway          PaymentGateway
	log              *zap.Logger
}

func NewContributionService(
	cfg ContributionConfig,
	contributionRepo repositories.ContributionRepository,
	childRepo repositories.ChildRepository,
	gateway PaymentGateway,
	log *zap.Logger,
) ContributionServiceInterface {
	return &ContributionService{
		cfg:              cfg,
		contributionRepo: contributionRepo,
		childRepo:        childRepo,
		gateway:          gateway,
		log:              log,
	}
}

func (s *ContributionService) Create(ctx context.Context, request request_models.CreateContributionRequest) (*response_models.ContributionCreated, error) {
	if request.Amount <= 0 {
		return nil, utils.ErrInvalidAmount
	}
	contributionType := db_models.ContributionType(request.ContributionType)
	if !contributionType.Valid() {
		return nil, fmt.Errorf("%w: %q", utils.ErrInvalidContributionType, request.ContributionType)
	}
	childID, err := parseID(request.ChildID, utils.ErrInvalidInput)
	if err != nil {
		return nil, err
	}
	if _, err := findChild(ctx, s.childRepo, childID); err != nil {
		return nil, err
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, ToMinorUnits(request.Amount), map[string]string{
		"child_id": childID.String(),
		"type":     string(contributionType),
	})
	if err != nil {
		return nil, err
	}

	contribution := &db_models.Contribution{
		ChildID:               childID,
		Amount:                request.Amount,
		ContributionType:      contributionType,
		Message:               request.Message,
		IsAnonymous:           request.IsAnonymous,
		ContributorName:       request.ContributorName,
		ContributorEmail:      strings.TrimSpace(request.ContributorEmail),
		StripePaymentIntentID: intent.ID,
		Status:                db_models.ContributionPending,
	}
	contribution.ID = uuid.New()

	notify, err := NewTask(TaskContributionNotify, ContributionTaskPayload{ContributionID: contribution.ID.String()})
	if err != nil {
		return nil, err
	}
	achievements, err := NewTask(TaskContributionAchievements, ChildTaskPayload{ChildID: childID.String()})
	if err != nil {
		return nil, err
	}

	if err := s.contributionRepo.InsertWithTasks(ctx, contribution, []db_models.OutboxTask{notify, achievements}); err != nil {
		s.log.Error("contribution insert failed, payment intent orphaned",
			zap.String("payment_intent_id", intent.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: insert contribution: %v", utils.ErrDatabaseError, err)
	}

	return &response_models.ContributionCreated{
		ContributionID: contribution.ID,
		ClientSecret:   intent.ClientSecret,
		Amount:         contribution.Amount,
	}, nil
}

func (s *ContributionService) ListByChild(ctx context.Context, childID uuid.UUID, limit, offset int) ([]db_models.Contribution, error) {
	limit, offset = clampPage(limit, offset, defaultContributionPageSize)
	contributions, err := s.contributionRepo.ListByChild(ctx, childID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list contributions: %v", utils.ErrDatabaseError, err)
	}
	return contributions, nil
}

func (s *ContributionService) UploadLimit() int64 {
	return s.cfg.UploadMaxBytes
}

func (s *ContributionService) UploadThankYou(ctx context.Context, familyID, contributionID uuid.UUID, size int64) (*response_models.ThankYouUploaded, error) {
	if size <= 0 {
		return nil, utils.ErrMissingUpload
	}
	if s.cfg.UploadMaxBytes > 0 && size > s.cfg.UploadMaxBytes {
		return nil, fmt.Errorf("%w: video exceeds %d bytes", utils.ErrUploadTooLarge, s.cfg.UploadMaxBytes)
	}

	contribution, err := s.contributionRepo.FindByID(ctx, contributionID)
	if err != nil {
		return nil, fmt.Errorf("%w: find contribution: %v", utils.ErrDatabaseError, err)
	}
	// Another family's contribution looks the same as a missing one.
	if contribution == nil || contribution.Child == nil || contribution.Child.FamilyID != familyID {
		return nil, utils.ErrContributionNotFound
	}

	videoURL := fmt.Sprintf("%s/thank-you/%s.mp4", strings.TrimRight(s.cfg.StorageBaseURL, "/"), contribution.ID)

	var tasks []db_models.OutboxTask
	if contribution.ContributorEmail != "" {
		task, err := NewTask(TaskThankYouEmail, ThankYouEmailPayload{
			To:              contribution.ContributorEmail,
			ChildName:       contribution.Child.FirstName,
			ContributorName: contribution.ContributorName,
			VideoURL:        videoURL,
		})
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := s.contributionRepo.UpdateThankYou(ctx, contribution.ID, videoURL, tasks); err != nil {
		return nil, fmt.Errorf("%w: store thank-you: %v", utils.ErrDatabaseError, err)
	}

	return &response_models.ThankYouUploaded{VideoURL: videoURL}, nil
}

// ThankYouEmailHandler delivers the video link to the contributor.
func ThankYouEmailHandler(mail IMailService) TaskHandler {
	return func(ctx context.Context, raw []byte) error {
		var p ThankYouEmailPayload
		if err := decodePayload(raw, &p); err != nil {
			return err
		}
		return mail.SendThankYouVideo(ctx, p.To, ThankYouNote{
			ChildName:       p.ChildName,
			ContributorName: p.ContributorName,
			VideoURL:        p.VideoURL,
		})
	}
}

func clampPage(limit, offset, fallback int) (int, int) {
	if limit <= 0 {
		limit = fallback
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
