package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"diplomakids/internal/models/db_models"
	"diplomakids/internal/repositories"
	"diplomakids/pkg/utils"
)

const (
	notificationListLimit    = 50
	NotificationContribution = "contribution"
)

type NotificationServiceInterface interface {
	// NotifyContribution records an in-app notification for the receiving family
	// and emails them. An unknown contribution is ignored.
	NotifyContribution(ctx context.Context, contributionID uuid.UUID) error
	List(ctx context.Context, familyID uuid.UUID, unreadOnly bool) ([]db_models.Notification, error)
	MarkRead(ctx context.Context, familyID, notificationID uuid.UUID) (bool, error)
}

type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	contributionRepo repositories.ContributionRepository
	mail             IMailService
	log              *zap.Logger
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	contributionRepo repositories.ContributionRepository,
	mail IMailService,
	log *zap.Logger,
) NotificationServiceInterface {
	return &NotificationService{
		notificationRepo: notificationRepo,
		contributionRepo: contributionRepo,
		mail:             mail,
		log:              log,
	}
}

func (s *NotificationService) NotifyContribution(ctx context.Context, contributionID uuid.UUID) error {
	contribution, err := s.contributionRepo.FindByID(ctx, contributionID)
	if err != nil {
		return fmt.Errorf("%w: find contribution: %v", utils.ErrDatabaseError, err)
	}
	if contribution == nil || contribution.Child == nil || contribution.Child.Family == nil {
		s.log.Warn("contribution notification skipped", zap.String("contribution_id", contributionID.String()))
		return nil
	}

	child := contribution.Child
	family := child.Family

	data, err := json.Marshal(map[string]string{"contribution_id": contribution.ID.String()})
	if err != nil {
		return err
	}
	sourceKey := db_models.ContributionSourceKey(contribution.ID)
	notification := &db_models.Notification{
		FamilyID:  family.ID,
		Type:      NotificationContribution,
		Title:     fmt.Sprintf("New $%.2f contribution!", contribution.Amount),
		Message:   fmt.Sprintf("%s received a $%.2f contribution", child.FirstName, contribution.Amount),
		Data:      datatypes.JSON(data),
		SourceKey: &sourceKey,
	}
	// The row goes first so a failed email retry never drops or duplicates it.
	if _, err := s.notificationRepo.InsertOnce(ctx, notification); err != nil {
		return fmt.Errorf("%w: insert notification: %v", utils.ErrDatabaseError, err)
	}

	contributor := contribution.ContributorName
	if contribution.IsAnonymous {
		contributor = ""
	}
	return s.mail.SendContributionReceived(ctx, family.Email, ContributionNote{
		ChildName:       child.FirstName,
		Amount:          contribution.Amount,
		ContributorName: contributor,
		Message:         contribution.Message,
	})
}

func (s *NotificationService) List(ctx context.Context, familyID uuid.UUID, unreadOnly bool) ([]db_models.Notification, error) {
	notifications, err := s.notificationRepo.ListByFamily(ctx, familyID, unreadOnly, notificationListLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: list notifications: %v", utils.ErrDatabaseError, err)
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, familyID, notificationID uuid.UUID) (bool, error) {
	updated, err := s.notificationRepo.MarkRead(ctx, familyID, notificationID)
	if err != nil {
		return false, fmt.Errorf("%w: mark notification read: %v", utils.ErrDatabaseError, err)
	}
	return updated, nil
}

// ContributionNotifyHandler runs NotifyContribution for a queued contribution.
func ContributionNotifyHandler(s NotificationServiceInterface) TaskHandler {
	return func(ctx context.Context, raw []byte) error {
		var p ContributionTaskPayload
		if err := decodePayload(raw, &p); err != nil {
			return err
		}
		id, err := uuid.Parse(p.ContributionID)
		if err != nil {
			return fmt.Errorf("bad contribution id %q: %w", p.ContributionID, err)
		}
		return s.NotifyContribution(ctx, id)
	}
}
