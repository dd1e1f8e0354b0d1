package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"diplomakids/internal/models/db_models"
	"diplomakids/internal/models/request_models"
	"diplomakids/internal/models/response_models"
	"diplomakids/internal/repositories"
	"diplomakids/pkg/utils"
)

const (
	defaultFeedPageSize    = 20
	defaultCommentPageSize = 50
)

type FeedServiceInterface interface {
	// GetFeed lists non-private milestones of the caller and the families it is
	// connected to, newest first.
	GetFeed(ctx context.Context, familyID uuid.UUID, limit, offset int) ([]response_models.FeedItem, error)
	CreateMilestone(ctx context.Context, familyID uuid.UUID, request request_models.CreateMilestoneRequest) (*db_models.Milestone, error)
	ToggleLike(ctx context.Context, familyID, milestoneID uuid.UUID) (bool, error)
	Comment(ctx context.Context, familyID, milestoneID uuid.UUID, text string) (*db_models.Interaction, error)
	ListComments(ctx context.Context, milestoneID uuid.UUID, limit, offset int) ([]db_models.Interaction, error)
}

type FeedService struct {
	milestoneRepo  repositories.MilestoneRepository
	connectionRepo repositories.ConnectionRepository
	childRepo      repositories.ChildRepository
}

func NewFeedService(
	milestoneRepo repositories.MilestoneRepository,
	connectionRepo repositories.ConnectionRepository,
	childRepo repositories.ChildRepository,
) FeedServiceInterface {
	return &FeedService{
		milestoneRepo:  milestoneRepo,
		connectionRepo: connectionRepo,
		childRepo:      childRepo,
	}
}

func (s *FeedService) GetFeed(ctx context.Context, familyID uuid.UUID, limit, offset int) ([]response_models.FeedItem, error) {
	limit, offset = clampPage(limit, offset, defaultFeedPageSize)

	connected, err := s.connectionRepo.ConnectedFamilyIDs(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("%w: load connections: %v", utils.ErrDatabaseError, err)
	}
	familyIDs := append([]uuid.UUID{familyID}, connected...)

	milestones, err := s.milestoneRepo.Feed(ctx, familyIDs, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: load feed: %v", utils.ErrDatabaseError, err)
	}

	items := make([]response_models.FeedItem, 0, len(milestones))
	for _, m := range milestones {
		item := response_models.FeedItem{Milestone: m}
		if m.Child != nil {
			item.ChildFirstName = m.Child.FirstName
			item.ChildProfilePhotoURL = m.Child.ProfilePhotoURL
		}
		if m.Family != nil {
			item.FamilyName = m.Family.FamilyName
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *FeedService) CreateMilestone(ctx context.Context, familyID uuid.UUID, request request_models.CreateMilestoneRequest) (*db_models.Milestone, error) {
	privacy := db_models.PrivacyFamily
	if request.Privacy != "" {
		privacy = db_models.PrivacyLevel(request.Privacy)
		if !privacy.Valid() {
			return nil, fmt.Errorf("%w: privacy must be public, family or private", utils.ErrInvalidInput)
		}
	}

	childID, err := parseID(request.ChildID, utils.ErrInvalidInput)
	if err != nil {
		return nil, err
	}
	if _, err := findOwnedChild(ctx, s.childRepo, familyID, childID); err != nil {
		return nil, err
	}

	milestone := &db_models.Milestone{
		FamilyID:      familyID,
		ChildID:       childID,
		Title:         request.Title,
		Description:   request.Description,
		Category:      request.Category,
		GradeReceived: request.GradeReceived,
		Privacy:       privacy,
	}

	task, err := NewTask(TaskMilestoneAchievements, ChildTaskPayload{ChildID: childID.String()})
	if err != nil {
		return nil, err
	}
	if err := s.milestoneRepo.InsertWithTasks(ctx, milestone, []db_models.OutboxTask{task}); err != nil {
		return nil, fmt.Errorf("%w: insert milestone: %v", utils.ErrDatabaseError, err)
	}
	return milestone, nil
}

func (s *FeedService) ToggleLike(ctx context.Context, familyID, milestoneID uuid.UUID) (bool, error) {
	if _, err := s.visibleMilestone(ctx, milestoneID, familyID); err != nil {
		return false, err
	}
	liked, err := s.milestoneRepo.ToggleLike(ctx, milestoneID, familyID)
	if err != nil {
		return false, fmt.Errorf("%w: toggle like: %v", utils.ErrDatabaseError, err)
	}
	return liked, nil
}

func (s *FeedService) Comment(ctx context.Context, familyID, milestoneID uuid.UUID, text string) (*db_models.Interaction, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment must not be empty", utils.ErrInvalidInput)
	}
	if _, err := s.visibleMilestone(ctx, milestoneID, familyID); err != nil {
		return nil, err
	}

	comment := &db_models.Interaction{
		MilestoneID: milestoneID,
		FamilyID:    familyID,
		CommentText: text,
	}
	if err := s.milestoneRepo.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("%w: add comment: %v", utils.ErrDatabaseError, err)
	}
	return comment, nil
}

func (s *FeedService) ListComments(ctx context.Context, milestoneID uuid.UUID, limit, offset int) ([]db_models.Interaction, error) {
	if _, err := s.visibleMilestone(ctx, milestoneID, uuid.Nil); err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset, defaultCommentPageSize)
	comments, err := s.milestoneRepo.ListComments(ctx, milestoneID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list comments: %v", utils.ErrDatabaseError, err)
	}
	return comments, nil
}

// visibleMilestone applies the same rules as the feed: private milestones are
// owner-only and family milestones need a connection to the author. Anything the
// caller cannot see is reported as missing. uuid.Nil is an anonymous caller.
func (s *FeedService) visibleMilestone(ctx context.Context, milestoneID, familyID uuid.UUID) (*db_models.Milestone, error) {
	milestone, err := s.milestoneRepo.FindByID(ctx, milestoneID)
	if err != nil {
		return nil, fmt.Errorf("%w: find milestone: %v", utils.ErrDatabaseError, err)
	}
	if milestone == nil {
		return nil, utils.ErrMilestoneNotFound
	}
	if milestone.FamilyID == familyID || milestone.Privacy == db_models.PrivacyPublic {
		return milestone, nil
	}
	if milestone.Privacy != db_models.PrivacyFamily || familyID == uuid.Nil {
		return nil, utils.ErrMilestoneNotFound
	}

	connected, err := s.connectionRepo.IsConnected(ctx, familyID, milestone.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("%w: check connection: %v", utils.ErrDatabaseError, err)
	}
	if !connected {
		return nil, utils.ErrMilestoneNotFound
	}
	return milestone, nil
}
