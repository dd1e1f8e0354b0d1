package db_models

import "github.com/google/uuid"

type PrivacyLevel string

const (
	PrivacyPublic  PrivacyLevel = "public"
	PrivacyFamily  PrivacyLevel = "family"
	PrivacyPrivate PrivacyLevel = "private"
)

func (p PrivacyLevel) Valid() bool {
	return p == PrivacyPublic || p == PrivacyFamily || p == PrivacyPrivate
}

type Milestone struct {
	BaseModel
	FamilyID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"family_id"`
	Family        *Family      `gorm:"foreignKey:FamilyID" json:"-"`
	ChildID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"child_id"`
	Child         *Child       `gorm:"foreignKey:ChildID" json:"-"`
	Title         string       `gorm:"not null" json:"title"`
	Description   string       `json:"description,omitempty"`
	Category      string       `json:"category,omitempty"`
	GradeReceived string       `json:"grade_received,omitempty"`
	Privacy       PrivacyLevel `gorm:"type:varchar(10);not null;default:family;index" json:"privacy"`
	LikesCount    int          `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int          `gorm:"not null;default:0" json:"comments_count"`
}

type InteractionType string

const (
	InteractionLike    InteractionType = "like"
	InteractionComment InteractionType = "comment"
)

// Interaction is a like or a comment on a milestone. LikeKey is only set for
// likes, so the unique index allows one like per family and any number of comments.
type Interaction struct {
	BaseModel
	MilestoneID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"milestone_id"`
	FamilyID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"family_id"`
	InteractionType InteractionType `gorm:"type:varchar(10);not null" json:"interaction_type"`
	CommentText     string          `json:"comment_text,omitempty"`
	LikeKey         *string         `gorm:"uniqueIndex" json:"-"`
}

func LikeKeyFor(milestoneID, familyID uuid.UUID) string {
	return milestoneID.String() + ":" + familyID.String()
}
