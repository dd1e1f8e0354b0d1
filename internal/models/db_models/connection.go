package db_models

import "github.com/google/uuid"

type Connection struct {
	BaseModel
	FamilyID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_connection_pair" json:"family_id"`
	ConnectedFamilyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_connection_pair" json:"connected_family_id"`
}
