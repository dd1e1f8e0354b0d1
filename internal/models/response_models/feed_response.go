package response_models

import "diplomakids/internal/models/db_models"

type FeedItem struct {
	db_models.Milestone
	ChildFirstName       string `json:"child_first_name"`
	ChildProfilePhotoURL string `json:"child_profile_photo_url,omitempty"`
	FamilyName           string `json:"family_name"`
}

type LikeResult struct {
	Liked bool `json:"liked"`
}

type GiftRegistryView struct {
	db_models.GiftRegistry
	ChildFirstName       string `json:"child_first_name"`
	ChildLastName        string `json:"child_last_name"`
	ChildProfilePhotoURL string `json:"child_profile_photo_url,omitempty"`
}
