package response_models

import "github.com/google/uuid"

type ContributionCreated struct {
	ContributionID uuid.UUID `json:"contribution_id"`
	ClientSecret   string    `json:"client_secret"`
	Amount         float64   `json:"amount"`
}

type ThankYouUploaded struct {
	VideoURL string `json:"video_url"`
}
