package response_models

import "diplomakids/internal/models/db_models"

type AuthResponse struct {
	Token  string            `json:"token"`
	Family *db_models.Family `json:"family"`
}
