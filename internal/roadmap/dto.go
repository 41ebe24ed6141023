package roadmap

import "github.com/google/uuid"

type GenerateRoadmapDTO struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
	Goal   string    `json:"goal" validate:"required"`
	Level  string    `json:"level"`
	Weeks  int       `json:"weeks" validate:"gte=0"`
}
