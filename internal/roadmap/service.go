package roadmap

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Peyu5h/edusynck-sub000/internal/config"
)

var (
	ErrRoadmapNotFound = errors.New("roadmap not found")
	ErrValidation      = errors.New("validation failed")
)

const (
	minWeeks     = 2
	maxWeeks     = 16
	defaultWeeks = 4
)

var validate = validator.New()

type RoadmapService interface {
	Generate(ctx context.Context, dto GenerateRoadmapDTO) (*Roadmap, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Roadmap, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type roadmapService struct {
	repo     RoadmapRepository
	provider Provider
}

func NewService(repo RoadmapRepository, provider Provider) RoadmapService {
	return &roadmapService{repo: repo, provider: provider}
}

func (s *roadmapService) Generate(ctx context.Context, dto GenerateRoadmapDTO) (*Roadmap, error) {
	log := config.WithContext(ctx)

	if s.provider == nil {
		return nil, fmt.Errorf("%w: provider is not configured", ErrGeneration)
	}
	if err := validate.Struct(dto); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	weeks := dto.Weeks
	if weeks == 0 {
		weeks = defaultWeeks
	}
	if weeks < minWeeks {
		weeks = minWeeks
	}
	if weeks > maxWeeks {
		weeks = maxWeeks
	}
	dto.Weeks = weeks

	milestones, err := s.provider.SendPrompt(ctx, systemPrompt, BuildUserPrompt(dto))
	if err != nil {
		log.WithError(err).Error("failed to generate roadmap")
		return nil, err
	}

	roadmap := &Roadmap{
		ID:      uuid.New(),
		UserID:  dto.UserID,
		Goal:    dto.Goal,
		Level:   dto.Level,
		Weeks:   weeks,
		Content: MilestonesJSON(milestones),
	}

	if err := s.repo.Create(roadmap); err != nil {
		log.WithError(err).Error("failed to persist roadmap")
		return nil, err
	}

	log.WithField("roadmap_id", roadmap.ID).Info("roadmap generated")
	return roadmap, nil
}

func (s *roadmapService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Roadmap, error) {
	log := config.WithContext(ctx)

	roadmaps, err := s.repo.ListByUser(userID)
	if err != nil {
		log.WithError(err).Error("failed to list roadmaps")
		return nil, err
	}
	return roadmaps, nil
}

func (s *roadmapService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRoadmapNotFound
	}
	return nil
}
