package course

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Peyu5h/edusynck-sub000/internal/config"
)

var ErrCourseNotFound = errors.New("course not found")

type CourseService interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Course, error)
}

type courseService struct {
	repo CourseRepository
}

func NewService(repo CourseRepository) CourseService {
	return &courseService{repo: repo}
}

func (s *courseService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Course, error) {
	log := config.WithContext(ctx)

	courses, err := s.repo.ListByUser(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list courses for user")
		return nil, err
	}
	return courses, nil
}

func (s *courseService) GetByID(ctx context.Context, id uuid.UUID) (*Course, error) {
	log := config.WithContext(ctx)

	c, err := s.repo.FindByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to find course")
		return nil, err
	}
	if c == nil {
		return nil, ErrCourseNotFound
	}
	return c, nil
}
