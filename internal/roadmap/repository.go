package roadmap

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoadmapRepository interface {
	Create(r *Roadmap) error
	FindByID(id uuid.UUID) (*Roadmap, error)
	ListByUser(userID uuid.UUID) ([]*Roadmap, error)
	Delete(id uuid.UUID) (int64, error)
}

type roadmapRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) RoadmapRepository {
	return &roadmapRepository{db: db}
}

func (r *roadmapRepository) Create(roadmap *Roadmap) error {
	return r.db.Create(roadmap).Error
}

func (r *roadmapRepository) FindByID(id uuid.UUID) (*Roadmap, error) {
	var roadmap Roadmap
	if err := r.db.First(&roadmap, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &roadmap, nil
}

func (r *roadmapRepository) ListByUser(userID uuid.UUID) ([]*Roadmap, error) {
	var roadmaps []*Roadmap
	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&roadmaps).Error; err != nil {
		return nil, err
	}
	return roadmaps, nil
}

func (r *roadmapRepository) Delete(id uuid.UUID) (int64, error) {
	result := r.db.Delete(&Roadmap{}, "id = ?", id)
	return result.RowsAffected, result.Error
}
