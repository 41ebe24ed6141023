package user

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Upsert(u *User) error
	FindByID(id uuid.UUID) (*User, error)
	FindByGoogleID(googleID string) (*User, error)
	Update(u *User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Upsert(u *User) error {
	existing, err := r.FindByGoogleID(u.GoogleID)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(u).Error
	}

	mergeExisting(u, existing)
	return r.db.Save(u).Error
}

// mergeExisting carries over what the login payload cannot supply: the
// primary key, a role assigned after first login, and the refresh token,
// which Google only returns on the first consent.
func mergeExisting(u, existing *User) {
	u.ID = existing.ID
	u.Role = existing.Role
	if u.EncryptedGoogleRefreshToken == "" {
		u.EncryptedGoogleRefreshToken = existing.EncryptedGoogleRefreshToken
	}
}

func (r *userRepository) FindByID(id uuid.UUID) (*User, error) {
	var u User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByGoogleID(googleID string) (*User, error) {
	var u User
	if err := r.db.First(&u, "google_id = ?", googleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Update(u *User) error {
	return r.db.Save(u).Error
}
