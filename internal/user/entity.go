package user

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleTeacher UserRole = "TEACHER"
	RoleAdmin   UserRole = "ADMIN"
)

var AllRoles = []UserRole{RoleStudent, RoleTeacher, RoleAdmin}

func (r UserRole) IsValid() bool {
	for _, v := range AllRoles {
		if r == v {
			return true
		}
	}
	return false
}

type User struct {
	ID                          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	GoogleID                    string    `gorm:"type:text;uniqueIndex" json:"-"`
	Name                        string    `gorm:"type:text;not null" json:"name"`
	Email                       string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Role                        UserRole  `gorm:"type:text;not null;default:'STUDENT'" json:"role"`
	Picture                     string    `gorm:"type:text" json:"picture,omitempty"`
	EncryptedGoogleAccessToken  string    `gorm:"type:text" json:"-"`
	EncryptedGoogleRefreshToken string    `gorm:"type:text" json:"-"`
	CreatedAt                   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
