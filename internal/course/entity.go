package course

import (
	"time"

	"github.com/google/uuid"

	"github.com/Peyu5h/edusynck-sub000/internal/user"
)

type Course struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	GoogleCourseID string    `gorm:"type:text;uniqueIndex" json:"google_course_id,omitempty"`
	Name           string    `gorm:"type:text;not null" json:"name"`
	Section        string    `gorm:"type:text" json:"section,omitempty"`
	Room           string    `gorm:"type:text" json:"room,omitempty"`
	OwnerID        uuid.UUID `gorm:"type:uuid;index" json:"owner_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Enrollments []Enrollment `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

type Enrollment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_course_user" json:"course_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_course_user" json:"user_id"`
	User      user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
