package quiz

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Quiz struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title           string     `gorm:"type:text;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description,omitempty"`
	Status          QuizStatus `gorm:"type:text;not null;default:'DRAFT';index" json:"status"`
	CourseID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"course_id"`
	CreatorID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"creator_id"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type QuizQuestion struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuizID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Question      string         `gorm:"type:text;not null" json:"question"`
	Options       datatypes.JSON `gorm:"type:jsonb;not null" json:"options"`
	CorrectAnswer int            `gorm:"not null" json:"correct_answer"`
	Points        int            `gorm:"not null;default:1" json:"points"`
	OrderIndex    int            `gorm:"not null" json:"order_index"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// WindowOpen reports whether the quiz accepts attempts at the given
// instant. An unset bound is open-ended.
func (q *Quiz) WindowOpen(now time.Time) bool {
	if q.StartTime != nil && now.Before(*q.StartTime) {
		return false
	}
	if q.EndTime != nil && now.After(*q.EndTime) {
		return false
	}
	return true
}

// OptionList decodes the jsonb options column.
func (q *QuizQuestion) OptionList() []string {
	var opts []string
	_ = json.Unmarshal(q.Options, &opts)
	return opts
}

func OptionsJSON(options []string) datatypes.JSON {
	b, _ := json.Marshal(options)
	return datatypes.JSON(b)
}
