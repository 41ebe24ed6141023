package roadmap

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Roadmap stores a generated study plan. Milestones live in a jsonb column
// since they are read back as a whole and never queried individually.
type Roadmap struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Goal      string         `gorm:"type:text;not null" json:"goal"`
	Level     string         `gorm:"type:text" json:"level,omitempty"`
	Weeks     int            `gorm:"not null;default:4" json:"weeks"`
	Content   datatypes.JSON `gorm:"type:jsonb;not null" json:"content"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

type Milestone struct {
	Week        int      `json:"week"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Topics      []string `json:"topics"`
	Resources   []string `json:"resources,omitempty"`
}

func (r *Roadmap) Milestones() []Milestone {
	var ms []Milestone
	_ = json.Unmarshal(r.Content, &ms)
	return ms
}

func MilestonesJSON(ms []Milestone) datatypes.JSON {
	b, _ := json.Marshal(ms)
	return datatypes.JSON(b)
}
