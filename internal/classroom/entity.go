package classroom

import "time"

type SyncedCourse struct {
	ID             string `json:"id"`
	GoogleCourseID string `json:"google_course_id"`
	Name           string `json:"name"`
	Section        string `json:"section,omitempty"`
}

type Material struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Link        string     `json:"link,omitempty"`
	DriveFileID string     `json:"drive_file_id,omitempty"`
	YouTubeID   string     `json:"youtube_id,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

type RosterImportResult struct {
	Enrolled int `json:"enrolled"`
	Skipped  int `json:"skipped"`
}
