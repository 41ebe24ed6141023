package quiz

type QuizStatus string

const (
	StatusDraft     QuizStatus = "DRAFT"
	StatusActive    QuizStatus = "ACTIVE"
	StatusCompleted QuizStatus = "COMPLETED"
	StatusCancelled QuizStatus = "CANCELLED"
)

var AllStatuses = []QuizStatus{
	StatusDraft,
	StatusActive,
	StatusCompleted,
	StatusCancelled,
}

func (s QuizStatus) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}
