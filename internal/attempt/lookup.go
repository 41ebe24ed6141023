package attempt

import "github.com/google/uuid"

// Lookup implements quiz.AttemptLookup so the catalog can annotate active
// listings without importing this package.
type Lookup struct {
	repo AttemptRepository
}

func NewLookup(repo AttemptRepository) *Lookup {
	return &Lookup{repo: repo}
}

func (l *Lookup) StatusByQuiz(userID uuid.UUID, quizIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	return l.repo.StatusByQuiz(userID, quizIDs)
}

func (l *Lookup) HasCompleted(quizID, userID uuid.UUID) (bool, error) {
	return l.repo.HasCompleted(quizID, userID)
}
