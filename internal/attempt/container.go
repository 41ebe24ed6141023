package attempt

import (
	"gorm.io/gorm"

	"github.com/Peyu5h/edusynck-sub000/internal/course"
	"github.com/Peyu5h/edusynck-sub000/internal/quiz"
)

type AttemptContainer struct {
	Handler *Handler
	Service AttemptService
	Repo    AttemptRepository
	Lookup  *Lookup
}

func NewAttemptContainer(db *gorm.DB, quizRepo quiz.QuizRepository, courseRepo course.CourseRepository) *AttemptContainer {
	repo := NewRepository(db)
	service := NewService(repo, quizRepo, courseRepo)
	handler := NewHandler(service)

	return &AttemptContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
		Lookup:  NewLookup(repo),
	}
}
