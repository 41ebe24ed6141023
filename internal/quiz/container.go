package quiz

import (
	"gorm.io/gorm"

	"github.com/Peyu5h/edusynck-sub000/internal/aiquiz"
	"github.com/Peyu5h/edusynck-sub000/internal/course"
)

type QuizContainer struct {
	Handler *Handler
	Service QuizService
	Repo    QuizRepository
}

func NewQuizContainer(db *gorm.DB, courseRepo course.CourseRepository, generator aiquiz.Service, attempts AttemptLookup) *QuizContainer {
	repo := NewRepository(db)
	service := NewService(repo, courseRepo, generator, attempts)
	handler := NewHandler(service)

	return &QuizContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
