package classroom

import (
	"github.com/Peyu5h/edusynck-sub000/internal/course"
	"github.com/Peyu5h/edusynck-sub000/internal/user"
)

type ClassroomContainer struct {
	Handler *Handler
	Service ClassroomService
}

func NewClassroomContainer(userRepo user.UserRepository, courseRepo course.CourseRepository) *ClassroomContainer {
	service := NewService(userRepo, courseRepo)
	handler := NewHandler(service)

	return &ClassroomContainer{
		Handler: handler,
		Service: service,
	}
}
