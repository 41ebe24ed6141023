package container

import (
	"context"
	"log"
	"os"

	"github.com/Peyu5h/edusynck-sub000/internal/aiquiz"
	"github.com/Peyu5h/edusynck-sub000/internal/attempt"
	"github.com/Peyu5h/edusynck-sub000/internal/auth"
	"github.com/Peyu5h/edusynck-sub000/internal/classroom"
	"github.com/Peyu5h/edusynck-sub000/internal/config"
	"github.com/Peyu5h/edusynck-sub000/internal/course"
	"github.com/Peyu5h/edusynck-sub000/internal/quiz"
	"github.com/Peyu5h/edusynck-sub000/internal/roadmap"
	"github.com/Peyu5h/edusynck-sub000/internal/user"
	"github.com/Peyu5h/edusynck-sub000/internal/youtube"
)

type Container struct {
	UserContainer      *user.UserContainer
	CourseContainer    *course.CourseContainer
	ClassroomContainer *classroom.ClassroomContainer
	YouTubeContainer   *youtube.YouTubeContainer
	AIQuizContainer    *aiquiz.AIQuizContainer
	QuizContainer      *quiz.QuizContainer
	AttemptContainer   *attempt.AttemptContainer
	RoadmapContainer   *roadmap.RoadmapContainer
}

func New() *Container {
	config.Init()
	auth.Init()
	config.InitCrypto()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.DB.AutoMigrate(
		&user.User{},
		&course.Course{},
		&course.Enrollment{},
		&quiz.Quiz{},
		&quiz.QuizQuestion{},
		&attempt.StudentQuizAttempt{},
		&attempt.StudentQuestionAnswer{},
		&roadmap.Roadmap{},
	); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	userContainer := user.NewUserContainer(config.DB)
	courseContainer := course.NewCourseContainer(config.DB)
	classroomContainer := classroom.NewClassroomContainer(userContainer.Repo, courseContainer.Repo)
	youtubeContainer := youtube.NewYouTubeContainer()
	aiQuizContainer := aiquiz.NewAIQuizContainer()
	attemptContainer := attempt.NewAttemptContainer(config.DB, quiz.NewRepository(config.DB), courseContainer.Repo)
	quizContainer := quiz.NewQuizContainer(config.DB, courseContainer.Repo, aiQuizContainer.Service, attemptContainer.Lookup)
	roadmapContainer := roadmap.NewRoadmapContainer(config.DB)

	return &Container{
		UserContainer:      userContainer,
		CourseContainer:    courseContainer,
		ClassroomContainer: classroomContainer,
		YouTubeContainer:   youtubeContainer,
		AIQuizContainer:    aiQuizContainer,
		QuizContainer:      quizContainer,
		AttemptContainer:   attemptContainer,
		RoadmapContainer:   roadmapContainer,
	}
}
