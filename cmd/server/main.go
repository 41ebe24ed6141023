package main

import (
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Peyu5h/edusynck-sub000/internal/container"
	"github.com/Peyu5h/edusynck-sub000/internal/router"
)

func main() {
	c := container.New()

	r := router.New(router.RouterConfig{
		UserHandler:      c.UserContainer.Handler,
		CourseHandler:    c.CourseContainer.Handler,
		ClassroomHandler: c.ClassroomContainer.Handler,
		YouTubeHandler:   c.YouTubeContainer.Handler,
		AIQuizHandler:    c.AIQuizContainer.Handler,
		QuizHandler:      c.QuizContainer.Handler,
		AttemptHandler:   c.AttemptContainer.Handler,
		RoadmapHandler:   c.RoadmapContainer.Handler,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.Infof("server listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
