package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Peyu5h/edusynck-sub000/internal/aiquiz"
	"github.com/Peyu5h/edusynck-sub000/internal/attempt"
	"github.com/Peyu5h/edusynck-sub000/internal/auth"
	"github.com/Peyu5h/edusynck-sub000/internal/classroom"
	"github.com/Peyu5h/edusynck-sub000/internal/course"
	"github.com/Peyu5h/edusynck-sub000/internal/middlewares"
	"github.com/Peyu5h/edusynck-sub000/internal/quiz"
	"github.com/Peyu5h/edusynck-sub000/internal/roadmap"
	"github.com/Peyu5h/edusynck-sub000/internal/user"
	"github.com/Peyu5h/edusynck-sub000/internal/youtube"
)

type RouterConfig struct {
	UserHandler      *user.Handler
	CourseHandler    *course.Handler
	ClassroomHandler *classroom.Handler
	YouTubeHandler   *youtube.Handler
	AIQuizHandler    *aiquiz.Handler
	QuizHandler      *quiz.Handler
	AttemptHandler   *attempt.Handler
	RoadmapHandler   *roadmap.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/google", cfg.UserHandler.GoogleLogin)
			r.Post("/refresh", cfg.UserHandler.RefreshToken)
			r.Post("/logout", auth.NewHandler().Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)

			r.Mount("/users", user.Routes(cfg.UserHandler))
			r.Mount("/ai-quiz", aiquiz.Routes(cfg.AIQuizHandler))
			r.Mount("/roadmap", roadmap.Routes(cfg.RoadmapHandler))

			r.Route("/courses", func(r chi.Router) {
				r.Get("/", cfg.CourseHandler.ListMyCourses)
				r.Post("/sync", cfg.ClassroomHandler.SyncCourses)
				r.Route("/{courseID}", func(r chi.Router) {
					r.Get("/", cfg.CourseHandler.GetCourse)
					r.Get("/materials", cfg.ClassroomHandler.ListMaterials)
					r.Get("/videos", cfg.YouTubeHandler.Recommend)
					r.Post("/roster", cfg.ClassroomHandler.ImportRoster)
				})
			})

			r.Route("/quiz", func(r chi.Router) {
				quiz.RegisterRoutes(r, cfg.QuizHandler)
				attempt.RegisterRoutes(r, cfg.AttemptHandler)
			})
		})
	})

	return r
}
