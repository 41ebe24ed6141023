package youtube

type YouTubeContainer struct {
	Handler *Handler
	Service YouTubeService
}

func NewYouTubeContainer() *YouTubeContainer {
	service := NewService()
	handler := NewHandler(service)

	return &YouTubeContainer{
		Handler: handler,
		Service: service,
	}
}
