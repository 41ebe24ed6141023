package youtube

import (
	"context"
	"errors"
	"os"

	yt "google.golang.org/api/youtube/v3"
	"google.golang.org/api/option"

	"github.com/Peyu5h/edusynck-sub000/internal/config"
)

var ErrMissingAPIKey = errors.New("YOUTUBE_API_KEY is not set")

type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

type YouTubeService interface {
	Recommend(ctx context.Context, topic string, limit int) ([]Video, error)
}

type youtubeService struct{}

func NewService() YouTubeService {
	return &youtubeService{}
}

func (s *youtubeService) Recommend(ctx context.Context, topic string, limit int) ([]Video, error) {
	log := config.WithContext(ctx)

	apiKey := os.Getenv("YOUTUBE_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if limit <= 0 {
		limit = 5
	}
	if limit > 20 {
		limit = 20
	}

	srv, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		log.WithError(err).Error("Failed to create YouTube client")
		return nil, err
	}

	resp, err := srv.Search.List([]string{"snippet"}).
		Q(topic + " tutorial").
		Type("video").
		SafeSearch("strict").
		VideoEmbeddable("true").
		MaxResults(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		log.WithError(err).Error("YouTube search failed")
		return nil, err
	}

	videos := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Snippet == nil {
			continue
		}
		v := Video{
			ID:          item.Id.VideoId,
			Title:       item.Snippet.Title,
			Channel:     item.Snippet.ChannelTitle,
			PublishedAt: item.Snippet.PublishedAt,
		}
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Medium != nil {
			v.Thumbnail = item.Snippet.Thumbnails.Medium.Url
		}
		videos = append(videos, v)
	}

	return videos, nil
}
