package service

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"text2learn_backend/internal/config"
)

const youtubeSearchURL = "https://www.googleapis.com/youtube/v3/search"

// YouTubeVideo 课时视频块的搜索结果
type YouTubeVideo struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
	EmbedURL     string `json:"embedUrl"`
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// YouTubeService 为视频内容块检索候选视频
type YouTubeService struct {
	client     *resty.Client
	apiKey     string
	maxResults int
}

func NewYouTubeService(cfg config.YouTubeConfig) *YouTubeService {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 3
	}
	return &YouTubeService{
		client:     resty.New(),
		apiKey:     cfg.APIKey,
		maxResults: maxResults,
	}
}

// Search 按关键词搜索教学视频。maxResults 为 0 时使用配置默认值。
func (s *YouTubeService) Search(ctx context.Context, query string, maxResults int) ([]YouTubeVideo, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("youtube API key not configured")
	}
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var result youtubeSearchResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":       "snippet",
			"type":       "video",
			"q":          query,
			"maxResults": fmt.Sprintf("%d", maxResults),
			"key":        s.apiKey,
		}).
		SetResult(&result).
		Get(youtubeSearchURL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("youtube API error (status %d): %s", resp.StatusCode(), resp.String())
	}

	videos := make([]YouTubeVideo, 0, len(result.Items))
	for _, item := range result.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, YouTubeVideo{
			VideoID:      item.ID.VideoID,
			Title:        item.Snippet.Title,
			Thumbnail:    item.Snippet.Thumbnails.Medium.URL,
			ChannelTitle: item.Snippet.ChannelTitle,
			EmbedURL:     "https://www.youtube.com/embed/" + item.ID.VideoID,
		})
	}
	return videos, nil
}
