package domain

import (
	"fmt"
	"strings"
)

const (
	DefaultImageBase = "https://img.youtube.com/vi"
	DefaultEmbedBase = "https://www.youtube.com/embed"
)

// Media builds thumbnail and player URLs from the video ids stored on courses and lessons.
type Media struct {
	ImageBase string
	EmbedBase string
}

func NewMedia(imageBase, embedBase string) Media {
	if imageBase == "" {
		imageBase = DefaultImageBase
	}
	if embedBase == "" {
		embedBase = DefaultEmbedBase
	}
	return Media{
		ImageBase: strings.TrimRight(imageBase, "/"),
		EmbedBase: strings.TrimRight(embedBase, "/"),
	}
}

// CourseThumbnail falls back to the first lesson's video when the course has no thumbnail id.
// lessons must already be sorted.
func (m Media) CourseThumbnail(c Course, lessons []Lesson) string {
	id := c.YoutubeThumbnailID
	if id == "" && len(lessons) > 0 {
		id = lessons[0].YoutubeID
	}
	if id == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/maxresdefault.jpg", m.ImageBase, id)
}

func (m Media) LessonThumbnail(videoID string) string {
	if videoID == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/mqdefault.jpg", m.ImageBase, videoID)
}

func (m Media) LessonEmbed(videoID string) string {
	if videoID == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s?autoplay=1&controls=1&rel=0", m.EmbedBase, videoID)
}
