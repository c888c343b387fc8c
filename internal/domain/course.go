package domain

import (
	"sort"
	"time"

	"gorm.io/datatypes"
)

type Course struct {
	ID                 uint                        `gorm:"primaryKey" json:"id"`
	Title              string                      `gorm:"index" json:"title"`
	Category           string                      `gorm:"index" json:"category"`
	Lang               string                      `gorm:"index" json:"lang"`
	Description        string                      `json:"description"`
	DurationText       string                      `json:"duration_text"`
	YoutubeThumbnailID string                      `json:"youtube_thumbnail_id"`
	Img                string                      `json:"img"`
	LearningPoints     datatypes.JSONSlice[string] `json:"learning_points"`

	// Связь один-ко-многим: у курса много уроков
	Lessons []Lesson `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"lessons,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Lesson struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CourseID    uint   `gorm:"index" json:"course_id"`
	Order       int    `json:"order"` // 1, 2, 3...
	Title       string `json:"title"`
	Description string `json:"description"`
	YoutubeID   string `json:"youtube_id"`

	CreatedAt time.Time `json:"created_at"`
}

// SortLessons orders lessons by their order index, keeping input order for ties.
func SortLessons(lessons []Lesson) {
	sort.SliceStable(lessons, func(i, j int) bool {
		return lessons[i].Order < lessons[j].Order
	})
}
