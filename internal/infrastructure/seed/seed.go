package seed

import (
	"context"
	"log"

	"github.com/VoltEdgeBuilds/learn/internal/domain"
)

type CourseStore interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, c *domain.Course) error
}

// Demo fills an empty catalog with two sample courses. It is a no-op otherwise.
func Demo(ctx context.Context, store CourseStore) (bool, error) {
	count, err := store.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	courses := demoCourses()
	for i := range courses {
		if err := store.Create(ctx, &courses[i]); err != nil {
			return false, err
		}
	}
	log.Println(">>> DB seeded with demo courses")
	return true, nil
}

func demoCourses() []domain.Course {
	return []domain.Course{
		{
			Title:              "Go for Beginners",
			Category:           "programming",
			Lang:               "en",
			Description:        "Types, functions, interfaces and the standard library, from zero to a small HTTP service.",
			DurationText:       "6 hours",
			YoutubeThumbnailID: "YS4e4q9oBaU",
			LearningPoints:     []string{"Write and run Go programs", "Use slices and maps", "Build a JSON API"},
			Lessons: []domain.Lesson{
				{Order: 1, Title: "Installing Go", Description: "Toolchain and first program.", YoutubeID: "YS4e4q9oBaU"},
				{Order: 2, Title: "Types and Variables", Description: "Basic types and declarations.", YoutubeID: "446E-r0rXHI"},
				{Order: 3, Title: "Functions", Description: "Parameters, results and closures.", YoutubeID: "un6ZyFkqFKo"},
				{Order: 4, Title: "Interfaces", Description: "Implicit implementation.", YoutubeID: "SX1gT5A9H-U"},
			},
		},
		{
			Title:          "UX/UI Design Basics",
			Category:       "design",
			Lang:           "fr",
			Description:    "Créer des interfaces claires et agréables dans Figma.",
			DurationText:   "3 heures",
			LearningPoints: []string{"Principes de mise en page", "Prototypage"},
			Lessons: []domain.Lesson{
				{Order: 1, Title: "Introduction", Description: "Qu'est-ce que l'UX ?", YoutubeID: "c9Wg6Cb_YlU"},
				{Order: 2, Title: "Figma", Description: "Premiers pas.", YoutubeID: "FTFaQWZBqQ8"},
			},
		},
	}
}
