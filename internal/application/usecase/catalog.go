package usecase

import (
	"context"
	"fmt"

	"github.com/VoltEdgeBuilds/learn/internal/domain"
)

// CourseCard is one dashboard tile.
type CourseCard struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Lang     string `json:"lang"`
	Img      string `json:"img"`
	Href     string `json:"href"`
}

type CatalogFacets struct {
	Categories []string `json:"categories"`
	Languages  []string `json:"languages"`
}

type CatalogUseCase struct {
	courses       CourseRepository
	media         domain.Media
	coursePageURL string
}

func NewCatalogUseCase(cr CourseRepository, media domain.Media, coursePageURL string) *CatalogUseCase {
	return &CatalogUseCase{courses: cr, media: media, coursePageURL: coursePageURL}
}

// List loads the whole catalog (cached) and applies the filter in memory.
func (uc *CatalogUseCase) List(ctx context.Context, f domain.CatalogFilter) ([]CourseCard, error) {
	all, err := uc.courses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	filtered := domain.FilterCourses(all, f)
	cards := make([]CourseCard, 0, len(filtered))
	for _, c := range filtered {
		img := c.Img
		if img == "" {
			img = uc.media.CourseThumbnail(c, nil)
		}
		cards = append(cards, CourseCard{
			ID:       c.ID,
			Title:    c.Title,
			Category: c.Category,
			Lang:     c.Lang,
			Img:      img,
			Href:     fmt.Sprintf("%s?id=%d", uc.coursePageURL, c.ID),
		})
	}
	return cards, nil
}

func (uc *CatalogUseCase) Facets(ctx context.Context) (CatalogFacets, error) {
	all, err := uc.courses.List(ctx)
	if err != nil {
		return CatalogFacets{}, fmt.Errorf("list courses: %w", err)
	}
	cats, langs := domain.Facets(all)
	return CatalogFacets{Categories: cats, Languages: langs}, nil
}
