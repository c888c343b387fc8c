package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/VoltEdgeBuilds/learn/internal/domain"

	"github.com/cenkalti/backoff/v4"
)

type Learner struct {
	Phone     string `json:"phone"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type LessonView struct {
	ID           uint   `json:"id"`
	Order        int    `json:"order"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	VideoID      string `json:"youtube_id"`
	ThumbnailURL string `json:"thumbnail_url"`
	EmbedURL     string `json:"embed_url"`
	Completed    bool   `json:"completed"`
}

type ProgressView struct {
	CourseID           uint                 `json:"course_id"`
	CompletedLessonIDs []uint               `json:"completed_lesson_ids"`
	CompletedCount     int                  `json:"completed_count"`
	TotalLessons       int                  `json:"total_lessons"`
	Percent            int                  `json:"percent"`
	State              domain.ProgressState `json:"state"`
	CertificateVisible bool                 `json:"certificate_visible"`
}

type CourseView struct {
	ID             uint         `json:"id"`
	Title          string       `json:"title"`
	Category       string       `json:"category"`
	Lang           string       `json:"lang"`
	Description    string       `json:"description"`
	DurationText   string       `json:"duration_text"`
	ThumbnailURL   string       `json:"thumbnail_url"`
	LearningPoints []string     `json:"learning_points"`
	LessonsCount   int          `json:"lessons_count"`
	Lessons        []LessonView `json:"lessons"`
	Progress       ProgressView `json:"progress"`
	Learner        Learner      `json:"learner"`
}

type ProgressSummary struct {
	CourseID           uint                 `json:"course_id"`
	CourseTitle        string               `json:"course_title"`
	Percent            int                  `json:"percent"`
	State              domain.ProgressState `json:"state"`
	CertificateVisible bool                 `json:"certificate_visible"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

// PlayerUseCase drives the course page: lesson list, completion toggles and progress.
type PlayerUseCase struct {
	courses    CourseRepository
	progress   ProgressRepository
	users      UserRepository
	media      domain.Media
	newBackOff func() backoff.BackOff
}

func NewPlayerUseCase(cr CourseRepository, pr ProgressRepository, ur UserRepository, media domain.Media, retryMaxElapsed time.Duration) *PlayerUseCase {
	return &PlayerUseCase{
		courses:  cr,
		progress: pr,
		users:    ur,
		media:    media,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxElapsedTime = retryMaxElapsed
			return b
		},
	}
}

func (uc *PlayerUseCase) Open(ctx context.Context, phone string, courseID uint) (*CourseView, error) {
	course, lessons, err := uc.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	tr := domain.NewTracker(lessons, uc.loadCompleted(ctx, phone, courseID))

	views := make([]LessonView, 0, len(lessons))
	for _, l := range lessons {
		views = append(views, LessonView{
			ID:           l.ID,
			Order:        l.Order,
			Title:        l.Title,
			Description:  l.Description,
			VideoID:      l.YoutubeID,
			ThumbnailURL: uc.media.LessonThumbnail(l.YoutubeID),
			EmbedURL:     uc.media.LessonEmbed(l.YoutubeID),
			Completed:    tr.Completed().Has(l.ID),
		})
	}

	points := []string(course.LearningPoints)
	if points == nil {
		points = []string{}
	}

	return &CourseView{
		ID:             course.ID,
		Title:          course.Title,
		Category:       course.Category,
		Lang:           course.Lang,
		Description:    course.Description,
		DurationText:   course.DurationText,
		ThumbnailURL:   uc.media.CourseThumbnail(*course, lessons),
		LearningPoints: points,
		LessonsCount:   len(lessons),
		Lessons:        views,
		Progress:       progressView(courseID, tr),
		Learner:        uc.learner(ctx, phone),
	}, nil
}

func (uc *PlayerUseCase) Progress(ctx context.Context, phone string, courseID uint) (ProgressView, error) {
	_, lessons, err := uc.loadCourse(ctx, courseID)
	if err != nil {
		return ProgressView{}, err
	}
	tr := domain.NewTracker(lessons, uc.loadCompleted(ctx, phone, courseID))
	return progressView(courseID, tr), nil
}

// SetLessonCompletion applies one toggle to the stored set and upserts the whole
// row. Repeating a toggle that is already in effect writes nothing.
func (uc *PlayerUseCase) SetLessonCompletion(ctx context.Context, phone string, courseID, lessonID uint, completed bool) (ProgressView, error) {
	course, lessons, err := uc.loadCourse(ctx, courseID)
	if err != nil {
		return ProgressView{}, err
	}
	learner := uc.learner(ctx, phone)

	var tr *domain.Tracker
	apply := func(p *domain.Progress) (bool, error) {
		done, err := domain.DecodeCompletedSet(p.CompletedLessonsIDs)
		if err != nil {
			log.Printf("Failed to parse completed_lessons_ids for %s/%d: %v", phone, courseID, err)
		}
		tr = domain.NewTracker(lessons, done)

		changed, err := tr.Set(lessonID, completed)
		if err != nil || !changed {
			return false, err
		}

		p.CourseTitle = course.Title
		p.UserFirstName = learner.FirstName
		p.UserLastName = learner.LastName
		tr.ApplyTo(p)
		log.Printf("Saving progress %s/%d: %s (%d%%)", phone, courseID, p.CompletedLessonsIDs, p.ProgressPercentage)
		return true, nil
	}

	op := func() error {
		_, err := uc.progress.Update(ctx, phone, courseID, apply)
		if errors.Is(err, domain.ErrLessonNotInCourse) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		log.Printf("Error saving progress %s/%d, retrying in %s: %v", phone, courseID, wait, err)
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(uc.newBackOff(), ctx), notify); err != nil {
		if errors.Is(err, domain.ErrLessonNotInCourse) {
			return ProgressView{}, err
		}
		log.Printf("Error saving progress %s/%d: %v", phone, courseID, err)
		return ProgressView{}, fmt.Errorf("save progress: %w", err)
	}

	return progressView(courseID, tr), nil
}

func (uc *PlayerUseCase) MyProgress(ctx context.Context, phone string) ([]ProgressSummary, error) {
	rows, err := uc.progress.ListByUser(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	out := make([]ProgressSummary, 0, len(rows))
	for _, p := range rows {
		out = append(out, ProgressSummary{
			CourseID:           p.CourseID,
			CourseTitle:        p.CourseTitle,
			Percent:            p.ProgressPercentage,
			State:              domain.StateOf(p.ProgressPercentage),
			CertificateVisible: p.ProgressPercentage == 100,
			UpdatedAt:          p.UpdatedAt,
		})
	}
	return out, nil
}

func (uc *PlayerUseCase) loadCourse(ctx context.Context, courseID uint) (*domain.Course, []domain.Lesson, error) {
	course, err := uc.courses.GetWithLessons(ctx, courseID)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("load course: %w", err)
	}

	lessons := append([]domain.Lesson(nil), course.Lessons...)
	domain.SortLessons(lessons)
	return course, lessons, nil
}

// loadCompleted never fails: a missing or unreadable row means nothing is completed yet.
func (uc *PlayerUseCase) loadCompleted(ctx context.Context, phone string, courseID uint) domain.CompletedSet {
	p, err := uc.progress.Get(ctx, phone, courseID)
	if err != nil {
		if !errors.Is(err, domain.ErrProgressNotFound) {
			log.Printf("Error fetching progress %s/%d: %v", phone, courseID, err)
		}
		return domain.NewCompletedSet()
	}

	done, err := domain.DecodeCompletedSet(p.CompletedLessonsIDs)
	if err != nil {
		log.Printf("Failed to parse completed_lessons_ids for %s/%d: %v", phone, courseID, err)
	}
	return done
}

func (uc *PlayerUseCase) learner(ctx context.Context, phone string) Learner {
	l := Learner{Phone: phone}
	user, err := uc.users.GetByPhone(ctx, phone)
	if err != nil {
		log.Printf("Error fetching user %s: %v", phone, err)
		return l
	}
	l.FirstName = user.FirstName
	l.LastName = user.LastName
	return l
}

func progressView(courseID uint, tr *domain.Tracker) ProgressView {
	ids := tr.Completed().IDs()
	return ProgressView{
		CourseID:           courseID,
		CompletedLessonIDs: ids,
		CompletedCount:     len(ids),
		TotalLessons:       tr.Total(),
		Percent:            tr.Percent(),
		State:              tr.State(),
		CertificateVisible: tr.CertificateVisible(),
	}
}
