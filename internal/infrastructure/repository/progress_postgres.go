package repository

import (
	"context"
	"errors"
	"time"

	"github.com/VoltEdgeBuilds/learn/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// errUnchanged rolls back the placeholder row when apply reports no change.
var errUnchanged = errors.New("progress unchanged")

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Get(ctx context.Context, phone string, courseID uint) (*domain.Progress, error) {
	return r.get(r.db.WithContext(ctx), phone, courseID)
}

func (r *ProgressRepository) get(tx *gorm.DB, phone string, courseID uint) (*domain.Progress, error) {
	var p domain.Progress
	err := tx.Where("user_phone = ? AND course_id = ?", phone, courseID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProgressNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByUser returns the user's progress rows, most recently touched first.
func (r *ProgressRepository) ListByUser(ctx context.Context, phone string) ([]domain.Progress, error) {
	var rows []domain.Progress
	err := r.db.WithContext(ctx).
		Where("user_phone = ?", phone).
		Order("updated_at desc").
		Find(&rows).Error
	return rows, err
}

// Upsert writes the full row keyed on (user_phone, course_id). Empty name fields
// are left out of the update so a previously stored name is kept.
func (r *ProgressRepository) Upsert(ctx context.Context, p *domain.Progress) error {
	return r.upsert(r.db.WithContext(ctx), p)
}

func (r *ProgressRepository) upsert(tx *gorm.DB, p *domain.Progress) error {
	// Create не трогает непустой UpdatedAt, ставим сами
	p.UpdatedAt = time.Now()

	cols := []string{"course_title", "completed_lessons_ids", "progress_percentage", "updated_at"}
	if p.UserFirstName != "" {
		cols = append(cols, "user_first_name")
	}
	if p.UserLastName != "" {
		cols = append(cols, "user_last_name")
	}

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_phone"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns(cols),
	}).Create(p).Error
}

// Update re-reads the stored row inside a transaction, lets apply mutate it and
// upserts the result when apply reports a change. A missing row starts empty.
// The row is inserted (if absent) before it is locked so concurrent first
// writes for the same pair serialize on it instead of overwriting each other.
func (r *ProgressRepository) Update(
	ctx context.Context,
	phone string,
	courseID uint,
	apply func(p *domain.Progress) (bool, error),
) (*domain.Progress, error) {
	var out *domain.Progress

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		placeholder := &domain.Progress{UserPhone: phone, CourseID: courseID, CompletedLessonsIDs: "[]"}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(placeholder).Error; err != nil {
			return err
		}

		q := tx
		// SQLite не умеет FOR UPDATE
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		p, err := r.get(q, phone, courseID)
		if err != nil {
			return err
		}

		changed, err := apply(p)
		if err != nil {
			return err
		}
		out = p
		if !changed {
			return errUnchanged
		}
		return r.upsert(tx, p)
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		return nil, err
	}
	return out, nil
}
