package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/VoltEdgeBuilds/learn/internal/domain"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const catalogKey = "courses:catalog"

func courseKey(id uint) string {
	return "course:detail:" + strconv.FormatUint(uint64(id), 10)
}

// CourseRepository reads courses through a redis cache; the database stays the source of truth.
type CourseRepository struct {
	db         *gorm.DB
	rdb        *redis.Client
	catalogTTL time.Duration
	detailTTL  time.Duration
}

func NewCourseRepository(db *gorm.DB, rdb *redis.Client, catalogTTL, detailTTL time.Duration) *CourseRepository {
	return &CourseRepository{db: db, rdb: rdb, catalogTTL: catalogTTL, detailTTL: detailTTL}
}

// === КЕШИРУЕМ ВЕСЬ КАТАЛОГ ===
func (r *CourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course
	if r.readCache(ctx, catalogKey, &courses) {
		return courses, nil
	}

	err := r.db.WithContext(ctx).Order("id asc").Find(&courses).Error
	if err != nil {
		return nil, err
	}

	r.writeCache(ctx, catalogKey, courses, r.catalogTTL)
	return courses, nil
}

// GetWithLessons loads one course with its lessons sorted by order index.
func (r *CourseRepository) GetWithLessons(ctx context.Context, id uint) (*domain.Course, error) {
	key := courseKey(id)

	var course domain.Course
	if r.readCache(ctx, key, &course) {
		return &course, nil
	}

	err := r.db.WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\" asc, id asc")
		}).
		First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}

	r.writeCache(ctx, key, course, r.detailTTL)
	return &course, nil
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Course{}).Count(&count).Error
	return count, err
}

// Create stores the course together with any lessons attached to it.
func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return err
	}
	r.invalidate(ctx, catalogKey)
	return nil
}

// Ошибки кеша не фатальны: логируем и идём в БД
func (r *CourseRepository) readCache(ctx context.Context, key string, dst interface{}) bool {
	val, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("course cache read %s: %v", key, err)
		}
		return false
	}
	return json.Unmarshal(val, dst) == nil
}

func (r *CourseRepository) writeCache(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("course cache write %s: %v", key, err)
	}
}

func (r *CourseRepository) invalidate(ctx context.Context, keys ...string) {
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("course cache invalidate: %v", err)
	}
}
