package usecase

import (
	"context"
	"time"

	"github.com/VoltEdgeBuilds/learn/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
}

type PINHasher interface {
	Hash(pin string) (string, error)
	Compare(hash, pin string) error
}

type TokenManager interface {
	Generate(phone string) (access string, refresh string, err error)
	ValidateRefreshToken(token string) (string, error)
	RefreshTTL() time.Duration
}

type TokenStore interface {
	SaveRefresh(ctx context.Context, phone, refreshToken string, ttl time.Duration) error
	CheckRefresh(ctx context.Context, refreshToken string) (string, error)
	DeleteRefresh(ctx context.Context, refreshToken string) error
}

type CourseRepository interface {
	List(ctx context.Context) ([]domain.Course, error)
	GetWithLessons(ctx context.Context, id uint) (*domain.Course, error)
}

type ProgressRepository interface {
	Get(ctx context.Context, phone string, courseID uint) (*domain.Progress, error)
	ListByUser(ctx context.Context, phone string) ([]domain.Progress, error)
	Update(ctx context.Context, phone string, courseID uint, apply func(p *domain.Progress) (bool, error)) (*domain.Progress, error)
}
