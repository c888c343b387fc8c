package usecase

import (
	"context"
	"time"

	"github.com/VoltEdgeBuilds/learn/internal/domain"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

type mockHasher struct{ mock.Mock }

func (m *mockHasher) Hash(pin string) (string, error) {
	args := m.Called(pin)
	return args.String(0), args.Error(1)
}

func (m *mockHasher) Compare(hash, pin string) error {
	return m.Called(hash, pin).Error(0)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) Generate(phone string) (string, string, error) {
	args := m.Called(phone)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokens) ValidateRefreshToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *mockTokens) RefreshTTL() time.Duration { return time.Hour }

type mockTokenStore struct{ mock.Mock }

func (m *mockTokenStore) SaveRefresh(ctx context.Context, phone, token string, ttl time.Duration) error {
	return m.Called(ctx, phone, token, ttl).Error(0)
}

func (m *mockTokenStore) CheckRefresh(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *mockTokenStore) DeleteRefresh(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type mockCourseRepo struct{ mock.Mock }

func (m *mockCourseRepo) List(ctx context.Context) ([]domain.Course, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]domain.Course)
	return cs, args.Error(1)
}

func (m *mockCourseRepo) GetWithLessons(ctx context.Context, id uint) (*domain.Course, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Course)
	return c, args.Error(1)
}

// mockProgressRepo runs apply against the row configured for Update and records
// every row that would have been upserted.
type mockProgressRepo struct {
	mock.Mock
	saved []domain.Progress
}

func (m *mockProgressRepo) Get(ctx context.Context, phone string, courseID uint) (*domain.Progress, error) {
	args := m.Called(ctx, phone, courseID)
	p, _ := args.Get(0).(*domain.Progress)
	return p, args.Error(1)
}

func (m *mockProgressRepo) ListByUser(ctx context.Context, phone string) ([]domain.Progress, error) {
	args := m.Called(ctx, phone)
	rows, _ := args.Get(0).([]domain.Progress)
	return rows, args.Error(1)
}

func (m *mockProgressRepo) Update(ctx context.Context, phone string, courseID uint, apply func(p *domain.Progress) (bool, error)) (*domain.Progress, error) {
	args := m.Called(ctx, phone, courseID)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	row := domain.Progress{UserPhone: phone, CourseID: courseID, CompletedLessonsIDs: "[]"}
	if stored, ok := args.Get(0).(*domain.Progress); ok && stored != nil {
		row = *stored
	}
	changed, err := apply(&row)
	if err != nil {
		return nil, err
	}
	if changed {
		m.saved = append(m.saved, row)
	}
	return &row, nil
}
