package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/VoltEdgeBuilds/learn/internal/domain"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type playerDeps struct {
	courses  *mockCourseRepo
	progress *mockProgressRepo
	users    *mockUserRepo
}

func newPlayer() (*PlayerUseCase, playerDeps) {
	d := playerDeps{&mockCourseRepo{}, &mockProgressRepo{}, &mockUserRepo{}}
	uc := NewPlayerUseCase(d.courses, d.progress, d.users, domain.NewMedia("", ""), 0)
	uc.newBackOff = func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 2)
	}
	return uc, d
}

func fourLessonCourse() *domain.Course {
	return &domain.Course{
		ID:    9,
		Title: "Go",
		// deliberately out of order
		Lessons: []domain.Lesson{
			{ID: 3, Order: 3, Title: "c", YoutubeID: "vc"},
			{ID: 1, Order: 1, Title: "a", YoutubeID: "va"},
			{ID: 4, Order: 4, Title: "d", YoutubeID: "vd"},
			{ID: 2, Order: 2, Title: "b", YoutubeID: "vb"},
		},
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	uc, d := newPlayer()
	d.courses.On("GetWithLessons", ctx, uint(9)).Return(fourLessonCourse(), nil)
	d.users.On("GetByPhone", ctx, "555").Return(&domain.User{Phone: "555", FirstName: "Ada", LastName: "L"}, nil)
	d.progress.On("Get", ctx, "555", uint(9)).Return(&domain.Progress{CompletedLessonsIDs: "[2,4]"}, nil)

	v, err := uc.Open(ctx, "555", 9)
	require.NoError(t, err)

	require.Len(t, v.Lessons, 4)
	assert.Equal(t, []uint{1, 2, 3, 4}, []uint{v.Lessons[0].ID, v.Lessons[1].ID, v.Lessons[2].ID, v.Lessons[3].ID})
	assert.False(t, v.Lessons[0].Completed)
	assert.True(t, v.Lessons[1].Completed)
	assert.Equal(t, "https://www.youtube.com/embed/va?autoplay=1&controls=1&rel=0", v.Lessons[0].EmbedURL)
	assert.Equal(t, "https://img.youtube.com/vi/va/maxresdefault.jpg", v.ThumbnailURL)
	assert.Equal(t, 4, v.LessonsCount)
	assert.Equal(t, 50, v.Progress.Percent)
	assert.Equal(t, domain.StateInProgress, v.Progress.State)
	assert.Equal(t, "Ada", v.Learner.FirstName)
	assert.NotNil(t, v.LearningPoints)
}

func TestOpen_NoProgressAndUnknownUser(t *testing.T) {
	ctx := context.Background()
	uc, d := newPlayer()
	d.courses.On("GetWithLessons", ctx, uint(9)).Return(fourLessonCourse(), nil)
	d.users.On("GetByPhone", ctx, "555").Return(nil, domain.ErrUserNotFound)
	d.progress.On("Get", ctx, "555", uint(9)).Return(nil, domain.ErrProgressNotFound)

	v, err := uc.Open(ctx, "555", 9)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Progress.Percent)
	assert.Equal(t, domain.StateNotStarted, v.Progress.State)
	assert.Empty(t, v.Learner.FirstName)
}

func TestOpen_BrokenProgressRowTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	uc, d := newPlayer()
	d.courses.On("GetWithLessons", ctx, uint(9)).Return(fourLessonCourse(), nil)
	d.users.On("GetByPhone", ctx, "555").Return(&domain.User{Phone: "555"}, nil)
	d.progress.On("Get", ctx, "555", uint(9)).Return(&domain.Progress{CompletedLessonsIDs: "{oops"}, nil)

	v, err := uc.Open(ctx, "555", 9)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Progress.CompletedCount)
}

func TestOpen_CourseNotFound(t *testing.T) {
	ctx := context.Background()
	uc, d := newPlayer()
	d.courses.On("GetWithLessons", ctx, uint(1)).Return(nil, domain.ErrCourseNotFound)

	_, err := uc.Open(ctx, "555", 1)
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestSetLessonCompletion_FirstOfFour(t *testing.T) {
	ctx := context.Background()
	uc, d := newPlayer()
	d.courses.On("GetWithLessons", ctx, uint(9)).Return(fourLessonCourse(), nil)
	d.users.On("GetByPhone", ctx, "555").Return(&domain.User{Phone: "555", FirstName: "Ada"}, nil)
	d.progress.On("Update", ctx, "555", uint(9)).Return(nil, nil)

	v, err := uc.SetLessonCompletion(ctx, "555", 9, 1, true)
	require.NoError(t, err)

	assert.Equal(t, 25, v.Percent)
	assert.False(t, v.CertificateVisible)
	require.Len(t, d.progress.saved, 1)
	row := d.progress.saved[0]
	assert.Equal(t, "[1]", row.CompletedLessonsIDs)
	assert.Equal(t, 25, row.ProgressPercentage)
	assert.Equal(t, "Go", row.CourseTitle)
	assert.Equal(t, "Ada", row.UserFirstName)
}

func TestSetLessonCompletion_LastLessonShowsCertificate(t *testing.T) {
	ctx := context.Background()
	uc, d := newPlayer()
	d.courses.On("GetWithLessons", ctx, uint(9)).Return(fourLessonCourse(), nil)
	d.users.On("GetByPhone", ctx, "555").Return(&domain.User{Phone: "555"}, nil)
	d.progress.On("Update", ctx, "555", uint(9)).Return(&domain.Progress{CompletedLessonsIDs: "[1,2,3]"}, nil)

	v, err := uc.SetLessonCompletion(ctx, "555", 9, 4, true)
	require.NoError(t, err)
	assert.Equal(t, 100, v.Percent)
	assert.Equal(t, domain.StateComplete, v.State)
	assert.True(t, v.CertificateVisible)
	assert.Equal(t, "[1,2,3,4]", d.progress.saved[0].CompletedLessonsIDs)
}

func TestSetLessonCompletion_RepeatWritesNothing(t *testing.T) {
	ctx := context.Background()
	uc, d := newPlayer()
	d.courses.On("GetWithLessons", ctx, uint(9)).Return(fourLessonCourse(), nil)
	d.users.On("GetByPhone", ctx, "555").Return(&domain.User{Phone: "555"}, nil)
	d.progress.On("Update", ctx, "555", uint(9)).Return(&domain.Progress{CompletedLessonsIDs: "[1]"}, nil)

	v, err := uc.SetLessonCompletion(ctx, "555", 9, 1, true)
	require.NoError(t, err)
	assert.Equal(t, 25, v.Percent)

	v, err = uc.SetLessonCompletion(ctx, "555", 9, 2, false)
	require.NoError(t, err)
	assert.Equal(t, 25, v.Percent)
	assert.Empty(t, d.progress.saved)
}

func TestSetLessonCompletion_UnknownLessonNotRetried(t *testing.T) {
	ctx := context.Background()
	uc, d := newPlayer()
	d.courses.On("GetWithLessons", ctx, uint(9)).Return(fourLessonCourse(), nil)
	d.users.On("GetByPhone", ctx, "555").Return(&domain.User{Phone: "555"}, nil)
	d.progress.On("Update", ctx, "555", uint(9)).Return(nil, nil)

	_, err := uc.SetLessonCompletion(ctx, "555", 9, 77, true)
	assert.ErrorIs(t, err, domain.ErrLessonNotInCourse)
	d.progress.AssertNumberOfCalls(t, "Update", 1)
}

func TestSetLessonCompletion_RetriesTransientFailure(t *testing.T) {
	ctx := context.Background()
	uc, d := newPlayer()
	d.courses.On("GetWithLessons", ctx, uint(9)).Return(fourLessonCourse(), nil)
	d.users.On("GetByPhone", ctx, "555").Return(&domain.User{Phone: "555"}, nil)
	d.progress.On("Update", ctx, "555", uint(9)).Return(nil, errors.New("connection reset")).Once()
	d.progress.On("Update", ctx, "555", uint(9)).Return(nil, nil).Once()

	v, err := uc.SetLessonCompletion(ctx, "555", 9, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 25, v.Percent)
	d.progress.AssertNumberOfCalls(t, "Update", 2)
}

func TestSetLessonCompletion_GivesUp(t *testing.T) {
	ctx := context.Background()
	uc, d := newPlayer()
	boom := errors.New("db down")
	d.courses.On("GetWithLessons", ctx, uint(9)).Return(fourLessonCourse(), nil)
	d.users.On("GetByPhone", ctx, "555").Return(&domain.User{Phone: "555"}, nil)
	d.progress.On("Update", ctx, "555", uint(9)).Return(nil, boom)

	_, err := uc.SetLessonCompletion(ctx, "555", 9, 2, true)
	assert.ErrorIs(t, err, boom)
	// first try plus two retries
	d.progress.AssertNumberOfCalls(t, "Update", 3)
}

func TestProgressAndMyProgress(t *testing.T) {
	ctx := context.Background()
	uc, d := newPlayer()
	d.courses.On("GetWithLessons", ctx, uint(9)).Return(fourLessonCourse(), nil)
	d.progress.On("Get", ctx, "555", uint(9)).Return(&domain.Progress{CompletedLessonsIDs: "[1,2,3,4]"}, nil)
	d.progress.On("ListByUser", ctx, "555").Return([]domain.Progress{
		{CourseID: 9, CourseTitle: "Go", ProgressPercentage: 100},
		{CourseID: 3, CourseTitle: "Design", ProgressPercentage: 40},
	}, nil)

	pv, err := uc.Progress(ctx, "555", 9)
	require.NoError(t, err)
	assert.True(t, pv.CertificateVisible)

	list, err := uc.MyProgress(ctx, "555")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.StateComplete, list[0].State)
	assert.Equal(t, domain.StateInProgress, list[1].State)
	d.progress.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
