package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lessonsN(n int) []Lesson {
	out := make([]Lesson, n)
	for i := range out {
		out[i] = Lesson{ID: uint(i + 1), Order: i + 1}
	}
	return out
}

func TestPercent(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{0, 4, 0},
		{1, 4, 25},
		{1, 3, 33},
		{2, 3, 66},
		{4, 4, 100},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Percent(c.completed, c.total), "%d/%d", c.completed, c.total)
	}
}

func TestStateOf(t *testing.T) {
	assert.Equal(t, StateNotStarted, StateOf(0))
	assert.Equal(t, StateInProgress, StateOf(1))
	assert.Equal(t, StateInProgress, StateOf(99))
	assert.Equal(t, StateComplete, StateOf(100))
}

func TestCompletedSet_Idempotent(t *testing.T) {
	s := NewCompletedSet()

	assert.True(t, s.Complete(3))
	assert.False(t, s.Complete(3))
	assert.Len(t, s, 1)

	assert.True(t, s.Incomplete(3))
	assert.False(t, s.Incomplete(3))
	assert.Len(t, s, 0)
}

func TestCompletedSet_EncodeDecode(t *testing.T) {
	s := NewCompletedSet(5, 1, 3)
	assert.Equal(t, "[1,3,5]", s.Encode())
	assert.Equal(t, "[]", NewCompletedSet().Encode())

	got, err := DecodeCompletedSet("[2,7]")
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 7}, got.IDs())

	got, err = DecodeCompletedSet("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeCompletedSet_Malformed(t *testing.T) {
	got, err := DecodeCompletedSet("not-json")
	assert.Error(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTracker_FirstOfFour(t *testing.T) {
	tr := NewTracker(lessonsN(4), NewCompletedSet())

	changed, err := tr.Set(1, true)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 25, tr.Percent())
	assert.Equal(t, StateInProgress, tr.State())
	assert.False(t, tr.CertificateVisible())

	var p Progress
	tr.ApplyTo(&p)
	assert.Equal(t, "[1]", p.CompletedLessonsIDs)
	assert.Equal(t, 25, p.ProgressPercentage)
}

func TestTracker_CertificateToggles(t *testing.T) {
	tr := NewTracker(lessonsN(2), NewCompletedSet(1))

	_, err := tr.Set(2, true)
	require.NoError(t, err)
	assert.Equal(t, 100, tr.Percent())
	assert.Equal(t, StateComplete, tr.State())
	assert.True(t, tr.CertificateVisible())

	_, err = tr.Set(2, false)
	require.NoError(t, err)
	assert.Equal(t, 50, tr.Percent())
	assert.False(t, tr.CertificateVisible())
}

func TestTracker_RepeatedToggleIsNoop(t *testing.T) {
	tr := NewTracker(lessonsN(3), NewCompletedSet(2))

	changed, err := tr.Set(2, true)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = tr.Set(1, false)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, []uint{2}, tr.Completed().IDs())
}

func TestTracker_UnknownLesson(t *testing.T) {
	tr := NewTracker(lessonsN(2), NewCompletedSet())

	_, err := tr.Set(42, true)
	assert.ErrorIs(t, err, ErrLessonNotInCourse)
}

func TestTracker_DropsStaleIDs(t *testing.T) {
	tr := NewTracker(lessonsN(2), NewCompletedSet(1, 99))

	assert.Equal(t, []uint{1}, tr.Completed().IDs())
	assert.Equal(t, 50, tr.Percent())
}

func TestTracker_EmptyCourse(t *testing.T) {
	tr := NewTracker(nil, NewCompletedSet(1))

	assert.Equal(t, 0, tr.Percent())
	assert.Equal(t, StateNotStarted, tr.State())
	assert.False(t, tr.CertificateVisible())
}
