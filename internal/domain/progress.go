package domain

import (
	"encoding/json"
	"sort"
	"time"
)

// Progress is the persisted record of a user's completed lessons in one course.
// The (UserPhone, CourseID) pair is the upsert conflict target.
type Progress struct {
	UserPhone           string    `gorm:"primaryKey;size:20" json:"user_phone"`
	CourseID            uint      `gorm:"primaryKey;autoIncrement:false" json:"course_id"`
	CourseTitle         string    `json:"course_title"`
	UserFirstName       string    `json:"user_first_name,omitempty"`
	UserLastName        string    `json:"user_last_name,omitempty"`
	CompletedLessonsIDs string    `gorm:"column:completed_lessons_ids;not null;default:'[]'" json:"completed_lessons_ids"`
	ProgressPercentage  int       `gorm:"not null;default:0" json:"progress_percentage"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (Progress) TableName() string {
	return "progress"
}

type ProgressState string

const (
	StateNotStarted ProgressState = "not_started"
	StateInProgress ProgressState = "in_progress"
	StateComplete   ProgressState = "complete"
)

// Percent is floor(100*completed/total), 0 for an empty course.
func Percent(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	return completed * 100 / total
}

func StateOf(percent int) ProgressState {
	switch {
	case percent <= 0:
		return StateNotStarted
	case percent >= 100:
		return StateComplete
	default:
		return StateInProgress
	}
}

// CompletedSet is the set of completed lesson ids.
type CompletedSet map[uint]struct{}

func NewCompletedSet(ids ...uint) CompletedSet {
	s := make(CompletedSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// DecodeCompletedSet parses the stored JSON array. A malformed value yields an
// empty set together with the parse error so the caller can log it.
func DecodeCompletedSet(raw string) (CompletedSet, error) {
	if raw == "" {
		return NewCompletedSet(), nil
	}
	var ids []uint
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return NewCompletedSet(), err
	}
	return NewCompletedSet(ids...), nil
}

func (s CompletedSet) Has(id uint) bool {
	_, ok := s[id]
	return ok
}

// Complete adds id and reports whether the set changed.
func (s CompletedSet) Complete(id uint) bool {
	if s.Has(id) {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Incomplete removes id and reports whether the set changed.
func (s CompletedSet) Incomplete(id uint) bool {
	if !s.Has(id) {
		return false
	}
	delete(s, id)
	return true
}

// IDs returns the members in ascending order.
func (s CompletedSet) IDs() []uint {
	ids := make([]uint, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Encode renders the set as a JSON array, e.g. "[1,3]".
func (s CompletedSet) Encode() string {
	b, _ := json.Marshal(s.IDs())
	return string(b)
}

// Tracker holds the completion state of one course for one user.
type Tracker struct {
	lessons map[uint]struct{}
	done    CompletedSet
}

// NewTracker drops ids in done that are not lessons of the course.
func NewTracker(lessons []Lesson, done CompletedSet) *Tracker {
	t := &Tracker{
		lessons: make(map[uint]struct{}, len(lessons)),
		done:    NewCompletedSet(),
	}
	for _, l := range lessons {
		t.lessons[l.ID] = struct{}{}
	}
	for id := range done {
		if _, ok := t.lessons[id]; ok {
			t.done[id] = struct{}{}
		}
	}
	return t
}

// Set marks lessonID completed or not and reports whether anything changed.
func (t *Tracker) Set(lessonID uint, completed bool) (bool, error) {
	if _, ok := t.lessons[lessonID]; !ok {
		return false, ErrLessonNotInCourse
	}
	if completed {
		return t.done.Complete(lessonID), nil
	}
	return t.done.Incomplete(lessonID), nil
}

func (t *Tracker) Completed() CompletedSet { return t.done }

func (t *Tracker) Total() int { return len(t.lessons) }

func (t *Tracker) Percent() int { return Percent(len(t.done), len(t.lessons)) }

func (t *Tracker) State() ProgressState { return StateOf(t.Percent()) }

func (t *Tracker) CertificateVisible() bool { return t.Percent() == 100 }

// ApplyTo copies the tracker's state onto the progress row.
func (t *Tracker) ApplyTo(p *Progress) {
	p.CompletedLessonsIDs = t.done.Encode()
	p.ProgressPercentage = t.Percent()
}
