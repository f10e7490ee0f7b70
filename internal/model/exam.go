package model

import "time"

type ExamStatus string

const (
	ExamSetup      ExamStatus = "setup"
	ExamInProgress ExamStatus = "in_progress"
	ExamScored     ExamStatus = "scored"
)

// ExamSession is one timed exam for one user. The question set is fixed when
// the session starts and never changes; scoring is the terminal transition.
type ExamSession struct {
	BaseModel
	UserID          uint       `gorm:"index;not null" json:"userId"`
	Specialization  string     `gorm:"size:50;index;not null" json:"specialization"`
	Status          ExamStatus `gorm:"size:20;not null;default:'setup'" json:"status"`
	QuestionSet     IntList    `gorm:"type:text" json:"questionSet"`
	DurationSeconds int        `gorm:"not null" json:"durationSeconds"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	CorrectCount    int        `gorm:"default:0" json:"correctCount"`
	IncorrectCount  int        `gorm:"default:0" json:"incorrectCount"`
	UnansweredCount int        `gorm:"default:0" json:"unansweredCount"`
	Passed          bool       `gorm:"default:false" json:"passed"`
}

func (ExamSession) TableName() string {
	return "exam_sessions"
}

// Remaining reports how much exam time is left at the given instant.
func (s *ExamSession) Remaining(now time.Time) time.Duration {
	deadline := s.StartTime.Add(time.Duration(s.DurationSeconds) * time.Second)
	return deadline.Sub(now)
}

// TimedOut reports whether the wall clock has passed the session deadline.
func (s *ExamSession) TimedOut(now time.Time) bool {
	return s.Remaining(now) <= 0
}
