package model

import "time"

type AnswerMode string

const (
	ModePractice AnswerMode = "practice"
	ModeExam     AnswerMode = "exam"
)

// AnswerRecord is one evaluated answer in the append-only log. Practice
// answers are written as they happen; exam answers are written once, when the
// session is scored.
type AnswerRecord struct {
	BaseModel
	UserID         uint       `gorm:"index;not null" json:"userId"`
	Specialization string     `gorm:"size:50;index;not null" json:"specialization"`
	QuestionNumber int        `gorm:"not null;index:idx_exam_question,unique" json:"questionNumber"`
	Mode           AnswerMode `gorm:"size:20;not null" json:"mode"`
	ExamID         *uint      `gorm:"index:idx_exam_question,unique" json:"examId,omitempty"`
	IsCorrect      bool       `json:"isCorrect"`
	IsAnswered     bool       `json:"isAnswered"`
	AnsweredAt     time.Time  `gorm:"index" json:"answeredAt"`
}

func (AnswerRecord) TableName() string {
	return "answer_records"
}

// ExamSubmission is one raw in-exam answer. A question may be submitted more
// than once; only the latest by timestamp counts at scoring time. Rows are
// never mutated.
type ExamSubmission struct {
	BaseModel
	ExamID         uint       `gorm:"index;not null" json:"examId"`
	QuestionNumber int        `gorm:"not null" json:"questionNumber"`
	Answer         StringList `gorm:"type:text" json:"answer"`
	SubmittedAt    time.Time  `gorm:"not null" json:"submittedAt"`
}

func (ExamSubmission) TableName() string {
	return "exam_submissions"
}
