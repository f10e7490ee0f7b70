package model

import "fmt"

// Question is one entry of a specialization's JSON bank. Banks are immutable
// once loaded for a session; only the admin import/delete paths rewrite them.
type Question struct {
	QuestionNumber int      `json:"question_number"`
	QuestionArea   []string `json:"question_area"`
	QuestionText   string   `json:"question"`
	ExtraInfo      string   `json:"question_extra_info,omitempty"`
	Answers        []string `json:"answers"`
	CorrectAnswer  []string `json:"correct_answer"`
	Explanation    string   `json:"explanation"`
	Reference      []string `json:"reference"`
}

// Validate checks a single question against the bank's contract.
func (q *Question) Validate() error {
	if q.QuestionNumber < 1 {
		return fmt.Errorf("question number %d is not 1-based", q.QuestionNumber)
	}
	if len(q.Answers) == 0 {
		return fmt.Errorf("question %d offers no answers", q.QuestionNumber)
	}
	if len(q.CorrectAnswer) == 0 {
		return fmt.Errorf("question %d has no correct answer", q.QuestionNumber)
	}
	offered := make(map[string]bool, len(q.Answers))
	for _, a := range q.Answers {
		offered[a] = true
	}
	for _, c := range q.CorrectAnswer {
		if !offered[c] {
			return fmt.Errorf("question %d: correct answer %q is not among the offered answers", q.QuestionNumber, c)
		}
	}
	return nil
}

// HasArea reports whether the question carries the given section tag.
func (q *Question) HasArea(area string) bool {
	for _, a := range q.QuestionArea {
		if a == area {
			return true
		}
	}
	return false
}
