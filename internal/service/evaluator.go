package service

// EvalResult is the outcome of comparing a submission to the answer key.
type EvalResult int

const (
	Unanswered EvalResult = iota
	Correct
	Incorrect
)

func (r EvalResult) String() string {
	switch r {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "unanswered"
	}
}

// Evaluate compares a submitted answer against the canonical one as sets:
// order and duplicates are irrelevant, and a partially correct multi-select
// is incorrect, not partial credit. An empty submission is Unanswered.
func Evaluate(submitted, correct []string) EvalResult {
	if len(submitted) == 0 {
		return Unanswered
	}

	want := make(map[string]bool, len(correct))
	for _, c := range correct {
		want[c] = true
	}
	got := make(map[string]bool, len(submitted))
	for _, s := range submitted {
		got[s] = true
	}

	if len(got) != len(want) {
		return Incorrect
	}
	for s := range got {
		if !want[s] {
			return Incorrect
		}
	}
	return Correct
}
