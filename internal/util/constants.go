package util

import "strconv"

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// XP amounts awarded by the gamification engine.
const (
	XPCorrectPractice = 5
	XPStreakUpkeep    = 5
)

// ReasonCorrectPractice is the xp_history reason for a correct practice answer.
const ReasonCorrectPractice = "Correct answer in practice"

// Streak milestone achievement names, keyed by the streak day they unlock at.
var StreakMilestones = map[int]string{
	3:  "3-Day Streak",
	7:  "7-Day Streak",
	30: "30-Day Streak",
}

const (
	AchievementFirstCorrect    = "First Correct Answer"
	AchievementFirstExamPassed = "First Exam Passed"
)

// MaxLevel caps level-ups; XP keeps accumulating past it.
const MaxLevel = 6

// levelXPRequirements maps a level to the XP needed to leave it.
var levelXPRequirements = map[int]int{
	1: 100,
	2: 200,
	3: 400,
	4: 800,
	5: 1600,
}

// XPRequirement returns the XP needed to advance from the given level.
// Levels past the table get a display-only requirement of 3000.
func XPRequirement(level int) int {
	if req, ok := levelXPRequirements[level]; ok {
		return req
	}
	return 3000
}

// RankForLevel derives the gamification rank from a level.
func RankForLevel(level int) string {
	switch {
	case level >= 5:
		return "Parra"
	case level >= 3:
		return "Maestro"
	case level >= 2:
		return "Padawan"
	default:
		return "Iniciado"
	}
}

// MustParseUint converts a path/query parameter, returning 0 on failure.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}
