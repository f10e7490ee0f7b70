package service

import (
	"especialidades_backend/internal/model"
	"especialidades_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddExperienceRollsOverLevels(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	g := newGamificationForTest(t, db)

	// 150 XP: level 1 needs 100, the 50 overflow stays at level 2.
	update, err := g.AddExperience(user.ID, 150, "test")
	require.NoError(t, err)
	assert.Equal(t, 2, update.Level)
	assert.Equal(t, 50, update.XP)
	assert.True(t, update.LevelUp)
	assert.Equal(t, "Padawan", update.Rank)

	var history []model.XPHistory
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, 150, history[0].Amount)
	assert.Equal(t, "test", history[0].Reason)
}

func TestAddExperienceMultipleLevelsAtOnce(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	g := newGamificationForTest(t, db)

	// 100+200+400 clears levels 1-3 exactly.
	update, err := g.AddExperience(user.ID, 700, "test")
	require.NoError(t, err)
	assert.Equal(t, 4, update.Level)
	assert.Equal(t, 0, update.XP)
	assert.Equal(t, "Maestro", update.Rank)
}

func TestAddExperienceCapsAtMaxLevel(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	g := newGamificationForTest(t, db)

	update, err := g.AddExperience(user.ID, 100000, "test")
	require.NoError(t, err)
	assert.Equal(t, util.MaxLevel, update.Level)
	// XP past the cap accumulates without further level-ups.
	assert.Equal(t, 100000-100-200-400-800-1600, update.XP)
	assert.Equal(t, "Parra", update.Rank)

	update, err = g.AddExperience(user.ID, 5000, "more")
	require.NoError(t, err)
	assert.Equal(t, util.MaxLevel, update.Level)
	assert.False(t, update.LevelUp)
}

func TestRankBoundaries(t *testing.T) {
	assert.Equal(t, "Iniciado", util.RankForLevel(1))
	assert.Equal(t, "Padawan", util.RankForLevel(2))
	assert.Equal(t, "Maestro", util.RankForLevel(3))
	assert.Equal(t, "Maestro", util.RankForLevel(4))
	assert.Equal(t, "Parra", util.RankForLevel(5))
	assert.Equal(t, "Parra", util.RankForLevel(6))
}

func TestUpdateStreakIncrementsAfterYesterday(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	g := newGamificationForTest(t, db)

	day1 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	now, setNow := fixedClock(day1)
	g.now = now

	update, err := g.UpdateStreak(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, update.StreakDays)
	assert.True(t, update.Incremented)

	setNow(day1.AddDate(0, 0, 1))
	update, err = g.UpdateStreak(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, update.StreakDays)
}

func TestUpdateStreakSameDayIsNoOp(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	g := newGamificationForTest(t, db)

	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	now, setNow := fixedClock(day)
	g.now = now

	_, err := g.UpdateStreak(user.ID)
	require.NoError(t, err)

	setNow(day.Add(8 * time.Hour))
	update, err := g.UpdateStreak(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, update.StreakDays)
	assert.False(t, update.Incremented)

	// No second upkeep XP on the same day.
	var count int64
	require.NoError(t, db.Model(&model.XPHistory{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateStreakResetsAfterGap(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	g := newGamificationForTest(t, db)

	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	now, setNow := fixedClock(day)
	g.now = now

	_, err := g.UpdateStreak(user.ID)
	require.NoError(t, err)
	setNow(day.AddDate(0, 0, 1))
	_, err = g.UpdateStreak(user.ID)
	require.NoError(t, err)

	// Five days of silence resets to 1, not 0.
	setNow(day.AddDate(0, 0, 6))
	update, err := g.UpdateStreak(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, update.StreakDays)
	assert.True(t, update.Incremented)
}

func TestStreakMilestoneAwardsAchievement(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	g := newGamificationForTest(t, db)

	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	now, setNow := fixedClock(day)
	g.now = now

	for i := 0; i < 3; i++ {
		setNow(day.AddDate(0, 0, i))
		_, err := g.UpdateStreak(user.ID)
		require.NoError(t, err)
	}

	earned, err := g.GetEarnedAchievements(user.ID)
	require.NoError(t, err)
	require.Len(t, earned, 1)
	assert.Equal(t, "3-Day Streak", earned[0].Name)

	// The unlock pays its XP reward on top of the daily upkeep.
	var total int
	require.NoError(t, db.Model(&model.XPHistory{}).
		Where("user_id = ?", user.ID).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error)
	assert.Equal(t, 3*util.XPStreakUpkeep+15, total)
}

func TestAwardAchievementIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	g := newGamificationForTest(t, db)

	awarded, err := g.AwardAchievement(user.ID, util.AchievementFirstCorrect)
	require.NoError(t, err)
	assert.True(t, awarded)

	awarded, err = g.AwardAchievement(user.ID, util.AchievementFirstCorrect)
	require.NoError(t, err)
	assert.False(t, awarded)

	earned, err := g.GetEarnedAchievements(user.ID)
	require.NoError(t, err)
	assert.Len(t, earned, 1)
}

func TestAwardAchievementUnknownNameIsIgnored(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	g := newGamificationForTest(t, db)

	awarded, err := g.AwardAchievement(user.ID, "No Such Badge")
	require.NoError(t, err)
	assert.False(t, awarded)
}

func TestGetLeaderboardOrdersByLevelThenXP(t *testing.T) {
	db := newTestDB(t)
	g := newGamificationForTest(t, db)

	users := []model.User{
		{Nickname: "low", Email: "low@example.com", Password: "x", Level: 2, XP: 10},
		{Nickname: "top", Email: "top@example.com", Password: "x", Level: 4, XP: 5},
		{Nickname: "mid", Email: "mid@example.com", Password: "x", Level: 2, XP: 90},
		{Nickname: "hidden", Email: "hidden@example.com", Password: "x", Level: 6, XP: 0, Disabled: true},
	}
	for i := range users {
		require.NoError(t, db.Create(&users[i]).Error)
	}

	entries, err := g.GetLeaderboard(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "top", entries[0].Nickname)
	assert.Equal(t, "mid", entries[1].Nickname)
	assert.Equal(t, "low", entries[2].Nickname)
	assert.Equal(t, 1, entries[0].Position)
}
