package service

import (
	"context"
	"encoding/json"
	"especialidades_backend/internal/model"
	"especialidades_backend/internal/repository"
	"especialidades_backend/internal/util"
	"especialidades_backend/pkg/logger"
	"especialidades_backend/pkg/monitoring"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const leaderboardCacheKey = "gamification:leaderboard"
const leaderboardCacheTTL = time.Minute

// GamificationService owns XP, levels, ranks, streaks and achievements.
// Every mutation runs in a single transaction so XP is never granted without
// its history row, and an unlock is never recorded without its reward.
type GamificationService struct {
	db              *gorm.DB
	rdb             *redis.Client
	UserRepo        *repository.UserRepository
	AchievementRepo *repository.AchievementRepository
	XPHistoryRepo   *repository.XPHistoryRepository

	// now is swapped out by tests to simulate calendar days.
	now func() time.Time
}

func NewGamificationService(
	db *gorm.DB,
	rdb *redis.Client,
	userRepo *repository.UserRepository,
	achievementRepo *repository.AchievementRepository,
	xpHistoryRepo *repository.XPHistoryRepository,
) *GamificationService {
	return &GamificationService{
		db:              db,
		rdb:             rdb,
		UserRepo:        userRepo,
		AchievementRepo: achievementRepo,
		XPHistoryRepo:   xpHistoryRepo,
		now:             time.Now,
	}
}

// ProgressUpdate is the result of an XP grant.
type ProgressUpdate struct {
	XP          int    `json:"xp"`
	Level       int    `json:"level"`
	Rank        string `json:"rank"`
	NextLevelXP int    `json:"nextLevelXp"`
	LevelUp     bool   `json:"levelUp"`
	XPGained    int    `json:"xpGained"`
	Reason      string `json:"reason"`
}

// AddExperience grants XP, rolling overflow into level-ups up to the cap.
func (s *GamificationService) AddExperience(userID uint, amount int, reason string) (*ProgressUpdate, error) {
	var update *ProgressUpdate
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		update, err = s.addExperienceTx(tx, userID, amount, reason)
		return err
	})
	if err != nil {
		return nil, err
	}
	return update, nil
}

// addExperienceTx is the transactional body, composable from streak and
// achievement flows so one logical event stays one transaction.
func (s *GamificationService) addExperienceTx(tx *gorm.DB, userID uint, amount int, reason string) (*ProgressUpdate, error) {
	var user model.User
	if err := tx.First(&user, userID).Error; err != nil {
		return nil, err
	}

	newXP := user.XP + amount
	newLevel := user.Level
	if newLevel < 1 {
		newLevel = 1
	}
	levelUp := false

	for newLevel < util.MaxLevel && newXP >= util.XPRequirement(newLevel) {
		newXP -= util.XPRequirement(newLevel)
		newLevel++
		levelUp = true
	}

	user.XP = newXP
	user.Level = newLevel
	user.Rank = util.RankForLevel(newLevel)

	if err := tx.Save(&user).Error; err != nil {
		return nil, err
	}

	history := model.XPHistory{UserID: userID, Amount: amount, Reason: reason}
	if err := tx.Create(&history).Error; err != nil {
		return nil, err
	}

	if levelUp {
		logger.Log.Info("level up",
			zap.Uint("userId", userID),
			zap.Int("level", newLevel),
			zap.String("rank", user.Rank))
	}
	monitoring.XPAwarded.Add(float64(amount))

	return &ProgressUpdate{
		XP:          newXP,
		Level:       newLevel,
		Rank:        user.Rank,
		NextLevelXP: util.XPRequirement(newLevel),
		LevelUp:     levelUp,
		XPGained:    amount,
		Reason:      reason,
	}, nil
}

// StreakUpdate is the result of a daily streak check.
type StreakUpdate struct {
	StreakDays  int  `json:"streakDays"`
	Incremented bool `json:"incremented"`
}

// UpdateStreak advances the consecutive-day counter: active yesterday
// continues the streak, a gap of two or more days resets it to 1, and a
// second call on the same day is a no-op.
func (s *GamificationService) UpdateStreak(userID uint) (*StreakUpdate, error) {
	var update *StreakUpdate
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		now := s.now()
		today := dateOf(now)
		yesterday := today.AddDate(0, 0, -1)

		var lastDate time.Time
		if !user.LastActive.IsZero() {
			lastDate = dateOf(user.LastActive)
		}

		switch {
		case lastDate.Equal(today):
			update = &StreakUpdate{StreakDays: user.StreakDays, Incremented: false}
			return nil
		case lastDate.Equal(yesterday):
			user.StreakDays++
		default:
			// Gap of two or more days, or never active.
			user.StreakDays = 1
		}

		user.LastActive = now
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		update = &StreakUpdate{StreakDays: user.StreakDays, Incremented: true}

		reason := fmt.Sprintf("Mantener racha de %d días", user.StreakDays)
		if _, err := s.addExperienceTx(tx, userID, util.XPStreakUpkeep, reason); err != nil {
			return err
		}

		if name, ok := util.StreakMilestones[user.StreakDays]; ok {
			if _, err := s.awardAchievementTx(tx, userID, name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return update, nil
}

// AwardAchievement unlocks an achievement once. It returns false without
// error when the user already holds it or the name is unknown.
func (s *GamificationService) AwardAchievement(userID uint, name string) (bool, error) {
	awarded := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		awarded, err = s.awardAchievementTx(tx, userID, name)
		return err
	})
	return awarded, err
}

func (s *GamificationService) awardAchievementTx(tx *gorm.DB, userID uint, name string) (bool, error) {
	var achievement model.Achievement
	if err := tx.Where("name = ?", name).First(&achievement).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}

	var count int64
	err := tx.Model(&model.AchievementUnlock{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievement.ID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	unlock := model.AchievementUnlock{
		UserID:        userID,
		AchievementID: achievement.ID,
		EarnedAt:      s.now(),
	}
	if err := tx.Create(&unlock).Error; err != nil {
		return false, err
	}

	if achievement.XPReward > 0 {
		reason := fmt.Sprintf("Logro: %s", achievement.Name)
		if _, err := s.addExperienceTx(tx, userID, achievement.XPReward, reason); err != nil {
			return false, err
		}
	}

	logger.Log.Info("achievement unlocked",
		zap.Uint("userId", userID),
		zap.String("achievement", achievement.Name))
	return true, nil
}

// Profile is the gamification view of a user.
type Profile struct {
	Nickname    string `json:"nickname"`
	XP          int    `json:"xp"`
	Level       int    `json:"level"`
	Rank        string `json:"rank"`
	NextLevelXP int    `json:"nextLevelXp"`
	StreakDays  int    `json:"streakDays"`
}

func (s *GamificationService) GetProfile(userID uint) (*Profile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return &Profile{
		Nickname:    user.Nickname,
		XP:          user.XP,
		Level:       user.Level,
		Rank:        user.Rank,
		NextLevelXP: util.XPRequirement(user.Level),
		StreakDays:  user.StreakDays,
	}, nil
}

func (s *GamificationService) GetEarnedAchievements(userID uint) ([]model.Achievement, error) {
	return s.AchievementRepo.FindEarnedByUser(userID)
}

func (s *GamificationService) GetCatalog() ([]model.Achievement, error) {
	return s.AchievementRepo.FindAll()
}

func (s *GamificationService) GetXPHistory(userID uint, days int) ([]repository.DailyXP, error) {
	since := dateOf(s.now()).AddDate(0, 0, -days)
	return s.XPHistoryRepo.DailyTotals(userID, since)
}

// LeaderboardEntry is one leaderboard row.
type LeaderboardEntry struct {
	Position   int    `json:"position"`
	Nickname   string `json:"nickname"`
	Level      int    `json:"level"`
	XP         int    `json:"xp"`
	Rank       string `json:"rank"`
	StreakDays int    `json:"streakDays"`
}

// GetLeaderboard returns the top users, served from a short-lived Redis
// cache when available.
func (s *GamificationService) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	ctx := context.Background()

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, leaderboardCacheKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil && len(entries) >= limit {
				return entries[:limit], nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByXP(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = LeaderboardEntry{
			Position:   i + 1,
			Nickname:   user.Nickname,
			Level:      user.Level,
			XP:         user.XP,
			Rank:       user.Rank,
			StreakDays: user.StreakDays,
		}
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(entries); err == nil {
			s.rdb.Set(ctx, leaderboardCacheKey, payload, leaderboardCacheTTL)
		}
	}
	return entries, nil
}

// dateOf truncates a timestamp to its calendar day.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
