package database

import (
	"especialidades_backend/internal/config"
	"especialidades_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate runs AutoMigrate and seeds the achievement catalog. Shared with the
// test suite, which runs it against an in-memory SQLite database.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.AnswerRecord{},
		&model.ExamSubmission{},
		&model.ExamSession{},
		&model.Achievement{},
		&model.AchievementUnlock{},
		&model.XPHistory{},
		&model.DocSnippet{},
		&model.ActionLog{},
	)
	if err != nil {
		return err
	}

	return seedAchievements(db)
}

// seedAchievements inserts the default catalog when the table is empty.
func seedAchievements(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Achievement{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []model.Achievement{
		{Name: "First Correct Answer", Description: "Answer your first question correctly", Icon: "🎯", XPReward: 10},
		{Name: "3-Day Streak", Description: "Study three days in a row", Icon: "🔥", XPReward: 15},
		{Name: "7-Day Streak", Description: "Study a whole week without a break", Icon: "🔥🔥", XPReward: 35},
		{Name: "30-Day Streak", Description: "Study every day for a month", Icon: "🔥🔥🔥", XPReward: 150},
		{Name: "First Exam Passed", Description: "Pass your first mock exam", Icon: "🏆", XPReward: 50},
	}
	for i := range defaults {
		if err := db.Create(&defaults[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
