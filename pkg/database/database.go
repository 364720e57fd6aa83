package database

import (
	"fmt"
	"log"

	"quantum_edu_backend/internal/config"
	"quantum_edu_backend/internal/model"

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
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := Seed(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Lesson{},
		&model.UserProgress{},
		&model.Badge{},
		&model.UserBadge{},
		&model.TutorConversation{},
	)
}

// Seed inserts the default lesson catalog and badge set when the tables are
// empty. Safe to run on every boot.
func Seed(db *gorm.DB) error {
	var lessonCount int64
	if err := db.Model(&model.Lesson{}).Count(&lessonCount).Error; err != nil {
		return err
	}
	if lessonCount == 0 {
		defaultLessons := []model.Lesson{
			{Title: "Algebra Basics", Description: "Learn the fundamentals of algebra", Discipline: "Mathematics", Level: "Beginner", XPReward: 100},
			{Title: "Advanced Equations", Description: "Master complex algebraic equations", Discipline: "Mathematics", Level: "Intermediate", XPReward: 250},
			{Title: "Calculus Fundamentals", Description: "Introduction to calculus concepts", Discipline: "Mathematics", Level: "Advanced", XPReward: 500},
			{Title: "Force and Motion", Description: "Understand Newton's laws", Discipline: "Physics", Level: "Beginner", XPReward: 150},
			{Title: "Quantum Mechanics", Description: "Explore the quantum world", Discipline: "Physics", Level: "Advanced", XPReward: 600},
			{Title: "Python Basics", Description: "Introduction to Python programming", Discipline: "Computer Science", Level: "Beginner", XPReward: 200},
			{Title: "Web Development", Description: "Build modern web applications", Discipline: "Computer Science", Level: "Intermediate", XPReward: 350},
			{Title: "Robotics Intro", Description: "Get started with robotics", Discipline: "Engineering", Level: "Beginner", XPReward: 180},
			{Title: "Circuit Design", Description: "Design and build circuits", Discipline: "Electronics", Level: "Intermediate", XPReward: 280},
			{Title: "Microcontrollers", Description: "Program microcontrollers", Discipline: "Electronics", Level: "Advanced", XPReward: 450},
		}
		for i := range defaultLessons {
			if err := db.Create(&defaultLessons[i]).Error; err != nil {
				return err
			}
		}
	}

	var badgeCount int64
	if err := db.Model(&model.Badge{}).Count(&badgeCount).Error; err != nil {
		return err
	}
	if badgeCount == 0 {
		defaultBadges := []model.Badge{
			{Name: "First Steps", Description: "Complete your first lesson", Icon: "rocket", Criteria: "completed_lessons >= 1"},
			{Name: "Curious Mind", Description: "Ask the AI tutor a question", Icon: "lightbulb", Criteria: "tutor_questions >= 1"},
		}
		for i := range defaultBadges {
			if err := db.Create(&defaultBadges[i]).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
