package database

import (
	"cosmic_quiz_backend/internal/config"
	"cosmic_quiz_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the MySQL connection and, when migrate is set, runs the
// schema migration and seeds the default badge ladder and categories.
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
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

	if migrate {
		err = db.AutoMigrate(
			&model.User{},
			&model.Category{},
			&model.Question{},
			&model.AnswerOption{},
			&model.UserAnswer{},
			&model.Badge{},
			&model.UserBadge{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")

		seedBadges(db)
		seedCategories(db)
	}

	return db, nil
}

// seedBadges installs the default badge ladder on an empty table. Thresholds
// match the point values questions can award (10/25/50 per difficulty).
func seedBadges(db *gorm.DB) {
	var count int64
	db.Model(&model.Badge{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Badge{
		{Name: "Rising Star", Description: "Earn your first 10 points", RequiredPoints: 10, Color: "#facc15"},
		{Name: "Stargazer", Description: "Reach 25 points", RequiredPoints: 25, Color: "#38bdf8"},
		{Name: "Comet Chaser", Description: "Reach 50 points", RequiredPoints: 50, Color: "#a78bfa"},
		{Name: "Orbit Breaker", Description: "Reach 100 points", RequiredPoints: 100, Color: "#fb923c"},
		{Name: "Supernova", Description: "Reach 250 points", RequiredPoints: 250, Color: "#f87171"},
		{Name: "Galaxy Brain", Description: "Reach 500 points", RequiredPoints: 500, Color: "#34d399"},
	}
	for _, b := range defaults {
		db.Create(&b)
	}
}

func seedCategories(db *gorm.DB) {
	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Category{
		{Name: "Science", Description: "Physics, chemistry, biology and space"},
		{Name: "History", Description: "From antiquity to the modern era"},
		{Name: "Geography", Description: "Countries, capitals and landscapes"},
		{Name: "Sports", Description: "Games, records and athletes"},
		{Name: "Art", Description: "Painting, music, film and literature"},
		{Name: "Technology", Description: "Computing, inventions and the web"},
	}
	for _, c := range defaults {
		db.Create(&c)
	}
}
