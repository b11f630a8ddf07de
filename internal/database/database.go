package database

import (
	"fmt"
	"log"

	"github.com/cube5963/feedo-cfes/internal/config"
	"github.com/cube5963/feedo-cfes/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	log.Println("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Form{},
		&models.Section{},
		&models.Answer{},
		&models.FingerPrint{},
		&models.Metric{},
	)
	if err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Counter rows must exist before the first increment.
	for _, name := range []string{models.MetricAccess, models.MetricAnswer} {
		db.Where(models.Metric{Name: name}).FirstOrCreate(&models.Metric{Name: name})
	}

	log.Println("database migrated")
}
