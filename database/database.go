package database

import (
	"gorm.io/gorm"

	"github.com/vibe-graveyard/backend/models"
)

type Database struct {
	graveRepo *GraveRepo
	statsRepo *StatsRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		graveRepo: NewGraveRepo(db),
		statsRepo: NewStatsRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) GraveRepo() *GraveRepo {
	return d.graveRepo
}

func (d Database) StatsRepo() *StatsRepo {
	return d.statsRepo
}

// Bootstrap creates the graves and global_stats tables if they do not exist
// and seeds the singleton stats row. Safe to run on every start.
func (d Database) Bootstrap() error {
	if err := d.graveRepo.db.AutoMigrate(&models.Grave{}, &models.GlobalStats{}); err != nil {
		return err
	}
	return d.statsRepo.Ensure()
}
