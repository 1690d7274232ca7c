package database

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vibe-graveyard/backend/models"
)

// StatsRepo maintains the site-wide respects ledger: a single global_stats
// row created lazily on first use.
type StatsRepo struct {
	db *gorm.DB
}

func NewStatsRepo(db *gorm.DB) *StatsRepo {
	return &StatsRepo{db}
}

// Ensure creates the singleton row with a zero count if it is absent. The
// insert-or-ignore upsert keeps this idempotent under concurrent callers; an
// exists-then-insert check would race.
func (r *StatsRepo) Ensure() error {
	row := models.GlobalStats{
		ID:           models.GlobalStatsID,
		RespectCount: 0,
		UpdatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

// Read returns the current site-wide respect count, initializing the row
// first when needed.
func (r *StatsRepo) Read() (int64, error) {
	if err := r.Ensure(); err != nil {
		return 0, err
	}

	var stats models.GlobalStats
	if err := r.db.First(&stats, models.GlobalStatsID).Error; err != nil {
		return 0, err
	}
	return stats.RespectCount, nil
}

// Increment bumps the site-wide counter by one and returns the new value.
// Same atomicity contract as GraveRepo.PayRespect: a single UPDATE
// expression, never read-modify-write.
func (r *StatsRepo) Increment() (int64, error) {
	if err := r.Ensure(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.
		Raw(
			"UPDATE global_stats SET respect_count = respect_count + 1, updated_at = ? WHERE id = ? RETURNING respect_count",
			time.Now().UTC().Format(time.RFC3339),
			models.GlobalStatsID,
		).
		Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
