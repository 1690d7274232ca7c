package models

// GlobalStatsID is the fixed id of the singleton global_stats row.
const GlobalStatsID = 1

// GlobalStats is a singleton aggregate: exactly one row tracking the
// site-wide respects tally. It is independent of any grave's own counter,
// not a derived sum.
type GlobalStats struct {
	ID           int64  `json:"id" gorm:"column:id;primaryKey"`
	RespectCount int64  `json:"respectCount" gorm:"column:respect_count;not null;default:0"`
	UpdatedAt    string `json:"updatedAt" gorm:"column:updated_at;type:text;not null"`
}

func (GlobalStats) TableName() string {
	return "global_stats"
}
