package models

import "github.com/vibe-graveyard/backend/errs"

// Status is the moderation state of a grave. It is the only field with a
// closed state machine: pending -> approved | rejected.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ModerationStatuses enumerates the states an admin may set directly.
var ModerationStatuses = map[Status]struct{}{
	StatusApproved: {},
	StatusRejected: {},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Grave represents one obituary record for an abandoned project.
//
// BirthDate, DeathDate and CreatedAt are stored as ISO text, matching the
// site's date handling. No ordering between birth and death is enforced;
// stored data may legally have a death date before the birth date.
type Grave struct {
	ID           string  `json:"id" gorm:"column:id;type:text;primaryKey;not null"`
	Name         string  `json:"name" gorm:"column:name;type:text;not null"`
	URL          string  `json:"url" gorm:"column:url;type:text;not null"`
	BirthDate    string  `json:"birthDate" gorm:"column:birth_date;type:text;not null"`
	DeathDate    string  `json:"deathDate" gorm:"column:death_date;type:text;not null"`
	CauseOfDeath string  `json:"causeOfDeath" gorm:"column:cause_of_death;type:text;not null"`
	Epitaph      string  `json:"epitaph" gorm:"column:epitaph;type:text;not null"`
	TechStack    string  `json:"techStack" gorm:"column:tech_stack;type:text;not null"` // JSON array stored as string
	StarCount    *int64  `json:"starCount" gorm:"column:star_count"`
	RespectCount int64   `json:"respectCount" gorm:"column:respect_count;not null;default:0"`
	SubmittedBy  *string `json:"submittedBy,omitempty" gorm:"column:submitted_by;type:text"`
	Status       Status  `json:"status" gorm:"column:status;type:text;not null;default:pending"`
	CreatedAt    string  `json:"createdAt" gorm:"column:created_at;type:text;not null"`
}

func (Grave) TableName() string {
	return "graves"
}

// ValidateForSubmit checks the required fields of a public submission. The
// server assigns ID, Status, RespectCount and CreatedAt, so those are not
// inspected here.
func (g Grave) ValidateForSubmit() error {
	required := []struct {
		field string
		value string
	}{
		{"name", g.Name},
		{"url", g.URL},
		{"birthDate", g.BirthDate},
		{"deathDate", g.DeathDate},
		{"causeOfDeath", g.CauseOfDeath},
		{"epitaph", g.Epitaph},
	}
	for _, r := range required {
		if r.value == "" {
			return errs.NewMissingRequiredFieldError(r.field)
		}
	}
	if g.StarCount != nil && *g.StarCount < 0 {
		return errs.NewInvalidFieldError("starCount", "must be non-negative")
	}
	return nil
}
