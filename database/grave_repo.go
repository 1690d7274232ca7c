package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vibe-graveyard/backend/errs"
	"github.com/vibe-graveyard/backend/models"
)

// DefaultPageSize is the number of graves per public listing page.
const DefaultPageSize = 6

type GraveRepo struct {
	db *gorm.DB
}

func NewGraveRepo(db *gorm.DB) *GraveRepo {
	return &GraveRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *GraveRepo) GetDB() *gorm.DB {
	return r.db
}

// GravePage is one slice of the approved listing.
type GravePage struct {
	Graves  []models.Grave `json:"graves"`
	Total   int64          `json:"total"`
	HasMore bool           `json:"hasMore"`
}

// ListApproved returns approved graves ordered newest first, sliced by
// [offset, offset+limit). Ties on created_at fall back to id so pages are
// stable. Total is the full approved count regardless of the slice. No upper
// bound is enforced on limit.
func (r *GraveRepo) ListApproved(limit, offset int) (GravePage, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := r.db.Model(&models.Grave{}).Where("status = ?", models.StatusApproved).Count(&total).Error; err != nil {
		return GravePage{}, err
	}

	var graves []models.Grave
	err := r.db.
		Where("status = ?", models.StatusApproved).
		Order("created_at DESC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&graves).Error
	if err != nil {
		return GravePage{}, err
	}

	return GravePage{
		Graves:  graves,
		Total:   total,
		HasMore: int64(offset+len(graves)) < total,
	}, nil
}

// FindByID returns a grave by its ID, or nil when no such row exists.
//
// The lookup is deliberately not filtered by status: detail pages can render
// pending and rejected graves if the id is known. Ids are random, so this is
// tolerated rather than fixed; restricting it would happen at the handler.
func (r *GraveRepo) FindByID(id string) (*models.Grave, error) {
	var grave models.Grave
	err := r.db.Where("id = ?", id).First(&grave).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &grave, nil
}

// Submit inserts a new grave from a public submission. The server assigns the
// id and timestamp and forces the row into pending with a zero respect count,
// whatever the caller sent.
func (r *GraveRepo) Submit(grave *models.Grave) error {
	if err := grave.ValidateForSubmit(); err != nil {
		return err
	}

	grave.ID = uuid.NewString()
	grave.Status = models.StatusPending
	grave.RespectCount = 0
	grave.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	if grave.TechStack == "" {
		grave.TechStack = models.EncodeTechStack(nil)
	}

	return r.db.Create(grave).Error
}

// FindAll returns every grave regardless of status, newest first.
func (r *GraveRepo) FindAll() ([]models.Grave, error) {
	var graves []models.Grave
	err := r.db.Order("created_at DESC, id ASC").Find(&graves).Error
	return graves, err
}

// FindPending returns graves awaiting moderation, newest first.
func (r *GraveRepo) FindPending() ([]models.Grave, error) {
	var graves []models.Grave
	err := r.db.Where("status = ?", models.StatusPending).Order("created_at DESC, id ASC").Find(&graves).Error
	return graves, err
}

// Moderate sets a grave's status to approved or rejected. Re-applying the
// same status is a no-op success, and so is moderating an id that does not
// exist (a zero-row update, matching the site's behavior).
func (r *GraveRepo) Moderate(id string, status models.Status) error {
	if _, ok := models.ModerationStatuses[status]; !ok {
		return errs.NewInvalidFieldError("status", "must be approved or rejected")
	}
	return r.db.Model(&models.Grave{}).Where("id = ?", id).Update("status", status).Error
}

// updatableColumns maps the JSON field names accepted by UpdateFields onto
// their columns. Status is excluded: moderation is the only status path.
var updatableColumns = map[string]string{
	"name":         "name",
	"url":          "url",
	"birthDate":    "birth_date",
	"deathDate":    "death_date",
	"causeOfDeath": "cause_of_death",
	"epitaph":      "epitaph",
	"techStack":    "tech_stack",
	"starCount":    "star_count",
	"submittedBy":  "submitted_by",
}

// UpdateFields overwrites only the fields present in the partial update. A
// techStack value is re-serialized to the stored JSON form, and starCount set
// to null clears the column ("unknown"), which is distinct from omitting it.
func (r *GraveRepo) UpdateFields(id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	updates := make(map[string]any, len(fields))
	for field, value := range fields {
		column, ok := updatableColumns[field]
		if !ok {
			return errs.NewInvalidFieldError(field, "unknown or immutable field")
		}

		switch field {
		case "techStack":
			stack, err := toStringSlice(value)
			if err != nil {
				return errs.NewInvalidFieldError(field, "must be an array of strings")
			}
			updates[column] = models.EncodeTechStack(stack)
		case "starCount":
			if value == nil {
				updates[column] = nil
				continue
			}
			count, ok := value.(float64)
			if !ok || count < 0 {
				return errs.NewInvalidFieldError(field, "must be a non-negative number")
			}
			updates[column] = int64(count)
		case "submittedBy":
			if value == nil {
				updates[column] = nil
				continue
			}
			fallthrough
		default:
			text, ok := value.(string)
			if !ok {
				return errs.NewInvalidFieldError(field, "must be a string")
			}
			updates[column] = text
		}
	}

	return r.db.Model(&models.Grave{}).Where("id = ?", id).Updates(updates).Error
}

// Delete hard-deletes a grave. Deleting an id that does not exist is not an
// error.
func (r *GraveRepo) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Grave{}).Error
}

// PayRespect increments a grave's respect counter and returns the new value.
// The increment is a single UPDATE expression so concurrent respects are
// never lost to a read-then-write race. A missing id is a no-op returning 0.
func (r *GraveRepo) PayRespect(id string) (int64, error) {
	var count int64
	err := r.db.
		Raw("UPDATE graves SET respect_count = respect_count + 1 WHERE id = ? RETURNING respect_count", id).
		Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func toStringSlice(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []any:
		stack := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errs.ErrInvalidField
			}
			stack = append(stack, s)
		}
		return stack, nil
	default:
		return nil, errs.ErrInvalidField
	}
}
