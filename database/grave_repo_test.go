package database

import (
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vibe-graveyard/backend/errs"
	"github.com/vibe-graveyard/backend/models"
)

func validSubmission(name string) models.Grave {
	return models.Grave{
		Name:         name,
		URL:          "https://github.com/someone/" + name,
		BirthDate:    "2022-07-10",
		DeathDate:    "2022-07-17",
		CauseOfDeath: "Scope creep",
		Epitaph:      "Gone before the first user.",
		TechStack:    models.EncodeTechStack([]string{"react", "go"}),
	}
}

func TestSubmitAssignsServerFields(t *testing.T) {
	d := newTestDB(t)
	repo := d.GraveRepo()

	before := time.Now().UTC().Add(-time.Second)

	grave := validSubmission("weekend-wunderkind")
	// callers cannot smuggle these in
	grave.Status = models.StatusApproved
	grave.RespectCount = 99

	assertNoError(t, repo.Submit(&grave))

	if grave.ID == "" {
		t.Fatal("expected a generated id")
	}
	if grave.Status != models.StatusPending {
		t.Fatalf("expected status pending, got %q", grave.Status)
	}
	if grave.RespectCount != 0 {
		t.Fatalf("expected respect count 0, got %d", grave.RespectCount)
	}

	createdAt, err := time.Parse(time.RFC3339, grave.CreatedAt)
	assertNoError(t, err)
	if createdAt.Before(before) {
		t.Fatalf("createdAt %v is earlier than the call time %v", createdAt, before)
	}
}

func TestSubmitValidation(t *testing.T) {
	d := newTestDB(t)
	repo := d.GraveRepo()

	tests := []struct {
		name   string
		mutate func(*models.Grave)
		field  string
	}{
		{"missing name", func(g *models.Grave) { g.Name = "" }, "name"},
		{"missing url", func(g *models.Grave) { g.URL = "" }, "url"},
		{"missing birthDate", func(g *models.Grave) { g.BirthDate = "" }, "birthDate"},
		{"missing deathDate", func(g *models.Grave) { g.DeathDate = "" }, "deathDate"},
		{"missing causeOfDeath", func(g *models.Grave) { g.CauseOfDeath = "" }, "causeOfDeath"},
		{"missing epitaph", func(g *models.Grave) { g.Epitaph = "" }, "epitaph"},
		{"negative starCount", func(g *models.Grave) { n := int64(-1); g.StarCount = &n }, "starCount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grave := validSubmission("doomed")
			tt.mutate(&grave)

			err := repo.Submit(&grave)
			if !errs.IsValidation(err) {
				t.Fatalf("expected a validation error, got %v", err)
			}

			// all-or-nothing: nothing was written
			if grave.ID != "" {
				found, ferr := repo.FindByID(grave.ID)
				assertNoError(t, ferr)
				if found != nil {
					t.Fatal("invalid submission must not be persisted")
				}
			}
		})
	}
}

func TestListApprovedFiltersAndOrders(t *testing.T) {
	d := newTestDB(t)
	repo := d.GraveRepo()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	oldest := seedGrave(t, d, "oldest", models.StatusApproved, base)
	seedGrave(t, d, "hidden-pending", models.StatusPending, base.Add(1*time.Hour))
	seedGrave(t, d, "hidden-rejected", models.StatusRejected, base.Add(2*time.Hour))
	newest := seedGrave(t, d, "newest", models.StatusApproved, base.Add(3*time.Hour))

	page, err := repo.ListApproved(0, 0)
	assertNoError(t, err)

	if page.Total != 2 {
		t.Fatalf("expected total 2 approved, got %d", page.Total)
	}
	if len(page.Graves) != 2 {
		t.Fatalf("expected 2 graves, got %d", len(page.Graves))
	}
	for _, g := range page.Graves {
		if g.Status != models.StatusApproved {
			t.Fatalf("listing leaked a %q grave", g.Status)
		}
	}
	if page.Graves[0].ID != newest.ID || page.Graves[1].ID != oldest.ID {
		t.Fatal("expected createdAt-descending order")
	}
	if page.HasMore {
		t.Fatal("hasMore must be false when the page covers the full count")
	}
}

func TestListApprovedPagination(t *testing.T) {
	d := newTestDB(t)
	repo := d.GraveRepo()

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 13; i++ {
		seedGrave(t, d, "grave", models.StatusApproved, base.Add(time.Duration(i)*time.Hour))
	}

	first, err := repo.ListApproved(6, 0)
	assertNoError(t, err)
	second, err := repo.ListApproved(6, 6)
	assertNoError(t, err)

	if len(first.Graves) != 6 || len(second.Graves) != 6 {
		t.Fatalf("expected two full pages, got %d and %d", len(first.Graves), len(second.Graves))
	}
	if !first.HasMore || !second.HasMore {
		t.Fatal("13 rows: both six-row pages should report more")
	}

	seen := make(map[string]struct{})
	for _, g := range append(first.Graves, second.Graves...) {
		if _, dup := seen[g.ID]; dup {
			t.Fatalf("grave %s appeared on both pages", g.ID)
		}
		seen[g.ID] = struct{}{}
	}

	last, err := repo.ListApproved(6, 12)
	assertNoError(t, err)
	if len(last.Graves) != 1 || last.HasMore {
		t.Fatalf("expected final page of 1 with hasMore=false, got %d/%v", len(last.Graves), last.HasMore)
	}
}

func TestListApprovedStableOrderOnEqualTimestamps(t *testing.T) {
	d := newTestDB(t)
	repo := d.GraveRepo()

	at := time.Date(2024, 5, 5, 5, 5, 5, 0, time.UTC)
	for i := 0; i < 9; i++ {
		seedGrave(t, d, "tied", models.StatusApproved, at)
	}

	first, err := repo.ListApproved(5, 0)
	assertNoError(t, err)
	again, err := repo.ListApproved(5, 0)
	assertNoError(t, err)

	for i := range first.Graves {
		if first.Graves[i].ID != again.Graves[i].ID {
			t.Fatal("page order must be stable across identical queries")
		}
	}
}

func TestFindByIDReturnsUnmoderatedRows(t *testing.T) {
	d := newTestDB(t)
	repo := d.GraveRepo()

	// Detail lookups are not status-filtered: a pending or rejected grave is
	// reachable by anyone holding its id. Ids are random uuids, which is the
	// only thing keeping this acceptable.
	pending := seedGrave(t, d, "pending", models.StatusPending, time.Now())
	rejected := seedGrave(t, d, "rejected", models.StatusRejected, time.Now())

	for _, id := range []string{pending.ID, rejected.ID} {
		found, err := repo.FindByID(id)
		assertNoError(t, err)
		if found == nil {
			t.Fatalf("expected row %s to be reachable by id", id)
		}
	}
}

func TestFindByIDAbsent(t *testing.T) {
	d := newTestDB(t)

	found, err := d.GraveRepo().FindByID("no-such-id")
	assertNoError(t, err)
	if found != nil {
		t.Fatal("expected nil for a missing id")
	}
}

func TestModerate(t *testing.T) {
	d := newTestDB(t)
	repo := d.GraveRepo()

	grave := seedGrave(t, d, "judged", models.StatusPending, time.Now())

	assertNoError(t, repo.Moderate(grave.ID, models.StatusApproved))
	// idempotent: same status again is a no-op success
	assertNoError(t, repo.Moderate(grave.ID, models.StatusApproved))

	found, err := repo.FindByID(grave.ID)
	assertNoError(t, err)
	if found.Status != models.StatusApproved {
		t.Fatalf("expected approved, got %q", found.Status)
	}

	// a zero-row update on a missing id is success-with-no-effect
	assertNoError(t, repo.Moderate("no-such-id", models.StatusRejected))

	if err := repo.Moderate(grave.ID, models.StatusPending); !errs.IsValidation(err) {
		t.Fatalf("moderating back to pending must be rejected, got %v", err)
	}
	if err := repo.Moderate(grave.ID, models.Status("zombie")); !errs.IsValidation(err) {
		t.Fatalf("unknown status must be rejected, got %v", err)
	}
}

func TestUpdateFieldsPartial(t *testing.T) {
	d := newTestDB(t)
	repo := d.GraveRepo()

	grave := seedGrave(t, d, "editable", models.StatusApproved, time.Now())
	stars := int64(42)
	assertNoError(t, repo.GetDB().Model(&models.Grave{}).Where("id = ?", grave.ID).Update("star_count", stars).Error)

	assertNoError(t, repo.UpdateFields(grave.ID, map[string]any{
		"epitaph":   "Rewritten by the management.",
		"techStack": []any{"zig", "zig", "htmx"},
	}))

	found, err := repo.FindByID(grave.ID)
	assertNoError(t, err)
	if found.Epitaph != "Rewritten by the management." {
		t.Fatalf("epitaph not updated: %q", found.Epitaph)
	}
	if got := models.DecodeTechStack(found.TechStack); len(got) != 3 || got[0] != "zig" || got[1] != "zig" || got[2] != "htmx" {
		t.Fatalf("techStack not re-serialized in order: %v", got)
	}
	// untouched fields keep their values
	if found.Name != grave.Name || found.Status != models.StatusApproved {
		t.Fatal("update overwrote fields that were not in the partial")
	}
	if found.StarCount == nil || *found.StarCount != stars {
		t.Fatal("omitted starCount must stay as stored")
	}

	// explicit null clears the count back to "unknown"
	assertNoError(t, repo.UpdateFields(grave.ID, map[string]any{"starCount": nil}))
	found, err = repo.FindByID(grave.ID)
	assertNoError(t, err)
	if found.StarCount != nil {
		t.Fatal("starCount: null must clear the column")
	}

	if err := repo.UpdateFields(grave.ID, map[string]any{"status": "approved"}); !errs.IsValidation(err) {
		t.Fatalf("status must not be editable outside moderation, got %v", err)
	}
	if err := repo.UpdateFields(grave.ID, map[string]any{"techStack": "not a list"}); !errs.IsValidation(err) {
		t.Fatalf("non-array techStack must be rejected, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	d := newTestDB(t)
	repo := d.GraveRepo()

	grave := seedGrave(t, d, "condemned", models.StatusApproved, time.Now())

	assertNoError(t, repo.Delete(grave.ID))

	found, err := repo.FindByID(grave.ID)
	assertNoError(t, err)
	if found != nil {
		t.Fatal("deleted grave still retrievable")
	}

	// second delete does not error
	assertNoError(t, repo.Delete(grave.ID))
}

func TestPayRespectReturnsNewCount(t *testing.T) {
	d := newTestDB(t)
	repo := d.GraveRepo()

	grave := seedGrave(t, d, "respected", models.StatusApproved, time.Now())

	for want := int64(1); want <= 3; want++ {
		got, err := repo.PayRespect(grave.ID)
		assertNoError(t, err)
		if got != want {
			t.Fatalf("expected post-increment count %d, got %d", want, got)
		}
	}
}

func TestPayRespectMissingIDIsNoOp(t *testing.T) {
	d := newTestDB(t)

	// pinned behavior: missing id returns 0 and no error
	count, err := d.GraveRepo().PayRespect("no-such-id")
	assertNoError(t, err)
	if count != 0 {
		t.Fatalf("expected 0 for a missing id, got %d", count)
	}
}

func TestPayRespectConcurrentIncrements(t *testing.T) {
	d := newTestDB(t)
	repo := d.GraveRepo()

	grave := seedGrave(t, d, "mobbed", models.StatusApproved, time.Now())

	const respects = 25
	var g errgroup.Group
	for i := 0; i < respects; i++ {
		g.Go(func() error {
			_, err := repo.PayRespect(grave.ID)
			return err
		})
	}
	assertNoError(t, g.Wait())

	found, err := repo.FindByID(grave.ID)
	assertNoError(t, err)
	if found.RespectCount != respects {
		t.Fatalf("lost updates: expected %d respects, got %d", respects, found.RespectCount)
	}
}
