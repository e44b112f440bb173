package triage

import (
	"testing"

	"github.com/ternarybob/sentinel/internal/models"
)

func TestTitleSimilarity(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		wantMin float64
		wantMax float64
	}{
		{
			name:    "identical titles",
			a:       "lithium strike in chile",
			b:       "lithium strike in chile",
			wantMin: 1.0,
			wantMax: 1.0,
		},
		{
			name:    "disjoint titles",
			a:       "opec cuts output",
			b:       "taiwan earthquake hits fabs",
			wantMin: 0.0,
			wantMax: 0.0,
		},
		{
			name:    "near duplicate wording",
			a:       "chilean workers strike at sqm lithium mine",
			b:       "chilean workers go on strike at sqm lithium mine",
			wantMin: 0.71,
			wantMax: 0.99,
		},
		{
			name:    "both empty",
			a:       "",
			b:       "",
			wantMin: 1.0,
			wantMax: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TitleSimilarity(tt.a, tt.b)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("TitleSimilarity(%q, %q) = %.3f, want [%.2f, %.2f]",
					tt.a, tt.b, got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestMerge_DropsNearDuplicates(t *testing.T) {
	primary := []*models.Headline{
		{ID: "hl_1", Title: "Chilean workers strike at SQM lithium mine"},
	}
	secondary := []*models.Headline{
		{ID: "disc_1", Title: "Chilean workers go on strike at SQM lithium mine"},
		{ID: "disc_2", Title: "Taiwan export restrictions tighten on chip equipment"},
	}

	merged := Merge(primary, secondary)

	if len(merged) != 2 {
		t.Fatalf("got %d headlines, want 2", len(merged))
	}
	if merged[0].ID != "hl_1" || merged[1].ID != "disc_2" {
		t.Errorf("unexpected merge result: %s, %s", merged[0].ID, merged[1].ID)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	primary := []*models.Headline{
		{ID: "hl_1", Title: "OPEC announces production quota cut"},
		{ID: "hl_2", Title: "ASML export license revoked by Netherlands"},
	}

	// Merging a list against copies of itself drops everything
	copies := []*models.Headline{
		{ID: "dup_1", Title: "OPEC announces production quota cut"},
		{ID: "dup_2", Title: "ASML export license revoked by Netherlands"},
	}

	merged := Merge(primary, copies)
	if len(merged) != len(primary) {
		t.Errorf("got %d headlines, want %d (all duplicates dropped)", len(merged), len(primary))
	}
}

func TestMerge_DuplicateWithinSecondary(t *testing.T) {
	secondary := []*models.Headline{
		{ID: "disc_1", Title: "Iran sanctions expanded on tanker fleet"},
		{ID: "disc_2", Title: "Iran sanctions expanded on its tanker fleet"},
	}

	merged := Merge(nil, secondary)
	if len(merged) != 1 {
		t.Fatalf("got %d headlines, want 1", len(merged))
	}
	if merged[0].ID != "disc_1" {
		t.Errorf("first candidate should be kept, got %s", merged[0].ID)
	}
}
