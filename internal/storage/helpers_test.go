// ABOUTME: Shared fixtures for storage adapter tests.
// ABOUTME: Builds a small roster and compares swimmers field by field.
package storage

import (
	"testing"
	"time"

	"github.com/harperreed/swim/internal/models"
)

func sampleSwimmers() []*models.Swimmer {
	created := time.Date(2024, 3, 1, 9, 30, 0, 123456789, time.UTC)

	michael := models.NewSwimmer("Michael", 5, "Backstroke").WithArchived(true)
	michael.ID = 0
	michael.CreatedAt, michael.UpdatedAt = created, created
	michael.AddRace(models.NewRace("Gold", "00:00:58", "Backstroke").WithGraded(true))

	sarah := models.NewSwimmer("Sarah", 3, "Freestyle")
	sarah.ID = 1
	sarah.CreatedAt, sarah.UpdatedAt = created, created.Add(time.Hour)
	sarah.AddRace(models.NewRace("Pass", "00:01:02", "Freestyle"))
	sarah.AddRace(models.NewRace("Fail <&>", "00:01:09", "Medley").WithGraded(true))
	sarah.DeleteRace(0)

	tom := models.NewSwimmer("Tom", 1, "Butterfly")
	tom.ID = 4
	tom.CreatedAt, tom.UpdatedAt = created, created

	return []*models.Swimmer{michael, sarah, tom}
}

func assertSwimmersEqual(t *testing.T, got, want []*models.Swimmer) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("swimmer count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.ID != w.ID || g.Name != w.Name || g.Level != w.Level || g.Category != w.Category || g.Archived != w.Archived {
			t.Errorf("swimmer %d mismatch: got %+v, want %+v", i, g, w)
		}
		if !g.CreatedAt.Equal(w.CreatedAt) || !g.UpdatedAt.Equal(w.UpdatedAt) {
			t.Errorf("swimmer %d timestamps: got %v/%v, want %v/%v", i, g.CreatedAt, g.UpdatedAt, w.CreatedAt, w.UpdatedAt)
		}
		if len(g.Races) != len(w.Races) {
			t.Fatalf("swimmer %d race count = %d, want %d", i, len(g.Races), len(w.Races))
		}
		for j := range w.Races {
			if *g.Races[j] != *w.Races[j] {
				t.Errorf("swimmer %d race %d: got %+v, want %+v", i, j, *g.Races[j], *w.Races[j])
			}
		}
	}
}
