// ABOUTME: Store-then-load tests for the roster across every local backend.
// ABOUTME: Uses testify for the field-by-field swimmer comparisons.
package roster

import (
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/swim/internal/models"
	"github.com/harperreed/swim/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendCase struct {
	name string
	open func(t *testing.T) storage.Serializer
}

func localBackends() []backendCase {
	fileBackend := func(format storage.Format) func(t *testing.T) storage.Serializer {
		return func(t *testing.T) storage.Serializer {
			return storage.NewFileStore(filepath.Join(t.TempDir(), format.FileName()), format)
		}
	}
	return []backendCase{
		{"xml", fileBackend(storage.FormatXML)},
		{"json", fileBackend(storage.FormatJSON)},
		{"yaml", fileBackend(storage.FormatYAML)},
		{"sqlite", func(t *testing.T) storage.Serializer {
			db, err := storage.Open(filepath.Join(t.TempDir(), "swim.db"))
			require.NoError(t, err)
			return db
		}},
		{"badger", func(t *testing.T) storage.Serializer {
			bs, err := storage.OpenBadgerWithOptions(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
			require.NoError(t, err)
			return bs
		}},
	}
}

func TestRoundTripEveryBackend(t *testing.T) {
	for _, bc := range localBackends() {
		t.Run(bc.name, func(t *testing.T) {
			store := bc.open(t)
			defer store.Close()

			original := New(store)
			michael := models.NewSwimmer("Michael", 3, "Freestyle")
			michael.AddRace(models.NewRace("Gold", "00:00:52", "Freestyle").WithGraded(true))
			michael.AddRace(models.NewRace("4th", "00:00:58", "Butterfly"))
			michael.DeleteRace(0)
			require.True(t, original.Add(michael))
			require.True(t, original.Add(models.NewSwimmer("Sarah", 2, "Backstroke")))
			require.True(t, original.Add(models.NewSwimmer("Tom", 4, "Medley")))
			require.True(t, original.Delete(1))
			require.True(t, original.ArchiveSwimmer(2))

			require.NoError(t, original.Store())

			loaded := New(store)
			require.NoError(t, loaded.Load())

			want := original.Swimmers()
			got := loaded.Swimmers()
			require.Len(t, got, len(want))
			for i := range want {
				assert.Equal(t, want[i].ID, got[i].ID)
				assert.Equal(t, want[i].Name, got[i].Name)
				assert.Equal(t, want[i].Level, got[i].Level)
				assert.Equal(t, want[i].Category, got[i].Category)
				assert.Equal(t, want[i].Archived, got[i].Archived)
				assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt), "created_at for swimmer %d", want[i].ID)
				require.Len(t, got[i].Races, len(want[i].Races))
				for j := range want[i].Races {
					assert.Equal(t, *want[i].Races[j], *got[i].Races[j])
				}
			}

			assert.Equal(t, 3, loaded.NextID(), "next id derives from the highest stored id")
			assert.Equal(t, 2, loaded.FindSwimmer(0).NextRaceID(), "race counter derives from the highest race id")
		})
	}
}

func TestRoundTripEmptyRosterEveryBackend(t *testing.T) {
	for _, bc := range localBackends() {
		t.Run(bc.name, func(t *testing.T) {
			store := bc.open(t)
			defer store.Close()

			require.NoError(t, New(store).Store())

			loaded := New(store)
			require.NoError(t, loaded.Load())
			assert.Zero(t, loaded.NumberOfSwimmers())
			assert.Equal(t, NoSwimmerStored, loaded.ListAllSwimmers())
		})
	}
}
