// ABOUTME: Badger key-value store for the roster, one key per swimmer.
// ABOUTME: Write drops the old swimmer keys and sets the new ones in one transaction.
package storage

import (
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/swim/internal/models"
)

// BadgerStore keeps swimmers in an embedded Badger database.
type BadgerStore struct {
	db *badger.DB
}

// Compile-time check that BadgerStore implements Serializer.
var _ Serializer = (*BadgerStore)(nil)

// OpenBadger opens or creates a Badger database in dir.
func OpenBadger(dir string) (*BadgerStore, error) {
	return OpenBadgerWithOptions(badger.DefaultOptions(dir).WithLogger(nil))
}

// OpenBadgerWithOptions opens Badger with caller supplied options,
// e.g. WithInMemory(true) in tests.
func OpenBadgerWithOptions(opts badger.Options) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Read returns every swimmer in key order.
func (s *BadgerStore) Read() ([]*models.Swimmer, error) {
	swimmers := []*models.Swimmer{}
	prefix := []byte(SwimmerKeyPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("read %s: %w", item.Key(), err)
			}
			sw, err := UnmarshalSwimmer(val)
			if err != nil {
				return fmt.Errorf("decode %s: %w", item.Key(), err)
			}
			swimmers = append(swimmers, sw)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return swimmers, nil
}

// Write replaces the stored swimmers.
func (s *BadgerStore) Write(swimmers []*models.Swimmer) error {
	prefix := []byte(SwimmerKeyPrefix)

	return s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		var stale [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("delete %s: %w", key, err)
			}
		}

		for _, sw := range swimmers {
			data, err := MarshalSwimmer(sw)
			if err != nil {
				return fmt.Errorf("marshal swimmer %d: %w", sw.ID, err)
			}
			if err := txn.Set([]byte(SwimmerKey(sw.ID)), data); err != nil {
				return fmt.Errorf("set swimmer %d: %w", sw.ID, err)
			}
		}
		return nil
	})
}

// Close closes the Badger database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
