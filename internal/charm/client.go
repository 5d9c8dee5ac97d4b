// ABOUTME: Charm KV backed roster store with cloud sync.
// ABOUTME: Keeps one JSON value per swimmer under zero-padded swimmer keys.
package charm

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/harperreed/swim/internal/models"
	"github.com/harperreed/swim/internal/storage"
)

const (
	// DBName is the Charm KV database holding the roster.
	DBName           = "swim"
	defaultCharmHost = "charm.2389.dev"
)

// ErrReadOnly is returned by writes while another process holds the database lock.
var ErrReadOnly = errors.New("cannot write: database is locked by another process (MCP server?)")

var (
	globalClient *Client
	clientOnce   sync.Once
	clientErr    error
)

// kvStore is the subset of *kv.KV the client uses.
type kvStore interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Sync() error
	IsReadOnly() bool
	Reset() error
	Close() error
}

// Client stores the roster in Charm KV.
type Client struct {
	kv       kvStore
	autoSync bool
	mu       sync.RWMutex
}

// Compile-time check that Client implements storage.Serializer.
var _ storage.Serializer = (*Client)(nil)

// InitClient opens the global Charm client and pulls remote data.
// Thread-safe; can be called multiple times.
func InitClient() (*Client, error) {
	clientOnce.Do(func() {
		if os.Getenv("CHARM_HOST") == "" {
			if err := os.Setenv("CHARM_HOST", defaultCharmHost); err != nil {
				clientErr = err
				return
			}
		}

		db, err := kv.OpenWithDefaultsFallback(DBName)
		if err != nil {
			clientErr = fmt.Errorf("open charm kv: %w", err)
			return
		}

		globalClient = newClient(db)

		if !db.IsReadOnly() {
			_ = db.Sync()
		}
	})

	return globalClient, clientErr
}

func newClient(store kvStore) *Client {
	return &Client{kv: store, autoSync: true}
}

// Close closes the KV database.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// IsReadOnly reports whether another process (like an MCP server) holds the lock.
func (c *Client) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *Client) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// SetAutoSync enables or disables the sync after each Write.
func (c *Client) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// ID returns the Charm user ID for the current account.
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// Read returns every stored swimmer in key order.
func (c *Client) Read() ([]*models.Swimmer, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys, err := c.swimmerKeys()
	if err != nil {
		return nil, err
	}

	swimmers := make([]*models.Swimmer, 0, len(keys))
	for _, key := range keys {
		val, err := c.kv.Get(key)
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", key, err)
		}
		s, err := storage.UnmarshalSwimmer(val)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		swimmers = append(swimmers, s)
	}
	return swimmers, nil
}

// Write replaces the stored swimmers, then syncs if auto sync is on.
func (c *Client) Write(swimmers []*models.Swimmer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}

	keep := make(map[string][]byte, len(swimmers))
	for _, s := range swimmers {
		data, err := storage.MarshalSwimmer(s)
		if err != nil {
			return fmt.Errorf("marshal swimmer %d: %w", s.ID, err)
		}
		keep[storage.SwimmerKey(s.ID)] = data
	}

	existing, err := c.swimmerKeys()
	if err != nil {
		return err
	}
	for _, key := range existing {
		if _, ok := keep[string(key)]; ok {
			continue
		}
		if err := c.kv.Delete(key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}

	for key, data := range keep {
		if err := c.kv.Set([]byte(key), data); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}

	if c.autoSync {
		_ = c.kv.Sync()
	}
	return nil
}

// swimmerKeys lists keys under the swimmer prefix, sorted.
func (c *Client) swimmerKeys() ([][]byte, error) {
	keys, err := c.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	prefix := []byte(storage.SwimmerKeyPrefix)
	var out [][]byte
	for _, key := range keys {
		if bytes.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	slices.SortFunc(out, bytes.Compare)
	return out, nil
}
