// Package prefstore persists per-session preferences in a local bbolt
// database. Layout: root bucket → meta bucket (schema version) and
// sessions bucket (one JSON blob per session id). Blobs from an
// incompatible shape decode into defaults rather than failing a load.
package prefstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"hexageeky/internal/domain"
)

var ErrMissingSessionID = errors.New("session id is required")

type Store struct {
	db   *bolt.DB
	path string
}

// Open opens (creating if needed) the preferences database at path and
// ensures the schema is at the current version.
func Open(path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("preferences path is required")
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, fmt.Errorf("ensure preferences dir: %w", err)
	}
	options := &bolt.Options{Timeout: time.Second}
	db, err := bolt.Open(trimmed, 0o600, options)
	if err != nil {
		return nil, fmt.Errorf("open preferences db: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, path: trimmed}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted preferences for a session. A missing or
// undecodable blob yields defaults with found=false; the caller decides
// whether to persist them.
func (s *Store) Load(sessionID string) (domain.Preferences, bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return domain.Preferences{}, false, ErrMissingSessionID
	}
	prefs := domain.DefaultPreferences()
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket, err := sessionsBucket(tx)
		if err != nil {
			return err
		}
		raw := bucket.Get([]byte(sessionID))
		if len(raw) == 0 {
			return nil
		}
		var decoded domain.Preferences
		if err := json.Unmarshal(raw, &decoded); err != nil {
			// Incompatible blob: substitute defaults.
			return nil
		}
		decoded.Normalize()
		prefs = decoded
		found = true
		return nil
	})
	if err != nil {
		return domain.Preferences{}, false, err
	}
	return prefs, found, nil
}

// Save writes the preferences blob for a session.
func (s *Store) Save(sessionID string, prefs domain.Preferences) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrMissingSessionID
	}
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := sessionsBucket(tx)
		if err != nil {
			return err
		}
		if err := bucket.Put([]byte(sessionID), raw); err != nil {
			return fmt.Errorf("write session %s: %w", sessionID, err)
		}
		return nil
	})
}

// Delete removes a session's persisted preferences.
func (s *Store) Delete(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrMissingSessionID
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := sessionsBucket(tx)
		if err != nil {
			return err
		}
		return bucket.Delete([]byte(sessionID))
	})
}

// Sessions lists the persisted session ids.
func (s *Store) Sessions() ([]string, error) {
	var ids []string
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket, err := sessionsBucket(tx)
		if err != nil {
			return err
		}
		return bucket.ForEach(func(key, value []byte) error {
			if value != nil {
				ids = append(ids, string(key))
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func sessionsBucket(tx *bolt.Tx) (*bolt.Bucket, error) {
	root := tx.Bucket([]byte(rootBucketName))
	if root == nil {
		return nil, errors.New("missing root bucket")
	}
	sessions := root.Bucket([]byte(sessionsBucketName))
	if sessions == nil {
		return nil, errors.New("missing sessions bucket")
	}
	return sessions, nil
}
