package deadletter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Letter is an outbox fact that exhausted its publish attempts. It is parked
// here for operator inspection instead of blocking the relay batch forever.
type Letter struct {
	ID        string          `json:"id"`
	EventName string          `json:"eventName"`
	Content   json.RawMessage `json:"content"`
	Attempts  int             `json:"attempts"`
	LastError string          `json:"lastError"`
	FailedAt  time.Time       `json:"failedAt"`

	bucketKey []byte
}

// Store wraps BoltDB to persist dead letters across restarts.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = "dead_letters"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

// Park stores a dead letter keyed by failure time, so List walks oldest first.
func (s *Store) Park(letter Letter) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if letter.FailedAt.IsZero() {
		letter.FailedAt = time.Now()
	}
	letter.bucketKey = []byte(fmt.Sprintf("%020d_%s", letter.FailedAt.UnixNano(), letter.ID))

	payload, err := json.Marshal(letter)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(letter.bucketKey, payload)
	})
}

// List returns up to limit letters without removing them.
func (s *Store) List(limit int) ([]Letter, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if limit <= 0 {
		limit = 50
	}

	var letters []Letter
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil && len(letters) < limit; k, v = c.Next() {
			var letter Letter
			if err := json.Unmarshal(v, &letter); err != nil {
				continue
			}
			letter.bucketKey = append([]byte(nil), k...)
			letters = append(letters, letter)
		}
		return nil
	})
	return letters, err
}

// Discard deletes the letter with the given fact id.
func (s *Store) Discard(id string) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if id == "" {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var letter Letter
			if err := json.Unmarshal(v, &letter); err != nil {
				continue
			}
			if letter.ID == id {
				return c.Delete()
			}
		}
		return nil
	})
}

// Size returns the number of parked letters.
func (s *Store) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
