package pantry

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

const snapshotBucketName = "snapshots"

// ErrSnapshotNotFound is returned when no snapshot has the requested name
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is a named, saved export of a pantry list
type Snapshot struct {
	Name      string    `json:"name"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"created_at"`
}

// Archive stores named pantry exports
type Archive interface {
	// SaveSnapshot saves a snapshot, replacing any with the same name
	SaveSnapshot(snapshot *Snapshot) error

	// GetSnapshot retrieves a snapshot by name
	GetSnapshot(name string) (*Snapshot, error)

	// ListSnapshots returns all snapshots, newest first
	ListSnapshots() ([]*Snapshot, error)

	// DeleteSnapshot removes a snapshot
	DeleteSnapshot(name string) error

	// Close closes the archive
	Close() error
}

// BoltArchive implements Archive using BoltDB
type BoltArchive struct {
	db *bbolt.DB
}

// NewBoltArchive opens (or creates) the archive file at path
func NewBoltArchive(path string) (*BoltArchive, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(snapshotBucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltArchive{db: db}, nil
}

// SaveSnapshot saves a snapshot keyed by its trimmed name
func (b *BoltArchive) SaveSnapshot(snapshot *Snapshot) error {
	name := strings.TrimSpace(snapshot.Name)
	if name == "" {
		return fmt.Errorf("snapshot name is required")
	}
	snapshot.Name = name

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucketName))
		data, err := json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("marshaling snapshot: %w", err)
		}
		return bucket.Put([]byte(name), data)
	})
}

// GetSnapshot retrieves a snapshot by name
func (b *BoltArchive) GetSnapshot(name string) (*Snapshot, error) {
	var snapshot *Snapshot
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucketName))
		data := bucket.Get([]byte(strings.TrimSpace(name)))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
		}
		return json.Unmarshal(data, &snapshot)
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// ListSnapshots returns all snapshots, newest first
func (b *BoltArchive) ListSnapshots() ([]*Snapshot, error) {
	snapshots := make([]*Snapshot, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var snapshot Snapshot
			if err := json.Unmarshal(v, &snapshot); err != nil {
				return fmt.Errorf("unmarshaling snapshot: %w", err)
			}
			snapshots = append(snapshots, &snapshot)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].CreatedAt.After(snapshots[j].CreatedAt)
	})
	return snapshots, nil
}

// DeleteSnapshot removes a snapshot; deleting a missing name is not an error
func (b *BoltArchive) DeleteSnapshot(name string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucketName))
		return bucket.Delete([]byte(strings.TrimSpace(name)))
	})
}

// Close closes the database connection
func (b *BoltArchive) Close() error {
	return b.db.Close()
}
