package main

import (
	"context"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

type boltEntityStore struct {
	logger *zap.Logger
	client *bolt.DB
	bucket []byte
}

// GetBoltDBClient opens the database file and provides a ready to use client.
// Bucket creation is the job of the dbupdate step, not of the serving path.
func GetBoltDBClient(config *Config) (*bolt.DB, error) {
	db, err := bolt.Open(config.BoltDB.FilePath, 0o600, &bolt.Options{Timeout: config.BoltDB.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	return db, nil
}

// EnsureEntityBuckets creates one bucket per entity. It is the core of the
// dbupdate command which prepares the replica file before the app serves.
func EnsureEntityBuckets(db *bolt.DB, entities []string) error {
	return db.Update(func(tx *bolt.Tx) error {
		for _, entity := range entities {
			if _, err := tx.CreateBucketIfNotExists([]byte(entity)); err != nil {
				return fmt.Errorf("failed to create %s bucket: %v", entity, err)
			}
		}
		return nil
	})
}

// VerifyEntityBuckets checks that every entity bucket exists. The serving
// path refuses to start against a database file not prepared by dbupdate.
func VerifyEntityBuckets(db *bolt.DB, entities []string) error {
	return db.View(func(tx *bolt.Tx) error {
		for _, entity := range entities {
			if tx.Bucket([]byte(entity)) == nil {
				return fmt.Errorf("missing %s bucket: run the dbupdate command first", entity)
			}
		}
		return nil
	})
}

// NewBoltEntityStore provides a bolt-backed store for one logical entity.
// All records of the entity live in a single bucket keyed by record id.
func NewBoltEntityStore(logger *zap.Logger, client *bolt.DB, entity string) EntityStore {
	return &boltEntityStore{
		logger: logger,
		client: client,
		bucket: []byte(entity),
	}
}

// Insert stores a new record payload into the entity bucket.
func (bs *boltEntityStore) Insert(_ context.Context, id string, data []byte) error {
	return bs.client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bs.bucket).Put([]byte(id), data)
	})
}

// Get retrieves a record payload based on its id from the entity bucket.
func (bs *boltEntityStore) Get(_ context.Context, id string) ([]byte, error) {
	// initialize a readable transaction.
	tx, err := bs.client.Begin(false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result := tx.Bucket(bs.bucket).Get([]byte(id))
	if result == nil {
		return nil, ErrRecordNotFound
	}
	data := make([]byte, len(result))
	copy(data, result)
	return data, nil
}

// Update replaces an existing record payload or inserts it if missing.
func (bs *boltEntityStore) Update(_ context.Context, id string, data []byte) error {
	return bs.client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bs.bucket).Put([]byte(id), data)
	})
}

// Delete removes a record based on its id from the entity bucket.
func (bs *boltEntityStore) Delete(_ context.Context, id string) error {
	return bs.client.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bs.bucket)
		if b.Get([]byte(id)) == nil {
			return ErrRecordNotFound
		}
		return b.Delete([]byte(id))
	})
}

// List retrieves all record payloads stored in the entity bucket.
func (bs *boltEntityStore) List(_ context.Context) ([][]byte, error) {
	tx, err := bs.client.Begin(false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Create a cursor on the entity bucket.
	c := tx.Bucket(bs.bucket).Cursor()

	records := [][]byte{}
	for k, v := c.First(); k != nil; k, v = c.Next() {
		data := make([]byte, len(v))
		copy(data, v)
		records = append(records, data)
	}
	return records, nil
}

// Count returns the number of records stored in the entity bucket.
func (bs *boltEntityStore) Count(_ context.Context) (int64, error) {
	var total int64
	err := bs.client.View(func(tx *bolt.Tx) error {
		total = int64(tx.Bucket(bs.bucket).Stats().KeyN)
		return nil
	})
	return total, err
}
