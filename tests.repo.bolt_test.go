package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/boltdb/bolt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestBoltClient opens a bolt database in a temporary file.
func newTestBoltClient(t *testing.T) *bolt.DB {
	t.Helper()
	f, err := os.CreateTemp("", "tmp.bolt.db-")
	require.NoError(t, err, "failed in creating a temporary database file")
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	testConfig := &Config{
		BoltDB: BoltDBConfig{
			FilePath: f.Name(),
			Timeout:  5 * time.Second,
		},
	}
	client, err := GetBoltDBClient(testConfig)
	require.NoError(t, err, "failed in opening the test bolt database")
	t.Cleanup(func() { client.Close() })
	return client
}

// TestEntityBucketsPreparation ensures the dbupdate preparation and its serving-path check.
func TestEntityBucketsPreparation(t *testing.T) {
	client := newTestBoltClient(t)
	entities := RegisteredEntities()

	// an unprepared file must be refused.
	err := VerifyEntityBuckets(client, entities)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "run the dbupdate command first")

	// preparation is idempotent.
	require.NoError(t, EnsureEntityBuckets(client, entities))
	require.NoError(t, EnsureEntityBuckets(client, entities))

	assert.NoError(t, VerifyEntityBuckets(client, entities))
}

// TestBoltStore ensures the bolt-backed entity store behaviors.
func TestBoltStore(t *testing.T) {
	client := newTestBoltClient(t)
	require.NoError(t, EnsureEntityBuckets(client, []string{BookEntity}))
	bs := NewBoltEntityStore(zap.NewNop(), client, BookEntity)

	testRecordID := "b:0"
	testRecord := []byte(`{"id":"b:0","title":"Bolt test book title","author":"Jerome Amon"}`)

	t.Run("insert record", func(t *testing.T) {
		err := bs.Insert(context.TODO(), testRecordID, testRecord)
		assert.NoError(t, err)
	})

	t.Run("get existent record", func(t *testing.T) {
		data, err := bs.Get(context.TODO(), testRecordID)
		assert.NoError(t, err)
		assert.Equal(t, testRecord, data)
	})

	t.Run("get non existent record", func(t *testing.T) {
		data, err := bs.Get(context.TODO(), "b:1")
		assert.ErrorIs(t, err, ErrRecordNotFound)
		assert.Nil(t, data)
	})

	t.Run("update record", func(t *testing.T) {
		updated := []byte(`{"id":"b:0","title":"Updated title","author":"Jerome Amon"}`)
		err := bs.Update(context.TODO(), testRecordID, updated)
		assert.NoError(t, err)
		data, err := bs.Get(context.TODO(), testRecordID)
		assert.NoError(t, err)
		assert.Equal(t, updated, data)
	})

	t.Run("list and count records", func(t *testing.T) {
		err := bs.Insert(context.TODO(), "b:1", []byte(`{"id":"b:1"}`))
		assert.NoError(t, err)
		records, err := bs.List(context.TODO())
		assert.NoError(t, err)
		assert.Len(t, records, 2)
		total, err := bs.Count(context.TODO())
		assert.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("delete existent record", func(t *testing.T) {
		err := bs.Delete(context.TODO(), testRecordID)
		assert.NoError(t, err)
		_, err = bs.Get(context.TODO(), testRecordID)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("delete non existent record", func(t *testing.T) {
		err := bs.Delete(context.TODO(), testRecordID)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}
