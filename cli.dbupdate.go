package main

import (
	"context"
	"fmt"
	"log"
)

// RunDBUpdate prepares the storage backends before the api can serve.
// It creates one replica bucket per served entity and checks the
// connection to the primary store. Running it on an already prepared
// setup is harmless.
func RunDBUpdate() error {
	config, err := LoadAndInitConfigs(GitCommit, GitTag, BuildTime)
	if err != nil {
		return fmt.Errorf("failed to setup app configuration: %s", err)
	}

	boltDBClient, err := GetBoltDBClient(config)
	if err != nil {
		return fmt.Errorf("failed to connect to boltDB server: %s", err)
	}
	defer boltDBClient.Close()

	entities := RegisteredEntities()
	if err := EnsureEntityBuckets(boltDBClient, entities); err != nil {
		return fmt.Errorf("failed to prepare replica buckets: %s", err)
	}
	for _, entity := range entities {
		log.Printf("dbupdate: replica bucket ready for entity %q", entity)
	}

	redisClient, err := GetRedisClient(config)
	if err != nil {
		return fmt.Errorf("failed to connect to redis server: %s", err)
	}
	defer redisClient.Close()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("failed to ping redis server: %s", err)
	}

	log.Printf("dbupdate: storage ready for %d entities", len(entities))
	return nil
}
