// Package storage is the durable local mirror of cart and wishlist
// state. Snapshots are JSON blobs in a leveldb keyspace, namespaced
// and versioned by the key prefix: a schema change bumps the version
// segment and stale blobs simply stop being found.
package storage

import (
	"fmt"
	"log/slog"

	"github.com/syndtr/goleveldb/leveldb"
)

type KV struct {
	db *leveldb.DB
}

func New(path string) (KV, error) {
	const op = "storage.New"
	log := slog.With("op", op)

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return KV{}, fmt.Errorf("%s: failed to open local store: %w", op, err)
	}

	log.Info("local store is available", "path", path)
	return KV{db}, nil
}

func (s KV) Close() {
	const op = "KV.Close"
	log := slog.With("op", op)

	log.Info("closing local store...")
	if err := s.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("local store is closed")
}
