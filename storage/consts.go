package storage

import "errors"

var (
	snapshotsBucket = []byte("snapshots")

	ErrSnapshotNotFound = errors.New("snapshot not found")
	errEmptyName        = errors.New("empty lottery name")
)
