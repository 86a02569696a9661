package storage

import (
	"time"

	"github.com/DrDelphi/EsdtLotteryBot/data"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	bolt "go.etcd.io/bbolt"
	"go.dedis.ch/protobuf"
	"golang.org/x/xerrors"
)

var log = logger.GetOrCreate("storage")

// Store - persists lottery snapshots in a bbolt database, one key per lottery
type Store struct {
	db *bolt.DB
}

// NewStore - opens (or creates) the database at path
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		log.Error("can not open database", "path", path, "error", err)
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(snapshotsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, xerrors.Errorf("creating snapshots bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Save replaces the snapshot stored under name
func (s *Store) Save(name string, snapshot *data.Snapshot) error {
	if name == "" {
		return errEmptyName
	}

	buf, err := protobuf.Encode(snapshot)
	if err != nil {
		return xerrors.Errorf("encoding snapshot: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(snapshotsBucket).Put([]byte(name), buf)
	})
	if err != nil {
		log.Error("can not save snapshot", "lottery", name, "error", err)
		return err
	}

	log.Trace("snapshot saved", "lottery", name, "entrants", len(snapshot.Entrants), "round", snapshot.Round)

	return nil
}

// Load returns the snapshot stored under name or ErrSnapshotNotFound
func (s *Store) Load(name string) (*data.Snapshot, error) {
	snapshot := &data.Snapshot{}
	err := s.db.View(func(tx *bolt.Tx) error {
		buf := tx.Bucket(snapshotsBucket).Get([]byte(name))
		if buf == nil {
			return ErrSnapshotNotFound
		}

		return protobuf.Decode(buf, snapshot)
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
