package storage

import (
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
)

// LevelDB stores each key as one LevelDB record.
type LevelDB struct {
	db *leveldb.DB
}

// OpenLevelDB opens or creates the LevelDB directory at path.
func OpenLevelDB(path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, unavailable("open leveldb", err)
	}
	return &LevelDB{db: db}, nil
}

func (l *LevelDB) Get(key string) (string, error) {
	v, err := l.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", unavailable("get", err)
	}
	return string(v), nil
}

func (l *LevelDB) Set(key, value string) error {
	if err := l.db.Put([]byte(key), []byte(value), nil); err != nil {
		return unavailable("set", err)
	}
	return nil
}

func (l *LevelDB) Remove(key string) error {
	if err := l.db.Delete([]byte(key), nil); err != nil {
		return unavailable("remove", err)
	}
	return nil
}

func (l *LevelDB) Close() error {
	return l.db.Close()
}
