package storage

import (
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketWallet = []byte("wallet")

// Bolt stores keys in a single bbolt bucket.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens or creates the bbolt file at path.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, unavailable("open bolt", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketWallet)
		return err
	})
	if err != nil {
		db.Close()
		return nil, unavailable("create bucket", err)
	}
	return &Bolt{db: db}, nil
}

func (b *Bolt) Get(key string) (string, error) {
	var (
		out   string
		found bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketWallet).Get([]byte(key))
		if v != nil {
			out, found = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", unavailable("get", err)
	}
	if !found {
		return "", ErrNotFound
	}
	return out, nil
}

func (b *Bolt) Set(key, value string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketWallet).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return unavailable("set", err)
	}
	return nil
}

func (b *Bolt) Remove(key string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketWallet).Delete([]byte(key))
	})
	if err != nil {
		return unavailable("remove", err)
	}
	return nil
}

func (b *Bolt) Close() error {
	return b.db.Close()
}
