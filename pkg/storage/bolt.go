package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/Hugmeir/Statistics-EfficiencyCI/pkg/stats"
)

var bucketIntervals = []byte("intervals")

var ErrNotFound = errors.New("not_found")

// DB memoizes computed intervals. The computation is deterministic in
// (k, n, conflevel), so cached records never go stale.
type DB struct {
	db *bolt.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucketIntervals)
		return e
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error { return d.db.Close() }

type IntervalRecord struct {
	K          int     `json:"k"`
	N          int     `json:"n"`
	Conflevel  float64 `json:"conflevel"`
	Mode       float64 `json:"mode"`
	Low        float64 `json:"low"`
	High       float64 `json:"high"`
	Converged  bool    `json:"converged"`
	ComputedAt int64   `json:"computed_at_unix"`
}

func key(k, n int, conflevel float64) []byte {
	// strconv 'b' formatting keeps the float key exact.
	return []byte(fmt.Sprintf("%d/%d/%s", k, n, strconv.FormatFloat(conflevel, 'b', -1, 64)))
}

func (d *DB) PutInterval(k, n int, conflevel float64, r stats.Result) error {
	rec := IntervalRecord{
		K: k, N: n, Conflevel: conflevel,
		Mode: r.Mode, Low: r.Low, High: r.High, Converged: r.Converged,
		ComputedAt: time.Now().Unix(),
	}
	return d.db.Update(func(tx *bolt.Tx) error {
		j, _ := json.Marshal(rec)
		return tx.Bucket(bucketIntervals).Put(key(k, n, conflevel), j)
	})
}

func (d *DB) GetInterval(k, n int, conflevel float64) (*IntervalRecord, error) {
	var rec IntervalRecord
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketIntervals).Get(key(k, n, conflevel))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (d *DB) CountIntervals() (int, error) {
	n := 0
	err := d.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketIntervals).ForEach(func(k, v []byte) error {
			n++
			return nil
		})
	})
	return n, err
}
