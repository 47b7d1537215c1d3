package bbolt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tymbaca/tour-go/pkg/caller"
	"github.com/tymbaca/tour-go/pkg/tracer"
	"github.com/tymbaca/tour-go/tour"
	"go.etcd.io/bbolt"
)

var _resultsBucket = []byte("results")

type BboltStorage struct {
	db *bbolt.DB
}

func New(path string) (*BboltStorage, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 30 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("create bbolt storage: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(_resultsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bbolt bucket: %w", err)
	}

	return &BboltStorage{
		db: db,
	}, nil
}

func (s *BboltStorage) Get(ctx context.Context, key string) (tour.Result, bool, error) {
	_, span := tracer.Start(ctx, caller.Name())
	defer span.End()

	var data []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		// bytes returned by Get are only valid inside the transaction
		if v := tx.Bucket(_resultsBucket).Get([]byte(key)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return tour.Result{}, false, fmt.Errorf("get %s: %w", key, err)
	}

	if data == nil {
		return tour.Result{}, false, nil
	}

	var res tour.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return tour.Result{}, false, fmt.Errorf("get %s: %w", key, err)
	}

	return res, true, nil
}

func (s *BboltStorage) Put(ctx context.Context, key string, res tour.Result) error {
	_, span := tracer.Start(ctx, caller.Name())
	defer span.End()

	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(_resultsBucket).Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	return nil
}

// Close must be call to release database connection.
func (s *BboltStorage) Close() error {
	return s.db.Close()
}

// Destroy closes the database and removes the file.
func (s *BboltStorage) Destroy() error {
	path := s.db.Path()
	_ = s.Close()
	return os.Remove(path)
}
