package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/boltdb/bolt"
)

var linesBucket = []byte("lines")

// A processed line as saved in the journal.
type lineRecord struct {
	ID     uint64
	When   time.Time
	Op     string
	Input  string
	Output string
}

// journal records processed lines in a Bolt database, in processing order.
type journal struct {
	db *bolt.DB
}

func openJournal(path string) (*journal, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(linesBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &journal{db: db}, nil
}

func (j *journal) Close() error {
	return j.db.Close()
}

func (j *journal) record(op string, input, output []byte) error {
	return j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(linesBucket)
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		v, err := json.Marshal(&lineRecord{
			ID:     id,
			When:   time.Now(),
			Op:     op,
			Input:  string(input),
			Output: string(output),
		})
		if err != nil {
			return err
		}
		return b.Put(id2key(id), v)
	})
}

// each calls fn on every record, oldest first, stopping at the first error.
func (j *journal) each(fn func(*lineRecord) error) error {
	return j.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(linesBucket).ForEach(func(k, v []byte) error {
			var r lineRecord
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("record %d: %w", key2id(k), err)
			}
			return fn(&r)
		})
	})
}

func (j *journal) printHistory(w io.Writer) error {
	return j.each(func(r *lineRecord) error {
		_, err := fmt.Fprintf(w, "%d %s %s %q %q\n", r.ID, r.When.Format(time.RFC3339), r.Op, r.Input, r.Output)
		return err
	})
}

// Keys are zero padded so that Bolt's byte ordering is numeric ordering.
func id2key(id uint64) []byte {
	return []byte(fmt.Sprintf("%020d", id))
}

func key2id(key []byte) uint64 {
	id, _ := strconv.ParseUint(string(key), 10, 64)
	return id
}
