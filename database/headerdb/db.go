// Copyright (c) 2021 The ExchangeCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package headerdb

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
	"gitlab.com/exccoin/exccore/types/chainhash"
	"gitlab.com/exccoin/exccore/types/wire"
)

// ErrHeaderNotFound is returned when the requested header is not stored.
var ErrHeaderNotFound = errors.New("header not found")

var (
	// headerPrefix keys the serialized header by its hash.
	headerPrefix = []byte("h/")

	// heightPrefix keys the header hash by its big-endian height, so an
	// iteration over the prefix walks the chain in height order.
	heightPrefix = []byte("n/")
)

func headerKey(hash *chainhash.Hash) []byte {
	key := make([]byte, len(headerPrefix)+chainhash.HashSize)
	copy(key, headerPrefix)
	copy(key[len(headerPrefix):], hash[:])
	return key
}

func heightKey(height uint32) []byte {
	key := make([]byte, len(heightPrefix)+4)
	copy(key, heightPrefix)
	binary.BigEndian.PutUint32(key[len(heightPrefix):], height)
	return key
}

// DB is an index of block headers by hash and by height backed by LevelDB.
// It is safe for concurrent use.
type DB struct {
	ldb *leveldb.DB
}

// Open opens the header index at path, creating it when it does not exist.
// A corrupted database is recovered before use.
func Open(path string) (*DB, error) {
	ldb, err := leveldb.OpenFile(path, nil)

	// If the database is corrupted, attempt to recover.
	if _, corrupted := err.(*ldberrors.ErrCorrupted); corrupted {
		log.Warn().Str("path", path).Err(err).Msg("LevelDB corruption detected")
		ldb, err = leveldb.RecoverFile(path, nil)
		if err != nil {
			return nil, errors.Wrap(err, "unable to recover header db")
		}
		log.Warn().Str("path", path).Msg("LevelDB recovered from corruption")
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open header db at %s", path)
	}

	log.Debug().Str("path", path).Msg("header db opened")
	return &DB{ldb: ldb}, nil
}

// OpenMemory opens a header index that lives in memory only.
func OpenMemory() (*DB, error) {
	ldb, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open in-memory header db")
	}
	return &DB{ldb: ldb}, nil
}

// Close closes the database.
func (db *DB) Close() error {
	return db.ldb.Close()
}

// PutHeader stores the header under its hash and its height.  A header
// stored at the same height replaces the previous height entry.
func (db *DB) PutHeader(header *wire.BlockHeader) error {
	return db.PutHeaders([]*wire.BlockHeader{header})
}

// PutHeaders stores all headers in one atomic batch.
func (db *DB) PutHeaders(headers []*wire.BlockHeader) error {
	batch := new(leveldb.Batch)
	for _, header := range headers {
		hash := header.BlockHash()
		batch.Put(headerKey(&hash), header.Bytes())
		batch.Put(heightKey(header.Height()), hash[:])
	}
	if err := db.ldb.Write(batch, nil); err != nil {
		return errors.Wrap(err, "unable to write headers")
	}
	log.Trace().Int("count", len(headers)).Msg("headers stored")
	return nil
}

// HasHeader reports whether a header with the given hash is stored.
func (db *DB) HasHeader(hash *chainhash.Hash) (bool, error) {
	return db.ldb.Has(headerKey(hash), nil)
}

// FetchHeader returns the header with the given hash.
func (db *DB) FetchHeader(hash *chainhash.Hash) (*wire.BlockHeader, error) {
	raw, err := db.ldb.Get(headerKey(hash), nil)
	if err == leveldb.ErrNotFound {
		return nil, errors.Wrapf(ErrHeaderNotFound, "hash %s", hash)
	}
	if err != nil {
		return nil, err
	}

	header, err := wire.FromBytes(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt header %s", hash)
	}
	if got := header.BlockHash(); !got.IsEqual(hash) {
		return nil, errors.Errorf("stored header %s hashes to %s", hash, got)
	}
	return header, nil
}

// FetchHeaderByHeight returns the header stored at height.
func (db *DB) FetchHeaderByHeight(height uint32) (*wire.BlockHeader, error) {
	raw, err := db.ldb.Get(heightKey(height), nil)
	if err == leveldb.ErrNotFound {
		return nil, errors.Wrapf(ErrHeaderNotFound, "height %d", height)
	}
	if err != nil {
		return nil, err
	}

	hash, err := chainhash.NewHash(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt height entry %d", height)
	}
	return db.FetchHeader(hash)
}

// BestHeader returns the header stored at the greatest height.
func (db *DB) BestHeader() (*wire.BlockHeader, error) {
	iter := db.ldb.NewIterator(util.BytesPrefix(heightPrefix), nil)
	defer iter.Release()

	if !iter.Last() {
		if err := iter.Error(); err != nil {
			return nil, err
		}
		return nil, errors.Wrap(ErrHeaderNotFound, "empty header db")
	}
	hash, err := chainhash.NewHash(iter.Value())
	if err != nil {
		return nil, errors.Wrap(err, "corrupt height entry")
	}
	return db.FetchHeader(hash)
}

// ForEach calls fn for every header in ascending height order.  Iteration
// stops at the first error fn returns.
func (db *DB) ForEach(fn func(header *wire.BlockHeader) error) error {
	iter := db.ldb.NewIterator(util.BytesPrefix(heightPrefix), nil)
	defer iter.Release()

	for iter.Next() {
		hash, err := chainhash.NewHash(iter.Value())
		if err != nil {
			return errors.Wrap(err, "corrupt height entry")
		}
		header, err := db.FetchHeader(hash)
		if err != nil {
			return err
		}
		if err := fn(header); err != nil {
			return err
		}
	}
	return iter.Error()
}

// Count returns the number of stored headers.
func (db *DB) Count() (int, error) {
	iter := db.ldb.NewIterator(util.BytesPrefix(headerPrefix), nil)
	defer iter.Release()

	n := 0
	for iter.Next() {
		n++
	}
	return n, iter.Error()
}
