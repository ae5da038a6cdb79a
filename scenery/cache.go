// scenery/cache.go
// Copyright(c) 2026 x-dispatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scenery

import (
	"database/sql"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lyestarzalt/x-dispatch-sub002/apt"
	"github.com/lyestarzalt/x-dispatch-sub002/log"
	"github.com/lyestarzalt/x-dispatch-sub002/util"
)

// Cache stores parsed airports in a SQLite database keyed by ICAO, each
// record tagged with the modification time of the apt.dat it came from.
// Records are msgpack-encoded and zstd-compressed; a stale or undecodable
// record is silently replaced by a fresh parse.
type Cache struct {
	db  *sql.DB
	lg  *log.Logger
	enc *zstd.Encoder
	dec *zstd.Decoder
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS airports (
    icao    TEXT PRIMARY KEY,
    modtime INTEGER NOT NULL,
    record  BLOB NOT NULL
)`

// OpenCache opens (creating if necessary) the airport cache database at
// the given path. lg may be nil.
func OpenCache(path string, lg *log.Logger) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db, lg: lg, enc: enc, dec: dec}, nil
}

func (c *Cache) Close() error {
	c.enc.Close()
	c.dec.Close()
	return c.db.Close()
}

// Get returns the parsed airport for the chunk. If the cache holds a
// record for the chunk's ICAO with a matching modification time, that
// record is returned without reparsing; otherwise the chunk is parsed and
// the result upserted. Parse diagnostics accumulate in e as usual.
func (c *Cache) Get(chunk Chunk, modTime time.Time, e *util.ErrorLogger) (*apt.Airport, error) {
	var stored int64
	var blob []byte
	err := c.db.QueryRow(`SELECT modtime, record FROM airports WHERE icao = ?`,
		chunk.ICAO).Scan(&stored, &blob)
	switch {
	case err == nil && stored == modTime.Unix():
		if ap, err := c.decode(blob); err == nil {
			return ap, nil
		} else {
			c.lg.Warnf("%s: discarding undecodable cache record: %v", chunk.ICAO, err)
		}
	case err != nil && err != sql.ErrNoRows:
		return nil, err
	}

	ap := apt.Parse(chunk.Text, c.lg, e)
	blob, err = c.encode(ap)
	if err != nil {
		return nil, err
	}
	_, err = c.db.Exec(`INSERT INTO airports (icao, modtime, record) VALUES (?, ?, ?)
        ON CONFLICT(icao) DO UPDATE SET modtime = excluded.modtime, record = excluded.record`,
		chunk.ICAO, modTime.Unix(), blob)
	return ap, err
}

func (c *Cache) encode(ap *apt.Airport) ([]byte, error) {
	b, err := msgpack.Marshal(ap)
	if err != nil {
		return nil, err
	}
	return c.enc.EncodeAll(b, nil), nil
}

func (c *Cache) decode(blob []byte) (*apt.Airport, error) {
	b, err := c.dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, err
	}
	ap := &apt.Airport{}
	if err := msgpack.Unmarshal(b, ap); err != nil {
		return nil, err
	}
	return ap, nil
}
