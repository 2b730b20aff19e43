package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// diskEnvelope wraps a payload with its store time. The explicit timestamp
// keeps expiry portable across filesystems instead of leaning on mtime. Data
// is plain bytes (base64 in the file) so payloads need not be valid JSON.
type diskEnvelope struct {
	StoredAt int64  `json:"storedAt"` // unix seconds
	Data     []byte `json:"data"`
}

// Disk is the durable layer: one file per key named <digest>.json under dir.
// Every read and write error is logged at debug level and swallowed; the
// caller sees a plain miss.
type Disk struct {
	dir string
	ttl time.Duration
	log zerolog.Logger
	now func() time.Time
}

// NewDisk creates the on-disk layer, creating dir if needed. A directory
// creation failure is not fatal; subsequent writes simply miss.
func NewDisk(dir string, ttl time.Duration, log zerolog.Logger) *Disk {
	if ttl <= 0 {
		ttl = DefaultDiskTTL
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Debug().Err(err).Str("dir", dir).Msg("cache dir create failed")
	}
	return &Disk{dir: dir, ttl: ttl, log: log, now: time.Now}
}

func (d *Disk) path(key string) string {
	return filepath.Join(d.dir, key+".json")
}

// Get returns the payload for key if the entry exists and is younger than
// the TTL. Age equal to the TTL counts as expired.
func (d *Disk) Get(key string) ([]byte, bool) {
	raw, err := os.ReadFile(d.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			d.log.Debug().Err(err).Str("key", key).Msg("cache read failed")
		}
		return nil, false
	}
	var env diskEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		d.log.Debug().Err(err).Str("key", key).Msg("cache entry corrupt")
		return nil, false
	}
	age := d.now().Sub(time.Unix(env.StoredAt, 0))
	if age >= d.ttl {
		return nil, false
	}
	return env.Data, true
}

// Put stores the payload under key, silently overwriting an expired or live
// entry. The entry is written to a temp file and renamed into place so a
// concurrent reader never observes a partial write.
func (d *Disk) Put(key string, value []byte) {
	env := diskEnvelope{StoredAt: d.now().Unix(), Data: value}
	raw, err := json.Marshal(env)
	if err != nil {
		d.log.Debug().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}
	tmp, err := os.CreateTemp(d.dir, key+".tmp-*")
	if err != nil {
		d.log.Debug().Err(err).Str("key", key).Msg("cache temp create failed")
		return
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		d.log.Debug().Err(err).Str("key", key).Msg("cache write failed")
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		d.log.Debug().Err(err).Str("key", key).Msg("cache close failed")
		return
	}
	if err := os.Rename(tmp.Name(), d.path(key)); err != nil {
		os.Remove(tmp.Name())
		d.log.Debug().Err(err).Str("key", key).Msg("cache rename failed")
	}
}

// Stats summarizes the state of the disk layer.
type Stats struct {
	Entries int
	Expired int
	Bytes   int64
}

// Stats walks the cache directory and counts entries.
func (d *Disk) Stats() Stats {
	var s Stats
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return s
	}
	for _, ent := range entries {
		if ent.IsDir() || filepath.Ext(ent.Name()) != ".json" {
			continue
		}
		s.Entries++
		if info, err := ent.Info(); err == nil {
			s.Bytes += info.Size()
		}
		key := ent.Name()[:len(ent.Name())-len(".json")]
		if _, ok := d.Get(key); !ok {
			s.Expired++
		}
	}
	return s
}

// Sweep removes expired entries and returns how many were deleted.
func (d *Disk) Sweep() int {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		d.log.Debug().Err(err).Msg("cache sweep failed")
		return 0
	}
	removed := 0
	for _, ent := range entries {
		if ent.IsDir() || filepath.Ext(ent.Name()) != ".json" {
			continue
		}
		key := ent.Name()[:len(ent.Name())-len(".json")]
		if _, ok := d.Get(key); !ok {
			if err := os.Remove(filepath.Join(d.dir, ent.Name())); err == nil {
				removed++
			}
		}
	}
	return removed
}
