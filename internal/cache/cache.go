// Package cache provides the two-tier TTL cache in front of the Riot API:
// a volatile in-memory layer checked first and a durable on-disk layer that
// survives restarts. Cache failures never propagate; callers proceed as if
// the entry were absent.
package cache

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Default TTLs. The memory layer turns over quickly; disk entries last an
// hour so a re-run within the same session skips the network entirely.
const (
	DefaultMemoryTTL = 5 * time.Minute
	DefaultDiskTTL   = 1 * time.Hour
)

// Key derives the cache key for a request: an md5 hex digest (32 chars,
// fixed length) over the URL concatenated with the params serialized with
// sorted keys. Identical requests collide on the same key regardless of
// parameter insertion order.
func Key(url string, params map[string]string) string {
	var sb strings.Builder
	sb.WriteString(url)
	if len(params) > 0 {
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			kb, _ := json.Marshal(k)
			vb, _ := json.Marshal(params[k])
			sb.Write(kb)
			sb.WriteString(": ")
			sb.Write(vb)
		}
		sb.WriteByte('}')
	}
	return fmt.Sprintf("%x", md5.Sum([]byte(sb.String())))
}

// Store is the contract both layers satisfy. Get returns the raw JSON
// payload and whether a live entry was found; expired entries behave as
// absent. Neither method returns an error: failures are swallowed and
// logged by the implementation.
type Store interface {
	Get(key string) ([]byte, bool)
	Put(key string, value []byte)
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is the volatile layer: a thread-safe map with per-entry expiry and
// a background evict loop.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory creates the in-memory layer and starts its evict loop.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultMemoryTTL
	}
	m := &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
	go m.evictLoop()
	return m
}

// Get returns the payload for key if it is still live. An entry whose age
// equals the TTL is already expired.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok || !m.now().Before(e.expiresAt) {
		return nil, false
	}
	return e.data, true
}

// Put stores the payload, silently overwriting any previous entry.
func (m *Memory) Put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{data: value, expiresAt: m.now().Add(m.ttl)}
}

// Len reports live and total entry counts.
func (m *Memory) Len() (live, total int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	now := m.now()
	for _, e := range m.entries {
		if now.Before(e.expiresAt) {
			live++
		}
	}
	return live, len(m.entries)
}

func (m *Memory) evictLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		m.evict()
	}
}

func (m *Memory) evict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for key, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, key)
		}
	}
}

// Tiered combines the memory and disk layers. Reads check memory first, then
// disk; a disk hit repopulates the memory layer so the next read is cheap.
// Writes go to both layers.
type Tiered struct {
	memory *Memory
	disk   *Disk
	log    zerolog.Logger
}

// NewTiered wires the two layers together.
func NewTiered(memory *Memory, disk *Disk, log zerolog.Logger) *Tiered {
	return &Tiered{memory: memory, disk: disk, log: log}
}

// Get returns the cached payload for url+params, or ok=false on a full miss.
func (t *Tiered) Get(url string, params map[string]string) ([]byte, bool) {
	key := Key(url, params)
	if data, ok := t.memory.Get(key); ok {
		t.log.Debug().Str("key", key).Msg("cache hit (memory)")
		return data, true
	}
	if data, ok := t.disk.Get(key); ok {
		t.log.Debug().Str("key", key).Msg("cache hit (disk)")
		t.memory.Put(key, data)
		return data, true
	}
	t.log.Debug().Str("key", key).Msg("cache miss")
	return nil, false
}

// Put stores the payload in both layers.
func (t *Tiered) Put(url string, params map[string]string, value []byte) {
	key := Key(url, params)
	t.memory.Put(key, value)
	t.disk.Put(key, value)
}
