package cache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// TestKey_ParamOrderIrrelevant: identical requests must collide on the same
// key regardless of parameter insertion order.
func TestKey_ParamOrderIrrelevant(t *testing.T) {
	a := Key("https://example.com/resource", map[string]string{"start": "0", "count": "100"})
	b := Key("https://example.com/resource", map[string]string{"count": "100", "start": "0"})
	if a != b {
		t.Fatalf("keys differ for same params: %s vs %s", a, b)
	}
	if len(a) != 32 {
		t.Fatalf("key length = %d, want 32", len(a))
	}
}

func TestKey_DistinguishesURLAndParams(t *testing.T) {
	base := Key("https://example.com/a", nil)
	if got := Key("https://example.com/b", nil); got == base {
		t.Fatal("different URLs produced the same key")
	}
	if got := Key("https://example.com/a", map[string]string{"x": "1"}); got == base {
		t.Fatal("params did not change the key")
	}
}

func TestMemory_GetPut(t *testing.T) {
	m := NewMemory(time.Minute)
	if _, ok := m.Get("k"); ok {
		t.Fatal("hit on empty cache")
	}
	m.Put("k", []byte(`{"a":1}`))
	data, ok := m.Get("k")
	if !ok || !bytes.Equal(data, []byte(`{"a":1}`)) {
		t.Fatalf("Get = %q, %v", data, ok)
	}
}

// TestMemory_TTLBoundary: an entry whose age equals the TTL is expired.
func TestMemory_TTLBoundary(t *testing.T) {
	m := NewMemory(time.Minute)
	base := time.Now()
	m.now = func() time.Time { return base }
	m.Put("k", []byte("v"))

	m.now = func() time.Time { return base.Add(time.Minute - time.Nanosecond) }
	if _, ok := m.Get("k"); !ok {
		t.Fatal("entry just under TTL should be live")
	}

	m.now = func() time.Time { return base.Add(time.Minute) }
	if _, ok := m.Get("k"); ok {
		t.Fatal("entry exactly at TTL should be expired")
	}
}

func newTestDisk(t *testing.T, ttl time.Duration) *Disk {
	t.Helper()
	return NewDisk(t.TempDir(), ttl, zerolog.Nop())
}

func TestDisk_RoundTrip(t *testing.T) {
	d := newTestDisk(t, time.Hour)
	d.Put("abc123", []byte(`{"puuid":"x"}`))
	data, ok := d.Get("abc123")
	if !ok || !bytes.Equal(data, []byte(`{"puuid":"x"}`)) {
		t.Fatalf("Get = %q, %v", data, ok)
	}
}

// TestDisk_NonJSONPayload: the payload is opaque bytes, so values that are
// not valid JSON themselves must still round-trip through the envelope.
func TestDisk_NonJSONPayload(t *testing.T) {
	d := newTestDisk(t, time.Hour)
	raw := []byte{0x00, 0x1f, 'g', 'z', 0xff}
	d.Put("bin", raw)
	data, ok := d.Get("bin")
	if !ok || !bytes.Equal(data, raw) {
		t.Fatalf("Get = %q, %v", data, ok)
	}
	d.Put("text", []byte("plain text, not json"))
	if data, ok := d.Get("text"); !ok || string(data) != "plain text, not json" {
		t.Fatalf("Get = %q, %v", data, ok)
	}
}

// TestDisk_TTLBoundary: validity is age < TTL, so age == TTL is a miss.
func TestDisk_TTLBoundary(t *testing.T) {
	d := newTestDisk(t, time.Hour)
	base := time.Now()
	d.now = func() time.Time { return base }
	d.Put("k", []byte("1"))

	d.now = func() time.Time { return base.Add(time.Hour - time.Second) }
	if _, ok := d.Get("k"); !ok {
		t.Fatal("entry under TTL should be live")
	}

	d.now = func() time.Time { return base.Add(time.Hour) }
	if _, ok := d.Get("k"); ok {
		t.Fatal("entry exactly at TTL should be expired")
	}
}

// TestDisk_CorruptEntry: a malformed file is a miss, never an error.
func TestDisk_CorruptEntry(t *testing.T) {
	d := newTestDisk(t, time.Hour)
	if err := os.WriteFile(filepath.Join(d.dir, "bad.json"), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := d.Get("bad"); ok {
		t.Fatal("corrupt entry returned a hit")
	}
}

// TestDisk_OverwriteExpired: a new store silently replaces an expired entry.
func TestDisk_OverwriteExpired(t *testing.T) {
	d := newTestDisk(t, time.Hour)
	base := time.Now()
	d.now = func() time.Time { return base }
	d.Put("k", []byte("old"))

	d.now = func() time.Time { return base.Add(2 * time.Hour) }
	d.Put("k", []byte("new"))
	data, ok := d.Get("k")
	if !ok || string(data) != "new" {
		t.Fatalf("Get after overwrite = %q, %v", data, ok)
	}
}

func TestDisk_Sweep(t *testing.T) {
	d := newTestDisk(t, time.Hour)
	base := time.Now()
	d.now = func() time.Time { return base }
	d.Put("old", []byte("1"))

	d.now = func() time.Time { return base.Add(2 * time.Hour) }
	d.Put("fresh", []byte("2"))

	if removed := d.Sweep(); removed != 1 {
		t.Fatalf("Sweep removed %d entries, want 1", removed)
	}
	if _, ok := d.Get("fresh"); !ok {
		t.Fatal("sweep removed a live entry")
	}
}

// TestTiered_DiskHitRepopulatesMemory: a disk hit on a memory miss fills the
// memory layer so the next read never touches disk.
func TestTiered_DiskHitRepopulatesMemory(t *testing.T) {
	mem := NewMemory(time.Minute)
	disk := newTestDisk(t, time.Hour)
	tc := NewTiered(mem, disk, zerolog.Nop())

	url := "https://example.com/r"
	disk.Put(Key(url, nil), []byte("payload"))

	data, ok := tc.Get(url, nil)
	if !ok || string(data) != "payload" {
		t.Fatalf("Get = %q, %v", data, ok)
	}
	if _, ok := mem.Get(Key(url, nil)); !ok {
		t.Fatal("disk hit did not repopulate memory layer")
	}
}

func TestTiered_PutWritesBothLayers(t *testing.T) {
	mem := NewMemory(time.Minute)
	disk := newTestDisk(t, time.Hour)
	tc := NewTiered(mem, disk, zerolog.Nop())

	tc.Put("https://example.com/r", map[string]string{"a": "1"}, []byte("v"))
	key := Key("https://example.com/r", map[string]string{"a": "1"})
	if _, ok := mem.Get(key); !ok {
		t.Fatal("memory layer missing entry")
	}
	if _, ok := disk.Get(key); !ok {
		t.Fatal("disk layer missing entry")
	}
}
