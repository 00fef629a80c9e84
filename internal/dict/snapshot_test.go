package dict

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	idx := parseSample(t, Options{CaseSensitive: false})

	if err := SaveSnapshot(dir, "k1", idx); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	got, ok, err := LoadSnapshot(dir, "k1")
	if err != nil || !ok {
		t.Fatalf("LoadSnapshot: ok=%v err=%v", ok, err)
	}
	if got.Len() != idx.Len() || got.Records() != idx.Records() {
		t.Fatalf("size mismatch: %d/%d vs %d/%d", got.Len(), got.Records(), idx.Len(), idx.Records())
	}
	if got.CaseSensitive() || got.FieldWidth() != 1 || got.Encoding() != DefaultEncoding {
		t.Fatalf("options not restored: cs=%v width=%d enc=%s", got.CaseSensitive(), got.FieldWidth(), got.Encoding())
	}
	if !reflect.DeepEqual(got.names, idx.names) {
		t.Fatalf("entries differ after round trip")
	}
	if !got.Contains("SALLY") {
		t.Fatalf("restored index does not fold lookups")
	}
}

func TestSnapshot_Miss(t *testing.T) {
	dir := t.TempDir()
	idx, ok, err := LoadSnapshot(dir, "absent")
	if idx != nil || ok || err != nil {
		t.Fatalf("expected clean miss, got %v %v %v", idx, ok, err)
	}

	if err := os.WriteFile(SnapshotPath(dir, "junk"), []byte("not msgpack"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := LoadSnapshot(dir, "junk"); ok || err != nil {
		t.Fatalf("corrupt snapshot should be a miss: ok=%v err=%v", ok, err)
	}
}

func TestSnapshot_RejectsCustomFold(t *testing.T) {
	idx := parseSample(t, Options{Fold: strings.ToUpper})
	err := SaveSnapshot(t.TempDir(), "k", idx)
	if !errors.Is(err, ErrCustomFold) {
		t.Fatalf("expected ErrCustomFold, got %v", err)
	}
}

func TestSnapshotKey(t *testing.T) {
	data := []byte("M  Bob")
	a := SnapshotKey(data, Options{CaseSensitive: true})
	if a != SnapshotKey(data, Options{CaseSensitive: true, Encoding: "iso-8859-1", FieldWidth: 1}) {
		t.Fatalf("defaults should not change the key")
	}
	if a == SnapshotKey(data, Options{CaseSensitive: false}) {
		t.Fatalf("case sensitivity must change the key")
	}
	if a == SnapshotKey(data, Options{CaseSensitive: true, FieldWidth: 2}) {
		t.Fatalf("field width must change the key")
	}
	if a == SnapshotKey([]byte("M  Rob"), Options{CaseSensitive: true}) {
		t.Fatalf("content must change the key")
	}
}

func TestPruneSnapshots(t *testing.T) {
	dir := t.TempDir()
	idx := parseSample(t, Options{CaseSensitive: true})
	for _, k := range []string{"old1", "old2", "keep"} {
		if err := SaveSnapshot(dir, k, idx); err != nil {
			t.Fatal(err)
		}
	}
	n, err := PruneSnapshots(dir, "keep")
	if err != nil {
		t.Fatalf("PruneSnapshots: %v", err)
	}
	if n != 2 {
		t.Fatalf("removed %d, want 2", n)
	}
	if _, err := os.Stat(SnapshotPath(dir, "keep")); err != nil {
		t.Fatalf("kept snapshot removed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, snapshotLockName)); err != nil {
		t.Fatalf("lock file should survive pruning: %v", err)
	}
	if n, err := PruneSnapshots(filepath.Join(dir, "missing"), "keep"); n != 0 || err != nil {
		t.Fatalf("missing dir: %d %v", n, err)
	}
}
