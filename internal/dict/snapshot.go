package dict

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/kamusis/gendex/internal/gender"
)

// Increment when snapshotPayload changes.
const snapshotSchemaVersion uint16 = 1

const (
	snapshotExt      = ".mp"
	snapshotLockName = "snapshot.lock"
)

// SnapshotLockTimeout bounds how long SaveSnapshot waits for another writer.
var SnapshotLockTimeout = 10 * time.Second

type snapshotPayload struct {
	Schema        uint16
	CaseSensitive bool
	Encoding      string
	FieldWidth    int
	Records       int
	Names         []snapshotName
}

type snapshotName struct {
	Key     string
	Genders []string
	Rows    []string
}

// SnapshotKey derives the cache key of a dictionary parsed with opts.
func SnapshotKey(data []byte, opts Options) string {
	opts = opts.withDefaults()
	h := sha256.New()
	h.Write(data)
	fmt.Fprintf(h, "\x00schema=%d;cs=%t;enc=%s;width=%d",
		snapshotSchemaVersion, opts.CaseSensitive, strings.ToUpper(opts.Encoding), opts.FieldWidth)
	return hex.EncodeToString(h.Sum(nil))
}

// SnapshotPath returns the file a snapshot with key is stored in.
func SnapshotPath(dir, key string) string {
	return filepath.Join(dir, key+snapshotExt)
}

// SaveSnapshot writes idx to dir under key, replacing any previous file atomically.
func SaveSnapshot(dir, key string, idx *Index) error {
	if idx.customFold {
		return ErrCustomFold
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create snapshot dir %s: %w", dir, err)
	}

	unlock, err := lockSnapshots(dir, SnapshotLockTimeout)
	if err != nil {
		return err
	}
	defer unlock()

	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return fmt.Errorf("cannot create snapshot temp file: %w", err)
	}
	defer func() { _ = os.Remove(f.Name()) }()

	if err := msgpack.NewEncoder(f).Encode(idx.payload()); err != nil {
		_ = f.Close()
		return fmt.Errorf("cannot encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(f.Name(), SnapshotPath(dir, key)); err != nil {
		return fmt.Errorf("cannot install snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads the snapshot stored under key. A missing, stale or
// unreadable snapshot is reported as a miss (nil, false, nil); only
// filesystem errors other than "not exist" are returned.
func LoadSnapshot(dir, key string) (*Index, bool, error) {
	f, err := os.Open(SnapshotPath(dir, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cannot open snapshot: %w", err)
	}
	defer f.Close()

	var p snapshotPayload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, false, nil
	}
	if p.Schema != snapshotSchemaVersion {
		return nil, false, nil
	}
	idx, err := fromPayload(&p)
	if err != nil {
		return nil, false, nil
	}
	return idx, true, nil
}

// PruneSnapshots removes every snapshot in dir except keep.
func PruneSnapshots(dir, keep string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, snapshotExt) || name == keep+snapshotExt {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (x *Index) payload() *snapshotPayload {
	keys := make([]string, 0, len(x.names))
	for k := range x.names {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := &snapshotPayload{
		Schema:        snapshotSchemaVersion,
		CaseSensitive: x.caseSensitive,
		Encoding:      x.encoding,
		FieldWidth:    x.fieldWidth,
		Records:       x.records,
		Names:         make([]snapshotName, 0, len(keys)),
	}
	for _, k := range keys {
		slots := x.names[k]
		n := snapshotName{
			Key:     k,
			Genders: make([]string, len(slots)),
			Rows:    make([]string, len(slots)),
		}
		for i, s := range slots {
			n.Genders[i] = string(s.gender)
			n.Rows[i] = string(s.row)
		}
		p.Names = append(p.Names, n)
	}
	return p
}

func fromPayload(p *snapshotPayload) (*Index, error) {
	idx := newIndex(Options{
		CaseSensitive: p.CaseSensitive,
		Encoding:      p.Encoding,
		FieldWidth:    p.FieldWidth,
	}.withDefaults(), false)
	idx.records = p.Records
	for _, n := range p.Names {
		if len(n.Genders) != len(n.Rows) {
			return nil, fmt.Errorf("snapshot entry %q: %d genders, %d rows", n.Key, len(n.Genders), len(n.Rows))
		}
		slots := make([]slot, len(n.Genders))
		for i := range n.Genders {
			slots[i] = slot{gender: gender.Gender(n.Genders[i]), row: Row(n.Rows[i])}
		}
		idx.names[n.Key] = slots
	}
	return idx, nil
}

// lockSnapshots takes the per-directory writer lock, polling until timeout.
func lockSnapshots(dir string, timeout time.Duration) (func(), error) {
	lockPath := filepath.Join(dir, snapshotLockName)
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return func() {}, fmt.Errorf("cannot acquire snapshot lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return func() {}, fmt.Errorf("another snapshot write is in progress (lock: %s)", lockPath)
		}
		time.Sleep(200 * time.Millisecond)
	}
}
