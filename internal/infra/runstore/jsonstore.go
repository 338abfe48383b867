package runstore

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aalvaropc/foilopt/internal/domain"
	"github.com/aalvaropc/foilopt/internal/ports"
)

const defaultRunsDir = "runs"
const indexFile = "index.jsonl"

type JSONStore struct {
	rootDir     string
	runsDirName string
	writeIndex  bool
	now         func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: runs/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	runsDir := cfg.Paths.RunsDir
	if strings.TrimSpace(runsDir) == "" {
		runsDir = defaultRunsDir
	}

	s := &JSONStore{
		rootDir:     root,
		runsDirName: runsDir,
		writeIndex:  false,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ArtifactStore = (*JSONStore)(nil)

func (s *JSONStore) dir() string {
	return filepath.Join(s.rootDir, s.runsDirName)
}

func (s *JSONStore) SaveRun(run domain.RunArtifact) (string, error) {
	dir := s.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	ts := run.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	toSave := run
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = ts
	}
	airfoilPart := run.Airfoil
	if strings.TrimSpace(airfoilPart) == "" {
		airfoilPart = strings.TrimSuffix(filepath.Base(run.AirfoilPath), filepath.Ext(run.AirfoilPath))
	}
	slug := slugify(airfoilPart)
	if slug == "" {
		slug = "run"
	}

	id := fmt.Sprintf("%s_%s", ts.Format("20060102T150405Z"), slug)
	id = s.uniqueID(dir, id)
	filename := id + ".json"
	path := filepath.Join(dir, filename)

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "runstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "runstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, domain.RunRef{
			ID:        id,
			File:      filename,
			Airfoil:   run.Airfoil,
			Alpha:     run.Optimal.Alpha,
			StartedAt: toSave.StartedAt,
		})
	}

	return id, nil
}

func (s *JSONStore) uniqueID(dir, id string) string {
	candidate := id
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(dir, candidate+".json")); errors.Is(err, os.ErrNotExist) {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", id, n)
	}
}

func (s *JSONStore) appendIndex(dir string, ref domain.RunRef) error {
	line, err := json.Marshal(ref)
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, indexFile)
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, _ = f.Write(append(line, '\n'))
	return nil
}

// ListRuns returns saved runs, newest first. It reads the index when present and
// falls back to scanning the runs directory.
func (s *JSONStore) ListRuns() ([]domain.RunRef, error) {
	dir := s.dir()
	refs, err := readIndex(filepath.Join(dir, indexFile))
	if err != nil {
		refs, err = scanDir(dir)
		if err != nil {
			return nil, &domain.OpError{
				Op:   "runstore.list",
				Kind: domain.KindNotFound,
				Path: dir,
				Err:  err,
			}
		}
	}

	sort.SliceStable(refs, func(i, j int) bool { return refs[i].ID > refs[j].ID })
	return refs, nil
}

// LoadRun returns the raw JSON of a saved run.
func (s *JSONStore) LoadRun(id string) ([]byte, error) {
	id = strings.TrimSuffix(strings.TrimSpace(id), ".json")
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, &domain.OpError{
			Op:   "runstore.load",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("invalid run id %q", id),
		}
	}

	path := filepath.Join(s.dir(), id+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "runstore.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	return b, nil
}

func readIndex(path string) ([]domain.RunRef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var refs []domain.RunRef
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var ref domain.RunRef
		if err := json.Unmarshal([]byte(line), &ref); err != nil {
			// Skip torn lines from interrupted appends.
			continue
		}
		refs = append(refs, ref)
	}
	return refs, sc.Err()
}

func scanDir(dir string) ([]domain.RunRef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var refs []domain.RunRef
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		refs = append(refs, domain.RunRef{
			ID:   strings.TrimSuffix(name, ".json"),
			File: name,
		})
	}
	return refs, nil
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			lastDash = false
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
