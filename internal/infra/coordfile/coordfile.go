package coordfile

import (
	"bufio"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/aalvaropc/foilopt/internal/domain"
	"github.com/aalvaropc/foilopt/internal/ports"
)

// Store reads and rewrites airfoil coordinate files (label line + "x y" rows).
type Store struct {
	inputDir string
}

type Option func(*Store)

func WithInputDir(dir string) Option {
	return func(s *Store) { s.inputDir = dir }
}

func NewStore(opts ...Option) *Store {
	s := &Store{inputDir: "input"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ ports.CoordinateSource = (*Store)(nil)
	_ ports.CoordinateSink   = (*Store)(nil)
	_ ports.AirfoilCatalog   = (*Store)(nil)
)

// Parse reads a coordinate stream. The first line is the label. A later line is
// kept only when its first two fields are numbers with magnitude <= 1; anything
// else (point counts, blank lines, comments) is dropped silently.
func Parse(r io.Reader) (domain.BoundaryPointSet, error) {
	var set domain.BoundaryPointSet

	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			set.Label = strings.TrimRight(line, "\r")
			first = false
			continue
		}
		if p, ok := parsePoint(line); ok {
			set.Points = append(set.Points, p)
		}
	}
	if err := sc.Err(); err != nil {
		return domain.BoundaryPointSet{}, err
	}
	return set, nil
}

func parsePoint(line string) (domain.Point, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return domain.Point{}, false
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return domain.Point{}, false
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return domain.Point{}, false
	}
	if !(math.Abs(x) <= 1 && math.Abs(y) <= 1) {
		return domain.Point{}, false
	}
	return domain.Point{X: x, Y: y}, true
}

// Write emits label followed by one "x y" line per point.
func Write(w io.Writer, label string, points []domain.Point) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(label + "\n"); err != nil {
		return err
	}
	buf := make([]byte, 0, 64)
	for _, p := range points {
		buf = buf[:0]
		buf = strconv.AppendFloat(buf, p.X, 'g', -1, 64)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, p.Y, 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (s *Store) ReadCoordinates(path string) (domain.BoundaryPointSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.BoundaryPointSet{}, &domain.OpError{
			Op:   "coordfile.read",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	set, err := Parse(f)
	if err != nil {
		return domain.BoundaryPointSet{}, &domain.OpError{
			Op:   "coordfile.read",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return set, nil
}

// WriteCoordinates overwrites path through a uniquely named temp file in the same
// directory and a rename, so concurrent writers never share a temp file.
func (s *Store) WriteCoordinates(path string, airfoil domain.CanonicalAirfoil) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return &domain.OpError{
			Op:   "coordfile.write",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	tmp := f.Name()

	werr := Write(f, airfoil.Label, airfoil.Points)
	if werr == nil {
		werr = f.Chmod(0o644)
	}
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "coordfile.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  werr,
		}
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "coordfile.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return nil
}

// ListAirfoils returns the coordinate files (.dat, .txt) under the input dir.
// Names come from the label line, falling back to the file name.
func (s *Store) ListAirfoils(root string) ([]domain.AirfoilRef, error) {
	dir := filepath.Join(root, s.inputDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "coordfile.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.AirfoilRef
	for _, e := range entries {
		if e.IsDir() || !HasCoordinateExt(e.Name()) {
			continue
		}

		p := filepath.Join(dir, e.Name())
		n := readLabel(p)
		if n == "" {
			n = strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		}
		refs = append(refs, domain.AirfoilRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Path < refs[j].Path })
	return refs, nil
}

// HasCoordinateExt reports whether name looks like a coordinate file.
func HasCoordinateExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".dat", ".txt":
		return true
	}
	return false
}

func readLabel(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if sc.Scan() {
		return strings.TrimSpace(sc.Text())
	}
	return ""
}
