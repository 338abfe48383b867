package polar

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/aalvaropc/foilopt/internal/domain"
	"github.com/aalvaropc/foilopt/internal/ports"
)

// Loader reads polar files written by XFOIL's PWRT command.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.PolarLoader = (*Loader)(nil)

func (l *Loader) LoadPolar(path string) (domain.Sweep, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "polar.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	sweep, err := Parse(f)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "polar.load",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return sweep, nil
}

// Parse reads alpha, CL and CD from the first three columns of each data row.
// Rows above the dashed column separator are discarded; so is any row whose
// first three fields are not finite numbers. Row order is preserved.
func Parse(r io.Reader) (domain.Sweep, error) {
	var sweep domain.Sweep

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if isSeparator(line) {
			sweep = sweep[:0]
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		var v [3]float64
		ok := true
		for i := range v {
			f, err := strconv.ParseFloat(fields[i], 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				ok = false
				break
			}
			v[i] = f
		}
		if !ok {
			continue
		}
		sweep = append(sweep, domain.NewSweepRecord(v[0], v[1], v[2]))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return sweep, nil
}

func isSeparator(line string) bool {
	if !strings.HasPrefix(line, "---") {
		return false
	}
	return strings.Trim(line, "- ") == ""
}
