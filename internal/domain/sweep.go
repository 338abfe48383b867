package domain

// SweepRecord is one solver result row for a single angle of attack.
// Efficiency is cL/cD as computed by the producer; selectors never recompute it.
type SweepRecord struct {
	Alpha      float64 `json:"alpha"`
	CL         float64 `json:"cl"`
	CD         float64 `json:"cd"`
	Efficiency float64 `json:"efficiency"`
}

// Valid is false for sentinel rows where both cL and cD are zero.
func (r SweepRecord) Valid() bool {
	return !(r.CL == 0 && r.CD == 0)
}

// Sweep is an alpha-ordered sequence of records.
type Sweep []SweepRecord

// NewSweep zips parallel alpha/cL/cD arrays into records, deriving efficiency.
// Extra elements in longer arrays are ignored.
func NewSweep(alpha, cl, cd []float64) Sweep {
	n := min(len(alpha), len(cl), len(cd))
	out := make(Sweep, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, NewSweepRecord(alpha[i], cl[i], cd[i]))
	}
	return out
}

// NewSweepRecord derives efficiency as cl/cd. Sentinel rows get zero efficiency.
func NewSweepRecord(alpha, cl, cd float64) SweepRecord {
	r := SweepRecord{Alpha: alpha, CL: cl, CD: cd}
	if r.Valid() && cd != 0 {
		r.Efficiency = cl / cd
	}
	return r
}

// ParetoPoint is the (cL, efficiency) projection of a record kept on the front.
type ParetoPoint struct {
	CL         float64 `json:"cl"`
	Efficiency float64 `json:"efficiency"`
}

// Point projects the record onto the objective plane.
func (r SweepRecord) Point() ParetoPoint {
	return ParetoPoint{CL: r.CL, Efficiency: r.Efficiency}
}

// OptimalConfig is the sweep record adopted as the best operating point.
type OptimalConfig struct {
	Alpha      float64 `json:"alpha"`
	CL         float64 `json:"cl"`
	CD         float64 `json:"cd"`
	Efficiency float64 `json:"efficiency"`
}
