package domain

import "time"

// OptimizationRun is the outcome of optimizing one polar sweep.
type OptimizationRun struct {
	Airfoil     string `json:"airfoil"`
	AirfoilPath string `json:"airfoil_path,omitempty"`
	PolarPath   string `json:"polar_path"`

	Flow           FlowConfig   `json:"flow"`
	Solver         SolverConfig `json:"solver"`
	ReynoldsNumber float64      `json:"reynolds_number"`

	Sweep   Sweep         `json:"sweep"`
	Front   []ParetoPoint `json:"front"`
	Optimal OptimalConfig `json:"optimal"`

	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

// RunArtifact is a persisted optimization run.
type RunArtifact = OptimizationRun

// RunRef is a lightweight entry of the run index.
type RunRef struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	Airfoil   string    `json:"airfoil"`
	Alpha     float64   `json:"alpha"`
	StartedAt time.Time `json:"started_at"`
}
