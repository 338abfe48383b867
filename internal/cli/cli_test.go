package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aalvaropc/foilopt/internal/domain"
	"github.com/aalvaropc/foilopt/internal/infra/fsworkspace"
	"github.com/aalvaropc/foilopt/internal/infra/logger"
)

// --- looksLikePath ---

func TestLooksLikePath(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"naca2412", false},
		{"naca2412.dat", false},
		{"./naca2412.dat", true},
		{"input/naca2412.dat", true},
		{"/abs/path/naca2412.dat", true},
	}
	for _, c := range cases {
		if got := looksLikePath(c.input); got != c.want {
			t.Errorf("looksLikePath(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

// --- fileExists ---

func TestFileExists_True(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "exists.dat")
	if err := os.WriteFile(p, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !fileExists(p) {
		t.Errorf("expected fileExists=true for %s", p)
	}
}

func TestFileExists_False(t *testing.T) {
	tmp := t.TempDir()
	if fileExists(filepath.Join(tmp, "not_there.dat")) {
		t.Error("expected fileExists=false for non-existent file")
	}
	if fileExists(tmp) {
		t.Error("expected fileExists=false for a directory")
	}
}

// --- countInvalid ---

func TestCountInvalid(t *testing.T) {
	s := domain.NewSweep(
		[]float64{0, 1, 2},
		[]float64{0, 0.3, 0},
		[]float64{0, 0.01, 0},
	)
	if n := countInvalid(s); n != 2 {
		t.Errorf("expected 2, got %d", n)
	}
}

// --- printRun ---

func sampleRun() domain.OptimizationRun {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return domain.OptimizationRun{
		Airfoil:        "NACA 2412",
		PolarPath:      "output/sim_results.dat",
		ReynoldsNumber: 241180,
		Front:          []domain.ParetoPoint{{CL: 0.53, Efficiency: 51}},
		Optimal:        domain.OptimalConfig{Alpha: 2.5, CL: 0.53, CD: 0.0104, Efficiency: 51},
		StartedAt:      now,
		EndedAt:        now.Add(3 * time.Millisecond),
	}
}

func TestPrintRun_JSON_ValidOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := printRun(&buf, sampleRun(), "abc123", "json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if payload["run_id"] != "abc123" {
		t.Errorf("expected run_id=abc123, got %v", payload["run_id"])
	}
	if payload["run"] == nil {
		t.Error("expected 'run' key in JSON output")
	}
}

func TestPrintRun_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := printRun(&buf, sampleRun(), "run-42", "pretty"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"NACA 2412", "run-42", "241180", "alpha=2.500", "Front: 1 point(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in pretty output, got:\n%s", want, out)
		}
	}
}

func TestPrintRun_EmptyFormat_IsPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := printRun(&buf, domain.OptimizationRun{}, "", ""); err != nil {
		t.Fatalf("empty format should behave like pretty, got error: %v", err)
	}
	if !strings.Contains(buf.String(), "(unnamed)") {
		t.Errorf("expected unnamed airfoil, got:\n%s", buf.String())
	}
}

func TestPrintRun_UnknownFormat_ReturnsError(t *testing.T) {
	var buf bytes.Buffer
	err := printRun(&buf, domain.OptimizationRun{}, "", "xml")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "xml") {
		t.Errorf("expected error to mention format, got: %v", err)
	}
}

// --- command structure ---

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, expected := range []string{"init", "format", "optimize", "airfoils", "runs", "tui", "version"} {
		if !names[expected] {
			t.Errorf("expected subcommand %q to be registered", expected)
		}
	}
}

func TestOptimizeCmd_Flags(t *testing.T) {
	cmd := optimizeCmd()
	for _, flag := range []string{"workspace", "airfoil", "polar", "chord", "speed", "viscosity", "no-save", "no-recap", "format"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on optimize command", flag)
		}
	}
}

func TestFormatCmd_Flags(t *testing.T) {
	cmd := formatCmd()
	for _, flag := range []string{"workspace", "jobs", "all"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on format command", flag)
		}
	}
}

func TestRunsCmd_HasSubcommands(t *testing.T) {
	cmd := runsCmd()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	if !names["list"] || !names["query"] {
		t.Errorf("expected list and query under runs, got %v", names)
	}
}

func TestInitCmd_Flags(t *testing.T) {
	cmd := initCmd()
	if cmd.Flags().Lookup("path") == nil {
		t.Error("expected --path flag on init command")
	}
	if cmd.Flags().Lookup("force") == nil {
		t.Error("expected --force flag on init command")
	}
}

// --- applyFlowFlags ---

func TestApplyFlowFlags_OnlyChangedFlags(t *testing.T) {
	cmd := optimizeCmd()
	if err := cmd.ParseFlags([]string{"--speed", "20"}); err != nil {
		t.Fatal(err)
	}

	base := domain.DefaultConfig()
	got := applyFlowFlags(cmd, base, flowFlags{chord: 9, speed: 20, viscosity: 9})

	if got.Flow.CruiseSpeed != 20 {
		t.Errorf("expected speed override, got %v", got.Flow.CruiseSpeed)
	}
	if got.Flow.Chord != base.Flow.Chord || got.Flow.KinematicViscosity != base.Flow.KinematicViscosity {
		t.Errorf("unset flags must keep config values, got %#v", got.Flow)
	}
}

// --- resolveWorkspaceRoot ---

func TestResolveWorkspaceRoot_ExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	got, err := resolveWorkspaceRoot(tmp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != tmp {
		t.Errorf("expected %q, got %q", tmp, got)
	}
}

func TestResolveWorkspaceRoot_RelativePath(t *testing.T) {
	got, err := resolveWorkspaceRoot(".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %q", got)
	}
}

// --- workspace resolution ---

func newTestWorkspace(t *testing.T) *workspaceCtx {
	t.Helper()
	root := t.TempDir()
	if err := fsworkspace.NewInitializer().Init(domain.WorkspaceSpec{Root: root}, false); err != nil {
		t.Fatalf("init: %v", err)
	}
	ws, err := loadWorkspace(root)
	if err != nil {
		t.Fatalf("load workspace: %v", err)
	}
	return ws
}

func TestResolveAirfoilPath(t *testing.T) {
	ws := newTestWorkspace(t)
	want := filepath.Join(ws.root, "input", "naca2412.dat")

	for _, arg := range []string{"naca2412", "naca2412.dat", "input/naca2412.dat", "NACA 2412", want} {
		got, err := resolveAirfoilPath(ws, arg)
		if err != nil {
			t.Fatalf("resolveAirfoilPath(%q): %v", arg, err)
		}
		if got != want {
			t.Errorf("resolveAirfoilPath(%q) = %q, want %q", arg, got, want)
		}
	}
}

func TestResolveAirfoilPath_NotFound(t *testing.T) {
	ws := newTestWorkspace(t)

	for _, arg := range []string{"e387", "input/e387.dat"} {
		_, err := resolveAirfoilPath(ws, arg)
		if !domain.IsKind(err, domain.KindNotFound) {
			t.Errorf("resolveAirfoilPath(%q): expected not_found, got %v", arg, err)
		}
	}
	if _, err := resolveAirfoilPath(ws, "  "); err == nil {
		t.Error("expected error for empty airfoil")
	}
}

func TestResolvePolarPath(t *testing.T) {
	ws := newTestWorkspace(t)

	if got := resolvePolarPath(ws, ""); got != filepath.Join(ws.root, "output", "sim_results.dat") {
		t.Errorf("unexpected default polar path %q", got)
	}
	if got := resolvePolarPath(ws, "polars/p.dat"); got != filepath.Join(ws.root, "polars", "p.dat") {
		t.Errorf("unexpected relative polar path %q", got)
	}
}

// --- end to end ---

func copyFile(t *testing.T, src, dst string) {
	t.Helper()
	b, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, b, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFormatThenOptimize(t *testing.T) {
	ws := newTestWorkspace(t)

	var out bytes.Buffer
	fc := formatCmd()
	fc.SetOut(&out)
	fc.SetArgs([]string{"-w", ws.root, "naca2412"})
	if err := fc.Execute(); err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.Contains(out.String(), "NACA 2412") {
		t.Fatalf("expected airfoil in format output, got:\n%s", out.String())
	}

	formatted, err := os.ReadFile(filepath.Join(ws.root, "input", "naca2412.dat"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(formatted)), "\n")
	if lines[0] != "NACA 2412" {
		t.Fatalf("label not kept: %q", lines[0])
	}
	if strings.Contains(string(formatted), "17.") {
		t.Fatalf("point-count line should be dropped:\n%s", formatted)
	}

	copyFile(t, "../infra/polar/testdata/naca2412_polar.dat",
		filepath.Join(ws.root, "output", "sim_results.dat"))

	out.Reset()
	oc := optimizeCmd()
	oc.SetOut(&out)
	oc.SetArgs([]string{"-w", ws.root, "--airfoil", "naca2412", "--format", "json"})
	if err := oc.Execute(); err != nil {
		t.Fatalf("optimize: %v", err)
	}

	var payload struct {
		RunID string                 `json:"run_id"`
		Run   domain.OptimizationRun `json:"run"`
	}
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if payload.RunID == "" {
		t.Fatal("expected the run to be saved")
	}
	if payload.Run.Optimal.Alpha != 2.5 {
		t.Fatalf("expected alpha=2.5, got %#v", payload.Run.Optimal)
	}
	if payload.Run.Airfoil != "NACA 2412" {
		t.Fatalf("expected airfoil label, got %q", payload.Run.Airfoil)
	}
	if !fileExists(filepath.Join(ws.root, "output", "optimization_recap.txt")) {
		t.Fatal("expected recap file")
	}

	out.Reset()
	qc := runsQueryCmd()
	qc.SetOut(&out)
	qc.SetArgs([]string{"-w", ws.root, payload.RunID, "alpha=$.optimal.alpha"})
	if err := qc.Execute(); err != nil {
		t.Fatalf("query: %v", err)
	}
	if strings.TrimSpace(out.String()) != "alpha = 2.5" {
		t.Fatalf("unexpected query output %q", out.String())
	}
}

func TestOptimize_InvalidFlowOverride(t *testing.T) {
	ws := newTestWorkspace(t)
	copyFile(t, "../infra/polar/testdata/naca2412_polar.dat",
		filepath.Join(ws.root, "output", "sim_results.dat"))

	oc := optimizeCmd()
	oc.SetOut(&bytes.Buffer{})
	oc.SetErr(&bytes.Buffer{})
	oc.SetArgs([]string{"-w", ws.root, "--viscosity", "0"})
	err := oc.Execute()
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}

func TestVersionCmd_PrintsLogPath(t *testing.T) {
	cleanup, err := logger.Setup(logger.Config{Root: t.TempDir()})
	if err != nil {
		t.Fatalf("logger setup: %v", err)
	}
	defer func() { _ = cleanup() }()

	var out bytes.Buffer
	vc := versionCmd()
	vc.SetOut(&out)
	vc.SetArgs(nil)
	if err := vc.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out.String(), "foilopt dev") {
		t.Fatalf("expected build info, got %q", out.String())
	}
	if !strings.Contains(out.String(), "log: "+logger.Path()) {
		t.Fatalf("expected log path, got %q", out.String())
	}
}
