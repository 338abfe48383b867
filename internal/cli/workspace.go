package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/foilopt/internal/domain"
	"github.com/aalvaropc/foilopt/internal/infra/coordfile"
	"github.com/aalvaropc/foilopt/internal/infra/polar"
	"github.com/aalvaropc/foilopt/internal/infra/recap"
	"github.com/aalvaropc/foilopt/internal/infra/runstore"
	"github.com/aalvaropc/foilopt/internal/infra/workspacefinder"
	"github.com/aalvaropc/foilopt/internal/ports"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	coords  *coordfile.Store
	catalog ports.AirfoilCatalog

	polars ports.PolarLoader
	recap  ports.RecapWriter
	store  ports.ArtifactStore
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	coords := coordfile.NewStore(coordfile.WithInputDir(cfg.Paths.InputDir))

	return &workspaceCtx{
		root:    root,
		cfg:     cfg,
		coords:  coords,
		catalog: coords,
		polars:  polar.NewLoader(),
		recap:   recap.NewWriter(filepath.Join(root, cfg.Paths.OutputDir)),
		store:   runstore.NewJSONStore(root, cfg, runstore.WithIndex(true)),
	}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `foilopt init`): %w", wd, err)
	}
	return root, nil
}

// resolveAirfoilPath accepts a path, a file name under the input dir, a file stem,
// or an airfoil label.
func resolveAirfoilPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("airfoil is required")
	}

	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		p = filepath.Clean(p)
		if !fileExists(p) {
			return "", airfoilNotFound(p)
		}
		return p, nil
	}

	inputDir := filepath.Join(ws.root, ws.cfg.Paths.InputDir)

	if coordfile.HasCoordinateExt(in) {
		p := filepath.Join(inputDir, in)
		if fileExists(p) {
			return p, nil
		}
	}

	for _, ext := range []string{".dat", ".txt"} {
		p := filepath.Join(inputDir, in+ext)
		if fileExists(p) {
			return p, nil
		}
	}

	// As a last resort: match by the label line.
	refs, err := ws.catalog.ListAirfoils(ws.root)
	if err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, in) {
				return r.Path, nil
			}
		}
	}

	return "", airfoilNotFound(filepath.Join(inputDir, in))
}

// resolvePolarPath defaults to <output_dir>/<polar_file>.
func resolvePolarPath(ws *workspaceCtx, arg string) string {
	in := strings.TrimSpace(arg)
	if in == "" {
		return filepath.Join(ws.root, ws.cfg.Paths.OutputDir, ws.cfg.Paths.PolarFile)
	}
	if filepath.IsAbs(in) {
		return filepath.Clean(in)
	}
	return filepath.Join(ws.root, in)
}

func airfoilNotFound(path string) error {
	return &domain.OpError{
		Op:   "cli.resolve_airfoil",
		Kind: domain.KindNotFound,
		Path: path,
		Err:  domain.ErrNotFound,
	}
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
