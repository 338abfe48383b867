package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalvaropc/foilopt/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			if strings.Contains(oe.Op, "coordfile") {
				return "Airfoil file not found"
			}
			if strings.Contains(oe.Op, "polar") {
				return "Polar file not found (run the solver first)"
			}
			if strings.Contains(oe.Op, "workspacefinder.findroot") {
				return "Workspace not found"
			}
			return "Not found"

		case domain.KindTooFewPoints:
			if strings.TrimSpace(oe.Path) != "" {
				return "Not enough coordinates in " + filepath.Base(oe.Path)
			}
			return "Not enough coordinates to load airfoil"

		case domain.KindEmptyFront:
			return "Polar has no valid records"

		case domain.KindNoMatch:
			return "Optimal point not found in polar"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			line := extractLine(err.Error())
			if line != "" {
				return "Invalid YAML at " + base + " line " + line
			}

			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			if f := extractField(err.Error()); f != "" {
				return "Invalid " + f + " in " + base
			}
			return "Invalid config"

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		line := extractLine(err.Error())
		if line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}

	return "Unexpected error (see logs)"
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}

// extractField pulls "flow.chord" out of "field flow.chord: must be ...".
func extractField(s string) string {
	i := strings.Index(s, "field ")
	if i < 0 {
		return ""
	}
	rest := s[i+len("field "):]
	f, _, ok := strings.Cut(rest, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(f)
}
