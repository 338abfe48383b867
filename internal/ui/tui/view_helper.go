package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/foilopt/internal/domain"
	"github.com/aalvaropc/foilopt/internal/usecase"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func renderFormatResult(res usecase.FormatResult) string {
	var b strings.Builder

	b.WriteString("Formatted: ")
	b.WriteString(res.Label)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("File:   %s\n", filepath.Base(res.Path)))
	b.WriteString(fmt.Sprintf("Points: %d -> %d\n", res.InputPoints, res.OutputPoints))
	if res.Reversed {
		b.WriteString("Upper surface reversed (now TE -> LE)\n")
	} else {
		b.WriteString("Upper surface already TE -> LE\n")
	}
	return b.String()
}

// maxFrontRows bounds the front table so the card fits a terminal.
const maxFrontRows = 8

func renderOptimizationCard(run domain.OptimizationRun, runID string) string {
	var b strings.Builder

	name := run.Airfoil
	if name == "" {
		name = "(unnamed)"
	}
	b.WriteString("Optimization: ")
	b.WriteString(name)
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Reynolds: %.0f\n", run.ReynoldsNumber))
	b.WriteString(fmt.Sprintf("Sweep:    %d record(s)\n", len(run.Sweep)))
	if runID != "" {
		b.WriteString(fmt.Sprintf("Run ID:   %s\n", runID))
	}
	b.WriteString("\n")

	b.WriteString("Front (cl, l/d):\n")
	for i, p := range run.Front {
		if i == maxFrontRows {
			b.WriteString(fmt.Sprintf("  … %d more\n", len(run.Front)-maxFrontRows))
			break
		}
		mark := " "
		if i == 0 {
			mark = "*"
		}
		b.WriteString(fmt.Sprintf("  %s %.4f  %.3f\n", mark, p.CL, p.Efficiency))
	}
	b.WriteString("\n")

	o := run.Optimal
	b.WriteString("Optimal:\n")
	b.WriteString(fmt.Sprintf("  alpha = %.3f\n", o.Alpha))
	b.WriteString(fmt.Sprintf("  cl    = %.3f\n", o.CL))
	b.WriteString(fmt.Sprintf("  cd    = %.3f\n", o.CD))
	b.WriteString(fmt.Sprintf("  l/d   = %.3f\n", o.Efficiency))

	return b.String()
}
