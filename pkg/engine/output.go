package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/wildfunctions/symdiff/pkg/expr"
	"github.com/wildfunctions/symdiff/pkg/verify"
)

// Report summarizes one differentiation.
type Report struct {
	Name            string         `json:"name,omitempty"`
	Param           string         `json:"param"`
	Input           string         `json:"input"`
	Derivative      string         `json:"derivative"`
	InputLaTeX      string         `json:"input_latex"`
	DerivativeLaTeX string         `json:"derivative_latex"`
	InputNodes      int            `json:"input_nodes"`
	DerivativeNodes int            `json:"derivative_nodes"`
	Warnings        []string       `json:"warnings,omitempty"`
	Verification    *verify.Result `json:"verification,omitempty"`
}

// NewReport describes f and its derivative df.
func NewReport(name string, f, df expr.FuncDef) Report {
	r := Report{
		Name:            name,
		Param:           f.Param,
		Input:           f.String(),
		Derivative:      df.String(),
		InputLaTeX:      f.LaTeX(),
		DerivativeLaTeX: df.LaTeX(),
		InputNodes:      f.Body.NodeCount(),
		DerivativeNodes: df.Body.NodeCount(),
	}
	if expr.VariableLogBase(f.Body) {
		r.Warnings = append(r.Warnings, "logarithm base depends on "+f.Param+"; its derivative is not taken")
	}
	return r
}

// WriteText writes the report in human-readable format.
func WriteText(w io.Writer, r Report) {
	fmt.Fprintln(w, "========== DERIVATIVE ==========")
	if r.Name != "" {
		fmt.Fprintf(w, "Name:       %s\n", r.Name)
	}
	fmt.Fprintf(w, "Input:      %s\n", r.Input)
	fmt.Fprintf(w, "Derivative: %s\n", r.Derivative)
	fmt.Fprintf(w, "Nodes:      %d -> %d\n", r.InputNodes, r.DerivativeNodes)
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "Warning:    %s\n", warn)
	}
	if v := r.Verification; v != nil {
		status := "ok"
		if !v.OK {
			status = "FAILED"
		}
		fmt.Fprintf(w, "Check:      %s (%d/%d points, max abs err %.3g)\n",
			status, v.Checked, len(v.Samples), v.MaxAbsErr)
		for _, s := range v.Samples {
			if s.Skipped {
				fmt.Fprintf(w, "  %s=%-8g skipped\n", r.Param, s.X)
				continue
			}
			fmt.Fprintf(w, "  %s=%-8g symbolic %-14.8g numeric %-14.8g %4.1f digits\n",
				r.Param, s.X, s.Symbolic, s.Numeric, s.CorrectDigits)
		}
	}
	fmt.Fprintln(w, "================================")
}

// WriteJSON writes the report as JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// latexEscape escapes underscores and other special chars for LaTeX text mode.
func latexEscape(s string) string {
	return strings.ReplaceAll(s, "_", `\_`)
}

// WriteLaTeX writes a compilable LaTeX document showing f and f'.
func WriteLaTeX(w io.Writer, r Report) {
	fmt.Fprintln(w, `\documentclass{article}`)
	fmt.Fprintln(w, `\usepackage{amsmath}`)
	fmt.Fprintln(w, `\usepackage{geometry}`)
	fmt.Fprintln(w, `\geometry{margin=1in}`)
	title := "Derivative"
	if r.Name != "" {
		title += ` --- \texttt{` + latexEscape(r.Name) + `}`
	}
	fmt.Fprintf(w, "\\title{%s}\n", title)
	fmt.Fprintln(w, `\date{\today}`)
	fmt.Fprintln(w, `\begin{document}`)
	fmt.Fprintln(w, `\maketitle`)
	fmt.Fprintln(w, `\[`)
	fmt.Fprintf(w, "  %s\n", r.InputLaTeX)
	fmt.Fprintln(w, `\]`)
	fmt.Fprintln(w, `\[`)
	fmt.Fprintf(w, "  %s\n", strings.Replace(r.DerivativeLaTeX, "f(", "f'(", 1))
	fmt.Fprintln(w, `\]`)
	fmt.Fprintln(w, `\end{document}`)
}
