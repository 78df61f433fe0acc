// Package verify cross-checks symbolic derivatives against numeric
// central-difference estimates.
package verify

import (
	"math"
	"runtime"
	"sync"

	"github.com/wildfunctions/symdiff/pkg/expr"
)

// MaxDigits caps CorrectDigits; float64 carries no more than this.
const MaxDigits = 16

// Options controls a Check run.
type Options struct {
	Step    float64 `json:"step"`    // central-difference half width
	Tol     float64 `json:"tol"`     // allowed error, relative to max(1, |numeric|)
	Workers int     `json:"workers"` // parallel evaluators
}

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Step:    1e-5,
		Tol:     1e-4,
		Workers: runtime.NumCPU(),
	}
}

// Sample is the comparison at one point.
type Sample struct {
	X             float64 `json:"x"`
	Symbolic      float64 `json:"symbolic"`
	Numeric       float64 `json:"numeric"`
	AbsErr        float64 `json:"abs_err"`
	CorrectDigits float64 `json:"correct_digits"`
	Skipped       bool    `json:"skipped,omitempty"`
	OK            bool    `json:"ok"`
}

// Result summarizes a Check run.
type Result struct {
	Samples   []Sample `json:"samples"`
	MaxAbsErr float64  `json:"max_abs_err"`
	Checked   int      `json:"checked"`
	OK        bool     `json:"ok"`
}

// CentralDifference estimates f'(x) as (f(x+h) - f(x-h)) / 2h.
func CentralDifference(f expr.FuncDef, x, h float64) (float64, bool) {
	hi, ok := f.EvalF64(x + h)
	if !ok {
		return 0, false
	}
	lo, ok := f.EvalF64(x - h)
	if !ok {
		return 0, false
	}
	r := (hi - lo) / (2 * h)
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, false
	}
	return r, true
}

// Check evaluates df at every point and compares it with a central
// difference of f. Points where either side fails to evaluate are skipped.
// The result is OK when at least one point was checked and none failed.
func Check(f, df expr.FuncDef, points []float64, opts Options) Result {
	samples := make([]Sample, len(points))

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	jobs := make(chan int, len(points))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				samples[i] = sample(f, df, points[i], opts)
			}
		}()
	}

	for i := range points {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	res := Result{Samples: samples, OK: true}
	for _, s := range samples {
		if s.Skipped {
			continue
		}
		res.Checked++
		if s.AbsErr > res.MaxAbsErr {
			res.MaxAbsErr = s.AbsErr
		}
		if !s.OK {
			res.OK = false
		}
	}
	if res.Checked == 0 {
		res.OK = false
	}
	return res
}

func sample(f, df expr.FuncDef, x float64, opts Options) Sample {
	s := Sample{X: x}
	sym, ok := df.EvalF64(x)
	if !ok {
		s.Skipped = true
		return s
	}
	num, ok := CentralDifference(f, x, opts.Step)
	if !ok {
		s.Skipped = true
		return s
	}
	s.Symbolic = sym
	s.Numeric = num
	s.AbsErr = math.Abs(sym - num)
	s.CorrectDigits = correctDigits(sym, num)
	s.OK = s.AbsErr <= opts.Tol*math.Max(1, math.Abs(num))
	return s
}

// correctDigits is the number of agreeing significant digits, capped at
// MaxDigits.
func correctDigits(got, want float64) float64 {
	diff := math.Abs(got - want)
	if diff == 0 {
		return MaxDigits
	}
	scale := math.Max(math.Abs(want), 1e-300)
	d := -math.Log10(diff / scale)
	if d < 0 {
		return 0
	}
	if d > MaxDigits {
		return MaxDigits
	}
	return d
}
