package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/sanity-io/litter"

	"github.com/wildfunctions/symdiff/pkg/catalog"
	"github.com/wildfunctions/symdiff/pkg/codegen"
	"github.com/wildfunctions/symdiff/pkg/engine"
	"github.com/wildfunctions/symdiff/pkg/expr"
	"github.com/wildfunctions/symdiff/pkg/pool"
	"github.com/wildfunctions/symdiff/pkg/verify"
)

var defaultPoints = []float64{0.3, 0.7, 1.1, 1.9}

func main() {
	cfg := engine.DefaultConfig()
	opts := verify.DefaultOptions()
	name := "xpowx"
	poolName := ""
	seed := int64(0)
	treeDepth := 3
	points := ""
	format := "text"
	dump := false
	list := false

	flag.StringVar(&name, "func", name, "catalog function ("+strings.Join(catalog.Names(), ", ")+")")
	flag.StringVar(&poolName, "pool", poolName, "differentiate a random tree from this pool instead ("+strings.Join(pool.Names(), ", ")+")")
	flag.Int64Var(&seed, "seed", seed, "random seed for -pool (0 = random)")
	flag.IntVar(&treeDepth, "treedepth", treeDepth, "max random tree depth for -pool")
	flag.IntVar(&cfg.MaxDepth, "maxdepth", cfg.MaxDepth, "max recursion depth while differentiating")
	flag.StringVar(&points, "points", points, "comma-separated sample points for the numeric check")
	flag.IntVar(&opts.Workers, "workers", opts.Workers, "number of parallel workers for the numeric check")
	flag.StringVar(&format, "format", format, "output format (text, json, latex, ir)")
	flag.BoolVar(&dump, "dump", dump, "dump the derivative tree to stderr")
	flag.BoolVar(&list, "list", list, "list catalog functions and exit")
	flag.Parse()

	if list {
		for _, en := range catalog.All() {
			fmt.Printf("%-12s %s\n", en.Name, en.Description)
		}
		return
	}

	f, samplePoints, label, err := input(name, poolName, seed, treeDepth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if points != "" {
		if samplePoints, err = parsePoints(points); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	e, err := engine.New(cfg, engine.NewRegistry())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	df, err := e.Differentiate(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error differentiating %s: %v\n", f, err)
		os.Exit(1)
	}

	if dump {
		litter.Config.HidePrivateFields = false
		fmt.Fprintln(os.Stderr, litter.Sdump(df))
	}

	report := engine.NewReport(label, f, df)
	res := verify.Check(f, df, samplePoints, opts)
	report.Verification = &res

	switch format {
	case "json":
		if err := engine.WriteJSON(os.Stdout, report); err != nil {
			fmt.Fprintf(os.Stderr, "error writing JSON: %v\n", err)
			os.Exit(1)
		}
	case "latex":
		engine.WriteLaTeX(os.Stdout, report)
	case "ir":
		c := codegen.NewCompiler()
		for _, fn := range []struct {
			def  expr.FuncDef
			name string
		}{{f, "f"}, {df, "df"}} {
			if _, err := c.AddFunc(fn.def, fn.name); err != nil {
				fmt.Fprintf(os.Stderr, "error generating IR: %v\n", err)
				os.Exit(1)
			}
		}
		fmt.Println(c.Module().String())
	default:
		engine.WriteText(os.Stdout, report)
	}

	if !res.OK {
		fmt.Fprintf(os.Stderr, "numeric check failed (%d points checked, max abs err %g)\n", res.Checked, res.MaxAbsErr)
	}
}

// input picks the function to differentiate: a random pool tree when
// poolName is set, otherwise a catalog entry.
func input(name, poolName string, seed int64, treeDepth int) (expr.FuncDef, []float64, string, error) {
	if poolName == "" {
		en, err := catalog.Get(name)
		if err != nil {
			return expr.FuncDef{}, nil, "", fmt.Errorf("%w (available: %v)", err, catalog.Names())
		}
		return en.Def, en.Points, en.Name, nil
	}

	p, err := pool.Get(poolName)
	if err != nil {
		return expr.FuncDef{}, nil, "", fmt.Errorf("%w (available: %v)", err, pool.Names())
	}
	if seed == 0 {
		seed = rand.Int63()
	}
	fmt.Fprintf(os.Stderr, "Random tree from pool %s, depth %d, seed %d\n", poolName, treeDepth, seed)
	rng := rand.New(rand.NewSource(seed))
	f := expr.NewFuncDef("x", p.RandomTree(rng, treeDepth))
	return f, defaultPoints, fmt.Sprintf("%s/%d", poolName, seed), nil
}

func parsePoints(s string) ([]float64, error) {
	var pts []float64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("bad sample point %q: %w", field, err)
		}
		pts = append(pts, v)
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("no sample points in %q", s)
	}
	return pts, nil
}
