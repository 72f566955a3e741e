// Command extrapdemo shows how the extrapolators accelerate a slowly
// converging sequence.
//
// The sequence is the composite trapezoid rule for the integral of sin(x)
// over [0, pi/2] (exactly 1) with 1, 2, 4, ... panels. For every method the
// command prints the raw approximation, the accelerated estimate, the
// estimated error and the true error.
//
// Usage:
//
//	extrapdemo [flags]
//
// Examples:
//
//	extrapdemo
//	extrapdemo -method dea -n 12 -limexp 11
//	extrapdemo -plot convergence.png
//	extrapdemo -method dea -v
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cwbudde/algo-extrap/extrap"
	"github.com/cwbudde/algo-extrap/internal/quadrature"
)

// row is one line of a convergence table.
type row struct {
	panels   int
	value    float64
	estimate float64
	abserr   float64
	hasErr   bool
}

type method struct {
	name string
	run  func(values, steps []float64, cfg config) ([]row, error)
}

type config struct {
	limexp int
	logger *zap.Logger
}

var methods = []method{
	{"richardson", runRichardson},
	{"epsalg", runEpsAlg},
	{"dea", runDea},
}

// maxSequence bounds -n; the last approximation samples 2^(n-1) panels.
const maxSequence = 24

var errUnknownMethod = errors.New("extrapdemo: unknown method")

func main() {
	name := flag.String("method", "all", "method to run: all, richardson, epsalg or dea")
	n := flag.Int("n", 10, "number of trapezoid approximations (1, 2, 4, ... panels)")
	limexp := flag.Int("limexp", 6, "epsilon table bound for dea")
	plotPath := flag.String("plot", "", "write a PNG convergence chart to this file")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: extrapdemo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Extrapolates trapezoid approximations of the integral of sin(x) over [0, pi/2].\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  extrapdemo\n")
		fmt.Fprintf(os.Stderr, "  extrapdemo -method dea -n 12 -limexp 11\n")
		fmt.Fprintf(os.Stderr, "  extrapdemo -plot convergence.png\n")
	}
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if *n < 1 || *n > maxSequence {
		logger.Error("panel sequence length out of range", zap.Int("n", *n))
		os.Exit(2)
	}

	selected, err := selectMethods(*name)
	if err != nil {
		logger.Error("invalid method", zap.Error(err))
		os.Exit(2)
	}

	values, steps := quadrature.SineQuarterSequence(0, *n)
	cfg := config{limexp: *limexp, logger: logger}

	tables := make(map[string][]row, len(selected))
	for _, m := range selected {
		rows, err := m.run(values, steps, cfg)
		if err != nil {
			logger.Error("extrapolation failed", zap.String("method", m.name), zap.Error(err))
			os.Exit(1)
		}
		tables[m.name] = rows

		fmt.Printf("%s\n", m.name)
		if err := printTable(os.Stdout, rows); err != nil {
			logger.Error("failed to write table", zap.Error(err))
			os.Exit(1)
		}
		fmt.Println()
	}

	if *plotPath != "" {
		if err := savePlot(*plotPath, values, selected, tables); err != nil {
			logger.Error("failed to write plot", zap.String("path", *plotPath), zap.Error(err))
			os.Exit(1)
		}
		logger.Info("wrote convergence chart", zap.String("path", *plotPath))
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return cfg.Build()
}

func selectMethods(name string) ([]method, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "all" {
		return methods, nil
	}
	for _, m := range methods {
		if m.name == name {
			return []method{m}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", errUnknownMethod, name)
}

// runRichardson extrapolates every prefix of the sequence and reports the
// value aligned with the finest step, so that each row uses only the
// approximations computed so far.
func runRichardson(values, steps []float64, _ config) ([]row, error) {
	r := extrap.NewRichardson()
	rows := make([]row, len(values))
	for i := range rows {
		res, err := r.Extrapolate(values[:i+1], steps[:i+1])
		if err != nil {
			return nil, err
		}
		last := len(res.Values) - 1
		rows[i] = row{
			panels:   1 << i,
			value:    values[i],
			estimate: res.Values[last],
			abserr:   res.AbsErr[last],
			hasErr:   true,
		}
	}
	return rows, nil
}

func runEpsAlg(values, _ []float64, _ config) ([]row, error) {
	e := extrap.NewEpsAlg()
	rows := make([]row, len(values))
	for i, v := range values {
		rows[i] = row{panels: 1 << i, value: v, estimate: e.Push(v)}
	}
	return rows, nil
}

func runDea(values, _ []float64, cfg config) ([]row, error) {
	d, err := extrap.NewDea(cfg.limexp, extrap.WithLogger(cfg.logger))
	if err != nil {
		return nil, err
	}

	rows := make([]row, len(values))
	for i, v := range values {
		result, abserr := d.Push(v)
		rows[i] = row{panels: 1 << i, value: v, estimate: result, abserr: abserr, hasErr: true}
	}
	return rows, nil
}

func printTable(w io.Writer, rows []row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Panels\tTrapezoid\tEstimate\tAbsErr\tTrue Error\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "------\t---------\t--------\t------\t----------\n"); err != nil {
		return err
	}

	for _, r := range rows {
		abserr := "-"
		if r.hasErr {
			abserr = fmt.Sprintf("%.3e", r.abserr)
		}
		if _, err := fmt.Fprintf(tw, "%d\t%.12f\t%.12f\t%s\t%.3e\n",
			r.panels,
			r.value,
			r.estimate,
			abserr,
			math.Abs(r.estimate-1),
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}
