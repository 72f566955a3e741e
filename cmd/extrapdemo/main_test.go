package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-extrap/internal/quadrature"
)

func TestSelectMethods(t *testing.T) {
	all, err := selectMethods("all")
	if err != nil || len(all) != len(methods) {
		t.Fatalf("selectMethods(all) = %d methods, %v", len(all), err)
	}

	one, err := selectMethods(" DEA ")
	if err != nil || len(one) != 1 || one[0].name != "dea" {
		t.Fatalf("selectMethods(DEA) = %v, %v", one, err)
	}

	if _, err := selectMethods("aitken"); err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestMethodsConverge(t *testing.T) {
	values, steps := quadrature.SineQuarterSequence(0, 10)
	cfg := config{limexp: 6, logger: zap.NewNop()}

	for _, m := range methods {
		rows, err := m.run(values, steps, cfg)
		if err != nil {
			t.Fatalf("%s: %v", m.name, err)
		}
		if len(rows) == 0 {
			t.Fatalf("%s: no rows", m.name)
		}
		last := rows[len(rows)-1]
		if diff := math.Abs(last.estimate - 1); diff > 1e-8 {
			t.Errorf("%s: last estimate %v, error %v", m.name, last.estimate, diff)
		}
		if last.panels != 1<<(len(rows)-1) {
			t.Errorf("%s: last row has %d panels", m.name, last.panels)
		}
	}
}

func TestRunRichardsonCoversEveryPanelCount(t *testing.T) {
	values, steps := quadrature.SineQuarterSequence(0, 10)
	rows, err := runRichardson(values, steps, config{})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(values) {
		t.Fatalf("got %d rows, want %d", len(rows), len(values))
	}

	want := []float64{
		0.78539816, 1.11072073, 0.99798929, 0.99988201, 0.99999274,
		0.99999955, 0.99999997, 1, 1, 1,
	}
	for i, r := range rows {
		if r.panels != 1<<i || r.value != values[i] {
			t.Errorf("row %d: panels %d, value %v", i, r.panels, r.value)
		}
		if math.Abs(r.estimate-want[i]) > 1e-8 {
			t.Errorf("row %d: estimate %.8f, want %.8f", i, r.estimate, want[i])
		}
		if math.Abs(r.estimate-1) > r.abserr {
			t.Errorf("row %d: true error %v exceeds estimate %v", i, math.Abs(r.estimate-1), r.abserr)
		}
	}
}

func TestRunDeaRejectsLimexp(t *testing.T) {
	values, steps := quadrature.SineQuarterSequence(0, 3)
	if _, err := runDea(values, steps, config{limexp: 1, logger: zap.NewNop()}); err == nil {
		t.Fatal("expected error for limexp 1")
	}
}

func TestPrintTable(t *testing.T) {
	rows := []row{
		{panels: 1, value: 0.75, estimate: 0.75},
		{panels: 2, value: 0.9, estimate: 1, abserr: 0.125, hasErr: true},
	}

	var buf bytes.Buffer
	if err := printTable(&buf, rows); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "Panels") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], " - ") {
		t.Errorf("row without error estimate = %q", lines[2])
	}
	if !strings.Contains(lines[3], "1.250e-01") {
		t.Errorf("row with error estimate = %q", lines[3])
	}
}

func TestSavePlot(t *testing.T) {
	values, steps := quadrature.SineQuarterSequence(0, 8)
	cfg := config{limexp: 6, logger: zap.NewNop()}

	tables := make(map[string][]row, len(methods))
	for _, m := range methods {
		rows, err := m.run(values, steps, cfg)
		if err != nil {
			t.Fatal(err)
		}
		tables[m.name] = rows
	}

	path := filepath.Join(t.TempDir(), "convergence.png")
	if err := savePlot(path, values, methods, tables); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("empty plot file")
	}
}

func TestErrorPointsFloor(t *testing.T) {
	pts := errorPoints([]row{{panels: 4, estimate: 1}}, func(r row) float64 { return r.estimate })
	if pts[0].X != 4 || pts[0].Y != errorFloor {
		t.Fatalf("point = %+v", pts[0])
	}
}
