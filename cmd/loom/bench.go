package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/loomui/loom/pkg/dom"
	"github.com/loomui/loom/pkg/fiber"
)

func benchCmd() *cobra.Command {
	var (
		sizes []int
		iters int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark reconciliation over keyed lists",
		Long: `Runs keyed-list workloads against the in-memory adapter and
reports per-pass latency percentiles and total applied mutations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(sizes, iters)
		},
	}

	cmd.Flags().IntSliceVar(&sizes, "sizes", []int{10, 100, 1000}, "row counts to benchmark")
	cmd.Flags().IntVar(&iters, "iters", 100, "passes per scenario")

	return cmd
}

// benchRows is the shared model the benchmark component renders from.
// The bench loop mutates it between passes.
var benchRows []benchRow

type benchRow struct {
	id    int
	label string
}

func rowList(c *fiber.Ctx, props fiber.Props) any {
	items := make([]any, 0, len(benchRows))
	for _, r := range benchRows {
		items = append(items, fiber.H("li", fiber.Props{
			"key": r.id,
		}, r.label))
	}
	return fiber.H("ul", nil, items...)
}

type benchHarness struct {
	adapter *dom.MemAdapter
	sched   *fiber.ManualScheduler
	rt      *fiber.Runtime
}

func newBenchHarness() *benchHarness {
	adapter := dom.NewMemAdapter()
	sched := fiber.NewManualScheduler()
	rt := fiber.New(fiber.Config{
		Adapter:   adapter,
		Scheduler: sched,
	})
	rt.Mount(adapter.NewContainer("div"), fiber.H(rowList, nil))
	sched.Drain()
	return &benchHarness{adapter: adapter, sched: sched, rt: rt}
}

// pass mutates the model, triggers a render, and drains the scheduler
// to completion, returning the wall time of the full pass.
func (h *benchHarness) pass(mutate func()) time.Duration {
	mutate()
	start := time.Now()
	h.rt.RequestRender()
	h.sched.Drain()
	return time.Since(start)
}

func seedRows(n int) {
	benchRows = benchRows[:0]
	for i := 0; i < n; i++ {
		benchRows = append(benchRows, benchRow{id: i, label: fmt.Sprintf("row %d", i)})
	}
}

func runBench(sizes []int, iters int) error {
	tbl := table.NewWriter()
	tbl.SetTitle("Loom reconciler")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"scenario", "avg", "min", "p75", "p99", "max"})

	scenarios := []struct {
		name   string
		mutate func()
	}{
		{"relabel all", func() {
			for i := range benchRows {
				benchRows[i].label += "!"
			}
		}},
		{"reverse", func() {
			for i, j := 0, len(benchRows)-1; i < j; i, j = i+1, j-1 {
				benchRows[i], benchRows[j] = benchRows[j], benchRows[i]
			}
		}},
		{"rotate", func() {
			if len(benchRows) > 1 {
				first := benchRows[0]
				copy(benchRows, benchRows[1:])
				benchRows[len(benchRows)-1] = first
			}
		}},
	}

	var totalOps int
	for _, n := range sizes {
		for _, sc := range scenarios {
			seedRows(n)
			h := newBenchHarness()

			tach := tachymeter.New(&tachymeter.Config{Size: iters})
			for i := 0; i < iters; i++ {
				tach.AddTime(h.pass(sc.mutate))
			}
			h.rt.Close()

			counts := h.adapter.Counts
			totalOps += counts.Creates + counts.Patches + counts.Attaches + counts.Moves + counts.Removes

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("%s: %d rows", sc.name, n),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	tbl.Render()
	fmt.Printf("applied %s adapter operations total\n", humanize.Comma(int64(totalOps)))
	return nil
}
