package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/loomui/loom"
	"github.com/loomui/loom/el"
	"github.com/loomui/loom/pkg/fiber"
	"github.com/loomui/loom/pkg/router"
)

func demoCmd() *cobra.Command {
	var (
		addr     string
		interval time.Duration
		rotate   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Serve a self-updating demo app",
		Long: `Serves a small routed app whose pages re-render on timers. Connect
to /live/ws to watch commit frames, or scrape /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(addr, interval, rotate)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "re-render interval")
	cmd.Flags().DurationVar(&rotate, "rotate", 5*time.Second, "route rotation interval (0 disables)")

	return cmd
}

// counterPage increments once per interval, showing state cells and
// effects driving the commit stream.
func counterPage(interval time.Duration) loom.ComponentFunc {
	return func(c *loom.Ctx, props loom.Props) any {
		count, setCount := loom.UseState(c, 0)

		loom.UseEffect(c, func() fiber.Cleanup {
			t := time.NewTicker(interval)
			done := make(chan struct{})
			go func() {
				for {
					select {
					case <-t.C:
						setCount.Update(func(n int) int { return n + 1 })
					case <-done:
						return
					}
				}
			}()
			return func() {
				t.Stop()
				close(done)
			}
		}, []any{})

		return el.Section(el.Class("counter"),
			el.H2(el.Text("Counter")),
			el.P(el.Textf("count: %d", count)),
		)
	}
}

func clockPage(c *loom.Ctx, props loom.Props) any {
	return el.Section(el.Class("clock"),
		el.H2(el.Text("Clock")),
		el.P(el.Textf("now: %s", time.Now().Format(time.RFC3339))),
	)
}

func userPage(c *loom.Ctx, props loom.Props) any {
	params, _ := props["params"].(router.Params)
	return el.Section(el.Class("user"),
		el.H2(el.Textf("User %s", params["id"])),
	)
}

func missingPage(c *loom.Ctx, props loom.Props) any {
	return el.P(el.Class("missing"), el.Textf("no page at %v", props["hash"]))
}

// layout wraps the routed outlet in a shared shell.
func layout(r *router.Router) loom.ComponentFunc {
	return func(c *loom.Ctx, props loom.Props) any {
		return el.Div(el.Class("app"),
			el.Header(
				el.H1(el.Text("Loom demo")),
				el.Nav(
					el.A(el.Href("#/"), el.Text("counter")),
					el.A(el.Href("#/clock"), el.Text("clock")),
					el.A(el.Href("#/users/42"), el.Text("user")),
				),
			),
			el.Main(el.C(r.Outlet, nil)),
		)
	}
}

func runDemo(addr string, interval, rotate time.Duration) error {
	loc := router.NewLocation("#/")
	r := router.New(loc)
	r.Handle("#/", counterPage(interval))
	r.Handle("#/clock", clockPage)
	r.Handle("#/users/:id", userPage)
	r.NotFound(missingPage)

	app := loom.New(loom.Config{DevMode: true})
	defer app.Close()

	app.Mount(loom.H(layout(r), nil))

	if rotate > 0 {
		stops := []string{"#/", "#/clock", "#/users/42"}
		done := make(chan struct{})
		defer close(done)
		go func() {
			t := time.NewTicker(rotate)
			defer t.Stop()
			for i := 1; ; i++ {
				select {
				case <-t.C:
					loc.Navigate(stops[i%len(stops)])
				case <-done:
					return
				}
			}
		}()
	}

	return app.Run(addr)
}
