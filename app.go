package loom

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/loomui/loom/pkg/dom"
	"github.com/loomui/loom/pkg/fiber"
	"github.com/loomui/loom/pkg/live"
	"github.com/loomui/loom/pkg/metrics"
	"github.com/loomui/loom/pkg/render"
)

// App wires a Runtime, an in-memory output tree, an HTML renderer,
// metrics, and the live commit stream into a single unit.
//
//	app := loom.New(loom.Config{DevMode: true})
//	app.Mount(loom.H(Counter, nil))
//	http.ListenAndServe(":8080", app.Handler())
type App struct {
	config    Config
	adapter   *dom.MemAdapter
	container *dom.MemNode
	runtime   *fiber.Runtime
	renderer  *render.Renderer

	registry  *prometheus.Registry
	collector *metrics.Collector
	hub       *live.Hub
}

// New creates an App with the given configuration.
func New(cfg Config) *App {
	cfg.applyDefaults()

	adapter := dom.NewMemAdapter()
	app := &App{
		config:    cfg,
		adapter:   adapter,
		container: adapter.NewContainer(cfg.ContainerTag),
		renderer: render.NewRenderer(render.RendererConfig{
			Pretty: cfg.DevMode,
		}),
	}

	if cfg.DevMode {
		fiber.DebugMode = true
	}

	observers := make([]fiber.Observer, 0, 3)

	if !cfg.Metrics.Disabled {
		app.registry = cfg.Metrics.Registry
		if app.registry == nil {
			app.registry = prometheus.NewRegistry()
			app.registry.MustRegister(collectors.NewGoCollector())
		}
		app.collector = metrics.NewCollector(
			metrics.WithNamespace(cfg.Metrics.Namespace),
			metrics.WithRegistry(app.registry),
		)
		observers = append(observers, app.collector)
	}

	if !cfg.Live.Disabled {
		app.hub = live.NewHub(live.Config{
			Snapshot:     app.HTML,
			Logger:       cfg.Logger,
			QueueSize:    cfg.Live.QueueSize,
			WriteTimeout: cfg.Live.WriteTimeout,
			PingInterval: cfg.Live.PingInterval,
		})
		observers = append(observers, app.hub)
	}

	if cfg.Observer != nil {
		observers = append(observers, cfg.Observer)
	}

	app.runtime = fiber.New(fiber.Config{
		Adapter:   adapter,
		Scheduler: cfg.Scheduler,
		TimeSlice: cfg.TimeSlice,
		Logger:    cfg.Logger,
		Observer:  fiber.MultiObserver(observers...),
		Tracer:    cfg.Tracer,
	})

	return app
}

// Mount mounts the root children into the app's container and
// schedules the first render pass.
func (a *App) Mount(children ...any) {
	a.runtime.Mount(a.container, children...)
}

// RequestRender schedules a re-render from the mounted roots.
func (a *App) RequestRender() {
	a.runtime.RequestRender()
}

// HTML renders the current output tree to an HTML snapshot. The read
// is serialized with render commits, so it is safe to call from any
// goroutine, including HTTP handlers.
func (a *App) HTML() string {
	var out strings.Builder
	a.runtime.Sync(func() {
		for _, child := range a.container.Children {
			html, err := a.renderer.RenderToString(child)
			if err != nil {
				a.config.Logger.Error("render failed", "error", err)
				continue
			}
			out.WriteString(html)
		}
	})
	return out.String()
}

// Runtime returns the underlying Runtime for advanced use.
func (a *App) Runtime() *fiber.Runtime {
	return a.runtime
}

// Container returns the mount container node.
func (a *App) Container() *dom.MemNode {
	return a.container
}

// Hub returns the live commit stream, or nil when disabled.
func (a *App) Hub() *live.Hub {
	return a.hub
}

// Config returns the app configuration.
func (a *App) Config() Config {
	return a.config
}

// Handler returns the app's HTTP surface:
//
//	GET /            current snapshot as an HTML page
//	GET /live/ws     WebSocket commit stream
//	GET /live/snapshot  raw snapshot for tooling
//	GET /metrics     Prometheus exposition
//	GET /healthz     liveness probe
func (a *App) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/", a.servePage)
	r.Get("/healthz", a.serveHealth)

	if a.hub != nil {
		r.Mount("/live", a.hub.Routes())
	}
	if a.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	}

	return r
}

func (a *App) servePage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte("<!DOCTYPE html>\n"))
	w.Write([]byte(a.HTML()))
}

func (a *App) serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Run serves the app on addr and blocks.
func (a *App) Run(addr string) error {
	a.config.Logger.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, a.Handler())
}

// Close stops the scheduler and disconnects live clients.
func (a *App) Close() {
	if a.hub != nil {
		a.hub.Close()
	}
	a.runtime.Close()
}
