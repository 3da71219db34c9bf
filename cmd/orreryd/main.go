package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	kitlog "github.com/go-kit/kit/log"

	"github.com/solarsim/orrery"
)

// orreryd runs the solar-system state propagation loop and feeds positions to
// external renderers over a websocket. The loop has three phases in fixed
// order: input sampling (renderer controls), simulation update (clock tick and
// body propagation), draw (frame flush to the clients).

var (
	configPath string
	startNow   bool
)

func init() {
	flag.StringVar(&configPath, "config", "", "path to the orreryd TOML configuration")
	flag.BoolVar(&startNow, "now", true, "start the simulated clock at the current wall time")
}

func main() {
	flag.Parse()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)

	cfg, err := orrery.LoadConfig(configPath)
	if err != nil {
		logger.Log("level", "critical", "subsys", "main", "err", err)
		os.Exit(1)
	}

	catalog := orrery.DefaultCatalog()
	if cfg.CatalogPath != "" {
		catalog, err = orrery.LoadCatalog(cfg.CatalogPath, logger)
		if err != nil {
			logger.Log("level", "critical", "subsys", "main", "err", err)
			os.Exit(1)
		}
	}

	start := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	if startNow {
		start = time.Now().UTC()
	}
	clock := orrery.NewSimClock(start, cfg.TimeRate)

	h := newHub(logger)
	registry := orrery.NewRegistry(catalog, clock, h, logger)
	h.setHello(catalog, registry.SampleTraces(cfg.TracePoints), cfg.SceneScale)

	http.Handle("/ws", h)
	go func() {
		logger.Log("level", "notice", "subsys", "main", "listen", cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
			logger.Log("level", "critical", "subsys", "main", "err", err)
			os.Exit(1)
		}
	}()

	logger.Log("level", "notice", "subsys", "main", "bodies", catalog.Len(), "epoch", clock.Now(), "rate", clock.Rate())
	ticker := time.NewTicker(cfg.FrameInterval)
	for range ticker.C {
		h.drainControls(clock)
		clock.Tick()
		registry.Update()
		h.flush(clock)
	}
}
