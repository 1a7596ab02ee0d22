package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/voxel-layout/internal/config"
	"github.com/annel0/voxel-layout/internal/episode"
	"github.com/annel0/voxel-layout/internal/layout"
	"github.com/annel0/voxel-layout/internal/levelio"
	"github.com/annel0/voxel-layout/internal/logging"
	"github.com/annel0/voxel-layout/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config (or LAYOUT_CONFIG)")
		archetype  = flag.String("archetype", "", "Layout archetype: empty, walls, cave, towers")
		agents     = flag.Int("agents", 0, "Number of agents")
		seed       = flag.Int64("seed", 0, "Top-level seed")
		episodes   = flag.Int("episodes", 0, "Number of episodes to generate")
		dumpPath   = flag.String("dump", "", "Write generated levels to a zstd JSON dump")
		inspect    = flag.String("inspect", "", "Print a summary of an existing dump and exit")
		serve      = flag.Bool("serve", false, "Keep serving /metrics after generation until SIGINT/SIGTERM")
	)
	flag.Parse()

	if *inspect != "" {
		if err := inspectDump(*inspect); err != nil {
			log.Fatalf("❌ Ошибка чтения выгрузки: %v", err)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	// флаги командной строки важнее файла
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "archetype":
			a, perr := layout.ParseArchetype(*archetype)
			if perr != nil {
				log.Fatalf("❌ %v", perr)
			}
			cfg.Layout.Archetype = a
		case "agents":
			cfg.Layout.NumAgents = *agents
		case "seed":
			cfg.Layout.Seed = seed
		case "episodes":
			cfg.Layout.Episodes = *episodes
		case "dump":
			cfg.Dump.Path = *dumpPath
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Некорректная конфигурация: %v", err)
	}

	os.Exit(serveAndRun(cfg, *serve))
}

// serveAndRun поднимает логирование, трассировку и метрики, генерирует уровни
// и возвращает код выхода. Все defer выполняются до os.Exit в main.
func serveAndRun(cfg *config.Config, serve bool) int {
	logging.SetLogDir(cfg.Logging.Dir)
	if err := logging.InitDefaultLogger("layoutgen"); err != nil {
		log.Printf("❌ Ошибка инициализации логирования: %v", err)
		return 1
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()
	logging.GetLoggerManager().SetDefaultLevels(cfg.Logging.ConsoleLevel(), logging.DEBUG)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.InitTelemetry(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled)
	if err != nil {
		logging.Error("Ошибка инициализации OpenTelemetry: %v", err)
		shutdownTelemetry = func(context.Context) error { return nil }
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logging.Warn("Ошибка завершения OpenTelemetry: %v", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	metricsAddr := fmt.Sprintf(":%d", cfg.Metrics.GetMetricsPort())
	srv := startMetricsServer(metricsAddr, reg)
	defer stopMetricsServer(srv)

	if err := run(ctx, cfg, reg); err != nil {
		logging.Error("❌ Генерация прервана: %v", err)
		return 1
	}

	if serve {
		logging.Info("Метрики доступны на http://localhost%s/metrics, ожидание сигнала завершения...", metricsAddr)
		<-ctx.Done()
	}
	return 0
}

func run(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) error {
	env, err := episode.New(episode.Options{
		NumAgents:  cfg.Layout.NumAgents,
		Archetype:  cfg.Layout.Archetype,
		Seed:       cfg.Layout.GetSeed(),
		Registerer: reg,
	})
	if err != nil {
		return err
	}

	logging.Info("Генерация %d уровней типа %s для %d агентов",
		cfg.Layout.Episodes, cfg.Layout.Archetype, cfg.Layout.NumAgents)

	levels := make([]*episode.Level, 0, cfg.Layout.Episodes)
	for i := 0; i < cfg.Layout.Episodes; i++ {
		level, err := env.Reset(ctx)
		if err != nil {
			return fmt.Errorf("episode %d: %w", i, err)
		}
		printLevel(level)
		levels = append(levels, level)
	}

	if cfg.Dump.Path != "" {
		if err := levelio.WriteFile(cfg.Dump.Path, levels); err != nil {
			return fmt.Errorf("dump: %w", err)
		}
		logging.Info("Уровни записаны в %s", cfg.Dump.Path)
	}
	return nil
}

func printLevel(l *episode.Level) {
	stats := l.Stats()
	fmt.Printf("#%-3d seed=%-5d %-6s %2dx%dx%-2d solid=%-5d boxes=%-4d x%-5.1f exit=%-5t zone=%-5t starts=%d objects=%d digest=%016x\n",
		l.Episode, l.Seed, l.Archetype, l.Dims.Length, l.Dims.Height, l.Dims.Width,
		l.SolidVoxels, stats.Boxes, stats.Ratio(), l.HasExit(), l.HasBuildingZone(),
		len(l.StartPositions), len(l.ObjectSpawns), l.Digest)
}

func inspectDump(path string) error {
	levels, err := levelio.ReadFile(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d levels\n", path, len(levels))
	for _, l := range levels {
		printLevel(l)
	}
	return nil
}

func startMetricsServer(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn("Сервер метрик остановлен: %v", err)
		}
	}()
	return srv
}

func stopMetricsServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Ошибка остановки сервера метрик: %v", err)
	}
}
