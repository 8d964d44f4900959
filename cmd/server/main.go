package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/combo-solver/internal/application"
	"github.com/eugenenazirov/combo-solver/internal/config"
	"github.com/eugenenazirov/combo-solver/internal/logging"
)

var signalNotify = signal.Notify

type cliFlags struct {
	configFile     string
	port           string
	catalogFile    string
	rateLimitRPS   float64
	rateLimitBurst int
}

func main() {
	kingpinApp := kingpin.New("combo-solver", "Cheapest Combo Solver - finds the vendor able to cover a set of items at the lowest total price")
	flags := cliFlags{}
	kingpinApp.Flag("config", "Path to YAML configuration file").StringVar(&flags.configFile)
	kingpinApp.Flag("port", "HTTP port exposed by the service").StringVar(&flags.port)
	kingpinApp.Flag("catalog-file", "Path to the initial comma-separated catalog file").StringVar(&flags.catalogFile)
	kingpinApp.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64Var(&flags.rateLimitRPS)
	kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").IntVar(&flags.rateLimitBurst)

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	cfg, err := config.Load(overridesFromFlags(flags))
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

// overridesFromFlags maps parsed CLI flags onto config overrides, treating the
// negative rate-limit defaults as "not set".
func overridesFromFlags(flags cliFlags) *config.CLIOverrides {
	overrides := &config.CLIOverrides{
		ConfigFile: flags.configFile,
	}

	if flags.port != "" {
		overrides.Port = &flags.port
	}
	if flags.catalogFile != "" {
		overrides.CatalogFile = &flags.catalogFile
	}
	if flags.rateLimitRPS >= 0 {
		overrides.RateLimitRPS = &flags.rateLimitRPS
	}
	if flags.rateLimitBurst >= 0 {
		overrides.RateLimitBurst = &flags.rateLimitBurst
	}

	return overrides
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
