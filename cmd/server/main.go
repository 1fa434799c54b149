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

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/remiges-tech/logharbour/logharbour"

	"github.com/remiges-tech/usersvc/config"
	"github.com/remiges-tech/usersvc/internal/pg"
	"github.com/remiges-tech/usersvc/internal/users"
	"github.com/remiges-tech/usersvc/internal/users/gormstore"
	"github.com/remiges-tech/usersvc/internal/users/memstore"
	"github.com/remiges-tech/usersvc/internal/users/pgstore"
	"github.com/remiges-tech/usersvc/internal/webservices/user"
	"github.com/remiges-tech/usersvc/logger"
	"github.com/remiges-tech/usersvc/metrics"
	"github.com/remiges-tech/usersvc/router"
	"github.com/remiges-tech/usersvc/service"
	"github.com/remiges-tech/usersvc/wscutils"
)

const (
	appName            = "usersvc"
	requestTimeout     = 30 * time.Second
	shutdownTimeout    = 10 * time.Second
	slowQueryThreshold = 200 * time.Millisecond
)

func main() {
	configSystem := flag.String("configSource", "file", "The configuration system to use (file or rigel)")
	configFilePath := flag.String("configFile", "./config.json", "The path to the configuration file")
	etcdEndpoints := flag.String("etcdEndpoints", "localhost:2379", "Comma-separated list of etcd endpoints")
	rigelApp := flag.String("rigelApp", appName, "The Rigel application name")
	rigelModule := flag.String("rigelModule", "api", "The Rigel module name")
	rigelVersion := flag.Int("rigelVersion", 1, "The Rigel schema version")
	rigelConfig := flag.String("rigelConfig", "dev", "The Rigel config name")
	errorTypesPath := flag.String("errorTypes", "", "Optional YAML file overriding the built-in error types")
	flag.Parse()

	var configSource config.Config
	switch *configSystem {
	case "file":
		f, err := config.NewFile(*configFilePath)
		if err != nil {
			log.Fatalf("Error creating file config source: %v", err)
		}
		configSource = f
	case "rigel":
		r, err := config.NewRigel(*etcdEndpoints, *rigelApp, *rigelModule, *rigelVersion, *rigelConfig)
		if err != nil {
			log.Fatalf("Error creating rigel config source: %v", err)
		}
		configSource = r
	default:
		log.Fatalf("Unknown configuration system: %s", *configSystem)
	}

	var appConfig config.AppConfig
	if err := config.Load(configSource, &appConfig); err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	appConfig.ApplyDefaults()
	if err := appConfig.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if *errorTypesPath != "" {
		file, err := os.Open(*errorTypesPath)
		if err != nil {
			log.Fatalf("Failed to open error types file: %v", err)
		}
		err = wscutils.LoadErrorTypes(file)
		file.Close()
		if err != nil {
			log.Fatalf("Failed to load error types: %v", err)
		}
	}

	lh := logger.New(appName, os.Stdout, appConfig.Debug)
	if !appConfig.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openRepository(ctx, appConfig, lh)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", appConfig.StoreDriver, err)
	}
	defer closeRepo()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewPrometheusMetrics(registry)

	r := router.SetupRouter(router.Options{Logger: lh, Metrics: m, RequestTimeout: requestTimeout})
	s := service.NewService(r).
		WithLogger(lh).
		WithConfig(configSource).
		WithMetrics(m)

	userService := users.NewService(repo, users.Config{AgeLimit: appConfig.AgeLimit()}, lh, m)
	user.RegisterRoutes(s, userService)

	srv := &http.Server{
		Addr:    ":" + appConfig.AppServerPort,
		Handler: r,
	}

	go func() {
		lh.Info().LogActivity("Server starting", map[string]any{
			"port":     appConfig.AppServerPort,
			"store":    appConfig.StoreDriver,
			"ageLimit": appConfig.AgeLimit(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	<-ctx.Done()
	lh.Info().LogActivity("Server shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

// openRepository returns the store selected by cfg.StoreDriver and a
// function releasing it. Database stores are migrated first.
func openRepository(ctx context.Context, cfg config.AppConfig, lh *logharbour.Logger) (users.Repository, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return memstore.New(), func() {}, nil

	case config.StorePgx:
		if err := pg.MigrateURL(ctx, cfg.DBConnURL); err != nil {
			return nil, nil, err
		}
		level := tracelog.LogLevelWarn
		if cfg.Debug {
			level = tracelog.LogLevelInfo
		}
		pool, err := pg.NewPool(ctx, cfg.DBConnURL, lh, pg.NewLogLevel(level))
		if err != nil {
			return nil, nil, err
		}
		return pgstore.New(pool), pool.Close, nil

	case config.StoreGorm:
		if err := pg.MigrateURL(ctx, cfg.DBConnURL); err != nil {
			return nil, nil, err
		}
		db, err := gormstore.Open(cfg.DBConnURL, lh, slowQueryThreshold)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return gormstore.New(db), func() { sqlDB.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
