package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"empowerher/content"
	"empowerher/db"
	qhttp "empowerher/http"
	"empowerher/logging"
	"empowerher/ml"
	"empowerher/monitoring"
	"empowerher/tracker"
)

type Config struct {
	Http struct {
		Port           int      `yaml:"port"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"http"`
	Log   logging.Config `yaml:"log"`
	Model struct {
		Path          string `yaml:"path"`
		ThresholdPath string `yaml:"threshold_path"`
		CacheSize     int    `yaml:"cache_size"`
	} `yaml:"model"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Content struct {
		Path  string `yaml:"path"`
		Watch bool   `yaml:"watch"`
	} `yaml:"content"`
	Tracker struct {
		Goals tracker.Goals `yaml:"goals"`
	} `yaml:"tracker"`
}

func main() {
	// 1. Load config
	config, err := loadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.Init(config.Log)
	defer logger.Sync()

	// 2. Load model artifacts. Either one missing or corrupt means the
	// service cannot classify at all, so startup halts here.
	model, err := ml.LoadModel(config.Model.Path)
	if err != nil {
		logger.Fatal("failed to load model artifact", zap.String("path", config.Model.Path), zap.Error(err))
	}
	threshold, err := ml.LoadThreshold(config.Model.ThresholdPath)
	if err != nil {
		logger.Fatal("failed to load threshold artifact", zap.String("path", config.Model.ThresholdPath), zap.Error(err))
	}
	classifier, err := ml.NewRiskClassifier(model, threshold, config.Model.CacheSize)
	if err != nil {
		logger.Fatal("failed to build classifier", zap.Error(err))
	}
	logger.Info("classifier ready",
		zap.Int("columns", len(classifier.Columns())),
		zap.Float64("threshold", threshold))

	// 3. Initialize database
	if err := db.InitDB(config.Database.Path); err != nil {
		logger.Fatal("failed to initialize database", zap.String("path", config.Database.Path), zap.Error(err))
	}
	logger.Info("database initialized", zap.String("path", config.Database.Path))

	// 4. Load educational content
	store, err := content.NewStore(config.Content.Path)
	if err != nil {
		logger.Fatal("failed to load content", zap.String("path", config.Content.Path), zap.Error(err))
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if config.Content.Watch {
		if err := store.Watch(ctx, logger); err != nil {
			logger.Warn("content watcher unavailable", zap.Error(err))
		}
	}

	// 5. Wire the dashboard hub and handlers
	stats := monitoring.NewPredictionStats()
	hub := monitoring.NewDashboardHub(classifier, stats, logger)
	go hub.Start()

	qhttp.SetRiskClassifier(classifier)
	qhttp.SetPredictionStats(stats)
	qhttp.SetContentStore(store)
	qhttp.SetDashboardHub(hub)
	if config.Tracker.Goals != (tracker.Goals{}) {
		qhttp.SetTrackerGoals(config.Tracker.Goals)
	}

	// 6. Start HTTP server
	serverConfig := qhttp.DefaultServerConfig()
	if config.Http.Port != 0 {
		serverConfig.Port = config.Http.Port
	}
	if config.Http.TimeoutSeconds != 0 {
		serverConfig.Timeout = time.Duration(config.Http.TimeoutSeconds) * time.Second
	}
	if len(config.Http.AllowedOrigins) != 0 {
		serverConfig.AllowedOrigins = config.Http.AllowedOrigins
	}

	server := qhttp.NewServer(serverConfig)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 7. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	cancel()
	hub.Stop()
	if err := server.Stop(); err != nil {
		logger.Warn("server forced to shutdown", zap.Error(err))
	}

	logger.Info("exiting")
}

func loadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
