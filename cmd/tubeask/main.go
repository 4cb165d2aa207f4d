package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/tubeask/tubeask/internal/ai"
	"github.com/tubeask/tubeask/internal/config"
	"github.com/tubeask/tubeask/internal/handler"
	"github.com/tubeask/tubeask/internal/job"
	"github.com/tubeask/tubeask/internal/middleware"
	"github.com/tubeask/tubeask/internal/schedule"
	"github.com/tubeask/tubeask/internal/service"
	"github.com/tubeask/tubeask/internal/session"
	"github.com/tubeask/tubeask/internal/youtube"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "tubeask",
		Short: "tubeask backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run tubeask server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("generate_model", cfg.AI.GenerateModel),
		zap.String("embed_model", cfg.AI.EmbedModel),
	)

	aiProvider, err := ai.NewProvider(cfg.AI.Provider, cfg.AI.Data)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	generator := ai.NewGenerator(aiProvider, cfg.AI.GenerateModel)
	embedder := ai.NewEmbedder(aiProvider, cfg.AI.EmbedModel)
	transcripts := youtube.NewClient(time.Duration(cfg.Transcript.Timeout) * time.Second)
	registry := session.NewRegistry(cfg.Session.Capacity, time.Duration(cfg.Session.TTLHours)*time.Hour)

	ingestService := service.NewIngestService(transcripts, embedder, registry, service.IngestConfig{
		TargetChars:  cfg.RAG.TargetChars,
		OverlapChars: cfg.RAG.OverlapChars,
		Timeout:      cfg.AI.Timeout,
	})
	queryService := service.NewQueryService(registry, generator, service.QueryConfig{
		DefaultK:   cfg.RAG.DefaultK,
		CandidateK: cfg.RAG.CandidateK,
		Timeout:    cfg.AI.Timeout,
	})

	deps := handler.RouterDeps{
		RAG: handler.NewRAGHandler(ingestService, queryService),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.AllowedOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewSessionStatsJob(registry), cfg.Session.StatSpec); err != nil {
		return fmt.Errorf("schedule session stats: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(ctx).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
