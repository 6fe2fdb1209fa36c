package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "task-timer.com/task-timer/internal/configs"
	"task-timer.com/task-timer/internal/events"
	httpapi "task-timer.com/task-timer/internal/http"
	repository "task-timer.com/task-timer/internal/repositories"
	"task-timer.com/task-timer/internal/scheduler"
	"task-timer.com/task-timer/internal/services"
)

var envFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task timer HTTP API and the per-task countdown scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		envErr := godotenv.Load(envFile)

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}

		log := config.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stdout)
		if envErr != nil {
			log.Debug().Str("path", envFile).Msg(".env file not found, using environment variables")
		}

		database, err := config.NewDatabaseClient(cfg.JournalDSN)
		if err != nil {
			return err
		}
		eventRepo := repository.NewEventRepository(database)

		publishers := []events.Publisher{events.NewJournalPublisher(eventRepo)}
		if cfg.RedisEnabled() {
			redisClient, err := config.NewRedisClient(cfg.RedisAddr)
			if err != nil {
				return err
			}
			defer redisClient.Close()

			publishers = append(publishers, events.NewRedisPublisher(redisClient, cfg.RedisEventsChannel))
			log.Info().Str("addr", cfg.RedisAddr).Str("channel", cfg.RedisEventsChannel).Msg("redis event publishing enabled")
		}

		clock := scheduler.NewCronClock(log)
		timers := scheduler.NewRegistry(clock, time.Duration(cfg.TickIntervalSeconds)*time.Second)
		taskService := services.NewTaskService(
			repository.NewTaskRepository(),
			timers,
			events.Fanout(publishers...),
			log,
		)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		clock.Start()

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		httpapi.Register(e, httpapi.NewHandler(taskService, eventRepo, cfg.DefaultDurationMinutes), cfg.RateLimit, log)

		serverErr := make(chan error, 1)
		go func() {
			log.Info().Str("addr", cfg.AppURL).Msg("HTTP server listening")
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
			close(serverErr)
		}()

		var runErr error
		select {
		case <-ctx.Done():
		case runErr = <-serverErr:
			if runErr != nil {
				log.Error().Err(runErr).Msg("server stopped")
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		taskService.Shutdown()
		clock.Stop(shutdownCtx)

		log.Info().Msg("HTTP server and timers shut down gracefully")
		return runErr
	},
}

func init() {
	serveCmd.Flags().StringVar(&envFile, "env-file", ".env", "path to a dotenv file")
	rootCmd.AddCommand(serveCmd)
}
