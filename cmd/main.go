package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"simple_pomodoro/internal/handlers"
	"simple_pomodoro/internal/logger"
	"simple_pomodoro/internal/repository"
	"simple_pomodoro/internal/repository/db"
	"simple_pomodoro/internal/server"
	"simple_pomodoro/internal/service"

	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configErr := loadConfig()

	// init logger
	log := logger.GetWithOptions(logger.Options{
		Level:  viper.GetString("log.level"),
		Format: viper.GetString("log.format"),
	})
	if configErr != nil {
		log.Fatalw("error reading config", "err", configErr)
	}
	if viper.GetString("auth.signing_key") == "" {
		log.Fatalw("auth.signing_key is empty; set POMODORO_AUTH_SIGNING_KEY")
	}

	// open DB
	conn, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, serviceConfig(), log)
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recorderDone := make(chan struct{})
	go func() {
		defer close(recorderDone)
		services.Recorder.Run(ctx)
	}()

	// start HTTP server
	srv := server.New(server.Options{
		ReadHeaderTimeout: viper.GetDuration("server.read_header_timeout"),
		WriteTimeout:      viper.GetDuration("server.write_timeout"),
		IdleTimeout:       viper.GetDuration("server.idle_timeout"),
	})
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)
	log.Infow("server started", "port", viper.GetString("port"))

	// graceful shutdown
	waitForShutdown(srv, log)
	services.Close()
	cancel()
	<-recorderDone
	log.Infow("server stopped")
}

func loadConfig() error {
	setDefaults()
	viper.SetEnvPrefix("POMODORO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("port", "8080")
	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("log.format", logger.ConsoleFormat)
	viper.SetDefault("db.path", "pomodoro.db")
	viper.SetDefault("timer.focus_seconds", 25*60)
	viper.SetDefault("timer.break_seconds", 5*60)
	viper.SetDefault("timer.repeat", false)
	viper.SetDefault("timer.max_seconds", 24*60*60)
	viper.SetDefault("events.buffer", 256)
	viper.SetDefault("events.record_ticks", false)
	viper.SetDefault("auth.signing_key", "")
	viper.SetDefault("auth.token_ttl", time.Hour)
	viper.SetDefault("server.read_header_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 10*time.Second)
	viper.SetDefault("server.idle_timeout", 60*time.Second)
}

func serviceConfig() service.Config {
	return service.Config{
		Focus:       viper.GetInt("timer.focus_seconds"),
		Break:       viper.GetInt("timer.break_seconds"),
		Repeat:      viper.GetBool("timer.repeat"),
		MaxSeconds:  viper.GetInt("timer.max_seconds"),
		EventBuffer: viper.GetInt("events.buffer"),
		RecordTicks: viper.GetBool("events.record_ticks"),
		Auth: service.AuthConfig{
			SigningKey: viper.GetString("auth.signing_key"),
			TokenTTL:   viper.GetDuration("auth.token_ttl"),
		},
	}
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	log.Infow("opening sqlite", "path", dbPath)
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM, then drains in-flight requests.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
