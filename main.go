package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdf_toolkit/api"
	"pdf_toolkit/pdf"
	"pdf_toolkit/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

const (
	// DefaultMaxFileSize is the default maximum file size (50MB)
	DefaultMaxFileSize = 50 * 1024 * 1024

	// DefaultPort is the default server port
	DefaultPort = "8080"

	// DefaultTempDir is the default temporary directory
	DefaultTempDir = "./temp"

	// DefaultDocumentTTL is how long uploaded documents stay available
	DefaultDocumentTTL = time.Hour

	// JanitorInterval is how often expired documents are swept
	JanitorInterval = time.Minute

	// ServerReadTimeout is the HTTP server read timeout
	ServerReadTimeout = 30 * time.Second

	// ServerWriteTimeout is the HTTP server write timeout
	ServerWriteTimeout = 120 * time.Second

	// ServerIdleTimeout is the HTTP server idle timeout
	ServerIdleTimeout = 60 * time.Second

	// GracefulShutdownTimeout is the timeout for graceful shutdown
	GracefulShutdownTimeout = 10 * time.Second
)

func main() {
	cmd := &cli.Command{
		Name:  "pdf_toolkit",
		Usage: "Serve PDF split, merge, remove-pages, arrange, compress and image conversion tools",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Value: DefaultPort, Usage: "HTTP listen port", Sources: cli.EnvVars("PORT")},
			&cli.Int64Flag{Name: "max-file-size", Value: DefaultMaxFileSize, Usage: "maximum upload size in bytes", Sources: cli.EnvVars("MAX_FILE_SIZE")},
			&cli.StringFlag{Name: "temp-dir", Value: DefaultTempDir, Usage: "directory for uploads and work files", Sources: cli.EnvVars("TEMP_DIR")},
			&cli.DurationFlag{Name: "document-ttl", Value: DefaultDocumentTTL, Usage: "lifetime of uploaded documents (0 keeps them)", Sources: cli.EnvVars("DOCUMENT_TTL")},
			&cli.StringFlag{Name: "store", Value: "memory", Usage: "document registry backend: memory or redis", Sources: cli.EnvVars("STORE")},
			&cli.StringFlag{Name: "redis-addr", Value: "localhost:6379", Usage: "redis address", Sources: cli.EnvVars("REDIS_ADDR")},
			&cli.StringFlag{Name: "redis-password", Usage: "redis password", Sources: cli.EnvVars("REDIS_PASSWORD")},
			&cli.IntFlag{Name: "redis-db", Usage: "redis database number", Sources: cli.EnvVars("REDIS_DB")},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "log level", Sources: cli.EnvVars("LOG_LEVEL")},
			&cli.StringFlag{Name: "log-format", Value: "text", Usage: "log format: text or json", Sources: cli.EnvVars("LOG_FORMAT")},
		},
		Action: serve,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func newLogger(level, format string) (*logrus.Logger, error) {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(lvl)
	switch format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return log, nil
}

func newStore(ctx context.Context, cmd *cli.Command) (store.Store, error) {
	switch kind := cmd.String("store"); kind {
	case "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		return store.NewRedisStore(ctx, &store.RedisConf{
			Addr: cmd.String("redis-addr"),
			PW:   cmd.String("redis-password"),
			DB:   int(cmd.Int("redis-db")),
		})
	default:
		return nil, fmt.Errorf("unknown store %q", kind)
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd.String("log-level"), cmd.String("log-format"))
	if err != nil {
		return err
	}

	config := &api.Config{
		Port:        cmd.String("port"),
		MaxFileSize: cmd.Int64("max-file-size"),
		TempDir:     cmd.String("temp-dir"),
		DocumentTTL: cmd.Duration("document-ttl"),
	}

	docs, err := newStore(ctx, cmd)
	if err != nil {
		return fmt.Errorf("document store: %w", err)
	}
	defer docs.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if config.DocumentTTL > 0 {
		go store.Janitor(ctx, docs, JanitorInterval, log)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestLogger(log))
	r.MaxMultipartMemory = config.MaxFileSize
	api.SetupRoutes(r, api.NewServer(config, pdf.NewProcessor(), docs, log))

	// Create HTTP server with timeout settings
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", config.Port),
		Handler:      r,
		ReadTimeout:  ServerReadTimeout,
		WriteTimeout: ServerWriteTimeout,
		IdleTimeout:  ServerIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":          srv.Addr,
			"max_file_size": config.MaxFileSize,
			"temp_dir":      config.TempDir,
			"store":         cmd.String("store"),
		}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server exited gracefully")
	return nil
}
