package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/wijvancees/fotobestel/internal/blobstore"
	"github.com/wijvancees/fotobestel/internal/blobstore/local"
	"github.com/wijvancees/fotobestel/internal/blobstore/s3"
	"github.com/wijvancees/fotobestel/internal/config"
	"github.com/wijvancees/fotobestel/internal/db"
	"github.com/wijvancees/fotobestel/internal/logging"
	"github.com/wijvancees/fotobestel/internal/mailer"
	"github.com/wijvancees/fotobestel/internal/mailer/resend"
	"github.com/wijvancees/fotobestel/internal/mailer/smtp"
	"github.com/wijvancees/fotobestel/internal/notify"
	"github.com/wijvancees/fotobestel/internal/service"
	"github.com/wijvancees/fotobestel/internal/store"
	"github.com/wijvancees/fotobestel/internal/web"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	blobs, err := newBlobStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize blob store", "error", err)
		return
	}

	notifier, err := notify.New(newMailer(cfg, logger), cfg.AdminEmail, cfg.BaseURL, logger)
	if err != nil {
		logger.Error("failed to initialize notifier", "error", err)
		return
	}

	resetTokens := store.NewResetTokenStore(database)
	if err := resetTokens.PurgeExpired(ctx); err != nil {
		logger.Warn("failed to purge expired reset tokens", "error", err)
	}

	accounts := service.NewAccountService(store.NewUserStore(database), resetTokens, notifier, logger)
	orders := service.NewOrderService(store.NewOrderStore(database), notifier, logger)
	catalog := service.NewCatalogService(store.NewPhotoStore(database), blobs, logger)

	server := web.NewServer(accounts, orders, catalog, cfg.SessionKey, cfg.CookieSecure, logger)
	if err := server.ListenAndServe(ctx, cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
		return
	}
	logger.Info("server stopped")
}

func newBlobStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (blobstore.Store, error) {
	switch cfg.BlobBackend {
	case "s3":
		logger.Info("using s3 blob backend", "bucket", cfg.S3Bucket, "endpoint", cfg.S3Endpoint)
		return s3.New(ctx, s3.Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	default:
		logger.Info("using local blob backend", "path", cfg.BlobLocalPath)
		return local.New(cfg.BlobLocalPath)
	}
}

func newMailer(cfg *config.Config, logger *slog.Logger) mailer.Mailer {
	switch cfg.MailBackend {
	case "resend":
		logger.Info("using resend mail backend")
		return resend.New(cfg.ResendAPIKey, cfg.MailFrom, cfg.MailReplyTo)
	case "smtp":
		logger.Info("using smtp mail backend", "host", cfg.SMTPHost, "port", cfg.SMTPPort)
		return smtp.New(cfg.SMTPHost, cfg.SMTPPort, cfg.MailFrom)
	default:
		logger.Info("mail sending disabled, messages are logged only")
		return &mailer.LogMailer{Logger: logger}
	}
}
