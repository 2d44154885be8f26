package main // Entry point package

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4" // Echo web framework
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/eventflow-booking/internal/config"
	"github.com/iliyamo/eventflow-booking/internal/database"
	"github.com/iliyamo/eventflow-booking/internal/handler"
	"github.com/iliyamo/eventflow-booking/internal/jobs"
	"github.com/iliyamo/eventflow-booking/internal/logger"
	"github.com/iliyamo/eventflow-booking/internal/notify"
	"github.com/iliyamo/eventflow-booking/internal/payment"
	"github.com/iliyamo/eventflow-booking/internal/queue"
	"github.com/iliyamo/eventflow-booking/internal/repository"
	"github.com/iliyamo/eventflow-booking/internal/router"
	"github.com/iliyamo/eventflow-booking/internal/service"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog := logger.New(cfg.Env, cfg.LogLevel)
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zlog); err != nil {
		zlog.Fatal("server exited", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, zlog *zap.Logger) error {
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	var rdb *redis.Client
	if client, err := config.NewRedisClient(ctx, config.LoadRedisConfig()); err != nil {
		zlog.Warn("redis unavailable, rate limiting and caching disabled", zap.Error(err))
	} else {
		rdb = client
		defer func() { _ = rdb.Close() }()
	}

	// Notification delivery: email over SMTP, messages over the broker when
	// one is configured, log-only fallbacks otherwise.
	var mailer notify.Mailer = notify.LogMailer{Log: zlog}
	if cfg.SMTPEnabled() {
		mailer = notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	}
	var messenger notify.Messenger = notify.LogMessenger{Log: zlog}

	var (
		outbox   notify.Outbox
		consumer *queue.Consumer
		mem      *notify.MemoryOutbox
	)
	if cfg.NotifyTransport == config.TransportAMQP {
		pub, err := queue.NewPublisher(cfg.RabbitURL, zlog, notify.BookingCreatedQueue, notify.WhatsAppQueue)
		if err != nil {
			return err
		}
		defer func() { _ = pub.Close() }()
		messenger = queue.NewMessenger(pub)
		outbox = pub
		consumer = queue.NewConsumer(cfg.RabbitURL, notify.NewDispatcher(mailer, messenger, cfg.NotifyTimeout, zlog), cfg.NotifyTimeout, zlog)
	} else {
		mem = notify.NewMemoryOutbox(notify.NewDispatcher(mailer, messenger, cfg.NotifyTimeout, zlog), cfg.OutboxSize, cfg.NotifyTimeout, zlog)
		outbox = mem
	}

	bookings := service.NewBookingService(store, outbox, zlog)
	gateway := payment.NewRazorpayClient(cfg.RazorpayBaseURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.GatewayTimeout)
	orders := payment.NewOrderService(gateway, cfg.GatewayTimeout, zlog)
	verifier := payment.NewVerifier(cfg.RazorpayKeySecret)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.RegisterRoutes(e, router.Deps{
		Payments:  handler.NewPaymentHandler(orders, verifier, cfg.RazorpayKeyID, zlog),
		Bookings:  handler.NewBookingHandler(bookings, zlog),
		JWTSecret: cfg.JWTSecret,
		Redis:     rdb,
		RateLimit: config.LoadRateLimitConfig(),
		Cache:     config.LoadCacheConfig(),
		Log:       zlog,
	})

	if consumer != nil {
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				zlog.Error("booking consumer stopped", zap.Error(err))
			}
		}()
	}

	if cfg.RevenueReportSpec != "" {
		var locker jobs.Locker
		if rdb != nil {
			locker = jobs.NewRedisLocker(rdb)
		}
		report := jobs.NewRevenueReport(bookings, locker, zlog)
		if err := report.Start(ctx, cfg.RevenueReportSpec); err != nil {
			zlog.Warn("revenue report not scheduled", zap.String("spec", cfg.RevenueReportSpec), zap.Error(err))
		} else {
			defer report.Stop()
		}
	}

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		zlog.Info("listening",
			zap.String("addr", addr),
			zap.String("env", cfg.Env),
			zap.String("storage", cfg.StorageBackend),
			zap.String("notify", cfg.NotifyTransport),
			zap.String("payment_mode", cfg.PaymentMode),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("http shutdown", zap.Error(err))
	}
	if mem != nil {
		if err := mem.Close(shutdownCtx); err != nil {
			zlog.Warn("outbox drain incomplete", zap.Error(err))
		}
	}
	return nil
}

// openStore returns the configured booking store and a close function.
func openStore(ctx context.Context, cfg config.Config) (repository.BookingStore, func(), error) {
	var (
		db      *sql.DB
		dialect string
		err     error
	)
	switch cfg.StorageBackend {
	case config.StorageMySQL:
		db, err = database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		dialect = database.DialectMySQL
	case config.StorageSQLite:
		db, err = database.OpenSQLite(cfg.SQLitePath)
		dialect = database.DialectSQLite
	default:
		return repository.NewMemoryStore(), func() {}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return repository.NewBookingRepo(db), func() { _ = db.Close() }, nil
}
