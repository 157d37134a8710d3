package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/experttechtutors/tutor-leads/internal/config"
	"github.com/experttechtutors/tutor-leads/internal/entity"
	"github.com/experttechtutors/tutor-leads/internal/infra/database"
	"github.com/experttechtutors/tutor-leads/internal/infra/http/handlers"
	"github.com/experttechtutors/tutor-leads/internal/infra/http/router"
	"github.com/experttechtutors/tutor-leads/internal/infra/logger"
	"github.com/experttechtutors/tutor-leads/internal/infra/mail"
	"github.com/experttechtutors/tutor-leads/internal/infra/queue"
	"github.com/experttechtutors/tutor-leads/internal/infra/ratelimit"
	"github.com/experttechtutors/tutor-leads/internal/infra/retry"
	"github.com/experttechtutors/tutor-leads/internal/usecase"
)

func main() {
	boot := logger.Bootstrap()

	cfg, err := config.Load(os.Args[1:], boot)
	if err != nil {
		boot.Fatal("load config", zap.Error(err))
	}

	log, err := logger.Build(cfg.LogLevel, cfg.Env)
	if err != nil {
		boot.Fatal("build logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
	log.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	// 1. Persistence
	var repo entity.LeadRepositoryInterface = database.NewNullLeadRepository(log)
	dbDep := handlers.Dependency{Name: "database"}
	if cfg.DatabaseURL != "" {
		db, err := retry.Connect(ctx, "postgres", cfg.ConnectTimeout, log, func() (*sql.DB, error) {
			return database.NewDBConnection(ctx, cfg.DatabaseURL)
		})
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer db.Close()

		if err := database.EnsureSchema(ctx, db); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		repo = database.NewLeadRepository(db)
		dbDep.Check = db.PingContext
		log.Info("lead repository: postgres")
	} else {
		log.Warn("DATABASE_URL not set, leads are not persisted")
	}

	// 2. Rate limit store
	var store ratelimit.Store
	redisDep := handlers.Dependency{Name: "redis"}
	if cfg.RedisURL != "" {
		rdb, err := retry.Connect(ctx, "redis", cfg.ConnectTimeout, log, func() (*redis.Client, error) {
			return ratelimit.ConnectRedis(ctx, cfg.RedisURL)
		})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()

		store = ratelimit.NewRedisStore(rdb, "tutor-leads:contact")
		redisDep.Check = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		mem := ratelimit.NewMemoryStore(time.Minute)
		defer mem.Close()
		store = mem
	}
	limiter := ratelimit.NewLimiter(store, ratelimit.SubmissionLimit, ratelimit.SubmissionWindow, log.Named("ratelimit"))

	// 3. Mail
	sender := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		User:     cfg.Mail.User,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
		FromName: entity.ExpertTechTutors.Name,
	})
	notifier := mail.NewNotifier(sender, cfg.Mail.AdminEmail, sender.From(), log.Named("mail"))
	smtpDep := handlers.Dependency{Name: "smtp"}
	if cfg.Mail.Configured() {
		smtpDep.Check = func(context.Context) error { return nil }
	} else {
		log.Warn("MAIL_USER not set, notification emails will fail")
	}

	g, gctx := errgroup.WithContext(ctx)

	// 4. Messaging
	var (
		events usecase.LeadEventPublisher
		calls  usecase.QuickCallPublisher
	)
	mqDep := handlers.Dependency{Name: "rabbitmq"}
	if cfg.RabbitMQURL != "" {
		mq, err := retry.Connect(ctx, "rabbitmq", cfg.ConnectTimeout, log, func() (*queue.RabbitMQ, error) {
			return queue.NewRabbitMQ(cfg.RabbitMQURL)
		})
		if err != nil {
			return fmt.Errorf("connect rabbitmq: %w", err)
		}
		defer mq.Close()

		producer := queue.NewProducer(mq.Ch)
		events, calls = producer, producer

		consumerCh, err := mq.Conn.Channel()
		if err != nil {
			return fmt.Errorf("open consumer channel: %w", err)
		}
		worker := queue.NewWorker(consumerCh, notifier, log.Named("worker"))
		g.Go(func() error {
			if err := worker.Start(gctx, queue.QuickCallsQueue); err != nil {
				log.Error("quick call worker stopped", zap.Error(err))
			}
			return nil
		})

		mqDep.Check = rabbitMQCheck(mq.Conn, worker)
	}

	// 5. Use cases
	submitUC := usecase.NewSubmitLeadUseCase(repo, notifier, events, log.Named("leads"))
	quickCallUC := usecase.NewQuickCallUseCase(calls, log.Named("quick_call"))
	manageUC := usecase.NewManageLeadsUseCase(repo)

	// 6. Router
	handler := router.New(router.Options{
		Contact:        handlers.NewContactHandler(submitUC, log),
		QuickCall:      handlers.NewQuickCallHandler(quickCallUC, log),
		Reference:      handlers.NewReferenceHandler(),
		Admin:          handlers.NewAdminHandler(manageUC, log),
		Pages:          handlers.NewPageHandler(log),
		Health:         handlers.NewHealthHandler(cfg.Env, dbDep, redisDep, mqDep, smtpDep),
		Limiter:        limiter,
		Logger:         log.Named("http"),
		TrustProxy:     cfg.TrustProxy,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g.Go(func() error {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// rabbitMQCheck fails when the broker connection is gone or the quick-call
// worker has stopped consuming. Quick calls keep queueing while the worker
// is down, so /health has to report it.
func rabbitMQCheck(conn interface{ IsClosed() bool }, worker interface{ Healthy() error }) func(context.Context) error {
	return func(context.Context) error {
		if conn.IsClosed() {
			return errors.New("connection closed")
		}
		if err := worker.Healthy(); err != nil {
			return fmt.Errorf("worker: %w", err)
		}
		return nil
	}
}
