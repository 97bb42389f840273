package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/werybos/barbershop-bot/internal/config"
	"github.com/werybos/barbershop-bot/internal/dialog"
	"github.com/werybos/barbershop-bot/internal/export"
	appointmentsRepo "github.com/werybos/barbershop-bot/internal/infra/storage/appointments"
	barbersRepo "github.com/werybos/barbershop-bot/internal/infra/storage/barbers"
	reviewsRepo "github.com/werybos/barbershop-bot/internal/infra/storage/reviews"
	servicesRepo "github.com/werybos/barbershop-bot/internal/infra/storage/services"
	telegramTransport "github.com/werybos/barbershop-bot/internal/transport/telegram"
	addReviewUC "github.com/werybos/barbershop-bot/internal/usecase/add_review"
	archiveUC "github.com/werybos/barbershop-bot/internal/usecase/archive_appointments"
	cancelUC "github.com/werybos/barbershop-bot/internal/usecase/cancel_appointment"
	completeUC "github.com/werybos/barbershop-bot/internal/usecase/complete_appointment"
	createUC "github.com/werybos/barbershop-bot/internal/usecase/create_appointment"
	slotsUC "github.com/werybos/barbershop-bot/internal/usecase/get_available_slots"
	"github.com/werybos/barbershop-bot/pkg/logger"
	"github.com/werybos/barbershop-bot/pkg/metrics"
	"github.com/werybos/barbershop-bot/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting barbershop-bot...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at :%d%s", cfg.Metrics.Port, cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории
	barberRepository := barbersRepo.NewRepository(db)
	serviceRepository := servicesRepo.NewRepository(db)
	appointmentRepository := appointmentsRepo.NewRepository(db)
	reviewRepository := reviewsRepo.NewRepository(db)
	txManager := txmanager.NewTransactionManager(db)

	// Инициализируем use cases
	getSlots := slotsUC.NewUseCase(barberRepository, appointmentRepository, log)
	createAppointment := createUC.NewUseCase(appointmentRepository, barberRepository, serviceRepository, log)
	cancelAppointment := cancelUC.NewUseCase(appointmentRepository, log)
	completeAppointment := completeUC.NewUseCase(appointmentRepository, log)
	archiveAppointments := archiveUC.NewUseCase(appointmentRepository, txManager, log)
	addReview := addReviewUC.NewUseCase(reviewRepository, barberRepository, txManager, log)

	// Инициализируем диалоговый движок и экспортер
	sessionStore := dialog.NewStore(time.Duration(cfg.Session.TTLMinutes) * time.Minute)
	var engineMetrics dialog.Metrics
	if metricsCollector != nil {
		engineMetrics = metricsCollector
	}
	engine := dialog.NewEngine(
		sessionStore,
		barberRepository,
		serviceRepository,
		getSlots,
		createAppointment,
		nil,
		engineMetrics,
		log,
	)
	exporter := export.NewExporter(appointmentRepository, log)

	// Инициализируем telegram-бота
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Fatal("Failed to create telegram bot: %v", err)
	}
	log.Info("Authorized on account %s", api.Self.UserName)

	bot := telegramTransport.NewBot(api, telegramTransport.Deps{
		Engine:          engine,
		Exporter:        exporter,
		Canceller:       cancelAppointment,
		Completer:       completeAppointment,
		Archiver:        archiveAppointments,
		ReviewAdder:     addReview,
		ReviewRepo:      reviewRepository,
		BarberRepo:      barberRepository,
		ServiceRepo:     serviceRepository,
		AppointmentRepo: appointmentRepository,
		AdminIDs:        cfg.Telegram.AdminIDs,
		Metrics:         botMetrics(metricsCollector),
		Logger:          log,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Фоновая уборка: архивация прошедших записей и чистка сессий
	go runArchiveSweep(ctx, archiveAppointments, metricsCollector, time.Duration(cfg.Archive.SweepMinutes)*time.Minute, log)
	go runSessionPurge(ctx, sessionStore, time.Duration(cfg.Session.PurgeMinutes)*time.Minute, log)

	// HTTP-сервер метрик (если включены)
	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		r := mux.NewRouter()
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		metricsSrv = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: r,
		}
		go func() {
			log.Info("Starting metrics server on %s", metricsSrv.Addr)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("Metrics server failed: %v", err)
			}
		}()
	}

	// Запускаем long polling
	go bot.Run(ctx)
	log.Info("Bot started, polling for updates")

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	cancel()

	if metricsSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("Metrics server forced to shutdown: %v", err)
		}
	}

	log.Info("Stopped gracefully")
}

// botMetrics прячет типизированный nil за nil-интерфейсом
func botMetrics(m *metrics.Metrics) telegramTransport.Metrics {
	if m == nil {
		return nil
	}
	return m
}

// runArchiveSweep периодически переносит прошедшие записи в архив
func runArchiveSweep(ctx context.Context, uc *archiveUC.UseCase, m *metrics.Metrics, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			moved, err := uc.Execute(ctx)
			if err != nil {
				log.Error("Archive sweep failed: %v", err)
				continue
			}
			if moved > 0 {
				log.Info("Archive sweep moved %d appointments", moved)
				if m != nil {
					m.AddArchived(moved)
				}
			}
		}
	}
}

// runSessionPurge периодически удаляет истекшие диалоговые сессии
func runSessionPurge(ctx context.Context, store *dialog.Store, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if purged := store.PurgeExpired(); purged > 0 {
				log.Debug("Purged %d expired dialogue sessions", purged)
			}
		}
	}
}
