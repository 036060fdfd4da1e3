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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bulkUpdateRulesHandler "github.com/m04kA/SMC-BookingWindowService/internal/api/handlers/bulk_update_rules"
	checkBookingTimeHandler "github.com/m04kA/SMC-BookingWindowService/internal/api/handlers/check_booking_time"
	deleteItemRulesHandler "github.com/m04kA/SMC-BookingWindowService/internal/api/handlers/delete_item_rules"
	getBookingWindowHandler "github.com/m04kA/SMC-BookingWindowService/internal/api/handlers/get_booking_window"
	getItemRulesHandler "github.com/m04kA/SMC-BookingWindowService/internal/api/handlers/get_item_rules"
	listRulesHandler "github.com/m04kA/SMC-BookingWindowService/internal/api/handlers/list_rules"
	updateItemRulesHandler "github.com/m04kA/SMC-BookingWindowService/internal/api/handlers/update_item_rules"
	"github.com/m04kA/SMC-BookingWindowService/internal/api/middleware"
	"github.com/m04kA/SMC-BookingWindowService/internal/config"
	rulesRepo "github.com/m04kA/SMC-BookingWindowService/internal/infra/storage/rules"
	menuServiceClient "github.com/m04kA/SMC-BookingWindowService/internal/integrations/menuservice"
	rulesService "github.com/m04kA/SMC-BookingWindowService/internal/service/rules"
	checkBookingTimeUC "github.com/m04kA/SMC-BookingWindowService/internal/usecase/check_booking_time"
	getBookingWindowUC "github.com/m04kA/SMC-BookingWindowService/internal/usecase/get_booking_window"
	"github.com/m04kA/SMC-BookingWindowService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingWindowService/pkg/logger"
	"github.com/m04kA/SMC-BookingWindowService/pkg/metrics"
	"github.com/m04kA/SMC-BookingWindowService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-BookingWindowService...")
	log.Info("Configuration loaded from %s (restaurant timezone=%s)", configPath, cfg.Restaurant.Location())

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
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

	// Инициализируем клиента каталога меню
	menuClient := menuServiceClient.NewClient(
		cfg.MenuService.URL,
		time.Duration(cfg.MenuService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (MenuService=%s timeout=%ds)",
		cfg.MenuService.URL, cfg.MenuService.Timeout)

	// Репозиторий и transaction manager (с метриками или без)
	var (
		rulesRepository *rulesRepo.Repository
		txMgr           *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		rulesRepository = rulesRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		rulesRepository = rulesRepo.NewRepository(db)
		txMgr = txmanager.NewSQLTransactionManager(db)
	}

	// Инициализируем сервисы
	rulesSvc := rulesService.NewService(
		rulesRepository,
		menuClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getBookingWindowUseCase := getBookingWindowUC.NewUseCase(
		rulesRepository,
		menuClient,
		cfg.Restaurant.Location(),
		log,
	)
	checkBookingTimeUseCase := checkBookingTimeUC.NewUseCase(getBookingWindowUseCase, log)

	// Инициализируем handlers
	getBookingWindow := getBookingWindowHandler.NewHandler(getBookingWindowUseCase, log)
	checkBookingTime := checkBookingTimeHandler.NewHandler(checkBookingTimeUseCase, log)
	getItemRules := getItemRulesHandler.NewHandler(rulesSvc, log)
	updateItemRules := updateItemRulesHandler.NewHandler(rulesSvc, log)
	deleteItemRules := deleteItemRulesHandler.NewHandler(rulesSvc, log)
	listRules := listRulesHandler.NewHandler(rulesSvc, log)
	bulkUpdateRules := bulkUpdateRulesHandler.NewHandler(rulesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Окно бронирования позиции и превью для гостя
	api.HandleFunc("/items/{itemId}/booking-window", getBookingWindow.Handle).Methods(http.MethodGet)

	// Проверка выбранных даты и времени
	api.HandleFunc("/items/{itemId}/booking-window/check", checkBookingTime.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Правила ресторана ---
	protected.HandleFunc("/booking-rules", listRules.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/booking-rules/bulk", bulkUpdateRules.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/booking-rules/default", getItemRules.HandleDefault).Methods(http.MethodGet)
	protected.HandleFunc("/booking-rules/default", updateItemRules.HandleDefault).Methods(http.MethodPut)
	protected.HandleFunc("/booking-rules/default", deleteItemRules.HandleDefault).Methods(http.MethodDelete)

	// --- Правила позиции меню ---
	protected.HandleFunc("/items/{itemId}/booking-rules", getItemRules.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/items/{itemId}/booking-rules", updateItemRules.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/items/{itemId}/booking-rules", deleteItemRules.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
