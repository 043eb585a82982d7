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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	acceptVehicleArrivalHandler "github.com/techtorque/appointment-service/internal/api/handlers/accept_vehicle_arrival"
	assignEmployeesHandler "github.com/techtorque/appointment-service/internal/api/handlers/assign_employees"
	bookAppointmentHandler "github.com/techtorque/appointment-service/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/techtorque/appointment-service/internal/api/handlers/cancel_appointment"
	checkAvailabilityHandler "github.com/techtorque/appointment-service/internal/api/handlers/check_availability"
	clockInHandler "github.com/techtorque/appointment-service/internal/api/handlers/clock_in"
	clockOutHandler "github.com/techtorque/appointment-service/internal/api/handlers/clock_out"
	confirmCompletionHandler "github.com/techtorque/appointment-service/internal/api/handlers/confirm_completion"
	createServiceTypeHandler "github.com/techtorque/appointment-service/internal/api/handlers/create_service_type"
	deactivateServiceTypeHandler "github.com/techtorque/appointment-service/internal/api/handlers/deactivate_service_type"
	getActiveSessionHandler "github.com/techtorque/appointment-service/internal/api/handlers/get_active_session"
	getAppointmentHandler "github.com/techtorque/appointment-service/internal/api/handlers/get_appointment"
	getEmployeeScheduleHandler "github.com/techtorque/appointment-service/internal/api/handlers/get_employee_schedule"
	getMonthlyCalendarHandler "github.com/techtorque/appointment-service/internal/api/handlers/get_monthly_calendar"
	listAppointmentsHandler "github.com/techtorque/appointment-service/internal/api/handlers/list_appointments"
	listServiceTypesHandler "github.com/techtorque/appointment-service/internal/api/handlers/list_service_types"
	updateAppointmentHandler "github.com/techtorque/appointment-service/internal/api/handlers/update_appointment"
	updateServiceTypeHandler "github.com/techtorque/appointment-service/internal/api/handlers/update_service_type"
	updateStatusHandler "github.com/techtorque/appointment-service/internal/api/handlers/update_status"
	"github.com/techtorque/appointment-service/internal/api/middleware"
	"github.com/techtorque/appointment-service/internal/config"
	appointmentRepo "github.com/techtorque/appointment-service/internal/infra/storage/appointment"
	bayRepo "github.com/techtorque/appointment-service/internal/infra/storage/bay"
	scheduleRepo "github.com/techtorque/appointment-service/internal/infra/storage/schedule"
	sessionRepo "github.com/techtorque/appointment-service/internal/infra/storage/session"
	servicetypeRepo "github.com/techtorque/appointment-service/internal/infra/storage/servicetype"
	"github.com/techtorque/appointment-service/internal/integrations/notification"
	"github.com/techtorque/appointment-service/internal/integrations/timelogging"
	appointmentsService "github.com/techtorque/appointment-service/internal/service/appointments"
	"github.com/techtorque/appointment-service/internal/service/scheduling"
	servicetypesService "github.com/techtorque/appointment-service/internal/service/servicetypes"
	timetrackingService "github.com/techtorque/appointment-service/internal/service/timetracking"
	bookAppointmentUC "github.com/techtorque/appointment-service/internal/usecase/book_appointment"
	checkAvailabilityUC "github.com/techtorque/appointment-service/internal/usecase/check_availability"
	"github.com/techtorque/appointment-service/pkg/clock"
	"github.com/techtorque/appointment-service/pkg/dbmetrics"
	"github.com/techtorque/appointment-service/pkg/logger"
	"github.com/techtorque/appointment-service/pkg/metrics"
	"github.com/techtorque/appointment-service/pkg/simpletxmanager"
	"github.com/techtorque/appointment-service/pkg/txmanager"
)

// TxManager общий интерфейс менеджера транзакций (с метриками и без)
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

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

	log.Info("Starting appointment-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
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

	// Инициализируем интеграции
	notifier := notification.NewDispatcher(cfg.Notification.URL, log)
	defer notifier.Stop()
	timeLogClient := timelogging.NewClient(cfg.TimeLogging.URL, log)
	log.Info("Integrations initialized (notifications=%s, timelogging=%s)",
		cfg.Notification.URL, cfg.TimeLogging.URL)

	// Инициализируем репозитории и менеджер транзакций (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		bayRepository         *bayRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		sessionRepository     *sessionRepo.Repository
		servicetypeRepository *servicetypeRepo.Repository
		txMgr                 TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		bayRepository = bayRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		servicetypeRepository = servicetypeRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		bayRepository = bayRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		sessionRepository = sessionRepo.NewRepository(db)
		servicetypeRepository = servicetypeRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	timeProvider := clock.New()

	// Компоненты планирования
	bookingValidator := scheduling.NewValidator(scheduleRepository, timeProvider, log)
	bayResolver := scheduling.NewBayResolver(bayRepository, appointmentRepository, log)
	availabilityCalc := scheduling.NewAvailabilityCalculator(scheduleRepository, bayResolver, timeProvider, log)

	// Инициализируем сервисы
	timetrackingSvc := timetrackingService.NewService(
		appointmentRepository,
		sessionRepository,
		timeLogClient,
		txMgr,
		timeProvider,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		servicetypeRepository,
		scheduleRepository,
		bookingValidator,
		bayResolver,
		timetrackingSvc,
		notifier,
		txMgr,
		timeProvider,
		log,
	)
	servicetypesSvc := servicetypesService.NewService(servicetypeRepository, log)

	// Инициализируем use cases
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		appointmentRepository,
		servicetypeRepository,
		bookingValidator,
		bayResolver,
		notifier,
		txMgr,
		timeProvider,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		servicetypeRepository,
		availabilityCalc,
		log,
	)

	// Инициализируем handlers
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentsSvc, log)
	assignEmployees := assignEmployeesHandler.NewHandler(appointmentsSvc, log)
	acceptVehicleArrival := acceptVehicleArrivalHandler.NewHandler(appointmentsSvc, log)
	confirmCompletion := confirmCompletionHandler.NewHandler(appointmentsSvc, log)
	getEmployeeSchedule := getEmployeeScheduleHandler.NewHandler(appointmentsSvc, log)
	getMonthlyCalendar := getMonthlyCalendarHandler.NewHandler(appointmentsSvc, log)
	clockIn := clockInHandler.NewHandler(timetrackingSvc, log)
	clockOut := clockOutHandler.NewHandler(timetrackingSvc, log)
	getActiveSession := getActiveSessionHandler.NewHandler(timetrackingSvc, log)
	listServiceTypes := listServiceTypesHandler.NewHandler(servicetypesSvc, log)
	createServiceType := createServiceTypeHandler.NewHandler(servicetypesSvc, log)
	updateServiceType := updateServiceTypeHandler.NewHandler(servicetypesSvc, log)
	deactivateServiceType := deactivateServiceTypeHandler.NewHandler(servicetypesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix; все маршруты требуют заголовков аутентификации шлюза
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(log))

	// --- Записи на обслуживание ---
	api.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/calendar/{year}/{month}", getMonthlyCalendar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", updateAppointment.Handle).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{id}/cancel", cancelAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}/status", updateStatus.Handle).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{id}/employees", assignEmployees.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}/accept-arrival", acceptVehicleArrival.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}/confirm-completion", confirmCompletion.Handle).Methods(http.MethodPost)

	// --- Учёт рабочего времени ---
	api.HandleFunc("/appointments/{id}/clock-in", clockIn.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}/clock-out", clockOut.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}/active-session", getActiveSession.Handle).Methods(http.MethodGet)

	// --- Расписание сотрудников ---
	api.HandleFunc("/employees/{employeeId}/schedule", getEmployeeSchedule.Handle).Methods(http.MethodGet)

	// --- Каталог типов обслуживания ---
	api.HandleFunc("/service-types", listServiceTypes.Handle).Methods(http.MethodGet)
	api.HandleFunc("/service-types", createServiceType.Handle).Methods(http.MethodPost)
	api.HandleFunc("/service-types/{id}", updateServiceType.Handle).Methods(http.MethodPut)
	api.HandleFunc("/service-types/{id}", deactivateServiceType.Handle).Methods(http.MethodDelete)

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

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
