package di

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"mecaflow/internal/app"
	"mecaflow/internal/config"
	"mecaflow/internal/database"
	"mecaflow/internal/http/handler"
	"mecaflow/internal/http/middleware"
	"mecaflow/internal/observability"
	"mecaflow/internal/repository"
	"mecaflow/internal/security"
	"mecaflow/internal/service"
)

var ConfigSet = wire.NewSet(provideConfig)

var ObservabilitySet = wire.NewSet(provideLogger)

var InfraSet = wire.NewSet(provideDB, provideRedis)

var RepositorySet = wire.NewSet(
	repository.NewUserRepository,
	repository.NewPasswordResetTokenRepository,
	repository.NewClientRepository,
	repository.NewEmployeeRepository,
	repository.NewAttendanceRepository,
	repository.NewVehicleRepository,
	repository.NewDiagnosticRepository,
	repository.NewInvoiceRepository,
	repository.NewPaymentRepository,
	repository.NewVehicleTaskRepository,
	repository.NewFinancialReportRepository,
)

var SecuritySet = wire.NewSet(provideCookieManager)

var ServiceSet = wire.NewSet(
	provideSessionStore,
	provideMailer,
	provideAuthService,
	provideAttendanceService,
	provideAssistantService,
	service.NewClientService,
	service.NewVehicleService,
	service.NewEmployeeService,
	service.NewDiagnosticService,
	service.NewBillingService,
	service.NewTaskService,
	service.NewReportService,
)

var HTTPSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewAttendanceHandler,
	handler.NewClientHandler,
	handler.NewVehicleHandler,
	handler.NewEmployeeHandler,
	handler.NewDiagnosticHandler,
	handler.NewBillingHandler,
	handler.NewTaskHandler,
	handler.NewReportHandler,
	handler.NewChatHandler,
	middleware.NewSessionLoader,
	middleware.NewGate,
	provideHandlers,
	provideServer,
)

var AppSet = wire.NewSet(app.New)

func provideConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func provideLogger(cfg *config.Config) *slog.Logger {
	return observability.NewLogger(cfg.Env, cfg.LogLevel)
}

func provideDB(cfg *config.Config) (*gorm.DB, error) {
	return database.Open(cfg)
}

func provideRedis(cfg *config.Config) redis.UniversalClient {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func provideCookieManager(cfg *config.Config) *security.CookieManager {
	return security.NewCookieManager(cfg.CookieDomain, cfg.CookieSecure, cfg.CookieSameSite)
}

func provideSessionStore(client redis.UniversalClient, cfg *config.Config) *service.SessionStore {
	return service.NewSessionStore(client, cfg.SessionTTL)
}

func provideMailer(logger *slog.Logger) service.Mailer {
	return service.NewLogMailer(logger)
}

func provideAuthService(
	users *repository.UserRepository,
	tokens *repository.PasswordResetTokenRepository,
	clients *repository.ClientRepository,
	employees *repository.EmployeeRepository,
	mailer service.Mailer,
	logger *slog.Logger,
	cfg *config.Config,
) *service.AuthService {
	return service.NewAuthService(users, tokens, clients, employees, mailer, logger, cfg.BaseURL, cfg.ResetTokenTTL)
}

func provideAttendanceService(
	records *repository.AttendanceRepository,
	employees *repository.EmployeeRepository,
	cfg *config.Config,
) *service.AttendanceService {
	return service.NewAttendanceService(records, employees, cfg.WorkshopLocation())
}

func provideAssistantService(client redis.UniversalClient, logger *slog.Logger, cfg *config.Config) *service.AssistantService {
	return service.NewAssistantService(client, logger, cfg.ChatMinSpacing)
}

func provideHandlers(
	auth *handler.AuthHandler,
	attendance *handler.AttendanceHandler,
	clients *handler.ClientHandler,
	vehicles *handler.VehicleHandler,
	employees *handler.EmployeeHandler,
	diagnostics *handler.DiagnosticHandler,
	billing *handler.BillingHandler,
	tasks *handler.TaskHandler,
	reports *handler.ReportHandler,
	chat *handler.ChatHandler,
) app.Handlers {
	return app.Handlers{
		Auth:        auth,
		Attendance:  attendance,
		Clients:     clients,
		Vehicles:    vehicles,
		Employees:   employees,
		Diagnostics: diagnostics,
		Billing:     billing,
		Tasks:       tasks,
		Reports:     reports,
		Chat:        chat,
	}
}

func provideServer(cfg *config.Config, handlers app.Handlers, loader *middleware.SessionLoader, gate *middleware.Gate) *http.Server {
	return &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: app.NewRouter(handlers, loader, gate),
	}
}

// MigrationRunner applies the schema and synchronizes seed data.
type MigrationRunner struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewMigrationRunner(db *gorm.DB, logger *slog.Logger) *MigrationRunner {
	return &MigrationRunner{db: db, logger: logger}
}

func (m *MigrationRunner) Run() error {
	if err := database.Migrate(m.db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	report, err := database.SeedSync(m.db)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	m.logger.Info("migration complete",
		slog.Int("roles_created", report.CreatedRoles),
		slog.Int("brands_created", report.CreatedBrands),
		slog.Int("models_created", report.CreatedModels),
		slog.Bool("noop", report.Noop),
	)
	return nil
}
