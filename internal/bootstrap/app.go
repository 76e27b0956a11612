package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/locvowork/empdept/internal/config"
	"github.com/locvowork/empdept/internal/database"
	"github.com/locvowork/empdept/internal/domain"
	"github.com/locvowork/empdept/internal/fixture"
	"github.com/locvowork/empdept/internal/handler"
	"github.com/locvowork/empdept/internal/logger"
	"github.com/locvowork/empdept/internal/repository"
	"github.com/locvowork/empdept/internal/service"
)

type App struct {
	Echo    *echo.Echo
	DB      *sql.DB
	Service *service.EmployeeService
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

// LoadConfig reads the environment and initializes logging.
func (a *App) LoadConfig(ctx context.Context) error {
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")
	return nil
}

// InitializeData loads the configuration and the dataset, then builds the
// report service on top of it.
func (a *App) InitializeData(ctx context.Context) error {
	if err := a.LoadConfig(ctx); err != nil {
		return err
	}

	ds, err := a.LoadDataset(ctx)
	if err != nil {
		return err
	}
	a.Service = service.NewEmployeeService(ds)
	return nil
}

// Initialize prepares the HTTP server.
func (a *App) Initialize(ctx context.Context) error {
	if err := a.InitializeData(ctx); err != nil {
		return err
	}

	reportHandler := handler.NewReportHandler(a.Service)
	datasetHandler := handler.NewDatasetHandler(a.Service)

	a.RegisterMiddlewares()
	a.RegisterRoutes(reportHandler, datasetHandler)
	return nil
}

// LoadDataset reads the dataset from the configured DATA_SOURCE.
func (a *App) LoadDataset(ctx context.Context) (*domain.Dataset, error) {
	cfg := config.DefaultEnvConfig

	switch cfg.DATA_SOURCE {
	case config.DataSourceFixture:
		if cfg.FIXTURE_PATH == "" {
			logger.InfoLog(ctx, "Using embedded fixture dataset")
			return fixture.Default(), nil
		}
		ds, err := fixture.LoadFile(cfg.FIXTURE_PATH)
		if err != nil {
			return nil, fmt.Errorf("failed to load fixture %s: %w", cfg.FIXTURE_PATH, err)
		}
		logger.InfoLog(ctx, "Loaded fixture dataset from %s", cfg.FIXTURE_PATH)
		return ds, nil

	case config.DataSourcePostgres:
		db, err := a.OpenDB(ctx)
		if err != nil {
			return nil, err
		}
		ds, err := repository.NewDatasetRepository(db).Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load dataset from database: %w", err)
		}
		logger.InfoLog(ctx, "Loaded %d employees from database", len(ds.Emps()))
		return ds, nil

	default:
		return nil, fmt.Errorf("unknown DATA_SOURCE %q", cfg.DATA_SOURCE)
	}
}

// OpenDB connects to Postgres with the configured settings and keeps the pool on the App.
func (a *App) OpenDB(ctx context.Context) (*sql.DB, error) {
	if a.DB != nil {
		return a.DB, nil
	}

	cfg := config.DefaultEnvConfig
	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:            cfg.DB_HOST,
		Port:            cfg.DB_PORT,
		User:            cfg.DB_USER,
		Password:        cfg.DB_PASSWORD,
		DBName:          cfg.DB_NAME,
		SSLMode:         cfg.DB_SSL_MODE,
		MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.InfoLog(ctx, "Database connection established successfully")
	a.DB = db
	return db, nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(reportHandler *handler.ReportHandler, datasetHandler *handler.DatasetHandler) {
	reports := a.Echo.Group("/reports")
	reports.GET("", reportHandler.ListHandler)
	reports.GET("/:name", reportHandler.RunHandler)
	reports.GET("/:name/export", reportHandler.ExportHandler)

	a.Echo.GET("/employees", datasetHandler.EmployeesHandler)
	a.Echo.GET("/departments", datasetHandler.DepartmentsHandler)
	a.Echo.GET("/salgrades", datasetHandler.SalgradesHandler)
}

func (a *App) Run() error {
	defer a.Close()
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}

// Close releases the database pool, if one was opened.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
