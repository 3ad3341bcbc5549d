package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/analyses"
	"jobmatch-backend/internal/provider"
	"jobmatch-backend/internal/resumes"
	"jobmatch-backend/internal/search"
	"jobmatch-backend/internal/services/health"
	"jobmatch-backend/internal/shared/config"
	"jobmatch-backend/internal/shared/server"
	"jobmatch-backend/internal/shared/storage/db"
	"jobmatch-backend/internal/shared/storage/object"
	localstore "jobmatch-backend/internal/shared/storage/object/local"
	s3store "jobmatch-backend/internal/shared/storage/object/s3"
	"jobmatch-backend/internal/usage"
)

// janitorInterval is how often expired search tasks are swept.
const janitorInterval = time.Minute

// App holds the wired dependencies for one server process.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	Provider       provider.Provider
	SearchStore    *search.MemoryStore
	ResumesRepo    resumes.Repo
	ResumesService *resumes.Service
	SearchService  *search.Service
	ScoringService *analyses.Service
	UsageService   *usage.Service
	Health         *health.Service

	SearchHandler  *search.Handler
	ScoringHandler *analyses.Handler
	ResumeHandler  *resumes.Handler
	UsageHandler   *usage.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		SearchHandler:   app.SearchHandler,
		AnalysisHandler: app.ScoringHandler,
		ResumeHandler:   app.ResumeHandler,
		UsageHandler:    app.UsageHandler,
		Health:          app.Health,
	})

	return app, nil
}

// Close releases background resources. Safe to call once after Build.
func (a *App) Close() error {
	if a.SearchStore != nil {
		a.SearchStore.StopJanitor()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.Migrate(ctx, sqlDB); err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			sqlDB.Close()
			return nil, nil
		}
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	var resumesRepo resumes.Repo
	var usageSvc *usage.Service
	if app.DB != nil {
		resumesRepo = &resumes.PGRepo{DB: app.DB}
		usageSvc = usage.NewPostgresService(usage.NewPGStore(app.DB))
	} else {
		resumesRepo = resumes.NewMemoryRepo()
		usageSvc = usage.NewService()
	}

	jobProvider := provider.NewHTTP(provider.HTTPConfig{
		BaseURL:      app.Config.ProviderBaseURL,
		TokenURL:     app.Config.ProviderTokenURL,
		ClientID:     app.Config.ProviderClientID,
		ClientSecret: app.Config.ProviderClientSecret,
		UserAgent:    app.Config.ProviderUserAgent,
		Timeout:      app.Config.ProviderTimeout,
	})

	searchStore := search.NewMemoryStore()
	searchStore.StartJanitor(janitorInterval, search.TaskRetention)

	resumesSvc := &resumes.Service{Repo: resumesRepo, Store: app.Store}
	searchSvc := &search.Service{
		Store:    searchStore,
		Provider: jobProvider,
		Resumes:  resumesRepo,
		Usage:    usageSvc,
	}
	scoringSvc := &analyses.Service{Resumes: resumesRepo}

	app.Provider = jobProvider
	app.SearchStore = searchStore
	app.ResumesRepo = resumesRepo
	app.ResumesService = resumesSvc
	app.SearchService = searchSvc
	app.ScoringService = scoringSvc
	app.UsageService = usageSvc
	app.Health = health.NewService(app.DB, app.Store != nil, app.Config.ProviderBaseURL != "")

	app.SearchHandler = search.NewHandler(searchSvc)
	app.ScoringHandler = analyses.NewHandler(scoringSvc)
	app.ResumeHandler = resumes.NewHandler(resumesSvc)
	app.UsageHandler = usage.NewHandler(usageSvc)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
