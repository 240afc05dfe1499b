package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chidung091/hr-scanning-sub001/internal/admins"
	"github.com/chidung091/hr-scanning-sub001/internal/criteria"
	"github.com/chidung091/hr-scanning-sub001/internal/evaluations"
	"github.com/chidung091/hr-scanning-sub001/internal/jobs"
	"github.com/chidung091/hr-scanning-sub001/internal/questionnaire"
	"github.com/chidung091/hr-scanning-sub001/internal/scoring"
	scoringopenai "github.com/chidung091/hr-scanning-sub001/internal/scoring/openai"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/config"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/server"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/storage/db"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/storage/object"
	localstore "github.com/chidung091/hr-scanning-sub001/internal/shared/storage/object/local"
	s3store "github.com/chidung091/hr-scanning-sub001/internal/shared/storage/object/s3"
	"github.com/chidung091/hr-scanning-sub001/internal/submissions"
)

// App holds shared dependencies built from configuration.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Scorer scoring.Client

	JobsRepo          jobs.Repo
	SubmissionsRepo   submissions.Repo
	QuestionnaireRepo questionnaire.Repo
	CriteriaRepo      criteria.Repo
	EvaluationsRepo   evaluations.Repo
	AdminsRepo        admins.Repo

	JobsService          *jobs.Service
	SubmissionsService   *submissions.Service
	QuestionnaireService *questionnaire.Service
	CriteriaService      *criteria.Service
	EvaluationsService   *evaluations.Service
	AdminsService        *admins.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if cfg.Env == "production" && strings.TrimSpace(cfg.SessionSecret) == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required in production")
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
		Scorer: buildScorer(cfg),
	}
	app.buildServices()

	app.Router = server.NewRouter(server.RouterDeps{
		Config:               cfg,
		AdminVerifier:        app.AdminsService,
		JobsHandler:          &jobs.Handler{Service: app.JobsService},
		SubmissionsHandler:   &submissions.Handler{Service: app.SubmissionsService},
		QuestionnaireHandler: &questionnaire.Handler{Service: app.QuestionnaireService},
		CriteriaHandler:      criteria.NewHandler(app.CriteriaService),
		EvaluationsHandler:   &evaluations.Handler{Service: app.EvaluationsService},
		AdminsHandler: &admins.Handler{
			Service:      app.AdminsService,
			CookieMaxAge: int(cfg.SessionTTL / time.Second),
			SecureCookie: cfg.Env == "production",
		},
	})

	return app, nil
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
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
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
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildScorer(cfg config.Config) scoring.Client {
	if strings.TrimSpace(cfg.ScoringAPIKey) == "" {
		log.Printf("bootstrap: SCORING_API_KEY empty; scoring degraded to not-configured")
		return scoring.NotConfigured{}
	}
	return scoringopenai.New(cfg.ScoringAPIKey, cfg.ScoringBaseURL, cfg.ScoringModel, cfg.ScoringTimeout)
}

func (app *App) buildServices() {
	if app.DB != nil {
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.SubmissionsRepo = &submissions.PGRepo{DB: app.DB}
		app.QuestionnaireRepo = &questionnaire.PGRepo{DB: app.DB}
		app.CriteriaRepo = &criteria.PGRepo{DB: app.DB}
		app.EvaluationsRepo = &evaluations.PGRepo{DB: app.DB}
		app.AdminsRepo = &admins.PGRepo{DB: app.DB}
	} else {
		app.JobsRepo = jobs.NewMemoryRepo()
		app.SubmissionsRepo = submissions.NewMemoryRepo()
		app.QuestionnaireRepo = questionnaire.NewMemoryRepo()
		app.CriteriaRepo = criteria.NewMemoryRepo()
		app.EvaluationsRepo = evaluations.NewMemoryRepo()
		app.AdminsRepo = admins.NewMemoryRepo()
	}

	app.JobsService = &jobs.Service{Repo: app.JobsRepo}
	app.SubmissionsService = &submissions.Service{
		Store:   app.Store,
		Repo:    app.SubmissionsRepo,
		JobRepo: app.JobsRepo,
	}
	app.QuestionnaireService = &questionnaire.Service{
		Repo:           app.QuestionnaireRepo,
		SubmissionRepo: app.SubmissionsRepo,
		TotalQuestions: app.Config.TotalQuestions,
	}
	app.CriteriaService = &criteria.Service{Repo: app.CriteriaRepo}
	app.EvaluationsService = &evaluations.Service{
		Repo:              app.EvaluationsRepo,
		SubmissionRepo:    app.SubmissionsRepo,
		JobRepo:           app.JobsRepo,
		CriteriaRepo:      app.CriteriaRepo,
		QuestionnaireRepo: app.QuestionnaireRepo,
		Scorer:            app.Scorer,
	}
	app.AdminsService = &admins.Service{Repo: app.AdminsRepo}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
