package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/applications"
	googleauth "recruit-backend/internal/auth"
	"recruit-backend/internal/candidates"
	"recruit-backend/internal/extract"
	"recruit-backend/internal/files"
	"recruit-backend/internal/jobs"
	"recruit-backend/internal/mailer"
	"recruit-backend/internal/shared/config"
	"recruit-backend/internal/shared/server"
	"recruit-backend/internal/shared/storage/db"
	"recruit-backend/internal/shared/storage/object"
	localstore "recruit-backend/internal/shared/storage/object/local"
	s3store "recruit-backend/internal/shared/storage/object/s3"
	"recruit-backend/internal/submissions"
	"recruit-backend/internal/tenants"
)

// App holds the fully wired application.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.Store
	Mailer mailer.Sender

	TenantRepo       tenants.Repo
	JobsRepo         jobs.Repo
	CandidatesRepo   candidates.Repo
	ApplicationsRepo applications.Repo

	FilesService       *files.Service
	SubmissionsService *submissions.Service

	FilesHandler       *files.Handler
	SubmissionsHandler *submissions.Handler
	GoogleAuth         *googleauth.GoogleService
}

// Build constructs every dependency explicitly and wires the router. There is
// no lazy or global state: anything a handler needs is created here and
// passed down.
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

	sender, err := buildMailer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Mailer: sender,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             app.Config,
		TenantRepo:         app.TenantRepo,
		FilesHandler:       app.FilesHandler,
		SubmissionsHandler: app.SubmissionsHandler,
		GoogleAuth:         app.GoogleAuth,
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
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			sqlDB.Close()
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.ResumeStoreDir), nil
	}
}

func buildMailer(ctx context.Context, cfg config.Config) (mailer.Sender, error) {
	if strings.TrimSpace(cfg.MailFrom) == "" || strings.TrimSpace(cfg.AWSRegion) == "" {
		log.Printf("bootstrap: mail not configured; confirmation emails will only be logged")
		return mailer.LogSender{}, nil
	}
	return mailer.NewSESSender(ctx, cfg.AWSRegion, cfg.MailFrom)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.TenantRepo = &tenants.PGRepo{DB: app.DB}
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.CandidatesRepo = &candidates.PGRepo{DB: app.DB}
		app.ApplicationsRepo = &applications.PGRepo{DB: app.DB}
	} else {
		app.TenantRepo = tenants.NewMemoryRepo()
		app.JobsRepo = jobs.NewMemoryRepo()
		app.CandidatesRepo = candidates.NewMemoryRepo()
		app.ApplicationsRepo = applications.NewMemoryRepo()
	}

	extractor := extract.New(app.Store)

	app.FilesService = &files.Service{
		Store:      app.Store,
		Apps:       app.ApplicationsRepo,
		Candidates: app.CandidatesRepo,
		Extractor:  extractor,
	}

	app.SubmissionsService = &submissions.Service{
		Jobs:       app.JobsRepo,
		Candidates: app.CandidatesRepo,
		Apps:       app.ApplicationsRepo,
		Files:      app.FilesService,
		Mailer:     app.Mailer,
	}

	app.FilesHandler = files.NewHandler(app.FilesService)
	app.SubmissionsHandler = submissions.NewHandler(app.SubmissionsService)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.CandidatesRepo,
	)
}
