package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/voblako/voblako/internal/config"
	"github.com/voblako/voblako/internal/db"
	"github.com/voblako/voblako/internal/repository"
	"github.com/voblako/voblako/internal/seed"
	"github.com/voblako/voblako/internal/service"
	"github.com/voblako/voblako/internal/storage"
	"github.com/voblako/voblako/internal/storagetree"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	AuthService    *service.AuthService
	FileService    *service.FileService
	StorageService *service.StorageService
}

func New(cfg *config.Config) (*App, error) {
	// Remote mode never touches local state
	if cfg.IsRemote() {
		return &App{Cfg: cfg}, nil
	}

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	fileRepository := repository.NewFileRepository(database)
	userRepository := repository.NewUserRepository(database)

	// Content storage
	contentStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Seeding is explicit and happens once, at construction
	err = seed.ApplyFiles(fileRepository, contentStorage)
	if err != nil {
		return nil, fmt.Errorf("failed to seed files: %v", err)
	}
	err = seed.ApplyUsers(userRepository)
	if err != nil {
		return nil, fmt.Errorf("failed to seed users: %v", err)
	}

	// Services
	authService := service.NewAuthService(userRepository, cfg.SessionSecret, cfg.SessionMaxAge, cfg.IsProduction())
	fileService := service.NewFileService(fileRepository, contentStorage)
	storageService := service.NewStorageService(storagetree.Default(), fileRepository)

	return &App{
		Cfg:            cfg,
		DB:             database,
		AuthService:    authService,
		FileService:    fileService,
		StorageService: storageService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
