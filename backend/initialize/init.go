package initialize

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"inkpost/backend/app/controllers"
	"inkpost/backend/app/db"
	jwtutil "inkpost/backend/app/jwt"
	"inkpost/backend/app/middleware"
	"inkpost/backend/app/repo"
	"inkpost/backend/app/services"
	"inkpost/backend/config"
	"inkpost/backend/global"
	"inkpost/backend/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg      *config.Config
	DB       *gorm.DB
	Rdb      *redis.Client
	Router   http.Handler
	Signer   *jwtutil.Signer
	Users    *services.UserService
	Posts    *services.PostService
	Comments *services.CommentService
}

// Build loads the config at configPath and wires the application.
func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	SetupLogger(cfg.Production(), cfg.LogLevel, nil)
	if err := config.Watch(configPath, func(next *config.Config) {
		SetLogLevel(next.LogLevel)
		global.Logger.Info().Str("level", next.LogLevel).Msg("config reloaded")
	}, func(err error) {
		global.Logger.Error().Err(err).Msg("config reload rejected")
	}); err != nil {
		return nil, err
	}
	return New(cfg)
}

// New wires the application from an already loaded config.
func New(cfg *config.Config) (*App, error) {
	// Connect DB
	gdb, err := db.Connect(db.Config{
		Driver: cfg.DB.Driver, Host: cfg.DB.Host, Port: cfg.DB.Port,
		User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name, Path: cfg.DB.Path,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	// Migrate
	if err := db.Migrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	var rdb *redis.Client
	throttle := services.NoThrottle
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		throttle = services.NewRedisThrottle(rdb, cfg.Login.MaxFailures, cfg.Login.Window)
	} else {
		global.Logger.Info().Msg("redis.addr not set, log-in throttling disabled")
	}

	// Services
	userRepo := repo.NewUserRepository(gdb)
	postRepo := repo.NewPostRepository(gdb)
	commentRepo := repo.NewCommentRepository(gdb)
	userSvc := services.NewUserService(userRepo, services.PasswordHasher{Cost: cfg.BcryptCost}, throttle)
	postSvc := services.NewPostService(postRepo, commentRepo)
	commentSvc := services.NewCommentService(commentRepo, postRepo)

	// Controllers
	render := controllers.Renderer{Production: cfg.Production()}
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	sessions := &controllers.Sessions{
		Signer:     signer,
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Production(),
		SameSite:   cfg.SameSite(),
	}
	mw := &middleware.Auth{Signer: signer, CookieName: cfg.Session.CookieName, WriteError: render.Error}

	// Router
	h := router.NewRouter(router.Controllers{
		HTTP:     controllers.NewHTTPController(gdb, render),
		Auth:     controllers.NewAuthController(userSvc, sessions, render),
		Posts:    controllers.NewPostController(postSvc, render),
		Comments: controllers.NewCommentController(commentSvc, render),
		Profiles: controllers.NewProfileController(userSvc, postSvc, commentSvc, sessions, render),
	}, mw)
	h = middleware.Recover(render.Error)(h)
	h = middleware.CORS(cfg.CORSOrigins)(h)
	// Wrap with logging middleware
	h = middleware.Logging(h)

	return &App{
		Cfg: cfg, DB: gdb, Rdb: rdb, Router: h, Signer: signer,
		Users: userSvc, Posts: postSvc, Comments: commentSvc,
	}, nil
}

// Close releases the database and redis connections.
func (a *App) Close() error {
	var errs []error
	if a.Rdb != nil {
		errs = append(errs, a.Rdb.Close())
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	} else {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
