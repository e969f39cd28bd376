// Command minilinkedin runs the Mini LinkedIn API server and manages its
// database schema.
//
// @title Mini LinkedIn API
// @version 1.0
// @description Registration, login, posts and profiles for the Mini LinkedIn frontend.
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/user/minilinkedin-go/auth"
	"github.com/user/minilinkedin-go/config"
	"github.com/user/minilinkedin-go/db"
	"github.com/user/minilinkedin-go/logging"
	"github.com/user/minilinkedin-go/posts"
	"github.com/user/minilinkedin-go/server"
	"github.com/user/minilinkedin-go/users"
	"github.com/user/minilinkedin-go/validation"
)

func main() {
	bootLogger := logging.New("info", false)

	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil {
		bootLogger.Debug().Err(err).Msg(".env file not loaded")
	}

	app := &cli.App{
		Name:           "minilinkedin",
		Usage:          "Mini LinkedIn API server",
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the HTTP server",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "migrate",
						Usage: "apply pending migrations before serving",
					},
				},
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "manage the database schema",
				Subcommands: []*cli.Command{
					{
						Name:  "up",
						Usage: "apply all pending migrations",
						Action: func(cCtx *cli.Context) error {
							return migrate(db.Up)
						},
					},
					{
						Name:  "down",
						Usage: "revert all migrations",
						Action: func(cCtx *cli.Context) error {
							return migrate(db.Down)
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		bootLogger.Fatal().Err(err).Msg("minilinkedin failed")
	}
}

// loadConfig reads the configuration and builds the logger it describes.
func loadConfig() (*config.AppConfig, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, logging.New(cfg.Log.Level, cfg.Log.Pretty), nil
}

func migrate(dir db.Direction) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	return db.RunMigrations(cfg.DB.DSN(), dir, logger)
}

func serve(cCtx *cli.Context) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cCtx.Bool("migrate") {
		if err := db.RunMigrations(cfg.DB.DSN(), db.Up, logger); err != nil {
			return err
		}
	}

	pool, err := db.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)
	if err != nil {
		return err
	}
	validate := validation.New()
	userStore := auth.NewPostgresStore(pool)

	authService := auth.NewService(userStore, auth.NewBcryptHasher(cfg.Auth.BcryptCost), tokens)
	postService := posts.NewPostService(posts.NewPostgresStore(pool))
	userService := users.NewUserService(userStore)

	router := server.NewRouter(server.Deps{
		Logger:      logger,
		FrontendURL: cfg.Server.FrontendURL,
		Tokens:      tokens,
		Auth:        auth.NewHandlers(authService, validate),
		Posts:       posts.NewPostHandler(postService, validate),
		Users:       users.NewUserHandlers(userService),
	})

	return server.Run(ctx, ":"+cfg.Server.Port, router, logger)
}

