package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/onikukiraii/josan-roster/internal/config"
	"github.com/onikukiraii/josan-roster/internal/logging"
	"github.com/onikukiraii/josan-roster/internal/store"
)

// App holds the dependencies every subcommand needs, wired once in
// PersistentPreRunE the way the teacher's CLI wires its App struct.
type App struct {
	cfg         *config.Config
	db          *store.DB
	redisClient *redis.Client
	store       *store.Store
	lock        *store.GenerationLock
	logger      *zap.Logger
	ctx         context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "Monthly nurse shift roster generator",
		Long:  `Generates, diagnoses, and edits monthly nurse shift rosters using a CP-SAT constraint solver.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app == nil {
				return
			}
			if app.logger != nil {
				app.logger.Sync()
			}
			if app.db != nil {
				app.db.Close()
			}
			if app.redisClient != nil {
				app.redisClient.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: dev, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(editCmd())
	rootCmd.AddCommand(diagnoseCmd())
	rootCmd.AddCommand(fillTreatmentRoomCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and storage connections.
func initApp() error {
	var err error
	app = &App{ctx: context.Background()}

	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.logger, err = logging.Init(env, logging.LevelFromString(app.cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.logger.Info("starting roster cli", zap.String("environment", env))
	app.logger.Debug("configuration loaded", zap.String("logLevel", app.cfg.LogLevel))

	app.db, err = store.NewDB(app.ctx, app.cfg.DatabaseDSN, app.logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := app.db.RunMigrations(app.ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	opts, err := redis.ParseURL(app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to parse redis url: %w", err)
	}
	app.redisClient = redis.NewClient(opts)

	app.store = store.NewStore(app.db, app.cfg.PediatricDoctorRule)
	app.lock = store.NewGenerationLock(app.redisClient, 0)

	return nil
}
