package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/dashboard/pkg/config"
	"github.com/de-tools/dashboard/pkg/server"
	"github.com/de-tools/dashboard/pkg/services/auth"
	"github.com/de-tools/dashboard/pkg/services/logo"
	"github.com/de-tools/dashboard/pkg/services/reports"
	"github.com/de-tools/dashboard/pkg/store/assets"
	"github.com/de-tools/dashboard/pkg/store/docstore"
	reportstore "github.com/de-tools/dashboard/pkg/store/reports"
	"github.com/de-tools/dashboard/pkg/store/settings"
	"github.com/de-tools/dashboard/pkg/store/sqlite"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the dashboard web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the dashboard.yaml file (default is ./dashboard.yaml when present)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for a users.ini password_hash entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newLogger(cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level: %w", err)
	}

	logger := zerolog.New(os.Stdout)
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return logger.Level(level).With().Timestamp().Logger(), nil
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	ctx := logger.WithContext(cmd.Context())

	backend, err := newDocumentBackend(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	locks := docstore.NewLocker()

	reportStore, err := reportstore.NewStore(backend, locks)
	if err != nil {
		return fmt.Errorf("failed to create report store: %w", err)
	}
	settingsStore, err := settings.NewStore(backend, locks)
	if err != nil {
		return fmt.Errorf("failed to create settings store: %w", err)
	}

	assetStore, err := newAssetStore(ctx, cfg.Assets)
	if err != nil {
		return err
	}

	authService, err := newAuthService(ctx, cfg.Auth)
	if err != nil {
		return err
	}

	logger.Info().
		Str("storage", cfg.Storage.Driver).
		Str("assets", cfg.Assets.Driver).
		Msg("configuration loaded")

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MaxUploadBytes:  cfg.Server.MaxUploadBytes,
		Dependencies: server.Dependencies{
			Reports: reports.NewService(reportStore, reports.NewTimeIDGenerator()),
			Logo:    logo.NewService(settingsStore, assetStore),
			Assets:  assetStore,
			Auth:    authService,
		},
	})

	return api.Start()
}

func newDocumentBackend(ctx context.Context, cfg config.StorageConfig) (docstore.Backend, error) {
	switch cfg.Driver {
	case config.StorageSQLite:
		db, err := sqlite.NewDB(ctx, sqlite.Settings{DbPath: cfg.SQLitePath})
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite instance: %w", err)
		}
		return sqlite.NewDocumentBackend(db)
	case config.StorageMemory:
		zerolog.Ctx(ctx).Warn().Msg("using in-memory storage, data is lost on exit")
		return docstore.NewMemoryBackend(), nil
	default:
		backend, err := docstore.NewFileBackend(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		return backend, nil
	}
}

func newAssetStore(ctx context.Context, cfg config.AssetsConfig) (assets.Store, error) {
	if cfg.Driver != config.AssetsS3 {
		store, err := assets.NewLocalStore(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to create asset directory: %w", err)
		}
		return store, nil
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.S3.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.S3.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return assets.NewS3Store(s3.NewFromConfig(awsCfg), cfg.S3.Bucket, cfg.S3.Prefix)
}

func newAuthService(ctx context.Context, cfg config.AuthConfig) (auth.Service, error) {
	logger := zerolog.Ctx(ctx)

	var registry auth.Registry
	if _, err := os.Stat(cfg.UsersFile); errors.Is(err, os.ErrNotExist) {
		logger.Warn().Str("path", cfg.UsersFile).Msg("users file not found, every login will be rejected")
		registry, err = auth.NewRegistryFromBytes(nil)
		if err != nil {
			return nil, err
		}
	} else {
		registry, err = auth.NewRegistry(cfg.UsersFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load users file: %w", err)
		}
		users, _ := registry.GetUsers(ctx)
		logger.Info().Str("path", cfg.UsersFile).Msgf("loaded admins: %s", strings.Join(users, ", "))
	}

	secret := cfg.Secret
	if secret == "" {
		logger.Warn().Msg("auth.secret not set, tokens will not survive a restart")
		secret = uuid.NewString() + uuid.NewString()
	}
	issuer, err := auth.NewIssuer(secret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}

	return auth.NewService(registry, issuer), nil
}
