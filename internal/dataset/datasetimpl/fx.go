package datasetimpl

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	"github.com/orgball2608/tweet-gallery/internal/dataset"
	_ "github.com/orgball2608/tweet-gallery/internal/migrations"
	"github.com/orgball2608/tweet-gallery/internal/repositories/post"
	"github.com/orgball2608/tweet-gallery/pkg/config"
	"github.com/orgball2608/tweet-gallery/pkg/logger"
	"github.com/orgball2608/tweet-gallery/pkg/pgx"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
)

const (
	DriverFile     = "file"
	DriverHTTP     = "http"
	DriverPostgres = "postgres"
)

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Logger logger.Logger
}

// New picks the dataset source configured by GALLERY_DATASET_DRIVER. The
// postgres pool is only opened when that driver is selected.
func New(opts Opts) (dataset.Fetcher, error) {
	switch opts.Config.Gallery.DatasetDriver {
	case "", DriverFile:
		return NewFile(opts.Config.Gallery.DatasetPath, opts.Logger), nil
	case DriverHTTP:
		if opts.Config.Gallery.DatasetURL == "" {
			return nil, fmt.Errorf("GALLERY_DATASET_URL is required for the %q driver", DriverHTTP)
		}
		return NewHTTP(opts.Config.Gallery.DatasetURL, nil, opts.Logger), nil
	case DriverPostgres:
		if err := migrate(opts.Config); err != nil {
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		pool, err := pgx.New(pgx.Opts{LC: opts.LC, Logger: opts.Logger, Config: opts.Config})
		if err != nil {
			return nil, err
		}
		return NewPostgres(post.NewPgx(pool, opts.Logger)), nil
	default:
		return nil, fmt.Errorf("unknown dataset driver %q", opts.Config.Gallery.DatasetDriver)
	}
}

// migrate brings the posts table up to date before the pool is used.
func migrate(c *config.Config) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db, err := sql.Open("postgres", c.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	return goose.Up(db, filepath.Join(wd, "internal", "migrations"))
}

var Module = fx.Provide(New)
