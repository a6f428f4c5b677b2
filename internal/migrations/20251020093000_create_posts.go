package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreatePosts, downCreatePosts)
}

func upCreatePosts(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE posts (
		id                 VARCHAR PRIMARY KEY,
		position           INTEGER NOT NULL,
		avatar             VARCHAR NOT NULL DEFAULT '',
		username           VARCHAR NOT NULL DEFAULT '',
		handle             VARCHAR NOT NULL DEFAULT '',
		content            TEXT NOT NULL DEFAULT '',
		media              TEXT[] NOT NULL DEFAULT '{}',
		is_video           BOOLEAN NOT NULL DEFAULT FALSE,
		possibly_sensitive BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at         TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	);
	`)
	return err
}

func downCreatePosts(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE posts;`)
	return err
}
