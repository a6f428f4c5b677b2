package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upPostsPositionIndex, downPostsPositionIndex)
}

func upPostsPositionIndex(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE INDEX posts_position_idx ON posts (position);`)
	return err
}

func downPostsPositionIndex(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP INDEX posts_position_idx;`)
	return err
}
