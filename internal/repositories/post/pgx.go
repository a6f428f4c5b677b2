package post

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/tweet-gallery/internal/domain"
	"github.com/orgball2608/tweet-gallery/internal/repositories"
	"github.com/orgball2608/tweet-gallery/pkg/logger"
)

const table = "posts"

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("PostRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) List(ctx context.Context) ([]domain.Post, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "avatar", "username", "handle", "content", "media", "is_video", "possibly_sensitive").
		From(table).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var (
			post      domain.Post
			sensitive bool
		)
		if err := rows.Scan(&post.ID, &post.Avatar, &post.Username, &post.Handle, &post.Content,
			&post.Media, &post.IsVideo, &sensitive); err != nil {
			return nil, err
		}
		post.Sensitive = domain.Sensitive(sensitive)
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (p *Pgx) ReplaceAll(ctx context.Context, posts []domain.Post) (int64, error) {
	tx, err := p.pg.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	del := repositories.SqBuilder.Delete(table)
	if len(posts) > 0 {
		del = del.Where(sq.NotEq{"id": domain.IDs(posts)})
	}
	query, args, err := del.ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}
	result, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	removed := result.RowsAffected()

	now := time.Now()
	for i, post := range posts {
		query, args, err := repositories.SqBuilder.
			Insert(table).
			Columns("id", "position", "avatar", "username", "handle", "content", "media", "is_video",
				"possibly_sensitive", "updated_at").
			Values(post.ID, i, post.Avatar, post.Username, post.Handle, post.Content, post.Media, post.IsVideo,
				bool(post.Sensitive), now).
			Suffix(`ON CONFLICT (id) DO UPDATE SET
				position = EXCLUDED.position,
				avatar = EXCLUDED.avatar,
				username = EXCLUDED.username,
				handle = EXCLUDED.handle,
				content = EXCLUDED.content,
				media = EXCLUDED.media,
				is_video = EXCLUDED.is_video,
				possibly_sensitive = EXCLUDED.possibly_sensitive,
				updated_at = EXCLUDED.updated_at`).
			ToSql()
		if err != nil {
			return 0, repositories.ErrBadQuery
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("failed to upsert post %s: %w", post.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	p.logger.Info("Posts table replaced", "count", len(posts), "removed", removed)
	return removed, nil
}
