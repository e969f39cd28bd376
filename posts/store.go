package posts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store errors.
var (
	ErrPostNotFound   = errors.New("post not found")
	ErrNotAuthor      = errors.New("requester is not the post's author")
	ErrAuthorNotFound = errors.New("author does not exist")
)

// pgForeignKeyViolation is the PostgreSQL error code for a failed REFERENCES check.
const pgForeignKeyViolation = "23503"

// Store persists posts. Lists are ordered newest first.
type Store interface {
	List(ctx context.Context) ([]Post, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]Post, error)
	Get(ctx context.Context, id uuid.UUID) (*Post, error)
	Create(ctx context.Context, authorID uuid.UUID, content string) (*Post, error)
	// DeleteOwned removes the post only if authorID wrote it.
	DeleteOwned(ctx context.Context, id, authorID uuid.UUID) error
}

const selectPosts = `
	SELECT p.id, p.content, p.likes::text[], p.created_at, p.updated_at,
	       u.id, u.name, u.email, u.bio
	FROM posts p
	JOIN users u ON u.id = p.author_id`

// PostgresStore is the Store backed by the `posts` table.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore returns a store using pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: pool}
}

func (s *PostgresStore) List(ctx context.Context) ([]Post, error) {
	return s.query(ctx, selectPosts+` ORDER BY p.created_at DESC, p.id`)
}

func (s *PostgresStore) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]Post, error) {
	return s.query(ctx, selectPosts+` WHERE p.author_id = $1 ORDER BY p.created_at DESC, p.id`, authorID)
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Post, error) {
	return getPost(ctx, s.db, id)
}

// Create inserts the post and reads it back with its author in one
// transaction.
func (s *PostgresStore) Create(ctx context.Context, authorID uuid.UUID, content string) (*Post, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after Commit

	id := uuid.New()
	_, err = tx.Exec(ctx, `INSERT INTO posts (id, content, author_id) VALUES ($1, $2, $3)`, id, content, authorID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, ErrAuthorNotFound
		}
		return nil, fmt.Errorf("insert post: %w", err)
	}

	post, err := getPost(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return post, nil
}

// DeleteOwned locks the row, checks the author and deletes it.
func (s *PostgresStore) DeleteOwned(ctx context.Context, id, authorID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var owner uuid.UUID
	err = tx.QueryRow(ctx, `SELECT author_id FROM posts WHERE id = $1 FOR UPDATE`, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPostNotFound
		}
		return fmt.Errorf("select post owner: %w", err)
	}
	if owner != authorID {
		return ErrNotAuthor
	}

	if _, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getPost(ctx context.Context, q querier, id uuid.UUID) (*Post, error) {
	post, err := scanPost(q.QueryRow(ctx, selectPosts+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("select post: %w", err)
	}
	return post, nil
}

func (s *PostgresStore) query(ctx context.Context, sql string, args ...any) ([]Post, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := make([]Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

func scanPost(row pgx.Row) (*Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.Content, &p.Likes, &p.CreatedAt, &p.UpdatedAt,
		&p.Author.ID, &p.Author.Name, &p.Author.Email, &p.Author.Bio)
	if err != nil {
		return nil, err
	}
	if p.Likes == nil {
		p.Likes = []string{}
	}
	return &p, nil
}
