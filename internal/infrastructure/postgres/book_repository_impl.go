package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nareswara/libris/internal/domain/entity"
	"github.com/nareswara/libris/internal/domain/repository"
)

type BookRepository struct {
	pool *pgxpool.Pool
}

func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

func (r *BookRepository) Create(ctx context.Context, b *entity.Book) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO books (title, author, year)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, b.Title, b.Author, b.Year)

	if err := row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *BookRepository) GetByID(ctx context.Context, id string) (*entity.Book, error) {
	b := &entity.Book{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, author, year, created_at, updated_at
		FROM books
		WHERE id = $1
	`, id)

	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Year,
		&b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, mapError(err)
	}

	return b, nil
}

func (r *BookRepository) Update(ctx context.Context, b *entity.Book) error {
	b.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE books
		SET title = $1, author = $2, year = $3, updated_at = $4
		WHERE id = $5
	`, b.Title, b.Author, b.Year, b.UpdatedAt, b.ID)
	if err != nil {
		return mapError(err)
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BookRepository) List(ctx context.Context, q repository.BookListQuery) ([]*entity.Book, error) {
	var (
		sql  string
		args []any
	)
	if q.Search != "" {
		sql = `
			SELECT id, title, author, year, created_at, updated_at
			FROM books
			WHERE title ILIKE $1 OR author ILIKE $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3
		`
		args = []any{likePattern(q.Search), q.Limit, q.Offset}
	} else {
		sql = `
			SELECT id, title, author, year, created_at, updated_at
			FROM books
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2
		`
		args = []any{q.Limit, q.Offset}
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	books := make([]*entity.Book, 0)
	for rows.Next() {
		b := &entity.Book{}
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *BookRepository) Count(ctx context.Context, search string) (int64, error) {
	var total int64
	if search == "" {
		err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&total)
		return total, mapError(err)
	}
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM books
		WHERE title ILIKE $1 OR author ILIKE $1
	`, likePattern(search)).Scan(&total)
	return total, mapError(err)
}

// likePattern wraps the search term for an unanchored ILIKE match, escaping
// the LIKE metacharacters so they match literally.
func likePattern(search string) string {
	esc := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(search)
	return "%" + esc + "%"
}

var _ repository.BookRepository = (*BookRepository)(nil)
