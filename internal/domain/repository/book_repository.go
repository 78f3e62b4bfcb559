package repository

import (
	"context"

	"github.com/nareswara/libris/internal/domain/entity"
)

// BookListQuery carries the filter and window for a catalog page.
// Search is a case-insensitive substring matched against title or author.
type BookListQuery struct {
	Search string
	Limit  int
	Offset int
}

// BookRepository defines the interface for catalog store operations.
type BookRepository interface {
	Create(ctx context.Context, b *entity.Book) error
	GetByID(ctx context.Context, id string) (*entity.Book, error)
	Update(ctx context.Context, b *entity.Book) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q BookListQuery) ([]*entity.Book, error)
	Count(ctx context.Context, search string) (int64, error)
}
