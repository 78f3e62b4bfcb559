package application

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/nareswara/libris/internal/domain/entity"
	repo "github.com/nareswara/libris/internal/domain/repository"
)

const (
	DefaultPage  = 1
	DefaultLimit = 5
)

// CatalogService implements paginated listing and CRUD over the book catalog.
type CatalogService struct {
	Books  repo.BookRepository
	Logger *logrus.Logger
}

func NewCatalogService(books repo.BookRepository, logger *logrus.Logger) *CatalogService {
	return &CatalogService{Books: books, Logger: logger}
}

type ListParams struct {
	Page   int
	Limit  int
	Search string
}

// ParseListParams coerces raw query values. Absent, non-numeric or
// non-positive values silently fall back to the defaults.
func ParseListParams(page, limit, search string) ListParams {
	p, err := strconv.Atoi(page)
	if err != nil || p < 1 {
		p = DefaultPage
	}
	l, err := strconv.Atoi(limit)
	if err != nil || l < 1 {
		l = DefaultLimit
	}
	return ListParams{Page: p, Limit: l, Search: strings.TrimSpace(search)}
}

// BookPage is one page of catalog results plus the totals for the whole filter.
type BookPage struct {
	Items      []*entity.Book
	Page       int
	Limit      int
	TotalPages int
	TotalItems int64
}

// List returns one page of books, newest first. The page of items and the
// matching count are fetched concurrently; under concurrent writes the two
// may reflect slightly different snapshots.
func (s *CatalogService) List(ctx context.Context, p ListParams) (*BookPage, error) {
	q := repo.BookListQuery{
		Search: p.Search,
		Limit:  p.Limit,
		Offset: (p.Page - 1) * p.Limit,
	}

	var (
		items []*entity.Book
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.Books.List(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.Books.Count(gctx, p.Search)
		return err
	})
	if err := g.Wait(); err != nil {
		s.Logger.WithError(err).WithField("search", p.Search).Error("list books failed")
		return nil, ErrFetchFailed
	}

	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return &BookPage{
		Items:      items,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
		TotalItems: total,
	}, nil
}

type BookInput struct {
	Title  string
	Author string
	Year   int
}

// Create persists a new book. Year zero is rejected as missing, matching the
// contract the frontend was built against even though the schema calls year
// optional.
func (s *CatalogService) Create(ctx context.Context, in BookInput) (*entity.Book, error) {
	title := strings.TrimSpace(in.Title)
	author := strings.TrimSpace(in.Author)
	if title == "" || author == "" || in.Year == 0 {
		return nil, ErrValidation
	}

	b := &entity.Book{Title: title, Author: author, Year: in.Year}
	if err := s.Books.Create(ctx, b); err != nil {
		s.Logger.WithError(err).WithField("title", title).Error("create book failed")
		return nil, err
	}
	return b, nil
}

// BookPatch carries a partial update; nil fields are left unchanged.
type BookPatch struct {
	Title  *string
	Author *string
	Year   *int
}

// Update applies the provided fields and returns the post-update record.
// Provided fields are re-validated the way the schema validates them.
func (s *CatalogService) Update(ctx context.Context, id string, p BookPatch) (*entity.Book, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}

	b, err := s.Books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.Logger.WithError(err).WithField("book_id", id).Error("load book failed")
		return nil, err
	}

	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			return nil, ErrValidation
		}
		b.Title = t
	}
	if p.Author != nil {
		a := strings.TrimSpace(*p.Author)
		if a == "" {
			return nil, ErrValidation
		}
		b.Author = a
	}
	if p.Year != nil {
		b.Year = *p.Year
	}

	if err := s.Books.Update(ctx, b); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.Logger.WithError(err).WithField("book_id", id).Error("update book failed")
		return nil, err
	}
	return b, nil
}

// Delete removes the record outright; there is no soft delete.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	if err := s.Books.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		s.Logger.WithError(err).WithField("book_id", id).Error("delete book failed")
		return err
	}
	return nil
}
