package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/nareswara/libris/internal/application"
	"github.com/nareswara/libris/internal/domain/entity"
	repo "github.com/nareswara/libris/internal/domain/repository"
	handlers "github.com/nareswara/libris/internal/interface/http"
	"github.com/nareswara/libris/internal/interface/middleware"
	"github.com/nareswara/libris/internal/router/modules"
	"github.com/nareswara/libris/pkg/helpers"
	"github.com/nareswara/libris/pkg/validation"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[u.Email]; ok {
		return repo.ErrDuplicateKey
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeBookRepo struct {
	mu    sync.Mutex
	seq   int
	books []*entity.Book
}

func (f *fakeBookRepo) matches(b *entity.Book, search string) bool {
	if search == "" {
		return true
	}
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(b.Title), s) ||
		strings.Contains(strings.ToLower(b.Author), s)
}

func (f *fakeBookRepo) Create(_ context.Context, b *entity.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	b.ID = uuid.NewString()
	b.CreatedAt = time.Unix(int64(f.seq), 0)
	b.UpdatedAt = b.CreatedAt
	cp := *b
	f.books = append(f.books, &cp)
	return nil
}

func (f *fakeBookRepo) GetByID(_ context.Context, id string) (*entity.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.books {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeBookRepo) Update(_ context.Context, b *entity.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, cur := range f.books {
		if cur.ID == b.ID {
			cp := *b
			f.books[i] = &cp
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeBookRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, b := range f.books {
		if b.ID == id {
			f.books = append(f.books[:i], f.books[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeBookRepo) List(_ context.Context, q repo.BookListQuery) ([]*entity.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := make([]*entity.Book, 0)
	for _, b := range f.books {
		if f.matches(b, q.Search) {
			cp := *b
			matched = append(matched, &cp)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if q.Offset >= len(matched) {
		return []*entity.Book{}, nil
	}
	end := q.Offset + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[q.Offset:end], nil
}

func (f *fakeBookRepo) Count(_ context.Context, search string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.books {
		if f.matches(b, search) {
			n++
		}
	}
	return n, nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []repo.AuditEntry
}

func (f *fakeAuditRepo) Record(_ context.Context, e repo.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, e)
	return nil
}

type testEnv struct {
	router *gin.Engine
	jwt    *helpers.JWTManager
	users  *fakeUserRepo
	books  *fakeBookRepo
	audit  *fakeAuditRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	users := &fakeUserRepo{byEmail: map[string]*entity.User{}}
	books := &fakeBookRepo{}
	audit := &fakeAuditRepo{}
	logger := logrus.New()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)

	authSvc := application.NewAuthService(users, jwt, logger)
	catalogSvc := application.NewCatalogService(books, logger)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	api := r.Group("/api")
	modules.NewAuthModule(handlers.NewAuthHandler(authSvc, audit, logger), jwt).Register(api)
	modules.NewBookModule(handlers.NewBookHandler(catalogSvc, audit, logger), jwt).Register(api)

	return &testEnv{router: r, jwt: jwt, users: users, books: books, audit: audit}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	parsed := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func (e *testEnv) token(t *testing.T, userID, role string) string {
	t.Helper()
	tok, _, err := e.jwt.GenerateToken(userID, role)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) seedBooks(t *testing.T) []*entity.Book {
	t.Helper()
	seeds := []entity.Book{
		{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Year: 1925},
		{Title: "1984", Author: "George Orwell", Year: 1949},
		{Title: "To Kill a Mockingbird", Author: "Harper Lee", Year: 1960},
		{Title: "Pride and Prejudice", Author: "Jane Austen", Year: 1813},
		{Title: "Moby-Dick", Author: "Herman Melville", Year: 1851},
	}
	out := make([]*entity.Book, 0, len(seeds))
	for _, s := range seeds {
		b := s
		require.NoError(t, e.books.Create(context.Background(), &b))
		out = append(out, &b)
	}
	return out
}
