package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBooks_EmptyCatalog(t *testing.T) {
	env := newTestEnv(t)

	w, body := env.do(t, http.MethodGet, "/api/books", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, true, body["success"])
	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(1), meta["page"])
	assert.Equal(t, float64(5), meta["limit"])
	assert.Equal(t, float64(0), meta["totalItems"])
	assert.Equal(t, float64(0), meta["totalPages"])
}

func TestListBooks_PaginationMeta(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooks(t)

	w, body := env.do(t, http.MethodGet, "/api/books?page=1&limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	items := body["data"].([]any)
	assert.Len(t, items, 2)

	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(2), meta["limit"])
	assert.Equal(t, float64(5), meta["totalItems"])
	assert.Equal(t, float64(3), meta["totalPages"]) // ceil(5/2)

	// newest first
	first := items[0].(map[string]any)
	assert.Equal(t, "Moby-Dick", first["title"])
}

func TestListBooks_CoercesBadQueryValues(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooks(t)

	for _, qs := range []string{
		"?page=0&limit=abc",
		"?page=-4",
		"?page=abc&limit=0",
	} {
		w, body := env.do(t, http.MethodGet, "/api/books"+qs, "", nil)
		require.Equalf(t, http.StatusOK, w.Code, "query %q", qs)
		meta := body["meta"].(map[string]any)
		assert.Equalf(t, float64(1), meta["page"], "query %q", qs)
		assert.Equalf(t, float64(5), meta["limit"], "query %q", qs)
	}
}

func TestListBooks_Search(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooks(t)

	w, body := env.do(t, http.MethodGet, "/api/books?search=gatsby", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	items := body["data"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "The Great Gatsby", items[0].(map[string]any)["title"])

	// author match, case-insensitive
	w, body = env.do(t, http.MethodGet, "/api/books?search=ORWELL", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items = body["data"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "1984", items[0].(map[string]any)["title"])
}

func TestCreateBook_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(t, http.MethodPost, "/api/books", "", map[string]any{
		"title": "Dune", "author": "Frank Herbert", "year": 1965,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateBook_Success(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "user-1", "user")

	w, body := env.do(t, http.MethodPost, "/api/books", tok, map[string]any{
		"title": "Dune", "author": "Frank Herbert", "year": 1965,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "Dune", data["title"])
	assert.Equal(t, "Frank Herbert", data["author"])
	assert.Equal(t, float64(1965), data["year"])
}

func TestCreateBook_YearOmittedFailsValidation(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "user-1", "user")

	// year omitted
	w, _ := env.do(t, http.MethodPost, "/api/books", tok, map[string]any{
		"title": "Dune", "author": "Frank Herbert",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// year zero is treated the same as missing
	w, _ = env.do(t, http.MethodPost, "/api/books", tok, map[string]any{
		"title": "Dune", "author": "Frank Herbert", "year": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBook(t *testing.T) {
	env := newTestEnv(t)
	books := env.seedBooks(t)
	tok := env.token(t, "user-1", "user")

	// malformed id
	w, _ := env.do(t, http.MethodPut, "/api/books/not-a-uuid", tok, map[string]any{"year": 2000})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown id
	w, _ = env.do(t, http.MethodPut, "/api/books/"+uuid.NewString(), tok, map[string]any{"year": 2000})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// partial update leaves other fields intact
	target := books[0]
	w, body := env.do(t, http.MethodPut, "/api/books/"+target.ID, tok, map[string]any{"year": 2024})
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(2024), data["year"])
	assert.Equal(t, target.Title, data["title"])

	// no token
	w, _ = env.do(t, http.MethodPut, "/api/books/"+target.ID, "", map[string]any{"year": 1999})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteBook_TwiceReturnsNotFound(t *testing.T) {
	env := newTestEnv(t)
	books := env.seedBooks(t)
	tok := env.token(t, "user-1", "user")

	w, _ := env.do(t, http.MethodDelete, "/api/books/"+uuid.NewString(), tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	target := books[0]
	w, body := env.do(t, http.MethodDelete, "/api/books/"+target.ID, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "book deleted", body["message"])

	w, _ = env.do(t, http.MethodDelete, "/api/books/"+target.ID, tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
