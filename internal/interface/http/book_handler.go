package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nareswara/libris/internal/application"
	repo "github.com/nareswara/libris/internal/domain/repository"
	"github.com/nareswara/libris/internal/interface/middleware"
	"github.com/nareswara/libris/pkg/response"
	"github.com/nareswara/libris/pkg/validation"
)

type BookHandler struct {
	Svc    *application.CatalogService
	Audit  repo.AuditRepository
	Logger *logrus.Logger
}

func NewBookHandler(svc *application.CatalogService, audit repo.AuditRepository, logger *logrus.Logger) *BookHandler {
	return &BookHandler{Svc: svc, Audit: audit, Logger: logger}
}

type createBookRequest struct {
	Title  string `json:"title" binding:"required"`
	Author string `json:"author" binding:"required"`
	// required on an int rejects zero, so year=0 is treated as missing.
	Year int `json:"year" binding:"required"`
}

type updateBookRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	Year   *int    `json:"year"`
}

type listMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	TotalItems int64 `json:"totalItems"`
}

// List GET /api/books?page=&limit=&search=
func (h *BookHandler) List(c *gin.Context) {
	params := application.ParseListParams(c.Query("page"), c.Query("limit"), c.Query("search"))

	page, err := h.Svc.List(c.Request.Context(), params)
	if err != nil {
		response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "failed to fetch books", nil))
		return
	}

	response.JSON(c, response.Success(c, http.StatusOK, page.Items, "books", listMeta{
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
		TotalItems: page.TotalItems,
	}))
}

// Create POST /api/books
func (h *BookHandler) Create(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "title, author and year are required", validation.ToDetails(err)))
		return
	}

	b, err := h.Svc.Create(c.Request.Context(), application.BookInput{
		Title:  req.Title,
		Author: req.Author,
		Year:   req.Year,
	})
	if err != nil {
		if errors.Is(err, application.ErrValidation) {
			response.JSON(c, response.Error[any](c, http.StatusBadRequest, "title, author and year are required", nil))
			return
		}
		response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "failed to create book", nil))
		return
	}

	audit(c, h.Audit, h.Logger, c.GetString(middleware.CtxUserIDKey), "", "book_create", map[string]any{"book_id": b.ID})
	response.JSON(c, response.Success(c, http.StatusCreated, b, "book created", nil))
}

// Update PUT /api/books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}

	b, err := h.Svc.Update(c.Request.Context(), id, application.BookPatch{
		Title:  req.Title,
		Author: req.Author,
		Year:   req.Year,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidID):
			response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid book id", nil))
		case errors.Is(err, application.ErrValidation):
			response.JSON(c, response.Error[any](c, http.StatusBadRequest, "title and author must be non-empty", nil))
		case errors.Is(err, application.ErrNotFound):
			response.JSON(c, response.Error[any](c, http.StatusNotFound, "book not found", nil))
		default:
			response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "failed to update book", nil))
		}
		return
	}

	audit(c, h.Audit, h.Logger, c.GetString(middleware.CtxUserIDKey), "", "book_update", map[string]any{"book_id": b.ID})
	response.JSON(c, response.Success(c, http.StatusOK, b, "book updated", nil))
}

// Delete DELETE /api/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidID):
			response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid book id", nil))
		case errors.Is(err, application.ErrNotFound):
			response.JSON(c, response.Error[any](c, http.StatusNotFound, "book not found", nil))
		default:
			response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "failed to delete book", nil))
		}
		return
	}

	audit(c, h.Audit, h.Logger, c.GetString(middleware.CtxUserIDKey), "", "book_delete", map[string]any{"book_id": id})
	response.JSON(c, response.Success[any](c, http.StatusOK, nil, "book deleted", nil))
}
