package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/nareswara/libris/internal/interface/http"
	"github.com/nareswara/libris/internal/interface/middleware"
	"github.com/nareswara/libris/pkg/helpers"
)

// BookModule wires the catalog routes.
// Public: GET /api/books
// Protected: POST /api/books, PUT /api/books/:id, DELETE /api/books/:id
type BookModule struct {
	Handler *handlers.BookHandler
	JWT     *helpers.JWTManager
}

func NewBookModule(h *handlers.BookHandler, jwt *helpers.JWTManager) *BookModule {
	return &BookModule{Handler: h, JWT: jwt}
}

func (m *BookModule) Register(rg *gin.RouterGroup) {
	rg.GET("/books", m.Handler.List)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/books", m.Handler.Create)
		auth.PUT("/books/:id", m.Handler.Update)
		auth.DELETE("/books/:id", m.Handler.Delete)
	}
}
