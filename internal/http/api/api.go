package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juanvolpe/Productivity-app/internal/apperr"
)

type APIError struct {
	Code    int
	Message string
}

type HandlerFunc func(ctx *gin.Context) (any, *APIError)

// ResolveEndpoint adapts a HandlerFunc into a gin handler, rendering either
// the result or {"error": ...}.
func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

// FromError maps the shared error kinds onto HTTP codes. Anything
// unclassified is reported as the given fallback message with a 500 so raw
// driver errors never leak to clients.
func FromError(err error, fallback string) *APIError {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return &APIError{Code: http.StatusNotFound, Message: "not found"}
	case errors.Is(err, apperr.ErrInvalidInput):
		return &APIError{Code: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, apperr.ErrConflict):
		return &APIError{Code: http.StatusConflict, Message: err.Error()}
	default:
		return &APIError{Code: http.StatusInternalServerError, Message: fallback}
	}
}

// Controller wraps a gin group so modules can register HandlerFuncs
// directly.
type Controller struct {
	Group *gin.RouterGroup
}

func (c *Controller) GET(path string, h HandlerFunc)    { c.Group.GET(path, ResolveEndpoint(h)) }
func (c *Controller) POST(path string, h HandlerFunc)   { c.Group.POST(path, ResolveEndpoint(h)) }
func (c *Controller) PUT(path string, h HandlerFunc)    { c.Group.PUT(path, ResolveEndpoint(h)) }
func (c *Controller) PATCH(path string, h HandlerFunc)  { c.Group.PATCH(path, ResolveEndpoint(h)) }
func (c *Controller) DELETE(path string, h HandlerFunc) { c.Group.DELETE(path, ResolveEndpoint(h)) }
