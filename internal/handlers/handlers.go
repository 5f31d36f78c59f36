package handlers

import (
	"errors"
	"net/http"

	"github.com/01moynul/binner-golang/internal/auth"
	"github.com/01moynul/binner-golang/internal/labels"
	"github.com/01moynul/binner-golang/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Store  storage.Provider
	Labels *labels.Printer
	Tokens *auth.Tokens
	Logger *zap.Logger
}

// New builds the handler set. Labels may be nil, in which case printing is disabled.
func New(store storage.Provider, printer *labels.Printer, tokens *auth.Tokens, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{Store: store, Labels: printer, Tokens: tokens, Logger: logger}
}

// Ping is the handler for GET /ping
func (h *Handlers) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong!"})
}

// fail maps storage errors onto HTTP status codes. Unexpected errors are
// logged and reported without detail.
func (h *Handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.Logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
