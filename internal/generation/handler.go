package generation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-generator/internal/shared/server/middleware"
	"resume-generator/internal/shared/server/respond"
)

// maxRequestBytes bounds the request body read by the HTTP handler.
const maxRequestBytes = 1 << 20

// Handler wires HTTP handlers to the generation service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches generation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, mw...), h.createResume)
	rg.POST("/resumes", handlers...)
}

func (h *Handler) createResume(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)
	payload, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		respond.Error(c, http.StatusBadRequest, msgInvalidPrefix+"unreadable body")
		return
	}

	req, err := DecodeRequest(payload)
	if err != nil {
		respond.Error(c, StatusFor(KindOf(err)), err.Error())
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	result, err := h.Svc.Run(ctx, req)
	if err != nil {
		respond.Error(c, StatusFor(KindOf(err)), err.Error())
		return
	}
	respond.OK(c, result)
}
