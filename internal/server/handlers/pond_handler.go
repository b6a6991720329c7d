package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
	"github.com/mamadbah2/aquafarm/internal/repository/mongodb"
)

// PondQueries is the read side exposed over HTTP.
type PondQueries interface {
	ListPonds(ctx context.Context) ([]models.Pond, error)
	Overview(ctx context.Context, pondID string) (models.PondOverview, error)
	Status(ctx context.Context, pondID string) (models.UnifiedStatus, error)
	Cycles(ctx context.Context, pondID string) ([]models.CycleSummary, error)
	FeedStatus(ctx context.Context, pondID string) (models.FeedStatus, error)
	Appetite(ctx context.Context, pondID string) (models.AppetiteReport, error)
	HarvestPrediction(ctx context.Context, pondID string) (models.HarvestPrediction, error)
}

// PondStore registers ponds.
type PondStore interface {
	GetPond(ctx context.Context, id string) (models.Pond, error)
	SavePond(ctx context.Context, pond models.Pond) error
}

// PondHandler serves pond analytics as JSON.
type PondHandler struct {
	svc    PondQueries
	store  PondStore
	logger *zap.Logger
	now    func() time.Time
}

// NewPondHandler constructs the pond analytics handler.
func NewPondHandler(svc PondQueries, store PondStore, logger *zap.Logger) *PondHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PondHandler{svc: svc, store: store, logger: logger, now: time.Now}
}

// SavePondRequest carries the dimensions of a pond in meters.
type SavePondRequest struct {
	Name   string  `json:"name"`
	Length float64 `json:"length" binding:"gt=0"`
	Width  float64 `json:"width" binding:"gt=0"`
	Depth  float64 `json:"depth" binding:"gt=0"`
}

// Save creates a pond or updates its name and dimensions. Population is only
// changed through population events.
func (h *PondHandler) Save(c *gin.Context) {
	var req SavePondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id := pondID(c)
	ctx := c.Request.Context()

	pond, err := h.store.GetPond(ctx, id)
	status := http.StatusOK
	switch {
	case errors.Is(err, mongodb.ErrPondNotFound):
		pond = models.Pond{ID: id, Status: "empty", CreatedAt: h.now().UTC()}
		status = http.StatusCreated
	case err != nil:
		h.fail(c, err)
		return
	}

	pond.Name = req.Name
	pond.Length = req.Length
	pond.Width = req.Width
	pond.Depth = req.Depth

	if err := h.store.SavePond(ctx, pond); err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("pond saved", zap.String("pond", id), zap.Float64("volume", pond.Volume()))
	c.JSON(status, pond)
}

// List returns every pond.
func (h *PondHandler) List(c *gin.Context) {
	ponds, err := h.svc.ListPonds(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if ponds == nil {
		ponds = []models.Pond{}
	}
	c.JSON(http.StatusOK, ponds)
}

// Overview returns every indicator for one pond.
func (h *PondHandler) Overview(c *gin.Context) {
	respond(h, c, h.svc.Overview)
}

// Status returns the density classification.
func (h *PondHandler) Status(c *gin.Context) {
	respond(h, c, h.svc.Status)
}

// Cycles returns the cycle history, oldest first.
func (h *PondHandler) Cycles(c *gin.Context) {
	respond(h, c, h.svc.Cycles)
}

// FeedStatus returns today's feeding progress.
func (h *PondHandler) FeedStatus(c *gin.Context) {
	respond(h, c, h.svc.FeedStatus)
}

// Appetite returns the appetite trend.
func (h *PondHandler) Appetite(c *gin.Context) {
	respond(h, c, h.svc.Appetite)
}

// HarvestPrediction returns the projected harvest date.
func (h *PondHandler) HarvestPrediction(c *gin.Context) {
	respond(h, c, h.svc.HarvestPrediction)
}

func respond[T any](h *PondHandler, c *gin.Context, query func(context.Context, string) (T, error)) {
	result, err := query(c.Request.Context(), pondID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func pondID(c *gin.Context) string {
	return strings.ToLower(strings.TrimSpace(c.Param("id")))
}

func (h *PondHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, mongodb.ErrPondNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "pond not found"})
		return
	}
	h.logger.Error("pond query failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
