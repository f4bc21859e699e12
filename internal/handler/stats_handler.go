package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/KeiviX/expense-manager-app/internal/cqrs"
	"github.com/KeiviX/expense-manager-app/internal/middleware"
	"github.com/KeiviX/expense-manager-app/internal/models"
	"github.com/gin-gonic/gin"
)

// StatsQuerier defines the read operations used by StatsHandler.
type StatsQuerier interface {
	MonthlySummary(ctx context.Context, q cqrs.MonthlySummaryQuery) (*models.SummaryView, error)
	Activity(ctx context.Context, q cqrs.ActivityQuery) (*models.ActivityView, error)
}

type StatsHandler struct {
	queries StatsQuerier
}

func NewStatsHandler(queries StatsQuerier) *StatsHandler {
	return &StatsHandler{queries: queries}
}

func (h *StatsHandler) Summary(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	view, err := h.queries.MonthlySummary(c.Request.Context(), cqrs.MonthlySummaryQuery{UserID: userID})
	if err != nil {
		log.Printf("Failed to build summary: %v", err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to build summary")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *StatsHandler) Activity(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	view, err := h.queries.Activity(c.Request.Context(), cqrs.ActivityQuery{UserID: userID})
	if err != nil {
		log.Printf("Failed to read activity counters: %v", err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to read activity")
		return
	}

	c.JSON(http.StatusOK, view)
}
