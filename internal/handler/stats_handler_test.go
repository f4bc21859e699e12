package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/KeiviX/expense-manager-app/internal/cqrs"
	"github.com/KeiviX/expense-manager-app/internal/models"
	"github.com/gin-gonic/gin"
)

type mockStatsQuerier struct {
	summaryFn  func(cqrs.MonthlySummaryQuery) (*models.SummaryView, error)
	activityFn func(cqrs.ActivityQuery) (*models.ActivityView, error)
}

func (m *mockStatsQuerier) MonthlySummary(_ context.Context, q cqrs.MonthlySummaryQuery) (*models.SummaryView, error) {
	if m.summaryFn != nil {
		return m.summaryFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockStatsQuerier) Activity(_ context.Context, q cqrs.ActivityQuery) (*models.ActivityView, error) {
	if m.activityFn != nil {
		return m.activityFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

func newStatsTestRouter(qrys StatsQuerier, authUserID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(fakeAuth(authUserID))
	h := NewStatsHandler(qrys)
	grp := r.Group("/statistics")
	grp.GET("/summary", h.Summary)
	grp.GET("/activity", h.Activity)
	return r
}

func TestSummary(t *testing.T) {
	router := newStatsTestRouter(&mockStatsQuerier{
		summaryFn: func(q cqrs.MonthlySummaryQuery) (*models.SummaryView, error) {
			if q.UserID != 7 {
				t.Errorf("summary must be scoped to the caller, got user %d", q.UserID)
			}
			return &models.SummaryView{
				Expenses: []models.MonthlyTotal{{Month: "2025-03", Total: 120.5}},
				Income:   []models.MonthlyTotal{{Month: "2025-03", Total: 2500}},
			}, nil
		},
	}, 7)

	w := doJSONRequest(router, http.MethodGet, "/statistics/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got models.SummaryView
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got.Expenses) != 1 || got.Expenses[0].Month != "2025-03" {
		t.Errorf("unexpected summary: %+v", got)
	}
}

func TestActivity(t *testing.T) {
	router := newStatsTestRouter(&mockStatsQuerier{
		activityFn: func(q cqrs.ActivityQuery) (*models.ActivityView, error) {
			return &models.ActivityView{ExpenseWrites: 3, IncomeWrites: 1}, nil
		},
	}, 7)

	w := doJSONRequest(router, http.MethodGet, "/statistics/activity", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got models.ActivityView
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.ExpenseWrites != 3 || got.IncomeWrites != 1 {
		t.Errorf("unexpected activity: %+v", got)
	}
}

func TestStatsFailure(t *testing.T) {
	router := newStatsTestRouter(&mockStatsQuerier{
		summaryFn: func(cqrs.MonthlySummaryQuery) (*models.SummaryView, error) {
			return nil, fmt.Errorf("connection refused")
		},
	}, 7)

	w := doJSONRequest(router, http.MethodGet, "/statistics/summary", nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
