package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/KeiviX/expense-manager-app/internal/cqrs"
	"github.com/KeiviX/expense-manager-app/internal/models"
	"github.com/KeiviX/expense-manager-app/internal/storage"
	"github.com/gin-gonic/gin"
)

// ---- mock implementations ----

type mockExpenseCommander struct {
	createFn func(cqrs.CreateExpenseCommand) (*models.Expense, error)
	updateFn func(cqrs.UpdateExpenseCommand) (*models.Expense, error)
	deleteFn func(cqrs.DeleteExpenseCommand) error
}

func (m *mockExpenseCommander) CreateExpense(cmd cqrs.CreateExpenseCommand) (*models.Expense, error) {
	if m.createFn != nil {
		return m.createFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockExpenseCommander) UpdateExpense(cmd cqrs.UpdateExpenseCommand) (*models.Expense, error) {
	if m.updateFn != nil {
		return m.updateFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockExpenseCommander) DeleteExpense(cmd cqrs.DeleteExpenseCommand) error {
	if m.deleteFn != nil {
		return m.deleteFn(cmd)
	}
	return fmt.Errorf("not configured")
}

type mockExpenseQuerier struct {
	getFn  func(cqrs.GetExpenseQuery) (*models.Expense, error)
	listFn func(cqrs.ListExpensesQuery) ([]models.Expense, error)
}

func (m *mockExpenseQuerier) GetExpense(q cqrs.GetExpenseQuery) (*models.Expense, error) {
	if m.getFn != nil {
		return m.getFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockExpenseQuerier) ListExpenses(q cqrs.ListExpensesQuery) ([]models.Expense, error) {
	if m.listFn != nil {
		return m.listFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func fakeAuth(userID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	}
}

func newExpenseTestRouter(cmds ExpenseCommander, qrys ExpenseQuerier, authUserID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(fakeAuth(authUserID))
	h := NewExpenseHandler(cmds, qrys)
	grp := r.Group("/expenses")
	grp.POST("", h.CreateExpense)
	grp.GET("", h.ListExpenses)
	grp.GET("/:expenseId", h.GetExpense)
	grp.PUT("/:expenseId", h.UpdateExpense)
	grp.DELETE("/:expenseId", h.DeleteExpense)
	return r
}

// ---- test data ----

var testDate = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

var testExpense = &models.Expense{
	ID: 42, UserID: 7, Amount: 19.99,
	Description: "Groceries", Category: "food", Date: testDate,
}

func expenseBody() map[string]any {
	return map[string]any{
		"amount":      19.99,
		"description": "Groceries",
		"category":    "food",
		"date":        "2025-03-14T00:00:00Z",
	}
}

// ---- tests ----

func TestCreateExpense(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		createFn       func(cqrs.CreateExpenseCommand) (*models.Expense, error)
		expectedStatus int
	}{
		{
			name: "success",
			body: expenseBody(),
			createFn: func(cmd cqrs.CreateExpenseCommand) (*models.Expense, error) {
				if cmd.UserID != 7 {
					t.Errorf("owner must come from the resolved identity, got %d", cmd.UserID)
				}
				return testExpense, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing amount",
			body:           map[string]any{"description": "Groceries", "category": "food", "date": "2025-03-14T00:00:00Z"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative amount",
			body:           map[string]any{"amount": -5, "description": "Groceries", "category": "food", "date": "2025-03-14T00:00:00Z"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "storage failure",
			body: expenseBody(),
			createFn: func(cqrs.CreateExpenseCommand) (*models.Expense, error) {
				return nil, fmt.Errorf("connection refused")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newExpenseTestRouter(&mockExpenseCommander{createFn: tt.createFn}, &mockExpenseQuerier{}, 7)
			w := doJSONRequest(router, http.MethodPost, "/expenses", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d (body: %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}

func TestCreateExpenseIgnoresClientUserID(t *testing.T) {
	body := expenseBody()
	body["user_id"] = 999 // must not override the authenticated owner

	router := newExpenseTestRouter(&mockExpenseCommander{
		createFn: func(cmd cqrs.CreateExpenseCommand) (*models.Expense, error) {
			if cmd.UserID != 7 {
				t.Errorf("owner = %d, want 7", cmd.UserID)
			}
			return testExpense, nil
		},
	}, &mockExpenseQuerier{}, 7)

	w := doJSONRequest(router, http.MethodPost, "/expenses", body)
	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
}

func TestListExpenses(t *testing.T) {
	router := newExpenseTestRouter(&mockExpenseCommander{}, &mockExpenseQuerier{
		listFn: func(q cqrs.ListExpensesQuery) ([]models.Expense, error) {
			if q.UserID != 7 {
				t.Errorf("list must be scoped to the caller, got user %d", q.UserID)
			}
			if q.Skip != 5 || q.Limit != 10 {
				t.Errorf("pagination = (%d, %d), want (5, 10)", q.Skip, q.Limit)
			}
			return []models.Expense{*testExpense}, nil
		},
	}, 7)

	w := doJSONRequest(router, http.MethodGet, "/expenses?skip=5&limit=10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got []models.Expense
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got) != 1 || got[0].ID != 42 {
		t.Errorf("unexpected list: %+v", got)
	}
}

func TestListExpensesDefaultsPagination(t *testing.T) {
	router := newExpenseTestRouter(&mockExpenseCommander{}, &mockExpenseQuerier{
		listFn: func(q cqrs.ListExpensesQuery) ([]models.Expense, error) {
			if q.Skip != 0 || q.Limit != defaultPageLimit {
				t.Errorf("pagination = (%d, %d), want (0, %d)", q.Skip, q.Limit, defaultPageLimit)
			}
			return []models.Expense{}, nil
		},
	}, 7)

	w := doJSONRequest(router, http.MethodGet, "/expenses", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestGetExpense(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		getFn          func(cqrs.GetExpenseQuery) (*models.Expense, error)
		expectedStatus int
	}{
		{
			name: "success",
			url:  "/expenses/42",
			getFn: func(q cqrs.GetExpenseQuery) (*models.Expense, error) {
				return testExpense, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found and not yours look identical",
			url:  "/expenses/43",
			getFn: func(q cqrs.GetExpenseQuery) (*models.Expense, error) {
				return nil, storage.ErrNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "non-numeric id",
			url:            "/expenses/abc",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newExpenseTestRouter(&mockExpenseCommander{}, &mockExpenseQuerier{getFn: tt.getFn}, 7)
			w := doJSONRequest(router, http.MethodGet, tt.url, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d (body: %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}

func TestUpdateExpense(t *testing.T) {
	updated := &models.Expense{ID: 42, UserID: 7, Amount: 25, Description: "Groceries", Category: "food", Date: testDate}

	tests := []struct {
		name           string
		url            string
		body           any
		updateFn       func(cqrs.UpdateExpenseCommand) (*models.Expense, error)
		expectedStatus int
	}{
		{
			name: "success",
			url:  "/expenses/42",
			body: expenseBody(),
			updateFn: func(cmd cqrs.UpdateExpenseCommand) (*models.Expense, error) {
				if cmd.ExpenseID != 42 || cmd.UserID != 7 {
					t.Errorf("update scope = (%d, %d), want (42, 7)", cmd.ExpenseID, cmd.UserID)
				}
				return updated, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			url:  "/expenses/42",
			body: expenseBody(),
			updateFn: func(cqrs.UpdateExpenseCommand) (*models.Expense, error) {
				return nil, storage.ErrNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid body",
			url:            "/expenses/42",
			body:           map[string]any{"amount": "not-a-number"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newExpenseTestRouter(&mockExpenseCommander{updateFn: tt.updateFn}, &mockExpenseQuerier{}, 7)
			w := doJSONRequest(router, http.MethodPut, tt.url, tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d (body: %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}

func TestDeleteExpense(t *testing.T) {
	tests := []struct {
		name           string
		deleteFn       func(cqrs.DeleteExpenseCommand) error
		expectedStatus int
	}{
		{
			name: "success",
			deleteFn: func(cmd cqrs.DeleteExpenseCommand) error {
				if cmd.ExpenseID != 42 || cmd.UserID != 7 {
					t.Errorf("delete scope = (%d, %d), want (42, 7)", cmd.ExpenseID, cmd.UserID)
				}
				return nil
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "not found",
			deleteFn: func(cqrs.DeleteExpenseCommand) error {
				return storage.ErrNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newExpenseTestRouter(&mockExpenseCommander{deleteFn: tt.deleteFn}, &mockExpenseQuerier{}, 7)
			w := doJSONRequest(router, http.MethodDelete, "/expenses/42", nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d (body: %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}
