package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/KeiviX/expense-manager-app/internal/cqrs"
	"github.com/KeiviX/expense-manager-app/internal/middleware"
	"github.com/KeiviX/expense-manager-app/internal/models"
	"github.com/KeiviX/expense-manager-app/internal/storage"
	"github.com/gin-gonic/gin"
)

const defaultPageLimit = 100

// ExpenseCommander defines the write-side operations used by ExpenseHandler.
type ExpenseCommander interface {
	CreateExpense(cqrs.CreateExpenseCommand) (*models.Expense, error)
	UpdateExpense(cqrs.UpdateExpenseCommand) (*models.Expense, error)
	DeleteExpense(cqrs.DeleteExpenseCommand) error
}

// ExpenseQuerier defines the read-side operations used by ExpenseHandler.
type ExpenseQuerier interface {
	GetExpense(cqrs.GetExpenseQuery) (*models.Expense, error)
	ListExpenses(cqrs.ListExpensesQuery) ([]models.Expense, error)
}

type ExpenseHandler struct {
	commands ExpenseCommander
	queries  ExpenseQuerier
}

type ExpenseRequest struct {
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Description string    `json:"description" validate:"required"`
	Category    string    `json:"category" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
}

func NewExpenseHandler(commands ExpenseCommander, queries ExpenseQuerier) *ExpenseHandler {
	return &ExpenseHandler{commands: commands, queries: queries}
}

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	expense, err := h.commands.CreateExpense(cqrs.CreateExpenseCommand{
		UserID:      userID,
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		log.Printf("Failed to create expense: %v", err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	c.JSON(http.StatusCreated, expense)
}

func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	skip, limit := pagination(c)

	expenses, err := h.queries.ListExpenses(cqrs.ListExpensesQuery{
		UserID: userID,
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		log.Printf("Failed to list expenses: %v", err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list expenses")
		return
	}

	c.JSON(http.StatusOK, expenses)
}

func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	expenseID, ok := parseID(c, "expenseId")
	if !ok {
		return
	}

	expense, err := h.queries.GetExpense(cqrs.GetExpenseQuery{
		ExpenseID: expenseID,
		UserID:    userID,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Expense not found")
			return
		}
		log.Printf("Failed to get expense: %v", err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get expense")
		return
	}

	c.JSON(http.StatusOK, expense)
}

func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	expenseID, ok := parseID(c, "expenseId")
	if !ok {
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	expense, err := h.commands.UpdateExpense(cqrs.UpdateExpenseCommand{
		ExpenseID:   expenseID,
		UserID:      userID,
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Expense not found")
			return
		}
		log.Printf("Failed to update expense: %v", err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to update expense")
		return
	}

	c.JSON(http.StatusOK, expense)
}

func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	expenseID, ok := parseID(c, "expenseId")
	if !ok {
		return
	}

	err := h.commands.DeleteExpense(cqrs.DeleteExpenseCommand{
		ExpenseID: expenseID,
		UserID:    userID,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Expense not found")
			return
		}
		log.Printf("Failed to delete expense: %v", err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to delete expense")
		return
	}

	c.Status(http.StatusNoContent)
}

// parseID reads a numeric path parameter, responding 400 on garbage input.
func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid record id")
		return 0, false
	}
	return id, true
}

// pagination reads skip/limit query params with the API's defaults.
func pagination(c *gin.Context) (skip, limit int) {
	skip = 0
	limit = defaultPageLimit
	if v, err := strconv.Atoi(c.DefaultQuery("skip", "0")); err == nil && v >= 0 {
		skip = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit))); err == nil && v > 0 {
		limit = v
	}
	return skip, limit
}
