package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/KeiviX/expense-manager-app/internal/cqrs"
	"github.com/KeiviX/expense-manager-app/internal/middleware"
	"github.com/KeiviX/expense-manager-app/internal/models"
	"github.com/KeiviX/expense-manager-app/internal/storage"
	"github.com/gin-gonic/gin"
)

// IncomeCommander defines the write-side operations used by IncomeHandler.
type IncomeCommander interface {
	CreateIncome(cqrs.CreateIncomeCommand) (*models.Income, error)
	UpdateIncome(cqrs.UpdateIncomeCommand) (*models.Income, error)
	DeleteIncome(cqrs.DeleteIncomeCommand) error
}

// IncomeQuerier defines the read-side operations used by IncomeHandler.
type IncomeQuerier interface {
	GetIncome(cqrs.GetIncomeQuery) (*models.Income, error)
	ListIncomes(cqrs.ListIncomesQuery) ([]models.Income, error)
}

type IncomeHandler struct {
	commands IncomeCommander
	queries  IncomeQuerier
}

// IncomeRequest requires a frequency exactly when the entry is recurring.
type IncomeRequest struct {
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Description string    `json:"description" validate:"required"`
	Source      string    `json:"source" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
	IsRecurring bool      `json:"is_recurring"`
	Frequency   string    `json:"frequency" validate:"required_if=IsRecurring true,omitempty,oneof=daily weekly monthly yearly"`
}

func NewIncomeHandler(commands IncomeCommander, queries IncomeQuerier) *IncomeHandler {
	return &IncomeHandler{commands: commands, queries: queries}
}

func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	income, err := h.commands.CreateIncome(cqrs.CreateIncomeCommand{
		UserID:      userID,
		Amount:      req.Amount,
		Description: req.Description,
		Source:      req.Source,
		Date:        req.Date,
		IsRecurring: req.IsRecurring,
		Frequency:   req.Frequency,
	})
	if err != nil {
		log.Printf("Failed to create income: %v", err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create income")
		return
	}

	c.JSON(http.StatusCreated, income)
}

func (h *IncomeHandler) ListIncomes(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	skip, limit := pagination(c)

	incomes, err := h.queries.ListIncomes(cqrs.ListIncomesQuery{
		UserID: userID,
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		log.Printf("Failed to list incomes: %v", err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list income records")
		return
	}

	c.JSON(http.StatusOK, incomes)
}

func (h *IncomeHandler) GetIncome(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	incomeID, ok := parseID(c, "incomeId")
	if !ok {
		return
	}

	income, err := h.queries.GetIncome(cqrs.GetIncomeQuery{
		IncomeID: incomeID,
		UserID:   userID,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Income not found")
			return
		}
		log.Printf("Failed to get income: %v", err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get income")
		return
	}

	c.JSON(http.StatusOK, income)
}

func (h *IncomeHandler) UpdateIncome(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	incomeID, ok := parseID(c, "incomeId")
	if !ok {
		return
	}

	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	income, err := h.commands.UpdateIncome(cqrs.UpdateIncomeCommand{
		IncomeID:    incomeID,
		UserID:      userID,
		Amount:      req.Amount,
		Description: req.Description,
		Source:      req.Source,
		Date:        req.Date,
		IsRecurring: req.IsRecurring,
		Frequency:   req.Frequency,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Income not found")
			return
		}
		log.Printf("Failed to update income: %v", err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to update income")
		return
	}

	c.JSON(http.StatusOK, income)
}

func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	incomeID, ok := parseID(c, "incomeId")
	if !ok {
		return
	}

	err := h.commands.DeleteIncome(cqrs.DeleteIncomeCommand{
		IncomeID: incomeID,
		UserID:   userID,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Income not found")
			return
		}
		log.Printf("Failed to delete income: %v", err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to delete income")
		return
	}

	c.Status(http.StatusNoContent)
}
