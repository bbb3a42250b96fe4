// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/taller01/accountms/internal/domain"
	"github.com/taller01/accountms/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, ownerID string, category domain.Category, initialBalance decimal.Decimal) (domain.Account, error)
	Get(ctx context.Context, id string) (domain.Account, error)
	GetByNumber(ctx context.Context, number string) (domain.Account, error)
	ListAll(ctx context.Context) ([]domain.Account, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Account, error)
	Deposit(ctx context.Context, id string, amount decimal.Decimal) (domain.Account, error)
	Withdraw(ctx context.Context, id string, amount decimal.Decimal) (domain.Account, error)
	SetActive(ctx context.Context, id string, active *bool, partial bool) (domain.Account, error)
	Delete(ctx context.Context, id string) error
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

// writeBindingError responds with a 400 body, carrying field messages when the
// failure came from binding validation.
func writeBindingError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())
	l.Info().Err(err).Send()

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		gctx.JSON(http.StatusBadRequest, web.NewValidationError(ve, gctx.Request.URL.Path))
		return
	}

	gctx.JSON(http.StatusBadRequest, web.NewError(http.StatusBadRequest, "invalid request body", gctx.Request.URL.Path))
}

// writeDomainError maps a domain error onto its HTTP status and error body.
func writeDomainError(gctx *gin.Context, err error) {
	var status int

	switch err {
	case domain.ErrAccountNotFound:
		status = http.StatusNotFound
	case domain.ErrOwnerNotFound,
		domain.ErrOwnerIDInvalid,
		domain.ErrOwnerNotVerified,
		domain.ErrInvalidCategory,
		domain.ErrNegativeInitialBalance,
		domain.ErrNonPositiveAmount,
		domain.ErrAccountInactive,
		domain.ErrActiveRequired,
		domain.ErrNoChangeSupplied:
		status = http.StatusBadRequest
	case domain.ErrAlreadyActive,
		domain.ErrAlreadyInactive,
		domain.ErrBalanceNotZero,
		domain.ErrInsufficientBalance,
		domain.ErrAccountNumberTaken,
		domain.ErrAccountNumberExhausted:
		status = http.StatusConflict
	case domain.ErrClientServiceUnavailable:
		status = http.StatusServiceUnavailable
	default:
		l := zerolog.Ctx(gctx.Request.Context())
		l.Error().Err(err).Send()

		gctx.JSON(http.StatusInternalServerError,
			web.NewError(http.StatusInternalServerError, "unexpected error", gctx.Request.URL.Path))

		return
	}

	gctx.JSON(status, web.NewError(status, err.Error(), gctx.Request.URL.Path))
}

type createRequest struct {
	OwnerID        string          `json:"clientId" binding:"required"`
	Category       domain.Category `json:"accountType" binding:"required,accountcategory"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// Create handles http request to create an account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		writeBindingError(gctx, err)
		return
	}

	created, err := h.service.Create(ctx, req.OwnerID, req.Category, req.InitialBalance)
	if err != nil {
		writeDomainError(gctx, err)
		return
	}

	gctx.Header("Location", "/accounts/"+created.ID)
	gctx.JSON(http.StatusCreated, created)
}

type idRequest struct {
	ID string `uri:"id" binding:"required"`
}

// Get handles http request to get one account by id.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		writeBindingError(gctx, err)
		return
	}

	acc, err := h.service.Get(ctx, req.ID)
	if err != nil {
		writeDomainError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, acc)
}

type numberRequest struct {
	Number string `uri:"number" binding:"required"`
}

// GetByNumber handles http request to get one account by account number.
func (h *Handler) GetByNumber(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req numberRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		writeBindingError(gctx, err)
		return
	}

	acc, err := h.service.GetByNumber(ctx, req.Number)
	if err != nil {
		writeDomainError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, acc)
}

// List handles http request to list all accounts.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	accounts, err := h.service.ListAll(ctx)
	if err != nil {
		writeDomainError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, accounts)
}

type ownerRequest struct {
	OwnerID string `uri:"ownerID" binding:"required"`
}

// ListByOwner handles http request to list the accounts of one owner.
func (h *Handler) ListByOwner(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req ownerRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		writeBindingError(gctx, err)
		return
	}

	accounts, err := h.service.ListByOwner(ctx, req.OwnerID)
	if err != nil {
		writeDomainError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, accounts)
}

type balanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Deposit handles http request to add money to an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri idRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		writeBindingError(gctx, err)
		return
	}

	var req balanceRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		writeBindingError(gctx, err)
		return
	}

	acc, err := h.service.Deposit(ctx, uri.ID, req.Amount)
	if err != nil {
		writeDomainError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, acc)
}

// Withdraw handles http request to take money from an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri idRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		writeBindingError(gctx, err)
		return
	}

	var req balanceRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		writeBindingError(gctx, err)
		return
	}

	acc, err := h.service.Withdraw(ctx, uri.ID, req.Amount)
	if err != nil {
		writeDomainError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, acc)
}

type updateRequest struct {
	Active *bool `json:"active"`
}

// Update handles http request to replace the account activation state.
func (h *Handler) Update(gctx *gin.Context) {
	h.setActive(gctx, false)
}

// UpdatePartial handles http request to patch the account activation state.
func (h *Handler) UpdatePartial(gctx *gin.Context) {
	h.setActive(gctx, true)
}

func (h *Handler) setActive(gctx *gin.Context, partial bool) {
	ctx := gctx.Request.Context()

	var uri idRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		writeBindingError(gctx, err)
		return
	}

	var req updateRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		writeBindingError(gctx, err)
		return
	}

	acc, err := h.service.SetActive(ctx, uri.ID, req.Active, partial)
	if err != nil {
		writeDomainError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, acc)
}

// Delete handles http request to remove an account.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		writeBindingError(gctx, err)
		return
	}

	if err := h.service.Delete(ctx, req.ID); err != nil {
		writeDomainError(gctx, err)
		return
	}

	gctx.Status(http.StatusNoContent)
}
