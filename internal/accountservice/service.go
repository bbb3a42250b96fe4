// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taller01/accountms/internal/domain"
	"github.com/taller01/accountms/pkg/randompkg"
)

// numberAttempts bounds the {generate, check, save} account number loop.
const numberAttempts = 20

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Get(ctx context.Context, id string) (domain.Account, error)
	GetByNumber(ctx context.Context, number string) (domain.Account, error)
	ListAll(ctx context.Context) ([]domain.Account, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Account, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	Save(ctx context.Context, account domain.Account) (domain.Account, error)
	Delete(ctx context.Context, id string) error
}

// ClientVerifier checks that an account owner exists in the client service.
type ClientVerifier interface {
	Verify(ctx context.Context, ownerID string) error
}

// Service facilitates account service layer logic.
type Service struct {
	repo     Repo
	verifier ClientVerifier
}

// New returns account service struct to manage account bussines logic.
func New(r Repo, v ClientVerifier) *Service {
	return &Service{repo: r, verifier: v}
}

// Create verifies the owner, assigns a unique account number and persists a
// new active account holding the initial balance.
func (s *Service) Create(ctx context.Context, ownerID string, category domain.Category, initialBalance decimal.Decimal) (domain.Account, error) {
	if strings.TrimSpace(ownerID) == "" {
		return domain.Account{}, domain.ErrOwnerIDInvalid
	}

	if !category.Valid() {
		return domain.Account{}, domain.ErrInvalidCategory
	}

	if initialBalance.IsNegative() {
		return domain.Account{}, domain.ErrNegativeInitialBalance
	}

	if err := s.verifier.Verify(ctx, ownerID); err != nil {
		return domain.Account{}, err
	}

	for i := 0; i < numberAttempts; i++ {
		number := fmt.Sprintf("%s-%06d", category.NumberPrefix(), randompkg.Intn(1_000_000))

		taken, err := s.repo.ExistsByNumber(ctx, number)
		if err != nil {
			return domain.Account{}, err
		}

		if taken {
			continue
		}

		created, err := s.repo.Save(ctx, domain.Account{
			OwnerID:       ownerID,
			AccountNumber: number,
			Balance:       initialBalance,
			Active:        true,
			Category:      category,
		})
		if err == domain.ErrAccountNumberTaken {
			// Lost the race between the existence check and the save.
			continue
		}

		if err != nil {
			return domain.Account{}, err
		}

		return created, nil
	}

	return domain.Account{}, domain.ErrAccountNumberExhausted
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id string) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// GetByNumber returns the account with the given account number.
func (s *Service) GetByNumber(ctx context.Context, number string) (domain.Account, error) {
	account, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return account, err
	}

	return account, nil
}

// ListAll returns all accounts in store order.
func (s *Service) ListAll(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// ListByOwner verifies the owner and returns the accounts it holds.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	if err := s.verifier.Verify(ctx, ownerID); err != nil {
		return nil, err
	}

	accounts, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// Deposit adds the amount to the balance of an active account.
func (s *Service) Deposit(ctx context.Context, id string, amount decimal.Decimal) (domain.Account, error) {
	if amount.Sign() <= 0 {
		return domain.Account{}, domain.ErrNonPositiveAmount
	}

	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	if !account.Active {
		return domain.Account{}, domain.ErrAccountInactive
	}

	account.Balance = account.Balance.Add(amount)

	return s.repo.Save(ctx, account)
}

// Withdraw subtracts the amount from the balance of an active account with
// sufficient funds.
func (s *Service) Withdraw(ctx context.Context, id string, amount decimal.Decimal) (domain.Account, error) {
	if amount.Sign() <= 0 {
		return domain.Account{}, domain.ErrNonPositiveAmount
	}

	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	if !account.Active {
		return domain.Account{}, domain.ErrAccountInactive
	}

	if account.Balance.LessThan(amount) {
		return domain.Account{}, domain.ErrInsufficientBalance
	}

	account.Balance = account.Balance.Sub(amount)

	return s.repo.Save(ctx, account)
}

// SetActive flips the activation state of the account. A nil active means no
// state was requested, which is rejected with a mode specific error. Setting
// the current state again is a conflict.
func (s *Service) SetActive(ctx context.Context, id string, active *bool, partial bool) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	if active == nil {
		if partial {
			return domain.Account{}, domain.ErrNoChangeSupplied
		}

		return domain.Account{}, domain.ErrActiveRequired
	}

	if *active == account.Active {
		if account.Active {
			return domain.Account{}, domain.ErrAlreadyActive
		}

		return domain.Account{}, domain.ErrAlreadyInactive
	}

	account.Active = *active

	return s.repo.Save(ctx, account)
}

// Delete removes the account once its balance reached zero.
func (s *Service) Delete(ctx context.Context, id string) error {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if !account.Balance.IsZero() {
		return domain.ErrBalanceNotZero
	}

	return s.repo.Delete(ctx, account.ID)
}
