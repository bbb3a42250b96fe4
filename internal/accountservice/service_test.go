package accountservice

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/taller01/accountms/internal/domain"
	"github.com/taller01/accountms/pkg/errorspkg"
	"github.com/taller01/accountms/pkg/randompkg"
)

func randomAccount(ownerID string, category domain.Category, balance decimal.Decimal) domain.Account {
	return domain.Account{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		AccountNumber: category.NumberPrefix() + "-123456",
		Balance:       balance,
		Active:        true,
		Category:      category,
		CreatedAt:     time.Now().Truncate(time.Second).UTC(),
	}
}

// storeSave echoes the saved account back with a store assigned id.
func storeSave(_ context.Context, a domain.Account) (domain.Account, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now()

	return a, nil
}

func TestCreate(t *testing.T) {
	owner := randompkg.Owner()
	initial := decimal.RequireFromString("100.00")

	testCases := []struct {
		name        string
		ownerID     string
		category    domain.Category
		initial     decimal.Decimal
		buildStubs  func(repo *MockRepo, verifier *MockClientVerifier)
		checkResult func(t *testing.T, got domain.Account, err error)
	}{
		{
			name:     "OK",
			ownerID:  owner,
			category: domain.CategorySavings,
			initial:  initial,
			buildStubs: func(repo *MockRepo, verifier *MockClientVerifier) {
				verifier.EXPECT().Verify(gomock.Any(), gomock.Eq(owner)).Times(1).Return(nil)
				repo.EXPECT().ExistsByNumber(gomock.Any(), gomock.Any()).Times(1).Return(false, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(1).DoAndReturn(storeSave)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.NoError(t, err)
				require.NotEmpty(t, got.ID)
				require.Equal(t, owner, got.OwnerID)
				require.True(t, got.Active)
				require.True(t, got.Balance.Equal(initial))
				require.Regexp(t, regexp.MustCompile(`^SV-[0-9]{6}$`), got.AccountNumber)
			},
		},
		{
			name:     "CheckingPrefix",
			ownerID:  owner,
			category: domain.CategoryChecking,
			initial:  decimal.Zero,
			buildStubs: func(repo *MockRepo, verifier *MockClientVerifier) {
				verifier.EXPECT().Verify(gomock.Any(), gomock.Eq(owner)).Times(1).Return(nil)
				repo.EXPECT().ExistsByNumber(gomock.Any(), gomock.Any()).Times(1).Return(false, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(1).DoAndReturn(storeSave)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.NoError(t, err)
				require.Regexp(t, regexp.MustCompile(`^CH-[0-9]{6}$`), got.AccountNumber)
				require.True(t, got.Balance.IsZero())
			},
		},
		{
			name:        "EmptyOwnerID",
			ownerID:     "  ",
			category:    domain.CategorySavings,
			initial:     initial,
			buildStubs:  func(repo *MockRepo, verifier *MockClientVerifier) {},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, domain.ErrOwnerIDInvalid.Error())
				require.Empty(t, got)
			},
		},
		{
			name:        "InvalidCategory",
			ownerID:     owner,
			category:    domain.Category("PREMIUM"),
			initial:     initial,
			buildStubs:  func(repo *MockRepo, verifier *MockClientVerifier) {},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, domain.ErrInvalidCategory.Error())
			},
		},
		{
			name:        "NegativeInitialBalance",
			ownerID:     owner,
			category:    domain.CategorySavings,
			initial:     decimal.RequireFromString("-0.01"),
			buildStubs:  func(repo *MockRepo, verifier *MockClientVerifier) {},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, domain.ErrNegativeInitialBalance.Error())
			},
		},
		{
			name:     "OwnerNotFound",
			ownerID:  owner,
			category: domain.CategorySavings,
			initial:  initial,
			buildStubs: func(repo *MockRepo, verifier *MockClientVerifier) {
				verifier.EXPECT().Verify(gomock.Any(), gomock.Eq(owner)).Times(1).Return(domain.ErrOwnerNotFound)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, domain.ErrOwnerNotFound.Error())
			},
		},
		{
			name:     "ClientServiceUnavailable",
			ownerID:  owner,
			category: domain.CategorySavings,
			initial:  initial,
			buildStubs: func(repo *MockRepo, verifier *MockClientVerifier) {
				verifier.EXPECT().Verify(gomock.Any(), gomock.Eq(owner)).Times(1).Return(domain.ErrClientServiceUnavailable)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, domain.ErrClientServiceUnavailable.Error())
			},
		},
		{
			name:     "RetriesOnNumberCollision",
			ownerID:  owner,
			category: domain.CategorySavings,
			initial:  initial,
			buildStubs: func(repo *MockRepo, verifier *MockClientVerifier) {
				verifier.EXPECT().Verify(gomock.Any(), gomock.Eq(owner)).Times(1).Return(nil)
				gomock.InOrder(
					repo.EXPECT().ExistsByNumber(gomock.Any(), gomock.Any()).Return(true, nil),
					repo.EXPECT().ExistsByNumber(gomock.Any(), gomock.Any()).Return(false, nil),
				)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(1).DoAndReturn(storeSave)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.NoError(t, err)
				require.NotEmpty(t, got.AccountNumber)
			},
		},
		{
			name:     "RetriesWhenSaveLosesRace",
			ownerID:  owner,
			category: domain.CategorySavings,
			initial:  initial,
			buildStubs: func(repo *MockRepo, verifier *MockClientVerifier) {
				verifier.EXPECT().Verify(gomock.Any(), gomock.Eq(owner)).Times(1).Return(nil)
				repo.EXPECT().ExistsByNumber(gomock.Any(), gomock.Any()).Times(2).Return(false, nil)
				gomock.InOrder(
					repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(domain.Account{}, domain.ErrAccountNumberTaken),
					repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(storeSave),
				)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.NoError(t, err)
			},
		},
		{
			name:     "NumberGenerationExhausted",
			ownerID:  owner,
			category: domain.CategorySavings,
			initial:  initial,
			buildStubs: func(repo *MockRepo, verifier *MockClientVerifier) {
				verifier.EXPECT().Verify(gomock.Any(), gomock.Eq(owner)).Times(1).Return(nil)
				repo.EXPECT().ExistsByNumber(gomock.Any(), gomock.Any()).Times(numberAttempts).Return(true, nil)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, domain.ErrAccountNumberExhausted.Error())
			},
		},
		{
			name:     "RepoError",
			ownerID:  owner,
			category: domain.CategorySavings,
			initial:  initial,
			buildStubs: func(repo *MockRepo, verifier *MockClientVerifier) {
				verifier.EXPECT().Verify(gomock.Any(), gomock.Eq(owner)).Times(1).Return(nil)
				repo.EXPECT().ExistsByNumber(gomock.Any(), gomock.Any()).Times(1).Return(false, errorspkg.ErrInternal)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, errorspkg.ErrInternal.Error())
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			verifier := NewMockClientVerifier(ctrl)
			service := New(repo, verifier)

			tc.buildStubs(repo, verifier)

			got, err := service.Create(context.Background(), tc.ownerID, tc.category, tc.initial)

			tc.checkResult(t, got, err)
		})
	}
}

func TestDeposit(t *testing.T) {
	owner := randompkg.Owner()
	account := randomAccount(owner, domain.CategorySavings, decimal.RequireFromString("70.00"))
	inactive := randomAccount(owner, domain.CategorySavings, decimal.RequireFromString("70.00"))
	inactive.Active = false

	testCases := []struct {
		name        string
		id          string
		amount      decimal.Decimal
		buildStubs  func(repo *MockRepo)
		checkResult func(t *testing.T, got domain.Account, err error)
	}{
		{
			name:   "OK",
			id:     account.ID,
			amount: decimal.RequireFromString("10.00"),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(account, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(1).DoAndReturn(storeSave)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.NoError(t, err)
				require.True(t, got.Balance.Equal(decimal.RequireFromString("80.00")))
			},
		},
		{
			name:       "ZeroAmount",
			id:         account.ID,
			amount:     decimal.Zero,
			buildStubs: func(repo *MockRepo) {},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, domain.ErrNonPositiveAmount.Error())
			},
		},
		{
			name:       "NegativeAmount",
			id:         account.ID,
			amount:     decimal.RequireFromString("-10"),
			buildStubs: func(repo *MockRepo) {},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, domain.ErrNonPositiveAmount.Error())
			},
		},
		{
			name:   "NotFound",
			id:     "missing",
			amount: decimal.RequireFromString("10.00"),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq("missing")).Times(1).Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, domain.ErrAccountNotFound.Error())
			},
		},
		{
			name:   "Inactive",
			id:     inactive.ID,
			amount: decimal.RequireFromString("10.00"),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(inactive.ID)).Times(1).Return(inactive, nil)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, domain.ErrAccountInactive.Error())
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			service := New(repo, NewMockClientVerifier(ctrl))

			tc.buildStubs(repo)

			got, err := service.Deposit(context.Background(), tc.id, tc.amount)

			tc.checkResult(t, got, err)
		})
	}
}

func TestWithdraw(t *testing.T) {
	owner := randompkg.Owner()
	account := randomAccount(owner, domain.CategorySavings, decimal.RequireFromString("70.00"))
	inactive := randomAccount(owner, domain.CategorySavings, decimal.RequireFromString("70.00"))
	inactive.Active = false

	testCases := []struct {
		name        string
		id          string
		amount      decimal.Decimal
		buildStubs  func(repo *MockRepo)
		checkResult func(t *testing.T, got domain.Account, err error)
	}{
		{
			name:   "OK",
			id:     account.ID,
			amount: decimal.RequireFromString("30.00"),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(account, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(1).DoAndReturn(storeSave)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.NoError(t, err)
				require.True(t, got.Balance.Equal(decimal.RequireFromString("40.00")))
			},
		},
		{
			name:   "WholeBalance",
			id:     account.ID,
			amount: decimal.RequireFromString("70.00"),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(account, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(1).DoAndReturn(storeSave)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.NoError(t, err)
				require.True(t, got.Balance.IsZero())
			},
		},
		{
			name:   "InsufficientBalance",
			id:     account.ID,
			amount: decimal.RequireFromString("1000.00"),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(account, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, domain.ErrInsufficientBalance.Error())
			},
		},
		{
			name:       "NonPositiveAmount",
			id:         account.ID,
			amount:     decimal.Zero,
			buildStubs: func(repo *MockRepo) {},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, domain.ErrNonPositiveAmount.Error())
			},
		},
		{
			name:   "Inactive",
			id:     inactive.ID,
			amount: decimal.RequireFromString("10.00"),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(inactive.ID)).Times(1).Return(inactive, nil)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, domain.ErrAccountInactive.Error())
			},
		},
		{
			name:   "NotFound",
			id:     "missing",
			amount: decimal.RequireFromString("10.00"),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq("missing")).Times(1).Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, domain.ErrAccountNotFound.Error())
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			service := New(repo, NewMockClientVerifier(ctrl))

			tc.buildStubs(repo)

			got, err := service.Withdraw(context.Background(), tc.id, tc.amount)

			tc.checkResult(t, got, err)
		})
	}
}

func boolPtr(b bool) *bool { return &b }

func TestSetActive(t *testing.T) {
	owner := randompkg.Owner()
	active := randomAccount(owner, domain.CategorySavings, decimal.Zero)
	inactive := randomAccount(owner, domain.CategorySavings, decimal.Zero)
	inactive.Active = false

	testCases := []struct {
		name        string
		id          string
		active      *bool
		partial     bool
		buildStubs  func(repo *MockRepo)
		checkResult func(t *testing.T, got domain.Account, err error)
	}{
		{
			name:    "DeactivateOK",
			id:      active.ID,
			active:  boolPtr(false),
			partial: false,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(active.ID)).Times(1).Return(active, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(1).DoAndReturn(storeSave)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.NoError(t, err)
				require.False(t, got.Active)
			},
		},
		{
			name:    "ActivateOKPartial",
			id:      inactive.ID,
			active:  boolPtr(true),
			partial: true,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(inactive.ID)).Times(1).Return(inactive, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(1).DoAndReturn(storeSave)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.NoError(t, err)
				require.True(t, got.Active)
			},
		},
		{
			name:    "MissingActiveFull",
			id:      active.ID,
			active:  nil,
			partial: false,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(active.ID)).Times(1).Return(active, nil)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, domain.ErrActiveRequired.Error())
			},
		},
		{
			name:    "MissingActivePartial",
			id:      active.ID,
			active:  nil,
			partial: true,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(active.ID)).Times(1).Return(active, nil)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, domain.ErrNoChangeSupplied.Error())
			},
		},
		{
			name:    "AlreadyActive",
			id:      active.ID,
			active:  boolPtr(true),
			partial: false,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(active.ID)).Times(1).Return(active, nil)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, domain.ErrAlreadyActive.Error())
			},
		},
		{
			name:    "AlreadyInactivePartial",
			id:      inactive.ID,
			active:  boolPtr(false),
			partial: true,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(inactive.ID)).Times(1).Return(inactive, nil)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, domain.ErrAlreadyInactive.Error())
			},
		},
		{
			name:    "NotFound",
			id:      "missing",
			active:  boolPtr(true),
			partial: false,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq("missing")).Times(1).Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResult: func(t *testing.T, got domain.Account, err error) {
				require.EqualError(t, err, domain.ErrAccountNotFound.Error())
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			service := New(repo, NewMockClientVerifier(ctrl))

			tc.buildStubs(repo)

			got, err := service.SetActive(context.Background(), tc.id, tc.active, tc.partial)

			tc.checkResult(t, got, err)
		})
	}
}

func TestDelete(t *testing.T) {
	owner := randompkg.Owner()
	empty := randomAccount(owner, domain.CategorySavings, decimal.Zero)
	funded := randomAccount(owner, domain.CategorySavings, decimal.RequireFromString("70.00"))

	testCases := []struct {
		name       string
		id         string
		buildStubs func(repo *MockRepo)
		wantErr    error
	}{
		{
			name: "OK",
			id:   empty.ID,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(empty.ID)).Times(1).Return(empty, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Eq(empty.ID)).Times(1).Return(nil)
			},
		},
		{
			name: "BalanceNotZero",
			id:   funded.ID,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(funded.ID)).Times(1).Return(funded, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrBalanceNotZero,
		},
		{
			name: "NotFound",
			id:   "missing",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq("missing")).Times(1).Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			wantErr: domain.ErrAccountNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			service := New(repo, NewMockClientVerifier(ctrl))

			tc.buildStubs(repo)

			err := service.Delete(context.Background(), tc.id)

			if tc.wantErr != nil {
				require.EqualError(t, err, tc.wantErr.Error())
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestListByOwner(t *testing.T) {
	owner := randompkg.Owner()
	accounts := []domain.Account{
		randomAccount(owner, domain.CategorySavings, decimal.Zero),
		randomAccount(owner, domain.CategoryChecking, decimal.Zero),
	}

	testCases := []struct {
		name        string
		buildStubs  func(repo *MockRepo, verifier *MockClientVerifier)
		checkResult func(t *testing.T, got []domain.Account, err error)
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo, verifier *MockClientVerifier) {
				verifier.EXPECT().Verify(gomock.Any(), gomock.Eq(owner)).Times(1).Return(nil)
				repo.EXPECT().ListByOwner(gomock.Any(), gomock.Eq(owner)).Times(1).Return(accounts, nil)
			},
			checkResult: func(t *testing.T, got []domain.Account, err error) {
				require.NoError(t, err)
				require.Len(t, got, 2)
			},
		},
		{
			name: "NoAccounts",
			buildStubs: func(repo *MockRepo, verifier *MockClientVerifier) {
				verifier.EXPECT().Verify(gomock.Any(), gomock.Eq(owner)).Times(1).Return(nil)
				repo.EXPECT().ListByOwner(gomock.Any(), gomock.Eq(owner)).Times(1).Return([]domain.Account{}, nil)
			},
			checkResult: func(t *testing.T, got []domain.Account, err error) {
				require.NoError(t, err)
				require.Empty(t, got)
			},
		},
		{
			name: "OwnerNotFound",
			buildStubs: func(repo *MockRepo, verifier *MockClientVerifier) {
				verifier.EXPECT().Verify(gomock.Any(), gomock.Eq(owner)).Times(1).Return(domain.ErrOwnerNotFound)
			},
			checkResult: func(t *testing.T, got []domain.Account, err error) {
				require.EqualError(t, err, domain.ErrOwnerNotFound.Error())
				require.Nil(t, got)
			},
		},
		{
			name: "ClientServiceUnavailable",
			buildStubs: func(repo *MockRepo, verifier *MockClientVerifier) {
				verifier.EXPECT().Verify(gomock.Any(), gomock.Eq(owner)).Times(1).Return(domain.ErrClientServiceUnavailable)
			},
			checkResult: func(t *testing.T, got []domain.Account, err error) {
				require.EqualError(t, err, domain.ErrClientServiceUnavailable.Error())
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			verifier := NewMockClientVerifier(ctrl)
			service := New(repo, verifier)

			tc.buildStubs(repo, verifier)

			got, err := service.ListByOwner(context.Background(), owner)

			tc.checkResult(t, got, err)
		})
	}
}

// TestAccountLifecycle drives one account through create, withdrawals,
// deactivation and a blocked delete against a stateful store fake.
func TestAccountLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	verifier := NewMockClientVerifier(ctrl)
	service := New(repo, verifier)

	var stored domain.Account

	verifier.EXPECT().Verify(gomock.Any(), gomock.Eq("C1")).Return(nil).AnyTimes()
	repo.EXPECT().ExistsByNumber(gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
		func(ctx context.Context, a domain.Account) (domain.Account, error) {
			saved, err := storeSave(ctx, a)
			if err != nil {
				return saved, err
			}
			stored = saved
			return saved, nil
		})
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
		func(_ context.Context, id string) (domain.Account, error) {
			if id != stored.ID {
				return domain.Account{}, domain.ErrAccountNotFound
			}
			return stored, nil
		})

	created, err := service.Create(context.Background(), "C1", domain.CategorySavings, decimal.RequireFromString("100.00"))
	require.NoError(t, err)
	require.True(t, created.Active)
	require.Regexp(t, regexp.MustCompile(`^SV-[0-9]{6}$`), created.AccountNumber)
	require.True(t, created.Balance.Equal(decimal.RequireFromString("100.00")))

	got, err := service.Withdraw(context.Background(), created.ID, decimal.RequireFromString("30.00"))
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.RequireFromString("70.00")))

	_, err = service.Withdraw(context.Background(), created.ID, decimal.RequireFromString("1000.00"))
	require.EqualError(t, err, domain.ErrInsufficientBalance.Error())
	require.True(t, stored.Balance.Equal(decimal.RequireFromString("70.00")))

	got, err = service.SetActive(context.Background(), created.ID, boolPtr(false), true)
	require.NoError(t, err)
	require.False(t, got.Active)

	_, err = service.Deposit(context.Background(), created.ID, decimal.RequireFromString("10.00"))
	require.EqualError(t, err, domain.ErrAccountInactive.Error())
	require.True(t, stored.Balance.Equal(decimal.RequireFromString("70.00")))

	err = service.Delete(context.Background(), created.ID)
	require.EqualError(t, err, domain.ErrBalanceNotZero.Error())
}
