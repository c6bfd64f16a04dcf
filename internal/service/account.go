package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/apodaca-kapital/investor-portal/internal/core"
	"github.com/apodaca-kapital/investor-portal/internal/domain/model"
)

// AccountServiceOptions groups dependencies for AccountService.
type AccountServiceOptions struct {
	AccountRepo core.AccountRepository
	Logger      *slog.Logger
}

// AccountService maintains the per-client account record: balance, display
// returns, and the investment plan with its simple-interest projection.
type AccountService struct {
	accounts core.AccountRepository
	logger   *slog.Logger
}

// NewAccountService constructs a new AccountService.
func NewAccountService(opts AccountServiceOptions) *AccountService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{accounts: opts.AccountRepo, logger: logger.With("component", "accounts")}
}

// Upsert writes the account record for a client. When a plan (months, rate,
// start date) is present the projection fields are recomputed; otherwise the
// plan and projection are cleared.
func (s *AccountService) Upsert(ctx context.Context, req *model.UpsertAccountRequest) (*model.Account, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	acct := &model.Account{
		ClientID: req.ClientID,
		Currency: "MXN",
		Balance:  req.Balance,
		MTD:      req.MTD,
		YTD:      req.YTD,
	}

	rate := req.NormalizedRate()
	if req.PlanMonths > 0 && rate > 0 && req.StartDate != nil {
		start, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha_inicio must be YYYY-MM-DD", ErrInvalidRequest)
		}
		proj := model.Project(req.Balance, req.PlanMonths, rate, start)
		months := req.PlanMonths
		acct.PlanMonths = &months
		acct.MonthlyRate = &rate
		acct.StartDate = &start
		acct.EndDate = &proj.EndDate
		acct.ProjectedGain = &proj.Gain
		acct.ProjectedTotal = &proj.Total
	}

	saved, err := s.accounts.Upsert(ctx, acct)
	if err != nil {
		return nil, fmt.Errorf("upsert account: %w", err)
	}

	s.logger.InfoContext(ctx, "account updated", "client_id", req.ClientID)
	return saved, nil
}

// GetByClientID retrieves a client's account.
func (s *AccountService) GetByClientID(ctx context.Context, clientID string) (*model.Account, error) {
	return s.accounts.GetByClientID(ctx, clientID)
}
