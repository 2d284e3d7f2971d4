// AngelaMos | 2026
// service.go

package premium

import (
	"context"
	"fmt"
	"time"

	"github.com/carterperez-dev/mialtar/internal/config"
	"github.com/carterperez-dev/mialtar/internal/core"
)

const (
	PlanMonthly = "monthly"
	Plan6Months = "6months"
	PlanAnnual  = "annual"
	PlanAdmin   = "admin"
	PlanNone    = "none"
	RoleAdmin   = "admin"
)

type Service struct {
	repo Repository
	cfg  config.PremiumConfig
}

func NewService(repo Repository, cfg config.PremiumConfig) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// planEnd maps a plan to its expiry relative to the purchase moment.
// The admin grant plan defaults to one month.
func planEnd(plan string, from time.Time) (time.Time, error) {
	switch plan {
	case PlanMonthly, PlanAdmin:
		return from.AddDate(0, 1, 0), nil
	case Plan6Months:
		return from.AddDate(0, 6, 0), nil
	case PlanAnnual:
		return from.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf(
			"unknown plan %q: %w",
			plan,
			core.ErrInvalidInput,
		)
	}
}

func (s *Service) planPrice(plan string) (string, error) {
	switch plan {
	case PlanMonthly:
		return s.cfg.PriceMonthly, nil
	case Plan6Months:
		return s.cfg.Price6Months, nil
	case PlanAnnual:
		return s.cfg.PriceAnnual, nil
	default:
		return "", fmt.Errorf(
			"unknown plan %q: %w",
			plan,
			core.ErrInvalidInput,
		)
	}
}

// effectivelyPremium applies the same read-time rule the rest of the
// backend uses. Admins are premium regardless of the stored columns; a
// stored premium flag counts only while unexpired.
func effectivelyPremium(state *PlanState, now time.Time) bool {
	if state.Role == RoleAdmin {
		return true
	}
	if !state.IsPremium {
		return false
	}
	return state.PremiumExpiry == nil || state.PremiumExpiry.After(now)
}

// Upgrade purchases a plan for the requesting user. A non-admin with an
// active plan cannot stack a second purchase on top of it.
func (s *Service) Upgrade(
	ctx context.Context,
	userID, plan string,
) (*UpgradeResponse, error) {
	amount, err := s.planPrice(plan)
	if err != nil {
		return nil, err
	}

	state, err := s.repo.GetPlanState(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	if state.Role != RoleAdmin && effectivelyPremium(state, now) {
		return nil, fmt.Errorf(
			"plan %q already active: %w",
			state.PremiumPlan,
			core.ErrConflict,
		)
	}

	end, err := planEnd(plan, now)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ApplyPlan(
		ctx, userID, plan, amount, now, end, SourceUser,
	); err != nil {
		return nil, err
	}

	return &UpgradeResponse{
		Plan:          plan,
		Amount:        amount,
		PremiumExpiry: end,
	}, nil
}

// Grant gives premium without payment. Billing records the grant with
// a zero amount and source=admin so history stays auditable.
func (s *Service) Grant(
	ctx context.Context,
	userID, planType string,
) (*UpgradeResponse, error) {
	if planType == "" {
		planType = PlanAdmin
	}

	now := time.Now()

	end, err := planEnd(planType, now)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetPlanState(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.repo.ApplyPlan(
		ctx, userID, planType, "$0", now, end, SourceAdmin,
	); err != nil {
		return nil, err
	}

	return &UpgradeResponse{
		Plan:          planType,
		Amount:        "$0",
		PremiumExpiry: end,
	}, nil
}

// Status reports the effective premium state computed at read time.
// There is no background expiry sweep.
func (s *Service) Status(
	ctx context.Context,
	userID string,
) (*StatusResponse, error) {
	state, err := s.repo.GetPlanState(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	if state.Role == RoleAdmin {
		return &StatusResponse{
			IsPremium:     true,
			PremiumPlan:   PlanAdmin,
			PremiumExpiry: nil,
		}, nil
	}

	if !effectivelyPremium(state, now) {
		return &StatusResponse{
			IsPremium:   false,
			PremiumPlan: PlanNone,
		}, nil
	}

	return &StatusResponse{
		IsPremium:     true,
		PremiumPlan:   state.PremiumPlan,
		PremiumExpiry: state.PremiumExpiry,
	}, nil
}

func (s *Service) History(
	ctx context.Context,
	userID string,
) ([]BillingHistoryEntry, error) {
	return s.repo.History(ctx, userID)
}
