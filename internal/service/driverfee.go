package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cabs/internal/domain"
	"cabs/internal/repository"
)

// DriverFeeService computes a driver's cut of a transit price.
type DriverFeeService struct {
	fees     repository.DriverFeeRepository
	transits repository.TransitRepository
}

// NewDriverFeeService creates a new DriverFeeService.
func NewDriverFeeService(fees repository.DriverFeeRepository, transits repository.TransitRepository) *DriverFeeService {
	return &DriverFeeService{fees: fees, transits: transits}
}

// CalculateDriverFee computes the fee for a completed transit. A fee already
// settled on the transit is returned as is.
func (s *DriverFeeService) CalculateDriverFee(ctx context.Context, transitID string) (domain.Money, error) {
	transit, err := s.transits.GetByID(ctx, transitID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.MoneyZero, ErrTransitNotFound
		}
		return domain.MoneyZero, fmt.Errorf("failed to get transit: %w", err)
	}
	return s.feeFor(ctx, transit)
}

// CalculateDriverMonthlyPayment sums the driver's fees over the transits
// completed in the given month.
func (s *DriverFeeService) CalculateDriverMonthlyPayment(ctx context.Context, driverID string, year int, month time.Month) (domain.Money, error) {
	since := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	until := since.AddDate(0, 1, 0)

	transits, err := s.transits.FindCompletedByDriver(ctx, driverID, since, until)
	if err != nil {
		return domain.MoneyZero, fmt.Errorf("failed to find completed transits: %w", err)
	}

	payment := domain.MoneyZero
	for _, transit := range transits {
		fee, err := s.feeFor(ctx, transit)
		if err != nil {
			return domain.MoneyZero, err
		}
		payment = payment.Add(fee)
	}
	return payment, nil
}

// CalculateDriverYearlyPayment returns the driver's payment for every month
// of the given year.
func (s *DriverFeeService) CalculateDriverYearlyPayment(ctx context.Context, driverID string, year int) (map[time.Month]domain.Money, error) {
	payments := make(map[time.Month]domain.Money, 12)
	for month := time.January; month <= time.December; month++ {
		payment, err := s.CalculateDriverMonthlyPayment(ctx, driverID, year, month)
		if err != nil {
			return nil, err
		}
		payments[month] = payment
	}
	return payments, nil
}

func (s *DriverFeeService) feeFor(ctx context.Context, transit *domain.Transit) (domain.Money, error) {
	if transit.DriversFee != nil {
		return *transit.DriversFee, nil
	}
	if transit.Price == nil {
		return domain.MoneyZero, fmt.Errorf("%w: transit %s has no final price", domain.ErrForbidden, transit.ID)
	}

	fee, err := s.fees.FindByDriverID(ctx, transit.DriverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.MoneyZero, fmt.Errorf("%w: driver %s", ErrDriverFeeNotDefined, transit.DriverID)
		}
		return domain.MoneyZero, fmt.Errorf("failed to get driver fee: %w", err)
	}

	return fee.CalculateFee(*transit.Price), nil
}

// SetDriverFee upserts a driver's fee arrangement.
func (s *DriverFeeService) SetDriverFee(ctx context.Context, fee *domain.DriverFee) error {
	return s.fees.Save(ctx, fee)
}
