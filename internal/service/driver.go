package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cabs/internal/domain"
	"cabs/internal/redis"
	"cabs/internal/repository"
)

// DriverService manages driver accounts, sessions and position tracking.
type DriverService struct {
	drivers   repository.DriverRepository
	positions repository.DriverPositionRepository
	sessions  repository.DriverSessionRepository
	locations redis.LocationStoreInterface
	carTypes  *CarTypeService
}

// NewDriverService creates a new DriverService.
func NewDriverService(
	drivers repository.DriverRepository,
	positions repository.DriverPositionRepository,
	sessions repository.DriverSessionRepository,
	locations redis.LocationStoreInterface,
	carTypes *CarTypeService,
) *DriverService {
	return &DriverService{
		drivers:   drivers,
		positions: positions,
		sessions:  sessions,
		locations: locations,
		carTypes:  carTypes,
	}
}

// CreateDriver registers a driver. Candidates may hold an unvalidated
// licence number; regular drivers must pass validation up front.
func (s *DriverService) CreateDriver(ctx context.Context, firstName, lastName, licenseNumber string, driverType domain.DriverType) (*domain.Driver, error) {
	var license domain.DriverLicense
	if driverType == domain.DriverTypeCandidate {
		license = domain.LicenseWithoutValidation(licenseNumber)
	} else {
		validated, err := domain.LicenseWithNumber(licenseNumber)
		if err != nil {
			return nil, err
		}
		license = validated
	}

	driver := &domain.Driver{
		ID:        uuid.New().String(),
		FirstName: firstName,
		LastName:  lastName,
		License:   license,
		Status:    domain.DriverStatusInactive,
		Type:      driverType,
	}

	if err := s.drivers.Create(ctx, driver); err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	return driver, nil
}

// ChangeLicenseNumber replaces a driver's licence with a validated one.
func (s *DriverService) ChangeLicenseNumber(ctx context.Context, driverID, newLicenseNumber string) error {
	driver, err := s.getDriver(ctx, driverID)
	if err != nil {
		return err
	}

	license, err := domain.LicenseWithNumber(newLicenseNumber)
	if err != nil {
		return err
	}

	driver.License = license
	return s.drivers.Update(ctx, driver)
}

// ChangeDriverStatus moves a driver between ACTIVE and INACTIVE. Activation
// re-validates the licence on file.
func (s *DriverService) ChangeDriverStatus(ctx context.Context, driverID string, status domain.DriverStatus) error {
	driver, err := s.getDriver(ctx, driverID)
	if err != nil {
		return err
	}

	if status == domain.DriverStatusActive {
		if _, err := domain.LicenseWithNumber(driver.License.AsString()); err != nil {
			return err
		}
	}

	driver.Status = status
	return s.drivers.Update(ctx, driver)
}

// StartSession logs a driver into a concrete car, opening the class's
// active-car slot.
func (s *DriverService) StartSession(ctx context.Context, driverID string, carClass domain.CarClass, platesNumber, carBrand string) (*domain.DriverSession, error) {
	if _, err := s.getDriver(ctx, driverID); err != nil {
		return nil, err
	}

	session := &domain.DriverSession{
		ID:           uuid.New().String(),
		DriverID:     driverID,
		CarClass:     carClass,
		PlatesNumber: platesNumber,
		CarBrand:     carBrand,
		LoggedAt:     time.Now(),
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	if err := s.carTypes.RegisterActiveCar(ctx, carClass); err != nil {
		return nil, fmt.Errorf("failed to register active car: %w", err)
	}

	return session, nil
}

// EndSession logs a driver out of their open session and releases the
// class's active-car slot.
func (s *DriverService) EndSession(ctx context.Context, driverID string) error {
	session, err := s.sessions.FindOpenByDriverID(ctx, driverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: driver %s has no open session", domain.ErrNotAcceptable, driverID)
		}
		return fmt.Errorf("failed to find open session: %w", err)
	}

	session.LoggedOutAt = time.Now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if err := s.carTypes.UnregisterActiveCar(ctx, session.CarClass); err != nil {
		return fmt.Errorf("failed to unregister active car: %w", err)
	}

	return s.locations.RemoveLocation(ctx, session.DriverID)
}

// RegisterPosition records a GPS fix. Only active drivers are tracked.
func (s *DriverService) RegisterPosition(ctx context.Context, driverID string, lat, lon float64, seenAt time.Time) error {
	driver, err := s.getDriver(ctx, driverID)
	if err != nil {
		return err
	}
	if driver.Status != domain.DriverStatusActive {
		return fmt.Errorf("%w: driver %s is not active, cannot register position", domain.ErrNotAcceptable, driverID)
	}

	position := &domain.DriverPosition{
		ID:        uuid.New().String(),
		DriverID:  driverID,
		Latitude:  lat,
		Longitude: lon,
		SeenAt:    seenAt,
	}

	if err := s.positions.Save(ctx, position); err != nil {
		return fmt.Errorf("failed to save position: %w", err)
	}

	// The geo index is advisory; dispatch reads averaged positions from
	// PostgreSQL.
	return s.locations.UpdateLocation(ctx, driverID, lat, lon)
}

func (s *DriverService) getDriver(ctx context.Context, driverID string) (*domain.Driver, error) {
	driver, err := s.drivers.GetByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	return driver, nil
}
