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

// Accepting a transit is guarded by a short Redis lock; the TTL only bounds
// the damage of a crashed holder.
const acceptLockTTL = 10 * time.Second

// Miles credited to the client for every completed transit.
const milesPerCompletedTransit = 10

// TransactionProvider runs a function against transactional repositories.
// All writes inside fn commit or roll back together.
type TransactionProvider interface {
	InTransaction(ctx context.Context, fn func(transits repository.TransitRepository, drivers repository.DriverRepository) error) error
}

// TransitService orchestrates the transit lifecycle from draft to completion.
type TransitService struct {
	transits      repository.TransitRepository
	clients       repository.ClientRepository
	drivers       repository.DriverRepository
	tx            TransactionProvider
	locks         redis.LockStoreInterface
	dispatcher    *Dispatcher
	geocoder      Geocoder
	feeService    *DriverFeeService
	awards        AwardsService
	invoices      InvoiceGenerator
	notifications DriverNotificationService
}

// NewTransitService creates a new TransitService.
func NewTransitService(
	transits repository.TransitRepository,
	clients repository.ClientRepository,
	drivers repository.DriverRepository,
	tx TransactionProvider,
	locks redis.LockStoreInterface,
	dispatcher *Dispatcher,
	geocoder Geocoder,
	feeService *DriverFeeService,
	awards AwardsService,
	invoices InvoiceGenerator,
	notifications DriverNotificationService,
) *TransitService {
	return &TransitService{
		transits:      transits,
		clients:       clients,
		drivers:       drivers,
		tx:            tx,
		locks:         locks,
		dispatcher:    dispatcher,
		geocoder:      geocoder,
		feeService:    feeService,
		awards:        awards,
		invoices:      invoices,
		notifications: notifications,
	}
}

// CreateTransit drafts a transit and estimates its price.
func (s *TransitService) CreateTransit(ctx context.Context, clientID string, from, to domain.Address, carClass domain.CarClass) (*domain.Transit, error) {
	if from == (domain.Address{}) || to == (domain.Address{}) {
		return nil, ErrEmptyAddress
	}

	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	distance, err := s.distanceBetween(ctx, &from, &to)
	if err != nil {
		return nil, err
	}

	transit := domain.NewTransit(uuid.New().String(), from, to, clientID, carClass, time.Now(), distance)
	if err := s.transits.Create(ctx, transit); err != nil {
		return nil, fmt.Errorf("failed to create transit: %w", err)
	}

	return transit, nil
}

// GetTransit retrieves a transit by ID.
func (s *TransitService) GetTransit(ctx context.Context, transitID string) (*domain.Transit, error) {
	return s.getTransit(ctx, transitID)
}

// ChangeTransitAddressFrom moves the pickup address and re-estimates the
// price. Every driver already holding a proposal is told about the change.
func (s *TransitService) ChangeTransitAddressFrom(ctx context.Context, transitID string, newAddress domain.Address) (*domain.Transit, error) {
	transit, err := s.getTransit(ctx, transitID)
	if err != nil {
		return nil, err
	}

	pickupShift, err := s.distanceBetween(ctx, &transit.From, &newAddress)
	if err != nil {
		return nil, err
	}
	newDistance, err := s.distanceBetween(ctx, &newAddress, &transit.To)
	if err != nil {
		return nil, err
	}

	if err := transit.ChangePickupTo(newAddress, newDistance, pickupShift.ToKmInNumber()); err != nil {
		return nil, err
	}
	if err := s.transits.Update(ctx, transit); err != nil {
		return nil, fmt.Errorf("failed to update transit: %w", err)
	}

	for _, driverID := range transit.ProposedDrivers {
		s.notifications.NotifyAboutChangedTransitAddress(driverID, transit.ID)
	}

	return transit, nil
}

// ChangeTransitAddressTo moves the destination and re-estimates the price.
func (s *TransitService) ChangeTransitAddressTo(ctx context.Context, transitID string, newAddress domain.Address) (*domain.Transit, error) {
	transit, err := s.getTransit(ctx, transitID)
	if err != nil {
		return nil, err
	}

	newDistance, err := s.distanceBetween(ctx, &transit.From, &newAddress)
	if err != nil {
		return nil, err
	}

	if err := transit.ChangeDestinationTo(newAddress, newDistance); err != nil {
		return nil, err
	}
	if err := s.transits.Update(ctx, transit); err != nil {
		return nil, fmt.Errorf("failed to update transit: %w", err)
	}

	if transit.DriverID != "" {
		s.notifications.NotifyAboutChangedTransitAddress(transit.DriverID, transit.ID)
	}

	return transit, nil
}

// CancelTransit aborts a transit and tells the proposed drivers.
func (s *TransitService) CancelTransit(ctx context.Context, transitID string) error {
	transit, err := s.getTransit(ctx, transitID)
	if err != nil {
		return err
	}

	toNotify := append([]string(nil), transit.ProposedDrivers...)

	if err := transit.Cancel(); err != nil {
		return err
	}
	if err := s.transits.Update(ctx, transit); err != nil {
		return fmt.Errorf("failed to update transit: %w", err)
	}

	for _, driverID := range toNotify {
		s.notifications.NotifyAboutCancelledTransit(driverID, transit.ID)
	}

	return nil
}

// PublishTransit opens the transit for assignment and runs the driver search.
func (s *TransitService) PublishTransit(ctx context.Context, transitID string) (*domain.Transit, error) {
	transit, err := s.getTransit(ctx, transitID)
	if err != nil {
		return nil, err
	}

	transit.PublishAt(time.Now())
	if err := s.transits.Update(ctx, transit); err != nil {
		return nil, fmt.Errorf("failed to update transit: %w", err)
	}

	return s.dispatcher.FindDriversForTransit(ctx, transit)
}

// AcceptTransit assigns the driver to the transit. The Redis lock serializes
// concurrent attempts; the transaction keeps the transit and the driver's
// occupied flag consistent. Exactly one driver ever wins.
func (s *TransitService) AcceptTransit(ctx context.Context, driverID, transitID string) error {
	acquired, err := s.locks.AcquireTransitLock(ctx, transitID, acceptLockTTL)
	if err != nil {
		return fmt.Errorf("failed to acquire transit lock: %w", err)
	}
	if !acquired {
		return ErrAcceptInProgress
	}
	// The TTL reclaims the lock if the release fails.
	defer func() {
		_ = s.locks.ReleaseTransitLock(context.WithoutCancel(ctx), transitID)
	}()

	return s.tx.InTransaction(ctx, func(transits repository.TransitRepository, drivers repository.DriverRepository) error {
		transit, err := transits.GetByID(ctx, transitID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrTransitNotFound
			}
			return fmt.Errorf("failed to get transit: %w", err)
		}

		driver, err := drivers.GetByID(ctx, driverID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrDriverNotFound
			}
			return fmt.Errorf("failed to get driver: %w", err)
		}

		if err := transit.AcceptBy(driverID, time.Now()); err != nil {
			return err
		}
		driver.Occupied = true

		if err := transits.Update(ctx, transit); err != nil {
			return fmt.Errorf("failed to update transit: %w", err)
		}
		if err := drivers.Update(ctx, driver); err != nil {
			return fmt.Errorf("failed to update driver: %w", err)
		}
		return nil
	})
}

// StartTransit begins the ride for the assigned driver.
func (s *TransitService) StartTransit(ctx context.Context, driverID, transitID string) error {
	transit, err := s.getTransit(ctx, transitID)
	if err != nil {
		return err
	}
	if transit.DriverID != driverID {
		return fmt.Errorf("%w: driver %s is not assigned to transit %s", domain.ErrNotAcceptable, driverID, transitID)
	}

	if err := transit.Start(time.Now()); err != nil {
		return err
	}
	return s.transits.Update(ctx, transit)
}

// RejectTransit records the driver's refusal.
func (s *TransitService) RejectTransit(ctx context.Context, driverID, transitID string) error {
	transit, err := s.getTransit(ctx, transitID)
	if err != nil {
		return err
	}

	transit.Reject(driverID)
	return s.transits.Update(ctx, transit)
}

// CompleteTransit finishes the ride: final price, driver's fee, the
// driver freed, loyalty miles credited and an invoice issued.
func (s *TransitService) CompleteTransit(ctx context.Context, driverID, transitID string, destination domain.Address) (*domain.Transit, error) {
	transit, err := s.getTransit(ctx, transitID)
	if err != nil {
		return nil, err
	}
	if transit.DriverID != driverID {
		return nil, fmt.Errorf("%w: driver %s is not assigned to transit %s", domain.ErrNotAcceptable, driverID, transitID)
	}

	distance, err := s.distanceBetween(ctx, &transit.From, &destination)
	if err != nil {
		return nil, err
	}

	if err := transit.CompleteAt(time.Now(), destination, distance); err != nil {
		return nil, err
	}
	if err := s.transits.Update(ctx, transit); err != nil {
		return nil, fmt.Errorf("failed to update transit: %w", err)
	}

	fee, err := s.feeService.CalculateDriverFee(ctx, transitID)
	if err != nil {
		return nil, err
	}
	transit.DriversFee = &fee
	if err := s.transits.Update(ctx, transit); err != nil {
		return nil, fmt.Errorf("failed to update transit: %w", err)
	}

	driver, err := s.drivers.GetByID(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	driver.Occupied = false
	if err := s.drivers.Update(ctx, driver); err != nil {
		return nil, fmt.Errorf("failed to update driver: %w", err)
	}

	if err := s.awards.RegisterMiles(ctx, transit.ClientID, milesPerCompletedTransit); err != nil {
		return nil, fmt.Errorf("failed to register miles: %w", err)
	}

	client, err := s.clients.GetByID(ctx, transit.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if err := s.invoices.Generate(ctx, *transit.Price, client.Name+" "+client.LastName); err != nil {
		return nil, fmt.Errorf("failed to generate invoice: %w", err)
	}

	return transit, nil
}

func (s *TransitService) getTransit(ctx context.Context, transitID string) (*domain.Transit, error) {
	transit, err := s.transits.GetByID(ctx, transitID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTransitNotFound
		}
		return nil, fmt.Errorf("failed to get transit: %w", err)
	}
	return transit, nil
}

func (s *TransitService) distanceBetween(ctx context.Context, from, to *domain.Address) (domain.Distance, error) {
	fromLat, fromLon, err := s.geocoder.GeocodeAddress(ctx, from)
	if err != nil {
		return domain.DistanceZero, fmt.Errorf("failed to geocode address: %w", err)
	}
	toLat, toLon, err := s.geocoder.GeocodeAddress(ctx, to)
	if err != nil {
		return domain.DistanceZero, fmt.Errorf("failed to geocode address: %w", err)
	}
	return domain.OfKm(HaversineDistanceKm(fromLat, fromLon, toLat, toLon)), nil
}
