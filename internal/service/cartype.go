package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"cabs/internal/domain"
	"cabs/internal/redis"
	"cabs/internal/repository"
)

// CarTypeService manages the fleet categories and their activation state.
type CarTypeService struct {
	carTypes repository.CarTypeRepository
	cache    *redis.CacheStore

	minCarsByClass map[domain.CarClass]int
	defaultMinCars int
}

// NewCarTypeService creates a new CarTypeService. minCarsForEco overrides the
// activation minimum for the ECO class.
func NewCarTypeService(carTypes repository.CarTypeRepository, cache *redis.CacheStore, minCarsForEco int) *CarTypeService {
	return &CarTypeService{
		carTypes: carTypes,
		cache:    cache,
		minCarsByClass: map[domain.CarClass]int{
			domain.CarClassEco: minCarsForEco,
		},
		defaultMinCars: 1,
	}
}

// Create registers a new car type for a class, replacing any previous one.
func (s *CarTypeService) Create(ctx context.Context, carClass domain.CarClass, description string) (*domain.CarType, error) {
	existing, err := s.carTypes.FindByCarClass(ctx, carClass)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up car type: %w", err)
	}
	if existing != nil {
		if err := s.carTypes.Delete(ctx, carClass); err != nil {
			return nil, fmt.Errorf("failed to replace car type: %w", err)
		}
	}

	minCars := s.defaultMinCars
	if m, ok := s.minCarsByClass[carClass]; ok {
		minCars = m
	}

	carType := domain.NewCarType(uuid.New().String(), carClass, description, minCars)
	if err := s.carTypes.Save(ctx, carType); err != nil {
		return nil, fmt.Errorf("failed to save car type: %w", err)
	}

	return carType, nil
}

// Load retrieves a car type by ID.
func (s *CarTypeService) Load(ctx context.Context, id string) (*domain.CarType, error) {
	carType, err := s.carTypes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCarTypeNotFound
		}
		return nil, fmt.Errorf("failed to get car type: %w", err)
	}
	return carType, nil
}

// RegisterCar adds a car to a class fleet.
func (s *CarTypeService) RegisterCar(ctx context.Context, carClass domain.CarClass) error {
	carType, err := s.findByClass(ctx, carClass)
	if err != nil {
		return err
	}
	carType.RegisterCar()
	return s.carTypes.Save(ctx, carType)
}

// UnregisterCar removes a car from a class fleet.
func (s *CarTypeService) UnregisterCar(ctx context.Context, carClass domain.CarClass) error {
	carType, err := s.findByClass(ctx, carClass)
	if err != nil {
		return err
	}
	if err := carType.UnregisterCar(); err != nil {
		return err
	}
	return s.carTypes.Save(ctx, carType)
}

// Activate opens a class for dispatch.
func (s *CarTypeService) Activate(ctx context.Context, carClass domain.CarClass) error {
	carType, err := s.findByClass(ctx, carClass)
	if err != nil {
		return err
	}
	if err := carType.Activate(); err != nil {
		return err
	}
	if err := s.carTypes.Save(ctx, carType); err != nil {
		return err
	}
	return s.invalidateCache(ctx)
}

// Deactivate closes a class for dispatch.
func (s *CarTypeService) Deactivate(ctx context.Context, carClass domain.CarClass) error {
	carType, err := s.findByClass(ctx, carClass)
	if err != nil {
		return err
	}
	carType.Deactivate()
	if err := s.carTypes.Save(ctx, carType); err != nil {
		return err
	}
	return s.invalidateCache(ctx)
}

// RegisterActiveCar bumps the count of cars of a class currently on the road.
func (s *CarTypeService) RegisterActiveCar(ctx context.Context, carClass domain.CarClass) error {
	return s.carTypes.IncrementActiveCounter(ctx, carClass)
}

// UnregisterActiveCar lowers the count of cars of a class currently on the road.
func (s *CarTypeService) UnregisterActiveCar(ctx context.Context, carClass domain.CarClass) error {
	return s.carTypes.DecrementActiveCounter(ctx, carClass)
}

// FindActiveCarClasses returns the classes open for dispatch, cached briefly.
func (s *CarTypeService) FindActiveCarClasses(ctx context.Context) ([]domain.CarClass, error) {
	if s.cache != nil {
		cached, err := s.cache.GetActiveCarClasses(ctx)
		if err == nil && cached != nil {
			classes := make([]domain.CarClass, 0, len(cached))
			for _, c := range cached {
				classes = append(classes, domain.CarClass(c))
			}
			return classes, nil
		}
	}

	carTypes, err := s.carTypes.FindByStatus(ctx, domain.CarStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to find active car types: %w", err)
	}

	classes := make([]domain.CarClass, 0, len(carTypes))
	raw := make([]string, 0, len(carTypes))
	for _, ct := range carTypes {
		classes = append(classes, ct.CarClass)
		raw = append(raw, string(ct.CarClass))
	}

	if s.cache != nil {
		// A failed cache write only costs the next caller a DB round trip.
		_ = s.cache.SetActiveCarClasses(ctx, raw)
	}

	return classes, nil
}

func (s *CarTypeService) findByClass(ctx context.Context, carClass domain.CarClass) (*domain.CarType, error) {
	carType, err := s.carTypes.FindByCarClass(ctx, carClass)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCarTypeNotFound
		}
		return nil, fmt.Errorf("failed to find car type: %w", err)
	}
	return carType, nil
}

func (s *CarTypeService) invalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateActiveCarClasses(ctx)
}
