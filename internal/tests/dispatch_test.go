package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"cabs/internal/domain"
	"cabs/internal/service"
)

var pickupAddress = domain.Address{Country: "Polska", City: "Warszawa", Street: "Młynarska", BuildingNumber: 20}
var dropoffAddress = domain.Address{Country: "Polska", City: "Warszawa", Street: "Żytnia", BuildingNumber: 25}

const (
	pickupLat = 52.2297
	pickupLon = 21.0122
)

type dispatchFixture struct {
	transits      *MockTransitRepository
	drivers       *MockDriverRepository
	positions     *MockDriverPositionRepository
	sessions      *MockDriverSessionRepository
	carTypes      *MockCarTypeRepository
	geocoder      *StubGeocoder
	notifications *SpyDriverNotifications
	dispatcher    *service.Dispatcher
}

func newDispatchFixture() *dispatchFixture {
	f := &dispatchFixture{
		transits:      NewMockTransitRepository(),
		drivers:       NewMockDriverRepository(),
		positions:     NewMockDriverPositionRepository(),
		sessions:      NewMockDriverSessionRepository(),
		carTypes:      NewMockCarTypeRepository(),
		geocoder:      NewStubGeocoder(),
		notifications: NewSpyDriverNotifications(),
	}

	f.carTypes.AddCarType(&domain.CarType{ID: "ct-van", CarClass: domain.CarClassVan, Status: domain.CarStatusActive})
	f.geocoder.SetCoords(pickupAddress, pickupLat, pickupLon)

	carTypeService := service.NewCarTypeService(f.carTypes, nil, 5)
	f.dispatcher = service.NewDispatcher(f.transits, f.drivers, f.positions, f.sessions, carTypeService, f.geocoder, f.notifications, time.Millisecond)
	return f
}

// addEligibleDriver registers an active unoccupied driver with an open VAN
// session and a fresh position fix near the given point.
func (f *dispatchFixture) addEligibleDriver(id string, lat, lon float64) {
	f.drivers.AddDriver(&domain.Driver{ID: id, Status: domain.DriverStatusActive})
	f.sessions.AddSession(&domain.DriverSession{ID: "session-" + id, DriverID: id, CarClass: domain.CarClassVan, LoggedAt: time.Now()})
	_ = f.positions.Save(context.Background(), &domain.DriverPosition{
		ID:        "pos-" + id,
		DriverID:  id,
		Latitude:  lat,
		Longitude: lon,
		SeenAt:    time.Now(),
	})
}

func (f *dispatchFixture) publishedTransit(carClass domain.CarClass) *domain.Transit {
	transit := domain.NewTransit("transit-1", pickupAddress, dropoffAddress, "client-1", carClass, time.Now(), domain.OfKm(5))
	transit.PublishAt(time.Now())
	f.transits.AddTransit(transit)
	return transit
}

func TestDispatchProposesToNearbyDrivers(t *testing.T) {
	f := newDispatchFixture()
	for i, id := range []string{"d1", "d2", "d3", "d4", "d5"} {
		f.addEligibleDriver(id, pickupLat+float64(i)*0.0001, pickupLon)
	}
	transit := f.publishedTransit(domain.CarClassVan)

	result, err := f.dispatcher.FindDriversForTransit(context.Background(), transit)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	if len(result.ProposedDrivers) != 5 {
		t.Fatalf("expected 5 proposals, got %v", result.ProposedDrivers)
	}
	if result.Status != domain.TransitStatusWaitingForDriverAssignment {
		t.Errorf("expected WAITING_FOR_DRIVER_ASSIGNMENT, got %s", result.Status)
	}
	if len(f.notifications.ProposedTo) != 5 {
		t.Errorf("expected 5 driver notifications, got %d", len(f.notifications.ProposedTo))
	}
	// Proposals must be persisted so drivers can accept mid-search.
	if stored := f.transits.GetTransit(transit.ID); len(stored.ProposedDrivers) != 5 {
		t.Errorf("expected persisted proposals, got %v", stored.ProposedDrivers)
	}
}

func TestDispatchFailsAfterPublicationExpires(t *testing.T) {
	f := newDispatchFixture()
	transit := f.publishedTransit(domain.CarClassVan)
	transit.Published = time.Now().Add(-301 * time.Second)

	result, err := f.dispatcher.FindDriversForTransit(context.Background(), transit)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	if result.Status != domain.TransitStatusDriverAssignmentFailed {
		t.Errorf("expected DRIVER_ASSIGNMENT_FAILED, got %s", result.Status)
	}
	if stored := f.transits.GetTransit(transit.ID); stored.Status != domain.TransitStatusDriverAssignmentFailed {
		t.Errorf("failure must be persisted, got %s", stored.Status)
	}
}

func TestDispatchFailsWhenRadiusExhausted(t *testing.T) {
	f := newDispatchFixture()
	transit := f.publishedTransit(domain.CarClassVan)

	result, err := f.dispatcher.FindDriversForTransit(context.Background(), transit)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	if result.Status != domain.TransitStatusDriverAssignmentFailed {
		t.Errorf("expected DRIVER_ASSIGNMENT_FAILED with no drivers anywhere, got %s", result.Status)
	}
}

func TestDispatchSkipsIneligibleDrivers(t *testing.T) {
	f := newDispatchFixture()
	for i, id := range []string{"d1", "d2", "d3", "d4", "d5"} {
		f.addEligibleDriver(id, pickupLat+float64(i)*0.0001, pickupLon)
	}

	// Occupied and inactive drivers sit right next to the pickup.
	f.addEligibleDriver("d-occupied", pickupLat, pickupLon)
	f.drivers.GetDriver("d-occupied").Occupied = true
	f.addEligibleDriver("d-inactive", pickupLat, pickupLon)
	f.drivers.GetDriver("d-inactive").Status = domain.DriverStatusInactive

	transit := f.publishedTransit(domain.CarClassVan)

	result, err := f.dispatcher.FindDriversForTransit(context.Background(), transit)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	for _, id := range result.ProposedDrivers {
		if id == "d-occupied" || id == "d-inactive" {
			t.Errorf("driver %s must not receive a proposal", id)
		}
	}
	if len(result.ProposedDrivers) != 5 {
		t.Errorf("expected 5 proposals, got %v", result.ProposedDrivers)
	}
}

func TestDispatchSkipsRejectedDriver(t *testing.T) {
	f := newDispatchFixture()
	f.addEligibleDriver("d1", pickupLat, pickupLon)
	transit := f.publishedTransit(domain.CarClassVan)
	transit.Reject("d1")
	transit.AwaitingDriversResponses = 0

	result, err := f.dispatcher.FindDriversForTransit(context.Background(), transit)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	for _, id := range result.ProposedDrivers {
		if id == "d1" {
			t.Error("rejected driver must never be re-proposed")
		}
	}
}

func TestDispatchStopsWhenRequestedClassInactive(t *testing.T) {
	f := newDispatchFixture()
	f.addEligibleDriver("d1", pickupLat, pickupLon)
	transit := f.publishedTransit(domain.CarClassPremium)

	result, err := f.dispatcher.FindDriversForTransit(context.Background(), transit)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	if len(result.ProposedDrivers) != 0 {
		t.Errorf("expected no proposals for an inactive class, got %v", result.ProposedDrivers)
	}
	if result.Status != domain.TransitStatusWaitingForDriverAssignment {
		t.Errorf("transit must be returned unchanged, got %s", result.Status)
	}
}

func TestDispatchGeocodeFailureSearchesFromOrigin(t *testing.T) {
	f := newDispatchFixture()
	f.geocoder.GeocodeError = errors.New("geocoding unavailable")
	for i, id := range []string{"d1", "d2", "d3", "d4", "d5"} {
		f.addEligibleDriver(id, float64(i)*0.0001, 0)
	}
	transit := f.publishedTransit(domain.CarClassVan)

	result, err := f.dispatcher.FindDriversForTransit(context.Background(), transit)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	if len(result.ProposedDrivers) != 5 {
		t.Errorf("expected the search to degrade to (0,0), got %v", result.ProposedDrivers)
	}
}

func TestDispatchRespectsContextCancellation(t *testing.T) {
	f := newDispatchFixture()
	transit := f.publishedTransit(domain.CarClassVan)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := f.dispatcher.FindDriversForTransit(ctx, transit)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestDispatchRejectsWrongStatus(t *testing.T) {
	f := newDispatchFixture()
	transit := domain.NewTransit("transit-1", pickupAddress, dropoffAddress, "client-1", domain.CarClassVan, time.Now(), domain.OfKm(5))
	f.transits.AddTransit(transit)

	_, err := f.dispatcher.FindDriversForTransit(context.Background(), transit)
	if !errors.Is(err, domain.ErrNotAcceptable) {
		t.Errorf("expected ErrNotAcceptable for a draft transit, got %v", err)
	}
}
