package tests

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cabs/internal/domain"
	"cabs/internal/service"
)

type transitFixture struct {
	transits            *MockTransitRepository
	drivers             *MockDriverRepository
	clients             *MockClientRepository
	fees                *MockDriverFeeRepository
	positions           *MockDriverPositionRepository
	sessions            *MockDriverSessionRepository
	carTypes            *MockCarTypeRepository
	locks               *MockLockStore
	geocoder            *StubGeocoder
	driverNotifications *SpyDriverNotifications
	awards              *SpyAwardsService
	invoices            *SpyInvoiceGenerator
	service             *service.TransitService
}

func newTransitFixture() *transitFixture {
	f := &transitFixture{
		transits:            NewMockTransitRepository(),
		drivers:             NewMockDriverRepository(),
		clients:             NewMockClientRepository(),
		fees:                NewMockDriverFeeRepository(),
		positions:           NewMockDriverPositionRepository(),
		sessions:            NewMockDriverSessionRepository(),
		carTypes:            NewMockCarTypeRepository(),
		locks:               NewMockLockStore(),
		geocoder:            NewStubGeocoder(),
		driverNotifications: NewSpyDriverNotifications(),
		awards:              NewSpyAwardsService(),
		invoices:            NewSpyInvoiceGenerator(),
	}

	f.clients.AddClient(&domain.Client{ID: "client-1", Type: domain.ClientTypeNormal, Name: "Jan", LastName: "Kowalski"})
	f.geocoder.SetCoords(pickupAddress, 52.0, 19.0)
	f.geocoder.SetCoords(dropoffAddress, 52.1, 19.0)

	carTypeService := service.NewCarTypeService(f.carTypes, nil, 5)
	dispatcher := service.NewDispatcher(f.transits, f.drivers, f.positions, f.sessions, carTypeService, f.geocoder, f.driverNotifications, time.Millisecond)
	feeService := service.NewDriverFeeService(f.fees, f.transits)
	tx := NewMockTxProvider(f.transits, f.drivers)

	f.service = service.NewTransitService(f.transits, f.clients, f.drivers, tx, f.locks, dispatcher, f.geocoder, feeService, f.awards, f.invoices, f.driverNotifications)
	return f
}

// acceptedTransit seeds a transit already accepted by driver-1, priced under
// the Standard tariff.
func (f *transitFixture) acceptedTransit(t *testing.T) *domain.Transit {
	t.Helper()
	when := time.Date(2022, time.April, 5, 10, 0, 0, 0, time.UTC)
	transit := domain.NewTransit("transit-1", pickupAddress, dropoffAddress, "client-1", domain.CarClassVan, when, domain.OfKm(10))
	transit.PublishAt(when)
	transit.ProposeTo("driver-1")
	if err := transit.AcceptBy("driver-1", when.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}
	f.transits.AddTransit(transit)
	f.drivers.AddDriver(&domain.Driver{ID: "driver-1", Status: domain.DriverStatusActive, Occupied: true})
	return transit
}

func TestCreateTransitEstimatesPrice(t *testing.T) {
	f := newTransitFixture()

	transit, err := f.service.CreateTransit(context.Background(), "client-1", pickupAddress, dropoffAddress, domain.CarClassVan)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if transit.Status != domain.TransitStatusDraft {
		t.Errorf("expected DRAFT, got %s", transit.Status)
	}
	if transit.EstimatedPrice == nil || transit.EstimatedPrice.ToInt() <= 0 {
		t.Error("expected a positive estimated price")
	}
	// 0.1 degree of latitude is roughly 11.1 km.
	if transit.Km < 11 || transit.Km > 11.3 {
		t.Errorf("expected ~11.1 km, got %v", transit.Km)
	}
	if f.transits.GetTransit(transit.ID) == nil {
		t.Error("transit must be persisted")
	}
}

func TestCreateTransitUnknownClient(t *testing.T) {
	f := newTransitFixture()

	_, err := f.service.CreateTransit(context.Background(), "client-unknown", pickupAddress, dropoffAddress, "")
	if !errors.Is(err, service.ErrClientNotFound) {
		t.Errorf("expected ErrClientNotFound, got %v", err)
	}
}

func TestCreateTransitEmptyAddress(t *testing.T) {
	f := newTransitFixture()

	_, err := f.service.CreateTransit(context.Background(), "client-1", domain.Address{}, dropoffAddress, "")
	if !errors.Is(err, service.ErrEmptyAddress) {
		t.Errorf("expected ErrEmptyAddress, got %v", err)
	}
}

func TestAcceptTransitMarksDriverOccupied(t *testing.T) {
	f := newTransitFixture()
	when := time.Date(2022, time.April, 5, 10, 0, 0, 0, time.UTC)
	transit := domain.NewTransit("transit-1", pickupAddress, dropoffAddress, "client-1", "", when, domain.OfKm(10))
	transit.PublishAt(when)
	transit.ProposeTo("driver-1")
	f.transits.AddTransit(transit)
	f.drivers.AddDriver(&domain.Driver{ID: "driver-1", Status: domain.DriverStatusActive})

	if err := f.service.AcceptTransit(context.Background(), "driver-1", "transit-1"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	stored := f.transits.GetTransit("transit-1")
	if stored.Status != domain.TransitStatusTransitToPassenger {
		t.Errorf("expected TRANSIT_TO_PASSENGER, got %s", stored.Status)
	}
	if stored.DriverID != "driver-1" {
		t.Errorf("expected driver-1 assigned, got %q", stored.DriverID)
	}
	if !f.drivers.GetDriver("driver-1").Occupied {
		t.Error("accepting driver must be marked occupied")
	}
}

func TestAcceptTransitExactlyOneDriverWins(t *testing.T) {
	f := newTransitFixture()
	when := time.Date(2022, time.April, 5, 10, 0, 0, 0, time.UTC)
	transit := domain.NewTransit("transit-1", pickupAddress, dropoffAddress, "client-1", "", when, domain.OfKm(10))
	transit.PublishAt(when)
	transit.ProposeTo("driver-1")
	transit.ProposeTo("driver-2")
	f.transits.AddTransit(transit)
	f.drivers.AddDriver(&domain.Driver{ID: "driver-1", Status: domain.DriverStatusActive})
	f.drivers.AddDriver(&domain.Driver{ID: "driver-2", Status: domain.DriverStatusActive})

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, driverID := range []string{"driver-1", "driver-2"} {
		wg.Add(1)
		go func(i int, driverID string) {
			defer wg.Done()
			results[i] = f.service.AcceptTransit(context.Background(), driverID, "transit-1")
		}(i, driverID)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		if !errors.Is(err, domain.ErrNotAcceptable) && !errors.Is(err, service.ErrAcceptInProgress) {
			t.Errorf("unexpected loser error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one winner, got %d", successes)
	}

	stored := f.transits.GetTransit("transit-1")
	if stored.DriverID != "driver-1" && stored.DriverID != "driver-2" {
		t.Errorf("expected one of the contenders assigned, got %q", stored.DriverID)
	}
}

func TestAcceptTransitByUnproposedDriver(t *testing.T) {
	f := newTransitFixture()
	when := time.Date(2022, time.April, 5, 10, 0, 0, 0, time.UTC)
	transit := domain.NewTransit("transit-1", pickupAddress, dropoffAddress, "client-1", "", when, domain.OfKm(10))
	transit.PublishAt(when)
	f.transits.AddTransit(transit)
	f.drivers.AddDriver(&domain.Driver{ID: "driver-1", Status: domain.DriverStatusActive})

	err := f.service.AcceptTransit(context.Background(), "driver-1", "transit-1")
	if !errors.Is(err, domain.ErrNotAcceptable) {
		t.Errorf("expected ErrNotAcceptable, got %v", err)
	}
	if f.drivers.GetDriver("driver-1").Occupied {
		t.Error("driver must stay unoccupied after a failed accept")
	}
}

func TestStartTransitByWrongDriver(t *testing.T) {
	f := newTransitFixture()
	f.acceptedTransit(t)

	err := f.service.StartTransit(context.Background(), "driver-2", "transit-1")
	if !errors.Is(err, domain.ErrNotAcceptable) {
		t.Errorf("expected ErrNotAcceptable, got %v", err)
	}
}

func TestCompleteTransitSettlesEverything(t *testing.T) {
	f := newTransitFixture()
	transit := f.acceptedTransit(t)
	f.fees.AddFee(&domain.DriverFee{DriverID: "driver-1", FeeType: domain.FeeTypeFlat, Amount: 500})

	if err := f.service.StartTransit(context.Background(), "driver-1", transit.ID); err != nil {
		t.Fatal(err)
	}

	completed, err := f.service.CompleteTransit(context.Background(), "driver-1", transit.ID, dropoffAddress)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if completed.Status != domain.TransitStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", completed.Status)
	}
	// 11.119 km under the Standard tariff: 11.119*1.0 + 9 = 20.12.
	if completed.Price == nil || completed.Price.ToInt() != 2012 {
		t.Errorf("expected final price 2012, got %v", completed.Price)
	}
	if completed.DriversFee == nil || completed.DriversFee.ToInt() != 1512 {
		t.Errorf("expected driver fee 1512, got %v", completed.DriversFee)
	}
	if f.drivers.GetDriver("driver-1").Occupied {
		t.Error("driver must be freed on completion")
	}
	if got := f.awards.Miles["client-1"]; got != 10 {
		t.Errorf("expected 10 miles, got %d", got)
	}
	if len(f.invoices.Invoices) != 1 || !f.invoices.Invoices[0].Equals(domain.NewMoney(2012)) {
		t.Errorf("expected one invoice over 2012, got %v", f.invoices.Invoices)
	}
	if f.invoices.Subjects[0] != "Jan Kowalski" {
		t.Errorf("expected invoice for Jan Kowalski, got %q", f.invoices.Subjects[0])
	}
}

func TestCompleteTransitWithoutFeeArrangement(t *testing.T) {
	f := newTransitFixture()
	transit := f.acceptedTransit(t)
	if err := f.service.StartTransit(context.Background(), "driver-1", transit.ID); err != nil {
		t.Fatal(err)
	}

	_, err := f.service.CompleteTransit(context.Background(), "driver-1", transit.ID, dropoffAddress)
	if !errors.Is(err, service.ErrDriverFeeNotDefined) {
		t.Errorf("expected ErrDriverFeeNotDefined, got %v", err)
	}
}

func TestCancelTransitNotifiesProposedDrivers(t *testing.T) {
	f := newTransitFixture()
	when := time.Date(2022, time.April, 5, 10, 0, 0, 0, time.UTC)
	transit := domain.NewTransit("transit-1", pickupAddress, dropoffAddress, "client-1", "", when, domain.OfKm(10))
	transit.PublishAt(when)
	transit.ProposeTo("driver-1")
	transit.ProposeTo("driver-2")
	f.transits.AddTransit(transit)

	if err := f.service.CancelTransit(context.Background(), "transit-1"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if f.transits.GetTransit("transit-1").Status != domain.TransitStatusCancelled {
		t.Error("expected the cancellation persisted")
	}
	if len(f.driverNotifications.Cancellations) != 2 {
		t.Errorf("expected 2 cancellation notices, got %d", len(f.driverNotifications.Cancellations))
	}
}

func TestChangePickupNotifiesProposedDrivers(t *testing.T) {
	f := newTransitFixture()
	when := time.Date(2022, time.April, 5, 10, 0, 0, 0, time.UTC)
	transit := domain.NewTransit("transit-1", pickupAddress, dropoffAddress, "client-1", "", when, domain.OfKm(10))
	transit.PublishAt(when)
	transit.ProposeTo("driver-1")
	f.transits.AddTransit(transit)

	// 0.001 degrees is roughly 110 m, inside the 250 m correction budget.
	nearby := domain.Address{Country: "Polska", City: "Warszawa", Street: "Okopowa", BuildingNumber: 1}
	f.geocoder.SetCoords(nearby, 52.001, 19.0)

	updated, err := f.service.ChangeTransitAddressFrom(context.Background(), "transit-1", nearby)
	if err != nil {
		t.Fatalf("change pickup failed: %v", err)
	}

	if updated.PickupAddressChangeCounter != 1 {
		t.Errorf("expected one recorded change, got %d", updated.PickupAddressChangeCounter)
	}
	if len(f.driverNotifications.AddressChanges) != 1 {
		t.Errorf("expected 1 address change notice, got %d", len(f.driverNotifications.AddressChanges))
	}
}

func TestChangePickupTooFarAway(t *testing.T) {
	f := newTransitFixture()
	when := time.Date(2022, time.April, 5, 10, 0, 0, 0, time.UTC)
	transit := domain.NewTransit("transit-1", pickupAddress, dropoffAddress, "client-1", "", when, domain.OfKm(10))
	f.transits.AddTransit(transit)

	// 0.01 degrees is over a kilometer away from the original pickup.
	faraway := domain.Address{Country: "Polska", City: "Warszawa", Street: "Puławska", BuildingNumber: 200}
	f.geocoder.SetCoords(faraway, 52.01, 19.0)

	_, err := f.service.ChangeTransitAddressFrom(context.Background(), "transit-1", faraway)
	if !errors.Is(err, domain.ErrNotAcceptable) {
		t.Errorf("expected ErrNotAcceptable, got %v", err)
	}
}

func TestPublishTransitRunsDispatch(t *testing.T) {
	f := newTransitFixture()
	f.carTypes.AddCarType(&domain.CarType{ID: "ct-van", CarClass: domain.CarClassVan, Status: domain.CarStatusActive})
	f.geocoder.SetCoords(pickupAddress, pickupLat, pickupLon)
	for i, id := range []string{"d1", "d2", "d3", "d4", "d5"} {
		f.drivers.AddDriver(&domain.Driver{ID: id, Status: domain.DriverStatusActive})
		f.sessions.AddSession(&domain.DriverSession{ID: "session-" + id, DriverID: id, CarClass: domain.CarClassVan, LoggedAt: time.Now()})
		_ = f.positions.Save(context.Background(), &domain.DriverPosition{
			ID: "pos-" + id, DriverID: id,
			Latitude: pickupLat + float64(i)*0.0001, Longitude: pickupLon,
			SeenAt: time.Now(),
		})
	}

	transit := domain.NewTransit("transit-1", pickupAddress, dropoffAddress, "client-1", domain.CarClassVan, time.Now(), domain.OfKm(10))
	f.transits.AddTransit(transit)

	published, err := f.service.PublishTransit(context.Background(), "transit-1")
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if published.Status != domain.TransitStatusWaitingForDriverAssignment {
		t.Errorf("expected WAITING_FOR_DRIVER_ASSIGNMENT, got %s", published.Status)
	}
	if len(published.ProposedDrivers) != 5 {
		t.Errorf("expected 5 proposals from dispatch, got %v", published.ProposedDrivers)
	}
}
