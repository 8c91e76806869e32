package domain

import (
	"fmt"
	"time"
)

// TransitStatus is the lifecycle state of a transit.
type TransitStatus string

const (
	TransitStatusDraft                      TransitStatus = "DRAFT"
	TransitStatusCancelled                  TransitStatus = "CANCELLED"
	TransitStatusWaitingForDriverAssignment TransitStatus = "WAITING_FOR_DRIVER_ASSIGNMENT"
	TransitStatusDriverAssignmentFailed     TransitStatus = "DRIVER_ASSIGNMENT_FAILED"
	TransitStatusTransitToPassenger         TransitStatus = "TRANSIT_TO_PASSENGER"
	TransitStatusInTransit                  TransitStatus = "IN_TRANSIT"
	TransitStatusCompleted                  TransitStatus = "COMPLETED"
)

// Publication expires after this long without an accepted driver.
const noDriverWaitLimit = 300 * time.Second

// Maximum number of pickup address changes per transit.
const maxPickupChanges = 3

// Transit is the trip aggregate. Its price, status and driver assignment
// are kept mutually consistent by the methods below; callers must not
// bypass them when mutating state.
type Transit struct {
	ID       string
	Status   TransitStatus
	From     Address
	To       Address
	ClientID string
	DriverID string   // empty until a driver accepts
	CarClass CarClass // empty means any class

	Km     float64
	Tariff Tariff

	Price          *Money
	EstimatedPrice *Money
	DriversFee     *Money

	DateTime    time.Time
	Published   time.Time
	AcceptedAt  time.Time
	Started     time.Time
	CompletedAt time.Time

	PickupAddressChangeCounter int
	ProposedDrivers            []string
	DriversRejections          []string
	AwaitingDriversResponses   int
}

// NewTransit creates a transit in DRAFT and computes the initial estimate.
func NewTransit(id string, from, to Address, clientID string, carClass CarClass, when time.Time, distance Distance) *Transit {
	t := &Transit{
		ID:       id,
		Status:   TransitStatusDraft,
		From:     from,
		To:       to,
		ClientID: clientID,
		CarClass: carClass,
		Km:       distance.ToKmInNumber(),
	}
	t.SetDateTime(when)
	_, _ = t.EstimateCost()
	return t
}

// SetDateTime moves the transit's reference time and re-resolves the tariff.
func (t *Transit) SetDateTime(when time.Time) {
	t.Tariff = TariffOfTime(when)
	t.DateTime = when
}

// GetDistance returns the trip distance.
func (t *Transit) GetDistance() Distance {
	return OfKm(t.Km)
}

// EstimateCost recomputes the estimated price and clears any final price.
// Estimating a completed transit is a logic error.
func (t *Transit) EstimateCost() (Money, error) {
	if t.Status == TransitStatusCompleted {
		return MoneyZero, fmt.Errorf("%w: estimating cost for completed transit is forbidden, id = %s", ErrForbidden, t.ID)
	}
	estimated := t.calculateCost()
	t.EstimatedPrice = &estimated
	t.Price = nil
	return estimated, nil
}

// CalculateFinalCosts computes the authoritative final price. Only legal
// once the transit is completed.
func (t *Transit) CalculateFinalCosts() (Money, error) {
	if t.Status != TransitStatusCompleted {
		return MoneyZero, fmt.Errorf("%w: cannot calculate final cost if the transit is not completed", ErrForbidden)
	}
	price := t.calculateCost()
	t.Price = &price
	return price, nil
}

func (t *Transit) calculateCost() Money {
	return t.Tariff.CalculateCost(OfKm(t.Km))
}

// ChangePickupTo moves the pickup address. Allowed at most three times,
// only before a driver is on the way, and only for small corrections.
func (t *Transit) ChangePickupTo(newAddress Address, newDistance Distance, distanceFromPreviousPickup float64) error {
	if (t.Status != TransitStatusDraft && t.Status != TransitStatusWaitingForDriverAssignment) ||
		t.PickupAddressChangeCounter >= maxPickupChanges ||
		distanceFromPreviousPickup > 0.25 {
		return fmt.Errorf("%w: address 'from' cannot be changed, id = %s", ErrNotAcceptable, t.ID)
	}
	t.From = newAddress
	t.Km = newDistance.ToKmInNumber()
	if _, err := t.EstimateCost(); err != nil {
		return err
	}
	t.PickupAddressChangeCounter++
	return nil
}

// ChangeDestinationTo moves the destination. Disallowed once completed.
func (t *Transit) ChangeDestinationTo(newAddress Address, newDistance Distance) error {
	if t.Status == TransitStatusCompleted {
		return fmt.Errorf("%w: address 'to' cannot be changed, id = %s", ErrNotAcceptable, t.ID)
	}
	t.To = newAddress
	t.Km = newDistance.ToKmInNumber()
	_, err := t.EstimateCost()
	return err
}

// Cancel aborts the transit before the ride starts.
func (t *Transit) Cancel() error {
	switch t.Status {
	case TransitStatusDraft, TransitStatusWaitingForDriverAssignment, TransitStatusTransitToPassenger:
	default:
		return fmt.Errorf("%w: transit cannot be cancelled, id = %s", ErrNotAcceptable, t.ID)
	}
	t.Status = TransitStatusCancelled
	t.DriverID = ""
	t.Km = DistanceZero.ToKmInNumber()
	t.AwaitingDriversResponses = 0
	return nil
}

// PublishAt opens the transit for driver assignment.
func (t *Transit) PublishAt(when time.Time) {
	t.Status = TransitStatusWaitingForDriverAssignment
	t.Published = when
}

// CanProposeTo reports whether the driver has not rejected this transit.
func (t *Transit) CanProposeTo(driverID string) bool {
	return !contains(t.DriversRejections, driverID)
}

// ProposeTo offers the transit to a driver. Drivers who already rejected
// it are silently skipped.
func (t *Transit) ProposeTo(driverID string) {
	if !t.CanProposeTo(driverID) {
		return
	}
	t.ProposedDrivers = append(t.ProposedDrivers, driverID)
	t.AwaitingDriversResponses++
}

// AcceptBy assigns the driver. Exactly one driver can ever win the
// assignment; callers must serialize concurrent attempts (see service layer).
func (t *Transit) AcceptBy(driverID string, when time.Time) error {
	if t.DriverID != "" {
		return fmt.Errorf("%w: transit already accepted, id = %s", ErrNotAcceptable, t.ID)
	}
	if !contains(t.ProposedDrivers, driverID) {
		return fmt.Errorf("%w: driver out of possible drivers, id = %s", ErrNotAcceptable, t.ID)
	}
	if contains(t.DriversRejections, driverID) {
		return fmt.Errorf("%w: driver out of possible drivers, id = %s", ErrNotAcceptable, t.ID)
	}
	t.DriverID = driverID
	t.AwaitingDriversResponses = 0
	t.AcceptedAt = when
	t.Status = TransitStatusTransitToPassenger
	return nil
}

// Start begins the ride.
func (t *Transit) Start(when time.Time) error {
	if t.Status != TransitStatusTransitToPassenger {
		return fmt.Errorf("%w: transit cannot be started, id = %s", ErrNotAcceptable, t.ID)
	}
	t.Status = TransitStatusInTransit
	t.Started = when
	return nil
}

// Reject records a driver's refusal. The awaiting counter is decremented
// unconditionally and can go negative when a driver rejects without a
// pending proposal; clamping it would change the dispatch cut-off.
func (t *Transit) Reject(driverID string) {
	t.DriversRejections = append(t.DriversRejections, driverID)
	t.AwaitingDriversResponses--
}

// CompleteAt finishes the ride at the given destination and finalizes the
// price.
func (t *Transit) CompleteAt(when time.Time, destination Address, distance Distance) error {
	if t.Status != TransitStatusInTransit {
		return fmt.Errorf("%w: cannot complete transit, id = %s", ErrNotAcceptable, t.ID)
	}
	t.To = destination
	t.Km = distance.ToKmInNumber()
	if _, err := t.EstimateCost(); err != nil {
		return err
	}
	t.Status = TransitStatusCompleted
	t.CompletedAt = when
	_, err := t.CalculateFinalCosts()
	return err
}

// ShouldNotWaitForDriverAnyMore reports whether dispatch should give up:
// the transit was cancelled or its publication is older than the wait limit.
func (t *Transit) ShouldNotWaitForDriverAnyMore(now time.Time) bool {
	return t.Status == TransitStatusCancelled || t.Published.Add(noDriverWaitLimit).Before(now)
}

// FailDriverAssignment marks the search as exhausted.
func (t *Transit) FailDriverAssignment() {
	t.Status = TransitStatusDriverAssignmentFailed
	t.DriverID = ""
	t.Km = DistanceZero.ToKmInNumber()
	t.AwaitingDriversResponses = 0
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
