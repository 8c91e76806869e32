package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"cabs/internal/domain"
	"cabs/internal/repository"
)

const (
	// Search rounds stop once this many proposals are pending.
	maxAwaitingResponses = 4

	// Search radius cap in kilometers. Reaching it fails the assignment.
	maxSearchRadiusKm = 20

	// Only position fixes newer than this feed the average.
	positionFreshness = 5 * time.Minute

	// At most this many closest candidates are considered per round.
	maxCandidatesPerRound = 20
)

// Dispatcher runs the expanding-radius driver search for published transits.
type Dispatcher struct {
	transits      repository.TransitRepository
	drivers       repository.DriverRepository
	positions     repository.DriverPositionRepository
	sessions      repository.DriverSessionRepository
	carTypes      *CarTypeService
	geocoder      Geocoder
	notifications DriverNotificationService

	retryDelay time.Duration
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(
	transits repository.TransitRepository,
	drivers repository.DriverRepository,
	positions repository.DriverPositionRepository,
	sessions repository.DriverSessionRepository,
	carTypes *CarTypeService,
	geocoder Geocoder,
	notifications DriverNotificationService,
	retryDelay time.Duration,
) *Dispatcher {
	return &Dispatcher{
		transits:      transits,
		drivers:       drivers,
		positions:     positions,
		sessions:      sessions,
		carTypes:      carTypes,
		geocoder:      geocoder,
		notifications: notifications,
		retryDelay:    retryDelay,
	}
}

// FindDriversForTransit searches for drivers in rounds of growing radius
// until enough proposals are pending, the radius cap is hit, or the
// publication expires. The transit is persisted after every round that
// found candidates, so drivers can accept while the search keeps running.
func (d *Dispatcher) FindDriversForTransit(ctx context.Context, transit *domain.Transit) (*domain.Transit, error) {
	if transit.Status != domain.TransitStatusWaitingForDriverAssignment {
		return nil, fmt.Errorf("%w: wrong status for driver search, id = %s", domain.ErrNotAcceptable, transit.ID)
	}

	for radiusKm := 1; ; radiusKm++ {
		if transit.AwaitingDriversResponses > maxAwaitingResponses {
			return transit, nil
		}

		if transit.ShouldNotWaitForDriverAnyMore(time.Now()) || radiusKm >= maxSearchRadiusKm {
			transit.FailDriverAssignment()
			if err := d.transits.Update(ctx, transit); err != nil {
				return nil, fmt.Errorf("failed to update transit: %w", err)
			}
			return transit, nil
		}

		// An unresolvable pickup degrades the search to the (0,0) origin
		// instead of aborting it.
		lat, lon, err := d.geocoder.GeocodeAddress(ctx, &transit.From)
		if err != nil {
			log.Printf("geocoding failed for transit %s: %v", transit.ID, err)
			lat, lon = 0, 0
		}

		found, stop, err := d.searchRound(ctx, transit, lat, lon, float64(radiusKm))
		if err != nil {
			return nil, err
		}
		if found {
			if err := d.transits.Update(ctx, transit); err != nil {
				return nil, fmt.Errorf("failed to update transit: %w", err)
			}
		}
		if stop {
			return transit, nil
		}

		select {
		case <-ctx.Done():
			return transit, ctx.Err()
		case <-time.After(d.retryDelay):
		}
	}
}

// searchRound runs one bounding-box query and proposes the transit to every
// eligible driver found. found reports whether any candidates were in the
// box; stop reports that the search cannot proceed (no usable car class).
func (d *Dispatcher) searchRound(ctx context.Context, transit *domain.Transit, lat, lon, radiusKm float64) (found, stop bool, err error) {
	latMin, latMax, lonMin, lonMax := boundingBox(lat, lon, radiusKm)

	positions, err := d.positions.FindAverageDriverPositionSince(ctx, latMin, latMax, lonMin, lonMax, time.Now().Add(-positionFreshness))
	if err != nil {
		return false, false, fmt.Errorf("failed to query driver positions: %w", err)
	}
	if len(positions) == 0 {
		return false, false, nil
	}

	sort.Slice(positions, func(i, j int) bool {
		return planarDistance(lat, lon, positions[i]) < planarDistance(lat, lon, positions[j])
	})
	if len(positions) > maxCandidatesPerRound {
		positions = positions[:maxCandidatesPerRound]
	}

	carClasses, err := d.resolveCarClasses(ctx, transit.CarClass)
	if err != nil {
		return false, false, err
	}
	if len(carClasses) == 0 {
		return false, true, nil
	}

	driverIDs := make([]string, 0, len(positions))
	for _, p := range positions {
		driverIDs = append(driverIDs, p.DriverID)
	}

	activeIDs, err := d.sessions.FindActiveDriverIDs(ctx, driverIDs, carClasses)
	if err != nil {
		return false, false, fmt.Errorf("failed to query driver sessions: %w", err)
	}
	active := make(map[string]bool, len(activeIDs))
	for _, id := range activeIDs {
		active[id] = true
	}

	for _, p := range positions {
		if !active[p.DriverID] {
			continue
		}
		if !transit.CanProposeTo(p.DriverID) {
			continue
		}

		driver, err := d.drivers.GetByID(ctx, p.DriverID)
		if err != nil {
			log.Printf("skipping driver %s for transit %s: %v", p.DriverID, transit.ID, err)
			continue
		}
		if driver.Status != domain.DriverStatusActive || driver.Occupied {
			continue
		}

		transit.ProposeTo(p.DriverID)
		d.notifications.NotifyAboutPossibleTransit(p.DriverID, transit.ID)
	}

	return true, false, nil
}

// resolveCarClasses intersects the currently active classes with the
// transit's requested class. An empty request means any active class; an
// empty result means the search cannot serve this transit right now.
func (d *Dispatcher) resolveCarClasses(ctx context.Context, requested domain.CarClass) ([]domain.CarClass, error) {
	activeClasses, err := d.carTypes.FindActiveCarClasses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find active car classes: %w", err)
	}
	if requested == "" {
		return activeClasses, nil
	}
	for _, c := range activeClasses {
		if c == requested {
			return []domain.CarClass{requested}, nil
		}
	}
	return nil, nil
}

// boundingBox computes the lat/lon bounds of a square box of the given
// half-side around a point, on a spherical earth.
func boundingBox(lat, lon, km float64) (latMin, latMax, lonMin, lonMax float64) {
	dLat := km / earthRadiusKm
	dLon := km / (earthRadiusKm * math.Cos(math.Pi*lat/180))

	latMin = lat - dLat*180/math.Pi
	latMax = lat + dLat*180/math.Pi
	lonMin = lon - dLon*180/math.Pi
	lonMax = lon + dLon*180/math.Pi
	return latMin, latMax, lonMin, lonMax
}

// planarDistance is the flat-earth comparator used to rank nearby drivers.
// Accurate enough inside a city-sized box.
func planarDistance(lat, lon float64, p domain.DriverAvgPosition) float64 {
	dLat := lat - p.Latitude
	dLon := lon - p.Longitude
	return math.Sqrt(dLat*dLat + dLon*dLon)
}
