package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"cabs/internal/domain"
	"cabs/internal/redis"
	"cabs/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK TRANSIT REPOSITORY
// ──────────────────────────────────────────────

// MockTransitRepository is a mock implementation of TransitRepository.
type MockTransitRepository struct {
	mu       sync.RWMutex
	transits map[string]*domain.Transit

	// Per-client transit counts for claim resolution.
	TransitCounts map[string]int

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockTransitRepository creates a new mock transit repository.
func NewMockTransitRepository() *MockTransitRepository {
	return &MockTransitRepository{
		transits:      make(map[string]*domain.Transit),
		TransitCounts: make(map[string]int),
	}
}

// AddTransit adds a transit to the mock repository.
func (m *MockTransitRepository) AddTransit(transit *domain.Transit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transits[transit.ID] = transit
}

func (m *MockTransitRepository) Create(ctx context.Context, transit *domain.Transit) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transits[transit.ID] = transit
	return nil
}

func (m *MockTransitRepository) GetByID(ctx context.Context, id string) (*domain.Transit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	transit, ok := m.transits[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *transit
	copy.ProposedDrivers = append([]string(nil), transit.ProposedDrivers...)
	copy.DriversRejections = append([]string(nil), transit.DriversRejections...)
	return &copy, nil
}

func (m *MockTransitRepository) Update(ctx context.Context, transit *domain.Transit) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transits[transit.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *transit
	m.transits[transit.ID] = &copy
	return nil
}

func (m *MockTransitRepository) CountByClientID(ctx context.Context, clientID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.TransitCounts[clientID], nil
}

func (m *MockTransitRepository) FindCompletedByDriver(ctx context.Context, driverID string, since, until time.Time) ([]*domain.Transit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Transit
	for _, t := range m.transits {
		if t.DriverID != driverID || t.Status != domain.TransitStatusCompleted {
			continue
		}
		if t.CompletedAt.Before(since) || !t.CompletedAt.Before(until) {
			continue
		}
		copy := *t
		result = append(result, &copy)
	}
	return result, nil
}

// GetTransit returns a transit for test assertions.
func (m *MockTransitRepository) GetTransit(id string) *domain.Transit {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.transits[id]
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{
		drivers: make(map[string]*domain.Driver),
	}
}

// AddDriver adds a driver to the mock repository.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &copy, nil
}

func (m *MockDriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[driver.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *driver
	m.drivers[driver.ID] = &copy
	return nil
}

// GetDriver returns a driver for test assertions.
func (m *MockDriverRepository) GetDriver(id string) *domain.Driver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.drivers[id]
}

// ──────────────────────────────────────────────
// MOCK CLIENT REPOSITORY
// ──────────────────────────────────────────────

// MockClientRepository is a mock implementation of ClientRepository.
type MockClientRepository struct {
	mu      sync.RWMutex
	clients map[string]*domain.Client
}

// NewMockClientRepository creates a new mock client repository.
func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{
		clients: make(map[string]*domain.Client),
	}
}

// AddClient adds a client to the mock repository.
func (m *MockClientRepository) AddClient(client *domain.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[client.ID] = client
}

func (m *MockClientRepository) Create(ctx context.Context, client *domain.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[client.ID] = client
	return nil
}

func (m *MockClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	client, ok := m.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *client
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK CLAIM REPOSITORIES
// ──────────────────────────────────────────────

// MockClaimRepository is a mock implementation of ClaimRepository.
type MockClaimRepository struct {
	mu     sync.RWMutex
	claims map[string]*domain.Claim

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32
}

// NewMockClaimRepository creates a new mock claim repository.
func NewMockClaimRepository() *MockClaimRepository {
	return &MockClaimRepository{
		claims: make(map[string]*domain.Claim),
	}
}

// AddClaim adds a claim to the mock repository.
func (m *MockClaimRepository) AddClaim(claim *domain.Claim) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claims[claim.ID] = claim
}

func (m *MockClaimRepository) Create(ctx context.Context, claim *domain.Claim) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claims[claim.ID] = claim
	return nil
}

func (m *MockClaimRepository) GetByID(ctx context.Context, id string) (*domain.Claim, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	claim, ok := m.claims[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *claim
	return &copy, nil
}

func (m *MockClaimRepository) Update(ctx context.Context, claim *domain.Claim) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.claims[claim.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *claim
	m.claims[claim.ID] = &copy
	return nil
}

func (m *MockClaimRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.claims), nil
}

// GetClaim returns a claim for test assertions.
func (m *MockClaimRepository) GetClaim(id string) *domain.Claim {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.claims[id]
}

// MockClaimResolverRepository is a mock implementation of ClaimResolverRepository.
type MockClaimResolverRepository struct {
	mu        sync.RWMutex
	resolvers map[string]*domain.ClaimResolver

	SaveCallCount int32
}

// NewMockClaimResolverRepository creates a new mock resolver repository.
func NewMockClaimResolverRepository() *MockClaimResolverRepository {
	return &MockClaimResolverRepository{
		resolvers: make(map[string]*domain.ClaimResolver),
	}
}

// AddResolver adds a resolver to the mock repository.
func (m *MockClaimResolverRepository) AddResolver(resolver *domain.ClaimResolver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolvers[resolver.ClientID] = resolver
}

func (m *MockClaimResolverRepository) FindByClientID(ctx context.Context, clientID string) (*domain.ClaimResolver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	resolver, ok := m.resolvers[clientID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *resolver
	copy.ClaimedTransitIDs = append([]string(nil), resolver.ClaimedTransitIDs...)
	return &copy, nil
}

func (m *MockClaimResolverRepository) Save(ctx context.Context, resolver *domain.ClaimResolver) error {
	atomic.AddInt32(&m.SaveCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *resolver
	copy.ClaimedTransitIDs = append([]string(nil), resolver.ClaimedTransitIDs...)
	m.resolvers[resolver.ClientID] = &copy
	return nil
}

// GetResolver returns a resolver for test assertions.
func (m *MockClaimResolverRepository) GetResolver(clientID string) *domain.ClaimResolver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resolvers[clientID]
}

// ──────────────────────────────────────────────
// MOCK DRIVER FEE REPOSITORY
// ──────────────────────────────────────────────

// MockDriverFeeRepository is a mock implementation of DriverFeeRepository.
type MockDriverFeeRepository struct {
	mu   sync.RWMutex
	fees map[string]*domain.DriverFee
}

// NewMockDriverFeeRepository creates a new mock fee repository.
func NewMockDriverFeeRepository() *MockDriverFeeRepository {
	return &MockDriverFeeRepository{
		fees: make(map[string]*domain.DriverFee),
	}
}

// AddFee adds a fee arrangement to the mock repository.
func (m *MockDriverFeeRepository) AddFee(fee *domain.DriverFee) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fees[fee.DriverID] = fee
}

func (m *MockDriverFeeRepository) FindByDriverID(ctx context.Context, driverID string) (*domain.DriverFee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fee, ok := m.fees[driverID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *fee
	return &copy, nil
}

func (m *MockDriverFeeRepository) Save(ctx context.Context, fee *domain.DriverFee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fees[fee.DriverID] = fee
	return nil
}

// ──────────────────────────────────────────────
// MOCK CAR TYPE REPOSITORY
// ──────────────────────────────────────────────

// MockCarTypeRepository is a mock implementation of CarTypeRepository.
type MockCarTypeRepository struct {
	mu       sync.RWMutex
	byClass  map[domain.CarClass]*domain.CarType
	counters map[domain.CarClass]int
}

// NewMockCarTypeRepository creates a new mock car type repository.
func NewMockCarTypeRepository() *MockCarTypeRepository {
	return &MockCarTypeRepository{
		byClass:  make(map[domain.CarClass]*domain.CarType),
		counters: make(map[domain.CarClass]int),
	}
}

// AddCarType adds a car type to the mock repository.
func (m *MockCarTypeRepository) AddCarType(carType *domain.CarType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byClass[carType.CarClass] = carType
}

func (m *MockCarTypeRepository) Save(ctx context.Context, carType *domain.CarType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *carType
	m.byClass[carType.CarClass] = &copy
	return nil
}

func (m *MockCarTypeRepository) GetByID(ctx context.Context, id string) (*domain.CarType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, ct := range m.byClass {
		if ct.ID == id {
			copy := *ct
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockCarTypeRepository) FindByCarClass(ctx context.Context, carClass domain.CarClass) (*domain.CarType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ct, ok := m.byClass[carClass]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *ct
	return &copy, nil
}

func (m *MockCarTypeRepository) FindByStatus(ctx context.Context, status domain.CarStatus) ([]*domain.CarType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.CarType
	for _, ct := range m.byClass {
		if ct.Status == status {
			copy := *ct
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockCarTypeRepository) Delete(ctx context.Context, carClass domain.CarClass) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byClass, carClass)
	delete(m.counters, carClass)
	return nil
}

func (m *MockCarTypeRepository) IncrementActiveCounter(ctx context.Context, carClass domain.CarClass) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[carClass]++
	return nil
}

func (m *MockCarTypeRepository) DecrementActiveCounter(ctx context.Context, carClass domain.CarClass) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[carClass]--
	return nil
}

func (m *MockCarTypeRepository) GetActiveCounter(ctx context.Context, carClass domain.CarClass) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[carClass], nil
}

// ──────────────────────────────────────────────
// MOCK POSITION AND SESSION REPOSITORIES
// ──────────────────────────────────────────────

// MockDriverPositionRepository is a mock implementation of DriverPositionRepository.
type MockDriverPositionRepository struct {
	mu        sync.RWMutex
	positions []*domain.DriverPosition
}

// NewMockDriverPositionRepository creates a new mock position repository.
func NewMockDriverPositionRepository() *MockDriverPositionRepository {
	return &MockDriverPositionRepository{}
}

func (m *MockDriverPositionRepository) Save(ctx context.Context, position *domain.DriverPosition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions = append(m.positions, position)
	return nil
}

func (m *MockDriverPositionRepository) FindAverageDriverPositionSince(ctx context.Context, latMin, latMax, lonMin, lonMax float64, since time.Time) ([]domain.DriverAvgPosition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sums := make(map[string]*domain.DriverAvgPosition)
	counts := make(map[string]int)
	for _, p := range m.positions {
		if p.SeenAt.Before(since) {
			continue
		}
		if p.Latitude < latMin || p.Latitude > latMax || p.Longitude < lonMin || p.Longitude > lonMax {
			continue
		}
		if _, ok := sums[p.DriverID]; !ok {
			sums[p.DriverID] = &domain.DriverAvgPosition{DriverID: p.DriverID}
		}
		sums[p.DriverID].Latitude += p.Latitude
		sums[p.DriverID].Longitude += p.Longitude
		counts[p.DriverID]++
	}

	result := make([]domain.DriverAvgPosition, 0, len(sums))
	for id, sum := range sums {
		n := float64(counts[id])
		result = append(result, domain.DriverAvgPosition{
			DriverID:  id,
			Latitude:  sum.Latitude / n,
			Longitude: sum.Longitude / n,
		})
	}
	return result, nil
}

// MockDriverSessionRepository is a mock implementation of DriverSessionRepository.
type MockDriverSessionRepository struct {
	mu       sync.RWMutex
	sessions []*domain.DriverSession
}

// NewMockDriverSessionRepository creates a new mock session repository.
func NewMockDriverSessionRepository() *MockDriverSessionRepository {
	return &MockDriverSessionRepository{}
}

// AddSession adds a session to the mock repository.
func (m *MockDriverSessionRepository) AddSession(session *domain.DriverSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, session)
}

func (m *MockDriverSessionRepository) Save(ctx context.Context, session *domain.DriverSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.sessions {
		if s.ID == session.ID {
			m.sessions[i] = session
			return nil
		}
	}
	m.sessions = append(m.sessions, session)
	return nil
}

func (m *MockDriverSessionRepository) FindActiveDriverIDs(ctx context.Context, driverIDs []string, carClasses []domain.CarClass) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wanted := make(map[string]bool, len(driverIDs))
	for _, id := range driverIDs {
		wanted[id] = true
	}
	classes := make(map[domain.CarClass]bool, len(carClasses))
	for _, c := range carClasses {
		classes[c] = true
	}

	var result []string
	seen := make(map[string]bool)
	for _, s := range m.sessions {
		if !s.LoggedOutAt.IsZero() {
			continue
		}
		if !wanted[s.DriverID] || !classes[s.CarClass] || seen[s.DriverID] {
			continue
		}
		seen[s.DriverID] = true
		result = append(result, s.DriverID)
	}
	return result, nil
}

func (m *MockDriverSessionRepository) FindOpenByDriverID(ctx context.Context, driverID string) (*domain.DriverSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.sessions) - 1; i >= 0; i-- {
		s := m.sessions[i]
		if s.DriverID == driverID && s.LoggedOutAt.IsZero() {
			copy := *s
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ──────────────────────────────────────────────
// MOCK REDIS STORES
// ──────────────────────────────────────────────

// MockLockStore is an in-memory implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]bool),
	}
}

func (m *MockLockStore) acquire(key string) (bool, error) {
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[key] {
		return false, nil
	}
	m.locks[key] = true
	return true, nil
}

func (m *MockLockStore) release(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
	return nil
}

func (m *MockLockStore) AcquireTransitLock(ctx context.Context, transitID string, ttl time.Duration) (bool, error) {
	return m.acquire("transit:" + transitID)
}

func (m *MockLockStore) ReleaseTransitLock(ctx context.Context, transitID string) error {
	return m.release("transit:" + transitID)
}

func (m *MockLockStore) AcquireResolverLock(ctx context.Context, clientID string, ttl time.Duration) (bool, error) {
	return m.acquire("resolver:" + clientID)
}

func (m *MockLockStore) ReleaseResolverLock(ctx context.Context, clientID string) error {
	return m.release("resolver:" + clientID)
}

// MockLocationStore is an in-memory implementation of LocationStoreInterface.
type MockLocationStore struct {
	mu        sync.RWMutex
	locations map[string]redis.DriverLocation
}

// NewMockLocationStore creates a new mock location store.
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{
		locations: make(map[string]redis.DriverLocation),
	}
}

func (m *MockLocationStore) UpdateLocation(ctx context.Context, driverID string, lat, lon float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[driverID] = redis.DriverLocation{DriverID: driverID, Lat: lat, Lon: lon}
	return nil
}

func (m *MockLocationStore) FindNearbyDrivers(ctx context.Context, lat, lon, radiusKm float64) ([]redis.DriverLocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]redis.DriverLocation, 0, len(m.locations))
	for _, loc := range m.locations {
		result = append(result, loc)
	}
	return result, nil
}

func (m *MockLocationStore) RemoveLocation(ctx context.Context, driverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locations, driverID)
	return nil
}

// ──────────────────────────────────────────────
// STUBS AND SPIES
// ──────────────────────────────────────────────

// StubGeocoder resolves addresses from a preset table; unknown addresses
// resolve to (0, 0).
type StubGeocoder struct {
	mu     sync.RWMutex
	coords map[string][2]float64

	// Error injection
	GeocodeError error
}

// NewStubGeocoder creates a new stub geocoder.
func NewStubGeocoder() *StubGeocoder {
	return &StubGeocoder{
		coords: make(map[string][2]float64),
	}
}

// SetCoords maps an address to coordinates.
func (g *StubGeocoder) SetCoords(address domain.Address, lat, lon float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.coords[address.String()] = [2]float64{lat, lon}
}

func (g *StubGeocoder) GeocodeAddress(ctx context.Context, address *domain.Address) (float64, float64, error) {
	if g.GeocodeError != nil {
		return 0, 0, g.GeocodeError
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	c := g.coords[address.String()]
	return c[0], c[1], nil
}

// SpyDriverNotifications records driver notifications.
type SpyDriverNotifications struct {
	mu             sync.Mutex
	ProposedTo     []string
	AddressChanges []string
	Cancellations  []string
	ClaimQuestions []string
}

// NewSpyDriverNotifications creates a new notification spy.
func NewSpyDriverNotifications() *SpyDriverNotifications {
	return &SpyDriverNotifications{}
}

func (s *SpyDriverNotifications) NotifyAboutPossibleTransit(driverID, transitID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ProposedTo = append(s.ProposedTo, driverID)
}

func (s *SpyDriverNotifications) NotifyAboutChangedTransitAddress(driverID, transitID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AddressChanges = append(s.AddressChanges, driverID)
}

func (s *SpyDriverNotifications) NotifyAboutCancelledTransit(driverID, transitID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cancellations = append(s.Cancellations, driverID)
}

func (s *SpyDriverNotifications) AskDriverForDetailsAboutClaim(claimNo, driverID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ClaimQuestions = append(s.ClaimQuestions, driverID)
}

// SpyClientNotifications records client notifications.
type SpyClientNotifications struct {
	mu           sync.Mutex
	Refunds      []string
	InfoRequests []string
}

// NewSpyClientNotifications creates a new notification spy.
func NewSpyClientNotifications() *SpyClientNotifications {
	return &SpyClientNotifications{}
}

func (s *SpyClientNotifications) NotifyClientAboutRefund(claimNo, clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Refunds = append(s.Refunds, clientID)
}

func (s *SpyClientNotifications) AskForMoreInformation(claimNo, clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InfoRequests = append(s.InfoRequests, clientID)
}

// SpyAwardsService records registered miles per client.
type SpyAwardsService struct {
	mu           sync.Mutex
	Miles        map[string]int
	SpecialMiles map[string]int
}

// NewSpyAwardsService creates a new awards spy.
func NewSpyAwardsService() *SpyAwardsService {
	return &SpyAwardsService{
		Miles:        make(map[string]int),
		SpecialMiles: make(map[string]int),
	}
}

func (s *SpyAwardsService) RegisterMiles(ctx context.Context, clientID string, miles int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Miles[clientID] += miles
	return nil
}

func (s *SpyAwardsService) RegisterSpecialMiles(ctx context.Context, clientID string, miles int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SpecialMiles[clientID] += miles
	return nil
}

// SpyInvoiceGenerator records generated invoices.
type SpyInvoiceGenerator struct {
	mu       sync.Mutex
	Invoices []domain.Money
	Subjects []string
}

// NewSpyInvoiceGenerator creates a new invoice spy.
func NewSpyInvoiceGenerator() *SpyInvoiceGenerator {
	return &SpyInvoiceGenerator{}
}

func (g *SpyInvoiceGenerator) Generate(ctx context.Context, amount domain.Money, subjectName string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Invoices = append(g.Invoices, amount)
	g.Subjects = append(g.Subjects, subjectName)
	return nil
}

// MockTxProvider runs the callback against the mock repositories directly.
type MockTxProvider struct {
	Transits *MockTransitRepository
	Drivers  *MockDriverRepository
}

// NewMockTxProvider creates a new mock transaction provider.
func NewMockTxProvider(transits *MockTransitRepository, drivers *MockDriverRepository) *MockTxProvider {
	return &MockTxProvider{Transits: transits, Drivers: drivers}
}

func (p *MockTxProvider) InTransaction(ctx context.Context, fn func(transits repository.TransitRepository, drivers repository.DriverRepository) error) error {
	return fn(p.Transits, p.Drivers)
}
