package tests

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"cabs/internal/domain"
	"cabs/internal/service"
)

type claimFixture struct {
	claims              *MockClaimRepository
	resolvers           *MockClaimResolverRepository
	transits            *MockTransitRepository
	clients             *MockClientRepository
	locks               *MockLockStore
	awards              *SpyAwardsService
	clientNotifications *SpyClientNotifications
	driverNotifications *SpyDriverNotifications
	service             *service.ClaimService
}

func newClaimFixture() *claimFixture {
	f := &claimFixture{
		claims:              NewMockClaimRepository(),
		resolvers:           NewMockClaimResolverRepository(),
		transits:            NewMockTransitRepository(),
		clients:             NewMockClientRepository(),
		locks:               NewMockLockStore(),
		awards:              NewSpyAwardsService(),
		clientNotifications: NewSpyClientNotifications(),
		driverNotifications: NewSpyDriverNotifications(),
	}
	f.service = service.NewClaimService(f.claims, f.resolvers, f.transits, f.clients, f.locks, f.awards, f.clientNotifications, f.driverNotifications, 4000, 10)
	return f
}

// completedTransit seeds a priced transit driven by driver-1.
func (f *claimFixture) completedTransit(id string, clientID string, price int) *domain.Transit {
	p := domain.NewMoney(price)
	transit := &domain.Transit{
		ID:       id,
		Status:   domain.TransitStatusCompleted,
		ClientID: clientID,
		DriverID: "driver-1",
		Price:    &p,
	}
	f.transits.AddTransit(transit)
	return transit
}

func (f *claimFixture) newClaim(clientID, transitID string) *domain.Claim {
	claim := &domain.Claim{
		ID:        "claim-" + transitID,
		ClaimNo:   "1/1",
		ClientID:  clientID,
		TransitID: transitID,
		Status:    domain.ClaimStatusNew,
	}
	f.claims.AddClaim(claim)
	return claim
}

func TestCreateClaimAssignsDailyNumber(t *testing.T) {
	f := newClaimFixture()
	f.clients.AddClient(&domain.Client{ID: "client-1", Type: domain.ClientTypeNormal})
	f.completedTransit("transit-1", "client-1", 2000)

	claim, err := f.service.CreateClaim(context.Background(), "client-1", "transit-1", "dirty car", "", false)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	want := fmt.Sprintf("1/%d", time.Now().YearDay())
	if claim.ClaimNo != want {
		t.Errorf("expected claim number %q, got %q", want, claim.ClaimNo)
	}
	if claim.Status != domain.ClaimStatusNew {
		t.Errorf("expected NEW, got %s", claim.Status)
	}

	second, err := f.service.CreateClaim(context.Background(), "client-1", "transit-1", "late pickup", "", true)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if want := fmt.Sprintf("2/%d", time.Now().YearDay()); second.ClaimNo != want {
		t.Errorf("expected claim number %q, got %q", want, second.ClaimNo)
	}
	if second.Status != domain.ClaimStatusDraft {
		t.Errorf("expected DRAFT, got %s", second.Status)
	}
}

func TestMarkClaimAsNewRequiresDraft(t *testing.T) {
	f := newClaimFixture()
	claim := f.newClaim("client-1", "transit-1")
	claim.Status = domain.ClaimStatusDraft
	f.claims.AddClaim(claim)

	promoted, err := f.service.MarkClaimAsNew(context.Background(), claim.ID)
	if err != nil {
		t.Fatalf("mark as new failed: %v", err)
	}
	if promoted.Status != domain.ClaimStatusNew {
		t.Errorf("expected NEW, got %s", promoted.Status)
	}

	if _, err := f.service.MarkClaimAsNew(context.Background(), claim.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden on a non-draft claim, got %v", err)
	}
}

func TestResolveRefundsAndNotifiesClient(t *testing.T) {
	f := newClaimFixture()
	f.clients.AddClient(&domain.Client{ID: "client-1", Type: domain.ClientTypeNormal})
	f.transits.TransitCounts["client-1"] = 2
	f.completedTransit("transit-1", "client-1", 2000)
	claim := f.newClaim("client-1", "transit-1")

	resolved, err := f.service.TryToResolveAutomatically(context.Background(), claim.ID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if resolved.Status != domain.ClaimStatusRefunded {
		t.Errorf("expected REFUNDED, got %s", resolved.Status)
	}
	if stored := f.claims.GetClaim(claim.ID); stored.Status != domain.ClaimStatusRefunded {
		t.Errorf("refund must be persisted, got %s", stored.Status)
	}
	if len(f.clientNotifications.Refunds) != 1 || f.clientNotifications.Refunds[0] != "client-1" {
		t.Errorf("expected refund notification for client-1, got %v", f.clientNotifications.Refunds)
	}
	if f.resolvers.SaveCallCount != 1 {
		t.Errorf("expected the resolver ledger saved once, got %d", f.resolvers.SaveCallCount)
	}
	if got := f.awards.SpecialMiles["client-1"]; got != 0 {
		t.Errorf("regular client must not earn special miles, got %d", got)
	}
}

func TestResolveCreditsSpecialMilesForVip(t *testing.T) {
	f := newClaimFixture()
	f.clients.AddClient(&domain.Client{ID: "client-vip", Type: domain.ClientTypeVIP})
	f.completedTransit("transit-1", "client-vip", 2000)
	claim := f.newClaim("client-vip", "transit-1")

	resolved, err := f.service.TryToResolveAutomatically(context.Background(), claim.ID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if resolved.Status != domain.ClaimStatusRefunded {
		t.Errorf("expected REFUNDED, got %s", resolved.Status)
	}
	if got := f.awards.SpecialMiles["client-vip"]; got != 10 {
		t.Errorf("expected 10 special miles, got %d", got)
	}
}

func TestResolveEscalatesExpensiveVipClaimToDriver(t *testing.T) {
	f := newClaimFixture()
	f.clients.AddClient(&domain.Client{ID: "client-vip", Type: domain.ClientTypeVIP})
	f.resolvers.AddResolver(&domain.ClaimResolver{
		ClientID:          "client-vip",
		ClaimedTransitIDs: []string{"t-a", "t-b", "t-c"},
	})
	f.completedTransit("transit-1", "client-vip", 5000)
	claim := f.newClaim("client-vip", "transit-1")

	resolved, err := f.service.TryToResolveAutomatically(context.Background(), claim.ID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if resolved.Status != domain.ClaimStatusEscalated {
		t.Errorf("expected ESCALATED, got %s", resolved.Status)
	}
	if len(f.driverNotifications.ClaimQuestions) != 1 || f.driverNotifications.ClaimQuestions[0] != "driver-1" {
		t.Errorf("expected the driver asked for details, got %v", f.driverNotifications.ClaimQuestions)
	}
	if len(f.clientNotifications.Refunds) != 0 {
		t.Error("no refund notification expected on escalation")
	}
}

func TestResolveEscalatesExpensiveLoyalClaimToClient(t *testing.T) {
	f := newClaimFixture()
	f.clients.AddClient(&domain.Client{ID: "client-1", Type: domain.ClientTypeNormal})
	f.transits.TransitCounts["client-1"] = 15

	// Burn through the three lenient refunds first.
	for i := 0; i < 3; i++ {
		transitID := fmt.Sprintf("transit-%d", i)
		f.completedTransit(transitID, "client-1", 2000)
		claim := f.newClaim("client-1", transitID)
		if _, err := f.service.TryToResolveAutomatically(context.Background(), claim.ID); err != nil {
			t.Fatal(err)
		}
	}

	f.completedTransit("transit-big", "client-1", 5000)
	claim := f.newClaim("client-1", "transit-big")

	resolved, err := f.service.TryToResolveAutomatically(context.Background(), claim.ID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if resolved.Status != domain.ClaimStatusEscalated {
		t.Errorf("expected ESCALATED, got %s", resolved.Status)
	}
	if len(f.clientNotifications.InfoRequests) != 1 || f.clientNotifications.InfoRequests[0] != "client-1" {
		t.Errorf("expected the client asked for more information, got %v", f.clientNotifications.InfoRequests)
	}
}

func TestResolveRejectsNonNewClaim(t *testing.T) {
	f := newClaimFixture()
	claim := f.newClaim("client-1", "transit-1")
	claim.Status = domain.ClaimStatusRefunded
	f.claims.AddClaim(claim)

	_, err := f.service.TryToResolveAutomatically(context.Background(), claim.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestResolveRejectsConcurrentResolution(t *testing.T) {
	f := newClaimFixture()
	f.clients.AddClient(&domain.Client{ID: "client-1", Type: domain.ClientTypeNormal})
	f.completedTransit("transit-1", "client-1", 2000)
	claim := f.newClaim("client-1", "transit-1")

	if ok, _ := f.locks.AcquireResolverLock(context.Background(), "client-1", time.Second); !ok {
		t.Fatal("fixture lock acquisition failed")
	}

	_, err := f.service.TryToResolveAutomatically(context.Background(), claim.ID)
	if !errors.Is(err, service.ErrClaimResolutionInProgress) {
		t.Errorf("expected ErrClaimResolutionInProgress, got %v", err)
	}
}

func TestResolveRequiresFinalPrice(t *testing.T) {
	f := newClaimFixture()
	f.clients.AddClient(&domain.Client{ID: "client-1", Type: domain.ClientTypeNormal})
	f.transits.AddTransit(&domain.Transit{ID: "transit-1", Status: domain.TransitStatusInTransit, ClientID: "client-1"})
	claim := f.newClaim("client-1", "transit-1")

	_, err := f.service.TryToResolveAutomatically(context.Background(), claim.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden without a final price, got %v", err)
	}
}
