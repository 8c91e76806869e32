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

// Per-client claim resolution is serialized by a short Redis lock.
const resolverLockTTL = 10 * time.Second

// Special miles credited to a VIP whose claim is auto-refunded.
const specialMilesForVipRefund = 10

// ClaimService files claims and resolves them automatically where policy
// allows.
type ClaimService struct {
	claims              repository.ClaimRepository
	resolvers           repository.ClaimResolverRepository
	transits            repository.TransitRepository
	clients             repository.ClientRepository
	locks               redis.LockStoreInterface
	awards              AwardsService
	clientNotifications ClientNotificationService
	driverNotifications DriverNotificationService

	vipRefundThreshold int
	loyalThreshold     int
}

// NewClaimService creates a new ClaimService.
func NewClaimService(
	claims repository.ClaimRepository,
	resolvers repository.ClaimResolverRepository,
	transits repository.TransitRepository,
	clients repository.ClientRepository,
	locks redis.LockStoreInterface,
	awards AwardsService,
	clientNotifications ClientNotificationService,
	driverNotifications DriverNotificationService,
	vipRefundThreshold int,
	loyalThreshold int,
) *ClaimService {
	return &ClaimService{
		claims:              claims,
		resolvers:           resolvers,
		transits:            transits,
		clients:             clients,
		locks:               locks,
		awards:              awards,
		clientNotifications: clientNotifications,
		driverNotifications: driverNotifications,
		vipRefundThreshold:  vipRefundThreshold,
		loyalThreshold:      loyalThreshold,
	}
}

// CreateClaim files a claim against a transit. Claim numbers are assigned
// sequentially within the day of year, e.g. "14/227".
func (s *ClaimService) CreateClaim(ctx context.Context, clientID, transitID, reason, incidentDescription string, isDraft bool) (*domain.Claim, error) {
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if _, err := s.transits.GetByID(ctx, transitID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTransitNotFound
		}
		return nil, fmt.Errorf("failed to get transit: %w", err)
	}

	count, err := s.claims.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count claims: %w", err)
	}

	now := time.Now()
	status := domain.ClaimStatusNew
	if isDraft {
		status = domain.ClaimStatusDraft
	}

	claim := &domain.Claim{
		ID:                  uuid.New().String(),
		ClaimNo:             fmt.Sprintf("%d/%d", count+1, now.YearDay()),
		ClientID:            clientID,
		TransitID:           transitID,
		Status:              status,
		Reason:              reason,
		IncidentDescription: incidentDescription,
		CreationDate:        now,
		ChangeDate:          now,
	}

	if err := s.claims.Create(ctx, claim); err != nil {
		return nil, fmt.Errorf("failed to create claim: %w", err)
	}

	return claim, nil
}

// MarkClaimAsNew promotes a draft claim to NEW so it can be resolved.
func (s *ClaimService) MarkClaimAsNew(ctx context.Context, claimID string) (*domain.Claim, error) {
	claim, err := s.getClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim.Status != domain.ClaimStatusDraft {
		return nil, fmt.Errorf("%w: only draft claims can be marked as new, id = %s", domain.ErrForbidden, claimID)
	}

	claim.Status = domain.ClaimStatusNew
	claim.ChangeDate = time.Now()
	if err := s.claims.Update(ctx, claim); err != nil {
		return nil, fmt.Errorf("failed to update claim: %w", err)
	}
	return claim, nil
}

// TryToResolveAutomatically runs the resolution policy on a NEW claim and
// applies its decision: refund with notifications and VIP miles, or
// escalation with a question to the right party.
func (s *ClaimService) TryToResolveAutomatically(ctx context.Context, claimID string) (*domain.Claim, error) {
	claim, err := s.getClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim.Status != domain.ClaimStatusNew {
		return nil, fmt.Errorf("%w: only new claims can be resolved, id = %s", domain.ErrForbidden, claimID)
	}

	acquired, err := s.locks.AcquireResolverLock(ctx, claim.ClientID, resolverLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire resolver lock: %w", err)
	}
	if !acquired {
		return nil, ErrClaimResolutionInProgress
	}
	// The TTL reclaims the lock if the release fails.
	defer func() {
		_ = s.locks.ReleaseResolverLock(context.WithoutCancel(ctx), claim.ClientID)
	}()

	transit, err := s.transits.GetByID(ctx, claim.TransitID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTransitNotFound
		}
		return nil, fmt.Errorf("failed to get transit: %w", err)
	}
	if transit.Price == nil {
		return nil, fmt.Errorf("%w: transit %s has no final price", domain.ErrForbidden, transit.ID)
	}

	client, err := s.clients.GetByID(ctx, claim.ClientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	transitCount, err := s.transits.CountByClientID(ctx, claim.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to count transits: %w", err)
	}

	resolver, err := s.resolvers.FindByClientID(ctx, claim.ClientID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to get claim resolver: %w", err)
		}
		resolver = domain.NewClaimResolver(claim.ClientID)
	}

	result := resolver.Resolve(claim.TransitID, client.Type, *transit.Price, domain.ResolveClaimConfig{
		AutomaticRefundForVipThreshold:      s.vipRefundThreshold,
		NumberOfTransits:                    transitCount,
		NoOfTransitsForClaimAutomaticRefund: s.loyalThreshold,
	})

	if err := s.resolvers.Save(ctx, resolver); err != nil {
		return nil, fmt.Errorf("failed to save claim resolver: %w", err)
	}

	now := time.Now()
	switch result.Decision {
	case domain.ClaimStatusRefunded:
		claim.Refund(now)
	default:
		claim.Escalate(now)
	}
	if err := s.claims.Update(ctx, claim); err != nil {
		return nil, fmt.Errorf("failed to update claim: %w", err)
	}

	if result.Decision == domain.ClaimStatusRefunded {
		s.clientNotifications.NotifyClientAboutRefund(claim.ClaimNo, claim.ClientID)
		if client.Type == domain.ClientTypeVIP {
			if err := s.awards.RegisterSpecialMiles(ctx, claim.ClientID, specialMilesForVipRefund); err != nil {
				return nil, fmt.Errorf("failed to register special miles: %w", err)
			}
		}
		return claim, nil
	}

	switch result.WhoToAsk {
	case domain.AskDriver:
		s.driverNotifications.AskDriverForDetailsAboutClaim(claim.ClaimNo, transit.DriverID)
	case domain.AskClient:
		s.clientNotifications.AskForMoreInformation(claim.ClaimNo, claim.ClientID)
	}

	return claim, nil
}

func (s *ClaimService) getClaim(ctx context.Context, claimID string) (*domain.Claim, error) {
	claim, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}
	return claim, nil
}
