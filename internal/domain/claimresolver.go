package domain

// WhoToAsk indicates which party, if any, must be consulted on an
// escalated claim.
type WhoToAsk string

const (
	AskDriver WhoToAsk = "ASK_DRIVER"
	AskClient WhoToAsk = "ASK_CLIENT"
	AskNoOne  WhoToAsk = "ASK_NOONE"
)

// ClaimResolveResult is the policy decision for one claim.
type ClaimResolveResult struct {
	WhoToAsk WhoToAsk
	Decision ClaimStatus
}

// ResolveClaimConfig carries the thresholds the policy consults.
type ResolveClaimConfig struct {
	AutomaticRefundForVipThreshold      int
	NumberOfTransits                    int
	NoOfTransitsForClaimAutomaticRefund int
}

// ClaimResolver holds one client's claim history: the set of transit IDs
// the client has already claimed. It only ever grows.
type ClaimResolver struct {
	ClientID          string
	ClaimedTransitIDs []string
}

// NewClaimResolver creates an empty resolver for a client.
func NewClaimResolver(clientID string) *ClaimResolver {
	return &ClaimResolver{ClientID: clientID}
}

// Resolve decides a claim. The first decision per transit is authoritative:
// a repeated claim on an already-claimed transit is always escalated without
// asking anyone. Callers must serialize concurrent calls per client.
func (r *ClaimResolver) Resolve(transitID string, clientType ClientType, transitPrice Money, cfg ResolveClaimConfig) ClaimResolveResult {
	if contains(r.ClaimedTransitIDs, transitID) {
		return ClaimResolveResult{WhoToAsk: AskNoOne, Decision: ClaimStatusEscalated}
	}
	r.ClaimedTransitIDs = append(r.ClaimedTransitIDs, transitID)

	if len(r.ClaimedTransitIDs) <= 3 {
		return ClaimResolveResult{WhoToAsk: AskNoOne, Decision: ClaimStatusRefunded}
	}
	if clientType == ClientTypeVIP {
		if transitPrice.ToInt() < cfg.AutomaticRefundForVipThreshold {
			return ClaimResolveResult{WhoToAsk: AskNoOne, Decision: ClaimStatusRefunded}
		}
		return ClaimResolveResult{WhoToAsk: AskDriver, Decision: ClaimStatusEscalated}
	}
	if cfg.NumberOfTransits >= cfg.NoOfTransitsForClaimAutomaticRefund {
		if transitPrice.ToInt() < cfg.AutomaticRefundForVipThreshold {
			return ClaimResolveResult{WhoToAsk: AskNoOne, Decision: ClaimStatusRefunded}
		}
		return ClaimResolveResult{WhoToAsk: AskClient, Decision: ClaimStatusEscalated}
	}
	return ClaimResolveResult{WhoToAsk: AskDriver, Decision: ClaimStatusEscalated}
}
