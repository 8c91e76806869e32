package domain

import (
	"fmt"
	"testing"
)

var resolveCfg = ResolveClaimConfig{
	AutomaticRefundForVipThreshold:      4000,
	NoOfTransitsForClaimAutomaticRefund: 10,
}

func cfgWithTransits(n int) ResolveClaimConfig {
	cfg := resolveCfg
	cfg.NumberOfTransits = n
	return cfg
}

// claimN advances the resolver past n prior claims on distinct transits.
func claimN(r *ClaimResolver, n int) {
	for i := 0; i < n; i++ {
		r.Resolve(fmt.Sprintf("prior-transit-%d", i), ClientTypeNormal, NewMoney(100), cfgWithTransits(0))
	}
}

func TestResolveFirstThreeClaimsAlwaysRefunded(t *testing.T) {
	r := NewClaimResolver("client-1")

	for i := 0; i < 3; i++ {
		result := r.Resolve(fmt.Sprintf("transit-%d", i), ClientTypeNormal, NewMoney(99999), cfgWithTransits(0))
		if result.Decision != ClaimStatusRefunded {
			t.Errorf("claim %d: expected REFUNDED, got %s", i+1, result.Decision)
		}
		if result.WhoToAsk != AskNoOne {
			t.Errorf("claim %d: expected ASK_NOONE, got %s", i+1, result.WhoToAsk)
		}
	}
}

func TestResolveRepeatedClaimEscalated(t *testing.T) {
	r := NewClaimResolver("client-1")

	r.Resolve("transit-1", ClientTypeNormal, NewMoney(100), cfgWithTransits(0))
	result := r.Resolve("transit-1", ClientTypeNormal, NewMoney(100), cfgWithTransits(0))

	if result.Decision != ClaimStatusEscalated {
		t.Errorf("expected ESCALATED, got %s", result.Decision)
	}
	if result.WhoToAsk != AskNoOne {
		t.Errorf("expected ASK_NOONE, got %s", result.WhoToAsk)
	}
	if len(r.ClaimedTransitIDs) != 1 {
		t.Errorf("repeated claim must not grow the ledger, got %d entries", len(r.ClaimedTransitIDs))
	}
}

func TestResolveVipBelowThresholdRefunded(t *testing.T) {
	r := NewClaimResolver("client-1")
	claimN(r, 3)

	result := r.Resolve("transit-x", ClientTypeVIP, NewMoney(3999), cfgWithTransits(0))
	if result.Decision != ClaimStatusRefunded {
		t.Errorf("expected REFUNDED, got %s", result.Decision)
	}
	if result.WhoToAsk != AskNoOne {
		t.Errorf("expected ASK_NOONE, got %s", result.WhoToAsk)
	}
}

func TestResolveVipAboveThresholdAsksDriver(t *testing.T) {
	r := NewClaimResolver("client-1")
	claimN(r, 3)

	result := r.Resolve("transit-x", ClientTypeVIP, NewMoney(4000), cfgWithTransits(0))
	if result.Decision != ClaimStatusEscalated {
		t.Errorf("expected ESCALATED, got %s", result.Decision)
	}
	if result.WhoToAsk != AskDriver {
		t.Errorf("expected ASK_DRIVER, got %s", result.WhoToAsk)
	}
}

func TestResolveLoyalClientBelowThresholdRefunded(t *testing.T) {
	r := NewClaimResolver("client-1")
	claimN(r, 3)

	result := r.Resolve("transit-x", ClientTypeNormal, NewMoney(3999), cfgWithTransits(15))
	if result.Decision != ClaimStatusRefunded {
		t.Errorf("expected REFUNDED, got %s", result.Decision)
	}
	if result.WhoToAsk != AskNoOne {
		t.Errorf("expected ASK_NOONE, got %s", result.WhoToAsk)
	}
}

func TestResolveLoyalClientAboveThresholdAsksClient(t *testing.T) {
	r := NewClaimResolver("client-1")
	claimN(r, 3)

	result := r.Resolve("transit-x", ClientTypeNormal, NewMoney(4000), cfgWithTransits(15))
	if result.Decision != ClaimStatusEscalated {
		t.Errorf("expected ESCALATED, got %s", result.Decision)
	}
	if result.WhoToAsk != AskClient {
		t.Errorf("expected ASK_CLIENT, got %s", result.WhoToAsk)
	}
}

func TestResolveOccasionalClientAsksDriver(t *testing.T) {
	r := NewClaimResolver("client-1")
	claimN(r, 3)

	result := r.Resolve("transit-x", ClientTypeNormal, NewMoney(100), cfgWithTransits(2))
	if result.Decision != ClaimStatusEscalated {
		t.Errorf("expected ESCALATED, got %s", result.Decision)
	}
	if result.WhoToAsk != AskDriver {
		t.Errorf("expected ASK_DRIVER, got %s", result.WhoToAsk)
	}
}
