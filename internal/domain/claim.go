package domain

import "time"

// ClaimStatus is the lifecycle state of a claim.
type ClaimStatus string

const (
	ClaimStatusDraft     ClaimStatus = "DRAFT"
	ClaimStatusNew       ClaimStatus = "NEW"
	ClaimStatusInProcess ClaimStatus = "IN_PROCESS"
	ClaimStatusRefunded  ClaimStatus = "REFUNDED"
	ClaimStatusEscalated ClaimStatus = "ESCALATED"
)

// Claim is a client's grievance against a single completed transit.
type Claim struct {
	ID                  string
	ClaimNo             string
	ClientID            string
	TransitID           string
	Status              ClaimStatus
	Reason              string
	IncidentDescription string
	CreationDate        time.Time
	CompletionDate      time.Time
	ChangeDate          time.Time
	CompletionMode      string
}

// Refund closes the claim in favour of the client.
func (c *Claim) Refund(now time.Time) {
	c.Status = ClaimStatusRefunded
	c.CompletionDate = now
	c.ChangeDate = now
	c.CompletionMode = "AUTOMATIC"
}

// Escalate hands the claim over for manual resolution.
func (c *Claim) Escalate(now time.Time) {
	c.Status = ClaimStatusEscalated
	c.CompletionDate = now
	c.ChangeDate = now
	c.CompletionMode = "MANUAL"
}
