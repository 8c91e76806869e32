package domain

// ClientType distinguishes regular clients from VIPs.
type ClientType string

const (
	ClientTypeNormal ClientType = "NORMAL"
	ClientTypeVIP    ClientType = "VIP"
)

// PaymentType is the client's default payment arrangement.
type PaymentType string

const (
	PaymentTypePrePaid        PaymentType = "PRE_PAID"
	PaymentTypePostPaid       PaymentType = "POST_PAID"
	PaymentTypeMonthlyInvoice PaymentType = "MONTHLY_INVOICE"
)

// Client represents a rider account.
type Client struct {
	ID          string
	Type        ClientType
	Name        string
	LastName    string
	PaymentType PaymentType
}
