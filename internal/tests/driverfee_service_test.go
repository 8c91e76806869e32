package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"cabs/internal/domain"
	"cabs/internal/service"
)

type driverFeeFixture struct {
	fees     *MockDriverFeeRepository
	transits *MockTransitRepository
	service  *service.DriverFeeService
}

func newDriverFeeFixture() *driverFeeFixture {
	f := &driverFeeFixture{
		fees:     NewMockDriverFeeRepository(),
		transits: NewMockTransitRepository(),
	}
	f.service = service.NewDriverFeeService(f.fees, f.transits)
	return f
}

// completedTransit seeds a completed, priced transit for the given driver.
func (f *driverFeeFixture) completedTransit(id, driverID string, price int, completedAt time.Time) *domain.Transit {
	p := domain.NewMoney(price)
	transit := &domain.Transit{
		ID:          id,
		Status:      domain.TransitStatusCompleted,
		ClientID:    "client-1",
		DriverID:    driverID,
		Price:       &p,
		CompletedAt: completedAt,
	}
	f.transits.AddTransit(transit)
	return transit
}

func (f *driverFeeFixture) flatFee(driverID string, amount int) {
	f.fees.AddFee(&domain.DriverFee{
		ID:       "fee-" + driverID,
		DriverID: driverID,
		FeeType:  domain.FeeTypeFlat,
		Amount:   amount,
	})
}

func TestCalculateDriverFeeReturnsSettledFee(t *testing.T) {
	f := newDriverFeeFixture()
	transit := f.completedTransit("transit-1", "driver-1", 2000, time.Date(2022, time.April, 5, 12, 0, 0, 0, time.UTC))
	settled := domain.NewMoney(1512)
	transit.DriversFee = &settled

	// No fee arrangement is on file; the stored fee must be returned as is.
	fee, err := f.service.CalculateDriverFee(context.Background(), "transit-1")
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if !fee.Equals(settled) {
		t.Errorf("expected settled fee %s, got %s", settled, fee)
	}
}

func TestCalculateDriverFeeUsesArrangement(t *testing.T) {
	f := newDriverFeeFixture()
	f.completedTransit("transit-1", "driver-1", 2000, time.Date(2022, time.April, 5, 12, 0, 0, 0, time.UTC))
	f.flatFee("driver-1", 500)

	fee, err := f.service.CalculateDriverFee(context.Background(), "transit-1")
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if want := domain.NewMoney(1500); !fee.Equals(want) {
		t.Errorf("expected fee %s, got %s", want, fee)
	}
}

func TestCalculateDriverFeeWithoutArrangement(t *testing.T) {
	f := newDriverFeeFixture()
	f.completedTransit("transit-1", "driver-1", 2000, time.Date(2022, time.April, 5, 12, 0, 0, 0, time.UTC))

	_, err := f.service.CalculateDriverFee(context.Background(), "transit-1")
	if !errors.Is(err, service.ErrDriverFeeNotDefined) {
		t.Errorf("expected ErrDriverFeeNotDefined, got %v", err)
	}
}

func TestMonthlyPaymentSumsTransitsCompletedInMonth(t *testing.T) {
	f := newDriverFeeFixture()
	f.flatFee("driver-1", 500)
	f.flatFee("driver-2", 500)

	f.completedTransit("transit-1", "driver-1", 2000, time.Date(2022, time.April, 3, 9, 0, 0, 0, time.UTC))
	f.completedTransit("transit-2", "driver-1", 3000, time.Date(2022, time.April, 28, 21, 0, 0, 0, time.UTC))
	// Outside the month or belonging to another driver.
	f.completedTransit("transit-3", "driver-1", 9000, time.Date(2022, time.May, 1, 0, 0, 0, 0, time.UTC))
	f.completedTransit("transit-4", "driver-2", 9000, time.Date(2022, time.April, 10, 12, 0, 0, 0, time.UTC))

	payment, err := f.service.CalculateDriverMonthlyPayment(context.Background(), "driver-1", 2022, time.April)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if want := domain.NewMoney(4000); !payment.Equals(want) {
		t.Errorf("expected payment %s, got %s", want, payment)
	}
}

func TestMonthlyPaymentWithoutTransitsIsZero(t *testing.T) {
	f := newDriverFeeFixture()

	// No fee arrangement on file either; an empty month must not need one.
	payment, err := f.service.CalculateDriverMonthlyPayment(context.Background(), "driver-1", 2022, time.April)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if !payment.Equals(domain.MoneyZero) {
		t.Errorf("expected zero payment, got %s", payment)
	}
}

func TestYearlyPaymentGroupsByMonth(t *testing.T) {
	f := newDriverFeeFixture()
	f.flatFee("driver-1", 500)

	f.completedTransit("transit-1", "driver-1", 2000, time.Date(2022, time.February, 14, 8, 0, 0, 0, time.UTC))
	f.completedTransit("transit-2", "driver-1", 3000, time.Date(2022, time.November, 2, 19, 0, 0, 0, time.UTC))
	// A different year stays out of the report.
	f.completedTransit("transit-3", "driver-1", 9000, time.Date(2021, time.November, 2, 19, 0, 0, 0, time.UTC))

	payments, err := f.service.CalculateDriverYearlyPayment(context.Background(), "driver-1", 2022)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if len(payments) != 12 {
		t.Fatalf("expected 12 months, got %d", len(payments))
	}
	if want := domain.NewMoney(1500); !payments[time.February].Equals(want) {
		t.Errorf("expected February payment %s, got %s", want, payments[time.February])
	}
	if want := domain.NewMoney(2500); !payments[time.November].Equals(want) {
		t.Errorf("expected November payment %s, got %s", want, payments[time.November])
	}
	if !payments[time.June].Equals(domain.MoneyZero) {
		t.Errorf("expected zero June payment, got %s", payments[time.June])
	}
}
