package postgres

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"cabs/internal/domain"
)

// recordingQuerier captures statements and their arguments.
type recordingQuerier struct {
	queries []string
	args    [][]any
}

func (q *recordingQuerier) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	q.queries = append(q.queries, query)
	q.args = append(q.args, args)
	return oneRowResult{}, nil
}

func (q *recordingQuerier) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

func (q *recordingQuerier) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, nil
}

type oneRowResult struct{}

func (oneRowResult) LastInsertId() (int64, error) { return 0, nil }
func (oneRowResult) RowsAffected() (int64, error) { return 1, nil }

func recordedTransit() *domain.Transit {
	from := domain.Address{Country: "Polska", City: "Warszawa", Street: "Młynarska", BuildingNumber: 20, PostalCode: "01-171"}
	to := domain.Address{Country: "Polska", City: "Warszawa", Street: "Żytnia", BuildingNumber: 25}
	when := time.Date(2022, time.April, 5, 10, 0, 0, 0, time.UTC)
	return domain.NewTransit("transit-1", from, to, "client-1", domain.CarClassVan, when, domain.OfKm(10))
}

func TestCreatePersistsFullAddresses(t *testing.T) {
	q := &recordingQuerier{}
	repo := &TransitRepository{q: q}

	if err := repo.Create(context.Background(), recordedTransit()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(q.args) != 1 {
		t.Fatalf("expected one statement, got %d", len(q.queries))
	}

	for _, column := range []string{"from_city", "from_street", "from_building_number", "to_city", "to_street"} {
		if !strings.Contains(q.queries[0], column) {
			t.Errorf("insert must write column %s", column)
		}
	}

	args := q.args[0]
	// Positions follow transitColumns: id, status, then the two addresses.
	if args[2] != "Polska" || args[3] != "Warszawa" || args[4] != "Młynarska" || args[5] != 20 {
		t.Errorf("pickup address fields not persisted, got %v", args[2:7])
	}
	if args[8] != "Warszawa" || args[9] != "Żytnia" || args[10] != 25 {
		t.Errorf("destination address fields not persisted, got %v", args[7:12])
	}
}

func TestUpdatePersistsFullAddresses(t *testing.T) {
	q := &recordingQuerier{}
	repo := &TransitRepository{q: q}

	if err := repo.Update(context.Background(), recordedTransit()); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	args := q.args[0]
	if args[4] != "Młynarska" || args[9] != "Żytnia" {
		t.Errorf("address fields not persisted on update, got from=%v to=%v", args[2:7], args[7:12])
	}
}
