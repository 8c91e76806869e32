package service

import (
	"context"
	"log"

	"cabs/internal/domain"
)

// InvoiceGenerator issues invoices for completed transits.
type InvoiceGenerator interface {
	Generate(ctx context.Context, amount domain.Money, subjectName string) error
}

// LogInvoiceGenerator records issued invoices in the log.
type LogInvoiceGenerator struct{}

// NewLogInvoiceGenerator creates a new LogInvoiceGenerator.
func NewLogInvoiceGenerator() *LogInvoiceGenerator {
	return &LogInvoiceGenerator{}
}

func (g *LogInvoiceGenerator) Generate(_ context.Context, amount domain.Money, subjectName string) error {
	log.Printf("invoice issued for %s, amount %s", subjectName, amount.String())
	return nil
}
