package service

import (
	"context"
	"log"
)

// AwardsService registers loyalty miles for clients.
type AwardsService interface {
	RegisterMiles(ctx context.Context, clientID string, miles int) error
	RegisterSpecialMiles(ctx context.Context, clientID string, miles int) error
}

// LogAwardsService records awarded miles in the log. A real loyalty backend
// can replace it without touching the transit or claim flows.
type LogAwardsService struct{}

// NewLogAwardsService creates a new LogAwardsService.
func NewLogAwardsService() *LogAwardsService {
	return &LogAwardsService{}
}

func (s *LogAwardsService) RegisterMiles(_ context.Context, clientID string, miles int) error {
	log.Printf("awarded %d miles to client %s", miles, clientID)
	return nil
}

func (s *LogAwardsService) RegisterSpecialMiles(_ context.Context, clientID string, miles int) error {
	log.Printf("awarded %d special miles to client %s", miles, clientID)
	return nil
}
