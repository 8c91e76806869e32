package service

import "log"

// DriverNotificationService sends notifications to drivers.
type DriverNotificationService interface {
	NotifyAboutPossibleTransit(driverID, transitID string)
	NotifyAboutChangedTransitAddress(driverID, transitID string)
	NotifyAboutCancelledTransit(driverID, transitID string)
	AskDriverForDetailsAboutClaim(claimNo, driverID string)
}

// ClientNotificationService sends notifications to clients.
type ClientNotificationService interface {
	NotifyClientAboutRefund(claimNo, clientID string)
	AskForMoreInformation(claimNo, clientID string)
}

// LogDriverNotificationService logs driver notifications instead of sending
// them over a push channel.
type LogDriverNotificationService struct{}

// NewLogDriverNotificationService creates a new LogDriverNotificationService.
func NewLogDriverNotificationService() *LogDriverNotificationService {
	return &LogDriverNotificationService{}
}

func (s *LogDriverNotificationService) NotifyAboutPossibleTransit(driverID, transitID string) {
	log.Printf("notify driver %s: transit %s is available", driverID, transitID)
}

func (s *LogDriverNotificationService) NotifyAboutChangedTransitAddress(driverID, transitID string) {
	log.Printf("notify driver %s: transit %s pickup address changed", driverID, transitID)
}

func (s *LogDriverNotificationService) NotifyAboutCancelledTransit(driverID, transitID string) {
	log.Printf("notify driver %s: transit %s was cancelled", driverID, transitID)
}

func (s *LogDriverNotificationService) AskDriverForDetailsAboutClaim(claimNo, driverID string) {
	log.Printf("notify driver %s: details needed for claim %s", driverID, claimNo)
}

// LogClientNotificationService logs client notifications.
type LogClientNotificationService struct{}

// NewLogClientNotificationService creates a new LogClientNotificationService.
func NewLogClientNotificationService() *LogClientNotificationService {
	return &LogClientNotificationService{}
}

func (s *LogClientNotificationService) NotifyClientAboutRefund(claimNo, clientID string) {
	log.Printf("notify client %s: claim %s refunded", clientID, claimNo)
}

func (s *LogClientNotificationService) AskForMoreInformation(claimNo, clientID string) {
	log.Printf("notify client %s: claim %s needs more information", clientID, claimNo)
}
