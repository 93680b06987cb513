package handlers

import "github.com/babylonchain/staking-ledger-service/internal/services"

type QueueHandler struct {
	Services *services.Services
}

func NewQueueHandler(services *services.Services) *QueueHandler {
	return &QueueHandler{
		Services: services,
	}
}
