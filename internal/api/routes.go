package api

import (
	"github.com/go-chi/chi"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/babylonchain/staking-ledger-service/docs"
)

func (a *Server) SetupRoutes(r *chi.Mux) {
	handlers := a.handlers
	r.Get("/healthcheck", registerHandler(handlers.HealthCheck))

	r.Post("/v1/stake", registerHandler(handlers.Stake))
	r.Post("/v1/unbond", registerHandler(handlers.Unbond))
	r.Post("/v1/withdraw", registerHandler(handlers.Withdraw))
	r.Post("/v1/claim", registerHandler(handlers.Claim))
	r.Put("/v1/config", registerHandler(handlers.UpdateConfig))

	r.Get("/v1/staker/stake", registerHandler(handlers.GetStake))
	r.Get("/v1/staker/rewards", registerHandler(handlers.GetRewards))
	r.Get("/v1/staker/unbond", registerHandler(handlers.GetUnbond))
	r.Get("/v1/stakers", registerHandler(handlers.GetStakers))
	r.Get("/v1/config", registerHandler(handlers.GetConfig))
	r.Get("/v1/state", registerHandler(handlers.GetState))

	r.Get("/swagger/*", httpSwagger.WrapHandler)
}
