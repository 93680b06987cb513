package handlers

import (
	"net/http"

	"github.com/babylonchain/staking-ledger-service/internal/types"
)

// GetStake @Summary Get staker stake
// @Description Returns the bonded stake plus whatever is still waiting in the unbonding slot
// @Produce json
// @Param address query string true "Staker address"
// @Success 200 {object} PublicResponse[services.StakePublic] "Stake of the address"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/staker/stake [get]
func (h *Handler) GetStake(request *http.Request) (*Result, *types.Error) {
	address, err := addressParam(request)
	if err != nil {
		return nil, err
	}
	stake, err := h.services.StakeOf(request.Context(), address)
	if err != nil {
		return nil, err
	}
	return NewResult(stake), nil
}

// GetRewards @Summary Get staker rewards
// @Description Returns the rewards the address could claim right now
// @Produce json
// @Param address query string true "Staker address"
// @Success 200 {object} PublicResponse[services.RewardsPublic] "Claimable rewards"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/staker/rewards [get]
func (h *Handler) GetRewards(request *http.Request) (*Result, *types.Error) {
	address, err := addressParam(request)
	if err != nil {
		return nil, err
	}
	rewards, err := h.services.RewardsOf(request.Context(), address)
	if err != nil {
		return nil, err
	}
	return NewResult(rewards), nil
}

// GetUnbond @Summary Get staker unbonding slot
// @Produce json
// @Param address query string true "Staker address"
// @Success 200 {object} PublicResponse[services.UnbondPublic] "Unbonding slot"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 404 {object} types.Error "Error: Not Found"
// @Router /v1/staker/unbond [get]
func (h *Handler) GetUnbond(request *http.Request) (*Result, *types.Error) {
	address, err := addressParam(request)
	if err != nil {
		return nil, err
	}
	unbond, err := h.services.UnbondOf(request.Context(), address)
	if err != nil {
		return nil, err
	}
	return NewResult(unbond), nil
}

// GetStakers @Summary List stakers
// @Description Lists stakers ordered by address with their claimable rewards
// @Produce json
// @Param pagination_key query string false "Pagination key to fetch the next page of stakers"
// @Success 200 {object} PublicResponse[[]ledger.Staker]{array} "List of stakers and pagination token"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/stakers [get]
func (h *Handler) GetStakers(request *http.Request) (*Result, *types.Error) {
	paginationKey := request.URL.Query().Get("pagination_key")
	stakers, next, err := h.services.Stakers(request.Context(), paginationKey)
	if err != nil {
		return nil, err
	}
	return NewResultWithPagination(stakers, next), nil
}

// GetConfig @Summary Get ledger config
// @Produce json
// @Success 200 {object} PublicResponse[ledger.Config] "Ledger config"
// @Router /v1/config [get]
func (h *Handler) GetConfig(request *http.Request) (*Result, *types.Error) {
	cfg, err := h.services.Config(request.Context())
	if err != nil {
		return nil, err
	}
	return NewResult(cfg), nil
}

// GetState @Summary Get ledger state
// @Description Returns the stored reward accumulator checkpoint and the total bonded stake
// @Produce json
// @Success 200 {object} PublicResponse[ledger.GlobalState] "Ledger state"
// @Router /v1/state [get]
func (h *Handler) GetState(request *http.Request) (*Result, *types.Error) {
	state, err := h.services.State(request.Context())
	if err != nil {
		return nil, err
	}
	return NewResult(state), nil
}
