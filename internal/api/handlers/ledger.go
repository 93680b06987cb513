package handlers

import (
	"net/http"

	"github.com/babylonchain/staking-ledger-service/internal/ledger"
	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
	"github.com/babylonchain/staking-ledger-service/internal/types"
)

type SenderRequestPayload struct {
	Sender string `json:"sender"`
}

type StakeRequestPayload struct {
	Sender string        `json:"sender"`
	Funds  []ledger.Coin `json:"funds"`
}

type UnbondRequestPayload struct {
	Sender string         `json:"sender"`
	Amount *arith.Uint128 `json:"amount"`
}

type UpdateConfigRequestPayload struct {
	Sender string         `json:"sender"`
	Config *ledger.Config `json:"config"`
}

func (p *SenderRequestPayload) sender() ledger.Addr       { return ledger.Addr(p.Sender) }
func (p *StakeRequestPayload) sender() ledger.Addr        { return ledger.Addr(p.Sender) }
func (p *UnbondRequestPayload) sender() ledger.Addr       { return ledger.Addr(p.Sender) }
func (p *UpdateConfigRequestPayload) sender() ledger.Addr { return ledger.Addr(p.Sender) }

// Stake godoc
// @Summary Stake tokens
// @Description Moves the attached funds from the sender into the ledger and credits them as stake.
// @Description Only the configured denom is counted; other coins are kept by the ledger.
// @Accept json
// @Produce json
// @Param payload body StakeRequestPayload true "Stake Request Payload"
// @Success 200 {object} PublicResponse[services.OperationPublic] "Committed operation"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Ledger is paused"
// @Router /v1/stake [post]
func (h *Handler) Stake(request *http.Request) (*Result, *types.Error) {
	payload := &StakeRequestPayload{}
	if err := decodePayload(request, payload); err != nil {
		return nil, err
	}
	op, err := h.services.Stake(request.Context(), ledger.Addr(payload.Sender), payload.Funds)
	if err != nil {
		return nil, err
	}
	return NewResult(op), nil
}

// Unbond godoc
// @Summary Request unbonding
// @Description Moves stake into the sender's unbonding slot and restarts its unbonding timer.
// @Accept json
// @Produce json
// @Param payload body UnbondRequestPayload true "Unbond Request Payload"
// @Success 200 {object} PublicResponse[services.OperationPublic] "Committed operation"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 404 {object} types.Error "Error: No stake found for sender"
// @Router /v1/unbond [post]
func (h *Handler) Unbond(request *http.Request) (*Result, *types.Error) {
	payload := &UnbondRequestPayload{}
	if err := decodePayload(request, payload); err != nil {
		return nil, err
	}
	if payload.Amount == nil {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "amount is required")
	}
	op, err := h.services.Unbond(request.Context(), ledger.Addr(payload.Sender), *payload.Amount)
	if err != nil {
		return nil, err
	}
	return NewResult(op), nil
}

// Withdraw godoc
// @Summary Withdraw unbonded stake
// @Description Pays out the sender's unbonding slot once its unbonding period has elapsed.
// @Accept json
// @Produce json
// @Param payload body SenderRequestPayload true "Sender"
// @Success 200 {object} PublicResponse[services.OperationPublic] "Committed operation"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 404 {object} types.Error "Error: No unbonding found for sender"
// @Router /v1/withdraw [post]
func (h *Handler) Withdraw(request *http.Request) (*Result, *types.Error) {
	payload := &SenderRequestPayload{}
	if err := decodePayload(request, payload); err != nil {
		return nil, err
	}
	op, err := h.services.Withdraw(request.Context(), ledger.Addr(payload.Sender))
	if err != nil {
		return nil, err
	}
	return NewResult(op), nil
}

// Claim godoc
// @Summary Claim rewards
// @Description Pays out all rewards the sender has earned so far.
// @Accept json
// @Produce json
// @Param payload body SenderRequestPayload true "Sender"
// @Success 200 {object} PublicResponse[services.OperationPublic] "Committed operation"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 404 {object} types.Error "Error: No stake found for sender"
// @Router /v1/claim [post]
func (h *Handler) Claim(request *http.Request) (*Result, *types.Error) {
	payload := &SenderRequestPayload{}
	if err := decodePayload(request, payload); err != nil {
		return nil, err
	}
	op, err := h.services.Claim(request.Context(), ledger.Addr(payload.Sender))
	if err != nil {
		return nil, err
	}
	return NewResult(op), nil
}

// UpdateConfig godoc
// @Summary Update ledger config
// @Description The owner may replace the whole config. The chief pausing officer may only
// @Description change the pause flag and hand over its own role.
// @Accept json
// @Produce json
// @Param payload body UpdateConfigRequestPayload true "Update Config Request Payload"
// @Success 200 {object} PublicResponse[services.OperationPublic] "Committed operation"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 403 {object} types.Error "Error: Unauthorized"
// @Router /v1/config [put]
func (h *Handler) UpdateConfig(request *http.Request) (*Result, *types.Error) {
	payload := &UpdateConfigRequestPayload{}
	if err := decodePayload(request, payload); err != nil {
		return nil, err
	}
	if payload.Config == nil {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "config is required")
	}
	op, err := h.services.UpdateConfig(request.Context(), ledger.Addr(payload.Sender), *payload.Config)
	if err != nil {
		return nil, err
	}
	return NewResult(op), nil
}
