package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/babylonchain/staking-ledger-service/internal/config"
	"github.com/babylonchain/staking-ledger-service/internal/ledger"
	"github.com/babylonchain/staking-ledger-service/internal/services"
	"github.com/babylonchain/staking-ledger-service/internal/types"
)

type Handler struct {
	config   *config.Config
	services *services.Services
}

type paginationResponse struct {
	NextKey string `json:"next_key"`
}

type PublicResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination *paginationResponse `json:"pagination,omitempty"`
}

type Result struct {
	Data   interface{}
	Status int
}

// NewResultWithPagination wraps one page of data with the key of the next
// page, empty on the last one.
func NewResultWithPagination[T any](data T, pageToken string) *Result {
	res := &PublicResponse[T]{Data: data, Pagination: &paginationResponse{NextKey: pageToken}}
	return &Result{Data: res, Status: http.StatusOK}
}

func NewResult[T any](data T) *Result {
	res := &PublicResponse[T]{Data: data}
	return &Result{Data: res, Status: http.StatusOK}
}

func New(
	ctx context.Context, cfg *config.Config, services *services.Services,
) (*Handler, error) {
	return &Handler{
		config:   cfg,
		services: services,
	}, nil
}

// senderPayload is implemented by every request body of a mutating route.
type senderPayload interface {
	sender() ledger.Addr
}

func decodePayload[T senderPayload](request *http.Request, payload T) *types.Error {
	if err := json.NewDecoder(request.Body).Decode(payload); err != nil {
		return types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid request payload")
	}
	if payload.sender() == "" {
		return types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "sender is required")
	}
	return nil
}

func addressParam(request *http.Request) (ledger.Addr, *types.Error) {
	address := request.URL.Query().Get("address")
	if address == "" {
		return "", types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "address is required")
	}
	return ledger.Addr(address), nil
}
