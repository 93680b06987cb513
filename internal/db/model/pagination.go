package model

import (
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/babylonchain/staking-ledger-service/internal/ledger"
)

// Pagination tokens are URL-safe base64 over the JSON of a cursor struct.

func DecodePaginationToken[T any](token string) (*T, error) {
	tokenBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, err
	}
	var d T
	err = json.Unmarshal(tokenBytes, &d)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func EncodePaginationToken[T any](d T) (string, error) {
	tokenBytes, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(tokenBytes), nil
}

// StakerPagination is the cursor for paging through stakers by address.
type StakerPagination struct {
	Address string `json:"address"`
}

func BuildStakerPaginationToken(addr ledger.Addr) (string, error) {
	return EncodePaginationToken(StakerPagination{Address: addr.String()})
}

// DecodeStakerPaginationToken returns the last address of the previous page.
func DecodeStakerPaginationToken(token string) (ledger.Addr, error) {
	cursor, err := DecodePaginationToken[StakerPagination](token)
	if err != nil {
		return "", err
	}
	if cursor.Address == "" {
		return "", errors.New("pagination token carries no address")
	}
	return ledger.Addr(cursor.Address), nil
}
