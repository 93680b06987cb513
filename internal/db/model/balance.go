package model

import (
	"fmt"

	"github.com/babylonchain/staking-ledger-service/internal/ledger"
	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
)

type BalanceDocument struct {
	Id      string `bson:"_id"`
	Address string `bson:"address"`
	Denom   string `bson:"denom"`
	Amount  string `bson:"amount"`
}

func BalanceId(addr ledger.Addr, denom string) string {
	return fmt.Sprintf("%s/%s", addr, denom)
}

func NewBalanceDocument(addr ledger.Addr, denom string, amount arith.Uint128) *BalanceDocument {
	return &BalanceDocument{
		Id:      BalanceId(addr, denom),
		Address: addr.String(),
		Denom:   denom,
		Amount:  amount.String(),
	}
}
