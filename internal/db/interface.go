package db

import (
	"context"

	"github.com/babylonchain/staking-ledger-service/internal/bank"
	"github.com/babylonchain/staking-ledger-service/internal/db/model"
	"github.com/babylonchain/staking-ledger-service/internal/ledger"
)

type DBClient interface {
	ledger.Store
	bank.Keeper
	Ping(ctx context.Context) error
	SaveUnprocessableMessage(ctx context.Context, messageBody, receipt string) error
	FindUnprocessableMessages(ctx context.Context) ([]model.UnprocessableMessageDocument, error)
	DeleteUnprocessableMessage(ctx context.Context, receipt interface{}) error
}
