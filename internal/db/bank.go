package db

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/babylonchain/staking-ledger-service/internal/bank"
	"github.com/babylonchain/staking-ledger-service/internal/db/model"
	"github.com/babylonchain/staking-ledger-service/internal/ledger"
	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
)

func (db *Database) Balance(ctx context.Context, addr ledger.Addr, denom string) (ledger.Coin, error) {
	amount, err := db.balanceOf(ctx, addr, denom)
	if err != nil {
		return ledger.Coin{}, err
	}
	return ledger.Coin{Denom: denom, Amount: amount}, nil
}

// Send moves every coin from one account to another in a single transaction.
func (db *Database) Send(ctx context.Context, from, to ledger.Addr, amount []ledger.Coin) error {
	transactionWork := func(sessCtx mongo.SessionContext) (interface{}, error) {
		for _, coin := range amount {
			have, err := db.balanceOf(sessCtx, from, coin.Denom)
			if err != nil {
				return nil, err
			}
			debited, err := have.CheckedSub(coin.Amount)
			if err != nil {
				return nil, &bank.InsufficientBalanceError{Address: from, Need: coin, Have: have}
			}
			if err := db.setBalance(sessCtx, from, coin.Denom, debited); err != nil {
				return nil, err
			}

			current, err := db.balanceOf(sessCtx, to, coin.Denom)
			if err != nil {
				return nil, err
			}
			credited, err := current.CheckedAdd(coin.Amount)
			if err != nil {
				return nil, err
			}
			if err := db.setBalance(sessCtx, to, coin.Denom, credited); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}
	_, err := TxWithRetries(ctx, db.txClient(), transactionWork)
	return err
}

func (db *Database) Mint(ctx context.Context, to ledger.Addr, amount []ledger.Coin) error {
	transactionWork := func(sessCtx mongo.SessionContext) (interface{}, error) {
		for _, coin := range amount {
			current, err := db.balanceOf(sessCtx, to, coin.Denom)
			if err != nil {
				return nil, err
			}
			credited, err := current.CheckedAdd(coin.Amount)
			if err != nil {
				return nil, err
			}
			if err := db.setBalance(sessCtx, to, coin.Denom, credited); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}
	_, err := TxWithRetries(ctx, db.txClient(), transactionWork)
	return err
}

func (db *Database) balanceOf(ctx context.Context, addr ledger.Addr, denom string) (arith.Uint128, error) {
	var doc model.BalanceDocument
	found, err := db.findById(ctx, model.BalanceCollection, model.BalanceId(addr, denom), &doc)
	if err != nil {
		return arith.Uint128{}, err
	}
	if !found {
		return arith.Zero(), nil
	}
	return arith.ParseUint128(doc.Amount)
}

func (db *Database) setBalance(ctx context.Context, addr ledger.Addr, denom string, amount arith.Uint128) error {
	doc := model.NewBalanceDocument(addr, denom, amount)
	return db.upsert(ctx, model.BalanceCollection, doc.Id, doc)
}
