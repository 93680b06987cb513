package bank

import (
	"context"
	"sync"

	"github.com/babylonchain/staking-ledger-service/internal/ledger"
	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
)

type balanceKey struct {
	addr  ledger.Addr
	denom string
}

type MemoryKeeper struct {
	mu       sync.Mutex
	balances map[balanceKey]arith.Uint128
}

func NewMemoryKeeper() *MemoryKeeper {
	return &MemoryKeeper{balances: make(map[balanceKey]arith.Uint128)}
}

func (k *MemoryKeeper) Balance(_ context.Context, addr ledger.Addr, denom string) (ledger.Coin, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return ledger.Coin{Denom: denom, Amount: k.balances[balanceKey{addr, denom}]}, nil
}

// Send applies every coin or none.
func (k *MemoryKeeper) Send(_ context.Context, from, to ledger.Addr, amount []ledger.Coin) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	next := make(map[balanceKey]arith.Uint128, 2*len(amount))
	get := func(key balanceKey) arith.Uint128 {
		if v, ok := next[key]; ok {
			return v
		}
		return k.balances[key]
	}
	for _, coin := range amount {
		fromKey := balanceKey{from, coin.Denom}
		toKey := balanceKey{to, coin.Denom}
		have := get(fromKey)
		debited, err := have.CheckedSub(coin.Amount)
		if err != nil {
			return &InsufficientBalanceError{Address: from, Need: coin, Have: have}
		}
		next[fromKey] = debited
		credited, err := get(toKey).CheckedAdd(coin.Amount)
		if err != nil {
			return err
		}
		next[toKey] = credited
	}
	for key, v := range next {
		k.balances[key] = v
	}
	return nil
}

func (k *MemoryKeeper) Mint(_ context.Context, to ledger.Addr, amount []ledger.Coin) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	next := make(map[balanceKey]arith.Uint128, len(amount))
	for _, coin := range amount {
		key := balanceKey{to, coin.Denom}
		current, ok := next[key]
		if !ok {
			current = k.balances[key]
		}
		credited, err := current.CheckedAdd(coin.Amount)
		if err != nil {
			return err
		}
		next[key] = credited
	}
	for key, v := range next {
		k.balances[key] = v
	}
	return nil
}
