package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-ledger-service/internal/bank"
	"github.com/babylonchain/staking-ledger-service/internal/config"
	"github.com/babylonchain/staking-ledger-service/internal/db"
	"github.com/babylonchain/staking-ledger-service/internal/db/model"
	"github.com/babylonchain/staking-ledger-service/internal/ledger"
	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
	queueClient "github.com/babylonchain/staking-ledger-service/internal/queue/client"
	"github.com/babylonchain/staking-ledger-service/internal/types"
	"github.com/babylonchain/staking-ledger-service/internal/utils"
)

// UnprocessableMessageStore keeps queue messages that were rejected by the
// ledger so they can be inspected and replayed.
type UnprocessableMessageStore interface {
	SaveUnprocessableMessage(ctx context.Context, messageBody, receipt string) error
	FindUnprocessableMessages(ctx context.Context) ([]model.UnprocessableMessageDocument, error)
	DeleteUnprocessableMessage(ctx context.Context, receipt interface{}) error
}

// Service layer contains the business logic and is used to interact with
// the database and other external clients (if any).
//
// Every ledger call goes through mu: the ledger itself assumes a single
// sequencer and a non-decreasing clock.
type Services struct {
	mu            sync.Mutex
	ledger        *ledger.Ledger
	store         ledger.Store
	bank          bank.Keeper
	unprocessable UnprocessableMessageStore
	dbClient      db.DBClient
	eventQueue    queueClient.QueueClient
	clock         *utils.MonotonicClock
	contract      ledger.Addr
	cfg           *config.Config
}

func New(ctx context.Context, cfg *config.Config) (*Services, error) {
	if cfg.Db.Type == config.DbTypeMemory {
		return NewWithStores(cfg, ledger.NewMemoryStore(), bank.NewMemoryKeeper(), newMemoryUnprocessableStore(), nil), nil
	}

	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("error while creating db client")
		return nil, err
	}
	s := NewWithStores(cfg, dbClient, dbClient, dbClient, time.Now)
	s.dbClient = dbClient
	return s, nil
}

// NewWithStores wires the service over explicit collaborators. A nil now
// defaults to the wall clock.
func NewWithStores(
	cfg *config.Config, store ledger.Store, keeper bank.Keeper,
	unprocessable UnprocessableMessageStore, now func() time.Time,
) *Services {
	contract := ledger.Addr(cfg.Ledger.ContractAddress)
	return &Services{
		ledger:        ledger.New(store, bank.Querier{Keeper: keeper}, contract),
		store:         store,
		bank:          keeper,
		unprocessable: unprocessable,
		clock:         utils.NewMonotonicClock(now),
		contract:      contract,
		cfg:           cfg,
	}
}

// SetEventPublisher routes ledger events to the given queue. Without one,
// events are only logged.
func (s *Services) SetEventPublisher(q queueClient.QueueClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventQueue = q
}

// Bootstrap instantiates the ledger from the ledger config section unless a
// ledger already exists, and seeds the clock from the stored state.
func (s *Services) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	initialized, err := s.ledger.Initialized(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ledger config: %w", err)
	}
	if !initialized {
		if err := s.instantiate(ctx); err != nil {
			return err
		}
	}

	state, err := s.ledger.QueryState(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ledger state: %w", err)
	}
	s.clock.NotBefore(state.LastUpdateTime.Time())
	s.recordStateMetrics(state)
	return nil
}

func (s *Services) instantiate(ctx context.Context) error {
	lc := s.cfg.Ledger
	rate, err := lc.ParsedRewardRate()
	if err != nil {
		return err
	}
	pool, err := lc.ParsedRewardPool()
	if err != nil {
		return err
	}

	now := ledger.FromTime(s.clock.Now())
	_, err = s.ledger.Instantiate(ctx, ledger.Addr(lc.Owner), ledger.InstantiateMsg{
		Denom:           lc.Denom,
		RewardRate:      rate,
		Paused:          lc.Paused,
		UnbondingPeriod: lc.UnbondingPeriod,
	}, now)
	if err != nil {
		return fmt.Errorf("failed to instantiate ledger: %w", err)
	}

	if !pool.IsZero() {
		if err := s.bank.Mint(ctx, s.contract, []ledger.Coin{{Denom: lc.Denom, Amount: pool}}); err != nil {
			return fmt.Errorf("failed to fund reward pool: %w", err)
		}
	}
	for addr, raw := range lc.GenesisBalances {
		amount, err := arith.ParseUint128(raw)
		if err != nil {
			return fmt.Errorf("invalid genesis balance for %s: %w", addr, err)
		}
		if err := s.bank.Mint(ctx, ledger.Addr(addr), []ledger.Coin{{Denom: lc.Denom, Amount: amount}}); err != nil {
			return fmt.Errorf("failed to credit genesis balance for %s: %w", addr, err)
		}
	}

	log.Ctx(ctx).Info().
		Str("owner", lc.Owner).
		Str("contract", lc.ContractAddress).
		Str("denom", lc.Denom).
		Str("reward_rate", rate.String()).
		Msg("ledger instantiated")
	return nil
}

// DoHealthCheck checks the health of the services by ping the database.
func (s *Services) DoHealthCheck(ctx context.Context) error {
	if s.dbClient == nil {
		return nil
	}
	return s.dbClient.Ping(ctx)
}

func (s *Services) SaveUnprocessableMessages(ctx context.Context, messageBody, receipt string) *types.Error {
	err := s.unprocessable.SaveUnprocessableMessage(ctx, messageBody, receipt)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("error while saving unprocessable message")
		return types.NewErrorWithMsg(http.StatusInternalServerError, types.InternalServiceError, "error while saving unprocessable message")
	}
	return nil
}

func (s *Services) UnprocessableMessages() UnprocessableMessageStore {
	return s.unprocessable
}

func (s *Services) Contract() ledger.Addr {
	return s.contract
}
