package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-ledger-service/internal/bank"
	"github.com/babylonchain/staking-ledger-service/internal/db"
	"github.com/babylonchain/staking-ledger-service/internal/db/model"
	"github.com/babylonchain/staking-ledger-service/internal/ledger"
	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
	"github.com/babylonchain/staking-ledger-service/internal/observability/metrics"
	"github.com/babylonchain/staking-ledger-service/internal/observability/tracing"
	queueClient "github.com/babylonchain/staking-ledger-service/internal/queue/client"
	"github.com/babylonchain/staking-ledger-service/internal/types"
)

const payoutAction = "payout"

type OperationPublic struct {
	Action    string            `json:"action"`
	Transfers []ledger.BankSend `json:"transfers"`
}

type StakePublic struct {
	Address string        `json:"address"`
	Amount  arith.Uint128 `json:"amount"`
}

type RewardsPublic struct {
	Address string        `json:"address"`
	Rewards arith.Uint128 `json:"rewards"`
}

type UnbondPublic struct {
	Address string `json:"address"`
	ledger.UnbondResponse
}

func newOperationPublic(resp *ledger.Response) *OperationPublic {
	transfers := resp.Messages
	if transfers == nil {
		transfers = []ledger.BankSend{}
	}
	return &OperationPublic{Action: resp.Action, Transfers: transfers}
}

// Stake moves funds from sender into the ledger account and credits them as
// principal. The funds are returned if the ledger rejects the deposit.
func (s *Services) Stake(ctx context.Context, sender ledger.Addr, funds []ledger.Coin) (*OperationPublic, *types.Error) {
	return s.execute(ctx, ledger.ActionStake, sender, func(now ledger.Timestamp) (*ledger.Response, error) {
		if err := s.bank.Send(ctx, sender, s.contract, funds); err != nil {
			return nil, err
		}
		resp, err := s.ledger.Deposit(ctx, sender, funds, now)
		if err != nil {
			if refundErr := s.bank.Send(ctx, s.contract, sender, funds); refundErr != nil {
				log.Ctx(ctx).Error().Err(refundErr).Str("sender", sender.String()).
					Msg("failed to refund rejected deposit")
			}
			return nil, err
		}
		return resp, nil
	})
}

func (s *Services) Unbond(ctx context.Context, sender ledger.Addr, amount arith.Uint128) (*OperationPublic, *types.Error) {
	return s.execute(ctx, ledger.ActionUnbond, sender, func(now ledger.Timestamp) (*ledger.Response, error) {
		return s.ledger.RequestUnbond(ctx, sender, amount, now)
	})
}

func (s *Services) Withdraw(ctx context.Context, sender ledger.Addr) (*OperationPublic, *types.Error) {
	return s.execute(ctx, ledger.ActionWithdraw, sender, func(now ledger.Timestamp) (*ledger.Response, error) {
		return s.ledger.Withdraw(ctx, sender, now)
	})
}

func (s *Services) Claim(ctx context.Context, sender ledger.Addr) (*OperationPublic, *types.Error) {
	return s.execute(ctx, ledger.ActionClaim, sender, func(now ledger.Timestamp) (*ledger.Response, error) {
		return s.ledger.Claim(ctx, sender, now)
	})
}

func (s *Services) UpdateConfig(ctx context.Context, sender ledger.Addr, candidate ledger.Config) (*OperationPublic, *types.Error) {
	return s.execute(ctx, ledger.ActionUpdateConfig, sender, func(_ ledger.Timestamp) (*ledger.Response, error) {
		return s.ledger.UpdateConfig(ctx, sender, candidate)
	})
}

// execute runs one mutating operation under the service lock, then pays out
// the transfers it returned and announces it on the event queue.
func (s *Services) execute(
	ctx context.Context, action string, sender ledger.Addr,
	op func(now ledger.Timestamp) (*ledger.Response, error),
) (*OperationPublic, *types.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := ledger.FromTime(s.clock.Now())
	resp, err := tracing.WrapWithSpan(ctx, action, func() (*ledger.Response, error) {
		return op(now)
	})
	if err != nil {
		serviceErr := toServiceError(ctx, action, err)
		metrics.RecordLedgerOperation(action, outcomeOf(serviceErr))
		return nil, serviceErr
	}

	if err := bank.Execute(ctx, s.bank, s.contract, resp.Messages); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("action", action).Str("sender", sender.String()).
			Msg("ledger committed but transfer failed")
		s.parkUnsentTransfers(ctx, sender, err)
		metrics.RecordLedgerOperation(action, metrics.Error)
		return nil, types.NewInternalServiceError(err)
	}

	s.publish(ctx, queueClient.NewLedgerEvent(sender, resp, now))
	if state, err := s.ledger.QueryState(ctx); err == nil {
		s.recordStateMetrics(state)
	}
	metrics.RecordLedgerOperation(action, metrics.Success)

	log.Ctx(ctx).Debug().Str("action", action).Str("sender", sender.String()).
		Int("transfers", len(resp.Messages)).Msg("ledger operation committed")
	return newOperationPublic(resp), nil
}

// RetryPayout makes transfers that a committed operation failed to make.
// The ledger is not consulted: its side of the operation already happened.
func (s *Services) RetryPayout(ctx context.Context, sender ledger.Addr, transfers []ledger.BankSend) (*OperationPublic, *types.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := bank.Execute(ctx, s.bank, s.contract, transfers); err != nil {
		serviceErr := toServiceError(ctx, payoutAction, err)
		metrics.RecordLedgerOperation(payoutAction, outcomeOf(serviceErr))
		return nil, serviceErr
	}

	resp := &ledger.Response{Action: payoutAction, Messages: transfers}
	s.publish(ctx, queueClient.NewLedgerEvent(sender, resp, ledger.FromTime(s.clock.Now())))
	metrics.RecordLedgerOperation(payoutAction, metrics.Success)
	log.Ctx(ctx).Info().Str("sender", sender.String()).Int("transfers", len(transfers)).
		Msg("parked payout completed")
	return newOperationPublic(resp), nil
}

// parkUnsentTransfers stores the transfers a failed payout left unsent as a
// payout command, so the replay script can push them back through the queue.
func (s *Services) parkUnsentTransfers(ctx context.Context, sender ledger.Addr, payoutErr error) {
	var unsent *bank.PayoutError
	if !errors.As(payoutErr, &unsent) {
		return
	}
	body, err := json.Marshal(queueClient.NewPayoutEvent(sender, unsent.Unsent))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to marshal unsent transfers")
		return
	}
	if err := s.unprocessable.SaveUnprocessableMessage(ctx, string(body), uuid.New().String()); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("sender", sender.String()).Str("transfers", string(body)).
			Msg("failed to park unsent transfers")
	}
}

func (s *Services) publish(ctx context.Context, event queueClient.LedgerEvent) {
	if s.eventQueue == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to marshal ledger event")
		return
	}
	if err := s.eventQueue.SendMessage(ctx, string(body)); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("action", event.Action).Msg("failed to publish ledger event")
	}
}

func (s *Services) recordStateMetrics(state *ledger.GlobalState) {
	metrics.SetLedgerState(toFloat(state.StakedBalance), toFloat(state.RewardPerTokenStored))
}

func toFloat(u arith.Uint128) float64 {
	f, err := strconv.ParseFloat(u.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

func (s *Services) StakeOf(ctx context.Context, addr ledger.Addr) (*StakePublic, *types.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	amount, err := s.ledger.QueryStake(ctx, addr)
	if err != nil {
		return nil, toServiceError(ctx, "query_stake", err)
	}
	return &StakePublic{Address: addr.String(), Amount: amount}, nil
}

func (s *Services) RewardsOf(ctx context.Context, addr ledger.Addr) (*RewardsPublic, *types.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rewards, err := s.ledger.QueryRewards(ctx, addr, ledger.FromTime(s.clock.Now()))
	if err != nil {
		return nil, toServiceError(ctx, "query_rewards", err)
	}
	return &RewardsPublic{Address: addr.String(), Rewards: rewards}, nil
}

func (s *Services) UnbondOf(ctx context.Context, addr ledger.Addr) (*UnbondPublic, *types.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unbond, err := s.ledger.QueryUnbond(ctx, addr, ledger.FromTime(s.clock.Now()))
	if err != nil {
		return nil, toServiceError(ctx, "query_unbond", err)
	}
	return &UnbondPublic{Address: addr.String(), UnbondResponse: *unbond}, nil
}

func (s *Services) Config(ctx context.Context) (*ledger.Config, *types.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.ledger.QueryConfig(ctx)
	if err != nil {
		return nil, toServiceError(ctx, "query_config", err)
	}
	return cfg, nil
}

func (s *Services) State(ctx context.Context) (*ledger.GlobalState, *types.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.ledger.QueryState(ctx)
	if err != nil {
		return nil, toServiceError(ctx, "query_state", err)
	}
	return state, nil
}

// Stakers returns one page of stakers ordered by address and the token for
// the next page, empty when this page is the last.
func (s *Services) Stakers(ctx context.Context, paginationKey string) ([]ledger.Staker, string, *types.Error) {
	var after ledger.Addr
	if paginationKey != "" {
		decoded, err := model.DecodeStakerPaginationToken(paginationKey)
		if err != nil {
			invalid := &db.InvalidPaginationTokenError{Message: "invalid pagination token"}
			log.Ctx(ctx).Warn().Err(err).Msg(invalid.Message)
			return nil, "", types.NewError(http.StatusBadRequest, types.BadRequest, invalid)
		}
		after = decoded
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	limit := s.cfg.Db.MaxPaginationLimit
	stakers, err := s.ledger.QueryStakers(ctx, after, limit, ledger.FromTime(s.clock.Now()))
	if err != nil {
		return nil, "", toServiceError(ctx, "query_stakers", err)
	}

	var next string
	if len(stakers) > 0 && int64(len(stakers)) == limit {
		next, err = model.BuildStakerPaginationToken(stakers[len(stakers)-1].Address)
		if err != nil {
			return nil, "", types.NewInternalServiceError(err)
		}
	}
	return stakers, next, nil
}
