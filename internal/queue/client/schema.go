package client

import (
	"github.com/babylonchain/staking-ledger-service/internal/ledger"
	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
)

const (
	ExecuteQueueName string = "ledger_execute_queue"
	EventQueueName   string = "ledger_event_queue"
)

type EventType int

const (
	StakeEventType        EventType = 1
	UnbondEventType       EventType = 2
	WithdrawEventType     EventType = 3
	ClaimEventType        EventType = 4
	UpdateConfigEventType EventType = 5
	// PayoutEventType retries transfers a committed operation failed to make.
	PayoutEventType EventType = 6
)

// ExecuteEvent asks the service to run one mutating ledger operation on
// behalf of Sender. Which of the optional fields is read depends on EventType.
type ExecuteEvent struct {
	EventType EventType         `json:"event_type"`
	Sender    string            `json:"sender"`
	Amount    *arith.Uint128    `json:"amount,omitempty"`
	Funds     []ledger.Coin     `json:"funds,omitempty"`
	Config    *ledger.Config    `json:"config,omitempty"`
	Transfers []ledger.BankSend `json:"transfers,omitempty"`
}

func NewPayoutEvent(sender ledger.Addr, transfers []ledger.BankSend) ExecuteEvent {
	return ExecuteEvent{
		EventType: PayoutEventType,
		Sender:    sender.String(),
		Transfers: transfers,
	}
}

// LedgerEvent is published after every committed mutating operation.
type LedgerEvent struct {
	Action    string            `json:"action"`
	Sender    string            `json:"sender"`
	Transfers []ledger.BankSend `json:"transfers,omitempty"`
	Timestamp ledger.Timestamp  `json:"timestamp,string"`
}

func NewLedgerEvent(sender ledger.Addr, resp *ledger.Response, now ledger.Timestamp) LedgerEvent {
	return LedgerEvent{
		Action:    resp.Action,
		Sender:    sender.String(),
		Transfers: resp.Messages,
		Timestamp: now,
	}
}
