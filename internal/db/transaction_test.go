package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/staking-ledger-service/internal/utils"
)

type mockDBTransactionClient struct {
	mock.Mock
}

func (m *mockDBTransactionClient) StartSession(opts ...*options.SessionOptions) (DBSession, error) {
	args := m.Called()
	if s := args.Get(0); s != nil {
		return s.(DBSession), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDBSession struct {
	mock.Mock
}

func (m *mockDBSession) EndSession(ctx context.Context) {
	m.Called(ctx)
}

func (m *mockDBSession) WithTransaction(
	ctx context.Context, fn func(sessCtx mongo.SessionContext) (interface{}, error),
	opts ...*options.TransactionOptions,
) (interface{}, error) {
	args := m.Called(ctx, fn)
	return args.Get(0), args.Error(1)
}

func writeConflictError() mongo.CommandError {
	return mongo.CommandError{
		Code:    112,
		Message: "write conflict",
		Name:    "WriteConflict",
	}
}

func recordSleeps(t *testing.T) *[]time.Duration {
	t.Helper()
	sleepDurations := []time.Duration{}
	utils.SetSleepFunc(func(d time.Duration) {
		sleepDurations = append(sleepDurations, d)
	})
	t.Cleanup(utils.ResetSleepFunc)
	return &sleepDurations
}

func noopTxn(sessCtx mongo.SessionContext) (interface{}, error) {
	return nil, nil
}

func TestTxWithRetries_ExponentialBackoff(t *testing.T) {
	session := new(mockDBSession)
	client := new(mockDBTransactionClient)
	client.On("StartSession").Return(session, nil)
	session.On("WithTransaction", mock.Anything, mock.Anything).Return(nil, writeConflictError()).Twice()
	session.On("WithTransaction", mock.Anything, mock.Anything).Return("success", nil).Once()
	session.On("EndSession", mock.Anything).Return()
	sleeps := recordSleeps(t)

	result, err := TxWithRetries(context.Background(), client, noopTxn)

	require.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, *sleeps)
	session.AssertNumberOfCalls(t, "EndSession", 3)
	session.AssertExpectations(t)
}

func TestTxWithRetries_MaxRetries(t *testing.T) {
	session := new(mockDBSession)
	client := new(mockDBTransactionClient)
	client.On("StartSession").Return(session, nil)
	session.On("WithTransaction", mock.Anything, mock.Anything).Return(nil, writeConflictError()).Times(DefaultMaxAttempts)
	session.On("EndSession", mock.Anything).Return()
	sleeps := recordSleeps(t)

	result, err := TxWithRetries(context.Background(), client, noopTxn)

	require.Error(t, err)
	assert.True(t, IsWriteConflictError(err))
	assert.Nil(t, result)
	assert.Len(t, *sleeps, DefaultMaxAttempts-1)
	session.AssertExpectations(t)
}

func TestTxWithRetries_NonRetryableError(t *testing.T) {
	nonRetryable := errors.New("insufficient balance")
	session := new(mockDBSession)
	client := new(mockDBTransactionClient)
	client.On("StartSession").Return(session, nil)
	session.On("WithTransaction", mock.Anything, mock.Anything).Return(nil, nonRetryable).Once()
	session.On("EndSession", mock.Anything).Return()
	sleeps := recordSleeps(t)

	result, err := TxWithRetries(context.Background(), client, noopTxn)

	assert.ErrorIs(t, err, nonRetryable)
	assert.Nil(t, result)
	assert.Empty(t, *sleeps)
	session.AssertExpectations(t)
}

func TestTxWithRetries_SessionError(t *testing.T) {
	client := new(mockDBTransactionClient)
	client.On("StartSession").Return(nil, errors.New("no session"))

	_, err := TxWithRetries(context.Background(), client, noopTxn)
	assert.EqualError(t, err, "no session")
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsTransactionAbortedError(mongo.CommandError{Code: 251}))
	assert.False(t, IsWriteConflictError(mongo.CommandError{Code: 11000}))
	assert.False(t, IsWriteConflictError(nil))

	wrapped := errors.Join(errors.New("context"), &NotFoundError{Key: "alice", Message: "not found"})
	assert.True(t, IsNotFoundError(wrapped))
	assert.False(t, IsInvalidPaginationTokenError(wrapped))
}
