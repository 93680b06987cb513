package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger-service/internal/config"
	"github.com/babylonchain/staking-ledger-service/internal/services"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:             "127.0.0.1",
			Port:             0,
			AllowedOrigins:   []string{"*"},
			LogLevel:         "error",
			MaxContentLength: 4096,
		},
		Db: config.DbConfig{Type: config.DbTypeMemory, MaxPaginationLimit: 10},
		Ledger: config.LedgerConfig{
			Owner:           "owner",
			ContractAddress: "ledger",
			Denom:           "ustake",
			RewardRate:      "1",
			UnbondingPeriod: 300,
			RewardPool:      "1000",
			GenesisBalances: map[string]string{"alice": "100"},
		},
	}
	ctx := context.Background()
	svc, err := services.New(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, svc.Bootstrap(ctx))

	server, err := New(ctx, cfg, svc)
	require.NoError(t, err)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, method, url, body string) (int, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	}
	return resp.StatusCode, decoded
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)
	status, body := doRequest(t, http.MethodGet, ts.URL+"/healthcheck", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Server is up and running", body["data"])
}

func TestStakeAndQuery(t *testing.T) {
	ts := setupTestServer(t)

	status, body := doRequest(t, http.MethodPost, ts.URL+"/v1/stake",
		`{"sender":"alice","funds":[{"denom":"ustake","amount":"10"}]}`)
	require.Equal(t, http.StatusOK, status, body)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "stake", data["action"])

	status, body = doRequest(t, http.MethodGet, ts.URL+"/v1/staker/stake?address=alice", "")
	require.Equal(t, http.StatusOK, status)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "10", data["amount"])

	status, body = doRequest(t, http.MethodGet, ts.URL+"/v1/stakers", "")
	require.Equal(t, http.StatusOK, status)
	stakers := body["data"].([]interface{})
	require.Len(t, stakers, 1)
	assert.Equal(t, "alice", stakers[0].(map[string]interface{})["address"])

	status, body = doRequest(t, http.MethodGet, ts.URL+"/v1/state", "")
	require.Equal(t, http.StatusOK, status)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "10", data["staked_balance"])
}

func TestErrorResponses(t *testing.T) {
	ts := setupTestServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"malformed payload", http.MethodPost, "/v1/stake", `{`, http.StatusBadRequest, "BAD_REQUEST"},
		{"missing sender", http.MethodPost, "/v1/claim", `{}`, http.StatusBadRequest, "BAD_REQUEST"},
		{"missing amount", http.MethodPost, "/v1/unbond", `{"sender":"alice"}`, http.StatusBadRequest, "BAD_REQUEST"},
		{"no stake", http.MethodPost, "/v1/claim", `{"sender":"alice"}`, http.StatusNotFound, "NOT_FOUND"},
		{"no unbond", http.MethodGet, "/v1/staker/unbond?address=alice", "", http.StatusNotFound, "NOT_FOUND"},
		{"missing address", http.MethodGet, "/v1/staker/rewards", "", http.StatusBadRequest, "BAD_REQUEST"},
		{"bank balance", http.MethodPost, "/v1/stake", `{"sender":"bob","funds":[{"denom":"ustake","amount":"10"}]}`,
			http.StatusBadRequest, "INSUFFICIENT_BALANCE"},
		{"stranger config", http.MethodPut, "/v1/config", `{"sender":"eve","config":{"owner":"eve"}}`,
			http.StatusForbidden, "UNAUTHORIZED"},
		{"bad pagination", http.MethodGet, "/v1/stakers?pagination_key=%25%25", "", http.StatusBadRequest, "BAD_REQUEST"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doRequest(t, tc.method, ts.URL+tc.path, tc.body)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body["errorCode"])
		})
	}
}

func TestPausedLedgerRejectsStake(t *testing.T) {
	ts := setupTestServer(t)

	status, _ := doRequest(t, http.MethodPut, ts.URL+"/v1/config",
		`{"sender":"owner","config":{"owner":"owner","chief_pausing_officer":"owner","denom":"ustake",`+
			`"reward_rate":"1","paused":true,"unbonding_period":"300"}}`)
	require.Equal(t, http.StatusOK, status)

	status, body := doRequest(t, http.MethodPost, ts.URL+"/v1/stake",
		`{"sender":"alice","funds":[{"denom":"ustake","amount":"10"}]}`)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "PAUSED", body["errorCode"])
}

func TestContentLengthLimit(t *testing.T) {
	ts := setupTestServer(t)
	status, _ := doRequest(t, http.MethodPost, ts.URL+"/v1/stake", strings.Repeat(" ", 5000))
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
}
