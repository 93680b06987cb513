package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
server:
  host: 127.0.0.1
  port: 8090
  write-timeout: 60s
  read-timeout: 60s
  idle-timeout: 60s
  allowed-origins: ["*"]
  log-level: debug
  max-content-length: 4096
  health-check-interval: 30
db:
  type: memory
  max-pagination-limit: 10
queue:
  disabled: true
metrics:
  host: 0.0.0.0
  port: 2112
ledger:
  owner: owner
  contract-address: ledger
  denom: ustake
  reward-rate: "1"
  unbonding-period: 300
  reward-pool: "1000000"
  genesis-balances:
    alice: "500"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewParsesLedgerSection(t *testing.T) {
	cfg, err := New(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, DbTypeMemory, cfg.Db.Type)
	assert.True(t, cfg.Queue.Disabled)
	assert.Equal(t, "owner", cfg.Ledger.Owner)
	assert.Equal(t, uint64(300), cfg.Ledger.UnbondingPeriod)
	assert.Equal(t, "500", cfg.Ledger.GenesisBalances["alice"])

	rate, err := cfg.Ledger.ParsedRewardRate()
	require.NoError(t, err)
	assert.Equal(t, "1", rate.String())
}

func TestNewMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLedgerConfigValidate(t *testing.T) {
	valid := LedgerConfig{
		Owner:           "owner",
		ContractAddress: "ledger",
		Denom:           "ustake",
		RewardRate:      "10",
	}
	require.NoError(t, valid.Validate())

	sameAsOwner := valid
	sameAsOwner.ContractAddress = "owner"
	assert.Error(t, sameAsOwner.Validate())

	badRate := valid
	badRate.RewardRate = "-1"
	assert.Error(t, badRate.Validate())

	badGenesis := valid
	badGenesis.GenesisBalances = map[string]string{"alice": "lots"}
	assert.Error(t, badGenesis.Validate())
}

func TestDbConfigValidate(t *testing.T) {
	mongo := DbConfig{DbName: "ledger", Address: "mongodb://localhost:27017", MaxPaginationLimit: 10}
	require.NoError(t, mongo.Validate())
	assert.Equal(t, DbTypeMongo, mongo.Type)

	badScheme := DbConfig{DbName: "ledger", Address: "postgres://localhost:5432", MaxPaginationLimit: 10}
	assert.Error(t, badScheme.Validate())

	unknown := DbConfig{Type: "redis", MaxPaginationLimit: 10}
	assert.Error(t, unknown.Validate())
}

func TestServerLogLevel(t *testing.T) {
	cfg := ServerConfig{LogLevel: "trace"}
	assert.Error(t, cfg.ValidateServerLogLevel())

	cfg.LogLevel = "warn"
	assert.NoError(t, cfg.ValidateServerLogLevel())
}

func TestMetricsConfig(t *testing.T) {
	cfg := MetricsConfig{Host: "127.0.0.1", Port: 2112}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "127.0.0.1:2112", cfg.Addr())

	cfg.Port = 80
	assert.Error(t, cfg.Validate())

	cfg.Disabled = true
	assert.NoError(t, cfg.Validate())
}
