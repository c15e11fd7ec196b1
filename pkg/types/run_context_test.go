package types

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRunContext(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	rc := NewRunContext("/project", root, now)

	assert.Equal(t, "2025-03-04_05-06-07", rc.Timestamp)
	assert.Equal(t, filepath.Join(root, "logs", "automation_2025-03-04_05-06-07.log"), rc.LogFile())
	assert.Equal(t, filepath.Join(root, "logs", "anvil_2025-03-04_05-06-07.log"), rc.ChainLogFile())
	assert.Equal(t, filepath.Join(root, "logs", "deploy_raw_2025-03-04_05-06-07.log"), rc.DeployRawLogFile())
	assert.Equal(t, filepath.Join(root, "deployments"), rc.Paths.Deployments)
	assert.Equal(t, filepath.Join(root, "transactions"), rc.Paths.Transactions)

	assert.NoError(t, rc.Paths.Ensure())
	for _, dir := range rc.Paths.All() {
		assert.DirExists(t, dir)
	}
}

func TestChainHandle(t *testing.T) {
	h := &ChainHandle{Origin: ChainOriginLaunched, Port: 8545, ChainID: 31337}
	assert.Equal(t, "http://127.0.0.1:8545", h.RPCURL())
	assert.True(t, h.Launched())

	var absent *ChainHandle
	assert.False(t, absent.Launched())
}

func TestDeploymentRecordAddress(t *testing.T) {
	r := NewDeploymentRecord()
	r.Contracts["Treasury"] = "0x2"
	r.Contracts["LoanManager"] = "0x1"

	addr, ok := r.Address("LoanManager")
	assert.True(t, ok)
	assert.Equal(t, "0x1", addr)

	_, ok = r.Address("Marketplace")
	assert.False(t, ok)

	assert.Equal(t, []string{"LoanManager", "Treasury"}, r.ContractNames())

	var absent *DeploymentRecord
	_, ok = absent.Address("LoanManager")
	assert.False(t, ok)
}

func TestCommandResult(t *testing.T) {
	assert.True(t, (&CommandResult{ExitCode: 0}).Succeeded())
	assert.False(t, (&CommandResult{ExitCode: 2}).Succeeded())
	assert.False(t, (&CommandResult{ExitCode: 0, TimedOut: true}).Succeeded())
	assert.Equal(t, "out\nerr", (&CommandResult{Stdout: "out", Stderr: "err"}).Combined())
}
