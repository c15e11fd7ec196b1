package deploy

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vaultchain-africa/vc-automation/internal/process/mocks"
	"github.com/vaultchain-africa/vc-automation/internal/utils"
	"github.com/vaultchain-africa/vc-automation/pkg/types"
)

func writeDeployScript(t *testing.T, projectDir, relPath string) string {
	path := filepath.Join(projectDir, relPath)
	assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	assert.NoError(t, os.WriteFile(path, []byte("// deploy"), 0644))
	return path
}

func TestFindDeployScriptOrder(t *testing.T) {
	dir := t.TempDir()
	_, ok := FindDeployScript(dir)
	assert.False(t, ok)

	scripts := writeDeployScript(t, dir, filepath.Join("scripts", "Deploy.s.sol"))
	found, ok := FindDeployScript(dir)
	assert.True(t, ok)
	assert.Equal(t, scripts, found)

	backend := writeDeployScript(t, dir, filepath.Join("backend", "script", "Deploy.s.sol"))
	found, ok = FindDeployScript(dir)
	assert.True(t, ok)
	assert.Equal(t, backend, found)
}

func TestDeployNoScript(t *testing.T) {
	ctx, logger, rc := utils.NewTestContext(t)
	runner := mocks.NewRunner()

	record := NewExecutor(runner).Deploy(ctx, rc, "", "http://127.0.0.1:8545", 31337, false, time.Minute)
	assert.Nil(t, record)
	assert.Empty(t, runner.Calls)
	assert.True(t, logger.Contains("No Deploy.s.sol found"))
}

func TestDeployDryRun(t *testing.T) {
	ctx, _, rc := utils.NewTestContext(t)
	writeDeployScript(t, rc.ProjectDir, filepath.Join("script", "Deploy.s.sol"))
	runner := mocks.NewRunner()

	record := NewExecutor(runner).Deploy(ctx, rc, "", "http://127.0.0.1:8545", 31337, true, time.Minute)
	assert.Nil(t, record)
	assert.Empty(t, runner.Calls)
	assert.DirExists(t, filepath.Join(rc.Paths.Deployments, "31337"))
}

func TestDeployForgeMissing(t *testing.T) {
	ctx, logger, rc := utils.NewTestContext(t)
	writeDeployScript(t, rc.ProjectDir, filepath.Join("script", "Deploy.s.sol"))
	runner := mocks.NewRunner()
	runner.Missing["forge"] = true

	assert.Nil(t, NewExecutor(runner).Deploy(ctx, rc, "", "http://127.0.0.1:8545", 31337, false, time.Minute))
	assert.Empty(t, runner.Calls)
	assert.True(t, logger.Contains("'forge' executable not found in PATH"))
}

func TestDeployCapturesArtifacts(t *testing.T) {
	ctx, _, rc := utils.NewTestContext(t)
	script := writeDeployScript(t, rc.ProjectDir, filepath.Join("backend", "script", "Deploy.s.sol"))
	runner := mocks.NewRunner().On("forge script", &types.CommandResult{
		Stdout: "== Logs ==\n  DeployedContract:LoanManager:0xAbC123\nTransaction hash: 0xdead\n",
		Stderr: "warning: something",
	})

	record := NewExecutor(runner).Deploy(ctx, rc, "", "http://127.0.0.1:8545", 31337, false, time.Minute)

	assert.NotNil(t, record)
	assert.Equal(t, map[string]string{"LoanManager": "0xAbC123"}, record.Contracts)
	assert.Equal(t, [][]string{{
		"forge", "script", script,
		"--rpc-url", "http://127.0.0.1:8545",
		"--broadcast",
		"--chain-id", "31337",
	}}, runner.Calls)

	summary, err := utils.ReadFileToString(filepath.Join(rc.Paths.Deployments, "31337", "deployment_summary_2025-01-02_03-04-05.json"))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"LoanManager": "0xAbC123"}`, summary)

	txs, err := utils.ReadFileToString(filepath.Join(rc.Paths.Transactions, "tx_2025-01-02_03-04-05.log"))
	assert.NoError(t, err)
	assert.Equal(t, "0xdead\n", txs)

	raw, err := utils.ReadFileToString(rc.DeployRawLogFile())
	assert.NoError(t, err)
	assert.Contains(t, raw, "DeployedContract:LoanManager:0xAbC123")
	assert.Contains(t, raw, "warning: something")
}

func TestDeployNoContractsInOutput(t *testing.T) {
	ctx, logger, rc := utils.NewTestContext(t)
	writeDeployScript(t, rc.ProjectDir, filepath.Join("script", "Deploy.s.sol"))
	runner := mocks.NewRunner().On("forge script", &types.CommandResult{
		Stdout: "Script ran successfully.\nTransaction hash: 0xdead\n",
	})

	record := NewExecutor(runner).Deploy(ctx, rc, "", "http://127.0.0.1:8545", 31337, false, time.Minute)

	assert.Nil(t, record)
	assert.NoFileExists(t, filepath.Join(rc.Paths.Deployments, "31337", "deployment_summary_2025-01-02_03-04-05.json"))
	assert.FileExists(t, filepath.Join(rc.Paths.Transactions, "tx_2025-01-02_03-04-05.log"))
	assert.FileExists(t, rc.DeployRawLogFile())
	assert.True(t, logger.Contains("DeployedContract:ContractName:0x..."))
}

func TestDeployFailures(t *testing.T) {
	testCases := []struct {
		Name    string
		Result  *types.CommandResult
		Message string
	}{
		{
			Name:    "timeout",
			Result:  &types.CommandResult{ExitCode: types.TimeoutExitCode, TimedOut: true, Stderr: "timeout expired after 1m0s"},
			Message: "deployment timed out",
		},
		{
			Name:    "launch failure",
			Result:  &types.CommandResult{ExitCode: types.LaunchFailureExitCode, Stderr: "fork/exec forge: permission denied"},
			Message: "permission denied",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctx, logger, rc := utils.NewTestContext(t)
			writeDeployScript(t, rc.ProjectDir, filepath.Join("script", "Deploy.s.sol"))
			runner := mocks.NewRunner().On("forge script", tc.Result)

			assert.Nil(t, NewExecutor(runner).Deploy(ctx, rc, "", "http://127.0.0.1:8545", 31337, false, time.Minute))
			assert.True(t, logger.Contains(tc.Message))
			assert.FileExists(t, rc.DeployRawLogFile())
		})
	}
}

func TestDeployNonZeroExitStillParsed(t *testing.T) {
	ctx, logger, rc := utils.NewTestContext(t)
	runner := mocks.NewRunner().On("forge script", &types.CommandResult{
		ExitCode: 1,
		Stdout:   "DeployedContract:LoanManager:0x1\n",
		Stderr:   "Error: one transaction reverted",
	})

	record := NewExecutor(runner).Deploy(ctx, rc, filepath.Join(rc.ProjectDir, "Custom.s.sol"), "http://127.0.0.1:8545", 31337, false, time.Minute)
	assert.NotNil(t, record)
	assert.True(t, logger.Contains("exited with code 1"))
}

func TestSummaryTable(t *testing.T) {
	record := types.NewDeploymentRecord()
	record.Contracts["Treasury"] = "0x2"
	record.Contracts["LoanManager"] = "0x1"
	lines := SummaryTable(record)
	assert.Equal(t, "LoanManager               -> 0x1", lines[1])
	assert.Equal(t, "Treasury                  -> 0x2", lines[2])
	assert.Len(t, lines, 4)
}
