package cmd

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vaultchain-africa/vc-automation/internal/artifacts"
	"github.com/vaultchain-africa/vc-automation/pkg/types"
)

func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func seedDeployment(t *testing.T, root string, token string) {
	store := artifacts.NewStore(types.NewRunPaths(root))
	record := types.NewDeploymentRecord()
	record.Contracts["LoanManager"] = "0xAbC1230000000000000000000000000000000001"
	record.TransactionHashes = []string{"0xdead"}
	_, err := store.Save(31337, token, record)
	assert.NoError(t, err)
	_, err = store.SaveTransactions(token, record.TransactionHashes)
	assert.NoError(t, err)
}

func TestRoleIDCommand(t *testing.T) {
	testcases := []struct {
		Name             string
		Args             []string
		ExpectedResponse string
	}{
		{
			Name:             "empty role",
			Args:             []string{"role-id", ""},
			ExpectedResponse: "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470\n",
		},
		{
			Name:             "minter role",
			Args:             []string{"role-id", "MINTER_ROLE"},
			ExpectedResponse: "0x9f2df0fed2c77648de5860a4cc508cd0818c85b8b8a1ab4ceeef8d981c8956a6\n",
		},
	}
	for _, tc := range testcases {
		t.Run(tc.Name, func(t *testing.T) {
			actualResponse, err := executeCommand(tc.Args...)
			assert.NoError(t, err)
			assert.Equal(t, tc.ExpectedResponse, actualResponse)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand("version", "-o", "yaml")
	assert.NoError(t, err)
	assert.Contains(t, out, "License: Apache-2.0")

	out, err = executeCommand("version", "-o", "json")
	assert.NoError(t, err)
	assert.Contains(t, out, `"License": "Apache-2.0"`)

	_, err = executeCommand("version", "-o", "xml")
	assert.EqualError(t, err, "invalid output 'xml'")
}

func TestDeploymentsCommands(t *testing.T) {
	project := t.TempDir()
	root := filepath.Join(project, "artifacts")
	seedDeployment(t, root, "2025-01-02_03-04-05")
	seedDeployment(t, root, "2025-01-03_03-04-05")

	out, err := executeCommand("deployments", "ls", "--project-dir", project, "--root", root, "--chain-id", "31337")
	assert.NoError(t, err)
	assert.Equal(t, "chain 31337:\n"+
		"  2025-01-02_03-04-05  1 contracts, 1 transactions\n"+
		"  2025-01-03_03-04-05  1 contracts, 1 transactions\n", out)

	dest := filepath.Join(t.TempDir(), "export")
	out, err = executeCommand("deployments", "export", "2025-01-03_03-04-05", dest, "--project-dir", project, "--root", root, "--chain-id", "31337")
	assert.NoError(t, err)
	assert.Contains(t, out, "exported run 2025-01-03_03-04-05")
	assert.FileExists(t, filepath.Join(dest, "deployments", "31337", "deployment_summary_2025-01-03_03-04-05.json"))
	assert.FileExists(t, filepath.Join(dest, "transactions", "tx_2025-01-03_03-04-05.log"))

	_, err = executeCommand("deployments", "export", "2020-01-01_00-00-00", dest, "--project-dir", project, "--root", root, "--chain-id", "31337")
	assert.Error(t, err)
}

func TestCleanCommand(t *testing.T) {
	project := t.TempDir()
	root := filepath.Join(project, "artifacts")
	seedDeployment(t, root, "2025-01-02_03-04-05")

	out, err := executeCommand("clean", "--project-dir", project, "--root", root, "--chain-id", "31337")
	assert.NoError(t, err)
	assert.Contains(t, out, "clean")
	assert.Contains(t, out, "reached")
	assert.NoDirExists(t, filepath.Join(root, "deployments", "31337"))
	assert.DirExists(t, filepath.Join(root, "deployments"))
	assert.DirExists(t, filepath.Join(root, "transactions"))
	assert.DirExists(t, filepath.Join(root, "logs"))
}

func TestConfigureWithoutDeployments(t *testing.T) {
	project := t.TempDir()
	root := filepath.Join(project, "artifacts")
	_, err := executeCommand("configure", "--project-dir", project, "--root", root, "--chain-id", "31337")
	assert.EqualError(t, err, "no deployments found for chain 31337")
}

func TestInvalidPipelineConfig(t *testing.T) {
	project := t.TempDir()
	_, err := executeCommand("clean", "--project-dir", project, "--root", filepath.Join(project, "artifacts"), "--chain-id", "0")
	assert.EqualError(t, err, "invalid chain id 0")
}

func TestVersionInfo(t *testing.T) {
	BuildVersionOverride = "v1.2.3"
	BuildDate = time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
	defer func() {
		BuildVersionOverride = ""
		BuildDate = ""
	}()
	info := versionInfo()
	assert.Equal(t, "v1.2.3", info.Version)
	assert.Equal(t, "2025-01-02T00:00:00Z", info.Date)
}
