package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vaultchain-africa/vc-automation/internal/utils"
	"github.com/vaultchain-africa/vc-automation/pkg/types"
)

func newTestStore(t *testing.T) (*Store, types.RunPaths) {
	paths := types.NewRunPaths(filepath.Join(t.TempDir(), "vc_automation"))
	return NewStore(paths), paths
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store, paths := newTestStore(t)
	record := types.NewDeploymentRecord()
	record.Contracts["LoanManager"] = "0xAbC1230000000000000000000000000000000001"
	record.Contracts["Treasury"] = "0x00000000000000000000000000000000000000ff"
	record.TransactionHashes = []string{"0xdead", "0xbeef"}

	path, err := store.Save(31337, "2025-01-02_03-04-05", record)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(paths.Deployments, "31337", "deployment_summary_2025-01-02_03-04-05.json"), path)

	txPath, err := store.SaveTransactions("2025-01-02_03-04-05", record.TransactionHashes)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(paths.Transactions, "tx_2025-01-02_03-04-05.log"), txPath)

	loaded, err := store.Load(31337, "2025-01-02_03-04-05")
	assert.NoError(t, err)
	assert.Equal(t, record.Contracts, loaded.Contracts)
	assert.Equal(t, record.TransactionHashes, loaded.TransactionHashes)
}

func TestSaveWritesContractsOnly(t *testing.T) {
	store, _ := newTestStore(t)
	record := types.NewDeploymentRecord()
	record.Contracts["LoanManager"] = "0xAbC123"
	record.TransactionHashes = []string{"0xdead"}

	path, err := store.Save(31337, "run", record)
	assert.NoError(t, err)
	content, err := utils.ReadFileToString(path)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"LoanManager": "0xAbC123"}`, content)
}

func TestLoadMissing(t *testing.T) {
	store, _ := newTestStore(t)
	record, err := store.Load(31337, "never")
	assert.NoError(t, err)
	assert.Nil(t, record)
}

func TestLoadCorrupt(t *testing.T) {
	store, _ := newTestStore(t)
	dir, err := store.EnsureChainDir(1)
	assert.NoError(t, err)
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "deployment_summary_bad.json"), []byte("{"), 0644))
	_, err = store.Load(1, "bad")
	assert.Error(t, err)
}

func TestListAndLatest(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Latest(31337)
	assert.Error(t, err)

	record := types.NewDeploymentRecord()
	record.Contracts["A"] = "0x1"
	for _, token := range []string{"2025-02-01_00-00-00", "2024-12-31_23-59-59", "2025-01-15_12-00-00"} {
		_, err := store.Save(31337, token, record)
		assert.NoError(t, err)
	}
	_, err = store.Save(1, "2025-03-01_00-00-00", record)
	assert.NoError(t, err)

	tokens, err := store.List(31337)
	assert.NoError(t, err)
	assert.Equal(t, []string{"2024-12-31_23-59-59", "2025-01-15_12-00-00", "2025-02-01_00-00-00"}, tokens)

	latest, err := store.Latest(31337)
	assert.NoError(t, err)
	assert.Equal(t, "2025-02-01_00-00-00", latest)

	chains, err := store.ListChains()
	assert.NoError(t, err)
	assert.Equal(t, []int64{1, 31337}, chains)
}

func TestExport(t *testing.T) {
	store, _ := newTestStore(t)
	record := types.NewDeploymentRecord()
	record.Contracts["LoanManager"] = "0x1"
	_, err := store.Save(31337, "run", record)
	assert.NoError(t, err)
	_, err = store.SaveTransactions("run", []string{"0xdead"})
	assert.NoError(t, err)

	dest := t.TempDir()
	assert.NoError(t, store.Export(31337, "run", dest))
	assert.FileExists(t, filepath.Join(dest, "deployments", "31337", "deployment_summary_run.json"))
	assert.FileExists(t, filepath.Join(dest, "transactions", "tx_run.log"))

	assert.Error(t, store.Export(31337, "missing", dest))
}

func TestClean(t *testing.T) {
	store, paths := newTestStore(t)
	record := types.NewDeploymentRecord()
	record.Contracts["A"] = "0x1"
	_, err := store.Save(31337, "run", record)
	assert.NoError(t, err)

	assert.NoError(t, store.Clean())
	assert.NoDirExists(t, paths.Deployments)
	assert.NoDirExists(t, paths.Transactions)
}
