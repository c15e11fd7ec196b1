package deploy

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vaultchain-africa/vc-automation/internal/utils"
)

func TestParseDeploymentOutput(t *testing.T) {
	ctx, logger, _ := utils.NewTestContext(t)
	stdout := strings.Join([]string{
		"Compiling 42 files with 0.8.20",
		"== Logs ==",
		"  DeployedContract:LoanManager:0xAbC1230000000000000000000000000000000001",
		"  DeployedContract:Treasury:0x00000000000000000000000000000000000000fF",
		"##### anvil-hardhat",
		"✅  [Success]Hash: 0x1111",
		"Transaction hash: 0xdead",
		"  Transaction hash:   0xbeef  ",
		"ONCHAIN EXECUTION COMPLETE & SUCCESSFUL.",
	}, "\n")

	record := ParseDeploymentOutput(ctx, stdout)
	assert.Equal(t, map[string]string{
		"LoanManager": "0xAbC1230000000000000000000000000000000001",
		"Treasury":    "0x00000000000000000000000000000000000000fF",
	}, record.Contracts)
	assert.Equal(t, []string{"0xdead", "0xbeef"}, record.TransactionHashes)
	assert.Equal(t, 0, logger.Count("warn"))
}

func TestParseDeploymentOutputIgnoresNoiseInAnyOrder(t *testing.T) {
	ctx, _, _ := utils.NewTestContext(t)
	lines := []string{
		"DeployedContract:PoolVaultERC4626:0x01",
		"DeployedContract:LoanManager:0x02",
		"DeployedContract:Marketplace:0x03",
		"noise: with: colons: everywhere",
		"Deployed contract LoanManager at 0x99",
		"",
		"   ",
		"deployedcontract:lower:0x04",
	}
	expected := map[string]string{
		"PoolVaultERC4626": "0x01",
		"LoanManager":      "0x02",
		"Marketplace":      "0x03",
	}
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		r.Shuffle(len(lines), func(a, b int) { lines[a], lines[b] = lines[b], lines[a] })
		record := ParseDeploymentOutput(ctx, strings.Join(lines, "\n"))
		assert.Equal(t, expected, record.Contracts)
		assert.Empty(t, record.TransactionHashes)
	}
}

func TestParseDeploymentOutputStripsANSI(t *testing.T) {
	ctx, _, _ := utils.NewTestContext(t)
	plain := "DeployedContract:LoanManager:0xAbC123\nTransaction hash: 0xdead"
	colored := "\x1b[32mDeployedContract:LoanManager:0xAbC123\x1b[0m\n\x1b[1;33m  Transaction hash: \x1b[0m0xdead\x1b[0m"

	assert.Equal(t, ParseDeploymentOutput(ctx, plain), ParseDeploymentOutput(ctx, colored))
}

func TestParseDeploymentOutputMalformedLine(t *testing.T) {
	ctx, logger, _ := utils.NewTestContext(t)
	record := ParseDeploymentOutput(ctx, "DeployedContract:Foo:Bar:Baz\nDeployedContract:OnlyName\nDeployedContract:Good:0x1")

	assert.Equal(t, map[string]string{"Good": "0x1"}, record.Contracts)
	assert.Equal(t, 2, logger.Count("warn"))
	assert.True(t, logger.Contains("Could not parse deployment line: DeployedContract:Foo:Bar:Baz"))
}

func TestParseDeploymentOutputDuplicateLastWins(t *testing.T) {
	ctx, logger, _ := utils.NewTestContext(t)
	record := ParseDeploymentOutput(ctx, "DeployedContract:LoanManager:0x1\nDeployedContract:LoanManager:0x2")

	assert.Equal(t, map[string]string{"LoanManager": "0x2"}, record.Contracts)
	assert.True(t, logger.Contains("reported more than once"))
}

func TestParseDeploymentOutputEmpty(t *testing.T) {
	ctx, _, _ := utils.NewTestContext(t)
	record := ParseDeploymentOutput(ctx, "")
	assert.Empty(t, record.Contracts)
	assert.Empty(t, record.TransactionHashes)
}

func TestParseDeploymentOutputOversizedLine(t *testing.T) {
	ctx, logger, _ := utils.NewTestContext(t)
	stdout := strings.Join([]string{
		"DeployedContract:Treasury:0x01",
		strings.Repeat("x", 5*1024*1024),
		"DeployedContract:LoanManager:0x02\r",
		"Transaction hash: 0xdead",
	}, "\n")

	record := ParseDeploymentOutput(ctx, stdout)
	assert.Equal(t, map[string]string{"Treasury": "0x01", "LoanManager": "0x02"}, record.Contracts)
	assert.Equal(t, []string{"0xdead"}, record.TransactionHashes)
	assert.Equal(t, 0, logger.Count("warn"))
}
