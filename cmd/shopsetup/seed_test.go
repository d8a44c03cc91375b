package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steipete/shopsetup/internal/envfile"
)

func TestRunSeed_Reset(t *testing.T) {
	dir := t.TempDir()
	useConfig(t, dir)
	require.NoError(t, envfile.Write(filepath.Join(dir, ".env"), envfile.NewSettings("tok", "sec", "3000")))

	var out bytes.Buffer
	seedCmd.SetOut(&out)
	require.NoError(t, runSeed(seedCmd, nil))
	assert.NotContains(t, out.String(), "Resetting")

	out.Reset()
	resetCatalog = true
	require.NoError(t, runSeed(seedCmd, nil))

	assert.Contains(t, out.String(), "🧹 Resetting catalog tables...")
	assert.Contains(t, out.String(), "✅ 9 products in "+filepath.Join(dir, "data", "shop.db"))
}
