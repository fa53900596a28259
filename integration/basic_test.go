//go:build basic

package integration

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCapaimpactCommands runs the main commands end to end against a small
// snapshot, using the none backend so no database state is touched.
func TestCapaimpactCommands(t *testing.T) {
	dir := t.TempDir()
	actionsPath, productionPath := writeSnapshotFixtures(t, dir)

	// Run capaimpact metrics
	err := runCapaimpactCommand(t, "metrics", "--actions", actionsPath)
	require.NoError(t, err)

	// Run capaimpact impact with details
	err = runCapaimpactCommand(t, "impact", "--actions", actionsPath, "--production", productionPath, "--detail", "--explain")
	require.NoError(t, err)

	// Run capaimpact rank without touching the score log
	err = runCapaimpactCommand(t, "rank", "--actions", actionsPath, "--production", productionPath, "--log-backend", "none")
	require.NoError(t, err)

	// Run capaimpact impact with CSV export
	outFile := filepath.Join(dir, "impacts.csv")
	err = runCapaimpactCommand(t, "impact", "--actions", actionsPath, "--production", productionPath, "--output", "csv", "--output-file", outFile)
	require.NoError(t, err)

	// Run capaimpact version
	err = runCapaimpactCommand(t, "version")
	require.NoError(t, err)
}
