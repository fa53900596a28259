//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedBinaryPath holds the path to a shared capaimpact binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getCapaimpactBinary returns the path to the capaimpact binary, building it once if needed.
func getCapaimpactBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "capaimpact-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "capaimpact")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build capaimpact: %v", err))
		}

		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// runCapaimpactCommand runs the shared binary with the given args from the project root.
func runCapaimpactCommand(t *testing.T, args ...string) error {
	binaryPath := getCapaimpactBinary()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}

// writeSnapshotFixtures writes a small actions/production snapshot into dir
// and returns the two file paths.
func writeSnapshotFixtures(t *testing.T, dir string) (string, string) {
	t.Helper()

	actionsPath := filepath.Join(dir, "actions.csv")
	actions := "id,title,line,project,champion_id,status,implemented_at,due_date,closed_at,internal_hours\n" +
		"ACT-1,Replace worn fixture,L1,P1,alice,closed,2024-02-01,2024-02-10,2024-02-05,4\n" +
		"ACT-2,Operator retraining,L1,P1,bob,open,,2024-03-01,,2\n"
	if err := os.WriteFile(actionsPath, []byte(actions), 0o644); err != nil {
		t.Fatalf("failed to write actions fixture: %v", err)
	}

	productionPath := filepath.Join(dir, "production.csv")
	rows := "date,line,project,produced_qty,scrap_qty,scrap_cost,downtime_minutes\n"
	for day := 1; day <= 28; day++ {
		scrapCost := 200
		if day < 5 {
			scrapCost = 400
		}
		rows += fmt.Sprintf("2024-02-%02d,L1,P1,100,5,%d,30\n", day, scrapCost)
	}
	if err := os.WriteFile(productionPath, []byte(rows), 0o644); err != nil {
		t.Fatalf("failed to write production fixture: %v", err)
	}

	return actionsPath, productionPath
}
