//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "gamefolio-api"
	ConsumerName = "game-portal"

	StateCatalogBaseline = "catalog baseline"
	StateGameExists      = "game with steam app id 440 exists"
	StateAppUnknown      = "steam app 404000 is unknown upstream"
)

const (
	ExistingAppID int64 = 440
	UnknownAppID  int64 = 404000

	exampleGameName  = "Team Fortress 2"
	exampleGameImage = "https://example.pact/apps/440/header.jpg"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the game portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleGamePayload provides stable test data for pact interactions.
func ExampleGamePayload() map[string]any {
	return map[string]any{
		"steamAppId": ExistingAppID,
		"name":       exampleGameName,
		"image":      exampleGameImage,
		"isFree":     true,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
