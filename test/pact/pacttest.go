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
	ProviderName = "order-management-api"
	ConsumerName = "order-backoffice"

	StateOrdersBaseline   = "orders baseline"
	StatePendingOrder     = "pending order with id 1 exists"
	StatePaidOrder        = "paid order with id 1 exists"
	StateOrderMissing     = "no order with id 404"
	StateUserHasOrders    = "user 7 has a pending and a paid order"
	StateStoreUnavailable = "order store unavailable"
)

const (
	ExistingOrderID int64 = 1
	MissingOrderID  int64 = 404
	OwnerUserID     int64 = 7
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

// PactFile returns the canonical pact file path for the backoffice consumer.
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

// ExampleOrderPayload is the create/update body used across interactions.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"clientName": "Alice",
		"address":    "1 Main St",
		"phone":      "555-1111",
		"userId":     OwnerUserID,
	}
}

func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
