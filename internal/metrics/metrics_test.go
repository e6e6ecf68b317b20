package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveStoreCountsResults(t *testing.T) {
	ok := storeOperations.WithLabelValues(StoreSchedule, "test_op", "ok")
	failed := storeOperations.WithLabelValues(StoreSchedule, "test_op", "error")
	beforeOK, beforeFailed := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	ObserveStore(StoreSchedule, "test_op", nil)
	ObserveStore(StoreSchedule, "test_op", errors.New("boom"))
	ObserveStore(StoreSchedule, "test_op", nil)

	if got := testutil.ToFloat64(ok) - beforeOK; got != 2 {
		t.Fatalf("expected 2 successful operations, got %v", got)
	}
	if got := testutil.ToFloat64(failed) - beforeFailed; got != 1 {
		t.Fatalf("expected 1 failed operation, got %v", got)
	}
}

func TestSessionGauge(t *testing.T) {
	before := testutil.ToFloat64(sessionSwitches)

	SessionOpened()
	if testutil.ToFloat64(activeSessions) != 1 {
		t.Fatal("expected active session gauge to be 1")
	}
	SessionClosed()
	if testutil.ToFloat64(activeSessions) != 0 {
		t.Fatal("expected active session gauge to be 0")
	}
	if got := testutil.ToFloat64(sessionSwitches) - before; got != 1 {
		t.Fatalf("expected one switch, got %v", got)
	}
}
