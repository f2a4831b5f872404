package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveStore_Outcomes(t *testing.T) {
	ObserveStore("find", time.Now(), nil)
	ObserveStore("find", time.Now(), errors.New("boom"))

	if n := testutil.CollectAndCount(StoreOperationDuration); n < 2 {
		t.Errorf("expected ok and error series, got %d", n)
	}
}

func TestRegisterStoreMetrics_Idempotent(t *testing.T) {
	RegisterStoreMetrics()
	RegisterStoreMetrics()
}
