package db

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPoolStatus_ReportShape(t *testing.T) {
	report := healthReport{
		Status: "healthy",
		Pool: PoolStatus{
			TotalConns:    8,
			IdleConns:     3,
			AcquiredConns: 5,
			MaxConns:      20,
			AcquireCount:  140,
			AcquireWait:   "1.5s",
			Healthy:       true,
		},
	}

	raw, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := string(raw)
	for _, want := range []string{`"status":"healthy"`, `"total_conns":8`, `"acquire_wait":"1.5s"`, `"healthy":true`} {
		if !strings.Contains(body, want) {
			t.Errorf("report missing %s: %s", want, body)
		}
	}
	if strings.Contains(body, `"error"`) {
		t.Errorf("healthy report must omit the error field: %s", body)
	}
}

func TestPoolStatus_UnhealthyReportCarriesError(t *testing.T) {
	report := healthReport{
		Status: "unhealthy",
		Error:  "connection refused",
		Pool:   PoolStatus{MaxConns: 20, AcquireWait: "0s"},
	}

	raw, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := string(raw)
	if !strings.Contains(body, `"error":"connection refused"`) {
		t.Errorf("unhealthy report must carry the ping error: %s", body)
	}
	if report.Pool.Healthy {
		t.Error("zero connections must not report healthy")
	}
}
