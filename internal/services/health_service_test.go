package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/shared/testutil"
	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts"
)

type fixedReadiness bool

func (f fixedReadiness) Ready() bool { return bool(f) }

func TestHealthServiceReadiness(t *testing.T) {
	tests := []struct {
		name       string
		dashboard  ReadinessChecker
		wantStatus string
	}{
		{name: "built", dashboard: fixedReadiness(true), wantStatus: "ready"},
		{name: "building", dashboard: fixedReadiness(false), wantStatus: "not_ready"},
		{name: "no dashboard", dashboard: nil, wantStatus: "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			hs := NewHealthService(tt.dashboard, "data/netflix.xlsx", logger)

			status := hs.ReadinessCheck(context.Background())
			assert.Equal(t, tt.wantStatus, status.Status)
			assert.Equal(t, contracts.Version, status.Version)

			dash, ok := status.Services["dashboard"].(ServiceHealth)
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, dash.Status)
			if tt.wantStatus == "not_ready" {
				assert.Contains(t, dash.Message, "data/netflix.xlsx")
				assert.True(t, logs.ContainsMessage("readiness check failed"))
			}
		})
	}
}

func TestHealthServiceReadinessFollowsBuild(t *testing.T) {
	f := newServiceFixture(t)
	hs := NewHealthService(f.service, "fixture.xlsx", nil)

	assert.Equal(t, "not_ready", hs.ReadinessCheck(context.Background()).Status)

	_, err := f.service.Build(context.Background(), testSnapshot())
	require.NoError(t, err)
	assert.Equal(t, "ready", hs.ReadinessCheck(context.Background()).Status)
}

func TestHealthServiceLivenessAndVersion(t *testing.T) {
	hs := NewHealthService(fixedReadiness(false), "", nil)

	health := hs.HealthCheck(context.Background())
	assert.Equal(t, "ok", health.Status)

	live := hs.LivenessCheck(context.Background())
	assert.Equal(t, "alive", live.Status)
	assert.Contains(t, live.Runtime, "goroutines")
	assert.Contains(t, live.Runtime, "go_version")

	version := hs.Version()
	assert.Equal(t, contracts.Version, version["version"])
	assert.Contains(t, version, "api_version")
	assert.Contains(t, version, "start_time")
}
