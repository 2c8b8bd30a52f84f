package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServices_Empty(t *testing.T) {
	services, err := ParseServices("")
	require.NoError(t, err)
	assert.Equal(t, DefaultServices, services)
}

func TestParseServices_Valid(t *testing.T) {
	services, err := ParseServices("cashier:Cashier:5:4, doctor:Doctor Consultation:4:12")
	require.NoError(t, err)
	require.Len(t, services, 2)

	assert.Equal(t, "cashier", services[0].ID)
	assert.Equal(t, "Cashier", services[0].DisplayName)
	assert.Equal(t, 5, services[0].DailyCapacity)
	assert.Equal(t, 4, services[0].AvgServiceMinutes)

	assert.Equal(t, "doctor", services[1].ID)
	assert.Equal(t, "Doctor Consultation", services[1].DisplayName)
}

func TestParseServices_Invalid(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"missing fields", "cashier:Cashier:5"},
		{"empty id", ":Cashier:5:4"},
		{"empty name", "cashier::5:4"},
		{"non-numeric capacity", "cashier:Cashier:lots:4"},
		{"zero capacity", "cashier:Cashier:0:4"},
		{"negative avg", "cashier:Cashier:5:-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseServices(tt.spec)
			assert.Error(t, err)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Len(t, cfg.Services, 3)
}

func TestLoad_ServicesOverride(t *testing.T) {
	t.Setenv("QUEUE_SERVICES", "notary:Notary Desk:10:15")

	cfg, err := Load()
	require.NoError(t, err)
	require.Len(t, cfg.Services, 1)
	assert.Equal(t, "notary", cfg.Services[0].ID)
	assert.Equal(t, 15, cfg.Services[0].AvgServiceMinutes)
}

func TestLoad_InvalidServices(t *testing.T) {
	t.Setenv("QUEUE_SERVICES", "broken")

	_, err := Load()
	assert.Error(t, err)
}
