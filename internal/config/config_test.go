package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8085", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "trip_db", cfg.DBConfig.DBName)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaConfig.Brokers)
	assert.Equal(t, "service-trip-reservation", cfg.KafkaConfig.GroupID("reservation"))
	assert.Empty(t, cfg.Maps.APIKey)
	assert.Equal(t, "ma", cfg.Maps.Region)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)

	card := cfg.RateCard()
	assert.Equal(t, "EUR", card.Currency)
	assert.Equal(t, int64(8000), card.NightlyRateCents)
	assert.InDelta(t, 0.10, card.RoundTripDiscount, 1e-9)

	settings := cfg.EstimateSettings()
	assert.InDelta(t, 1.2, settings.RoadFactor, 1e-9)
	assert.InDelta(t, 50, settings.FallbackTransferKm, 1e-9)
	assert.InDelta(t, 100, settings.FallbackLegKm, 1e-9)
	assert.Equal(t, 480, settings.Nights.DayBudgetMinutes)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRIP_SERVICE_PORT", ":9000")
	t.Setenv("TRIP_APP_ENV", "production")
	t.Setenv("TRIP_DB_HOST", "db.internal")
	t.Setenv("TRIP_KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("TRIP_MAPS_API_KEY", "secret")
	t.Setenv("TRIP_PRICING_CURRENCY", "mad")
	t.Setenv("TRIP_PRICING_FALLBACK_TRANSFER_KM", "35")
	t.Setenv("TRIP_PRICING_FALLBACK_LEG_KM", "140")
	t.Setenv("TRIP_TRIP_DAY_BUDGET_MINUTES", "600")
	t.Setenv("TRIP_CORS_ALLOWED_ORIGINS", "https://wayfare.example,https://admin.wayfare.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "db.internal", cfg.DBConfig.Host)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaConfig.Brokers)
	assert.Equal(t, "secret", cfg.Maps.APIKey)
	assert.Equal(t, "MAD", cfg.RateCard().Currency)
	assert.InDelta(t, 35, cfg.EstimateSettings().FallbackTransferKm, 1e-9)
	assert.InDelta(t, 140, cfg.EstimateSettings().FallbackLegKm, 1e-9)
	assert.Equal(t, 600, cfg.Trip.DayBudgetMinutes)
	assert.Len(t, cfg.CORSOrigins, 2)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"discount of one", "TRIP_PRICING_ROUND_TRIP_DISCOUNT", "1"},
		{"negative fallback", "TRIP_PRICING_FALLBACK_LEG_KM", "-5"},
		{"zero speed", "TRIP_TRIP_AVG_SPEED_KMH", "0"},
		{"bad currency", "TRIP_PRICING_CURRENCY", "EURO"},
		{"no brokers", "TRIP_KAFKA_BROKERS", " , "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b "))
}
