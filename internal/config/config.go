package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/wayfare-travel/service-trip/internal/application"
	"github.com/wayfare-travel/service-trip/internal/common/database"
	"github.com/wayfare-travel/service-trip/internal/domain/pricing"
)

// EnvPrefix is prepended to every environment variable, e.g. TRIP_DB_HOST.
const EnvPrefix = "TRIP"

// ServiceConfig holds all configuration for the trip service.
type ServiceConfig struct {
	Port         string
	AppEnv       string
	DBConfig     database.PostgresConfig
	KafkaConfig  KafkaConfig
	RedisAddr    string
	Maps         MapsConfig
	Pricing      PricingConfig
	Trip         TripConfig
	CORSOrigins  []string
	MaxBodyBytes int64
}

// KafkaConfig holds broker settings.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// GroupID returns the consumer group for the given consumer name.
func (k KafkaConfig) GroupID(name string) string {
	return k.GroupPrefix + "-" + name
}

// MapsConfig configures place geocoding. An empty APIKey disables it.
type MapsConfig struct {
	APIKey string
	Region string
}

// PricingConfig overrides the rate card and distance fallbacks.
type PricingConfig struct {
	Currency           string
	NightlyRateCents   int64
	RoundTripDiscount  float64
	RoadFactor         float64
	FallbackTransferKm float64
	FallbackLegKm      float64
}

// TripConfig drives the suggested-nights heuristic.
type TripConfig struct {
	AvgSpeedKmh      float64
	DayBudgetMinutes int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_port", ":8085")
	v.SetDefault("app_env", "development")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "trip_db")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("kafka.brokers", "localhost:9092")
	v.SetDefault("kafka.group_prefix", "service-trip")

	v.SetDefault("redis.addr", "")
	v.SetDefault("maps.api_key", "")
	v.SetDefault("maps.region", "ma")

	v.SetDefault("pricing.currency", "EUR")
	v.SetDefault("pricing.nightly_rate_cents", 8000)
	v.SetDefault("pricing.round_trip_discount", 0.10)
	v.SetDefault("pricing.road_factor", 1.2)
	v.SetDefault("pricing.fallback_transfer_km", 50)
	v.SetDefault("pricing.fallback_leg_km", 100)

	v.SetDefault("trip.avg_speed_kmh", 60)
	v.SetDefault("trip.day_budget_minutes", 480)

	v.SetDefault("cors.allowed_origins", "*")
	v.SetDefault("http.max_body_bytes", 1<<20)
}

// Load reads configuration from TRIP_* environment variables and an optional config.yaml.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &ServiceConfig{
		Port:   v.GetString("service_port"),
		AppEnv: v.GetString("app_env"),
		DBConfig: database.PostgresConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		KafkaConfig: KafkaConfig{
			Brokers:     splitList(v.GetString("kafka.brokers")),
			GroupPrefix: v.GetString("kafka.group_prefix"),
		},
		RedisAddr: v.GetString("redis.addr"),
		Maps: MapsConfig{
			APIKey: v.GetString("maps.api_key"),
			Region: v.GetString("maps.region"),
		},
		Pricing: PricingConfig{
			Currency:           strings.ToUpper(v.GetString("pricing.currency")),
			NightlyRateCents:   v.GetInt64("pricing.nightly_rate_cents"),
			RoundTripDiscount:  v.GetFloat64("pricing.round_trip_discount"),
			RoadFactor:         v.GetFloat64("pricing.road_factor"),
			FallbackTransferKm: v.GetFloat64("pricing.fallback_transfer_km"),
			FallbackLegKm:      v.GetFloat64("pricing.fallback_leg_km"),
		},
		Trip: TripConfig{
			AvgSpeedKmh:      v.GetFloat64("trip.avg_speed_kmh"),
			DayBudgetMinutes: v.GetInt("trip.day_budget_minutes"),
		},
		CORSOrigins:  splitList(v.GetString("cors.allowed_origins")),
		MaxBodyBytes: v.GetInt64("http.max_body_bytes"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ServiceConfig) validate() error {
	p := c.Pricing
	switch {
	case len(p.Currency) != 3:
		return fmt.Errorf("invalid config: pricing currency %q must be a 3-letter code", p.Currency)
	case p.NightlyRateCents < 0:
		return fmt.Errorf("invalid config: nightly rate must not be negative")
	case p.RoundTripDiscount < 0 || p.RoundTripDiscount >= 1:
		return fmt.Errorf("invalid config: round trip discount %v must be in [0, 1)", p.RoundTripDiscount)
	case p.FallbackTransferKm < 0 || p.FallbackLegKm < 0:
		return fmt.Errorf("invalid config: fallback distances must not be negative")
	case c.Trip.AvgSpeedKmh <= 0 || c.Trip.DayBudgetMinutes <= 0:
		return fmt.Errorf("invalid config: trip speed and day budget must be positive")
	case len(c.KafkaConfig.Brokers) == 0:
		return fmt.Errorf("invalid config: at least one kafka broker is required")
	}
	return nil
}

// IsDevelopment reports whether the service runs with the development profile.
func (c *ServiceConfig) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// RateCard returns the default tables with the configured rates applied.
func (c *ServiceConfig) RateCard() pricing.RateCard {
	card := pricing.NewDefaultRateCard()
	card.Currency = c.Pricing.Currency
	card.NightlyRateCents = c.Pricing.NightlyRateCents
	card.RoundTripDiscount = c.Pricing.RoundTripDiscount
	return card
}

// EstimateSettings returns the distance and nights settings for the estimate service.
func (c *ServiceConfig) EstimateSettings() application.EstimateSettings {
	return application.EstimateSettings{
		RoadFactor:         c.Pricing.RoadFactor,
		FallbackTransferKm: c.Pricing.FallbackTransferKm,
		FallbackLegKm:      c.Pricing.FallbackLegKm,
		Nights: pricing.NightsPolicy{
			AvgSpeedKmh:      c.Trip.AvgSpeedKmh,
			DayBudgetMinutes: c.Trip.DayBudgetMinutes,
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
