package maps

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wayfare-travel/service-trip/internal/domain/geo"
)

const (
	geocodeKeyPrefix = "places:geocode:"
	// Place coordinates practically never move, so entries live for a month.
	geocodeTTL = 30 * 24 * time.Hour
)

// NewRedisClient connects to addr and verifies the connection.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

// CachedResolver memoizes another Resolver in redis. Cache failures fall through to the inner resolver.
type CachedResolver struct {
	inner  Resolver
	redis  *redis.Client
	logger *zap.Logger
}

// NewCachedResolver wraps inner with a redis cache.
func NewCachedResolver(inner Resolver, client *redis.Client, logger *zap.Logger) *CachedResolver {
	return &CachedResolver{inner: inner, redis: client, logger: logger}
}

// Resolve returns the cached point for query, resolving and storing it on a miss.
func (c *CachedResolver) Resolve(ctx context.Context, query string) (geo.GeoPoint, error) {
	key := geocodeKey(query)

	val, err := c.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		if p, perr := decodePoint(val); perr == nil {
			return p, nil
		}
		c.logger.Warn("discarding malformed geocode cache entry", zap.String("key", key))
	case err != redis.Nil:
		c.logger.Warn("geocode cache read failed", zap.String("key", key), zap.Error(err))
	}

	p, err := c.inner.Resolve(ctx, query)
	if err != nil {
		return geo.GeoPoint{}, err
	}

	if err := c.redis.Set(ctx, key, encodePoint(p), geocodeTTL).Err(); err != nil {
		c.logger.Warn("geocode cache write failed", zap.String("key", key), zap.Error(err))
	}
	return p, nil
}

func geocodeKey(query string) string {
	return geocodeKeyPrefix + strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

func encodePoint(p geo.GeoPoint) string {
	return strconv.FormatFloat(p.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(p.Lng, 'f', 6, 64)
}

func decodePoint(s string) (geo.GeoPoint, error) {
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return geo.GeoPoint{}, fmt.Errorf("malformed point %q", s)
	}
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return geo.GeoPoint{}, fmt.Errorf("malformed latitude: %w", err)
	}
	ln, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return geo.GeoPoint{}, fmt.Errorf("malformed longitude: %w", err)
	}
	return geo.GeoPoint{Lat: la, Lng: ln}, nil
}
