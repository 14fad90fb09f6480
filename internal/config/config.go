package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything the hosts read from the environment.
type Config struct {
	Port int

	OrdersTable    string
	CartsTable     string
	AddressesTable string
	PaymentsTable  string

	OrderEventsQueueURL string

	JWTSecret      string
	CatalogBaseURL string

	// Order lifecycle transition thresholds, measured from the timestamp
	// recorded for the order's current status.
	PlacedToProcessingAfter  time.Duration
	ProcessingToShippedAfter time.Duration
	ShippedToDeliveredAfter  time.Duration

	// How often the advancer runs a full cycle of the three passes.
	CycleInterval time.Duration

	// Cap on concurrent per-order status updates within one pass.
	AdvanceConcurrency int
}

// Default returns the baseline configuration. Threshold defaults follow the
// production values; every one of them is overridable through the environment.
func Default() Config {
	return Config{
		Port:                     8080,
		OrdersTable:              "orders",
		CartsTable:               "carts",
		AddressesTable:           "addresses",
		PaymentsTable:            "payments",
		CatalogBaseURL:           "https://dummyjson.com",
		PlacedToProcessingAfter:  3 * time.Hour,
		ProcessingToShippedAfter: 5 * time.Hour,
		ShippedToDeliveredAfter:  7 * time.Hour,
		CycleInterval:            10 * time.Minute,
		AdvanceConcurrency:       8,
	}
}

// FromEnv layers environment overrides on top of the defaults.
func FromEnv() Config {
	c := Default()
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Port = p
		}
	}
	if v := os.Getenv("ORDERS_TABLE"); v != "" {
		c.OrdersTable = v
	}
	if v := os.Getenv("CARTS_TABLE"); v != "" {
		c.CartsTable = v
	}
	if v := os.Getenv("ADDRESSES_TABLE"); v != "" {
		c.AddressesTable = v
	}
	if v := os.Getenv("PAYMENTS_TABLE"); v != "" {
		c.PaymentsTable = v
	}
	if v := os.Getenv("ORDER_EVENTS_QUEUE_URL"); v != "" {
		c.OrderEventsQueueURL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("CATALOG_BASE_URL"); v != "" {
		c.CatalogBaseURL = v
	}
	c.PlacedToProcessingAfter = durationEnv("PLACED_TO_PROCESSING_AFTER", c.PlacedToProcessingAfter)
	c.ProcessingToShippedAfter = durationEnv("PROCESSING_TO_SHIPPED_AFTER", c.ProcessingToShippedAfter)
	c.ShippedToDeliveredAfter = durationEnv("SHIPPED_TO_DELIVERED_AFTER", c.ShippedToDeliveredAfter)
	c.CycleInterval = durationEnv("CYCLE_INTERVAL", c.CycleInterval)
	if v := os.Getenv("ADVANCE_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.AdvanceConcurrency = n
		}
	}
	return c
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
