package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// DashboardSettings tunes the aggregation panels of the dashboard
type DashboardSettings struct {
	LowStockThreshold      int64   `yaml:"lowStockThreshold"`
	ReferenceQuantity      int64   `yaml:"referenceQuantity"`
	RecentShipmentsLimit   int     `yaml:"recentShipmentsLimit"`
	InventoryOverviewLimit int     `yaml:"inventoryOverviewLimit"`
	NearCapacityPercent    float64 `yaml:"nearCapacityPercent"`
}

// EventSettings configures the cross-process change relay
type EventSettings struct {
	BusBuffer     int    `yaml:"busBuffer"`
	StreamName    string `yaml:"streamName"`
	ConsumerGroup string `yaml:"consumerGroup"`
}

// Config holds the service configuration
type Config struct {
	Dashboard DashboardSettings `yaml:"dashboard"`
	Events    EventSettings     `yaml:"events"`
}

var (
	// DefaultDashboard mirrors the thresholds the dashboard panels were designed around
	DefaultDashboard = DashboardSettings{
		LowStockThreshold:      100,
		ReferenceQuantity:      1000,
		RecentShipmentsLimit:   5,
		InventoryOverviewLimit: 10,
		NearCapacityPercent:    80,
	}

	DefaultEvents = EventSettings{
		BusBuffer:     256,
		StreamName:    "logistics:entity-changes",
		ConsumerGroup: "logistics-cache",
	}
)

// Default returns a Config populated with defaults
func Default() *Config {
	return &Config{Dashboard: DefaultDashboard, Events: DefaultEvents}
}

// Load loads configuration from a YAML file.
// If the file is not found, returns defaults; missing values fall back to defaults.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/dashboard.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		slog.Warn("Failed to parse config file, using defaults", "path", configPath, "error", err)
		return Default(), nil
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	d := &c.Dashboard
	if d.LowStockThreshold <= 0 {
		d.LowStockThreshold = DefaultDashboard.LowStockThreshold
	}
	if d.ReferenceQuantity <= 0 {
		d.ReferenceQuantity = DefaultDashboard.ReferenceQuantity
	}
	if d.RecentShipmentsLimit <= 0 {
		d.RecentShipmentsLimit = DefaultDashboard.RecentShipmentsLimit
	}
	if d.InventoryOverviewLimit <= 0 {
		d.InventoryOverviewLimit = DefaultDashboard.InventoryOverviewLimit
	}
	if d.NearCapacityPercent <= 0 {
		d.NearCapacityPercent = DefaultDashboard.NearCapacityPercent
	}

	e := &c.Events
	if e.BusBuffer <= 0 {
		e.BusBuffer = DefaultEvents.BusBuffer
	}
	if e.StreamName == "" {
		e.StreamName = DefaultEvents.StreamName
	}
	if e.ConsumerGroup == "" {
		e.ConsumerGroup = DefaultEvents.ConsumerGroup
	}
}
