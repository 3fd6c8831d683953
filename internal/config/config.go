// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultDataDir        = ".vegprofil"
	DefaultLogLevel       = "INFO"
	DefaultReportSubdir   = "reports"
	DefaultNVDBBaseURL    = "https://nvdbapiles.atlas.vegvesen.no"
	DefaultNVDBClientName = "vegprofil"
	DefaultCounty         = 15
	DefaultSRID           = 5973
	DefaultPageSize       = 1000
	DefaultNVDBTimeout    = 30 * time.Second
	DefaultNVDBMaxRetries = 3
	DefaultNVDBDelay      = 2 * time.Second
	DefaultNVDBBackoff    = 2.0
	DefaultParcelLength   = 1000.0
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// OverlapMode selects the interval-overlap predicate at segment boundaries.
// The strict predicate excludes boundary-touching intervals; the inclusive
// predicate counts them as overlapping. The choice changes results near
// segment/restriction boundaries, so it is an explicit configuration value
// per restriction kind rather than a hard-coded constant.
type OverlapMode string

// OverlapMode values.
const (
	OverlapStrict    OverlapMode = "strict"
	OverlapInclusive OverlapMode = "inclusive"
)

// OverlapConfig holds the overlap predicate per restriction kind.
type OverlapConfig struct {
	weight   OverlapMode
	bridge   OverlapMode
	height   OverlapMode
	classify OverlapMode
}

// NewOverlapConfig creates an OverlapConfig with the production defaults:
// weight and height restrictions count boundary touches, bridge placement
// and classifier lookups do not.
func NewOverlapConfig() OverlapConfig {
	return OverlapConfig{
		weight:   OverlapInclusive,
		bridge:   OverlapStrict,
		height:   OverlapInclusive,
		classify: OverlapStrict,
	}
}

// Weight returns the overlap mode for weight (Bruksklasse) restrictions.
func (o OverlapConfig) Weight() OverlapMode { return o.weight }

// Bridge returns the overlap mode for bridge restrictions.
func (o OverlapConfig) Bridge() OverlapMode { return o.bridge }

// Height returns the overlap mode for height restrictions.
func (o OverlapConfig) Height() OverlapMode { return o.height }

// Classify returns the overlap mode used by the cause classifier lookup.
func (o OverlapConfig) Classify() OverlapMode { return o.classify }

// NVDBConfig configures the NVDB API client.
type NVDBConfig struct {
	baseURL      string
	clientName   string
	county       int
	srid         int
	roadRef      string
	pageSize     int
	timeout      time.Duration
	maxRetries   int
	initialDelay time.Duration
	backoff      float64
}

// NewNVDBConfig creates an NVDBConfig with defaults.
func NewNVDBConfig() NVDBConfig {
	return NVDBConfig{
		baseURL:      DefaultNVDBBaseURL,
		clientName:   DefaultNVDBClientName,
		county:       DefaultCounty,
		srid:         DefaultSRID,
		roadRef:      "F",
		pageSize:     DefaultPageSize,
		timeout:      DefaultNVDBTimeout,
		maxRetries:   DefaultNVDBMaxRetries,
		initialDelay: DefaultNVDBDelay,
		backoff:      DefaultNVDBBackoff,
	}
}

// WithBaseURL returns a copy with the given base URL.
func (n NVDBConfig) WithBaseURL(url string) NVDBConfig {
	n.baseURL = url
	return n
}

// WithClientName returns a copy with the given X-Client header value.
func (n NVDBConfig) WithClientName(name string) NVDBConfig {
	n.clientName = name
	return n
}

// WithCounty returns a copy with the given county number.
func (n NVDBConfig) WithCounty(county int) NVDBConfig {
	n.county = county
	return n
}

// WithMaxRetries returns a copy with the given retry count.
func (n NVDBConfig) WithMaxRetries(retries int) NVDBConfig {
	n.maxRetries = retries
	return n
}

// WithInitialDelay returns a copy with the given first retry delay.
func (n NVDBConfig) WithInitialDelay(d time.Duration) NVDBConfig {
	n.initialDelay = d
	return n
}

// BaseURL returns the NVDB API base URL.
func (n NVDBConfig) BaseURL() string { return n.baseURL }

// ClientName returns the X-Client header value.
func (n NVDBConfig) ClientName() string { return n.clientName }

// County returns the county number used to filter requests.
func (n NVDBConfig) County() int { return n.county }

// SRID returns the spatial reference id requested for geometries.
func (n NVDBConfig) SRID() int { return n.srid }

// RoadRef returns the road system reference filter (e.g. "F" for county roads).
func (n NVDBConfig) RoadRef() string { return n.roadRef }

// PageSize returns the page size for paginated requests.
func (n NVDBConfig) PageSize() int { return n.pageSize }

// Timeout returns the per-request timeout.
func (n NVDBConfig) Timeout() time.Duration { return n.timeout }

// MaxRetries returns the maximum retry count for transient failures.
func (n NVDBConfig) MaxRetries() int { return n.maxRetries }

// InitialDelay returns the first retry delay.
func (n NVDBConfig) InitialDelay() time.Duration { return n.initialDelay }

// Backoff returns the retry backoff multiplier.
func (n NVDBConfig) Backoff() float64 { return n.backoff }

// VehicleConfig holds the thresholds of one vehicle profile.
// Tonnage is the required permitted weight, BridgeTonnage the independent
// bridge requirement (a bridge below it is a bottleneck on its own),
// MaxLength the required vehicle length and MinHeight the required clearance.
type VehicleConfig struct {
	Name          string  `yaml:"name"`
	Tonnage       float64 `yaml:"tonnage"`
	BridgeTonnage float64 `yaml:"bridge_tonnage"`
	MaxLength     float64 `yaml:"max_length"`
	MinHeight     float64 `yaml:"min_height"`
}

// AppConfig is the immutable application configuration.
type AppConfig struct {
	dataDir      string
	dbURL        string
	reportDir    string
	logLevel     string
	logFormat    LogFormat
	nvdb         NVDBConfig
	overlap      OverlapConfig
	vehicle      VehicleConfig
	parcelLength float64
}

// NewAppConfig creates an AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir
	return AppConfig{
		dataDir:      dataDir,
		dbURL:        defaultDBURL(dataDir),
		reportDir:    filepath.Join(dataDir, DefaultReportSubdir),
		logLevel:     DefaultLogLevel,
		logFormat:    LogFormatPretty,
		nvdb:         NewNVDBConfig(),
		overlap:      NewOverlapConfig(),
		vehicle:      DefaultVehicle(),
		parcelLength: DefaultParcelLength,
	}
}

// DefaultVehicle returns the normal-transport profile used when no profile
// file or flags are given: 50 t permitted weight, 60 t bridge requirement,
// 19.5 m vehicle length and 4.5 m clearance.
func DefaultVehicle() VehicleConfig {
	return VehicleConfig{
		Name:          "NORMALTRANSPORT",
		Tonnage:       50.0,
		BridgeTonnage: 60.0,
		MaxLength:     19.5,
		MinHeight:     4.5,
	}
}

func defaultDBURL(dataDir string) string {
	return "sqlite:///" + filepath.Join(dataDir, "vegprofil.db")
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the work database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// ReportDir returns the directory report files are written to.
func (c AppConfig) ReportDir() string { return c.reportDir }

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// NVDB returns the NVDB client configuration.
func (c AppConfig) NVDB() NVDBConfig { return c.nvdb }

// Overlap returns the overlap predicate configuration.
func (c AppConfig) Overlap() OverlapConfig { return c.overlap }

// Vehicle returns the active vehicle profile thresholds.
func (c AppConfig) Vehicle() VehicleConfig { return c.vehicle }

// ParcelLength returns the rut-measurement parcel length in meters.
func (c AppConfig) ParcelLength() float64 { return c.parcelLength }

// WithVehicle returns a copy of the config with the given vehicle profile.
func (c AppConfig) WithVehicle(v VehicleConfig) AppConfig {
	c.vehicle = v
	return c
}

// WithNVDB returns a copy of the config with the given NVDB configuration.
func (c AppConfig) WithNVDB(n NVDBConfig) AppConfig {
	c.nvdb = n
	return c
}

// WithDBURL returns a copy of the config with the given database URL.
func (c AppConfig) WithDBURL(url string) AppConfig {
	c.dbURL = url
	return c
}

// EnsureDataDir creates the data directory if it does not exist.
func (c AppConfig) EnsureDataDir() error {
	if err := os.MkdirAll(c.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory %s: %w", c.dataDir, err)
	}
	return nil
}

// EnsureReportDir creates the report directory if it does not exist.
func (c AppConfig) EnsureReportDir() error {
	if err := os.MkdirAll(c.reportDir, 0o755); err != nil {
		return fmt.Errorf("create report directory %s: %w", c.reportDir, err)
	}
	return nil
}

func parseOverlapMode(s string, fallback OverlapMode) OverlapMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return OverlapStrict
	case "inclusive":
		return OverlapInclusive
	default:
		return fallback
	}
}
