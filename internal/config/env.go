package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use underscore delimiter (e.g. NVDB_BASE_URL).
type EnvConfig struct {
	// DataDir is the data directory path.
	// Env: DATA_DIR (default: .vegprofil)
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the work database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/vegprofil.db
	DBURL string `envconfig:"DB_URL"`

	// ReportDir is the directory reports are written to.
	// Env: REPORT_DIR (default: {data_dir}/reports)
	ReportDir string `envconfig:"REPORT_DIR"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// NVDB configures the NVDB API client.
	NVDB NVDBEnv `envconfig:"NVDB"`

	// Overlap configures the interval-overlap predicates.
	Overlap OverlapEnv `envconfig:"OVERLAP"`

	// Vehicle configures the default vehicle profile thresholds.
	Vehicle VehicleEnv `envconfig:"VEHICLE"`

	// ParcelLength is the rut-measurement parcel length in meters.
	// Env: PARCEL_LENGTH (default: 1000)
	ParcelLength float64 `envconfig:"PARCEL_LENGTH" default:"1000"`
}

// NVDBEnv holds environment configuration for the NVDB client.
type NVDBEnv struct {
	// BaseURL is the NVDB API base URL.
	// Env: NVDB_BASE_URL
	BaseURL string `envconfig:"BASE_URL" default:"https://nvdbapiles.atlas.vegvesen.no"`

	// ClientName is sent as the X-Client header.
	// Env: NVDB_CLIENT_NAME (default: vegprofil)
	ClientName string `envconfig:"CLIENT_NAME" default:"vegprofil"`

	// County is the county number requests are filtered on.
	// Env: NVDB_COUNTY (default: 15, Møre og Romsdal)
	County int `envconfig:"COUNTY" default:"15"`

	// SRID is the spatial reference requested for geometries.
	// Env: NVDB_SRID (default: 5973)
	SRID int `envconfig:"SRID" default:"5973"`

	// RoadRef is the road system reference filter.
	// Env: NVDB_ROAD_REF (default: F, county roads)
	RoadRef string `envconfig:"ROAD_REF" default:"F"`

	// PageSize is the page size for paginated requests.
	// Env: NVDB_PAGE_SIZE (default: 1000)
	PageSize int `envconfig:"PAGE_SIZE" default:"1000"`

	// Timeout is the per-request timeout in seconds.
	// Env: NVDB_TIMEOUT (default: 30)
	Timeout float64 `envconfig:"TIMEOUT" default:"30"`

	// MaxRetries is the maximum retry count for transient failures.
	// Env: NVDB_MAX_RETRIES (default: 3)
	MaxRetries int `envconfig:"MAX_RETRIES" default:"3"`

	// InitialDelay is the first retry delay in seconds.
	// Env: NVDB_INITIAL_DELAY (default: 2.0)
	InitialDelay float64 `envconfig:"INITIAL_DELAY" default:"2.0"`

	// BackoffFactor is the retry backoff multiplier.
	// Env: NVDB_BACKOFF_FACTOR (default: 2.0)
	BackoffFactor float64 `envconfig:"BACKOFF_FACTOR" default:"2.0"`
}

// OverlapEnv holds environment configuration for overlap predicates.
// Valid values are "strict" and "inclusive".
type OverlapEnv struct {
	// Env: OVERLAP_WEIGHT (default: inclusive)
	Weight string `envconfig:"WEIGHT" default:"inclusive"`

	// Env: OVERLAP_BRIDGE (default: strict)
	Bridge string `envconfig:"BRIDGE" default:"strict"`

	// Env: OVERLAP_HEIGHT (default: inclusive)
	Height string `envconfig:"HEIGHT" default:"inclusive"`

	// Env: OVERLAP_CLASSIFY (default: strict)
	Classify string `envconfig:"CLASSIFY" default:"strict"`
}

// VehicleEnv holds environment configuration for the default vehicle profile.
type VehicleEnv struct {
	// Env: VEHICLE_NAME (default: NORMALTRANSPORT)
	Name string `envconfig:"NAME" default:"NORMALTRANSPORT"`

	// Env: VEHICLE_TONNAGE (default: 50)
	Tonnage float64 `envconfig:"TONNAGE" default:"50"`

	// Env: VEHICLE_BRIDGE_TONNAGE (default: 60)
	BridgeTonnage float64 `envconfig:"BRIDGE_TONNAGE" default:"60"`

	// Env: VEHICLE_MAX_LENGTH (default: 19.5)
	MaxLength float64 `envconfig:"MAX_LENGTH" default:"19.5"`

	// Env: VEHICLE_MIN_HEIGHT (default: 4.5)
	MinHeight float64 `envconfig:"MIN_HEIGHT" default:"4.5"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("process environment: %w", err)
	}
	return cfg, nil
}

// Normalize fills in derived defaults that envconfig cannot express.
func (e EnvConfig) Normalize() EnvConfig {
	if e.DataDir == "" {
		e.DataDir = DefaultDataDir
	}
	if e.DBURL == "" {
		e.DBURL = defaultDBURL(e.DataDir)
	}
	if e.ReportDir == "" {
		e.ReportDir = filepath.Join(e.DataDir, DefaultReportSubdir)
	}
	return e
}

// ToAppConfig converts the environment configuration into an AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	format := LogFormatPretty
	if strings.EqualFold(e.LogFormat, string(LogFormatJSON)) {
		format = LogFormatJSON
	}

	nvdb := NVDBConfig{
		baseURL:      strings.TrimRight(e.NVDB.BaseURL, "/"),
		clientName:   e.NVDB.ClientName,
		county:       e.NVDB.County,
		srid:         e.NVDB.SRID,
		roadRef:      e.NVDB.RoadRef,
		pageSize:     e.NVDB.PageSize,
		timeout:      time.Duration(e.NVDB.Timeout * float64(time.Second)),
		maxRetries:   e.NVDB.MaxRetries,
		initialDelay: time.Duration(e.NVDB.InitialDelay * float64(time.Second)),
		backoff:      e.NVDB.BackoffFactor,
	}

	defaults := NewOverlapConfig()
	overlap := OverlapConfig{
		weight:   parseOverlapMode(e.Overlap.Weight, defaults.weight),
		bridge:   parseOverlapMode(e.Overlap.Bridge, defaults.bridge),
		height:   parseOverlapMode(e.Overlap.Height, defaults.height),
		classify: parseOverlapMode(e.Overlap.Classify, defaults.classify),
	}

	vehicle := VehicleConfig{
		Name:          e.Vehicle.Name,
		Tonnage:       e.Vehicle.Tonnage,
		BridgeTonnage: e.Vehicle.BridgeTonnage,
		MaxLength:     e.Vehicle.MaxLength,
		MinHeight:     e.Vehicle.MinHeight,
	}

	return AppConfig{
		dataDir:      e.DataDir,
		dbURL:        e.DBURL,
		reportDir:    e.ReportDir,
		logLevel:     e.LogLevel,
		logFormat:    format,
		nvdb:         nvdb,
		overlap:      overlap,
		vehicle:      vehicle,
		parcelLength: e.ParcelLength,
	}
}
