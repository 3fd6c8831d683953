// Package main is the entry point for the vegprofil CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrfylke/vegprofil/domain/roadnet"
	"github.com/mrfylke/vegprofil/infrastructure/persistence"
	"github.com/mrfylke/vegprofil/internal/config"
	"github.com/mrfylke/vegprofil/internal/database"
	"github.com/mrfylke/vegprofil/internal/log"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vegprofil",
		Short: "Allowed-profile analysis of the county road network",
		Long: `Vegprofil derives the allowed vehicle profile of every county road
segment from NVDB restriction data, finds the bottlenecks for a vehicle
class and reports them.

The pipeline runs in stages, each reading what the previous one stored:

  fetch       download road network and restrictions from NVDB
  profile     derive each segment's allowed profile
  propagate   spread corridor minima along each road
  bottleneck  find segments failing the vehicle requirements
  classify    tag each bottleneck with its dimensioning cause
  report      write CSV, Markdown, Excel and GeoPackage reports
  ruts        aggregate rut depth measurements into parcels
  run         all stages except ruts, in order`,
	}

	cmd.AddCommand(fetchCmd())
	cmd.AddCommand(profileCmd())
	cmd.AddCommand(propagateCmd())
	cmd.AddCommand(bottleneckCmd())
	cmd.AddCommand(classifyCmd())
	cmd.AddCommand(reportCmd())
	cmd.AddCommand(rutsCmd())
	cmd.AddCommand(runCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// stageFlags are the flags shared by every pipeline stage.
type stageFlags struct {
	envFile      string
	county       int
	vehicleName  string
	profilesFile string
}

func (f *stageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().IntVar(&f.county, "county", 0, "County number to analyse (default: 15)")
	cmd.Flags().StringVar(&f.vehicleName, "profile", "", "Vehicle profile name from the profiles file")
	cmd.Flags().StringVar(&f.profilesFile, "profiles-file", "", "Path to a YAML vehicle profiles file")
}

// loadConfig loads configuration from .env file and environment variables,
// then applies the command line overrides.
func loadConfig(f stageFlags) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(f.envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}

	if f.county > 0 {
		cfg = cfg.WithNVDB(cfg.NVDB().WithCounty(f.county))
	}

	if f.profilesFile != "" {
		profiles, err := config.LoadVehicleProfiles(f.profilesFile)
		if err != nil {
			return config.AppConfig{}, err
		}
		selected, err := config.SelectVehicleProfile(profiles, f.vehicleName)
		if err != nil {
			return config.AppConfig{}, err
		}
		cfg = cfg.WithVehicle(selected)
	}

	return cfg, nil
}

// openDatabase opens the work database and applies migrations.
func openDatabase(ctx context.Context, cfg config.AppConfig) (database.Database, error) {
	if err := cfg.EnsureDataDir(); err != nil {
		return database.Database{}, err
	}
	db, err := database.NewDatabase(ctx, cfg.DBURL())
	if err != nil {
		return database.Database{}, err
	}
	if err := persistence.AutoMigrate(db); err != nil {
		_ = db.Close()
		return database.Database{}, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

func newLogger(cfg config.AppConfig) *log.Logger {
	logger := log.NewLogger(cfg)
	logger.SetDefault()
	return logger
}

func vehicleOf(cfg config.AppConfig) roadnet.VehicleProfile {
	v := cfg.Vehicle()
	return roadnet.NewVehicleProfile(v.Name, v.Tonnage, v.BridgeTonnage, v.MaxLength, v.MinHeight)
}
