package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mrfylke/vegprofil/application/service"
	"github.com/mrfylke/vegprofil/infrastructure/nvdb"
	"github.com/mrfylke/vegprofil/infrastructure/persistence"
	"github.com/mrfylke/vegprofil/internal/config"
	"github.com/mrfylke/vegprofil/internal/database"
	"github.com/mrfylke/vegprofil/internal/log"
)

// runStage wires the shared setup of every pipeline command: config, signal
// handling, logger and migrated database.
func runStage(flags stageFlags, stage func(ctx context.Context, cfg config.AppConfig, db database.Database, logger *log.Logger) error) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cfg)

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return stage(ctx, cfg, db, logger)
}

func fetchCmd() *cobra.Command {
	var flags stageFlags
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download road network and restrictions from NVDB",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(flags, func(ctx context.Context, cfg config.AppConfig, db database.Database, logger *log.Logger) error {
				client := nvdb.NewClient(cfg.NVDB(), logger)
				svc := service.NewIngest(client,
					persistence.NewSegmentStore(db),
					persistence.NewRestrictionStore(db),
					cfg.NVDB(), logger)
				return svc.Run(ctx)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func profileCmd() *cobra.Command {
	var flags stageFlags
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Derive each segment's allowed profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(flags, func(ctx context.Context, cfg config.AppConfig, db database.Database, logger *log.Logger) error {
				svc := service.NewProfile(
					persistence.NewSegmentStore(db),
					persistence.NewRestrictionStore(db),
					persistence.NewProfileStore(db),
					cfg.Overlap(), logger)
				return svc.Run(ctx)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func propagateCmd() *cobra.Command {
	var flags stageFlags
	cmd := &cobra.Command{
		Use:   "propagate",
		Short: "Spread corridor minima along each road",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(flags, func(ctx context.Context, cfg config.AppConfig, db database.Database, logger *log.Logger) error {
				svc := service.NewPropagate(
					persistence.NewSegmentStore(db),
					persistence.NewProfileStore(db),
					persistence.NewCorridorStore(db),
					logger)
				return svc.Run(ctx)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func bottleneckCmd() *cobra.Command {
	var flags stageFlags
	cmd := &cobra.Command{
		Use:   "bottleneck",
		Short: "Find segments failing the vehicle requirements",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(flags, func(ctx context.Context, cfg config.AppConfig, db database.Database, logger *log.Logger) error {
				svc := service.NewBottleneck(
					persistence.NewSegmentStore(db),
					persistence.NewProfileStore(db),
					persistence.NewBottleneckStore(db),
					vehicleOf(cfg), logger)
				return svc.Run(ctx)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func classifyCmd() *cobra.Command {
	var flags stageFlags
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Tag each bottleneck with its dimensioning cause",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(flags, func(ctx context.Context, cfg config.AppConfig, db database.Database, logger *log.Logger) error {
				svc := service.NewClassify(
					persistence.NewRestrictionStore(db),
					persistence.NewBottleneckStore(db),
					vehicleOf(cfg), cfg.Overlap(), logger)
				return svc.Run(ctx)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func reportCmd() *cobra.Command {
	var flags stageFlags
	var format string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write CSV, Markdown, Excel and GeoPackage reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(flags, func(ctx context.Context, cfg config.AppConfig, db database.Database, logger *log.Logger) error {
				if err := cfg.EnsureReportDir(); err != nil {
					return err
				}
				svc := service.NewReport(
					persistence.NewBottleneckStore(db),
					persistence.NewCorridorStore(db),
					persistence.NewRutStore(db),
					vehicleOf(cfg), cfg.ReportDir(), cfg.NVDB().SRID(), logger)
				if err := svc.Run(ctx, format); err != nil {
					return err
				}
				return svc.WriteRuts(ctx)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", service.FormatAll, "Report format: csv, markdown, excel, gpkg or all")
	return cmd
}

func rutsCmd() *cobra.Command {
	var flags stageFlags
	var inputFile string
	cmd := &cobra.Command{
		Use:   "ruts",
		Short: "Aggregate rut depth measurements into parcels",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(flags, func(ctx context.Context, cfg config.AppConfig, db database.Database, logger *log.Logger) error {
				svc := service.NewRuts(persistence.NewRutStore(db), cfg.ParcelLength(), logger)
				return svc.RunFile(ctx, inputFile)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&inputFile, "input", "", "Path to the measurement CSV file")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runCmd() *cobra.Command {
	var flags stageFlags
	var format string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: fetch through report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(flags, func(ctx context.Context, cfg config.AppConfig, db database.Database, logger *log.Logger) error {
				client := nvdb.NewClient(cfg.NVDB(), logger)
				segments := persistence.NewSegmentStore(db)
				restrictions := persistence.NewRestrictionStore(db)
				profiles := persistence.NewProfileStore(db)
				corridors := persistence.NewCorridorStore(db)
				bottlenecks := persistence.NewBottleneckStore(db)
				ruts := persistence.NewRutStore(db)
				vehicle := vehicleOf(cfg)

				if err := service.NewIngest(client, segments, restrictions, cfg.NVDB(), logger).Run(ctx); err != nil {
					return err
				}
				if err := service.NewProfile(segments, restrictions, profiles, cfg.Overlap(), logger).Run(ctx); err != nil {
					return err
				}
				if err := service.NewPropagate(segments, profiles, corridors, logger).Run(ctx); err != nil {
					return err
				}
				if err := service.NewBottleneck(segments, profiles, bottlenecks, vehicle, logger).Run(ctx); err != nil {
					return err
				}
				if err := service.NewClassify(restrictions, bottlenecks, vehicle, cfg.Overlap(), logger).Run(ctx); err != nil {
					return err
				}
				if err := cfg.EnsureReportDir(); err != nil {
					return err
				}
				return service.NewReport(bottlenecks, corridors, ruts, vehicle, cfg.ReportDir(), cfg.NVDB().SRID(), logger).Run(ctx, format)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", service.FormatAll, "Report format: csv, markdown, excel, gpkg or all")
	return cmd
}
