package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/pad2skills/backend/internal/adapters/database"
	"github.com/pad2skills/backend/internal/adapters/datafile"
	"github.com/pad2skills/backend/internal/application/services"
	"github.com/pad2skills/backend/internal/domain/entities"
	"github.com/pad2skills/backend/internal/domain/repositories"
	"github.com/pad2skills/backend/internal/infrastructure/clients/postgres"
	"github.com/pad2skills/backend/internal/infrastructure/observability"
	"github.com/pad2skills/backend/pkg/config"
	"github.com/pad2skills/backend/pkg/utils"
)

// Writes the detail-table CSV exports to disk without a running server,
// applying the same filters the dashboard would.
func main() {
	var (
		table    = flag.String("table", "", "table to export: occupations, skills, training (empty exports all)")
		project  = flag.String("project", entities.AllProjects, "project filter")
		industry = flag.String("industry", entities.AllIndustries, "industry filter")
		topFive  = flag.Bool("top5", false, "restrict skills to top-five rows")
		outDir   = flag.String("out", ".", "output directory")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName+"-export", "development")

	var factRepo repositories.FactRepository
	switch cfg.Data.Source {
	case "postgres":
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
		}
		defer pgClient.Close()
		factRepo = database.NewFactAdapter(pgClient)
	case "csv":
		factRepo = datafile.NewCSVFactAdapter(cfg.Data.Dir)
	default:
		log.Fatal().Str("source", cfg.Data.Source).Msg("Unknown DATA_SOURCE, expected csv or postgres")
	}

	dashboard := services.NewDashboardService(
		factRepo,
		services.NewFilterService(),
		services.NewAggregationService(),
		cfg.Data.PageSize,
		cfg.Data.SampleSize,
	)

	sel := entities.FilterSelection{
		Project:     utils.NormalizeFilterValue(*project),
		Industry:    utils.NormalizeFilterValue(*industry),
		TopFiveOnly: *topFive,
	}

	tables := []entities.TableID{entities.TableOccupations, entities.TableSkills, entities.TableTraining}
	if *table != "" {
		id := entities.TableID(*table)
		if !id.IsValid() {
			log.Fatal().Str("table", *table).Msg("Unknown table")
		}
		tables = []entities.TableID{id}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", *outDir).Msg("Failed to create output directory")
	}

	for _, id := range tables {
		data, fileName, err := dashboard.ExportCSV(ctx, id, sel, entities.SkillTableFilters{})
		if err != nil {
			log.Fatal().Err(err).Str("table", string(id)).Msg("Export failed")
		}

		path := filepath.Join(*outDir, fileName)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("Failed to write export")
		}
		log.Info().Str("path", path).Int("bytes", len(data)).Msg("Export written")
	}
}
