package fx

import (
	"context"
	"database/sql"

	"dota-draft-advisor/internal/api"
	"dota-draft-advisor/internal/config"
	"dota-draft-advisor/internal/database"
	"dota-draft-advisor/internal/db"
	"dota-draft-advisor/internal/heuristics"
	"dota-draft-advisor/internal/logger"
	"dota-draft-advisor/internal/metrics"
	"dota-draft-advisor/internal/repository"
	"dota-draft-advisor/internal/server"
	"dota-draft-advisor/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideHeuristics(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (*heuristics.Store, error) {
	store, err := heuristics.NewStore(cfg.HeuristicsPath, logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return store.Watch(ctx)
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return store, nil
}

func ProvideHeroService(client *api.OpenDotaClient, repo *repository.HeroRepository, cfg *config.Config, logger zerolog.Logger) *service.HeroService {
	return service.NewHeroService(client, repo, cfg.HeroSyncTTL, logger)
}

func ProvideMatchupService(client *api.OpenDotaClient, repo *repository.MatchupRepository, cfg *config.Config, logger zerolog.Logger) *service.MatchupService {
	return service.NewMatchupService(client, repo, cfg.MatchupTTL, logger)
}

func ProvideDraftService(heroes *service.HeroService, matchups *service.MatchupService, table *heuristics.Store, logger zerolog.Logger) *service.DraftService {
	return service.NewDraftService(heroes, matchups, table, logger)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	fx.Provide(ProvideHeuristics),
	fx.Invoke(metrics.Init),
	// repos
	fx.Provide(repository.NewHeroRepository),
	fx.Provide(repository.NewMatchupRepository),
	// api client
	fx.Provide(api.NewOpenDotaClient),
	// svc
	fx.Provide(ProvideHeroService),
	fx.Provide(ProvideMatchupService),
	fx.Provide(ProvideDraftService),
	// server
	fx.Provide(server.NewAdvisorServer),
)
