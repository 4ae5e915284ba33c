package server

import (
	"context"
	"errors"
	"net/http"

	"dota-draft-advisor/internal/domain"
	"dota-draft-advisor/internal/draft/suggest"
	"dota-draft-advisor/internal/service"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"google.golang.org/protobuf/types/known/emptypb"
)

const DraftAdvisorName = "dotadraft.v1.DraftAdvisor"

const (
	SuggestProcedure         = "/" + DraftAdvisorName + "/Suggest"
	SuggestScenarioProcedure = "/" + DraftAdvisorName + "/SuggestScenario"
	AnalyzeHeroProcedure     = "/" + DraftAdvisorName + "/AnalyzeHero"
	AssignLanesProcedure     = "/" + DraftAdvisorName + "/AssignLanes"
	ListHeroesProcedure      = "/" + DraftAdvisorName + "/ListHeroes"
	SyncHeroesProcedure      = "/" + DraftAdvisorName + "/SyncHeroes"
)

type AdvisorServer struct {
	draftSvc *service.DraftService
	heroSvc  *service.HeroService
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewAdvisorServer(draftSvc *service.DraftService, heroSvc *service.HeroService, logger zerolog.Logger) *AdvisorServer {
	return &AdvisorServer{
		draftSvc: draftSvc,
		heroSvc:  heroSvc,
		validate: validator.New(),
		logger:   logger,
	}
}

// Handler returns the service path prefix and a handler serving every procedure.
func (s *AdvisorServer) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(SuggestProcedure, connect.NewUnaryHandler(SuggestProcedure, s.Suggest, opts...))
	mux.Handle(SuggestScenarioProcedure, connect.NewUnaryHandler(SuggestScenarioProcedure, s.SuggestScenario, opts...))
	mux.Handle(AnalyzeHeroProcedure, connect.NewUnaryHandler(AnalyzeHeroProcedure, s.AnalyzeHero, opts...))
	mux.Handle(AssignLanesProcedure, connect.NewUnaryHandler(AssignLanesProcedure, s.AssignLanes, opts...))
	mux.Handle(ListHeroesProcedure, connect.NewUnaryHandler(ListHeroesProcedure, s.ListHeroes, opts...))
	mux.Handle(SyncHeroesProcedure, connect.NewUnaryHandler(SyncHeroesProcedure, s.SyncHeroes, opts...))
	return "/" + DraftAdvisorName + "/", mux
}

func (s *AdvisorServer) Suggest(ctx context.Context, req *connect.Request[SuggestRequest]) (*connect.Response[SuggestResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	state, err := domain.DraftFromTeams(req.Msg.YourTeam, req.Msg.EnemyTeam)
	if err != nil {
		return nil, toConnectError(err)
	}

	res, err := s.draftSvc.Suggest(ctx, state, req.Msg.Context.toDomain(), req.Msg.Roles, req.Msg.Limit)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(toSuggestResponse(res)), nil
}

func (s *AdvisorServer) SuggestScenario(ctx context.Context, req *connect.Request[SuggestScenarioRequest]) (*connect.Response[SuggestResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	state, err := domain.DraftFromTeams(req.Msg.YourTeam, req.Msg.EnemyTeam)
	if err != nil {
		return nil, toConnectError(err)
	}

	res, err := s.draftSvc.SuggestScenario(ctx, state, suggest.Scenario(req.Msg.Scenario), req.Msg.PreferredLanes, req.Msg.Limit, req.Msg.filters())
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(toSuggestResponse(res)), nil
}

func (s *AdvisorServer) AnalyzeHero(ctx context.Context, req *connect.Request[AnalyzeHeroRequest]) (*connect.Response[AnalyzeHeroResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	state, err := domain.DraftFromTeams(req.Msg.YourTeam, req.Msg.EnemyTeam)
	if err != nil {
		return nil, toConnectError(err)
	}

	sg, err := s.draftSvc.AnalyzeHero(ctx, state, req.Msg.Context.toDomain(), req.Msg.HeroID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&AnalyzeHeroResponse{Suggestion: toSuggestion(*sg)}), nil
}

func (s *AdvisorServer) AssignLanes(ctx context.Context, req *connect.Request[AssignLanesRequest]) (*connect.Response[AssignLanesResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	assignments, err := s.draftSvc.AssignLanes(ctx, req.Msg.HeroIDs)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&AssignLanesResponse{Assignments: toLanes(assignments)}), nil
}

func (s *AdvisorServer) ListHeroes(ctx context.Context, _ *connect.Request[emptypb.Empty]) (*connect.Response[ListHeroesResponse], error) {
	reg, err := s.heroSvc.Registry(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}

	heroes := reg.Heroes()
	resp := &ListHeroesResponse{Heroes: make([]Hero, len(heroes))}
	for i, h := range heroes {
		resp.Heroes[i] = toHero(h)
		resp.Heroes[i].Stats = toHeroStats(reg, h.ID)
	}
	return connect.NewResponse(resp), nil
}

func (s *AdvisorServer) SyncHeroes(ctx context.Context, _ *connect.Request[SyncHeroesRequest]) (*connect.Response[SyncHeroesResponse], error) {
	n, err := s.heroSvc.Sync(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("manual hero sync failed")
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}
	return connect.NewResponse(&SyncHeroesResponse{Synced: n}), nil
}

func toConnectError(err error) *connect.Error {
	switch {
	case errors.Is(err, domain.ErrHeroAlreadyPicked),
		errors.Is(err, domain.ErrTeamFull),
		errors.Is(err, domain.ErrSlotOccupied),
		errors.Is(err, domain.ErrInvalidSlot),
		errors.Is(err, domain.ErrInvalidHero),
		errors.Is(err, domain.ErrDraftComplete),
		errors.Is(err, service.ErrUnknownHero),
		errors.Is(err, service.ErrUnknownScenario):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, service.ErrNoHeroData):
		return connect.NewError(connect.CodeUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}
