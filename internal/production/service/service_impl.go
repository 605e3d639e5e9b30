package service

import (
	"context"

	"github.com/smallbiznis/plantdesk/internal/production/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("production.service"),
		repo: p.Repo,
	}
}

func (s *Service) ListPlans(ctx context.Context) ([]domain.ProductionPlan, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) RecipeSummary(ctx context.Context) ([]domain.RecipeTotals, error) {
	plans, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return domain.SummarizeByRecipe(plans), nil
}
