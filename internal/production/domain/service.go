package domain

import "context"

type Service interface {
	ListPlans(ctx context.Context) ([]ProductionPlan, error)
	RecipeSummary(ctx context.Context) ([]RecipeTotals, error)
}
