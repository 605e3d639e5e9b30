package domain

import (
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// ProductionPlan is the plant-side projection of an order. Its status mirrors
// the order status and is only written by status transitions.
type ProductionPlan struct {
	ID               snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrderID          snowflake.ID    `gorm:"not null;uniqueIndex" json:"order_id"`
	RecipeName       string          `gorm:"type:text;not null" json:"recipe_name"`
	PlannedQuantity  decimal.Decimal `gorm:"type:numeric(14,3);not null" json:"planned_quantity"`
	ProducedQuantity decimal.Decimal `gorm:"type:numeric(14,3);not null" json:"produced_quantity"`
	Status           string          `gorm:"type:text;not null" json:"status"`
	PlannedAt        time.Time       `gorm:"not null" json:"planned_at"`
}

func (ProductionPlan) TableName() string { return "production_plans" }

// RecipeTotals is the planned versus produced volume of one recipe.
type RecipeTotals struct {
	RecipeName string          `json:"recipe_name"`
	Planned    decimal.Decimal `json:"planned"`
	Produced   decimal.Decimal `json:"produced"`
}

// SummarizeByRecipe groups plans by recipe name and sums their quantities,
// sorted by recipe name.
func SummarizeByRecipe(plans []ProductionPlan) []RecipeTotals {
	index := make(map[string]int)
	totals := make([]RecipeTotals, 0)
	for _, plan := range plans {
		i, ok := index[plan.RecipeName]
		if !ok {
			i = len(totals)
			index[plan.RecipeName] = i
			totals = append(totals, RecipeTotals{
				RecipeName: plan.RecipeName,
				Planned:    decimal.Zero,
				Produced:   decimal.Zero,
			})
		}
		totals[i].Planned = totals[i].Planned.Add(plan.PlannedQuantity)
		totals[i].Produced = totals[i].Produced.Add(plan.ProducedQuantity)
	}

	sort.Slice(totals, func(a, b int) bool {
		return totals[a].RecipeName < totals[b].RecipeName
	})
	return totals
}
