package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	referencedomain "github.com/smallbiznis/plantdesk/internal/reference/domain"
	"github.com/smallbiznis/plantdesk/pkg/repository"
	"gorm.io/gorm"
)

var defaultRecipes = []referencedomain.Recipe{
	{Name: "C16/20", ConcreteClass: "C16/20", RecipeClass: "S3"},
	{Name: "C20/25", ConcreteClass: "C20/25", RecipeClass: "S3"},
	{Name: "C25/30", ConcreteClass: "C25/30", RecipeClass: "S4"},
	{Name: "C30/37", ConcreteClass: "C30/37", RecipeClass: "S4"},
	{Name: "C35/45", ConcreteClass: "C35/45", RecipeClass: "S4"},
}

var defaultServiceTypes = []referencedomain.ServiceType{
	{Name: "Pompali"},
	{Name: "Mikserli"},
	{Name: "Santralden Teslim"},
}

// EnsureReferenceData fills the recipe and service type tables of a fresh
// install. Tables that already hold rows are left untouched. Sites are
// customer specific and never seeded.
func EnsureReferenceData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	now := time.Now().UTC()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureRecipesTx(ctx, tx, node, now); err != nil {
			return err
		}
		return ensureServiceTypesTx(ctx, tx, node, now)
	})
}

func ensureRecipesTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, now time.Time) error {
	store := repository.ProvideStore[referencedomain.Recipe](tx)
	count, err := store.Count(ctx, &referencedomain.Recipe{})
	if err != nil || count > 0 {
		return err
	}

	recipes := make([]*referencedomain.Recipe, 0, len(defaultRecipes))
	for _, item := range defaultRecipes {
		recipe := item
		recipe.ID = node.Generate()
		recipe.CreatedAt = now
		recipes = append(recipes, &recipe)
	}
	return store.BatchCreate(ctx, recipes)
}

func ensureServiceTypesTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, now time.Time) error {
	store := repository.ProvideStore[referencedomain.ServiceType](tx)
	count, err := store.Count(ctx, &referencedomain.ServiceType{})
	if err != nil || count > 0 {
		return err
	}

	serviceTypes := make([]*referencedomain.ServiceType, 0, len(defaultServiceTypes))
	for _, item := range defaultServiceTypes {
		serviceType := item
		serviceType.ID = node.Generate()
		serviceType.CreatedAt = now
		serviceTypes = append(serviceTypes, &serviceType)
	}
	return store.BatchCreate(ctx, serviceTypes)
}
