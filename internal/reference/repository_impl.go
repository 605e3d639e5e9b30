package reference

import (
	"context"
	"database/sql"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/plantdesk/internal/reference/domain"
	"github.com/smallbiznis/plantdesk/pkg/repository"
	"gorm.io/gorm"
)

type referenceRepository struct {
	db           *gorm.DB
	recipes      repository.Repository[domain.Recipe]
	serviceTypes repository.Repository[domain.ServiceType]
	sites        repository.Repository[domain.Site]
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &referenceRepository{
		db:           db,
		recipes:      repository.ProvideStore[domain.Recipe](db),
		serviceTypes: repository.ProvideStore[domain.ServiceType](db),
		sites:        repository.ProvideStore[domain.Site](db),
	}
}

func (r *referenceRepository) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	type row struct {
		ID            int64          `gorm:"column:id"`
		Name          string         `gorm:"column:name"`
		ConcreteClass sql.NullString `gorm:"column:concrete_class"`
		RecipeClass   sql.NullString `gorm:"column:recipe_class"`
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, name, concrete_class, recipe_class FROM recipes ORDER BY name, id`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	recipes := make([]domain.Recipe, 0, len(rows))
	for _, item := range rows {
		recipes = append(recipes, domain.Recipe{
			ID:            snowflake.ID(item.ID),
			Name:          item.Name,
			ConcreteClass: item.ConcreteClass.String,
			RecipeClass:   item.RecipeClass.String,
		})
	}

	return recipes, nil
}

func (r *referenceRepository) ListServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	var serviceTypes []domain.ServiceType
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, name FROM service_types ORDER BY name, id`).
		Scan(&serviceTypes).Error
	if err != nil {
		return nil, err
	}

	return serviceTypes, nil
}

func (r *referenceRepository) ListSites(ctx context.Context) ([]domain.Site, error) {
	type row struct {
		ID           int64          `gorm:"column:id"`
		Name         string         `gorm:"column:name"`
		CustomerName sql.NullString `gorm:"column:customer_name"`
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, name, customer_name FROM sites ORDER BY name, id`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sites := make([]domain.Site, 0, len(rows))
	for _, item := range rows {
		sites = append(sites, domain.Site{
			ID:           snowflake.ID(item.ID),
			Name:         item.Name,
			CustomerName: item.CustomerName.String,
		})
	}

	return sites, nil
}

func (r *referenceRepository) FindRecipe(ctx context.Context, id snowflake.ID) (*domain.Recipe, error) {
	if id == 0 {
		return nil, domain.ErrRecipeNotFound
	}
	recipe, err := r.recipes.FindOne(ctx, &domain.Recipe{ID: id})
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrRecipeNotFound
	}
	return recipe, nil
}

func (r *referenceRepository) FindServiceType(ctx context.Context, id snowflake.ID) (*domain.ServiceType, error) {
	if id == 0 {
		return nil, domain.ErrServiceTypeNotFound
	}
	serviceType, err := r.serviceTypes.FindOne(ctx, &domain.ServiceType{ID: id})
	if err != nil {
		return nil, err
	}
	if serviceType == nil {
		return nil, domain.ErrServiceTypeNotFound
	}
	return serviceType, nil
}

func (r *referenceRepository) FindSite(ctx context.Context, id snowflake.ID) (*domain.Site, error) {
	if id == 0 {
		return nil, domain.ErrSiteNotFound
	}
	site, err := r.sites.FindOne(ctx, &domain.Site{ID: id})
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrSiteNotFound
	}
	return site, nil
}
