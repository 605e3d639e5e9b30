package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	ListRecipes(ctx context.Context) ([]Recipe, error)
	ListServiceTypes(ctx context.Context) ([]ServiceType, error)
	ListSites(ctx context.Context) ([]Site, error)
	FindRecipe(ctx context.Context, id snowflake.ID) (*Recipe, error)
	FindServiceType(ctx context.Context, id snowflake.ID) (*ServiceType, error)
	FindSite(ctx context.Context, id snowflake.ID) (*Site, error)
}

var (
	ErrRecipeNotFound      = errors.New("recipe_not_found")
	ErrServiceTypeNotFound = errors.New("service_type_not_found")
	ErrSiteNotFound        = errors.New("site_not_found")
)
