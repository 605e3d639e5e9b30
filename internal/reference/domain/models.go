package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Recipe is a named concrete formulation.
type Recipe struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	Name          string       `json:"name" gorm:"type:text;not null"`
	ConcreteClass string       `json:"concrete_class,omitempty" gorm:"type:text"`
	RecipeClass   string       `json:"recipe_class,omitempty" gorm:"type:text"`
	CreatedAt     time.Time    `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Recipe) TableName() string { return "recipes" }

type ServiceType struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	CreatedAt time.Time    `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (ServiceType) TableName() string { return "service_types" }

// Site is a delivery location, labelled with the customer it belongs to.
type Site struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	Name         string       `json:"name" gorm:"type:text;not null"`
	CustomerName string       `json:"customer_name,omitempty" gorm:"type:text"`
	CreatedAt    time.Time    `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Site) TableName() string { return "sites" }
