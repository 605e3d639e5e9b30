package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Order struct {
	ID              snowflake.ID  `gorm:"primaryKey" json:"id"`
	Name            string        `gorm:"type:text;not null" json:"name"`
	OrderedAt       time.Time     `gorm:"not null;index" json:"ordered_at"`
	CustomerID      snowflake.ID  `gorm:"not null;index" json:"customer_id"`
	CustomerName    string        `gorm:"type:text;not null" json:"customer_name"`
	SiteID          *snowflake.ID `json:"site_id,omitempty"`
	SiteName        string        `gorm:"type:text" json:"site_name,omitempty"`
	RecipeID        snowflake.ID  `gorm:"not null" json:"recipe_id"`
	RecipeName      string        `gorm:"type:text;not null" json:"recipe_name"`
	ServiceTypeID   *snowflake.ID `json:"service_type_id,omitempty"`
	ServiceTypeName string        `gorm:"type:text" json:"service_type_name,omitempty"`
	Pump            string        `gorm:"type:text" json:"pump,omitempty"`
	PumpOperator    string        `gorm:"type:text" json:"pump_operator,omitempty"`
	Quantity        string        `gorm:"type:text;not null" json:"quantity"`
	TotalQuantity   string        `gorm:"type:text" json:"total_quantity,omitempty"`
	Completed       bool          `gorm:"not null;default:false" json:"completed"`
	CreatedAt       time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// OrderStatus holds the current status of exactly one order.
type OrderStatus struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OrderID   snowflake.ID `gorm:"not null;uniqueIndex" json:"order_id"`
	Status    Status       `gorm:"type:text;not null" json:"status"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

func (OrderStatus) TableName() string { return "order_statuses" }

// OrderView is an order joined with its effective status.
type OrderView struct {
	Order
	Status Status `gorm:"column:status" json:"status"`
}
