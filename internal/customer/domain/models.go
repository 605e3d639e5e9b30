package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Customer struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null;index" json:"name"`
	TaxNumber string       `gorm:"column:tax_number;type:text" json:"tax_number,omitempty"`
	TaxOffice string       `gorm:"column:tax_office;type:text" json:"tax_office,omitempty"`
	Phone     string       `gorm:"type:text" json:"phone,omitempty"`
	Fax       string       `gorm:"type:text" json:"fax,omitempty"`
	Address   string       `gorm:"type:text" json:"address,omitempty"`
	City      string       `gorm:"type:text" json:"city,omitempty"`
	District  string       `gorm:"type:text" json:"district,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Activity selects customers by recent ordering.
type Activity string

const (
	ActivityAll      Activity = ""
	ActivityActive   Activity = "active"
	ActivityInactive Activity = "inactive"
)

// ParseActivity accepts "", "all", "active" and "inactive".
func ParseActivity(value string) (Activity, error) {
	switch Activity(value) {
	case ActivityAll, "all":
		return ActivityAll, nil
	case ActivityActive, ActivityInactive:
		return Activity(value), nil
	default:
		return "", ErrInvalidActivity
	}
}

// ListedCustomer is a customer row annotated with its activity at query time.
type ListedCustomer struct {
	Customer
	Active bool `json:"active"`
}

// CustomerActivity reports whether a customer ordered inside the activity window.
type CustomerActivity struct {
	CustomerID  snowflake.ID `json:"customer_id"`
	Active      bool         `json:"active"`
	LastOrderAt *time.Time   `json:"last_order_at,omitempty"`
	Since       time.Time    `json:"since"`
	WindowDays  int          `json:"window_days"`
}
