package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	customerdomain "github.com/smallbiznis/plantdesk/internal/customer/domain"
	ledgerdomain "github.com/smallbiznis/plantdesk/internal/ledger/domain"
	orderdomain "github.com/smallbiznis/plantdesk/internal/order/domain"
	productiondomain "github.com/smallbiznis/plantdesk/internal/production/domain"
	"github.com/smallbiznis/plantdesk/pkg/money"
	"github.com/smallbiznis/plantdesk/pkg/tabular"
)

// Tabular is implemented by every report so it can be exported.
type Tabular interface {
	Table() tabular.Table
}

type DirectoryRow struct {
	CustomerID snowflake.ID    `json:"customer_id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone,omitempty"`
	TaxNumber  string          `json:"tax_number,omitempty"`
	Active     bool            `json:"active"`
	Balance    decimal.Decimal `json:"balance"`
}

type CustomerDirectory struct {
	Activity       customerdomain.Activity `json:"activity,omitempty"`
	Since          time.Time               `json:"since"`
	Rows           []DirectoryRow          `json:"rows"`
	CurrencySuffix string                  `json:"-"`
}

func (r CustomerDirectory) Table() tabular.Table {
	rows := make([][]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, []any{
			row.CustomerID.String(),
			row.Name,
			row.Phone,
			row.TaxNumber,
			activityLabel(row.Active),
			money.Format(row.Balance, r.CurrencySuffix),
		})
	}
	return tabular.Table{
		Title:   "Cari Listesi",
		Columns: []string{"No", "Cari", "Telefon", "Vergi No", "Durum", "Bakiye"},
		Rows:    rows,
	}
}

type BalanceReport struct {
	Rows           []ledgerdomain.Balance `json:"rows"`
	TotalDebit     decimal.Decimal        `json:"total_debit"`
	TotalCredit    decimal.Decimal        `json:"total_credit"`
	TotalBalance   decimal.Decimal        `json:"total_balance"`
	CurrencySuffix string                 `json:"-"`
}

func (r BalanceReport) Table() tabular.Table {
	rows := make([][]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, []any{
			row.CustomerName,
			money.Format(row.Debit, r.CurrencySuffix),
			money.Format(row.Credit, r.CurrencySuffix),
			money.Format(row.Balance, r.CurrencySuffix),
		})
	}
	return tabular.Table{
		Title:   "Bakiye Raporu",
		Columns: []string{"Cari", "Borc", "Alacak", "Bakiye"},
		Rows:    rows,
	}
}

type CustomerStatement struct {
	Customer       customerdomain.Customer    `json:"customer"`
	Entries        []ledgerdomain.LedgerEntry `json:"entries"`
	Balance        ledgerdomain.Balance       `json:"balance"`
	CurrencySuffix string                     `json:"-"`
}

func (r CustomerStatement) Table() tabular.Table {
	rows := make([][]any, 0, len(r.Entries))
	for _, entry := range r.Entries {
		rows = append(rows, []any{
			entry.OccurredAt,
			string(entry.Kind),
			money.Format(entry.Amount, r.CurrencySuffix),
			entry.Note,
		})
	}
	return tabular.Table{
		Title:   "Cari Ekstre - " + r.Customer.Name + " (Bakiye " + money.Format(r.Balance.Balance, r.CurrencySuffix) + ")",
		Columns: []string{"Tarih", "Tur", "Tutar", "Aciklama"},
		Rows:    rows,
	}
}

type ProductionReport struct {
	Rows []productiondomain.RecipeTotals `json:"rows"`
}

func (r ProductionReport) Table() tabular.Table {
	rows := make([][]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, []any{row.RecipeName, row.Planned, row.Produced})
	}
	return tabular.Table{
		Title:   "Uretim Raporu",
		Columns: []string{"Recete", "Planlanan", "Uretilen"},
		Rows:    rows,
	}
}

type OrderBoard struct {
	Rows []orderdomain.OrderView `json:"rows"`
}

func (r OrderBoard) Table() tabular.Table {
	rows := make([][]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, []any{
			row.ID.String(),
			row.OrderedAt,
			row.Name,
			row.CustomerName,
			row.RecipeName,
			row.ServiceTypeName,
			row.Quantity,
			string(row.Status),
		})
	}
	return tabular.Table{
		Title:   "Siparis Listesi",
		Columns: []string{"Siparis No", "Tarih", "Siparis", "Cari", "Recete", "Hizmet", "Miktar", "Durum"},
		Rows:    rows,
	}
}

func activityLabel(active bool) string {
	if active {
		return "Aktif"
	}
	return "Pasif"
}
