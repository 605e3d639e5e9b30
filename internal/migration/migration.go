package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	customerdomain "github.com/smallbiznis/plantdesk/internal/customer/domain"
	ledgerdomain "github.com/smallbiznis/plantdesk/internal/ledger/domain"
	orderdomain "github.com/smallbiznis/plantdesk/internal/order/domain"
	productiondomain "github.com/smallbiznis/plantdesk/internal/production/domain"
	referencedomain "github.com/smallbiznis/plantdesk/internal/reference/domain"
	"github.com/smallbiznis/plantdesk/pkg/db"
	"gorm.io/gorm"
)

// Models lists every table owned by plantdesk, parents first.
func Models() []any {
	return []any{
		&customerdomain.Customer{},
		&referencedomain.Recipe{},
		&referencedomain.ServiceType{},
		&referencedomain.Site{},
		&orderdomain.Order{},
		&orderdomain.OrderStatus{},
		&productiondomain.ProductionPlan{},
		&ledgerdomain.LedgerEntry{},
	}
}

// Run creates missing tables. Postgres uses the embedded SQL migrations, the
// other dialects fall back to gorm AutoMigrate. Running it twice is a no-op.
func Run(conn *gorm.DB, dbType string) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}

	if strings.ToLower(strings.TrimSpace(dbType)) != db.TypePostgres {
		return AutoMigrate(conn)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return RunMigrations(sqlDB)
}

// AutoMigrate creates the schema from the gorm models.
func AutoMigrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// RunMigrations applies the embedded SQL migrations to a postgres database.
func RunMigrations(sqlDB *sql.DB) error {
	if sqlDB == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Closing the migrator would close the shared *sql.DB.

	return nil
}
