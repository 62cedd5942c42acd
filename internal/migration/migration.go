package migration

import (
	"errors"

	customerdomain "github.com/smallbiznis/gstbooks/internal/customer/domain"
	itemdomain "github.com/smallbiznis/gstbooks/internal/item/domain"
	purchasedomain "github.com/smallbiznis/gstbooks/internal/purchase/domain"
	saledomain "github.com/smallbiznis/gstbooks/internal/sale/domain"
	taxpaiddomain "github.com/smallbiznis/gstbooks/internal/taxpaid/domain"
	"gorm.io/gorm"
)

// RunMigrations creates or upgrades every table on startup so the
// application is usable out of the box for local and self-hosted
// installs, whichever database dialect is configured.
func RunMigrations(db *gorm.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	return db.AutoMigrate(
		&customerdomain.Customer{},
		&itemdomain.Item{},
		&saledomain.Sale{},
		&saledomain.SaleItem{},
		&purchasedomain.Purchase{},
		&taxpaiddomain.TaxPayment{},
	)
}
