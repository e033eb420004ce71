// Package seed installs the baseline data a fresh store needs: privileges,
// roles, the default admin account, measurement units, an initial exchange
// rate and a small demo catalog.
package seed

import (
	"log"
	"strings"

	"go-grocery-pos/internal/model"
	"go-grocery-pos/internal/pricing"
	"go-grocery-pos/internal/repository"

	"gorm.io/gorm"
)

// DefaultRate is installed when the rate ledger is empty so pricing always
// has a current rate to work with.
const DefaultRate = 680.0

func Run(db *gorm.DB) error {
	if err := accessControl(db); err != nil {
		return err
	}
	if err := units(db); err != nil {
		return err
	}
	if err := exchangeRate(db); err != nil {
		return err
	}
	return demoCatalog(db)
}

func accessControl(db *gorm.DB) error {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	userRepo := repository.NewUserRepo(db)

	if err := privilegeRepo.SeedDefaults(); err != nil {
		return err
	}
	if err := roleRepo.SeedDefaults(); err != nil {
		return err
	}

	allPrivileges, err := privilegeRepo.FindAll()
	if err != nil {
		return err
	}

	// OWNER gets everything.
	if ownerRole, err := roleRepo.FindByCode(model.RoleOwner); err == nil && len(ownerRole.Privileges) == 0 {
		db.Model(&ownerRole).Association("Privileges").Replace(allPrivileges)
	}

	// MANAGER runs the shop but not the accounts.
	if managerRole, err := roleRepo.FindByCode(model.RoleManager); err == nil && len(managerRole.Privileges) == 0 {
		managerPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			if strings.HasPrefix(p.Code, "user:") {
				continue
			}
			managerPrivileges = append(managerPrivileges, p)
		}
		db.Model(&managerRole).Association("Privileges").Replace(managerPrivileges)
	}

	// CASHIER only sells and looks things up.
	if cashierRole, err := roleRepo.FindByCode(model.RoleCashier); err == nil && len(cashierRole.Privileges) == 0 {
		cashierPrivileges, err := privilegeRepo.FindByCodes(model.CashierPrivilegeCodes)
		if err != nil {
			return err
		}
		db.Model(&cashierRole).Association("Privileges").Replace(cashierPrivileges)
	}

	// Default admin account
	if _, err := userRepo.FindByEmail("admin@example.com"); err != nil {
		ownerRole, err := roleRepo.FindByCode(model.RoleOwner)
		if err != nil {
			return err
		}

		admin := &model.User{
			Email:      "admin@example.com",
			FullName:   "Shop Owner",
			RoleID:     &ownerRole.ID,
			IsActive:   true,
			Privileges: ownerRole.Privileges,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			return err
		}
		if err := userRepo.Create(admin); err != nil {
			return err
		}
		log.Println("Admin user created: admin@example.com / admin123 (OWNER)")
	}

	return nil
}

func units(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Unit{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	canQty := 24
	canName := "can"
	packQty := 6
	bottleName := "bottle"

	defaults := []model.Unit{
		{Name: "piece"},
		{Name: "can"},
		{Name: "bottle"},
		{Name: "kg"},
		{Name: "carton", HasCustomQuantity: true, BaseQuantity: &canQty, BaseUnit: &canName},
		{Name: "pack", HasCustomQuantity: true, BaseQuantity: &packQty, BaseUnit: &bottleName},
	}
	for i := range defaults {
		defaults[i].CreatedBy = "system"
		defaults[i].UpdatedBy = "system"
		if err := db.Create(&defaults[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func exchangeRate(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.ExchangeRate{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rate := &model.ExchangeRate{Rate: DefaultRate}
	rate.CreatedBy = "system"
	rate.UpdatedBy = "system"
	return db.Create(rate).Error
}

func demoCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var rate model.ExchangeRate
	if err := db.Order("created_at DESC").First(&rate).Error; err != nil {
		return err
	}

	shortcut := func(n int) *int { return &n }
	demo := []model.Product{
		{
			Name: "Tomato Paste 400g", Unit: "can", Category: "Canned",
			CurrentQuantity: 48, MinimumQuantity: 12,
			PurchasePrice: 2, PurchaseCurrency: model.CurrencySAR,
			ProfitType: model.ProfitPercentage, ProfitValue: 20,
			ShortcutNumber: shortcut(1),
		},
		{
			Name: "Mineral Water 1.5L", Unit: "bottle", Category: "Drinks",
			CurrentQuantity: 60, MinimumQuantity: 24,
			PurchasePrice: 150, PurchaseCurrency: model.CurrencyYER,
			ProfitType: model.ProfitFixed, ProfitValue: 50, ProfitCurrency: model.CurrencyYER,
			ShortcutNumber: shortcut(2),
		},
		{
			Name: "Basmati Rice 5kg", Unit: "piece", Category: "Staples",
			CurrentQuantity: 8, MinimumQuantity: 10,
			PurchasePrice: 25, PurchaseCurrency: model.CurrencySAR,
			ProfitType: model.ProfitFixed, ProfitValue: 500, ProfitCurrency: model.CurrencyYER,
			ShortcutNumber: shortcut(3),
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i := range demo {
			p := &demo[i]
			p.CreatedBy = "system"
			p.UpdatedBy = "system"
			p.CurrentSellingPrice = pricing.SellingPriceYER(pricing.InputsFor(p), rate.Rate)
			p.RefreshLowStock()
			if err := tx.Create(p).Error; err != nil {
				return err
			}

			if p.IsLowStock {
				item := model.ShortageItem{
					ProductID:       p.ID,
					ProductName:     p.Name,
					CurrentQuantity: p.CurrentQuantity,
					MinimumQuantity: p.MinimumQuantity,
					Unit:            p.Unit,
				}
				if v := p.MinimumQuantity*2 - p.CurrentQuantity; v > p.MinimumQuantity {
					item.RequestedQuantity = v
				} else {
					item.RequestedQuantity = p.MinimumQuantity
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
