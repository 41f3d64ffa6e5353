package Models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

type Customer struct {
	gorm.Model
	Name          string          `json:"name" gorm:"size:200;not null"`
	ContactNumber string          `json:"contact_number" gorm:"uniqueIndex;size:20;not null"`
	Email         string          `json:"email" gorm:"size:255"`
	Address       string          `json:"address" gorm:"type:text"`
	DateOfBirth   *datatypes.Date `json:"date_of_birth"`

	Loyalty *CustomerLoyalty `json:"loyalty,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

// AfterCreate opens the loyalty record alongside the customer. Loyalty is
// lifecycle-bound to the customer row it belongs to.
func (c *Customer) AfterCreate(tx *gorm.DB) error {
	return tx.Create(&CustomerLoyalty{CustomerID: c.ID, Tier: TierBronze}).Error
}

type CustomerLoyalty struct {
	gorm.Model
	CustomerID      uint   `json:"customer_id" gorm:"uniqueIndex;not null"`
	Tier            string `json:"tier" gorm:"size:20;default:bronze"`
	AvailablePoints int    `json:"available_points" gorm:"default:0"`
	LifetimePoints  int    `json:"lifetime_points" gorm:"default:0"`
}

// TierFor maps lifetime points onto a loyalty tier.
func TierFor(lifetimePoints int) string {
	switch {
	case lifetimePoints >= 10000:
		return TierPlatinum
	case lifetimePoints >= 5000:
		return TierGold
	case lifetimePoints >= 1000:
		return TierSilver
	default:
		return TierBronze
	}
}

// UpdateTier recomputes the tier from the current lifetime total.
func (l *CustomerLoyalty) UpdateTier() {
	l.Tier = TierFor(l.LifetimePoints)
}
