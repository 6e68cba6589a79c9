package models

import (
	"time"

	"tps/src/types"
)

// Deal is a date-window offering of a Package with its own price and slot
// inventory. slots_booked only ever moves through common.AdjustDealSlots.
type Deal struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	PackageID      uint      `json:"package_id,omitempty"`
	StartDate      time.Time `json:"start_date,omitempty"`
	EndDate        time.Time `json:"end_date,omitempty"`
	Price          float64   `json:"price,omitempty"`
	SlotsAvailable uint      `json:"slots_available"`
	SlotsBooked    uint      `gorm:"default:0" json:"slots_booked"`

	Package *Package `gorm:"foreignKey:package_id" json:"package,omitempty"`

	types.Timestamps
}
