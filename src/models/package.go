package models

import "tps/src/types"

type Package struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	Title       string           `json:"title,omitempty"`
	Slug        string           `gorm:"uniqueIndex" json:"slug,omitempty"`
	Location    string           `json:"location,omitempty"`
	Description *string          `json:"description,omitempty"`
	Images      types.JSONBArray `gorm:"type:jsonb" json:"images,omitempty"`
	Featured    bool             `json:"featured,omitempty"`

	Details   []PackageDetail `gorm:"foreignKey:package_id" json:"details,omitempty"`
	Itinerary []ItineraryItem `gorm:"foreignKey:package_id" json:"itinerary,omitempty"`
	Deals     []Deal          `gorm:"foreignKey:package_id" json:"deals,omitempty"`

	types.Timestamps
}

type PackageDetail struct {
	ID        uint             `gorm:"primarykey" json:"id"`
	PackageID uint             `json:"package_id,omitempty"`
	Section   string           `json:"section,omitempty"`
	Items     types.JSONBArray `gorm:"type:jsonb" json:"items,omitempty"`

	types.Timestamps
}

type ItineraryItem struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	PackageID   uint   `json:"package_id,omitempty"`
	Day         uint   `json:"day,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	types.Timestamps
}
