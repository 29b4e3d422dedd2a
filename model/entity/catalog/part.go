package catalog

import "time"

// Part is the canonical part row. ShapeKey is the vendor-agnostic identity
// (normalized mold number); every external id maps onto exactly one Part.
type Part struct {
	PartID        uint      `gorm:"column:part_id;primaryKey;autoIncrement" json:"part_id"`
	ShapeKey      string    `gorm:"column:shape_key;type:varchar(64);not null;uniqueIndex:idx_catalog_part_shape_key_unq" json:"shape_key"`
	Name          string    `gorm:"column:name;type:varchar(255);not null;default:''" json:"name"`
	CategoryID    *uint     `gorm:"column:category_id" json:"category_id,omitempty"`
	IsPrinted     bool      `gorm:"column:is_printed;not null;default:false" json:"is_printed"`
	IsMinifigPart bool      `gorm:"column:is_minifig_part;not null;default:false" json:"is_minifig_part"`
	ImageURL      string    `gorm:"column:image_url;type:varchar(512);not null;default:''" json:"image_url,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Part) TableName() string {
	return "catalog_part"
}

// PartSourceID maps one external source id onto a canonical part.
// (source, source_id) is unique; re-upserting with a different part repoints
// the mapping, last write wins.
type PartSourceID struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PartID   uint   `gorm:"column:part_id;not null;index" json:"part_id"`
	Source   string `gorm:"column:source;type:varchar(32);not null;uniqueIndex:idx_catalog_part_source_unq" json:"source"`
	SourceID string `gorm:"column:source_id;type:varchar(64);not null;uniqueIndex:idx_catalog_part_source_unq" json:"source_id"`
}

func (PartSourceID) TableName() string {
	return "catalog_part_source_id"
}
