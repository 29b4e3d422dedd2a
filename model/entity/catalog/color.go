package catalog

import "time"

// Color is the canonical color row. Name is the generic color name and is
// unique; RGB is backfilled once and never overwritten afterwards.
type Color struct {
	ColorID   uint      `gorm:"column:color_id;primaryKey;autoIncrement" json:"color_id"`
	Name      string    `gorm:"column:name;type:varchar(64);not null;uniqueIndex:idx_catalog_color_name_unq" json:"name"`
	RGB       string    `gorm:"column:rgb;type:varchar(8);not null;default:''" json:"rgb,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Color) TableName() string {
	return "catalog_color"
}

// ColorSourceID maps one external source color id onto a canonical color.
type ColorSourceID struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ColorID  uint   `gorm:"column:color_id;not null;index" json:"color_id"`
	Source   string `gorm:"column:source;type:varchar(32);not null;uniqueIndex:idx_catalog_color_source_unq" json:"source"`
	SourceID string `gorm:"column:source_id;type:varchar(64);not null;uniqueIndex:idx_catalog_color_source_unq" json:"source_id"`
}

func (ColorSourceID) TableName() string {
	return "catalog_color_source_id"
}
