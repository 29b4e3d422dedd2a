package xref

// Cross-reference tables between the XML-export vendor's id space and the
// canonical catalog. Pre-populated by a separate sync process; the
// reconciliation engine only reads them.

// PartXRef maps a canonical part to its per-vendor part ids.
type PartXRef struct {
	ID      uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PartID  uint   `gorm:"column:part_id;not null;uniqueIndex:idx_xref_part_unq" json:"part_id"`
	BLID    string `gorm:"column:bl_id;type:varchar(64);index" json:"bl_id,omitempty"`
	LDrawID string `gorm:"column:ldraw_id;type:varchar(64)" json:"ldraw_id,omitempty"`
	LDDID   string `gorm:"column:ldd_id;type:varchar(64)" json:"ldd_id,omitempty"`
}

func (PartXRef) TableName() string {
	return "xref_part"
}

// ColorXRef maps a canonical color to its per-vendor color ids.
type ColorXRef struct {
	ID      uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ColorID uint   `gorm:"column:color_id;not null;uniqueIndex:idx_xref_color_unq" json:"color_id"`
	BLID    string `gorm:"column:bl_id;type:varchar(16);index" json:"bl_id,omitempty"`
	LDrawID string `gorm:"column:ldraw_id;type:varchar(16)" json:"ldraw_id,omitempty"`
	LDDID   string `gorm:"column:ldd_id;type:varchar(16)" json:"ldd_id,omitempty"`
}

func (ColorXRef) TableName() string {
	return "xref_color"
}
