package inventory

import "time"

// Lot condition values (single char, matching the vendor export encoding).
const (
	ConditionNew  = "N"
	ConditionUsed = "U"
)

// Lot is one inventory lot. The business key (part_id, color_id, condition)
// is unique at the storage layer; re-importing the same key adds quantity
// instead of creating a second row.
type Lot struct {
	LotID     uint      `gorm:"column:lot_id;primaryKey;autoIncrement" json:"lot_id"`
	PartID    uint      `gorm:"column:part_id;not null;uniqueIndex:idx_inventory_lot_bk" json:"part_id"`
	ColorID   uint      `gorm:"column:color_id;not null;uniqueIndex:idx_inventory_lot_bk" json:"color_id"`
	Condition string    `gorm:"column:condition;type:varchar(1);not null;default:'U';uniqueIndex:idx_inventory_lot_bk" json:"condition"`
	Quantity  int       `gorm:"column:quantity;not null;default:0" json:"quantity"`
	BatchID   *uint     `gorm:"column:batch_id;index" json:"batch_id,omitempty"`
	Notes     string    `gorm:"column:notes;type:text;not null;default:''" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Lot) TableName() string {
	return "inventory_lot"
}
