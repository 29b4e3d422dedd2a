package inventory

import (
	"time"

	"gorm.io/datatypes"
)

// ImportBatch records one import invocation. LotCount/PieceCount are written
// once at the end of the commit transaction and reflect mapped entries only.
// Meta keeps the unmapped vendor ids for later inspection.
type ImportBatch struct {
	BatchID    uint           `gorm:"column:batch_id;primaryKey;autoIncrement" json:"batch_id"`
	Source     string         `gorm:"column:source;type:varchar(32);not null" json:"source"`
	FileName   *string        `gorm:"column:file_name;type:varchar(255)" json:"file_name,omitempty"`
	LotCount   int            `gorm:"column:lot_count;not null;default:0" json:"lot_count"`
	PieceCount int            `gorm:"column:piece_count;not null;default:0" json:"piece_count"`
	Meta       datatypes.JSON `gorm:"column:meta" json:"meta,omitempty"`
	CreatedAt  time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (ImportBatch) TableName() string {
	return "inventory_import_batch"
}
