package inventory

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	inventoryEntity "brickstock.GO/model/entity/inventory"
)

// LotKey is the business key that uniquely identifies one inventory lot.
type LotKey struct {
	PartID    uint
	ColorID   uint
	Condition string
}

// LotRepository owns the inventory_lot table. The business key uniqueness is
// enforced by the table's unique index, so even a missed in-memory
// aggregation cannot produce duplicate rows — the conflict path adds instead.
type LotRepository struct {
	db *gorm.DB
}

func NewLotRepository(db *gorm.DB) *LotRepository {
	return &LotRepository{db: db}
}

// LoadByBusinessKey preloads all lots keyed by business key (merge mode).
func (r *LotRepository) LoadByBusinessKey() (map[LotKey]*inventoryEntity.Lot, error) {
	var lots []inventoryEntity.Lot
	if err := r.db.Find(&lots).Error; err != nil {
		return nil, err
	}
	result := make(map[LotKey]*inventoryEntity.Lot, len(lots))
	for i := range lots {
		lot := &lots[i]
		result[LotKey{PartID: lot.PartID, ColorID: lot.ColorID, Condition: lot.Condition}] = lot
	}
	return result, nil
}

// UpsertAdd inserts a lot or, when the business key already exists, adds the
// quantity and joins the notes on the conflict boundary. Null-safe join:
// existing empty takes new, new empty keeps existing, both non-empty are
// newline-joined with the existing text first.
func (r *LotRepository) UpsertAdd(lot *inventoryEntity.Lot) error {
	upsert := clause.OnConflict{
		Columns: []clause.Column{{Name: "part_id"}, {Name: "color_id"}, {Name: "condition"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("inventory_lot.quantity + excluded.quantity"),
			"notes": gorm.Expr(
				"CASE WHEN inventory_lot.notes = '' THEN excluded.notes " +
					"WHEN excluded.notes = '' THEN inventory_lot.notes " +
					"ELSE inventory_lot.notes || char(10) || excluded.notes END"),
			"updated_at": gorm.Expr("excluded.updated_at"),
		}),
	}
	return r.db.Clauses(upsert).Create(lot).Error
}

// AddInPlace merges new quantity and notes into an already-loaded lot row
// and updates it by primary key (merge mode's in-memory path).
func (r *LotRepository) AddInPlace(lot *inventoryEntity.Lot, quantity int, notes string) error {
	lot.Quantity += quantity
	lot.Notes = JoinNotes(lot.Notes, notes)
	lot.UpdatedAt = time.Now()
	return r.db.Model(lot).Updates(map[string]interface{}{
		"quantity":   lot.Quantity,
		"notes":      lot.Notes,
		"updated_at": lot.UpdatedAt,
	}).Error
}

// JoinNotes joins two note fragments with a newline, skipping empty sides.
func JoinNotes(existing, incoming string) string {
	if existing == "" {
		return incoming
	}
	if incoming == "" {
		return existing
	}
	return existing + "\n" + incoming
}

// List returns lots, optionally filtered by part and/or color.
func (r *LotRepository) List(partID, colorID uint) ([]inventoryEntity.Lot, error) {
	q := r.db.Order("lot_id")
	if partID > 0 {
		q = q.Where("part_id = ?", partID)
	}
	if colorID > 0 {
		q = q.Where("color_id = ?", colorID)
	}
	var lots []inventoryEntity.Lot
	err := q.Find(&lots).Error
	return lots, err
}

// QuantityByShapeKey sums on-hand quantity for a part identified by shape
// key, optionally narrowed to one color, split by condition.
func (r *LotRepository) QuantityByShapeKey(shapeKey string, colorID uint) (newQty, usedQty int, err error) {
	type row struct {
		Condition string
		Total     int
	}
	q := r.db.Model(&inventoryEntity.Lot{}).
		Select("inventory_lot.condition, SUM(inventory_lot.quantity) AS total").
		Joins("JOIN catalog_part ON catalog_part.part_id = inventory_lot.part_id").
		Where("catalog_part.shape_key = ?", shapeKey).
		Group("inventory_lot.condition")
	if colorID > 0 {
		q = q.Where("inventory_lot.color_id = ?", colorID)
	}
	var rows []row
	if err := q.Scan(&rows).Error; err != nil {
		return 0, 0, err
	}
	for _, r := range rows {
		switch r.Condition {
		case inventoryEntity.ConditionNew:
			newQty = r.Total
		default:
			usedQty += r.Total
		}
	}
	return newQty, usedQty, nil
}

// TotalPieces sums quantity over all lots.
func (r *LotRepository) TotalPieces() (int, error) {
	var total *int
	err := r.db.Model(&inventoryEntity.Lot{}).Select("SUM(quantity)").Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}
