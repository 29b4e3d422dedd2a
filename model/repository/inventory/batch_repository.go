package inventory

import (
	"encoding/json"

	"gorm.io/gorm"

	inventoryEntity "brickstock.GO/model/entity/inventory"
)

// BatchRepository owns the inventory_import_batch table.
type BatchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// Create inserts a new batch row with zero counts.
func (r *BatchRepository) Create(source string, fileName *string) (*inventoryEntity.ImportBatch, error) {
	batch := &inventoryEntity.ImportBatch{Source: source, FileName: fileName}
	if err := r.db.Create(batch).Error; err != nil {
		return nil, err
	}
	return batch, nil
}

// Finalize records the mapped lot/piece totals and the meta payload.
// Called once, at the end of the commit transaction.
func (r *BatchRepository) Finalize(batch *inventoryEntity.ImportBatch, lotCount, pieceCount int, meta interface{}) error {
	updates := map[string]interface{}{
		"lot_count":   lotCount,
		"piece_count": pieceCount,
	}
	if meta != nil {
		raw, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		updates["meta"] = raw
	}
	if err := r.db.Model(batch).Updates(updates).Error; err != nil {
		return err
	}
	batch.LotCount = lotCount
	batch.PieceCount = pieceCount
	return nil
}

// List returns batches newest first.
func (r *BatchRepository) List(limit int) ([]inventoryEntity.ImportBatch, error) {
	q := r.db.Order("batch_id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var batches []inventoryEntity.ImportBatch
	err := q.Find(&batches).Error
	return batches, err
}

// FindByID returns one batch.
func (r *BatchRepository) FindByID(batchID uint) (*inventoryEntity.ImportBatch, error) {
	var batch inventoryEntity.ImportBatch
	if err := r.db.First(&batch, batchID).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}
