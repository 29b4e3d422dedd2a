package xref

import (
	"errors"

	"gorm.io/gorm"

	xrefEntity "brickstock.GO/model/entity/xref"
)

// XRefRepository reads the vendor cross-reference tables. Absence of a
// mapping is the common case and is returned as (0, false), not an error;
// the reconciliation engine's fallback policy depends on that.
type XRefRepository struct {
	db *gorm.DB
}

func NewXRefRepository(db *gorm.DB) *XRefRepository {
	return &XRefRepository{db: db}
}

// FindPartMapping returns the canonical part id for a vendor part id.
func (r *XRefRepository) FindPartMapping(vendorPartID string) (uint, bool, error) {
	var row xrefEntity.PartXRef
	err := r.db.Where("bl_id = ?", vendorPartID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return row.PartID, true, nil
}

// FindColorMapping returns the canonical color id for a vendor color id.
func (r *XRefRepository) FindColorMapping(vendorColorID string) (uint, bool, error) {
	var row xrefEntity.ColorXRef
	err := r.db.Where("bl_id = ?", vendorColorID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return row.ColorID, true, nil
}

// PartMappings batch-loads vendor part id -> canonical part id for a set of
// vendor ids. Ids without a mapping are simply absent from the result.
func (r *XRefRepository) PartMappings(vendorPartIDs []string) (map[string]uint, error) {
	result := make(map[string]uint, len(vendorPartIDs))
	if len(vendorPartIDs) == 0 {
		return result, nil
	}
	var rows []xrefEntity.PartXRef
	if err := r.db.Where("bl_id IN ?", vendorPartIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.BLID] = row.PartID
	}
	return result, nil
}

// ColorMappings batch-loads vendor color id -> canonical color id.
func (r *XRefRepository) ColorMappings(vendorColorIDs []string) (map[string]uint, error) {
	result := make(map[string]uint, len(vendorColorIDs))
	if len(vendorColorIDs) == 0 {
		return result, nil
	}
	var rows []xrefEntity.ColorXRef
	if err := r.db.Where("bl_id IN ?", vendorColorIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.BLID] = row.ColorID
	}
	return result, nil
}
