package catalog

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogEntity "brickstock.GO/model/entity/catalog"
)

// CatalogRepository owns the canonical part/color tables and their
// per-source identifier mappings.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// UpsertPart resolves (source, sourceID) to a canonical part id, creating the
// part on first sighting. Lookup is by shape_key = sourceID. An existing
// part's name is updated when the incoming name is non-empty and different;
// identity never changes. The part row and its source mapping are written in
// one transaction so they are never observably out of sync.
// ImageURL is backfilled only while empty, like color RGB.
// Total for any non-empty sourceID: never returns 0 without an error.
func (r *CatalogRepository) UpsertPart(source, sourceID, name, imageURL string) (uint, error) {
	if sourceID == "" {
		return 0, fmt.Errorf("upsert part: empty source id")
	}
	var partID uint
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var part catalogEntity.Part
		err := tx.Where("shape_key = ?", sourceID).First(&part).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			part = catalogEntity.Part{ShapeKey: sourceID, Name: name, ImageURL: imageURL}
			if err := tx.Create(&part).Error; err != nil {
				return fmt.Errorf("create part %s: %w", sourceID, err)
			}
		case err != nil:
			return fmt.Errorf("find part %s: %w", sourceID, err)
		default:
			updates := map[string]interface{}{"updated_at": time.Now()}
			if name != "" && name != part.Name {
				updates["name"] = name
			}
			if part.ImageURL == "" && imageURL != "" {
				updates["image_url"] = imageURL
			}
			if err := tx.Model(&part).Updates(updates).Error; err != nil {
				return fmt.Errorf("update part %s: %w", sourceID, err)
			}
		}
		partID = part.PartID
		return upsertPartMapping(tx, partID, source, sourceID)
	})
	if err != nil {
		return 0, err
	}
	return partID, nil
}

// upsertPartMapping writes the (source, source_id) row. On conflict the
// mapping is repointed to the new part id — last write wins.
func upsertPartMapping(tx *gorm.DB, partID uint, source, sourceID string) error {
	row := catalogEntity.PartSourceID{PartID: partID, Source: source, SourceID: sourceID}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source"}, {Name: "source_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"part_id"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert part mapping %s/%s: %w", source, sourceID, err)
	}
	return nil
}

// UpsertColor resolves (source, sourceID, name) to a canonical color id.
// Lookup is by exact generic name. RGB is backfilled only while empty, so a
// later vendor sighting never churns an already-populated value.
func (r *CatalogRepository) UpsertColor(source, sourceID, name, rgb string) (uint, error) {
	if name == "" {
		return 0, fmt.Errorf("upsert color: empty name")
	}
	var colorID uint
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var color catalogEntity.Color
		err := tx.Where("name = ?", name).First(&color).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			color = catalogEntity.Color{Name: name, RGB: rgb}
			if err := tx.Create(&color).Error; err != nil {
				return fmt.Errorf("create color %s: %w", name, err)
			}
		case err != nil:
			return fmt.Errorf("find color %s: %w", name, err)
		default:
			updates := map[string]interface{}{"updated_at": time.Now()}
			if color.RGB == "" && rgb != "" {
				updates["rgb"] = rgb
			}
			if err := tx.Model(&color).Updates(updates).Error; err != nil {
				return fmt.Errorf("update color %s: %w", name, err)
			}
		}
		colorID = color.ColorID

		row := catalogEntity.ColorSourceID{ColorID: colorID, Source: source, SourceID: sourceID}
		upsert := clause.OnConflict{
			Columns:   []clause.Column{{Name: "source"}, {Name: "source_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"color_id"}),
		}
		if err := tx.Clauses(upsert).Create(&row).Error; err != nil {
			return fmt.Errorf("upsert color mapping %s/%s: %w", source, sourceID, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return colorID, nil
}

// FlagMinifigPart marks a part as a minifigure part.
func (r *CatalogRepository) FlagMinifigPart(partID uint) error {
	return r.db.Model(&catalogEntity.Part{}).
		Where("part_id = ?", partID).
		Update("is_minifig_part", true).Error
}

// FindPartByShapeKey returns the canonical part for a shape key.
func (r *CatalogRepository) FindPartByShapeKey(shapeKey string) (*catalogEntity.Part, error) {
	var part catalogEntity.Part
	if err := r.db.Where("shape_key = ?", shapeKey).First(&part).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

// FindColorByName returns the canonical color by exact generic name.
func (r *CatalogRepository) FindColorByName(name string) (*catalogEntity.Color, error) {
	var color catalogEntity.Color
	if err := r.db.Where("name = ?", name).First(&color).Error; err != nil {
		return nil, err
	}
	return &color, nil
}

// Colors returns the full canonical color catalog, ordered by name.
func (r *CatalogRepository) Colors() ([]catalogEntity.Color, error) {
	var colors []catalogEntity.Color
	err := r.db.Order("name").Find(&colors).Error
	return colors, err
}

// PartSourceMappings returns all source mappings for a canonical part.
func (r *CatalogRepository) PartSourceMappings(partID uint) ([]catalogEntity.PartSourceID, error) {
	var rows []catalogEntity.PartSourceID
	err := r.db.Where("part_id = ?", partID).Find(&rows).Error
	return rows, err
}

// PartsWithImages returns parts that carry an image URL, for the media cache.
func (r *CatalogRepository) PartsWithImages() ([]catalogEntity.Part, error) {
	var parts []catalogEntity.Part
	err := r.db.Where("image_url <> ''").Find(&parts).Error
	return parts, err
}
