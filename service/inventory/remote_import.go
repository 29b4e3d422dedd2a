package inventory

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	inventoryEntity "brickstock.GO/model/entity/inventory"
	catalogRepo "brickstock.GO/model/repository/catalog"
	"brickstock.GO/service/catalogapi"
)

// ImportRemoteSet fetches a set's inventory and minifigs from the catalog
// service, canonicalizes every part and color, and commits the result as one
// batch through the same transaction path as vendor imports. Items arrive
// already canonical, so there is no cross-reference resolution and nothing
// can be unmapped.
//
// condition applies to every imported lot; empty defaults to Used.
func ImportRemoteSet(ctx context.Context, db *gorm.DB, client *catalogapi.Client, setID string, mode Mode, condition string) (*ImportSummary, error) {
	parts, err := client.FetchSetInventory(ctx, setID)
	if err != nil {
		return nil, fmt.Errorf("fetch set %s inventory: %w", setID, err)
	}
	figs, err := client.FetchSetMinifigs(ctx, setID)
	if err != nil {
		return nil, fmt.Errorf("fetch set %s minifigs: %w", setID, err)
	}
	if len(parts) == 0 && len(figs) == 0 {
		return nil, ErrNoLineItems
	}
	if condition == "" {
		condition = inventoryEntity.ConditionUsed
	}
	opts := ImportOptions{Source: "catalog", FileName: "set:" + setID, Mode: mode}
	if opts.Mode == "" {
		opts.Mode = ModeAdd
	}

	summary := &ImportSummary{
		FileName:  opts.FileName,
		TotalLots: len(parts) + len(figs),
	}
	for _, p := range parts {
		summary.TotalPieces += p.Quantity
	}
	for _, f := range figs {
		summary.TotalPieces += f.Quantity
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		catalogs := catalogRepo.NewCatalogRepository(tx)
		var resolved []resolvedItem

		for _, p := range parts {
			if p.DesignID == "" {
				continue
			}
			partID, err := catalogs.UpsertPart("catalog", p.DesignID, p.Name, p.ImageURL)
			if err != nil {
				return err
			}
			colorName := p.ColorName
			if colorName == "" {
				colorName = "(Unknown)"
			}
			colorID, err := catalogs.UpsertColor("catalog", p.ColorID, colorName, p.ColorRGB)
			if err != nil {
				return err
			}
			resolved = append(resolved, resolvedItem{
				partID:    partID,
				colorID:   colorID,
				condition: condition,
				quantity:  p.Quantity,
			})
		}

		// Minifigs become flagged parts under the no-color sentinel.
		var figColorID uint
		if len(figs) > 0 {
			figColorID, err = catalogs.UpsertColor("catalog", "0", "(Not Applicable)", "")
			if err != nil {
				return err
			}
		}
		for _, f := range figs {
			shapeKey := f.DesignID
			if shapeKey == "" {
				shapeKey = f.FigID
			}
			if shapeKey == "" {
				continue
			}
			partID, err := catalogs.UpsertPart("catalog", shapeKey, f.Name, f.ImageURL)
			if err != nil {
				return err
			}
			if err := catalogs.FlagMinifigPart(partID); err != nil {
				return err
			}
			resolved = append(resolved, resolvedItem{
				partID:    partID,
				colorID:   figColorID,
				condition: condition,
				quantity:  f.Quantity,
			})
		}

		entries := aggregate(resolved)
		batchID, lots, pieces, err := commitEntries(tx, entries, opts, nil)
		if err != nil {
			return err
		}
		summary.BatchID = batchID
		summary.MappedLots = lots
		summary.MappedPieces = pieces
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}
