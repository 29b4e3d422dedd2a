package inventory

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gorm.io/gorm"

	inventoryEntity "brickstock.GO/model/entity/inventory"
	catalogRepo "brickstock.GO/model/repository/catalog"
	inventoryRepo "brickstock.GO/model/repository/inventory"
	xrefRepo "brickstock.GO/model/repository/xref"
	"brickstock.GO/service/vendorxml"
)

// Mode selects how an import meets existing lots.
type Mode string

const (
	// ModeAdd resolves collisions at the storage conflict boundary only.
	ModeAdd Mode = "add"
	// ModeMerge preloads existing lots and merges matches in application code.
	ModeMerge Mode = "merge"
)

// ParseMode validates a mode string from the CLI or API.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAdd, ModeMerge:
		return Mode(s), nil
	case "":
		return ModeAdd, nil
	}
	return "", fmt.Errorf("invalid import mode %q (want add or merge)", s)
}

// ImportOptions configures one import invocation.
type ImportOptions struct {
	Source   string // batch source label, e.g. "vendorxml" or "catalog"
	FileName string // origin file name, recorded on the batch (optional)
	Mode     Mode
}

// ImportSummary is returned from every successful import. TotalLots and
// TotalPieces count the raw parsed input; MappedLots and MappedPieces count
// the aggregated, written set. They differ when duplicates collapse.
type ImportSummary struct {
	BatchID       uint                 `json:"batch_id"`
	FileName      string               `json:"file_name,omitempty"`
	TotalLots     int                  `json:"total_lots"`
	TotalPieces   int                  `json:"total_pieces"`
	MappedLots    int                  `json:"mapped_lots"`
	MappedPieces  int                  `json:"mapped_pieces"`
	UnmappedLots  int                  `json:"unmapped_lots"`
	UnmappedItems []vendorxml.LineItem `json:"unmapped_items,omitempty"`
}

// ErrNoLineItems is returned when the input yields nothing to import.
// No transaction is opened in that case.
var ErrNoLineItems = errors.New("import: no line items in input")

// ImportVendorExport reads a vendor XML export and imports it. This is the
// sole entry point the surrounding UI calls.
func ImportVendorExport(db *gorm.DB, r io.Reader, opts ImportOptions) (*ImportSummary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	items, err := vendorxml.Parse(data)
	if err != nil {
		return nil, err
	}
	return ReconcileAndImport(db, items, opts)
}

// resolvedItem is a line-item after stage 1. Exactly one of partID/shapeKey
// is set: partID when a cross-reference row matched, shapeKey when the raw
// vendor part id passes through as its own canonical identity.
type resolvedItem struct {
	partID    uint
	shapeKey  string
	colorID   uint
	condition string
	quantity  int
	notes     string
}

// aggKey groups resolved items sharing one eventual business key.
type aggKey struct {
	partID   uint
	shapeKey string
	colorID  uint
	cond     string
}

type aggEntry struct {
	key      aggKey
	quantity int
	notes    string
}

// ReconcileAndImport resolves vendor line-items against the cross-reference
// tables, aggregates duplicates, and commits the result in one transaction.
//
// Pipeline: Resolve -> Aggregate -> Commit, no branching back. Unmapped items
// (no color mapping and no integer-parseable color id) are never written;
// they are counted and returned for visibility. Any failure inside the
// commit transaction rolls back the whole batch.
func ReconcileAndImport(db *gorm.DB, items []vendorxml.LineItem, opts ImportOptions) (*ImportSummary, error) {
	if len(items) == 0 {
		return nil, ErrNoLineItems
	}
	if opts.Source == "" {
		opts.Source = "vendorxml"
	}
	if opts.Mode == "" {
		opts.Mode = ModeAdd
	}

	summary := &ImportSummary{FileName: opts.FileName, TotalLots: len(items)}
	for _, item := range items {
		summary.TotalPieces += item.Quantity
	}

	// Stage 1: resolve.
	resolved, unmapped, err := resolveItems(db, items)
	if err != nil {
		return nil, err
	}
	summary.UnmappedItems = unmapped
	summary.UnmappedLots = len(unmapped)

	// Stage 2: aggregate by business key so one import never issues two
	// conflicting writes against the same key.
	entries := aggregate(resolved)

	// Stage 3: commit.
	err = db.Transaction(func(tx *gorm.DB) error {
		batchID, lots, pieces, err := commitEntries(tx, entries, opts, unmapped)
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

// resolveItems maps each vendor line-item onto canonical identities.
//
// Part: cross-reference match wins; otherwise the raw vendor part id passes
// through as its own canonical shape key (resolvePartID). Color:
// cross-reference match wins; otherwise the vendor color id is integer-parsed
// as a best-effort canonical id (resolveColorID); if both fail the item is
// unmapped.
func resolveItems(db *gorm.DB, items []vendorxml.LineItem) ([]resolvedItem, []vendorxml.LineItem, error) {
	xr := xrefRepo.NewXRefRepository(db)

	partIDs := make([]string, 0, len(items))
	colorIDs := make([]string, 0, len(items))
	seenPart := make(map[string]bool)
	seenColor := make(map[string]bool)
	for _, item := range items {
		if !seenPart[item.PartID] {
			seenPart[item.PartID] = true
			partIDs = append(partIDs, item.PartID)
		}
		if !seenColor[item.ColorID] {
			seenColor[item.ColorID] = true
			colorIDs = append(colorIDs, item.ColorID)
		}
	}

	partMap, err := xr.PartMappings(partIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("load part mappings: %w", err)
	}
	colorMap, err := xr.ColorMappings(colorIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("load color mappings: %w", err)
	}

	var resolved []resolvedItem
	var unmapped []vendorxml.LineItem
	for _, item := range items {
		colorID, ok := resolveColorID(colorMap, item.ColorID)
		if !ok {
			unmapped = append(unmapped, item)
			continue
		}
		ri := resolvedItem{
			colorID:   colorID,
			condition: item.Condition,
			quantity:  item.Quantity,
			notes:     inventoryRepo.JoinNotes(item.Comments, item.Remarks),
		}
		ri.partID, ri.shapeKey = resolvePartID(partMap, item.PartID)
		resolved = append(resolved, ri)
	}
	return resolved, unmapped, nil
}

// resolvePartID is the part fallback policy: an unmapped vendor part id is
// adopted as the canonical shape key itself. Swap this function to reject
// unmapped parts instead.
func resolvePartID(partMap map[string]uint, vendorPartID string) (uint, string) {
	if id, ok := partMap[vendorPartID]; ok {
		return id, ""
	}
	return 0, vendorPartID
}

// resolveColorID is the color fallback policy: an unmapped vendor color id
// is used directly when it parses as a non-negative integer. A vendor id
// can collide with an unrelated canonical id; isolated here so the
// fallback can be swapped for a sentinel.
func resolveColorID(colorMap map[string]uint, vendorColorID string) (uint, bool) {
	if id, ok := colorMap[vendorColorID]; ok {
		return id, true
	}
	n, err := strconv.Atoi(vendorColorID)
	if err != nil || n < 0 {
		return 0, false
	}
	return uint(n), true
}

// aggregate groups resolved items by business key, summing quantities and
// newline-joining non-empty notes in encounter order.
func aggregate(resolved []resolvedItem) []*aggEntry {
	var entries []*aggEntry
	index := make(map[aggKey]*aggEntry)
	for _, ri := range resolved {
		cond := ri.condition
		if cond == "" {
			cond = inventoryEntity.ConditionUsed
		}
		key := aggKey{partID: ri.partID, shapeKey: ri.shapeKey, colorID: ri.colorID, cond: cond}
		if entry, ok := index[key]; ok {
			entry.quantity += ri.quantity
			entry.notes = inventoryRepo.JoinNotes(entry.notes, ri.notes)
			continue
		}
		entry := &aggEntry{key: key, quantity: ri.quantity, notes: ri.notes}
		index[key] = entry
		entries = append(entries, entry)
	}
	return entries
}

// commitEntries runs inside the commit transaction: creates the batch row,
// canonicalizes pass-through shape keys, writes lots under the selected
// mode, and finalizes the batch counters. Returns batch id and the mapped
// lot/piece totals.
func commitEntries(tx *gorm.DB, entries []*aggEntry, opts ImportOptions, unmapped []vendorxml.LineItem) (uint, int, int, error) {
	batches := inventoryRepo.NewBatchRepository(tx)
	var fileName *string
	if opts.FileName != "" {
		fileName = &opts.FileName
	}
	batch, err := batches.Create(opts.Source, fileName)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("create import batch: %w", err)
	}

	// Canonicalize pass-through part ids. Runs inside the transaction so a
	// failed import leaves no mapping changes behind.
	catalogs := catalogRepo.NewCatalogRepository(tx)
	shapeToID := make(map[string]uint)
	for _, entry := range entries {
		if entry.key.shapeKey == "" {
			continue
		}
		if _, ok := shapeToID[entry.key.shapeKey]; ok {
			continue
		}
		id, err := catalogs.UpsertPart(opts.Source, entry.key.shapeKey, "", "")
		if err != nil {
			return 0, 0, 0, err
		}
		shapeToID[entry.key.shapeKey] = id
	}

	// Collapse entries whose pass-through part landed on an id another entry
	// already resolved to. Rare, but keeps the written set conflict-free.
	final := make([]*aggEntry, 0, len(entries))
	byKey := make(map[inventoryRepo.LotKey]*aggEntry, len(entries))
	for _, entry := range entries {
		partID := entry.key.partID
		if partID == 0 {
			partID = shapeToID[entry.key.shapeKey]
		}
		key := inventoryRepo.LotKey{PartID: partID, ColorID: entry.key.colorID, Condition: entry.key.cond}
		if prev, ok := byKey[key]; ok {
			prev.quantity += entry.quantity
			prev.notes = inventoryRepo.JoinNotes(prev.notes, entry.notes)
			continue
		}
		merged := &aggEntry{key: aggKey{partID: partID, colorID: key.ColorID, cond: key.Condition}, quantity: entry.quantity, notes: entry.notes}
		byKey[key] = merged
		final = append(final, merged)
	}

	lots := inventoryRepo.NewLotRepository(tx)
	var existing map[inventoryRepo.LotKey]*inventoryEntity.Lot
	if opts.Mode == ModeMerge {
		existing, err = lots.LoadByBusinessKey()
		if err != nil {
			return 0, 0, 0, fmt.Errorf("load existing lots: %w", err)
		}
	}

	pieces := 0
	for _, entry := range final {
		pieces += entry.quantity
		key := inventoryRepo.LotKey{PartID: entry.key.partID, ColorID: entry.key.colorID, Condition: entry.key.cond}
		if lot, ok := existing[key]; ok {
			// Merge mode with a matching lot: add in place, never a new row.
			if err := lots.AddInPlace(lot, entry.quantity, entry.notes); err != nil {
				return 0, 0, 0, fmt.Errorf("merge lot %d/%d/%s: %w", key.PartID, key.ColorID, key.Condition, err)
			}
			continue
		}
		lot := &inventoryEntity.Lot{
			PartID:    key.PartID,
			ColorID:   key.ColorID,
			Condition: key.Condition,
			Quantity:  entry.quantity,
			Notes:     entry.notes,
			BatchID:   &batch.BatchID,
		}
		if err := lots.UpsertAdd(lot); err != nil {
			return 0, 0, 0, fmt.Errorf("upsert lot %d/%d/%s: %w", key.PartID, key.ColorID, key.Condition, err)
		}
	}

	meta := map[string]interface{}{}
	if len(unmapped) > 0 {
		meta["unmapped_items"] = unmapped
	}
	if err := batches.Finalize(batch, len(final), pieces, meta); err != nil {
		return 0, 0, 0, fmt.Errorf("finalize import batch: %w", err)
	}
	return batch.BatchID, len(final), pieces, nil
}
