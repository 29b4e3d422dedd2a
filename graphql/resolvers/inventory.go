package resolvers

import (
	"context"
	"time"

	gqlmodels "brickstock.GO/graphql/models"
)

// LotsArgs matches the lots query arguments.
type LotsArgs struct {
	PartID  *int32
	ColorID *int32
}

func (r *QueryResolver) Lots(ctx context.Context, args LotsArgs) ([]*gqlmodels.Lot, error) {
	var partID, colorID uint
	if args.PartID != nil && *args.PartID > 0 {
		partID = uint(*args.PartID)
	}
	if args.ColorID != nil && *args.ColorID > 0 {
		colorID = uint(*args.ColorID)
	}
	lots, err := r.lotRepo().List(partID, colorID)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.Lot, 0, len(lots))
	for i := range lots {
		out = append(out, lotToModel(&lots[i]))
	}
	return out, nil
}

// ImportBatchesArgs matches the importBatches query arguments (default in schema: limit=20).
type ImportBatchesArgs struct {
	Limit int32
}

func (r *QueryResolver) ImportBatches(ctx context.Context, args ImportBatchesArgs) ([]*gqlmodels.ImportBatch, error) {
	limit := int(args.Limit)
	if limit <= 0 {
		limit = 20
	}
	batches, err := r.batchRepo().List(limit)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.ImportBatch, 0, len(batches))
	for i := range batches {
		b := &batches[i]
		m := &gqlmodels.ImportBatch{
			BatchID:    idFromUint(b.BatchID),
			Source:     b.Source,
			FileName:   b.FileName,
			LotCount:   int32(b.LotCount),
			PieceCount: int32(b.PieceCount),
			CreatedAt:  b.CreatedAt.Format(time.RFC3339),
		}
		out = append(out, m)
	}
	return out, nil
}
