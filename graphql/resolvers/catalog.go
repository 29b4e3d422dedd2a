package resolvers

import (
	"context"
	"errors"

	"gorm.io/gorm"

	gqlmodels "brickstock.GO/graphql/models"
)

// PartArgs matches the part query arguments.
type PartArgs struct {
	ShapeKey string
}

func (r *QueryResolver) Part(ctx context.Context, args PartArgs) (*gqlmodels.Part, error) {
	catalogs := r.catalogRepo()
	part, err := catalogs.FindPartByShapeKey(args.ShapeKey)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	m := partToModel(part)

	mappings, err := catalogs.PartSourceMappings(part.PartID)
	if err != nil {
		return nil, err
	}
	for _, sid := range mappings {
		m.SourceIds = append(m.SourceIds, &gqlmodels.SourceID{Source: sid.Source, SourceId: sid.SourceID})
	}

	lots, err := r.lotRepo().List(part.PartID, 0)
	if err != nil {
		return nil, err
	}
	for i := range lots {
		m.Lots = append(m.Lots, lotToModel(&lots[i]))
	}
	return m, nil
}

func (r *QueryResolver) Colors(ctx context.Context) ([]*gqlmodels.Color, error) {
	colors, err := r.catalogRepo().Colors()
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.Color, 0, len(colors))
	for _, c := range colors {
		m := &gqlmodels.Color{ColorID: idFromUint(c.ColorID), Name: c.Name}
		if c.RGB != "" {
			rgb := c.RGB
			m.RGB = &rgb
		}
		out = append(out, m)
	}
	return out, nil
}
