package resolvers

import (
	"context"
	"encoding/json"
	"strconv"

	gql "github.com/graph-gophers/graphql-go"
	"gorm.io/gorm"

	gqlmodels "brickstock.GO/graphql/models"
	gqlregistry "brickstock.GO/graphql/registry"
	catalogEntity "brickstock.GO/model/entity/catalog"
	inventoryEntity "brickstock.GO/model/entity/inventory"
	catalogRepo "brickstock.GO/model/repository/catalog"
	inventoryRepo "brickstock.GO/model/repository/inventory"
)

// QueryResolver is the single resolver for all Query fields.
// Methods live in catalog.go, inventory.go, search.go.
// New Query fields: use RegisterSchemaExtension + add method on QueryResolver,
// or use extension(name, args) for fully dynamic resolvers.
type QueryResolver struct {
	db *gorm.DB
}

func NewQueryResolver(db *gorm.DB) *QueryResolver {
	return &QueryResolver{db: db}
}

func (r *QueryResolver) catalogRepo() *catalogRepo.CatalogRepository {
	return catalogRepo.NewCatalogRepository(r.db)
}

func (r *QueryResolver) lotRepo() *inventoryRepo.LotRepository {
	return inventoryRepo.NewLotRepository(r.db)
}

func (r *QueryResolver) batchRepo() *inventoryRepo.BatchRepository {
	return inventoryRepo.NewBatchRepository(r.db)
}

func (r *QueryResolver) searchService() *SearchService {
	return GetSearchService()
}

// --- entity -> model mapping ---

func idFromUint(v uint) gql.ID {
	return gql.ID(strconv.FormatUint(uint64(v), 10))
}

func partToModel(p *catalogEntity.Part) *gqlmodels.Part {
	m := &gqlmodels.Part{
		PartID:        idFromUint(p.PartID),
		ShapeKey:      p.ShapeKey,
		IsPrinted:     p.IsPrinted,
		IsMinifigPart: p.IsMinifigPart,
		SourceIds:     []*gqlmodels.SourceID{},
		Lots:          []*gqlmodels.Lot{},
	}
	if p.Name != "" {
		name := p.Name
		m.Name = &name
	}
	if p.ImageURL != "" {
		url := p.ImageURL
		m.ImageURL = &url
	}
	return m
}

func lotToModel(l *inventoryEntity.Lot) *gqlmodels.Lot {
	return &gqlmodels.Lot{
		LotID:     idFromUint(l.LotID),
		PartID:    int32(l.PartID),
		ColorID:   int32(l.ColorID),
		Condition: l.Condition,
		Quantity:  int32(l.Quantity),
		Notes:     l.Notes,
	}
}

// --- extension dispatch ---

// ExtensionArgs for extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := gqlregistry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}
