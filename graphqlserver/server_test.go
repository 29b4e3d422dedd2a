package graphqlserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	catalogEntity "brickstock.GO/model/entity/catalog"
	inventoryEntity "brickstock.GO/model/entity/inventory"
)

func schemaTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("gql_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&catalogEntity.Part{},
		&catalogEntity.PartSourceID{},
		&catalogEntity.Color{},
		&catalogEntity.ColorSourceID{},
		&inventoryEntity.Lot{},
		&inventoryEntity.ImportBatch{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// NewSchema validates every resolver signature against the schema; a parse
// failure here means the two drifted apart.
func TestNewSchema_Parses(t *testing.T) {
	if _, err := NewSchema(schemaTestDB(t)); err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
}

func TestQuery_Part(t *testing.T) {
	db := schemaTestDB(t)
	part := catalogEntity.Part{ShapeKey: "3001", Name: "Brick 2 x 4"}
	if err := db.Create(&part).Error; err != nil {
		t.Fatalf("seed part: %v", err)
	}
	db.Create(&catalogEntity.PartSourceID{PartID: part.PartID, Source: "catalog", SourceID: "3001"})
	db.Create(&inventoryEntity.Lot{PartID: part.PartID, ColorID: 7, Condition: "U", Quantity: 8})

	schema, err := NewSchema(db)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}

	query := `{ part(shapeKey: "3001") { shapeKey name sourceIds { source sourceId } lots { colorId quantity condition } } }`
	result := schema.Exec(context.Background(), query, "", nil)
	if len(result.Errors) > 0 {
		t.Fatalf("errors: %v", result.Errors)
	}

	var data struct {
		Part struct {
			ShapeKey  string `json:"shapeKey"`
			Name      string `json:"name"`
			SourceIds []struct {
				Source   string `json:"source"`
				SourceId string `json:"sourceId"`
			} `json:"sourceIds"`
			Lots []struct {
				ColorID   int32  `json:"colorId"`
				Quantity  int32  `json:"quantity"`
				Condition string `json:"condition"`
			} `json:"lots"`
		} `json:"part"`
	}
	if err := json.Unmarshal(result.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Part.ShapeKey != "3001" || data.Part.Name != "Brick 2 x 4" {
		t.Errorf("part = %+v", data.Part)
	}
	if len(data.Part.SourceIds) != 1 || data.Part.SourceIds[0].Source != "catalog" {
		t.Errorf("sourceIds = %+v", data.Part.SourceIds)
	}
	if len(data.Part.Lots) != 1 || data.Part.Lots[0].Quantity != 8 || data.Part.Lots[0].ColorID != 7 {
		t.Errorf("lots = %+v", data.Part.Lots)
	}
}

func TestQuery_PartMissing(t *testing.T) {
	schema, err := NewSchema(schemaTestDB(t))
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	result := schema.Exec(context.Background(), `{ part(shapeKey: "nope") { shapeKey } }`, "", nil)
	if len(result.Errors) > 0 {
		t.Fatalf("errors: %v", result.Errors)
	}
	if string(result.Data) != `{"part":null}` {
		t.Errorf("data = %s, want null part", result.Data)
	}
}

func TestQuery_LotsAndBatches(t *testing.T) {
	db := schemaTestDB(t)
	db.Create(&inventoryEntity.Lot{PartID: 1, ColorID: 2, Condition: "N", Quantity: 3})
	name := "export.bsx"
	db.Create(&inventoryEntity.ImportBatch{Source: "vendorxml", FileName: &name, LotCount: 1, PieceCount: 3})

	schema, err := NewSchema(db)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}

	result := schema.Exec(context.Background(), `{ lots { partId quantity } importBatches { source fileName lotCount } }`, "", nil)
	if len(result.Errors) > 0 {
		t.Fatalf("errors: %v", result.Errors)
	}
	var data struct {
		Lots []struct {
			PartID   int32 `json:"partId"`
			Quantity int32 `json:"quantity"`
		} `json:"lots"`
		ImportBatches []struct {
			Source   string  `json:"source"`
			FileName *string `json:"fileName"`
			LotCount int32   `json:"lotCount"`
		} `json:"importBatches"`
	}
	if err := json.Unmarshal(result.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(data.Lots) != 1 || data.Lots[0].Quantity != 3 {
		t.Errorf("lots = %+v", data.Lots)
	}
	if len(data.ImportBatches) != 1 || data.ImportBatches[0].Source != "vendorxml" || *data.ImportBatches[0].FileName != "export.bsx" {
		t.Errorf("batches = %+v", data.ImportBatches)
	}
}

func TestQuery_Colors(t *testing.T) {
	db := schemaTestDB(t)
	db.Create(&catalogEntity.Color{Name: "Red", RGB: "C91A09"})

	schema, err := NewSchema(db)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	result := schema.Exec(context.Background(), `{ colors { name rgb } }`, "", nil)
	if len(result.Errors) > 0 {
		t.Fatalf("errors: %v", result.Errors)
	}
	var data struct {
		Colors []struct {
			Name string  `json:"name"`
			RGB  *string `json:"rgb"`
		} `json:"colors"`
	}
	if err := json.Unmarshal(result.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(data.Colors) != 1 || data.Colors[0].Name != "Red" || data.Colors[0].RGB == nil {
		t.Errorf("colors = %+v", data.Colors)
	}
}
