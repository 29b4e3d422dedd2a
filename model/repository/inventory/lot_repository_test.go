package inventory

import (
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

func lotTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("lot_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&catalogEntity.Part{}, &inventoryEntity.Lot{}, &inventoryEntity.ImportBatch{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestUpsertAdd_InsertThenConflictAdds(t *testing.T) {
	db := lotTestDB(t)
	repo := NewLotRepository(db)

	first := &inventoryEntity.Lot{PartID: 42, ColorID: 7, Condition: "U", Quantity: 5, Notes: "first"}
	if err := repo.UpsertAdd(first); err != nil {
		t.Fatalf("first UpsertAdd: %v", err)
	}
	second := &inventoryEntity.Lot{PartID: 42, ColorID: 7, Condition: "U", Quantity: 3, Notes: "second"}
	if err := repo.UpsertAdd(second); err != nil {
		t.Fatalf("second UpsertAdd: %v", err)
	}

	var lots []inventoryEntity.Lot
	db.Find(&lots)
	if len(lots) != 1 {
		t.Fatalf("len(lots) = %d, want 1", len(lots))
	}
	if lots[0].Quantity != 8 {
		t.Errorf("Quantity = %d, want 8", lots[0].Quantity)
	}
	if lots[0].Notes != "first\nsecond" {
		t.Errorf("Notes = %q, want \"first\\nsecond\"", lots[0].Notes)
	}
}

func TestUpsertAdd_ConflictNotesNullSafety(t *testing.T) {
	db := lotTestDB(t)
	repo := NewLotRepository(db)

	// Existing empty takes the incoming note.
	if err := repo.UpsertAdd(&inventoryEntity.Lot{PartID: 1, ColorID: 1, Condition: "U", Quantity: 1}); err != nil {
		t.Fatalf("UpsertAdd: %v", err)
	}
	if err := repo.UpsertAdd(&inventoryEntity.Lot{PartID: 1, ColorID: 1, Condition: "U", Quantity: 1, Notes: "note"}); err != nil {
		t.Fatalf("UpsertAdd: %v", err)
	}
	// Incoming empty keeps the existing note.
	if err := repo.UpsertAdd(&inventoryEntity.Lot{PartID: 1, ColorID: 1, Condition: "U", Quantity: 1}); err != nil {
		t.Fatalf("UpsertAdd: %v", err)
	}

	var lot inventoryEntity.Lot
	db.Where("part_id = ?", 1).First(&lot)
	if lot.Notes != "note" {
		t.Errorf("Notes = %q, want %q", lot.Notes, "note")
	}
	if lot.Quantity != 3 {
		t.Errorf("Quantity = %d, want 3", lot.Quantity)
	}
}

func TestUpsertAdd_DifferentConditionsStaySeparate(t *testing.T) {
	db := lotTestDB(t)
	repo := NewLotRepository(db)

	if err := repo.UpsertAdd(&inventoryEntity.Lot{PartID: 42, ColorID: 7, Condition: "N", Quantity: 2}); err != nil {
		t.Fatalf("UpsertAdd N: %v", err)
	}
	if err := repo.UpsertAdd(&inventoryEntity.Lot{PartID: 42, ColorID: 7, Condition: "U", Quantity: 2}); err != nil {
		t.Fatalf("UpsertAdd U: %v", err)
	}

	var count int64
	db.Model(&inventoryEntity.Lot{}).Count(&count)
	if count != 2 {
		t.Errorf("lot count = %d, want 2", count)
	}
}

func TestAddInPlace(t *testing.T) {
	db := lotTestDB(t)
	repo := NewLotRepository(db)

	lot := &inventoryEntity.Lot{PartID: 42, ColorID: 7, Condition: "U", Quantity: 5, Notes: "a"}
	if err := db.Create(lot).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.AddInPlace(lot, 3, "b"); err != nil {
		t.Fatalf("AddInPlace: %v", err)
	}

	var stored inventoryEntity.Lot
	db.First(&stored, lot.LotID)
	if stored.Quantity != 8 || stored.Notes != "a\nb" {
		t.Errorf("stored = qty %d notes %q", stored.Quantity, stored.Notes)
	}
}

func TestJoinNotes(t *testing.T) {
	cases := []struct{ existing, incoming, want string }{
		{"", "", ""},
		{"a", "", "a"},
		{"", "b", "b"},
		{"a", "b", "a\nb"},
	}
	for _, c := range cases {
		if got := JoinNotes(c.existing, c.incoming); got != c.want {
			t.Errorf("JoinNotes(%q, %q) = %q, want %q", c.existing, c.incoming, got, c.want)
		}
	}
}

func TestLoadByBusinessKey(t *testing.T) {
	db := lotTestDB(t)
	repo := NewLotRepository(db)

	db.Create(&inventoryEntity.Lot{PartID: 1, ColorID: 2, Condition: "U", Quantity: 4})
	db.Create(&inventoryEntity.Lot{PartID: 1, ColorID: 2, Condition: "N", Quantity: 6})

	byKey, err := repo.LoadByBusinessKey()
	if err != nil {
		t.Fatalf("LoadByBusinessKey: %v", err)
	}
	if len(byKey) != 2 {
		t.Fatalf("len = %d, want 2", len(byKey))
	}
	if lot := byKey[LotKey{PartID: 1, ColorID: 2, Condition: "N"}]; lot == nil || lot.Quantity != 6 {
		t.Errorf("N lot = %+v", lot)
	}
}

func TestList_Filters(t *testing.T) {
	db := lotTestDB(t)
	repo := NewLotRepository(db)

	db.Create(&inventoryEntity.Lot{PartID: 1, ColorID: 2, Condition: "U", Quantity: 1})
	db.Create(&inventoryEntity.Lot{PartID: 1, ColorID: 3, Condition: "U", Quantity: 1})
	db.Create(&inventoryEntity.Lot{PartID: 9, ColorID: 2, Condition: "U", Quantity: 1})

	all, err := repo.List(0, 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("List(0,0) = %d lots, err %v", len(all), err)
	}
	byPart, _ := repo.List(1, 0)
	if len(byPart) != 2 {
		t.Errorf("List(1,0) = %d lots, want 2", len(byPart))
	}
	byBoth, _ := repo.List(1, 3)
	if len(byBoth) != 1 {
		t.Errorf("List(1,3) = %d lots, want 1", len(byBoth))
	}
}

func TestQuantityByShapeKey(t *testing.T) {
	db := lotTestDB(t)
	repo := NewLotRepository(db)

	part := catalogEntity.Part{ShapeKey: "3001", Name: "Brick 2 x 4"}
	if err := db.Create(&part).Error; err != nil {
		t.Fatalf("create part: %v", err)
	}
	db.Create(&inventoryEntity.Lot{PartID: part.PartID, ColorID: 7, Condition: "N", Quantity: 5})
	db.Create(&inventoryEntity.Lot{PartID: part.PartID, ColorID: 7, Condition: "U", Quantity: 3})
	db.Create(&inventoryEntity.Lot{PartID: part.PartID, ColorID: 9, Condition: "U", Quantity: 2})

	newQty, usedQty, err := repo.QuantityByShapeKey("3001", 0)
	if err != nil {
		t.Fatalf("QuantityByShapeKey: %v", err)
	}
	if newQty != 5 || usedQty != 5 {
		t.Errorf("all colors = %d new / %d used, want 5/5", newQty, usedQty)
	}

	newQty, usedQty, err = repo.QuantityByShapeKey("3001", 7)
	if err != nil {
		t.Fatalf("QuantityByShapeKey: %v", err)
	}
	if newQty != 5 || usedQty != 3 {
		t.Errorf("color 7 = %d new / %d used, want 5/3", newQty, usedQty)
	}

	newQty, usedQty, err = repo.QuantityByShapeKey("nope", 0)
	if err != nil || newQty != 0 || usedQty != 0 {
		t.Errorf("missing part = %d/%d err %v, want 0/0 nil", newQty, usedQty, err)
	}
}

func TestTotalPieces(t *testing.T) {
	db := lotTestDB(t)
	repo := NewLotRepository(db)

	if total, err := repo.TotalPieces(); err != nil || total != 0 {
		t.Errorf("empty TotalPieces = %d, %v", total, err)
	}
	db.Create(&inventoryEntity.Lot{PartID: 1, ColorID: 1, Condition: "U", Quantity: 4})
	db.Create(&inventoryEntity.Lot{PartID: 2, ColorID: 1, Condition: "U", Quantity: 6})
	if total, err := repo.TotalPieces(); err != nil || total != 10 {
		t.Errorf("TotalPieces = %d, %v, want 10", total, err)
	}
}

func TestBatchRepository_CreateFinalizeList(t *testing.T) {
	db := lotTestDB(t)
	repo := NewBatchRepository(db)

	name := "export.bsx"
	batch, err := repo.Create("vendorxml", &name)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if batch.BatchID == 0 {
		t.Fatal("BatchID not assigned")
	}

	meta := map[string]interface{}{"unmapped_items": []string{"9999"}}
	if err := repo.Finalize(batch, 3, 17, meta); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	stored, err := repo.FindByID(batch.BatchID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored.LotCount != 3 || stored.PieceCount != 17 {
		t.Errorf("counters = %d/%d, want 3/17", stored.LotCount, stored.PieceCount)
	}
	if len(stored.Meta) == 0 {
		t.Error("Meta not stored")
	}

	repo.Create("catalog", nil)
	list, err := repo.List(10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Source != "catalog" {
		t.Errorf("List = %+v, want newest first", list)
	}
}
