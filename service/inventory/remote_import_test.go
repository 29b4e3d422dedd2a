package inventory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogEntity "brickstock.GO/model/entity/catalog"
	inventoryEntity "brickstock.GO/model/entity/inventory"
	"brickstock.GO/service/catalogapi"
)

func catalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/sets/10179-1/parts/":
			fmt.Fprint(w, `{"results": [
				{"part": {"part_num": "3001", "name": "Brick 2 x 4", "part_img_url": "http://img/3001.png"}, "color": {"id": 4, "name": "Red", "rgb": "C91A09"}, "quantity": 4},
				{"part": {"part_num": "3001", "name": "Brick 2 x 4"}, "color": {"id": 15, "name": "White", "rgb": "FFFFFF"}, "quantity": 2}
			], "next": null}`)
		case "/sets/10179-1/minifigs/":
			fmt.Fprint(w, `{"results": [{"set_num": "fig-001234", "set_name": "Pilot", "quantity": 1}], "next": null}`)
		case "/minifigs/fig-001234/":
			fmt.Fprint(w, `{"design_id": "pilot001", "minifig_img_url": "http://img/pilot.png"}`)
		case "/sets/0000-1/parts/", "/sets/0000-1/minifigs/":
			fmt.Fprint(w, `{"results": [], "next": null}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestImportRemoteSet(t *testing.T) {
	db := importDB(t)
	srv := catalogServer(t)
	client := catalogapi.NewClient(srv.URL, "")

	summary, err := ImportRemoteSet(context.Background(), db, client, "10179-1", ModeAdd, "N")
	if err != nil {
		t.Fatalf("ImportRemoteSet: %v", err)
	}
	if summary.TotalLots != 3 || summary.TotalPieces != 7 {
		t.Errorf("totals = %d/%d, want 3/7", summary.TotalLots, summary.TotalPieces)
	}
	if summary.MappedLots != 3 || summary.UnmappedLots != 0 {
		t.Errorf("mapped/unmapped = %d/%d, want 3/0 (remote items arrive canonical)", summary.MappedLots, summary.UnmappedLots)
	}

	// Parts and colors were canonicalized.
	var part catalogEntity.Part
	if err := db.Where("shape_key = ?", "3001").First(&part).Error; err != nil {
		t.Fatalf("part 3001 missing: %v", err)
	}
	if part.Name != "Brick 2 x 4" || part.ImageURL != "http://img/3001.png" {
		t.Errorf("part = %+v", part)
	}

	var colors []catalogEntity.Color
	db.Order("name").Find(&colors)
	names := make([]string, 0, len(colors))
	for _, c := range colors {
		names = append(names, c.Name)
	}
	want := []string{"(Not Applicable)", "Red", "White"}
	if len(names) != 3 || names[0] != want[0] || names[1] != want[1] || names[2] != want[2] {
		t.Errorf("color names = %v, want %v", names, want)
	}

	// Minifig became a flagged part under its detail design id.
	var fig catalogEntity.Part
	if err := db.Where("shape_key = ?", "pilot001").First(&fig).Error; err != nil {
		t.Fatalf("minifig part missing: %v", err)
	}
	if !fig.IsMinifigPart || fig.Name != "Pilot" {
		t.Errorf("fig = %+v", fig)
	}

	// Every lot carries the requested condition.
	var lots []inventoryEntity.Lot
	db.Find(&lots)
	if len(lots) != 3 {
		t.Fatalf("len(lots) = %d, want 3", len(lots))
	}
	for _, lot := range lots {
		if lot.Condition != inventoryEntity.ConditionNew {
			t.Errorf("lot %d condition = %q, want N", lot.LotID, lot.Condition)
		}
	}

	var batch inventoryEntity.ImportBatch
	if err := db.First(&batch, summary.BatchID).Error; err != nil {
		t.Fatalf("load batch: %v", err)
	}
	if batch.Source != "catalog" || batch.FileName == nil || *batch.FileName != "set:10179-1" {
		t.Errorf("batch = %+v", batch)
	}
}

func TestImportRemoteSet_EmptySet(t *testing.T) {
	db := importDB(t)
	srv := catalogServer(t)
	client := catalogapi.NewClient(srv.URL, "")

	_, err := ImportRemoteSet(context.Background(), db, client, "0000-1", ModeAdd, "")
	if !errors.Is(err, ErrNoLineItems) {
		t.Fatalf("err = %v, want ErrNoLineItems", err)
	}
}

func TestImportRemoteSet_FetchFailureAborts(t *testing.T) {
	db := importDB(t)
	srv := catalogServer(t)
	client := catalogapi.NewClient(srv.URL, "")

	// Unknown set: the parts endpoint 404s, which is a hard failure here.
	if _, err := ImportRemoteSet(context.Background(), db, client, "nope-1", ModeAdd, ""); err == nil {
		t.Fatal("want error when the primary fetch fails")
	}
	var count int64
	db.Model(&inventoryEntity.ImportBatch{}).Count(&count)
	if count != 0 {
		t.Errorf("batch count = %d, want 0", count)
	}
}
