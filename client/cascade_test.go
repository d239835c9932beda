package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func areaServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	writeData := func(w http.ResponseWriter, data interface{}) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data})
	}

	mux.HandleFunc("/api/v1/divisions", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []Division{
			{DivisionID: 1, Name: "Dhaka"},
			{DivisionID: 2, Name: "Chattogram"},
		})
	})
	mux.HandleFunc("/api/v1/districts", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("division_id") {
		case "1":
			writeData(w, []District{{DistrictID: 10, DivisionID: 1, Name: "Gazipur"}})
		case "2":
			writeData(w, []District{{DistrictID: 20, DivisionID: 2, Name: "Cox's Bazar"}})
		default:
			writeData(w, []District{})
		}
	})
	mux.HandleFunc("/api/v1/thanas", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []Thana{{ThanaID: 100, DistrictID: 10, Name: "Sreepur"}})
	})
	mux.HandleFunc("/api/v1/unions", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []Union{{UnionID: 1000, ThanaID: 100, Name: "Barmi"}})
	})

	return httptest.NewServer(mux)
}

func TestAreaCascadeLoadsChildrenPerSelection(t *testing.T) {
	server := areaServer(t)
	defer server.Close()

	cascade := NewAreaCascade(New(server.URL))
	ctx := context.Background()

	if err := cascade.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cascade.Divisions) != 2 {
		t.Fatalf("expected 2 divisions, got %d", len(cascade.Divisions))
	}
	if len(cascade.Districts) != 0 {
		t.Fatalf("districts must stay empty until a division is chosen")
	}

	if err := cascade.SelectDivision(ctx, 1); err != nil {
		t.Fatalf("SelectDivision failed: %v", err)
	}
	if len(cascade.Districts) != 1 || cascade.Districts[0].DistrictID != 10 {
		t.Fatalf("unexpected districts: %v", cascade.Districts)
	}

	if err := cascade.SelectDistrict(ctx, 10); err != nil {
		t.Fatalf("SelectDistrict failed: %v", err)
	}
	if err := cascade.SelectThana(ctx, 100); err != nil {
		t.Fatalf("SelectThana failed: %v", err)
	}
	cascade.SelectUnion(1000)

	if cascade.SelectedUnion == nil || *cascade.SelectedUnion != 1000 {
		t.Fatalf("expected union 1000 selected, got %v", cascade.SelectedUnion)
	}
}

func TestAreaCascadeReselectingDivisionResetsDescendants(t *testing.T) {
	server := areaServer(t)
	defer server.Close()

	cascade := NewAreaCascade(New(server.URL))
	ctx := context.Background()

	if err := cascade.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := cascade.SelectDivision(ctx, 1); err != nil {
		t.Fatalf("SelectDivision failed: %v", err)
	}
	if err := cascade.SelectDistrict(ctx, 10); err != nil {
		t.Fatalf("SelectDistrict failed: %v", err)
	}
	if err := cascade.SelectThana(ctx, 100); err != nil {
		t.Fatalf("SelectThana failed: %v", err)
	}
	cascade.SelectUnion(1000)

	// Changing the division invalidates everything below it.
	if err := cascade.SelectDivision(ctx, 2); err != nil {
		t.Fatalf("SelectDivision failed: %v", err)
	}

	if cascade.SelectedDistrict != nil || cascade.SelectedThana != nil || cascade.SelectedUnion != nil {
		t.Fatalf("descendant selections must clear, got district=%v thana=%v union=%v",
			cascade.SelectedDistrict, cascade.SelectedThana, cascade.SelectedUnion)
	}
	if len(cascade.Thanas) != 0 || len(cascade.Unions) != 0 {
		t.Fatalf("descendant option lists must clear")
	}
	if len(cascade.Districts) != 1 || cascade.Districts[0].DistrictID != 20 {
		t.Fatalf("expected the new division's districts, got %v", cascade.Districts)
	}
}

func TestAreaCascadeIgnoresChildSelectionWithoutParent(t *testing.T) {
	server := areaServer(t)
	defer server.Close()

	cascade := NewAreaCascade(New(server.URL))
	ctx := context.Background()

	if err := cascade.SelectDistrict(ctx, 10); err != nil {
		t.Fatalf("SelectDistrict failed: %v", err)
	}
	if cascade.SelectedDistrict != nil {
		t.Fatalf("district selection without a division must be ignored")
	}

	cascade.SelectUnion(1000)
	if cascade.SelectedUnion != nil {
		t.Fatalf("union selection without a thana must be ignored")
	}
}
