package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"liftakids-api/config"
)

func intPtr(v int) *int { return &v }

func TestValidateAreaChainRejectsChildWithoutParent(t *testing.T) {
	cases := []struct {
		name string
		sel  AreaSelection
	}{
		{name: "district without division", sel: AreaSelection{DistrictID: intPtr(10)}},
		{name: "thana without district", sel: AreaSelection{DivisionID: intPtr(1), ThanaID: intPtr(100)}},
		{name: "union without thana", sel: AreaSelection{UnionID: intPtr(1000)}},
	}

	for _, tc := range cases {
		if err := ValidateAreaChain(tc.sel); !errors.Is(err, ErrAreaChainMismatch) {
			t.Fatalf("%s: expected ErrAreaChainMismatch, got %v", tc.name, err)
		}
	}
}

func TestValidateAreaChainRejectsWrongParent(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .*districts.*district_id = \? AND delete_at IS NULL`),
			args:    []driver.Value{int64(10)},
			columns: []string{"district_id", "division_id", "name"},
			rows: [][]driver.Value{
				{int64(10), int64(2), "Gazipur"},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	prev := config.DB
	config.DB = db
	defer func() { config.DB = prev }()

	sel := AreaSelection{DivisionID: intPtr(1), DistrictID: intPtr(10)}
	if err := ValidateAreaChain(sel); !errors.Is(err, ErrAreaChainMismatch) {
		t.Fatalf("expected ErrAreaChainMismatch, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestValidateAreaChainAcceptsFullChain(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .*districts.*district_id = \?`),
			args:    []driver.Value{int64(10)},
			columns: []string{"district_id", "division_id"},
			rows:    [][]driver.Value{{int64(10), int64(1)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .*thanas.*thana_id = \?`),
			args:    []driver.Value{int64(100)},
			columns: []string{"thana_id", "district_id"},
			rows:    [][]driver.Value{{int64(100), int64(10)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .*unions.*union_id = \?`),
			args:    []driver.Value{int64(1000)},
			columns: []string{"union_id", "thana_id"},
			rows:    [][]driver.Value{{int64(1000), int64(100)}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	prev := config.DB
	config.DB = db
	defer func() { config.DB = prev }()

	sel := AreaSelection{
		DivisionID: intPtr(1),
		DistrictID: intPtr(10),
		ThanaID:    intPtr(100),
		UnionID:    intPtr(1000),
	}
	if err := ValidateAreaChain(sel); err != nil {
		t.Fatalf("expected valid chain, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestGetDistrictsLoadsDirectlyWithoutRedis(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .*districts.*division_id = \? AND delete_at IS NULL.*ORDER BY name ASC`),
			args:    []driver.Value{int64(1)},
			columns: []string{"district_id", "division_id", "name"},
			rows: [][]driver.Value{
				{int64(10), int64(1), "Gazipur"},
				{int64(11), int64(1), "Narsingdi"},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	prevDB := config.DB
	prevRDB := config.RDB
	config.DB = db
	config.RDB = nil
	defer func() {
		config.DB = prevDB
		config.RDB = prevRDB
	}()

	districts, err := GetDistricts(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetDistricts returned error: %v", err)
	}
	if len(districts) != 2 || districts[0].Name != "Gazipur" {
		t.Fatalf("unexpected districts: %+v", districts)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
