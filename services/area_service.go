package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"liftakids-api/config"
	"liftakids-api/models"
)

const areaCacheTTL = 10 * time.Minute

var ErrAreaChainMismatch = errors.New("selected area does not belong to its parent")

// AreaSelection is the 4-level location choice carried by institutions and
// filter queries. A child without its parent is meaningless, so validation
// walks the chain top-down.
type AreaSelection struct {
	DivisionID *int
	DistrictID *int
	ThanaID    *int
	UnionID    *int
}

// ValidateAreaChain verifies each selected level belongs to the level above
// it. Selecting a child while its parent is empty, or under a different
// parent, fails.
func ValidateAreaChain(sel AreaSelection) error {
	if sel.DistrictID != nil {
		if sel.DivisionID == nil {
			return ErrAreaChainMismatch
		}
		var district models.District
		if err := config.DB.Where("district_id = ? AND delete_at IS NULL", *sel.DistrictID).
			First(&district).Error; err != nil {
			return fmt.Errorf("district %d: %w", *sel.DistrictID, err)
		}
		if district.DivisionID != *sel.DivisionID {
			return ErrAreaChainMismatch
		}
	}

	if sel.ThanaID != nil {
		if sel.DistrictID == nil {
			return ErrAreaChainMismatch
		}
		var thana models.Thana
		if err := config.DB.Where("thana_id = ? AND delete_at IS NULL", *sel.ThanaID).
			First(&thana).Error; err != nil {
			return fmt.Errorf("thana %d: %w", *sel.ThanaID, err)
		}
		if thana.DistrictID != *sel.DistrictID {
			return ErrAreaChainMismatch
		}
	}

	if sel.UnionID != nil {
		if sel.ThanaID == nil {
			return ErrAreaChainMismatch
		}
		var union models.Union
		if err := config.DB.Where("union_id = ? AND delete_at IS NULL", *sel.UnionID).
			First(&union).Error; err != nil {
			return fmt.Errorf("union %d: %w", *sel.UnionID, err)
		}
		if union.ThanaID != *sel.ThanaID {
			return ErrAreaChainMismatch
		}
	}

	return nil
}

// cachedAreaList reads a child list through redis when available. With no
// redis client the loader runs directly.
func cachedAreaList[T any](ctx context.Context, key string, load func() ([]T, error)) ([]T, error) {
	if config.RDB == nil {
		return load()
	}

	var cached []T
	raw, err := config.RDB.Get(ctx, key).Result()
	if err == nil {
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
	}

	list, err := load()
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(list); err == nil {
		if err := config.RDB.Set(ctx, key, raw, areaCacheTTL).Err(); err != nil {
			log.Printf("failed to cache %s: %v", key, err)
		}
	}
	return list, nil
}

// InvalidateAreaCache drops the cached child list for a parent after admin
// edits.
func InvalidateAreaCache(ctx context.Context, keys ...string) {
	if config.RDB == nil || len(keys) == 0 {
		return
	}
	if err := config.RDB.Del(ctx, keys...).Err(); err != nil {
		log.Printf("failed to invalidate area cache: %v", err)
	}
}

// GetDivisions lists all divisions.
func GetDivisions(ctx context.Context) ([]models.Division, error) {
	return cachedAreaList(ctx, "areas:divisions", func() ([]models.Division, error) {
		var divisions []models.Division
		err := config.DB.Where("delete_at IS NULL").Order("name ASC").Find(&divisions).Error
		return divisions, err
	})
}

// GetDistricts lists the districts of one division.
func GetDistricts(ctx context.Context, divisionID int) ([]models.District, error) {
	key := fmt.Sprintf("areas:districts:%d", divisionID)
	return cachedAreaList(ctx, key, func() ([]models.District, error) {
		var districts []models.District
		err := config.DB.Where("division_id = ? AND delete_at IS NULL", divisionID).
			Order("name ASC").Find(&districts).Error
		return districts, err
	})
}

// GetThanas lists the thanas of one district.
func GetThanas(ctx context.Context, districtID int) ([]models.Thana, error) {
	key := fmt.Sprintf("areas:thanas:%d", districtID)
	return cachedAreaList(ctx, key, func() ([]models.Thana, error) {
		var thanas []models.Thana
		err := config.DB.Where("district_id = ? AND delete_at IS NULL", districtID).
			Order("name ASC").Find(&thanas).Error
		return thanas, err
	})
}

// GetUnions lists the unions of one thana.
func GetUnions(ctx context.Context, thanaID int) ([]models.Union, error) {
	key := fmt.Sprintf("areas:unions:%d", thanaID)
	return cachedAreaList(ctx, key, func() ([]models.Union, error) {
		var unions []models.Union
		err := config.DB.Where("thana_id = ? AND delete_at IS NULL", thanaID).
			Order("name ASC").Find(&unions).Error
		return unions, err
	})
}
