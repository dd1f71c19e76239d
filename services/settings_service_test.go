package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/padhaihub/padhai_backend/models"
)

func TestValidatePercentages(t *testing.T) {
	valid := func(co, dc, tl, fe float64) models.CommissionPercentages {
		return models.CommissionPercentages{
			Coordinator:         co,
			DistrictCoordinator: dc,
			TeamLeader:          tl,
			FieldEmployee:       fe,
		}
	}

	t.Run("defaults pass", func(t *testing.T) {
		assert.NoError(t, ValidatePercentages(models.DefaultCommissionSettings))
	})

	t.Run("boundaries pass", func(t *testing.T) {
		assert.NoError(t, ValidatePercentages(valid(0, 0, 0, 0)))
		assert.NoError(t, ValidatePercentages(valid(100, 100, 100, 100)))
	})

	t.Run("sum above 100 is allowed", func(t *testing.T) {
		// Each role's cut is independent; only per-field bounds are enforced
		assert.NoError(t, ValidatePercentages(valid(60, 60, 60, 60)))
	})

	t.Run("negative rejected", func(t *testing.T) {
		err := ValidatePercentages(valid(40, -1, 10, 10))
		assert.ErrorIs(t, err, ErrInvalidPercentage)
	})

	t.Run("above 100 rejected", func(t *testing.T) {
		err := ValidatePercentages(valid(100.01, 10, 10, 10))
		assert.ErrorIs(t, err, ErrInvalidPercentage)
	})

	t.Run("NaN rejected", func(t *testing.T) {
		err := ValidatePercentages(valid(math.NaN(), 10, 10, 10))
		assert.ErrorIs(t, err, ErrInvalidPercentage)
	})

	t.Run("infinity rejected", func(t *testing.T) {
		err := ValidatePercentages(valid(40, 10, math.Inf(1), 10))
		assert.ErrorIs(t, err, ErrInvalidPercentage)
	})
}
