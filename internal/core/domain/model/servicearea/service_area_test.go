package servicearea_test

import (
	"testing"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/servicearea"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceArea(t *testing.T) {
	zip, err := kernel.NewZipCode("10001")
	require.NoError(t, err)

	t.Run("should create valid service area", func(t *testing.T) {
		area, err := servicearea.NewServiceArea(zip, true, false, true, true)

		require.NoError(t, err)
		require.NoError(t, area.Validate())
		assert.True(t, area.Zip().IsEqual(zip))
		assert.True(t, area.AllowsDelivery())
		assert.False(t, area.AllowsLocker())
		assert.True(t, area.AllowsExpress())
		assert.True(t, area.IsActive())
	})

	t.Run("should fail with invalid zip code", func(t *testing.T) {
		var invalidZip kernel.ZipCode

		area, err := servicearea.NewServiceArea(invalidZip, true, true, true, true)

		require.Error(t, err)
		assert.Nil(t, area)
	})
}

func TestServiceArea_Validate(t *testing.T) {
	t.Run("should fail validation for nil service area", func(t *testing.T) {
		var area *servicearea.ServiceArea

		err := area.Validate()

		require.Error(t, err)
		assert.Equal(t, servicearea.ErrServiceAreaIsNotConstructed, err)
	})

	t.Run("should fail validation for zero value service area", func(t *testing.T) {
		var area servicearea.ServiceArea

		err := area.Validate()

		require.Error(t, err)
		assert.Equal(t, servicearea.ErrServiceAreaIsNotConstructed, err)
	})
}
