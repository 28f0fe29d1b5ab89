package queries_test

import (
	"testing"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/application/usecases/queries"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetUnclaimedOrdersQuery_Valid(t *testing.T) {
	query, err := queries.NewGetUnclaimedOrdersQuery(nil)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Nil(t, query.Zip())
}

func TestNewGetUnclaimedOrdersQuery_WithZipFilter(t *testing.T) {
	zip, err := kernel.NewZipCode("94103")
	require.NoError(t, err)

	query, err := queries.NewGetUnclaimedOrdersQuery(&zip)

	require.NoError(t, err)
	require.NotNil(t, query.Zip())
	assert.True(t, query.Zip().IsEqual(zip))
}

func TestNewGetUnclaimedOrdersQuery_InvalidZip(t *testing.T) {
	var invalidZip kernel.ZipCode

	_, err := queries.NewGetUnclaimedOrdersQuery(&invalidZip)

	require.Error(t, err)
}

func TestGetUnclaimedOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetUnclaimedOrdersQuery{}

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetUnclaimedOrdersQueryIsNotConstructed)
}
