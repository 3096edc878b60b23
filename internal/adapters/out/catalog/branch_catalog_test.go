package catalog_test

import (
	"testing"

	"checkout/internal/adapters/out/catalog"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultBranchCatalog(t *testing.T) {
	ctx := t.Context()

	branchCatalog, err := catalog.NewDefaultBranchCatalog()
	require.NoError(t, err)

	branches, err := branchCatalog.All(ctx)
	require.NoError(t, err)
	require.Len(t, branches, 3)

	for _, branch := range branches {
		assert.NotEmpty(t, branch.Name())
		assert.NotEmpty(t, branch.PickupEstimate())
	}
}

func TestStaticBranchCatalog_Get(t *testing.T) {
	ctx := t.Context()

	branchCatalog, err := catalog.NewDefaultBranchCatalog()
	require.NoError(t, err)

	branches, err := branchCatalog.All(ctx)
	require.NoError(t, err)

	found, err := branchCatalog.Get(ctx, branches[0].ID())
	require.NoError(t, err)
	assert.Equal(t, branches[0].Name(), found.Name())
}

func TestStaticBranchCatalog_Get_Unknown(t *testing.T) {
	branchCatalog, err := catalog.NewDefaultBranchCatalog()
	require.NoError(t, err)

	_, err = branchCatalog.Get(t.Context(), kernel.NewUUID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
