package seed

import (
	"context"
	"testing"

	"food-donation-tracker/pkg/organization"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := organization.NewMemoryOrganizationRepository()

	added, err := Seed(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, 5, added)

	added, err = Seed(ctx, repo)
	require.NoError(t, err)
	assert.Zero(t, added)

	orgs, err := repo.GetOrganizations(ctx)
	require.NoError(t, err)
	require.Len(t, orgs, 5)
	assert.Equal(t, "Hope Community Center", orgs[0].Name)
	assert.Equal(t, OrganizationID("Hope Community Center"), orgs[0].ID)
	assert.Equal(t, "Produce, Dairy, Bread", orgs[0].Needs)
}

func TestOrganizationIDIsStable(t *testing.T) {
	assert.Equal(t, OrganizationID("Food For All"), OrganizationID("Food For All"))
	assert.NotEqual(t, OrganizationID("Food For All"), OrganizationID("City Food Bank"))
}
