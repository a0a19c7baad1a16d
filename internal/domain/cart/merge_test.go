package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomsuite/storefront-client/internal/domain/money"
)

func TestPlanMerge_PresentInBothTakesMax(t *testing.T) {
	local := []Item{{ProductID: 1, Name: "Shirt", UnitPrice: 1999, Quantity: 2, Stock: 5}}
	remote := []RemoteItem{{ProductID: 1, Quantity: 1, UnitPrice: 1899}}

	plan := PlanMerge(local, remote)

	require.Len(t, plan.Kept, 1)
	assert.Empty(t, plan.Pending)
	assert.Equal(t, 2, plan.Kept[0].Quantity, "max(2,1), never the sum")
	assert.Equal(t, money.Cents(1999), plan.Kept[0].UnitPrice, "local display fields win")
}

func TestPlanMerge_RemoteQuantityWinsWhenLarger(t *testing.T) {
	local := []Item{{ProductID: 1, Quantity: 1, Stock: 5}}
	remote := []RemoteItem{{ProductID: 1, Quantity: 4}}

	plan := PlanMerge(local, remote)

	require.Len(t, plan.Kept, 1)
	assert.Equal(t, 4, plan.Kept[0].Quantity)
}

func TestPlanMerge_RemoteQuantityClampedToLocalStock(t *testing.T) {
	local := []Item{{ProductID: 1, Quantity: 1, Stock: 3}}
	remote := []RemoteItem{{ProductID: 1, Quantity: 10}}

	plan := PlanMerge(local, remote)

	require.Len(t, plan.Kept, 1)
	assert.Equal(t, 3, plan.Kept[0].Quantity)
}

func TestPlanMerge_LocalOnlyKept(t *testing.T) {
	local := []Item{{ProductID: 1, Quantity: 2, Stock: 5}}

	plan := PlanMerge(local, nil)

	require.Len(t, plan.Kept, 1)
	assert.Empty(t, plan.Pending)
	assert.False(t, plan.NeedsHydration())
}

func TestPlanMerge_RemoteOnlyPending(t *testing.T) {
	remote := []RemoteItem{{ProductID: 2, Quantity: 3, UnitPrice: 750}}

	plan := PlanMerge(nil, remote)

	assert.Empty(t, plan.Kept)
	require.Len(t, plan.Pending, 1)
	assert.True(t, plan.NeedsHydration())
	assert.Equal(t, []int64{2}, plan.PendingIDs())
}

// The merge scenario from the reconciliation design: local [{1,qty2}],
// remote [{1,qty1},{2,qty3}] must yield item 1 at qty 2 and item 2 at qty 3.
func TestPlanMerge_UnionScenario(t *testing.T) {
	local := []Item{{ProductID: 1, Name: "Shirt", Quantity: 2, Stock: 5}}
	remote := []RemoteItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 3},
	}

	plan := PlanMerge(local, remote)

	require.Len(t, plan.Kept, 1)
	assert.Equal(t, 2, plan.Kept[0].Quantity)
	require.Len(t, plan.Pending, 1)
	assert.Equal(t, int64(2), plan.Pending[0].ProductID)

	merged := plan.Resolve([]Item{{ProductID: 2, Name: "Mug", UnitPrice: 750, Stock: 10}})

	require.Len(t, merged, 2)
	assert.Equal(t, int64(1), merged[0].ProductID)
	assert.Equal(t, 2, merged[0].Quantity)
	assert.Equal(t, int64(2), merged[1].ProductID)
	assert.Equal(t, 3, merged[1].Quantity)
}

func TestResolve_DropsUnhydratedSilently(t *testing.T) {
	plan := PlanMerge(nil, []RemoteItem{{ProductID: 5, Quantity: 1}})

	merged := plan.Resolve(nil)

	assert.Empty(t, merged, "deleted product dropped from the merge result")
}

func TestResolve_ClampsHydratedQuantityToStock(t *testing.T) {
	plan := PlanMerge(nil, []RemoteItem{{ProductID: 3, Quantity: 9}})

	merged := plan.Resolve([]Item{{ProductID: 3, Name: "Hat", Stock: 4}})

	require.Len(t, merged, 1)
	assert.Equal(t, 4, merged[0].Quantity)
}

func TestResolve_DropsHydratedOutOfStock(t *testing.T) {
	plan := PlanMerge(nil, []RemoteItem{{ProductID: 3, Quantity: 2}})

	merged := plan.Resolve([]Item{{ProductID: 3, Name: "Hat", Stock: 0}})

	assert.Empty(t, merged)
}

func TestPlanMerge_Idempotent(t *testing.T) {
	local := []Item{
		{ProductID: 1, Name: "Shirt", Quantity: 2, Stock: 5},
		{ProductID: 2, Name: "Mug", Quantity: 3, Stock: 10},
	}
	remote := []RemoteItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 3},
	}

	first := PlanMerge(local, remote).Resolve(nil)

	// Re-running the merge over its own output changes nothing.
	secondRemote := make([]RemoteItem, len(first))
	for i, it := range first {
		secondRemote[i] = RemoteItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	second := PlanMerge(first, secondRemote).Resolve(nil)

	assert.Equal(t, first, second)
}

func TestPlanMerge_OrderIsStable(t *testing.T) {
	local := []Item{
		{ProductID: 3, Quantity: 1, Stock: 5},
		{ProductID: 1, Quantity: 1, Stock: 5},
	}
	remote := []RemoteItem{
		{ProductID: 9, Quantity: 1},
		{ProductID: 1, Quantity: 1},
		{ProductID: 7, Quantity: 1},
	}

	plan := PlanMerge(local, remote)

	assert.Equal(t, int64(3), plan.Kept[0].ProductID)
	assert.Equal(t, int64(1), plan.Kept[1].ProductID)
	assert.Equal(t, []int64{9, 7}, plan.PendingIDs())
}
