package cart

import "github.com/ecomsuite/storefront-client/internal/domain/money"

// RemoteItem is a bare line item as held in the server-side cart mirror.
// It carries no display fields; hydration resolves those from the catalog.
type RemoteItem struct {
	ProductID int64       `json:"product_id"`
	Quantity  int         `json:"quantity"`
	UnitPrice money.Cents `json:"price"`
}

// MergePlan is the outcome of the pure merge pass over local and remote carts.
// Kept holds resolved items; Pending holds remote-only lines that need product
// hydration before they can join the merged cart.
type MergePlan struct {
	Kept    []Item
	Pending []RemoteItem
}

// NeedsHydration reports whether any remote-only lines await product lookup.
func (p MergePlan) NeedsHydration() bool { return len(p.Pending) > 0 }

// PendingIDs returns the product ids awaiting hydration, in plan order.
func (p MergePlan) PendingIDs() []int64 {
	ids := make([]int64, len(p.Pending))
	for i, r := range p.Pending {
		ids[i] = r.ProductID
	}
	return ids
}

// PlanMerge computes the union of local and remote carts.
//
// A product present in both keeps the local line's display fields with
// quantity max(local, remote) — never the sum, which would double-count
// re-adds across devices. Local-only lines are kept as-is. Remote-only lines
// become Pending. Local items come first in local order, then remote-only
// lines in remote order.
func PlanMerge(local []Item, remote []RemoteItem) MergePlan {
	remoteByID := make(map[int64]RemoteItem, len(remote))
	for _, r := range remote {
		remoteByID[r.ProductID] = r
	}

	var plan MergePlan
	seen := make(map[int64]struct{}, len(local))
	for _, it := range local {
		if _, dup := seen[it.ProductID]; dup {
			continue
		}
		seen[it.ProductID] = struct{}{}

		if r, ok := remoteByID[it.ProductID]; ok && r.Quantity > it.Quantity {
			it.Quantity = clampQuantity(r.Quantity, it.Stock)
		}
		plan.Kept = append(plan.Kept, it)
	}

	for _, r := range remote {
		if _, ok := seen[r.ProductID]; ok {
			continue
		}
		seen[r.ProductID] = struct{}{}
		plan.Pending = append(plan.Pending, r)
	}

	return plan
}

// Resolve combines the kept items with hydrated versions of the pending
// lines. Hydrated items are matched by product id; a pending line with no
// hydrated counterpart was deleted upstream and is dropped silently.
// Hydrated quantities are clamped to the product's stock ceiling.
func (p MergePlan) Resolve(hydrated []Item) []Item {
	byID := make(map[int64]Item, len(hydrated))
	for _, it := range hydrated {
		byID[it.ProductID] = it
	}

	merged := make([]Item, 0, len(p.Kept)+len(p.Pending))
	merged = append(merged, p.Kept...)
	for _, r := range p.Pending {
		it, ok := byID[r.ProductID]
		if !ok {
			continue
		}
		it.ProductID = r.ProductID
		it.Quantity = clampQuantity(r.Quantity, it.Stock)
		if it.Quantity == 0 {
			continue
		}
		merged = append(merged, it)
	}
	return merged
}
