package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem(name string, price string) Item {
	return Item{
		ID:    uuid.New(),
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
}

func TestStore_AddItem_MergesByItemID(t *testing.T) {
	ctx := context.Background()
	store := NewStore("buyer-1", NewMemoryRepository())

	item := testItem("Krispy Kreme Dozen", "12.00")

	require.NoError(t, store.AddItem(ctx, "fundraiser-1", item, 2))
	require.NoError(t, store.AddItem(ctx, "fundraiser-1", item, 3))

	items := store.GetCartItems("fundraiser-1")
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].Item.ID)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestStore_AddItem_AppendsDistinctItems(t *testing.T) {
	ctx := context.Background()
	store := NewStore("buyer-1", NewMemoryRepository())

	first := testItem("Donuts", "3.50")
	second := testItem("Hot Chocolate", "2.00")

	require.NoError(t, store.AddItem(ctx, "fundraiser-1", first, 1))
	require.NoError(t, store.AddItem(ctx, "fundraiser-1", second, 4))

	items := store.GetCartItems("fundraiser-1")
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].Item.ID)
	assert.Equal(t, second.ID, items[1].Item.ID)
	assert.Equal(t, 5, store.GetTotalQuantity("fundraiser-1"))
}

func TestStore_AddItem_NonPositiveResultRemovesLine(t *testing.T) {
	ctx := context.Background()
	store := NewStore("buyer-1", NewMemoryRepository())

	item := testItem("Donuts", "3.50")

	require.NoError(t, store.AddItem(ctx, "fundraiser-1", item, 2))
	require.NoError(t, store.AddItem(ctx, "fundraiser-1", item, -2))
	assert.Empty(t, store.GetCartItems("fundraiser-1"))

	// A negative delta past zero must not leave a negative quantity behind.
	require.NoError(t, store.AddItem(ctx, "fundraiser-1", item, 1))
	require.NoError(t, store.AddItem(ctx, "fundraiser-1", item, -5))
	assert.Empty(t, store.GetCartItems("fundraiser-1"))

	// Adding a brand-new item with a non-positive quantity stores nothing.
	require.NoError(t, store.AddItem(ctx, "fundraiser-1", testItem("Stickers", "1.00"), 0))
	assert.Empty(t, store.GetCartItems("fundraiser-1"))
}

func TestStore_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	store := NewStore("buyer-1", NewMemoryRepository())

	item := testItem("Donuts", "3.50")
	require.NoError(t, store.AddItem(ctx, "fundraiser-1", item, 2))

	require.NoError(t, store.UpdateQuantity(ctx, "fundraiser-1", item.ID, 7))
	items := store.GetCartItems("fundraiser-1")
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)

	// Setting the quantity to zero removes the line item entirely.
	require.NoError(t, store.UpdateQuantity(ctx, "fundraiser-1", item.ID, 0))
	for _, li := range store.GetCartItems("fundraiser-1") {
		assert.NotEqual(t, item.ID, li.Item.ID)
	}
	assert.Empty(t, store.GetCartItems("fundraiser-1"))

	// Updating an absent item is a no-op.
	require.NoError(t, store.UpdateQuantity(ctx, "fundraiser-1", uuid.New(), 3))
	assert.Empty(t, store.GetCartItems("fundraiser-1"))
}

func TestStore_RemoveItem(t *testing.T) {
	ctx := context.Background()
	store := NewStore("buyer-1", NewMemoryRepository())

	keep := testItem("Donuts", "3.50")
	remove := testItem("Hot Chocolate", "2.00")

	require.NoError(t, store.AddItem(ctx, "fundraiser-1", keep, 1))
	require.NoError(t, store.AddItem(ctx, "fundraiser-1", remove, 2))

	require.NoError(t, store.RemoveItem(ctx, "fundraiser-1", remove.ID))
	items := store.GetCartItems("fundraiser-1")
	require.Len(t, items, 1)
	assert.Equal(t, keep.ID, items[0].Item.ID)

	// Removing an absent item is a no-op.
	require.NoError(t, store.RemoveItem(ctx, "fundraiser-1", uuid.New()))
	assert.Len(t, store.GetCartItems("fundraiser-1"), 1)
}

func TestStore_ClearCart_LeavesOtherFundraisersUntouched(t *testing.T) {
	ctx := context.Background()
	store := NewStore("buyer-1", NewMemoryRepository())

	item := testItem("Donuts", "3.50")
	other := testItem("T-Shirt", "15.00")

	require.NoError(t, store.AddItem(ctx, "fundraiser-1", item, 2))
	require.NoError(t, store.AddItem(ctx, "fundraiser-2", other, 1))

	before := store.GetCartItems("fundraiser-2")
	require.NoError(t, store.ClearCart(ctx, "fundraiser-1"))

	assert.Empty(t, store.GetCartItems("fundraiser-1"))
	assert.Equal(t, before, store.GetCartItems("fundraiser-2"))
}

func TestStore_ClearAllCarts(t *testing.T) {
	ctx := context.Background()
	store := NewStore("buyer-1", NewMemoryRepository())

	require.NoError(t, store.AddItem(ctx, "fundraiser-1", testItem("Donuts", "3.50"), 2))
	require.NoError(t, store.AddItem(ctx, "fundraiser-2", testItem("T-Shirt", "15.00"), 1))

	require.NoError(t, store.ClearAllCarts(ctx))

	assert.Empty(t, store.GetCartItems("fundraiser-1"))
	assert.Empty(t, store.GetCartItems("fundraiser-2"))
	assert.Empty(t, store.Snapshot().Carts)
}

func TestStore_ReadsOnAbsentFundraiser(t *testing.T) {
	store := NewStore("buyer-1", NewMemoryRepository())

	assert.Empty(t, store.GetCartItems("nope"))
	assert.Zero(t, store.GetTotalQuantity("nope"))
	assert.Empty(t, store.PrepareOrderItems("nope"))
}

func TestStore_PrepareOrderItems(t *testing.T) {
	ctx := context.Background()
	store := NewStore("buyer-1", NewMemoryRepository())

	first := testItem("Donuts", "3.50")
	second := testItem("Hot Chocolate", "2.00")

	require.NoError(t, store.AddItem(ctx, "fundraiser-1", first, 2))
	require.NoError(t, store.AddItem(ctx, "fundraiser-1", second, 1))

	inputs := store.PrepareOrderItems("fundraiser-1")
	require.Len(t, inputs, 2)
	assert.Equal(t, first.ID, inputs[0].ItemID)
	assert.Equal(t, 2, inputs[0].Quantity)
	assert.Equal(t, second.ID, inputs[1].ItemID)
	assert.Equal(t, 1, inputs[1].Quantity)
}

func TestStore_PersistsEveryMutationAndRoundTrips(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	store := NewStore("buyer-1", repo)

	item := testItem("Donuts", "3.50")
	require.NoError(t, store.AddItem(ctx, "fundraiser-1", item, 2))

	// The persisted copy reflects the mutation immediately.
	snap, err := repo.Load(ctx, "buyer-1")
	require.NoError(t, err)
	require.Len(t, snap.Carts["fundraiser-1"], 1)
	assert.Equal(t, 2, snap.Carts["fundraiser-1"][0].Quantity)

	// Reopening the store reproduces an identical map.
	reopened, err := Open(ctx, "buyer-1", repo)
	require.NoError(t, err)
	assert.Equal(t, store.Snapshot(), reopened.Snapshot())

	items := reopened.GetCartItems("fundraiser-1")
	require.Len(t, items, 1)
	assert.True(t, item.Price.Equal(items[0].Item.Price))
}

func TestStore_OpenWithNoSnapshot(t *testing.T) {
	store, err := Open(context.Background(), "fresh-buyer", NewMemoryRepository())
	require.NoError(t, err)
	assert.Empty(t, store.GetCartItems("fundraiser-1"))
}

func TestTotal(t *testing.T) {
	items := []LineItem{
		{Item: Item{ID: uuid.New(), Name: "A", Price: decimal.RequireFromString("3.50")}, Quantity: 2},
		{Item: Item{ID: uuid.New(), Name: "B", Price: decimal.RequireFromString("10.00")}, Quantity: 1},
	}

	assert.Equal(t, "17.00", Total(items).StringFixed(2))
	assert.Equal(t, "7.00", items[0].Subtotal().StringFixed(2))

	// Sums that drift under binary floating point stay exact here.
	drifty := []LineItem{
		{Item: Item{Price: decimal.RequireFromString("0.10")}, Quantity: 3},
	}
	assert.Equal(t, "0.30", Total(drifty).StringFixed(2))

	assert.Equal(t, "0.00", Total(nil).StringFixed(2))
}
