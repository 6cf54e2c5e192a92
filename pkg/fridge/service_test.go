package fridge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carnegieJiang/pocketfridge/domain"
	"github.com/carnegieJiang/pocketfridge/entities"
	"github.com/carnegieJiang/pocketfridge/pkg/dateutil"
)

func newTestService(t *testing.T, today time.Time) (FridgeService, *Store) {
	t.Helper()
	store := NewStore()
	return NewFridgeService(store, dateutil.FixedClock(today)), store
}

var feb6 = time.Date(2026, 2, 6, 10, 30, 0, 0, time.UTC)

func TestIngestGroceryRun(t *testing.T) {
	svc, store := newTestService(t, feb6)
	ctx := context.Background()

	res, err := svc.Ingest(ctx, domain.IngestItemsRequest{
		ImageRef: "img1",
		Items: []domain.ScannedItem{
			{FoodType: "Tomatoes", Quantity: 2, Price: ptrF(3.99), Category: "vegetable", DateAdded: "2026-02-06", DateExpiring: ptrS("2026-02-13")},
			{FoodType: "Milk", Quantity: 1, Price: ptrF(4.50), Category: "dairy", DateAdded: "2026-02-06", DateExpiring: ptrS("2026-02-10")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Applied)
	assert.Zero(t, res.Skipped)
	assert.Equal(t, "2026-02-06", res.ReceiptDate)

	assert.Len(t, store.Snapshot(), 2)
	assert.InDelta(t, 8.49, store.TotalSpending(), 1e-9)

	t.Run("repeat purchase merges and accumulates the receipt", func(t *testing.T) {
		res, err := svc.Ingest(ctx, domain.IngestItemsRequest{
			ImageRef: "img2",
			Items: []domain.ScannedItem{
				{FoodType: "tomatoes", Quantity: 3, Price: ptrF(5.00), Category: "vegetable", DateAdded: "2026-02-06", DateExpiring: ptrS("2026-02-13")},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Applied)

		items := store.Snapshot()
		require.Len(t, items, 2, "merge must not create a third item")

		var tomatoes entities.FridgeItem
		for _, item := range items {
			if item.FoodType == "Tomatoes" {
				tomatoes = item
			}
		}
		assert.Equal(t, 5.0, tomatoes.Quantity)
		require.NotNil(t, tomatoes.Price)
		assert.InDelta(t, 8.99, *tomatoes.Price, 1e-9)

		receipts := store.Receipts()
		require.Len(t, receipts, 1)
		assert.InDelta(t, 13.49, receipts[0].TotalCost, 1e-9)
		assert.Equal(t, 3, receipts[0].ItemCount)
		assert.Equal(t, []string{"img1", "img2"}, receipts[0].ImageRefs)
	})
}

func TestIngestMergesDuplicatesWithinOneBatch(t *testing.T) {
	svc, store := newTestService(t, feb6)

	res, err := svc.Ingest(context.Background(), domain.IngestItemsRequest{
		ImageRef: "img1",
		Items: []domain.ScannedItem{
			{FoodType: "Eggs", Quantity: 6, Price: ptrF(2.50)},
			{FoodType: "eggs", Quantity: 6, Price: ptrF(2.50)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Applied)

	items := store.Snapshot()
	require.Len(t, items, 1, "duplicate rows in one batch collapse into one lot")
	assert.Equal(t, 12.0, items[0].Quantity)
	require.NotNil(t, items[0].Price)
	assert.InDelta(t, 5.00, *items[0].Price, 1e-9)

	receipts := store.Receipts()
	require.Len(t, receipts, 1)
	assert.Equal(t, 2, receipts[0].ItemCount, "the receipt counts raw rows, not merged lots")
	assert.InDelta(t, 5.00, receipts[0].TotalCost, 1e-9)
}

func TestIngestDropsInvalidRowsKeepsRest(t *testing.T) {
	svc, store := newTestService(t, feb6)

	res, err := svc.Ingest(context.Background(), domain.IngestItemsRequest{
		ImageRef: "img1",
		Items: []domain.ScannedItem{
			{FoodType: "", Quantity: 1},
			{FoodType: "ghost pepper", Quantity: 0},
			{FoodType: "eggs", Quantity: -2},
			{FoodType: "milk", Quantity: 1, DateAdded: "yesterday-ish"},
			{FoodType: "butter", Quantity: 1, Price: ptrF(6.25)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Applied)
	assert.Equal(t, 4, res.Skipped)

	items := store.Snapshot()
	require.Len(t, items, 1)
	assert.Equal(t, "butter", items[0].FoodType)

	receipts := store.Receipts()
	require.Len(t, receipts, 1)
	assert.Equal(t, 1, receipts[0].ItemCount, "dropped rows must not count toward the receipt")
	assert.InDelta(t, 6.25, receipts[0].TotalCost, 1e-9)
}

func TestIngestEmptyBatchRecordsNothing(t *testing.T) {
	svc, store := newTestService(t, feb6)

	res, err := svc.Ingest(context.Background(), domain.IngestItemsRequest{ImageRef: "img1"})
	require.NoError(t, err)
	assert.Zero(t, res.Applied)
	assert.Equal(t, "2026-02-06", res.ReceiptDate)
	assert.Empty(t, store.Receipts())
}

func TestIngestFullyInvalidBatchRecordsNothing(t *testing.T) {
	svc, store := newTestService(t, feb6)

	res, err := svc.Ingest(context.Background(), domain.IngestItemsRequest{
		ImageRef: "img1",
		Items:    []domain.ScannedItem{{FoodType: "", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Zero(t, res.Applied)
	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, store.Receipts(), "no receipt for a batch where every row was dropped")
}

func TestIngestEnrichment(t *testing.T) {
	svc, store := newTestService(t, feb6)

	t.Run("date_added defaults to today", func(t *testing.T) {
		_, err := svc.Ingest(context.Background(), domain.IngestItemsRequest{
			Items: []domain.ScannedItem{{FoodType: "tomato", Quantity: 1}},
		})
		require.NoError(t, err)

		items := store.Snapshot()
		require.Len(t, items, 1)
		assert.Equal(t, "2026-02-06", items[0].DateAdded)
		assert.True(t, items[0].HasIcon)
		require.NotNil(t, items[0].IconName)
		assert.Equal(t, "tomato", *items[0].IconName)
	})

	t.Run("timestamps truncate to the date", func(t *testing.T) {
		_, err := svc.Ingest(context.Background(), domain.IngestItemsRequest{
			Items: []domain.ScannedItem{{
				FoodType:     "salmon",
				Quantity:     1,
				Category:     "seafood",
				DateExpiring: ptrS("2026-02-09T18:00:00Z"),
			}},
		})
		require.NoError(t, err)

		for _, item := range store.Snapshot() {
			if item.FoodType == "salmon" {
				require.NotNil(t, item.DateExpiring)
				assert.Equal(t, "2026-02-09", *item.DateExpiring)
			}
		}
	})

	t.Run("malformed date_expiring keeps the row, drops the date", func(t *testing.T) {
		res, err := svc.Ingest(context.Background(), domain.IngestItemsRequest{
			Items: []domain.ScannedItem{{
				FoodType:     "bread",
				Quantity:     1,
				DateExpiring: ptrS("next week sometime"),
			}},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Applied)
		assert.Zero(t, res.Skipped)

		for _, item := range store.Snapshot() {
			if item.FoodType == "bread" {
				assert.Nil(t, item.DateExpiring)
			}
		}
	})
}

func TestAddItemSkipsLedger(t *testing.T) {
	svc, store := newTestService(t, feb6)

	res, err := svc.AddItem(context.Background(), domain.AddItemRequest{
		FoodType: "Heavy Cream",
		Quantity: 1,
		Price:    ptrF(3.25),
		Category: "dairy",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "2026-02-06", res.DateAdded)
	assert.True(t, res.HasIcon)

	assert.Empty(t, store.Receipts(), "manual adds never create receipts")
	assert.Zero(t, store.TotalSpending())

	t.Run("manual add merges into an existing lot", func(t *testing.T) {
		res2, err := svc.AddItem(context.Background(), domain.AddItemRequest{
			FoodType: "heavy cream",
			Quantity: 2,
			Price:    ptrF(3.25),
		})
		require.NoError(t, err)
		assert.Equal(t, res.ID, res2.ID, "merged lot keeps the original ID")
		assert.Equal(t, 3.0, res2.Quantity)
		require.NotNil(t, res2.Price)
		assert.InDelta(t, 6.50, *res2.Price, 1e-9)
		assert.Len(t, store.Snapshot(), 1)
	})

	t.Run("invalid item is rejected", func(t *testing.T) {
		_, err := svc.AddItem(context.Background(), domain.AddItemRequest{FoodType: "  ", Quantity: 1})
		assert.ErrorIs(t, err, domain.ErrMissingFoodType)
	})
}

func TestGetFridgeGroupsByCategory(t *testing.T) {
	svc, _ := newTestService(t, feb6)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, domain.IngestItemsRequest{
		Items: []domain.ScannedItem{
			{FoodType: "ketchup", Quantity: 1, Category: "condiment"},
			{FoodType: "tomatoes", Quantity: 2, Category: "vegetable"},
			{FoodType: "spaghetti", Quantity: 1, Category: "carbs"},
			{FoodType: "limes", Quantity: 4, Category: "fruit"},
		},
	})
	require.NoError(t, err)

	res, err := svc.GetFridge(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, 4, res.TotalItems)

	categories := make([]string, 0, len(res.Categories))
	for _, g := range res.Categories {
		categories = append(categories, g.Category)
	}
	// fixed display order, empty categories omitted
	assert.Equal(t, []string{
		entities.CategoryVegetable,
		entities.CategoryFruit,
		entities.CategoryGrain,
		entities.CategoryOther,
	}, categories)

	t.Run("category filter", func(t *testing.T) {
		res, err := svc.GetFridge(ctx, "grain")
		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalItems)
		require.Len(t, res.Categories, 1)
		assert.Equal(t, "spaghetti", res.Categories[0].Items[0].FoodType)
	})

	t.Run("filter accepts the extractor aliases", func(t *testing.T) {
		res, err := svc.GetFridge(ctx, "carbs")
		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalItems)
	})
}

func TestExpiringSoon(t *testing.T) {
	svc, _ := newTestService(t, feb6)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, domain.IngestItemsRequest{
		Items: []domain.ScannedItem{
			{FoodType: "expired yogurt", Quantity: 1, DateExpiring: ptrS("2026-02-05")},
			{FoodType: "milk", Quantity: 1, DateExpiring: ptrS("2026-02-08")},
			{FoodType: "eggs", Quantity: 12, DateExpiring: ptrS("2026-02-09")},
			{FoodType: "canned beans", Quantity: 3},
		},
	})
	require.NoError(t, err)

	items, err := svc.ExpiringSoon(ctx, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "expired yogurt", items[0].FoodType, "already expired sorts first")
	assert.Equal(t, "milk", items[1].FoodType)

	t.Run("window boundary is inclusive", func(t *testing.T) {
		items, err := svc.ExpiringSoon(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, items, 3, "2026-02-09 is exactly today+3 and qualifies")
	})

	t.Run("items without expiration never qualify", func(t *testing.T) {
		items, err := svc.ExpiringSoon(ctx, 10000)
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("negative window falls back to the default", func(t *testing.T) {
		items, err := svc.ExpiringSoon(ctx, -1)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})
}

func TestRecipeProjection(t *testing.T) {
	svc, _ := newTestService(t, feb6)
	ctx := context.Background()

	batch := []domain.ScannedItem{
		{FoodType: "pantry staple", Quantity: 1}, // no expiry, must sort last
	}
	for day := 20; day >= 10; day-- {
		batch = append(batch, domain.ScannedItem{
			FoodType:     "item " + string(rune('a'+day-10)),
			Quantity:     1,
			DateExpiring: ptrS("2026-02-" + string(rune('0'+day/10)) + string(rune('0'+day%10))),
		})
	}
	_, err := svc.Ingest(ctx, domain.IngestItemsRequest{Items: batch})
	require.NoError(t, err)

	proj, err := svc.RecipeProjection(ctx, 0)
	require.NoError(t, err)
	require.Len(t, proj, RecipeProjectionLimit, "projection is bounded")

	for i := 1; i < len(proj); i++ {
		require.NotNil(t, proj[i].DateExpiring)
		assert.LessOrEqual(t, *proj[i-1].DateExpiring, *proj[i].DateExpiring, "soonest expiring first")
	}
	for _, p := range proj {
		assert.NotEqual(t, "pantry staple", p.FoodType, "never-expiring item is crowded out")
	}
}

func TestSortByExpirationNilsSortLast(t *testing.T) {
	items := []entities.FridgeItem{
		{FoodType: "a", DateExpiring: nil},
		{FoodType: "b", DateExpiring: ptrS("2026-03-01")},
		{FoodType: "c", DateExpiring: ptrS("2026-02-10")},
		{FoodType: "d", DateExpiring: nil},
	}

	sorted := SortByExpiration(items)
	assert.Equal(t, "c", sorted[0].FoodType)
	assert.Equal(t, "b", sorted[1].FoodType)
	assert.Nil(t, sorted[2].DateExpiring)
	assert.Nil(t, sorted[3].DateExpiring)

	// input order untouched
	assert.Equal(t, "a", items[0].FoodType)
}

func TestSpendingSummary(t *testing.T) {
	svc, _ := newTestService(t, feb6)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, domain.IngestItemsRequest{
		ImageRef: "img1",
		Items: []domain.ScannedItem{
			{FoodType: "steak", Quantity: 1, Price: ptrF(15.00), Category: "meat"},
			{FoodType: "mystery item", Quantity: 1}, // nil price contributes zero
		},
	})
	require.NoError(t, err)

	res, err := svc.Spending(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 15.00, res.TotalSpending, 1e-9)
	require.Len(t, res.Receipts, 1)
	assert.Equal(t, "receipt_2026-02-06", res.Receipts[0].ID)
	assert.Equal(t, 2, res.Receipts[0].ItemCount)
}
