package store

import (
	"sync"
	"testing"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_InsertAllocatesMonotonicIDs(t *testing.T) {
	table := NewTable[model.Category]()

	first := table.Insert(func(id uint) model.Category {
		return model.Category{ID: id, Name: "First", Slug: "first"}
	})
	second := table.Insert(func(id uint) model.Category {
		return model.Category{ID: id, Name: "Second", Slug: "second"}
	})

	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID)
}

func TestTable_IDsNeverReused(t *testing.T) {
	table := NewTable[model.Category]()

	row := table.Insert(func(id uint) model.Category {
		return model.Category{ID: id, Slug: "a"}
	})
	require.True(t, table.Delete(row.ID))

	next := table.Insert(func(id uint) model.Category {
		return model.Category{ID: id, Slug: "b"}
	})
	assert.Equal(t, uint(2), next.ID)
}

func TestTable_GetAbsentIsNotAnError(t *testing.T) {
	table := NewTable[model.Category]()

	_, ok := table.Get(42)
	assert.False(t, ok)
}

func TestTable_FindPreservesInsertionOrder(t *testing.T) {
	table := NewTable[model.Category]()

	for _, slug := range []string{"c", "a", "b"} {
		s := slug
		table.Insert(func(id uint) model.Category {
			return model.Category{ID: id, Slug: s}
		})
	}

	rows := table.All()
	require.Len(t, rows, 3)
	assert.Equal(t, "c", rows[0].Slug)
	assert.Equal(t, "a", rows[1].Slug)
	assert.Equal(t, "b", rows[2].Slug)
}

func TestTable_FirstResolvesInsertionOrderTieBreak(t *testing.T) {
	table := NewTable[model.Category]()

	table.Insert(func(id uint) model.Category {
		return model.Category{ID: id, Name: "Older", Slug: "dup"}
	})
	table.Insert(func(id uint) model.Category {
		return model.Category{ID: id, Name: "Newer", Slug: "dup"}
	})

	row, ok := table.First(func(c model.Category) bool { return c.Slug == "dup" })
	require.True(t, ok)
	assert.Equal(t, "Older", row.Name)
}

func TestTable_UpdateIsAllOrNothing(t *testing.T) {
	table := NewTable[model.Product]()

	product := table.Insert(func(id uint) model.Product {
		return model.Product{ID: id, Title: "Lamp", Price: 10}
	})

	updated, ok := table.Update(product.ID, func(p model.Product) model.Product {
		p.Price = 12
		return p
	})
	require.True(t, ok)
	assert.Equal(t, float64(12), updated.Price)
	assert.Equal(t, "Lamp", updated.Title)

	_, ok = table.Update(999, func(p model.Product) model.Product { return p })
	assert.False(t, ok)
}

func TestTable_DeleteReportsExistence(t *testing.T) {
	table := NewTable[model.CartItem]()

	item := table.Insert(func(id uint) model.CartItem {
		return model.CartItem{ID: id, UserID: 1, ProductID: 1, Quantity: 1}
	})

	assert.True(t, table.Delete(item.ID))
	assert.False(t, table.Delete(item.ID))
	assert.Equal(t, 0, table.Len())
}

func TestTable_ConcurrentInsertsKeepUniqueIDs(t *testing.T) {
	table := NewTable[model.CartItem]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table.Insert(func(id uint) model.CartItem {
				return model.CartItem{ID: id, UserID: 1, ProductID: 1, Quantity: 1}
			})
		}()
	}
	wg.Wait()

	rows := table.All()
	require.Len(t, rows, 50)
	seen := make(map[uint]bool, len(rows))
	for _, row := range rows {
		assert.False(t, seen[row.ID], "id %d assigned twice", row.ID)
		seen[row.ID] = true
	}
}

func TestStore_SeedDefaultCategories(t *testing.T) {
	s := Open()
	require.NoError(t, s.Seed())

	categories := s.Categories.All()
	require.Len(t, categories, 4)
	assert.Equal(t, "home-living", categories[0].Slug)
	assert.Equal(t, "food-kitchen", categories[3].Slug)

	// Seeding again must not duplicate
	require.NoError(t, s.Seed())
	assert.Equal(t, 4, s.Categories.Len())
}

func TestKeyedMutex_SerializesPerKey(t *testing.T) {
	locks := NewKeyedMutex()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock(7)
			counter++
			locks.Unlock(7)
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}
