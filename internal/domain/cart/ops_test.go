//go:build unit

package cart_test

import (
	"testing"

	"metromobiles/internal/domain/cart"
	"metromobiles/internal/domain/catalog"
	"metromobiles/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, stock int) *catalog.Product {
	return &catalog.Product{
		ID:         catalog.ID(id),
		Slug:       id,
		Name:       "Product " + id,
		Brand:      "Acme",
		PriceCents: 1999,
		Stock:      stock,
		Image:      "/images/" + id + ".jpg",
	}
}

func TestAddOrIncrement(t *testing.T) {
	t.Run("新規ラインの追加OK", func(t *testing.T) {
		lines, err := cart.AddOrIncrement(cart.Lines{}, product("p1", 5), 2)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, catalog.ID("p1"), lines[0].ProductID)
		assert.Equal(t, 2, lines[0].Quantity)
		assert.Equal(t, 5, lines[0].MaxStock)
	})

	t.Run("既存ラインの数量加算OK", func(t *testing.T) {
		p := product("p1", 5)
		lines, err := cart.AddOrIncrement(cart.Lines{}, p, 2)
		require.NoError(t, err)

		lines, err = cart.AddOrIncrement(lines, p, 3)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 5, lines[0].Quantity)
	})

	t.Run("在庫ゼロは常にNG", func(t *testing.T) {
		lines, err := cart.AddOrIncrement(cart.Lines{}, product("p1", 0), 1)
		require.ErrorIs(t, err, errs.ErrOutOfStock)
		assert.Empty(t, lines)
	})

	t.Run("在庫超過の加算はNG", func(t *testing.T) {
		p := product("p1", 3)
		lines, err := cart.AddOrIncrement(cart.Lines{}, p, 2)
		require.NoError(t, err)

		lines, err = cart.AddOrIncrement(lines, p, 2)
		require.ErrorIs(t, err, errs.ErrInsufficientStock)
		// 既存の数量は変わらない
		require.Len(t, lines, 1)
		assert.Equal(t, 2, lines[0].Quantity)
	})

	t.Run("新規ラインは在庫上限にクランプ", func(t *testing.T) {
		lines, err := cart.AddOrIncrement(cart.Lines{}, product("p1", 3), 10)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 3, lines[0].Quantity)
	})

	t.Run("数量1未満は1として扱う", func(t *testing.T) {
		lines, err := cart.AddOrIncrement(cart.Lines{}, product("p1", 5), 0)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].Quantity)
	})

	t.Run("加算時に在庫上限を最新化する", func(t *testing.T) {
		p := product("p1", 10)
		lines, err := cart.AddOrIncrement(cart.Lines{}, p, 4)
		require.NoError(t, err)

		// 在庫が減った後の加算は新しい上限で判定される
		p.Stock = 5
		lines, err = cart.AddOrIncrement(lines, p, 2)
		require.ErrorIs(t, err, errs.ErrInsufficientStock)
		assert.Equal(t, 5, lines[0].MaxStock)
	})
}

func TestSetQuantity(t *testing.T) {
	base := func(t *testing.T) cart.Lines {
		t.Helper()
		lines, err := cart.AddOrIncrement(cart.Lines{}, product("p1", 5), 2)
		require.NoError(t, err)
		return lines
	}

	t.Run("範囲内の数量はそのまま反映", func(t *testing.T) {
		lines := cart.SetQuantity(base(t), "p1", 4)
		require.Len(t, lines, 1)
		assert.Equal(t, 4, lines[0].Quantity)
	})

	t.Run("1未満はラインを削除", func(t *testing.T) {
		lines := cart.SetQuantity(base(t), "p1", 0)
		assert.Empty(t, lines)
	})

	t.Run("在庫超過はクランプしてエラーにしない", func(t *testing.T) {
		lines := cart.SetQuantity(base(t), "p1", 99)
		require.Len(t, lines, 1)
		assert.Equal(t, 5, lines[0].Quantity)
	})

	t.Run("存在しないIDは何もしない", func(t *testing.T) {
		before := base(t)
		after := cart.SetQuantity(before, "missing", 3)
		if diff := cmp.Diff(before, after); diff != "" {
			t.Errorf("Lines mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestRemove(t *testing.T) {
	t.Run("既存ラインの削除OK", func(t *testing.T) {
		lines, err := cart.AddOrIncrement(cart.Lines{}, product("p1", 5), 1)
		require.NoError(t, err)
		lines, err = cart.AddOrIncrement(lines, product("p2", 5), 1)
		require.NoError(t, err)

		lines, removed := cart.Remove(lines, "p1")
		assert.True(t, removed)
		require.Len(t, lines, 1)
		assert.Equal(t, catalog.ID("p2"), lines[0].ProductID)
	})

	t.Run("存在しないIDの削除は何もしない", func(t *testing.T) {
		lines, removed := cart.Remove(cart.Lines{}, "missing")
		assert.False(t, removed)
		assert.Empty(t, lines)
	})
}

func TestReconcile(t *testing.T) {
	catalogIDs := map[catalog.ID]struct{}{
		"p1": {},
		"p2": {},
	}

	t.Run("カタログに無い商品のラインを除去", func(t *testing.T) {
		lines := cart.Lines{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "gone", Quantity: 2},
			{ProductID: "p2", Quantity: 3},
		}

		valid, removed := cart.Reconcile(lines, catalogIDs)
		assert.Equal(t, 1, removed)
		require.Len(t, valid, 2)
		assert.Equal(t, catalog.ID("p1"), valid[0].ProductID)
		assert.Equal(t, catalog.ID("p2"), valid[1].ProductID)
	})

	t.Run("冪等性:二回目の実行は何も除去しない", func(t *testing.T) {
		lines := cart.Lines{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "gone", Quantity: 2},
		}

		once, removed := cart.Reconcile(lines, catalogIDs)
		require.Equal(t, 1, removed)

		twice, removed := cart.Reconcile(once, catalogIDs)
		assert.Equal(t, 0, removed)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("Lines mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("数値ID世代も正規化して照合", func(t *testing.T) {
		ids := map[catalog.ID]struct{}{"1700000000000": {}}
		lines := cart.Lines{{ProductID: "1700000000000", Quantity: 1}}

		valid, removed := cart.Reconcile(lines, ids)
		assert.Equal(t, 0, removed)
		assert.Len(t, valid, 1)
	})

	t.Run("空カートは空のまま", func(t *testing.T) {
		valid, removed := cart.Reconcile(cart.Lines{}, catalogIDs)
		assert.Equal(t, 0, removed)
		assert.Empty(t, valid)
	})
}
