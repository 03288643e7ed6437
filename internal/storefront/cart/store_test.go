//go:build unit

package cart_test

import (
	"context"
	"testing"

	"metromobiles/internal/domain/catalog"
	"metromobiles/internal/pkg/errs"
	"metromobiles/internal/storefront/cart"
	"metromobiles/internal/storefront/kv"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() (*cart.Store, *kv.MemoryStore) {
	blobs := kv.NewMemoryStore()
	return cart.NewStore(blobs, nil), blobs
}

func phone(id string, stock int) *catalog.Product {
	return &catalog.Product{
		ID:         catalog.ID(id),
		Slug:       id,
		Name:       "Phone " + id,
		Brand:      "Acme",
		PriceCents: 49999,
		Stock:      stock,
	}
}

func TestStoreLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("ブロブなしは空カート", func(t *testing.T) {
		s, _ := newStore()
		assert.Empty(t, s.Load(ctx))
	})

	t.Run("壊れたブロブは空カート扱い", func(t *testing.T) {
		s, blobs := newStore()
		require.NoError(t, blobs.Set(ctx, cart.Key, []byte("{{{")))
		assert.Empty(t, s.Load(ctx))
	})

	t.Run("保存したカートを読み戻す", func(t *testing.T) {
		s, _ := newStore()
		lines, err := s.AddOrIncrement(ctx, phone("p1", 5), 2)
		require.NoError(t, err)

		loaded := s.Load(ctx)
		if diff := cmp.Diff(lines, loaded); diff != "" {
			t.Errorf("Lines mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestStoreMutations(t *testing.T) {
	ctx := context.Background()

	t.Run("追加は永続化される", func(t *testing.T) {
		s, blobs := newStore()
		_, err := s.AddOrIncrement(ctx, phone("p1", 5), 1)
		require.NoError(t, err)

		_, err = blobs.Get(ctx, cart.Key)
		require.NoError(t, err)
	})

	t.Run("在庫ゼロの追加は保存しない", func(t *testing.T) {
		s, blobs := newStore()
		_, err := s.AddOrIncrement(ctx, phone("p1", 0), 1)
		require.ErrorIs(t, err, errs.ErrOutOfStock)

		_, err = blobs.Get(ctx, cart.Key)
		require.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("数量変更は永続化される", func(t *testing.T) {
		s, _ := newStore()
		_, err := s.AddOrIncrement(ctx, phone("p1", 5), 1)
		require.NoError(t, err)

		_, err = s.SetQuantity(ctx, "p1", 3)
		require.NoError(t, err)
		assert.Equal(t, 3, s.Load(ctx)[0].Quantity)
	})

	t.Run("削除と全消去", func(t *testing.T) {
		s, _ := newStore()
		_, err := s.AddOrIncrement(ctx, phone("p1", 5), 1)
		require.NoError(t, err)

		_, removed, err := s.Remove(ctx, "p1")
		require.NoError(t, err)
		assert.True(t, removed)
		assert.Empty(t, s.Load(ctx))

		_, removed, err = s.Remove(ctx, "p1")
		require.NoError(t, err)
		assert.False(t, removed)

		require.NoError(t, s.Clear(ctx))
		assert.Empty(t, s.Load(ctx))
	})
}

func TestReconciler(t *testing.T) {
	ctx := context.Background()
	products := []catalog.Product{*phone("p1", 5), *phone("p2", 5)}

	t.Run("消えた商品のラインを除去して保存", func(t *testing.T) {
		s, _ := newStore()
		_, err := s.AddOrIncrement(ctx, phone("p1", 5), 1)
		require.NoError(t, err)
		_, err = s.AddOrIncrement(ctx, phone("ghost", 5), 2)
		require.NoError(t, err)

		lines, removed, err := cart.NewReconciler(s).Run(ctx, products)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		require.Len(t, lines, 1)
		assert.Equal(t, catalog.ID("p1"), lines[0].ProductID)

		// 永続化済み: 再読み込みしてもゴースト行は戻らない
		require.Len(t, s.Load(ctx), 1)
	})

	t.Run("有効なカートはそのまま", func(t *testing.T) {
		s, blobs := newStore()
		_, err := s.AddOrIncrement(ctx, phone("p1", 5), 1)
		require.NoError(t, err)
		before, err := blobs.Get(ctx, cart.Key)
		require.NoError(t, err)

		lines, removed, err := cart.NewReconciler(s).Run(ctx, products)
		require.NoError(t, err)
		assert.Equal(t, 0, removed)
		assert.Len(t, lines, 1)

		// 除去ゼロなら書き戻さない
		after, err := blobs.Get(ctx, cart.Key)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("空カートは即座に返す", func(t *testing.T) {
		s, _ := newStore()
		lines, removed, err := cart.NewReconciler(s).Run(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, removed)
		assert.Empty(t, lines)
	})

	t.Run("シナリオ:削除された商品1件を報告", func(t *testing.T) {
		s, _ := newStore()
		_, err := s.AddOrIncrement(ctx, phone("p1", 5), 1)
		require.NoError(t, err)
		_, err = s.AddOrIncrement(ctx, phone("p2", 5), 1)
		require.NoError(t, err)

		// p2 がカタログから消えた
		remaining := []catalog.Product{*phone("p1", 5)}
		lines, removed, err := cart.NewReconciler(s).Run(ctx, remaining)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		require.Len(t, lines, 1)
		assert.Equal(t, catalog.ID("p1"), lines[0].ProductID)
	})
}
