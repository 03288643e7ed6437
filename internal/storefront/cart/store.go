// Package cart persists the shopper's cart as a single JSON blob and applies
// the domain quantity policies on top of it.
package cart

import (
	"context"
	"encoding/json"
	"log/slog"

	"metromobiles/internal/domain/cart"
	"metromobiles/internal/domain/catalog"
	"metromobiles/internal/storefront/kv"
)

// Key is the blob the cart lives under, shared with the legacy store.
const Key = "metromobiles_cart"

type Store struct {
	store  kv.Store
	logger *slog.Logger
}

func NewStore(store kv.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{store: store, logger: logger}
}

// Load returns the persisted cart. An absent or corrupt blob is empty state,
// never an error: a broken cart must not break a page load.
func (s *Store) Load(ctx context.Context) cart.Lines {
	data, err := s.store.Get(ctx, Key)
	if err != nil {
		return cart.Lines{}
	}

	var lines cart.Lines
	if err := json.Unmarshal(data, &lines); err != nil {
		s.logger.Warn("discarding corrupt cart blob", "error", err.Error())
		return cart.Lines{}
	}
	return lines
}

// Save overwrites the persisted cart in one write; readers never see a partial cart.
func (s *Store) Save(ctx context.Context, lines cart.Lines) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, Key, data)
}

func (s *Store) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, Key)
}

func (s *Store) AddOrIncrement(ctx context.Context, p *catalog.Product, qty int) (cart.Lines, error) {
	lines, err := cart.AddOrIncrement(s.Load(ctx), p, qty)
	if err != nil {
		return lines, err
	}
	return lines, s.Save(ctx, lines)
}

func (s *Store) SetQuantity(ctx context.Context, id catalog.ID, qty int) (cart.Lines, error) {
	lines := cart.SetQuantity(s.Load(ctx), id, qty)
	return lines, s.Save(ctx, lines)
}

func (s *Store) Remove(ctx context.Context, id catalog.ID) (cart.Lines, bool, error) {
	lines, removed := cart.Remove(s.Load(ctx), id)
	if !removed {
		return lines, false, nil
	}
	return lines, true, s.Save(ctx, lines)
}
