package checkout

import (
	"context"
	"encoding/json"

	"metromobiles/internal/domain/order"
	"metromobiles/internal/storefront/kv"

	"github.com/google/uuid"
)

// AddressesKey holds every user's saved addresses in one blob, keyed by user id.
const AddressesKey = "metromobiles_addresses"

type AddressBook struct {
	store kv.Store
}

func NewAddressBook(store kv.Store) *AddressBook {
	return &AddressBook{store: store}
}

func (b *AddressBook) List(ctx context.Context, userID string) []order.Address {
	return b.load(ctx)[userID]
}

// Save appends an address for the user; marking it default clears the flag on
// the user's other addresses.
func (b *AddressBook) Save(ctx context.Context, userID string, addr order.Address) (order.Address, error) {
	all := b.load(ctx)

	if addr.ID == "" {
		addr.ID = uuid.NewString()
	}
	if addr.IsDefault {
		for i := range all[userID] {
			all[userID][i].IsDefault = false
		}
	}
	all[userID] = append(all[userID], addr)

	return addr, b.save(ctx, all)
}

func (b *AddressBook) Delete(ctx context.Context, userID, addrID string) error {
	all := b.load(ctx)
	addrs := all[userID]
	kept := addrs[:0]
	for _, a := range addrs {
		if a.ID != addrID {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(addrs) {
		return nil
	}
	all[userID] = kept
	return b.save(ctx, all)
}

// DefaultOrFirst mirrors the selection the checkout page pre-checks.
func DefaultOrFirst(addrs []order.Address) *order.Address {
	for i := range addrs {
		if addrs[i].IsDefault {
			return &addrs[i]
		}
	}
	if len(addrs) > 0 {
		return &addrs[0]
	}
	return nil
}

func (b *AddressBook) load(ctx context.Context) map[string][]order.Address {
	all := make(map[string][]order.Address)
	data, err := b.store.Get(ctx, AddressesKey)
	if err != nil {
		return all
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return make(map[string][]order.Address)
	}
	return all
}

func (b *AddressBook) save(ctx context.Context, all map[string][]order.Address) error {
	data, err := json.Marshal(all)
	if err != nil {
		return err
	}
	return b.store.Set(ctx, AddressesKey, data)
}
