package cart

import (
	"metromobiles/internal/domain/catalog"
	"metromobiles/internal/pkg/errs"
)

// Two quantity policies coexist and are deliberately kept distinct:
// AddOrIncrement rejects when the requested total would exceed stock (the
// add-to-cart button), while SetQuantity clamps to the ceiling (the cart page
// quantity input). Unifying them would change observable behavior.

// AddOrIncrement adds qty of product p to the lines, or increments an existing
// line. A zero-stock product is always rejected. An increment that would push
// the quantity past the stock ceiling is rejected outright; a brand-new line is
// created with the quantity clamped to the ceiling.
func AddOrIncrement(ls Lines, p *catalog.Product, qty int) (Lines, error) {
	if qty < 1 {
		qty = 1
	}
	if !p.InStock() {
		return ls, errs.ErrOutOfStock
	}

	if i, ok := ls.Find(p.ID); ok {
		// Refresh the ceiling from the live catalog before deciding.
		ls[i].MaxStock = p.Stock
		if ls[i].Quantity+qty > p.Stock {
			return ls, errs.ErrInsufficientStock
		}
		ls[i].Quantity += qty
		return ls, nil
	}

	return append(ls, NewLine(p, qty)), nil
}

// SetQuantity sets the quantity of an existing line. A quantity below 1 removes
// the line; a quantity above the stock ceiling is clamped, never rejected.
func SetQuantity(ls Lines, id catalog.ID, qty int) Lines {
	i, ok := ls.Find(id)
	if !ok {
		return ls
	}

	if qty < 1 {
		lines, _ := Remove(ls, id)
		return lines
	}

	if qty > ls[i].MaxStock {
		qty = ls[i].MaxStock
	}
	ls[i].Quantity = qty
	return ls
}

func Remove(ls Lines, id catalog.ID) (Lines, bool) {
	i, ok := ls.Find(id)
	if !ok {
		return ls, false
	}
	return append(ls[:i:i], ls[i+1:]...), true
}

// Reconcile intersects cart lines with the current catalog identifier set,
// dropping lines whose product no longer exists. It restores the cart-catalog
// invariant rather than merely checking it, and is idempotent.
func Reconcile(ls Lines, catalogIDs map[catalog.ID]struct{}) (Lines, int) {
	valid := make(Lines, 0, len(ls))
	for _, l := range ls {
		if _, ok := catalogIDs[catalog.NormalizeID(l.ProductID)]; ok {
			valid = append(valid, l)
		}
	}
	return valid, len(ls) - len(valid)
}
