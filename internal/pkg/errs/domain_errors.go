package errs

import "errors"

// Sentinel errors shared by the cart domain and the storefront client.
// Server-side usecases declare their own sentinels next to the code that
// returns them.
var (
	// Cart errors
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOutOfStock        = errors.New("product out of stock")
	ErrEmptyCart         = errors.New("cart is empty")

	// Session errors
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrIdentityDecode = errors.New("identity token decode failed")
	ErrEmailTaken     = errors.New("email already registered")
)
