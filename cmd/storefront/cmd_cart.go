package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	domcatalog "metromobiles/internal/domain/catalog"
	"metromobiles/internal/pkg/errs"

	"github.com/spf13/cobra"
)

var cartQty int

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the cart",
}

var cartAddCmd = &cobra.Command{
	Use:   "add <id-or-slug>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartAdd,
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the cart with totals",
	RunE:  runCartList,
}

var cartSetCmd = &cobra.Command{
	Use:   "set <id-or-slug> <quantity>",
	Short: "Set a line's quantity",
	Long: `Set the quantity of a cart line. A quantity below one removes the
line; a quantity above the product's stock is capped at the stock.`,
	Args: cobra.ExactArgs(2),
	RunE: runCartSet,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <id-or-slug>",
	Short: "Remove a line from the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE:  runCartClear,
}

func init() {
	cartAddCmd.Flags().IntVar(&cartQty, "qty", 1, "quantity to add")

	cartCmd.AddCommand(cartAddCmd, cartListCmd, cartSetCmd, cartRemoveCmd, cartClearCmd)
	rootCmd.AddCommand(cartCmd)
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	id := domcatalog.NormalizeID(args[0])
	product := findProduct(a, ctx, id)
	if product == nil {
		return fmt.Errorf("product %q not found", args[0])
	}

	lines, err := a.carts.AddOrIncrement(ctx, product, cartQty)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrOutOfStock):
			return fmt.Errorf("%s is out of stock", product.Name)
		case errors.Is(err, errs.ErrInsufficientStock):
			return fmt.Errorf("only %d of %s in stock", product.Stock, product.Name)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s. Cart has %d item(s).\n", product.Name, lines.TotalQuantity())
	return nil
}

func runCartList(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	summary, err := a.checkout.Summary(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if summary.Removed > 0 {
		fmt.Fprintf(out, "%d item(s) no longer available were removed from your cart.\n\n", summary.Removed)
	}
	if len(summary.Lines) == 0 {
		fmt.Fprintln(out, "Your cart is empty.")
		return nil
	}

	for _, l := range summary.Lines {
		fmt.Fprintf(out, "%-28s x%-3d %10s\n", l.Name, l.Quantity, formatCents(l.SubtotalCents()))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Subtotal: %10s\n", formatCents(summary.Totals.SubtotalCents))
	fmt.Fprintf(out, "Tax:      %10s\n", formatCents(summary.Totals.TaxCents))
	fmt.Fprintf(out, "Delivery: %10s\n", formatCents(summary.Totals.DeliveryCents))
	fmt.Fprintf(out, "Total:    %10s\n", formatCents(summary.Totals.TotalCents))
	return nil
}

func runCartSet(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}

	lines, err := a.carts.SetQuantity(cmd.Context(), domcatalog.NormalizeID(args[0]), qty)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cart has %d item(s).\n", lines.TotalQuantity())
	return nil
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	_, removed, err := a.carts.Remove(cmd.Context(), domcatalog.NormalizeID(args[0]))
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintln(cmd.OutOrStdout(), "Not in cart.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Removed.")
	return nil
}

func findProduct(a *app, ctx context.Context, id domcatalog.ID) *domcatalog.Product {
	for _, p := range a.accessor.Fetch(ctx) {
		if p.ID == id || p.Slug == id.String() {
			return &p
		}
	}
	return nil
}

func runCartClear(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.carts.Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared.")
	return nil
}
