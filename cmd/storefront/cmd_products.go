package main

import (
	"fmt"
	"sort"
	"strings"

	domcatalog "metromobiles/internal/domain/catalog"

	"github.com/spf13/cobra"
)

var (
	productsBrand  string
	productsSearch string
	productsSort   string
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the catalog",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Long: `List the catalog. A successful fetch refreshes the local snapshot;
when the API is unreachable the cached snapshot (or the built-in default
set) is shown instead.`,
	RunE: runProductsList,
}

var productsShowCmd = &cobra.Command{
	Use:   "show <id-or-slug>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsShow,
}

func init() {
	productsListCmd.Flags().StringVar(&productsBrand, "brand", "", "filter by brand")
	productsListCmd.Flags().StringVar(&productsSearch, "search", "", "search name and brand")
	productsListCmd.Flags().StringVar(&productsSort, "sort", "", "sort order: price-low, price-high, name")

	productsCmd.AddCommand(productsListCmd, productsShowCmd)
	rootCmd.AddCommand(productsCmd)
}

func runProductsList(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	products, err := a.api.FetchProducts(ctx)
	if err == nil && len(products) > 0 {
		if err := a.accessor.SaveSnapshot(ctx, products); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: failed to refresh catalog snapshot:", err)
		}
	} else {
		products = a.accessor.Fetch(ctx)
	}

	products = filterProducts(products)

	for _, p := range products {
		stock := fmt.Sprintf("%d in stock", p.Stock)
		if !p.InStock() {
			stock = "out of stock"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-28s %-12s %10s  %s\n", p.Slug, p.Brand, formatCents(p.PriceCents), stock)
	}
	return nil
}

func runProductsShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	id := domcatalog.NormalizeID(args[0])

	p, err := a.api.FetchProduct(ctx, id)
	if err != nil {
		// Fall back to the locally known catalog.
		for _, known := range a.accessor.Fetch(ctx) {
			if known.ID == id || known.Slug == id.String() {
				p = &known
				break
			}
		}
		if p == nil {
			return fmt.Errorf("product %q not found", args[0])
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s - %s\n", p.Name, p.Brand)
	fmt.Fprintf(out, "Price: %s", formatCents(p.PriceCents))
	if p.HasDiscount() {
		fmt.Fprintf(out, " (was %s, %d%% off)", formatCents(p.MRPCents), p.DiscountPercent())
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Stock: %d\n", p.Stock)
	if p.ShortDescription != "" {
		fmt.Fprintln(out, p.ShortDescription)
	}
	if len(p.Specifications) > 0 {
		keys := make([]string, 0, len(p.Specifications))
		for k := range p.Specifications {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintln(out, "Specifications:")
		for _, k := range keys {
			fmt.Fprintf(out, "  %s: %s\n", k, p.Specifications[k])
		}
	}
	for _, f := range p.Features {
		fmt.Fprintf(out, "  - %s\n", f)
	}
	return nil
}

func filterProducts(products []domcatalog.Product) []domcatalog.Product {
	out := products[:0]
	for _, p := range products {
		if productsBrand != "" && !strings.EqualFold(p.Brand, productsBrand) {
			continue
		}
		if productsSearch != "" {
			q := strings.ToLower(productsSearch)
			if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Brand), q) {
				continue
			}
		}
		out = append(out, p)
	}

	switch productsSort {
	case "price-low":
		sort.SliceStable(out, func(i, j int) bool { return out[i].PriceCents < out[j].PriceCents })
	case "price-high":
		sort.SliceStable(out, func(i, j int) bool { return out[i].PriceCents > out[j].PriceCents })
	case "name":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out
}
