// The storefront command is the client-side counterpart of the API server: it
// keeps the cart, cached catalog, session and saved addresses in a local blob
// store and talks to the API for everything else.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"metromobiles/internal/pkg/clock"
	"metromobiles/internal/pkg/config"
	"metromobiles/internal/storefront/apiclient"
	"metromobiles/internal/storefront/cart"
	"metromobiles/internal/storefront/catalog"
	"metromobiles/internal/storefront/checkout"
	"metromobiles/internal/storefront/kv"
	"metromobiles/internal/storefront/session"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "metromobiles storefront client",
	Long: `Browse the metromobiles catalog, manage a cart and place orders.

State (cart, session, cached catalog, addresses) lives in a local data
directory, or in Redis when STOREFRONT_REDIS_ADDR is set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// app wires the storefront core once per invocation.
type app struct {
	cfg        config.StorefrontConfig
	store      kv.Store
	api        *apiclient.Client
	session    *session.Handshake
	carts      *cart.Store
	reconciler *cart.Reconciler
	accessor   *catalog.Accessor
	checkout   *checkout.Checkout
	addresses  *checkout.AddressBook
}

func newApp() (*app, error) {
	cfg, err := config.LoadStorefrontConfig()
	if err != nil {
		return nil, err
	}

	store, err := newBlobStore(cfg)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	clk := clock.NewRealClock()
	api := apiclient.New(cfg.APIBaseURL)

	var backend session.Backend
	if cfg.AuthBackend == "local" {
		backend = session.NewLocalBackend(store, clk)
	} else {
		backend = session.NewRemoteBackend(api)
	}

	sess := session.NewHandshake(backend, store, clk, cfg.SessionTTL, logger)
	carts := cart.NewStore(store, logger)
	reconciler := cart.NewReconciler(carts)
	accessor := catalog.NewAccessor(api, store, logger)

	return &app{
		cfg:        cfg,
		store:      store,
		api:        api,
		session:    sess,
		carts:      carts,
		reconciler: reconciler,
		accessor:   accessor,
		checkout:   checkout.New(sess, carts, reconciler, accessor, api),
		addresses:  checkout.NewAddressBook(store),
	}, nil
}

func newBlobStore(cfg config.StorefrontConfig) (kv.Store, error) {
	if cfg.RedisAddr != "" {
		return kv.NewRedisStore(cfg.RedisAddr, "storefront:")
	}

	dir := cfg.DataDir
	if !filepath.IsAbs(dir) {
		home, err := os.UserHomeDir()
		if err == nil {
			dir = filepath.Join(home, dir)
		}
	}
	return kv.NewFileStore(dir)
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
