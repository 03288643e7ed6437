package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your orders",
	RunE:  runOrders,
}

func init() {
	rootCmd.AddCommand(ordersCmd)
}

func runOrders(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if !a.session.Valid(ctx) {
		return errors.New("please log in first")
	}
	sess := a.session.Current()

	views, err := a.api.FetchOrders(ctx, sess.Token)
	if err != nil {
		return err
	}
	if len(views) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No orders yet.")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, v := range views {
		fmt.Fprintf(out, "%s  %-9s %10s  %s\n", v.ID, v.Status, formatCents(v.TotalCents), v.CreatedAt)
		for _, item := range v.Items {
			fmt.Fprintf(out, "    %-28s x%-3d %10s\n", item.Name, item.Quantity, formatCents(item.PriceCents*int64(item.Quantity)))
		}
	}
	return nil
}
