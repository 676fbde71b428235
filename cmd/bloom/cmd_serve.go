package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bloom/app/routes"
	"github.com/shashiranjanraj/bloom/config"
	"github.com/shashiranjanraj/bloom/internal/bot"
	"github.com/shashiranjanraj/bloom/internal/server"
	"github.com/shashiranjanraj/bloom/pkg/database"
	"github.com/shashiranjanraj/bloom/pkg/router"
)

// bloom serve — start the HTTP API with workers, scheduler and gRPC health.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// bloom bot — start the Telegram ordering bot.
var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Start the Telegram ordering bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		if err := database.Connect(); err != nil {
			return err
		}

		b, err := bot.New()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

// bloom routes — print all registered named routes.
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = config.Load()

		r := router.New()
		routes.RegisterAPI(r)

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tROUTE")
		fmt.Fprintln(w, "----\t-----")
		for _, info := range infos {
			fmt.Fprintln(w, info)
		}
		return w.Flush()
	},
}
