package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lk2023060901/smartshop/internal/pkg/logger"
	"github.com/lk2023060901/smartshop/internal/storefront"
	"github.com/lk2023060901/smartshop/internal/storefront/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	backendURL string
	timeout    time.Duration
	logFile    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "shopper",
	Short: "SmartShop terminal storefront",
	Long: `shopper searches products through a SmartShop backend, lets you sort and
page through the results and compares up to three products side by side.`,
	SilenceUsage: true,
	RunE:         runStorefront,
}

// healthCmd checks that the backend answers
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the backend health endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := storefront.NewClient(backendURL, timeout)
		defer client.Close()

		h, err := client.Health(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", h.ServerName, h.Status, h.Time)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "http://localhost:3000", "SmartShop backend base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "per-search timeout")
	rootCmd.Flags().StringVar(&logFile, "log-file", "logs/shopper.log", "log file (the terminal is reserved for the UI)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(healthCmd)
}

func runStorefront(cmd *cobra.Command, args []string) error {
	level := "info"
	if verbose {
		level = "debug"
	}
	log, err := logger.FileOnly(logFile, level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	client := storefront.NewClient(backendURL, timeout)
	defer client.Close()

	log.Info("storefront starting", zap.String("backend", backendURL))

	ctrl := storefront.NewController(client, log)
	p := tea.NewProgram(tui.New(ctrl, timeout), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("storefront exited: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
