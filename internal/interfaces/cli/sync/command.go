// Package sync pulls one dashboard snapshot from the dispatch board.
package sync

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"locates/internal/application/locate/usecases"
	"locates/internal/infrastructure/database"
	"locates/internal/interfaces/cli/bootstrap"
	httpRouter "locates/internal/interfaces/http"
	"locates/internal/shared/constants"
)

var (
	env        string
	configPath string
	status     string
	startDate  string
	endDate    string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Ingest the dispatch board once",
		Long:  `Scrape the dispatch board, keep excavator work orders and store them as a new dashboard snapshot.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVar(&status, "status", "", "Board status filter (default: scraper.default_status)")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Window start, YYYY-MM-DD")
	cmd.Flags().StringVar(&endDate, "end-date", "", "Window end, YYYY-MM-DD")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(bootstrap.ResolveEnv(env), configPath)
	if err != nil {
		return err
	}
	defer bootstrap.Close()

	container, err := httpRouter.NewContainer(database.Get(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer container.Shutdown()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Scraper.Timeout())
	defer cancel()

	result, err := container.SyncDashboard().Execute(ctx, usecases.SyncDashboardCommand{
		Status:    status,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		log.Errorw("dashboard sync failed", "error", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "snapshot %d: scraped %d, excavator %d, stored %d (%d duplicates removed)\n",
		result.Snapshot.ID, result.Scraped, result.Excavator, result.Snapshot.TotalWorkOrders, result.DuplicatesRemoved)
	return nil
}
