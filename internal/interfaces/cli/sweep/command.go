// Package sweep runs a single timer sweep, for hosts that drive it from cron
// instead of the in-process scheduler.
package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"locates/internal/application/locate/usecases"
	"locates/internal/infrastructure/database"
	"locates/internal/interfaces/cli/bootstrap"
	httpRouter "locates/internal/interfaces/http"
	"locates/internal/shared/constants"
)

const sweepTimeout = 2 * time.Minute

var (
	env        string
	configPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Expire due locate timers once",
		Long:  `Mark every in-progress work order whose deadline has passed as complete, then exit.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

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

	ctx, cancel := context.WithTimeout(cmd.Context(), sweepTimeout)
	defer cancel()

	result, err := container.SweepExpiredTimers().Execute(ctx, usecases.SweepExpiredTimersCommand{})
	if err != nil {
		log.Errorw("timer sweep failed", "error", err)
		return err
	}

	if result.Skipped {
		fmt.Fprintln(cmd.OutOrStdout(), "sweep skipped: another instance holds the lock")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "expired %d work order(s) across %d snapshot(s)\n", result.Updated, result.Snapshots)
	return nil
}
