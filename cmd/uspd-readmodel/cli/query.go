package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Morpher-io/uspd-website-sub000/internal/api"
	"github.com/Morpher-io/uspd-website-sub000/internal/config"
	"github.com/Morpher-io/uspd-website-sub000/internal/observability/tracing"
	"github.com/Morpher-io/uspd-website-sub000/internal/services"
)

var (
	queryChainID    uint64
	queryPositionID uint64
)

// QueryCmd runs a single computation against the configured chains and
// prints the result in the same shape the api serves.
func QueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Computes a single read-model value and prints it as json",
	}
	cmd.PersistentFlags().Uint64Var(&queryChainID, "chain-id", 1, "chain to query")

	cmd.AddCommand(&cobra.Command{
		Use:   "capacity",
		Short: "Mintable principal capacity of the unallocated providers",
		Args:  cobra.ExactArgs(0),
		RunE: withService(func(cmd *cobra.Command, service *services.Service) (any, error) {
			result, err := service.GetMintableCapacity(cmd.Context(), queryChainID)
			if err != nil {
				return nil, err
			}
			return api.NewCapacityResponse(result), nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "ratio",
		Short: "System collateralization ratio",
		Args:  cobra.ExactArgs(0),
		RunE: withService(func(cmd *cobra.Command, service *services.Service) (any, error) {
			result, err := service.GetSystemRatio(cmd.Context(), queryChainID)
			if err != nil {
				return nil, err
			}
			return api.NewRatioResponse(result), nil
		}),
	})

	positionCmd := &cobra.Command{
		Use:   "position",
		Short: "Balances and collateralization ratio of one stabilizer position",
		Args:  cobra.ExactArgs(0),
		RunE: withService(func(cmd *cobra.Command, service *services.Service) (any, error) {
			summary, err := service.GetPositionRatio(cmd.Context(), queryChainID, queryPositionID)
			if err != nil {
				return nil, err
			}
			return api.NewPositionResponse(summary), nil
		}),
	}
	positionCmd.Flags().Uint64Var(&queryPositionID, "position-id", 0, "stabilizer token id")
	_ = positionCmd.MarkFlagRequired("position-id")
	cmd.AddCommand(positionCmd)

	return cmd
}

func withService(
	run func(cmd *cobra.Command, service *services.Service) (any, error),
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(tracing.InjectTraceID(cmd.Context()))

		cfg, err := config.New(GetConfigPath())
		if err != nil {
			return fmt.Errorf("error while loading config file: %w", err)
		}

		service, err := newService(cfg)
		if err != nil {
			return err
		}

		out, err := run(cmd, service)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
}
