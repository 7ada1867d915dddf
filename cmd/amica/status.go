package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/amica/backend/internal/infrastructure/singleton"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the AMICA server is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := singleton.Ping(ctx, client.Config.APIURL); err != nil {
			return fmt.Errorf("AMICA server at %s is not reachable: %w", client.Config.APIURL, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "AMICA server at %s is up\n", client.Config.APIURL)
		return nil
	},
}
