package cmd

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Persist expiry of due groups and tasks once",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := bootstrap()
		defer a.close()

		n, err := a.expiryService().SweepOnce(context.Background())
		if err != nil {
			return err
		}

		log.WithField("expired", n).Info("sweep finished")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
