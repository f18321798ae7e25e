package cmd

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gigcircle.com/gigcircle/internal/services"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Load users, groups and tasks from a YAML fixture file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open fixtures: %w", err)
		}
		defer f.Close()

		fixtures, err := services.ParseFixtures(f)
		if err != nil {
			return err
		}

		a := bootstrap()
		defer a.close()

		report, err := services.NewSeeder(a.users, a.wallet, a.groups, a.tasks).Load(context.Background(), fixtures)
		if err != nil {
			return err
		}

		log.WithFields(log.Fields{
			"users":  report.Users,
			"groups": report.Groups,
			"tasks":  report.Tasks,
		}).Info("fixtures loaded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
