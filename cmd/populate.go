package main

import (
	"github.com/spf13/cobra"
)

func newPopulateCmd() *cobra.Command {
	var (
		count   int
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Insert randomly generated personas",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			population := a.population(nil)
			run := population.Populate
			if replace {
				run = population.Replace
			}

			created, err := run(cmd.Context(), count)
			if err != nil {
				return err
			}

			cmd.Printf("%d personas created successfully\n", created)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 100, "number of personas to generate (1-999)")
	cmd.Flags().BoolVar(&replace, "replace", false, "delete existing personas first")

	return cmd
}

func newResetCmd() *cobra.Command {
	var restartIDs bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every persona",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			deleted, err := a.population(nil).Reset(cmd.Context(), restartIDs)
			if err != nil {
				return err
			}

			cmd.Printf("%d personas deleted\n", deleted)
			return nil
		},
	}

	cmd.Flags().BoolVar(&restartIDs, "restart-ids", false, "restart id assignment from 1")

	return cmd
}
