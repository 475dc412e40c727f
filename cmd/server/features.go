package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skufu/alzrisk/internal/features"
	"github.com/Skufu/alzrisk/internal/model"
)

func newFeaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "Print the model's feature ordering and check it against the mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := modelPath(cmd)
			if err != nil {
				return err
			}
			artifact, err := model.Load(path)
			if err != nil {
				return err
			}

			names := artifact.FeatureNames()
			out := cmd.OutOrStdout()
			for i, name := range names {
				fmt.Fprintf(out, "%2d  %s\n", i, name)
			}

			if err := features.CheckSchema(names); err != nil {
				fmt.Fprintf(out, "schema: %v\n", err)
				return err
			}
			fmt.Fprintln(out, "schema: ok")
			return nil
		},
	}
}
