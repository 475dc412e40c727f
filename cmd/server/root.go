package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skufu/alzrisk/internal/config"
	"github.com/Skufu/alzrisk/internal/model"
	"github.com/Skufu/alzrisk/internal/predictor"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "server",
		Short:         "Alzheimer's risk prediction service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
	root.PersistentFlags().String("model", "", "Path to the model artifact (overrides MODEL_PATH env var)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newPredictCmd())
	root.AddCommand(newFeaturesCmd())
	return root
}

// resolveModelPath returns the --model flag when set, then the fallback.
func resolveModelPath(cmd *cobra.Command, fallback string) string {
	if p, _ := cmd.Flags().GetString("model"); p != "" {
		return p
	}
	return fallback
}

// modelPath loads the same configuration serve does, so .env and MODEL_PATH
// apply to every command, then applies the --model override.
func modelPath(cmd *cobra.Command) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return resolveModelPath(cmd, cfg.ModelPath), nil
}

// loadPredictor loads the artifact at path and runs the schema check.
func loadPredictor(path string, opts ...predictor.Option) (*predictor.Predictor, error) {
	artifact, err := model.Load(path)
	if err != nil {
		return nil, err
	}
	p, err := predictor.New(artifact, opts...)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return p, nil
}
