package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Skufu/alzrisk/internal/patient"
)

func newPredictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run a single prediction from a JSON input file",
		Long:  "Reads patient fields as JSON (from --input, or stdin when --input is \"-\"). Missing fields keep the form defaults.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := modelPath(cmd)
			if err != nil {
				return err
			}
			inputPath, _ := cmd.Flags().GetString("input")

			in, err := readInput(cmd, inputPath)
			if err != nil {
				return err
			}
			if err := in.Validate(); err != nil {
				return fmt.Errorf("invalid input: %w", err)
			}

			p, err := loadPredictor(path)
			if err != nil {
				return err
			}
			res, err := p.Predict(in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Message())
			fmt.Fprintf(out, "Model Confidence: %s\n", res.Percent())
			fmt.Fprintf(out, "Probability: %.6f\n", res.RawProbability)
			return nil
		},
	}
	cmd.Flags().String("input", "", "JSON file with patient fields (\"-\" for stdin)")
	return cmd
}

func readInput(cmd *cobra.Command, path string) (patient.Input, error) {
	in := patient.Defaults()
	if path == "" {
		return in, nil
	}

	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return in, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return in, fmt.Errorf("decode input: %w", err)
	}
	return in, nil
}
