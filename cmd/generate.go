package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"variant-manager/feature/variants"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	generateFile    string
	generatePreview bool
)

// generateCmd runs the variant generator from a JSON request file.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate variant combinations from a request file",
	Long: `Reads a generation request (the same JSON body as POST /variants/generate)
and persists every new combination. Existing combinations are skipped.

Examples:
  # Preview SKUs without writing
  generate --file phone-x.json --preview

  # Generate
  generate --file phone-x.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(generateFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", generateFile, err)
		}
		var params variants.Params
		if err := json.Unmarshal(raw, &params); err != nil {
			return fmt.Errorf("failed to parse %s: %w", generateFile, err)
		}

		a, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer a.Close()
		svc := a.variantsFeature().Service()

		var out any
		if generatePreview {
			preview, err := svc.PreviewCombinations(cmd.Context(), params)
			if err != nil {
				return err
			}
			a.logger.Info("Preview ready", zap.Int("combinations", preview.TotalCombinations))
			out = preview
		} else {
			result, err := svc.GenerateVariantCombinations(cmd.Context(), params)
			if err != nil {
				return err
			}
			a.logger.Info("Variants generated",
				zap.Int("generated", result.TotalGenerated),
				zap.Int("skipped", result.Skipped),
				zap.Strings("warnings", result.Warnings))
			out = result
		}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&generateFile, "file", "f", "", "Path to the JSON generation request")
	generateCmd.Flags().BoolVar(&generatePreview, "preview", false, "List the combinations without writing")
	_ = generateCmd.MarkFlagRequired("file")
}
