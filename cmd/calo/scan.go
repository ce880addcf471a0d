package calo

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calolens/calo-cli/internal/recognize"
)

var scanFast bool

var scanCmd = &cobra.Command{
	Use:   "scan <barcode>",
	Short: "Look up a product by barcode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		opts := []recognize.Option{}
		if scanFast {
			opts = analyzerOptionsFast()
		}
		analyzer := recognize.New(cat, opts...)

		product, err := analyzer.ScanBarcode(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("no product found for barcode %s", args[0])
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Product: %s (%s)\n", product.Name.EN, product.Brand)
		fmt.Fprintf(out, "Serving: %.0f %s\n", product.ServingSize, product.ServingSizeUnit)
		printNutrition(out, product.Nutrition)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&scanFast, "fast", false, "Skip simulated scan delay")
}
