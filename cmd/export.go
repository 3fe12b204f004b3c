package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/runway/internal/model"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var (
	flagExportFormat string
	flagExportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the projection as JSON, YAML or CSV",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "json", "Output format: json, yaml or csv")
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	r, err := resolveRun(cmd)
	if err != nil {
		return err
	}
	proj := project(r)

	var w io.Writer = os.Stdout
	if flagExportOutput != "" {
		f, err := os.Create(flagExportOutput)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flagExportOutput, err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := writeExport(w, flagExportFormat, proj); err != nil {
		return err
	}
	if flagExportOutput != "" && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %s\n", flagExportOutput)
	}
	return nil
}

func writeExport(w io.Writer, format string, proj model.Projection) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(proj)
	case "yaml", "yml":
		data, err := yaml.Marshal(proj)
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "csv":
		return writeCSV(w, proj)
	default:
		return fmt.Errorf("unknown export format %q (json, yaml, csv)", format)
	}
}

var csvHeader = []string{
	"month", "views", "registration_rate", "registered_users",
	"conversion_rate", "converted_users", "repeat_purchase_rate", "repeat_purchases",
	"total_conversions", "revenue", "programmers", "marketing_rate",
	model.CostDevelopment, model.CostMarketing, model.CostInfrastructure, model.CostTokens,
	"expenses", "net_profit",
}

func writeCSV(w io.Writer, proj model.Projection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	i := strconv.FormatInt
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

	for _, m := range proj.Months {
		row := []string{
			strconv.Itoa(m.Month), i(m.Views, 10), f(m.RegistrationRate), i(m.RegisteredUsers, 10),
			f(m.ConversionRate), i(m.ConvertedUsers, 10), f(m.RepeatPurchaseRate), i(m.RepeatPurchases, 10),
			i(m.TotalConversions, 10), f(m.Revenue), strconv.Itoa(m.Programmers), f(m.MarketingRate),
		}
		for _, cat := range model.CostCategories {
			row = append(row, f(m.Costs.Get(cat)))
		}
		row = append(row, f(m.Costs.Total()), f(m.NetProfit))
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	t := proj.Totals
	total := []string{
		"total", i(t.Views, 10), "", i(t.RegisteredUsers, 10),
		"", i(t.ConvertedUsers, 10), "", i(t.RepeatPurchases, 10),
		i(t.TotalConversions, 10), f(t.Revenue), "", "",
	}
	for _, cat := range model.CostCategories {
		total = append(total, f(t.Costs.Get(cat)))
	}
	total = append(total, f(t.Expenses()), f(t.NetProfit))
	if err := cw.Write(total); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}
