package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/praxo/tax-calculator/internal/calculation"
	"github.com/praxo/tax-calculator/internal/config"
	"github.com/praxo/tax-calculator/internal/domain"
	"github.com/praxo/tax-calculator/internal/output"
	money "github.com/praxo/tax-calculator/pkg/decimal"
)

// logrusLogger adapts a logrus logger to the engine's Logger interface.
type logrusLogger struct {
	log *logrus.Logger
}

func (l logrusLogger) Debugf(format string, args ...any) { l.log.Debugf(format, args...) }
func (l logrusLogger) Infof(format string, args ...any)  { l.log.Infof(format, args...) }
func (l logrusLogger) Warnf(format string, args ...any)  { l.log.Warnf(format, args...) }
func (l logrusLogger) Errorf(format string, args ...any) { l.log.Errorf(format, args...) }

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	engine := calculation.NewTaxEngine()
	engine.SetLogger(logrusLogger{log})

	root := &cobra.Command{
		Use:   "praxtax",
		Short: "Austrian practice tax calculator",
		Long:  "Computes annual income tax, social security contributions and net income for employed and self-employed practice income.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newCalculateCmd(engine))
	root.AddCommand(newEstimateCmd(engine))
	root.AddCommand(newQuarterlyCmd())

	return root
}

func newCalculateCmd(engine *calculation.TaxEngine) *cobra.Command {
	var (
		inputFile  string
		format     string
		outputFile string
		saveReport bool
		withTips   bool
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Run a full tax calculation from a YAML request file",
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return err
			}
			for _, table := range request.Overrides {
				engine.Provider.Register(table)
			}

			result, err := engine.Calculate(request.Input)
			if err != nil {
				return err
			}
			if err := renderResult(cmd, result, format, outputFile); err != nil {
				return err
			}
			if saveReport {
				formatter := output.GetFormatterByName(format)
				filename, err := output.WriteFormatted(formatter, result, reportExtension(format))
				if err != nil {
					return fmt.Errorf("saving report failed: %w", err)
				}
				cmd.Printf("report written to %s\n", filename)
			}
			if withTips {
				printTips(cmd, engine.OptimizationTips(result))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "YAML calculation request file (required)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format: "+formatList())
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	cmd.Flags().BoolVar(&saveReport, "save", false, "also write a timestamped report file")
	cmd.Flags().BoolVar(&withTips, "tips", false, "append optimization tips")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func newEstimateCmd(engine *calculation.TaxEngine) *cobra.Command {
	var (
		employment string
		revenue    string
		expenses   string
		year       int
		format     string
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Quick estimate from employment gross and practice figures",
		RunE: func(cmd *cobra.Command, args []string) error {
			emp, err := parseAmount("employment", employment)
			if err != nil {
				return err
			}
			rev, err := parseAmount("revenue", revenue)
			if err != nil {
				return err
			}
			exp, err := parseAmount("expenses", expenses)
			if err != nil {
				return err
			}
			result, err := engine.QuickEstimate(emp.Decimal, rev.Sub(exp).Decimal, year)
			if err != nil {
				return err
			}
			return renderResult(cmd, result, format, "")
		},
	}

	cmd.Flags().StringVar(&employment, "employment", "0", "annual employment gross salary")
	cmd.Flags().StringVar(&revenue, "revenue", "0", "annual practice revenue")
	cmd.Flags().StringVar(&expenses, "expenses", "0", "annual practice expenses")
	cmd.Flags().IntVar(&year, "year", 0, "tax year (default: current year)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format: "+formatList())

	return cmd
}

func newQuarterlyCmd() *cobra.Command {
	var tax string

	cmd := &cobra.Command{
		Use:   "quarterly",
		Short: "Split an annual income tax into quarterly advance payments",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("tax", tax)
			if err != nil {
				return err
			}
			schedule := calculation.QuarterlyPayments(amount.Decimal)
			cmd.Printf("Q1: %s\nQ2: %s\nQ3: %s\nQ4: %s\nTotal: %s\n",
				output.FormatCurrency(schedule.Q1), output.FormatCurrency(schedule.Q2),
				output.FormatCurrency(schedule.Q3), output.FormatCurrency(schedule.Q4),
				output.FormatCurrency(schedule.Total))
			return nil
		},
	}

	cmd.Flags().StringVar(&tax, "tax", "0", "annual income tax amount")
	_ = cmd.MarkFlagRequired("tax")

	return cmd
}

// reportExtension maps a format name to the file extension of a saved report.
func reportExtension(format string) string {
	switch output.NormalizeFormatName(format) {
	case "csv":
		return "csv"
	case "json":
		return "json"
	default:
		return "txt"
	}
}

// parseAmount reads a euro amount flag value without a float round trip.
func parseAmount(flag, value string) (money.Money, error) {
	amount, err := money.NewMoneyFromString(value)
	if err != nil {
		return money.Money{}, fmt.Errorf("invalid --%s amount %q: %w", flag, value, err)
	}
	return amount, nil
}

func renderResult(cmd *cobra.Command, result *domain.ComprehensiveTaxResult, format, outputFile string) error {
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		return fmt.Errorf("unknown format %q (available: %s)", format, formatList())
	}
	data, err := formatter.Format(result)
	if err != nil {
		return fmt.Errorf("formatting failed: %w", err)
	}
	if outputFile != "" {
		return os.WriteFile(outputFile, data, 0644)
	}
	cmd.Print(string(data))
	return nil
}

func printTips(cmd *cobra.Command, tips []domain.Tip) {
	if len(tips) == 0 {
		return
	}
	cmd.Println("\nOPTIMIZATION TIPS")
	for _, tip := range tips {
		cmd.Printf("  [%s/%s] %s\n", tip.Category, tip.Type, tip.Message)
		if tip.EstimatedSavings != nil {
			cmd.Printf("    estimated savings: %s\n", output.FormatCurrency(*tip.EstimatedSavings))
		}
	}
}

func formatList() string {
	names := output.AvailableFormatterNames()
	list := ""
	for i, n := range names {
		if i > 0 {
			list += ", "
		}
		list += n
	}
	return list
}
