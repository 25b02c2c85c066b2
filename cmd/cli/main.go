package main

import (
	"context"
	"etfsim/cmd"
	"etfsim/internal/domain"
	"etfsim/internal/logger"
	"etfsim/internal/service"
	"etfsim/internal/util"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type dependencyLoader func() (*cmd.Dependencies, error)

func newRootCommand(load dependencyLoader) *cobra.Command {
	root := &cobra.Command{
		Use:           "etfsim",
		Short:         "Simulate a lump-sum investment in a global ETF",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newSimulateCommand(load),
		newServeCommand(load),
		newEtfsCommand(),
	)
	return root
}

func newSimulateCommand(load dependencyLoader) *cobra.Command {
	var (
		symbol     string
		start      string
		investment float64
		csvPath    string
	)

	c := &cobra.Command{
		Use:   "simulate",
		Short: "Run one simulation and print its metrics",
		RunE: func(c *cobra.Command, args []string) error {
			deps, err := load()
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(deps)

			ctx, cancel := context.WithTimeout(c.Context(), deps.Config.Timeout)
			defer cancel()
			ctx = logger.NewContext(ctx, deps.Logger)

			result, err := deps.SimulationService.Simulate(ctx, service.SimulationInput{
				Symbol:     symbol,
				StartDate:  start,
				Investment: decimal.NewFromFloat(investment),
			})
			if err != nil {
				return err
			}

			if err := printResult(c.OutOrStdout(), result); err != nil {
				return err
			}

			if csvPath != "" {
				out, err := service.ExportCsv(result)
				if err != nil {
					return err
				}
				if err := os.WriteFile(csvPath, out, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", csvPath, err)
				}
				fmt.Fprintf(c.OutOrStdout(), "wrote %d rows to %s\n", len(result.Values), csvPath)
			}
			return nil
		},
	}

	c.Flags().StringVar(&symbol, "symbol", domain.DefaultSymbol, "ETF ticker")
	c.Flags().StringVar(&start, "start", domain.DefaultStartDate, "start date, YYYY-MM-DD")
	c.Flags().Float64Var(&investment, "investment", domain.DefaultInvestment, "lump sum in USD")
	c.Flags().StringVar(&csvPath, "csv", "", "optional path to write the daily series as csv")
	return c
}

func newServeCommand(load dependencyLoader) *cobra.Command {
	var port int

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the web dashboard and json api",
		RunE: func(c *cobra.Command, args []string) error {
			deps, err := load()
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(deps)

			if port == 0 {
				port = deps.Config.Port
			}
			deps.Logger.Infow("starting api", "port", port)
			return deps.ApiHandler.StartApi(port)
		},
	}

	c.Flags().IntVar(&port, "port", 0, "listen port, defaults to the configured port")
	return c
}

func newEtfsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "etfs",
		Short: "List the supported ETFs",
		RunE: func(c *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SYMBOL\tNAME")
			for _, etf := range domain.ListEtfs() {
				fmt.Fprintf(w, "%s\t%s\n", etf.Symbol, etf.Name)
			}
			return w.Flush()
		},
	}
}

func printResult(out io.Writer, result *service.SimulationResult) error {
	fmt.Fprintln(out, result.Etf.ChartTitle())
	fmt.Fprintf(
		out,
		"%d trading days from %s, $%s grew to $%.2f\n\n",
		len(result.Values),
		util.FormatDate(result.Values.First().Date),
		result.Investment.StringFixed(2),
		result.Values.Last().Value,
	)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Metric\tValue\t")
	for _, row := range result.Metrics.Rows() {
		fmt.Fprintf(w, "%s\t%s\t\n", row.Label, domain.FormatPercent(row.Value))
	}
	return w.Flush()
}

func main() {
	if err := newRootCommand(cmd.InitializeDependencies).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
