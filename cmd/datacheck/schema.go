package main

import (
	"fmt"
	"io"
	"strings"

	"FinSignal/internal/repository"
	"FinSignal/pkg/util"

	"github.com/spf13/cobra"
)

func schemaCmd(opts *rootOptions) *cobra.Command {
	var (
		ticker     string
		market     string
		narratives string
	)
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print market columns, ticker coverage and narrative counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if market == "" {
				market = cfg.Data.MarketPath()
			}
			if narratives == "" {
				narratives = cfg.Data.NarrativePath()
			}
			l, err := opts.logger(cmd)
			if err != nil {
				return err
			}

			info, err := repository.InspectMarketSource(market)
			if err != nil {
				return err
			}
			ds := repository.NewLoader(market, narratives, repository.WithLoaderLogger(l)).Load()
			return printSchema(cmd.OutOrStdout(), info, ds, ticker)
		},
	}
	cmd.Flags().StringVar(&ticker, "ticker", "", "check coverage for a single ticker")
	cmd.Flags().StringVar(&market, "market", "", "market CSV path (overrides config)")
	cmd.Flags().StringVar(&narratives, "narratives", "", "narrative JSON path (overrides config)")
	return cmd
}

func printSchema(w io.Writer, info *repository.MarketSourceInfo, ds *repository.Dataset, ticker string) error {
	st := ds.Stats()
	fmt.Fprintf(w, "market:     %s\n", info.Path)
	fmt.Fprintf(w, "columns:    %s\n", strings.Join(info.Columns, ", "))
	if len(info.Missing) > 0 {
		fmt.Fprintf(w, "missing:    %s\n", strings.Join(info.Missing, ", "))
	}
	fmt.Fprintf(w, "rows:       %d (indexed %d)\n", info.Rows, st.MarketRecords)
	fmt.Fprintf(w, "tickers:    %d\n", len(info.Tickers))
	fmt.Fprintf(w, "narratives: %d\n", st.Narratives)
	fmt.Fprintf(w, "warnings:   %d\n", st.Warnings)

	if ticker == "" {
		return nil
	}
	t := util.NormalizeTicker(ticker)
	_, hasNarrative := ds.Narrative(t)
	fmt.Fprintf(w, "\n%s\n", t)
	fmt.Fprintf(w, "  in market source: %t\n", info.HasTicker(t))
	fmt.Fprintf(w, "  market rows:      %d\n", len(ds.MarketHistory(t)))
	fmt.Fprintf(w, "  has narrative:    %t\n", hasNarrative)
	if rec, ok := ds.LatestMarket(t); ok {
		fmt.Fprintf(w, "  latest:           debt_ratio=%g label=%d\n", rec.DebtRatio, rec.Label)
	}
	return nil
}
