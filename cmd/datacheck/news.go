package main

import (
	"fmt"
	"time"

	"FinSignal/internal/service/finnhub"
	applogger "FinSignal/pkg/logger"
	"FinSignal/pkg/util"

	"github.com/spf13/cobra"
)

func newsCmd(opts *rootOptions) *cobra.Command {
	var (
		ticker string
		days   int
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Print recent company headlines from Finnhub",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := util.NormalizeTicker(ticker)
			if t == "" {
				return fmt.Errorf("--ticker is required")
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			l, err := opts.logger(cmd)
			if err != nil {
				return err
			}

			client := finnhub.New(cfg.Finnhub.APIKey, cfg.Finnhub.BaseURL, cfg.Finnhub.Timeout)
			items, err := client.CompanyNews(cmd.Context(), t, days)
			if err != nil {
				return err
			}
			l.Debug("news fetched", applogger.String("ticker", t), applogger.Int("items", len(items)))

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s: %d headlines\n", t, len(items))
			for i, it := range items {
				if limit > 0 && i >= limit {
					break
				}
				ts := time.Unix(it.Datetime, 0).UTC().Format(time.DateTime)
				fmt.Fprintf(w, "- [%s] %s (%s)\n", ts, it.Headline, it.Source)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&ticker, "ticker", "", "ticker symbol")
	cmd.Flags().IntVar(&days, "days", 7, "look-back window in days")
	cmd.Flags().IntVar(&limit, "limit", 10, "max headlines to print (0 = all)")
	return cmd
}
