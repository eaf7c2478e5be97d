package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/nalacredit/depositcore/internal/domain"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "depositcore-cli",
		Short: "DepositCore CLI tool",
		Long:  `A command line interface for the term deposit engine: offline calculators and API queries.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the DepositCore API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(interestCmd())
	rootCmd.AddCommand(maturityCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(accountCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func interestCmd() *cobra.Command {
	var (
		principal string
		rate      string
		term      int
		opened    string
	)

	cmd := &cobra.Command{
		Use:   "interest",
		Short: "Compute projected and accrued interest offline",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := decimal.NewFromString(principal)
			if err != nil {
				return fmt.Errorf("invalid principal: %w", err)
			}
			r, err := decimal.NewFromString(rate)
			if err != nil {
				return fmt.Errorf("invalid rate: %w", err)
			}
			t, err := domain.ParseTermMonths(fmt.Sprint(term))
			if err != nil {
				return err
			}

			out := map[string]any{
				"projected_interest": domain.ProjectedInterestAtMaturity(p, r, t),
			}
			if opened != "" {
				openedAt, err := time.Parse("2006-01-02", opened)
				if err != nil {
					return fmt.Errorf("invalid opening date: %w", err)
				}
				out["accrued_interest"] = domain.AccruedInterestByElapsedDays(p, r, openedAt, time.Now().UTC())
			}

			printJSON(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&principal, "principal", "", "Principal amount")
	cmd.Flags().StringVar(&rate, "rate", "", "Monthly interest rate percent")
	cmd.Flags().IntVar(&term, "term", 12, "Term in months (3, 6, 12, 24)")
	cmd.Flags().StringVar(&opened, "opened", "", "Opening date (YYYY-MM-DD) to compute accrued interest")
	cmd.MarkFlagRequired("principal")
	cmd.MarkFlagRequired("rate")

	return cmd
}

func maturityCmd() *cobra.Command {
	var (
		opened string
		term   int
	)

	cmd := &cobra.Command{
		Use:   "maturity",
		Short: "Compute the maturity date for an opening date and term",
		RunE: func(cmd *cobra.Command, args []string) error {
			openedAt, err := time.Parse("2006-01-02", opened)
			if err != nil {
				return fmt.Errorf("invalid opening date: %w", err)
			}
			t, err := domain.ParseTermMonths(fmt.Sprint(term))
			if err != nil {
				return err
			}

			maturity := domain.AddMonthsClamped(openedAt, int(t))
			printJSON(map[string]any{
				"opening_date":   openedAt.Format("2006-01-02"),
				"maturity_date":  maturity.Format("2006-01-02"),
				"days_remaining": domain.DaysRemaining(maturity, time.Now().UTC()),
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&opened, "opened", "", "Opening date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&term, "term", 12, "Term in months (3, 6, 12, 24)")
	cmd.MarkFlagRequired("opened")

	return cmd
}

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify TYPE [STATUS]",
		Short: "Classify a raw transaction type and status",
		Args:  cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			classifier := domain.NewClassifier(domain.ClassifierConfig{})

			rawStatus := ""
			if len(args) > 1 {
				rawStatus = args[1]
			}

			printJSON(map[string]string{
				"type":   string(classifier.ClassifyType(args[0])),
				"status": string(classifier.NormalizeStatus(rawStatus)),
			})
		},
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations against the running service",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get ACCOUNT_NUMBER",
		Short: "Fetch one account with derived maturity and interest fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchAndPrint("/api/v1/deposits/" + args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "summary",
		Short: "Fetch the portfolio maturity summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchAndPrint("/api/v1/deposits/summary")
		},
	})

	return cmd
}

func fetchAndPrint(path string) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(body))
	}

	var pretty any
	if err := json.Unmarshal(body, &pretty); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	printJSON(pretty)
	return nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to encode output: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
