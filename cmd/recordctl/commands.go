package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"careervision/internal/app"
	"careervision/internal/config"
	"careervision/internal/logger"
	"careervision/internal/model"

	"github.com/spf13/cobra"
)

var Version = "dev"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "recordctl",
		Short:         "Inspect and manage stored survey records",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a config file (default: ./config.yaml and environment)")

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(clearCmd())
	return rootCmd
}

func openStore(cmd *cobra.Command) (*app.App, error) {
	path, _ := cmd.Flags().GetString("config")
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	// Keep stdout clean for the command output.
	return app.OpenRecordRepo(context.Background(), cfg, logger.New("error", "console"))
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored records, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.RecordRepo.List(cmd.Context())
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			return printRecords(cmd, records)
		},
	}
	cmd.Flags().Bool("json", false, "Print records as JSON")
	return cmd
}

func printRecords(cmd *cobra.Command, records []*model.StorageRecord) error {
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No records.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tNAME\tEMAIL\tPHONE\tCODE\tSCORES")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.Date, r.Name, r.Email, r.Phone, r.RiasecCode, formatScores(r.Scores))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d record(s)\n", len(records))
	return nil
}

func formatScores(scores model.ScoreVector) string {
	parts := make([]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		parts = append(parts, fmt.Sprintf("%s=%.1f", c.Letter(), scores[c]))
	}
	return strings.Join(parts, " ")
}

func clearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				return errors.New("refusing to clear records without --yes")
			}

			a, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.RecordRepo.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All records deleted.")
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Confirm deletion")
	return cmd
}
