package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bitelog/bitelog/internal/config"
	"github.com/bitelog/bitelog/internal/logger"
	"github.com/bitelog/bitelog/internal/model"
	"github.com/bitelog/bitelog/internal/services"
	"github.com/bitelog/bitelog/internal/store"
	"github.com/bitelog/bitelog/internal/store/sqlite"
	"github.com/bitelog/bitelog/internal/suggest"
)

var rootCmd = &cobra.Command{
	Use:   "bitelog",
	Short: "Local food-intake log",
}

// shell bundles everything a subcommand needs. The CLI is a stand-in
// for the presentation layer; all logic stays in internal/.
type shell struct {
	store   store.Store
	journal *services.Journal
	memory  *services.FoodMemory
	loc     *time.Location
}

func openShell() (*shell, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	log := logger.NewWithLevel("bitelog", cfg.LogLevel)

	st, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	mem := services.NewFoodMemory(st)
	return &shell{
		store:   st,
		journal: services.NewJournal(st, mem, log),
		memory:  mem,
		loc:     cfg.Location(),
	}, nil
}

func (s *shell) close() { _ = s.store.Close() }

func main() {
	rootCmd.AddCommand(addCmd(), listCmd(), totalCmd(), suggestCmd(), deleteCmd(), exportCmd(), importCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a food entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := openShell()
			if err != nil {
				return err
			}
			defer sh.close()

			food, _ := cmd.Flags().GetString("food")
			calories, _ := cmd.Flags().GetInt("calories")
			volume, _ := cmd.Flags().GetString("volume")
			notes, _ := cmd.Flags().GetString("notes")
			at, _ := cmd.Flags().GetString("at")

			req := model.SubmitEntryRequest{FoodName: food, Calories: calories, Volume: volume, Notes: notes}
			if at != "" {
				ts, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("--at must be RFC3339: %w", err)
				}
				req.Timestamp = ts
			}

			e, err := sh.journal.Submit(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("logged %s (%d cal) id=%s\n", e.FoodName, e.Calories, e.ID)
			return nil
		},
	}
	cmd.Flags().String("food", "", "Food name (required)")
	cmd.Flags().Int("calories", 0, "Calories (required)")
	cmd.Flags().String("volume", "", "Portion descriptor, e.g. \"1 cup\"")
	cmd.Flags().String("notes", "", "Free-text notes")
	cmd.Flags().String("at", "", "Consumption time, RFC3339 (default now)")
	_ = cmd.MarkFlagRequired("food")
	_ = cmd.MarkFlagRequired("calories")
	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := openShell()
			if err != nil {
				return err
			}
			defer sh.close()

			date, _ := cmd.Flags().GetString("date")
			var entries []*model.LogEntry
			if date != "" {
				entries, err = sh.journal.EntriesForDate(cmd.Context(), date, sh.loc)
			} else {
				entries, err = sh.journal.Entries(cmd.Context())
			}
			if err != nil {
				return err
			}
			for _, e := range entries {
				printEntry(e, sh.loc)
			}
			return nil
		},
	}
	cmd.Flags().String("date", "", "Restrict to a local date (YYYY-MM-DD)")
	return cmd
}

func totalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "total",
		Short: "Daily calorie total",
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := openShell()
			if err != nil {
				return err
			}
			defer sh.close()

			date, _ := cmd.Flags().GetString("date")
			if date == "" {
				date = model.LocalDateKey(time.Now(), sh.loc)
			}
			total, err := sh.journal.DailyTotal(cmd.Context(), date, sh.loc)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d cal\n", date, total)
			return nil
		},
	}
	cmd.Flags().String("date", "", "Local date (YYYY-MM-DD), default today")
	return cmd
}

func suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <partial-name>",
		Short: "Suggest remembered foods matching a partial name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := openShell()
			if err != nil {
				return err
			}
			defer sh.close()

			ranked, err := sh.memory.RankedByFrequency(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range suggest.Filter(ranked, args[0]) {
				fmt.Printf("%s\t%d cal\t%s\t(used %dx)\n", p.FoodName, p.BaseCalories, p.DefaultVolume, p.Frequency)
			}
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete an entry by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := openShell()
			if err != nil {
				return err
			}
			defer sh.close()
			return sh.journal.Delete(cmd.Context(), args[0])
		},
	}
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the log as delimited text",
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := openShell()
			if err != nil {
				return err
			}
			defer sh.close()

			text, filename, err := sh.journal.Export(cmd.Context(), sh.loc)
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = filename
			}
			if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().String("out", "", "Output file (default the suggested filename)")
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import entries from delimited text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := openShell()
			if err != nil {
				return err
			}
			defer sh.close()

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			n, err := sh.journal.Import(cmd.Context(), string(raw))
			if err != nil {
				return err
			}
			fmt.Printf("imported %d entries\n", n)
			return nil
		},
	}
}

func printEntry(e *model.LogEntry, loc *time.Location) {
	ts := e.Timestamp.In(loc).Format("2006-01-02 15:04")
	line := fmt.Sprintf("%s  %-24s %5d cal", ts, e.FoodName, e.Calories)
	if e.Volume != "" {
		line += "  " + e.Volume
	}
	if e.Notes != "" {
		line += "  (" + e.Notes + ")"
	}
	fmt.Println(line + "  id=" + e.ID)
}
