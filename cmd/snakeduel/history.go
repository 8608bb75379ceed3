package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-duel/internal/platform/tui"
	"github.com/vovakirdan/snake-duel/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded matches",
	Long: `Show recorded matches, newest first, with overall standings.

By default opens an interactive table. Use --plain to print to stdout.

Examples:
  snakeduel history
  snakeduel history --plain --limit 20
  snakeduel history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print matches instead of opening the table")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Matches to print with --plain")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded matches")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening match database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearMatches(); err != nil {
			return fmt.Errorf("clearing matches: %w", err)
		}
		fmt.Println("Match history cleared.")
		return nil
	}

	if !flagPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunHistory(store, width, height)
	}

	matches, err := store.RecentMatches(flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving matches: %w", err)
	}

	fmt.Println("Recent matches")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Run 'snakeduel play' or 'snakeduel arena' to record some!")
		return nil
	}

	fmt.Printf("  %-16s  %-10s  %-10s  %-10s  %-7s  %-6s  %-10s  %s\n",
		"Date", "Mode", "A", "B", "Score", "Winner", "Reason", "Ticks")
	fmt.Printf("  %-16s  %-10s  %-10s  %-10s  %-7s  %-6s  %-10s  %s\n",
		"----", "----", "-", "-", "-----", "------", "------", "-----")

	for _, m := range matches {
		winner := "draw"
		switch m.Winner {
		case 1:
			winner = "A"
		case 2:
			winner = "B"
		}
		fmt.Printf("  %-16s  %-10s  %-10s  %-10s  %-7s  %-6s  %-10s  %d\n",
			m.CreatedAt.Format("2006-01-02 15:04"),
			m.Mode, m.SourceA, m.SourceB,
			fmt.Sprintf("%d:%d", m.ScoreA, m.ScoreB),
			winner, m.EndReason, m.Ticks)
	}

	st, err := store.Standings()
	if err == nil && st.Matches > 0 {
		fmt.Println()
		fmt.Printf("All time: %d matches, A %d, B %d, draws %d (truncated %d)\n",
			st.Matches, st.WinsA, st.WinsB, st.Draws, st.Truncated)
	}
	return nil
}
