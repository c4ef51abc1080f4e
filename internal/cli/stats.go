package cli

import (
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func init() {
	statsCmd.Flags().IntVar(&statsDays, "days", 14, "Number of days to chart")
	rootCmd.AddCommand(statsCmd)
}

var statsDays int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completions per day",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if statsDays < 1 {
		statsDays = 1
	}

	to := time.Now()
	from := to.AddDate(0, 0, -(statsDays - 1))
	counts, err := s.CompletionsPerDay(from, to)
	if err != nil {
		return err
	}

	byDate := make(map[string]int, len(counts))
	total := 0
	for _, c := range counts {
		byDate[c.Date] = c.Count
		total += c.Count
	}

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6C63FF"))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#414868"))

	chart := barchart.New(4*statsDays, 12)
	var bars []barchart.BarData
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		count := byDate[d.Format("2006-01-02")]
		style := barStyle
		if count == 0 {
			style = emptyStyle
		}
		bars = append(bars, barchart.BarData{
			Label: d.Format("02"),
			Values: []barchart.BarValue{
				{Name: "completions", Value: float64(count), Style: style},
			},
		})
	}
	chart.PushAll(bars)
	chart.Draw()

	fmt.Printf("Completions, last %d days (%d total)\n\n", statsDays, total)
	fmt.Println(chart.View())
	return nil
}
