package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wanplusss/momento/internal/engine"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rest",
		Short: "Mark a rest day",
		Long:  "Exempt a calendar day from breaking a goal's streak. Marking the same day twice is a no-op.",
		Run:   runRest,
	}

	cmd.Flags().StringP("goal", "g", "", "Goal id (required)")
	cmd.Flags().String("date", "", "Day to exempt (YYYY-MM-DD; default: today)")

	cmd.MarkFlagRequired("goal")

	RootCmd.AddCommand(cmd)
}

func runRest(cmd *cobra.Command, args []string) {
	goalID, _ := cmd.Flags().GetString("goal")
	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = engine.DayString(time.Now())
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	goal, err := s.MarkRestDay(cmd.Context(), goalID, date)
	if err != nil {
		exitErr("rest", err)
	}

	b, _ := json.MarshalIndent(goal, "", "  ")
	fmt.Println(string(b))
}
