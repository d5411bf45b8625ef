package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wanplusss/momento/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Record a completed session",
		Long:  "Record a finished session against a goal. The goal's streaks and adaptive thresholds recompute in the same transaction.",
		Run:   runComplete,
	}

	cmd.Flags().StringP("goal", "g", "", "Goal id (required)")
	cmd.Flags().Float64P("count", "n", 0, "Achieved value (required)")
	cmd.Flags().Float64P("prediction", "p", 0, "Pre-session target")
	cmd.Flags().IntP("breakthroughs", "b", 0, "In-session target escalations")
	cmd.Flags().String("start", "", "Start time (RFC3339; default: end time)")
	cmd.Flags().String("end", "", "End time (RFC3339; default: now)")

	cmd.MarkFlagRequired("goal")
	cmd.MarkFlagRequired("count")

	RootCmd.AddCommand(cmd)
}

func runComplete(cmd *cobra.Command, args []string) {
	goalID, _ := cmd.Flags().GetString("goal")
	count, _ := cmd.Flags().GetFloat64("count")
	prediction, _ := cmd.Flags().GetFloat64("prediction")
	breakthroughs, _ := cmd.Flags().GetInt("breakthroughs")
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")

	var start, end time.Time
	var err error
	if endStr != "" {
		if end, err = time.Parse(time.RFC3339, endStr); err != nil {
			exitErr("parse end time", err)
		}
	}
	if startStr != "" {
		if start, err = time.Parse(time.RFC3339, startStr); err != nil {
			exitErr("parse start time", err)
		}
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sess, err := s.CompleteSession(cmd.Context(), store.CompleteParams{
		GoalID:        goalID,
		FinalCount:    count,
		Prediction:    prediction,
		Breakthroughs: breakthroughs,
		StartTime:     start,
		EndTime:       end,
	})
	if err != nil {
		exitErr("complete", err)
	}

	b, _ := json.MarshalIndent(sess, "", "  ")
	fmt.Println(string(b))
}
