package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wanplusss/momento/internal/model"
	"github.com/wanplusss/momento/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show [goal-id]",
		Short: "Show a goal with its analytics report",
		Long:  "Show a goal together with its trend, consistency, smoothed history, grade, and activity heatmap.",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}

	cmd.Flags().Bool("sessions", false, "Include the goal's full session history")

	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) {
	withSessions, _ := cmd.Flags().GetBool("sessions")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	report, err := s.Report(cmd.Context(), args[0])
	if err != nil {
		exitErr("show", err)
	}

	if withSessions {
		sessions, err := s.SessionsByGoal(cmd.Context(), args[0])
		if err != nil {
			exitErr("load sessions", err)
		}
		out := struct {
			*store.GoalReport
			Sessions []model.Session `json:"sessions"`
		}{report, sessions}
		b, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(b))
		return
	}

	b, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(b))
}
