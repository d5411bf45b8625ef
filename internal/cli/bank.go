package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	bankCmd := &cobra.Command{
		Use:   "bank",
		Short: "Bank a goal's progress and pause it",
		Long:  "Snapshot the goal's streak and thresholds, then pause it. The current streak resets; history is preserved.",
		Run:   runBank,
	}
	bankCmd.Flags().StringP("goal", "g", "", "Goal id (required)")
	bankCmd.MarkFlagRequired("goal")

	resumeCmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume a banked goal",
		Run:   runResume,
	}
	resumeCmd.Flags().StringP("goal", "g", "", "Goal id (required)")
	resumeCmd.MarkFlagRequired("goal")

	RootCmd.AddCommand(bankCmd, resumeCmd)
}

func runBank(cmd *cobra.Command, args []string) {
	goalID, _ := cmd.Flags().GetString("goal")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	goal, err := s.BankProgress(cmd.Context(), goalID)
	if err != nil {
		exitErr("bank", err)
	}

	b, _ := json.MarshalIndent(goal, "", "  ")
	fmt.Println(string(b))
}

func runResume(cmd *cobra.Command, args []string) {
	goalID, _ := cmd.Flags().GetString("goal")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	goal, err := s.Resume(cmd.Context(), goalID)
	if err != nil {
		exitErr("resume", err)
	}

	b, _ := json.MarshalIndent(goal, "", "  ")
	fmt.Println(string(b))
}
