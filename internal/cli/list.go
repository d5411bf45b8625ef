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
		Use:   "list",
		Short: "List goals",
		Run:   runList,
	}

	cmd.Flags().StringP("status", "s", "", "Filter by status: active or banked")
	cmd.Flags().Bool("ids-only", false, "Only output goal ids and names")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	status, _ := cmd.Flags().GetString("status")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	goals, err := s.ListGoals(cmd.Context(), store.ListGoalsParams{
		Status: model.GoalStatus(status),
	})
	if err != nil {
		exitErr("list", err)
	}

	if idsOnly {
		for _, g := range goals {
			fmt.Printf("%s\t%s\n", g.ID, g.Name)
		}
		return
	}

	b, _ := json.MarshalIndent(goals, "", "  ")
	fmt.Println(string(b))
}
