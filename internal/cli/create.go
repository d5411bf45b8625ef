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
		Use:   "create [name]",
		Short: "Create a goal",
		Long:  "Create a goal with baseline/momentum/stretch thresholds. Unset thresholds take the defaults 1/3/5.",
		Args:  cobra.ExactArgs(1),
		Run:   runCreate,
	}

	cmd.Flags().StringP("mode", "m", "counter", "Mode: counter or timer")
	cmd.Flags().Float64("baseline", 0, "Minimum expected effort")
	cmd.Flags().Float64("momentum", 0, "Comfortable working pace")
	cmd.Flags().Float64("stretch", 0, "Ambitious daily target")
	cmd.Flags().Float64("increment", 0, "How much stretch grows per breakthrough")
	cmd.Flags().Float64("step", 0, "Units added per tap")
	cmd.Flags().StringP("unit", "u", "", "Unit label (reps, min, pages)")
	cmd.Flags().IntP("window", "w", 0, "Moving average window for calibration")

	RootCmd.AddCommand(cmd)
}

func runCreate(cmd *cobra.Command, args []string) {
	mode, _ := cmd.Flags().GetString("mode")
	baseline, _ := cmd.Flags().GetFloat64("baseline")
	momentum, _ := cmd.Flags().GetFloat64("momentum")
	stretch, _ := cmd.Flags().GetFloat64("stretch")
	increment, _ := cmd.Flags().GetFloat64("increment")
	step, _ := cmd.Flags().GetFloat64("step")
	unit, _ := cmd.Flags().GetString("unit")
	window, _ := cmd.Flags().GetInt("window")

	cfg := loadConfig()
	if window == 0 {
		window = cfg.DefaultWindow
	}
	if step == 0 {
		step = cfg.DefaultStep
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	goal, err := s.CreateGoal(cmd.Context(), store.CreateGoalParams{
		Name:                args[0],
		Mode:                model.GoalMode(mode),
		Baseline:            baseline,
		Momentum:            momentum,
		Stretch:             stretch,
		Increment:           increment,
		StepSize:            step,
		Unit:                unit,
		MovingAverageWindow: window,
	})
	if err != nil {
		exitErr("create", err)
	}

	b, _ := json.MarshalIndent(goal, "", "  ")
	fmt.Println(string(b))
}
