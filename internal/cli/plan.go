package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ewchang/synapse/internal/brain"
)

func init() {
	cmd := &cobra.Command{
		Use:   "plan <goal>",
		Short: "Generate a day-numbered plan for a goal",
		Long:  "Ask the model for a multi-day plan and install it as the task list, replacing any previous plan.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runPlan,
	}

	cmd.Flags().IntP("days", "n", 7, "Plan duration in days")

	RootCmd.AddCommand(cmd)
}

func runPlan(cmd *cobra.Command, args []string) {
	days, _ := cmd.Flags().GetInt("days")
	if days < 1 {
		exitErr("plan", fmt.Errorf("days must be at least 1"))
	}

	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	gw, err := openGateway()
	if err != nil {
		exitErr("gateway", err)
	}

	fmt.Println(dimStyle.Render("planning..."))
	plan, err := gw.Plan(cmd.Context(), strings.Join(args, " "), days)
	if err != nil {
		exitErr("plan failed, nothing was saved", err)
	}

	planDays := make([]brain.PlanDay, 0, len(plan.Tasks))
	for _, t := range plan.Tasks {
		planDays = append(planDays, brain.PlanDay{Day: t.Day, Title: t.Title})
	}
	tasks, err := b.InstallPlan(cmd.Context(), planDays)
	if err != nil {
		exitErr("save plan", err)
	}

	if plan.Name != "" {
		fmt.Println(titleStyle.Render(plan.Name))
	}
	for _, t := range tasks {
		fmt.Printf("%s %s %s\n", checkbox(t.Status), t.Title, dimStyle.Render("("+t.ID+")"))
	}
}
