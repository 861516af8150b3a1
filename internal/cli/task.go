package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage plan tasks",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List plan tasks",
		Run:   runTaskList,
	}

	done := &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		Run:   runTaskDone,
	}

	feedback := &cobra.Command{
		Use:   "feedback <id> <text>",
		Short: "Record feedback on a task",
		Args:  cobra.MinimumNArgs(2),
		Run:   runTaskFeedback,
	}

	cmd.AddCommand(list, done, feedback)
	RootCmd.AddCommand(cmd)
}

func runTaskList(cmd *cobra.Command, args []string) {
	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	if len(b.Tasks) == 0 {
		fmt.Println(dimStyle.Render("no plan installed"))
		return
	}
	for _, t := range b.Tasks {
		fmt.Printf("%s %s %s\n", checkbox(t.Status), t.Title, dimStyle.Render("("+t.ID+")"))
		if t.Feedback != "" {
			fmt.Printf("    %s\n", dimStyle.Render(t.Feedback))
		}
	}
}

func runTaskDone(cmd *cobra.Command, args []string) {
	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	status, err := b.ToggleTask(cmd.Context(), args[0])
	if err != nil {
		exitErr("toggle task", err)
	}
	fmt.Printf("%s %s\n", checkbox(status), args[0])
}

func runTaskFeedback(cmd *cobra.Command, args []string) {
	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	if err := b.SetTaskFeedback(cmd.Context(), args[0], strings.Join(args[1:], " ")); err != nil {
		exitErr("feedback", err)
	}
}
