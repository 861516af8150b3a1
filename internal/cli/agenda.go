package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ewchang/synapse/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "agenda [date]",
		Short: "Show the agenda for a date (default: today)",
		Long:  "Show plan tasks and memory items due on a date, given as YYYY.MM.DD.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runAgenda,
	}

	done := &cobra.Command{
		Use:   "done <key>",
		Short: "Toggle an agenda entry",
		Long:  "Toggle completion of an agenda entry: a task ID or a memoryID_index key.",
		Args:  cobra.ExactArgs(1),
		Run:   runAgendaDone,
	}
	cmd.AddCommand(done)

	RootCmd.AddCommand(cmd)
}

func runAgenda(cmd *cobra.Command, args []string) {
	now := time.Now()
	date := now
	if len(args) == 1 {
		parsed, err := time.ParseInLocation(model.DateFormat, args[0], time.Local)
		if err != nil {
			exitErr("agenda", fmt.Errorf("bad date %q, want YYYY.MM.DD", args[0]))
		}
		date = parsed
	}

	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	entries := b.Agenda(now, date)
	fmt.Println(titleStyle.Render("Agenda " + date.Format(model.DateFormat)))
	if len(entries) == 0 {
		fmt.Println(dimStyle.Render("nothing scheduled"))
		return
	}
	for _, e := range entries {
		fmt.Printf("%s %s %s\n", checkbox(e.Status), e.Title, dimStyle.Render("("+e.Key+")"))
		if e.Description != "" {
			fmt.Printf("    %s\n", e.Description)
		}
		if e.MapLink != "" {
			fmt.Printf("    %s\n", locationStyle.Render(e.MapLink))
		}
	}
}

func runAgendaDone(cmd *cobra.Command, args []string) {
	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	key := args[0]

	// Task IDs carry no underscore; composite item keys do.
	status, err := b.ToggleTask(cmd.Context(), key)
	if err != nil {
		status, err = b.ToggleItemKey(cmd.Context(), key)
	}
	if err != nil {
		exitErr("toggle", err)
	}
	fmt.Printf("%s %s\n", checkbox(status), key)
}
