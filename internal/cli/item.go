package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ewchang/synapse/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage structured items inside a memory",
		Long:  "Items are addressed by memory ID and position; deleting an item shifts later positions down by one.",
	}

	done := &cobra.Command{
		Use:   "done <memoryID> <index>",
		Short: "Toggle an item's completion",
		Args:  cobra.ExactArgs(2),
		Run:   runItemDone,
	}

	rm := &cobra.Command{
		Use:   "rm <memoryID> <index>",
		Short: "Delete an item (a memory emptied this way is removed)",
		Args:  cobra.ExactArgs(2),
		Run:   runItemRm,
	}

	edit := &cobra.Command{
		Use:   "edit <memoryID> <index>",
		Short: "Edit an item's fields",
		Args:  cobra.ExactArgs(2),
		Run:   runItemEdit,
	}
	edit.Flags().String("title", "", "New title")
	edit.Flags().String("description", "", "New description")
	edit.Flags().String("location", "", "New location")
	edit.Flags().String("note", "", "New action note")
	edit.Flags().String("date", "", "New target date (YYYY.MM.DD)")
	edit.Flags().Float64("rating", -1, "New rating (negative clears it)")

	cmd.AddCommand(done, rm, edit)
	RootCmd.AddCommand(cmd)
}

func itemAddr(args []string) (string, int) {
	index, err := strconv.Atoi(args[1])
	if err != nil {
		exitErr("item", fmt.Errorf("bad index %q", args[1]))
	}
	return args[0], index
}

func runItemDone(cmd *cobra.Command, args []string) {
	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	memoryID, index := itemAddr(args)
	status, err := b.ToggleItem(cmd.Context(), memoryID, index)
	if err != nil {
		exitErr("toggle item", err)
	}
	fmt.Printf("%s %s_%d\n", checkbox(status), memoryID, index)
}

func runItemRm(cmd *cobra.Command, args []string) {
	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	memoryID, index := itemAddr(args)
	if err := b.DeleteItem(cmd.Context(), memoryID, index); err != nil {
		exitErr("delete item", err)
	}
}

func runItemEdit(cmd *cobra.Command, args []string) {
	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	memoryID, index := itemAddr(args)
	mem, err := b.MemoryByID(memoryID)
	if err != nil {
		exitErr("edit item", err)
	}
	if index < 0 || index >= len(mem.Items) {
		exitErr("edit item", fmt.Errorf("index %d out of range", index))
	}

	item := overlayItemEdits(cmd.Flags(), mem.Items[index])
	if err := b.UpdateItem(cmd.Context(), memoryID, index, item); err != nil {
		exitErr("edit item", err)
	}
	printItem(memoryID, index, item)
}

// overlayItemEdits applies explicitly passed flags onto the current item.
// Only Changed flags count, so --title "" clears the title and a negative
// --rating clears the rating.
func overlayItemEdits(flags *pflag.FlagSet, item model.StructuredItem) model.StructuredItem {
	if flags.Changed("title") {
		item.Title, _ = flags.GetString("title")
	}
	if flags.Changed("description") {
		item.Description, _ = flags.GetString("description")
	}
	if flags.Changed("location") {
		item.Location, _ = flags.GetString("location")
	}
	if flags.Changed("note") {
		item.ActionNote, _ = flags.GetString("note")
	}
	if flags.Changed("date") {
		item.TargetDate, _ = flags.GetString("date")
	}
	if flags.Changed("rating") {
		v, _ := flags.GetFloat64("rating")
		if v >= 0 {
			item.Rating = &v
		} else {
			item.Rating = nil
		}
	}
	return item
}

func printItem(memoryID string, index int, it model.StructuredItem) {
	fmt.Printf("%s %s %s\n", checkbox(it.Status), it.Title, dimStyle.Render(fmt.Sprintf("(%s_%d)", memoryID, index)))
	if it.Description != "" {
		fmt.Printf("    %s\n", it.Description)
	}
}
