package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Inspect and remove raw memories",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List memories",
		Run:   runMemoryList,
	}
	list.Flags().StringP("category", "c", "", "Filter by category")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one memory with its original text",
		Args:  cobra.ExactArgs(1),
		Run:   runMemoryShow,
	}

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a memory outright",
		Args:  cobra.ExactArgs(1),
		Run:   runMemoryRm,
	}

	cmd.AddCommand(list, show, rm)
	RootCmd.AddCommand(cmd)
}

func runMemoryList(cmd *cobra.Command, args []string) {
	category, _ := cmd.Flags().GetString("category")

	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	for _, m := range b.Memories {
		if category != "" && m.RootCategory != category {
			continue
		}
		fmt.Printf("%s  %s / %s  %s  %s\n",
			dimStyle.Render(m.ID),
			m.RootCategory, m.Project,
			dimStyle.Render(fmt.Sprintf("%d items", len(m.Items))),
			dimStyle.Render(m.CreatedAt.Format("2006.01.02")))
	}
}

func runMemoryShow(cmd *cobra.Command, args []string) {
	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	mem, err := b.MemoryByID(args[0])
	if err != nil {
		exitErr("show memory", err)
	}
	printMemory(*mem)
	if mem.OriginalText != "" {
		fmt.Println(dimStyle.Render("---"))
		fmt.Println(mem.OriginalText)
	}
	if len(mem.Image) > 0 {
		fmt.Println(dimStyle.Render(fmt.Sprintf("attached image: %d bytes", len(mem.Image))))
	}
}

func runMemoryRm(cmd *cobra.Command, args []string) {
	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	if err := b.DeleteMemory(cmd.Context(), args[0]); err != nil {
		exitErr("delete memory", err)
	}
}
