package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories and their projects",
		Run:   runCategoryList,
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		Run:   runCategoryAdd,
	}

	rename := &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a category, updating every memory under it",
		Args:  cobra.ExactArgs(2),
		Run:   runCategoryRename,
	}

	rm := &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a category (the last one cannot be deleted)",
		Args:  cobra.ExactArgs(1),
		Run:   runCategoryRm,
	}

	cmd.AddCommand(list, add, rename, rm)
	RootCmd.AddCommand(cmd)
}

func runCategoryList(cmd *cobra.Command, args []string) {
	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	h := b.Hierarchy()
	for _, c := range b.Categories {
		fmt.Println(titleStyle.Render(c))
		for _, p := range h[c] {
			fmt.Printf("  %s\n", p)
		}
	}
	// Orphaned categories from memories whose category was deleted.
	known := make(map[string]bool)
	for _, c := range b.Categories {
		known[c] = true
	}
	for c, projects := range h {
		if known[c] {
			continue
		}
		fmt.Println(noticeStyle.Render(c + " (deleted)"))
		for _, p := range projects {
			fmt.Printf("  %s\n", p)
		}
	}
}

func runCategoryAdd(cmd *cobra.Command, args []string) {
	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	if err := b.AddCategory(cmd.Context(), args[0]); err != nil {
		exitErr("add category", err)
	}
	fmt.Println(args[0])
}

func runCategoryRename(cmd *cobra.Command, args []string) {
	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	if err := b.RenameCategory(cmd.Context(), args[0], args[1]); err != nil {
		exitErr("rename category", err)
	}
	fmt.Printf("%s -> %s\n", args[0], args[1])
}

func runCategoryRm(cmd *cobra.Command, args []string) {
	b, closeStore, err := openBrain(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer closeStore()

	if err := b.DeleteCategory(cmd.Context(), args[0]); err != nil {
		exitErr("delete category", err)
	}
}
