package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dewy-lang/dewy/spec"
)

var foldFlags = struct {
	repr *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "fold [rule file]",
		Short: "Parse and constant-fold a rule expression, then print it back",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFold,
	}
	foldFlags.repr = cmd.Flags().Bool("repr", false, "print the structural tree instead of surface syntax")
	rootCmd.AddCommand(cmd)
}

func runFold(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	src, err := readSource(path)
	if err != nil {
		return err
	}
	root, err := spec.ParseSource(src)
	if err != nil {
		return err
	}
	spec.FoldAll(&root)
	if err := spec.CheckSetOperands(root); err != nil {
		return err
	}
	if *foldFlags.repr {
		fmt.Fprint(os.Stdout, spec.Repr(root))
		return nil
	}
	fmt.Fprintln(os.Stdout, spec.String(root))
	return nil
}
