package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dewy-lang/dewy/spec"
	"github.com/dewy-lang/dewy/spec/test"
)

var testFlags = struct {
	fold *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "test <rule file> <expected tree file>",
		Short: "Check that a rule expression parses to an expected tree",
		Long: `test parses a rule expression and compares the result against an
expected tree written in tag notation, for example:

    or(string("foo"), cat(charset("[a-z]"), star(id("digit"))))`,
		Args: cobra.ExactArgs(2),
		RunE: runTest,
	}
	testFlags.fold = cmd.Flags().Bool("fold", false, "fold the parsed tree before comparing")
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	src, err := readSource(args[0])
	if err != nil {
		return err
	}
	expectedSrc, err := readSource(args[1])
	if err != nil {
		return err
	}

	root, err := spec.ParseSource(src)
	if err != nil {
		return err
	}
	if *testFlags.fold {
		spec.FoldAll(&root)
	}
	expected, err := test.ParseTree(string(expectedSrc))
	if err != nil {
		return fmt.Errorf("cannot read the expected tree: %w", err)
	}

	if !spec.Equal(root, expected) {
		fmt.Fprintf(os.Stdout, "mismatch\n--- want\n%v--- got\n%v", spec.Repr(expected), spec.Repr(root))
		return fmt.Errorf("the parsed tree does not match the expected tree")
	}
	fmt.Fprintln(os.Stdout, "ok")
	return nil
}
