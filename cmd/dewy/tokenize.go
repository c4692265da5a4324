package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dewy-lang/dewy/spec"
	"github.com/dewy-lang/dewy/ustring"
)

func init() {
	cmd := &cobra.Command{
		Use:   "tokenize [rule file]",
		Short: "Tokenize a rule expression and print its meta-tokens",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTokenize,
	}
	rootCmd.AddCommand(cmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	src, err := readSource(path)
	if err != nil {
		return err
	}
	toks, err := spec.Tokenize(src)
	if err != nil {
		return err
	}
	for _, tok := range spec.StripWhitespace(toks) {
		switch tok.Kind {
		case spec.TokenKindString, spec.TokenKindCaseless, spec.TokenKindHashtag:
			fmt.Fprintf(os.Stdout, "%4v %-10v %v\n", tok.Offset, tok.Kind, ustring.RunesStr(tok.Text))
		case spec.TokenKindInt, spec.TokenKindHex:
			fmt.Fprintf(os.Stdout, "%4v %-10v %v\n", tok.Offset, tok.Kind, tok.Num)
		case spec.TokenKindCharset:
			fmt.Fprintf(os.Stdout, "%4v %-10v %v\n", tok.Offset, tok.Kind, tok.Set)
		default:
			fmt.Fprintf(os.Stdout, "%4v %v\n", tok.Offset, tok.Kind)
		}
	}
	return nil
}
