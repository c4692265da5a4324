package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	derr "github.com/dewy-lang/dewy/error"
	"github.com/dewy-lang/dewy/grammar"
	"github.com/dewy-lang/dewy/spec"
)

var compileFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "compile [grammar file]",
		Short: "Compile a grammar into CFG productions",
		Long: `compile reads a grammar file, one rule per line in the form

    #name = expression

parses and folds every rule, lowers the folded trees to context-free
productions over a shared symbol store, and prints the result.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "write the result to a file instead of stdout")
	rootCmd.AddCommand(cmd)
}

type rawRule struct {
	name string
	src  string
	line int
}

// splitRules cuts a grammar file into per-rule sources. Blank lines and
// lines starting with // are skipped.
func splitRules(src []byte) ([]rawRule, error) {
	var rules []rawRule
	for i, line := range strings.Split(string(src), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		name, body, ok := strings.Cut(trimmed, "=")
		if !ok {
			return nil, &derr.SpecError{
				Cause:  fmt.Errorf("a rule must have the form #name = expression"),
				Offset: -1,
				Detail: fmt.Sprintf("line %v", i+1),
			}
		}
		name = strings.TrimPrefix(strings.TrimSpace(name), "#")
		if name == "" {
			return nil, &derr.SpecError{
				Cause:  fmt.Errorf("a rule needs a name"),
				Offset: -1,
				Detail: fmt.Sprintf("line %v", i+1),
			}
		}
		rules = append(rules, rawRule{name: name, src: body, line: i + 1})
	}
	return rules, nil
}

func runCompile(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	src, err := readSource(path)
	if err != nil {
		return err
	}
	rules, err := splitRules(src)
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		return fmt.Errorf("the grammar has no rules")
	}

	store := grammar.NewSymbolStore()
	lw := grammar.NewLowerer(store)
	var specErrs derr.SpecErrors
	for _, rule := range rules {
		root, err := spec.ParseSource([]byte(rule.src))
		if err != nil {
			specErrs = append(specErrs, ruleError(path, rule, err))
			continue
		}
		spec.FoldAll(&root)
		logger.Debug("folded rule",
			zap.String("rule", rule.name),
			zap.String("form", spec.String(root)),
		)
		if _, err := lw.LowerRule([]rune(rule.name), root); err != nil {
			specErrs = append(specErrs, ruleError(path, rule, err))
		}
	}
	if len(specErrs) > 0 {
		return specErrs
	}

	logger.Debug("lowered grammar",
		zap.Int("symbols", store.Len()),
		zap.Int("productions", lw.Productions().Len()),
		zap.Int("restrictions", len(lw.Restrictions())),
	)

	out := os.Stdout
	if *compileFlags.output != "" {
		f, err := os.Create(*compileFlags.output)
		if err != nil {
			return fmt.Errorf("cannot create %v: %w", *compileFlags.output, err)
		}
		defer f.Close()
		out = f
	}
	for _, p := range lw.Productions().All() {
		fmt.Fprintf(out, "%4v  %v\n", p.Num(), p.Format(store))
	}
	for _, r := range lw.Restrictions() {
		fmt.Fprintf(out, "restrict %v %v %v\n", r.Kind, uint64(r.Left), uint64(r.Right))
	}
	return nil
}

func ruleError(source string, rule rawRule, err error) *derr.SpecError {
	if serr, ok := err.(*spec.SyntaxError); ok {
		return &derr.SpecError{
			Cause:      serr.Cause,
			SourceName: source,
			Offset:     serr.Offset,
			Detail:     fmt.Sprintf("rule #%v (line %v) %v", rule.name, rule.line, serr.Detail),
		}
	}
	return &derr.SpecError{
		Cause:      err,
		SourceName: source,
		Offset:     -1,
		Detail:     fmt.Sprintf("rule #%v (line %v)", rule.name, rule.line),
	}
}
