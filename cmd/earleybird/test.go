package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdubinko/earleybird/driver"
)

var testFlags = struct {
	grammar *string
	input   *string
	tree    *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "test -g <grammar string> -i <input string>",
		Short:   "Parse an inline input with an inline grammar",
		Example: `  earleybird test -g 'doc = "a"+.' -i aaa`,
		RunE:    runTest,
	}
	testFlags.grammar = cmd.Flags().StringP("grammar", "g", "", "ixml grammar text")
	testFlags.input = cmd.Flags().StringP("input", "i", "", "input text to parse")
	testFlags.tree = cmd.Flags().Bool("tree", false, "print the derivation tree instead of XML")
	cmd.MarkFlagRequired("grammar")
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	cg, err := loadGrammar(*testFlags.grammar, "")
	if err != nil {
		return fmt.Errorf("cannot load the grammar: %w", err)
	}

	opts, err := traceOptions()
	if err != nil {
		return err
	}
	p, err := driver.NewParser(cg, opts...)
	if err != nil {
		return err
	}

	if *testFlags.tree {
		tree, err := p.ParseTree(*testFlags.input)
		if err != nil {
			return err
		}
		driver.PrintTree(os.Stdout, tree)
		return nil
	}

	out, err := p.Parse(*testFlags.input)
	if err != nil {
		return err
	}
	if p.Ambiguous() {
		fmt.Fprintln(os.Stderr, "note: the parse was ambiguous; a deterministic derivation was chosen")
	}
	fmt.Fprintln(os.Stdout, out)
	return nil
}
