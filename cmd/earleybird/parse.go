package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdubinko/earleybird/driver"
	verr "github.com/mdubinko/earleybird/error"
	"github.com/mdubinko/earleybird/grammar"
	"github.com/mdubinko/earleybird/spec"
)

var parseFlags = struct {
	source *string
	tree   *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar file path>",
		Short:   "Parse a document with an ixml grammar and print the XML",
		Example: `  cat doc.txt | earleybird parse grammar.ixml`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "input file path (default stdin)")
	parseFlags.tree = cmd.Flags().Bool("tree", false, "print the derivation tree instead of XML")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cg, err := readGrammar(args[0])
	if err != nil {
		return err
	}

	src := io.Reader(os.Stdin)
	if *parseFlags.source != "" {
		f, err := os.Open(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("cannot open the source file %v: %w", *parseFlags.source, err)
		}
		defer f.Close()
		src = f
	}
	input, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	opts, err := traceOptions()
	if err != nil {
		return err
	}
	p, err := driver.NewParser(cg, opts...)
	if err != nil {
		return err
	}

	if *parseFlags.tree {
		tree, err := p.ParseTree(string(input))
		if err != nil {
			return err
		}
		driver.PrintTree(os.Stdout, tree)
		return nil
	}

	out, err := p.Parse(string(input))
	if err != nil {
		return err
	}
	if p.Ambiguous() {
		fmt.Fprintln(os.Stderr, "note: the parse was ambiguous; a deterministic derivation was chosen")
	}
	fmt.Fprintln(os.Stdout, out)
	return nil
}

func readGrammar(path string) (*grammar.CompiledGrammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read the grammar file %v: %w", path, err)
	}
	return loadGrammar(string(data), path)
}

func loadGrammar(text, path string) (*grammar.CompiledGrammar, error) {
	g, err := spec.Parse(text)
	if err != nil {
		if gpe, ok := err.(*spec.GrammarParseError); ok {
			return nil, &verr.SpecError{
				Cause:    fmt.Errorf("expected %v, found %v", gpe.Expected, gpe.Found),
				FilePath: path,
				Row:      gpe.Row,
				Col:      gpe.Col,
			}
		}
		return nil, err
	}
	return grammar.Compile(g)
}
