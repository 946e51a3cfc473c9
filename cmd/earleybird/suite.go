package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mdubinko/earleybird/tester"
)

var suiteFlags = struct {
	filter *string
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "suite <test catalog path>",
		Short:   "Run a conformance test catalog",
		Example: `  earleybird suite ixml/tests/test-catalog.xml --filter correct`,
		Args:    cobra.ExactArgs(1),
		RunE:    runSuite,
	}
	suiteFlags.filter = cmd.Flags().StringP("filter", "f", "", "run only tests whose name contains this substring")
	suiteFlags.output = cmd.Flags().StringP("output", "o", "", "write per-test results to this file (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runSuite(cmd *cobra.Command, args []string) error {
	cases, err := tester.ReadCatalog(args[0])
	if err != nil {
		return err
	}
	if *suiteFlags.filter != "" {
		filtered := cases[:0]
		for _, c := range cases {
			if strings.Contains(c.Name, *suiteFlags.filter) {
				filtered = append(filtered, c)
			}
		}
		cases = filtered
	}
	if len(cases) == 0 {
		return errors.New("no test cases matched")
	}

	out := io.Writer(os.Stdout)
	if *suiteFlags.output != "" {
		f, err := os.Create(*suiteFlags.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	t := &tester.Tester{Cases: cases}
	rs := t.Run()

	counts := map[tester.Outcome]int{}
	for _, r := range rs {
		fmt.Fprintln(out, r)
		counts[r.Outcome]++
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Outcome", "Count"})
	for _, o := range []tester.Outcome{
		tester.OutcomePass,
		tester.OutcomeFail,
		tester.OutcomeGrammarError,
		tester.OutcomeParseError,
	} {
		table.Append([]string{string(o), strconv.Itoa(counts[o])})
	}
	table.Render()

	if counts[tester.OutcomePass] != len(rs) {
		return fmt.Errorf("%v of %v tests failed", len(rs)-counts[tester.OutcomePass], len(rs))
	}
	return nil
}
