package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mdubinko/earleybird/driver"
)

var rootFlags = struct {
	verbose  *string
	tracePos *int
}{}

var rootCmd = &cobra.Command{
	Use:   "earleybird",
	Short: "Parse documents into XML with Invisible XML grammars",
	Long: `earleybird is an Invisible XML (ixml) processor:
given an ixml grammar and an input document, it emits the XML
serialization of the parse of that input under that grammar.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.verbose = rootCmd.PersistentFlags().StringP("verbose", "v", "off", "trace level: off, basic, detailed, trace")
	rootFlags.tracePos = rootCmd.PersistentFlags().Int("trace-pos", -1, "emit trace events only at this input position")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

// traceOptions turns the global flags into driver options.
func traceOptions() ([]driver.ParserOption, error) {
	level, err := driver.TraceLevelFromString(*rootFlags.verbose)
	if err != nil {
		return nil, err
	}
	if level == driver.TraceOff {
		return nil, nil
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.TraceLevel)
	opts := []driver.ParserOption{driver.Trace(log, level)}
	if *rootFlags.tracePos >= 0 {
		opts = append(opts, driver.TracePosition(*rootFlags.tracePos))
	}
	return opts, nil
}
