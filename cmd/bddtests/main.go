/*
SPDX-License-Identifier: Apache-2.0
*/

// Command bddtests runs the Hedera testnet feature suite outside of go test,
// with control over format, tags and concurrency.
package main

import (
	"os"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/krishanb4/go-coding-challenge/bddtests"
	"github.com/krishanb4/go-coding-challenge/common/flogging"
	"github.com/krishanb4/go-coding-challenge/internal/config"
)

type suiteFlags struct {
	format      string
	tags        string
	paths       []string
	concurrency int
	noColors    bool
}

func addFlags(fs *pflag.FlagSet, flags *suiteFlags) {
	fs.StringVar(&flags.format, "format", "pretty", "output format: pretty, progress, cucumber, junit")
	fs.StringVar(&flags.tags, "tags", "", "filter scenarios by tag expression")
	fs.StringSliceVar(&flags.paths, "features", []string{"features"}, "feature file or directory paths")
	fs.IntVar(&flags.concurrency, "concurrency", 1, "number of scenarios to run in parallel")
	fs.BoolVar(&flags.noColors, "no-colors", false, "disable colored output")
}

func main() {
	flags := &suiteFlags{}
	cmd := &cobra.Command{
		Use:          "bddtests",
		Short:        "Run the Hedera testnet feature suite",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags)
		},
	}
	addFlags(cmd.Flags(), flags)
	if cmd.Execute() != nil {
		os.Exit(1)
	}
}

func run(flags *suiteFlags) error {
	conf, err := config.Load()
	if err != nil {
		return err
	}
	if !conf.HasOperator() {
		return errors.New("no operator configured; set HEDERA_OPERATOR_ACCOUNTID and HEDERA_OPERATOR_PRIVATEKEY")
	}
	flogging.Init(flogging.Config{Format: conf.Logging.Format, LogSpec: conf.Logging.LogSpec})

	opts := godog.Options{
		Format:      flags.format,
		Tags:        flags.tags,
		Paths:       flags.paths,
		Concurrency: flags.concurrency,
		NoColors:    flags.noColors,
		Output:      colors.Colored(os.Stdout),
		Strict:      true,
	}
	suite := godog.TestSuite{
		Name: "hedera",
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			bddtests.FeatureContext(conf, s)
		},
		Options: &opts,
	}
	if status := suite.Run(); status != 0 {
		return errors.Errorf("feature suite exited with status %d", status)
	}
	return nil
}
