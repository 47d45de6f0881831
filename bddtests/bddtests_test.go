/*
SPDX-License-Identifier: Apache-2.0
*/

package bddtests

import (
	"testing"

	"github.com/cucumber/godog"

	"github.com/krishanb4/go-coding-challenge/common/flogging"
	"github.com/krishanb4/go-coding-challenge/internal/config"
)

func TestFeatures(t *testing.T) {
	conf, err := config.Load()
	if err != nil {
		t.Fatalf("loading suite config: %s", err)
	}
	if !conf.HasOperator() {
		t.Skip("no operator configured; set HEDERA_OPERATOR_ACCOUNTID and HEDERA_OPERATOR_PRIVATEKEY to run against testnet")
	}
	flogging.Init(flogging.Config{Format: conf.Logging.Format, LogSpec: conf.Logging.LogSpec})

	suite := godog.TestSuite{
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			FeatureContext(conf, s)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Strict:   true,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
