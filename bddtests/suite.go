/*
SPDX-License-Identifier: Apache-2.0
*/

package bddtests

import (
	"context"

	"github.com/cucumber/godog"

	"github.com/krishanb4/go-coding-challenge/internal/config"
)

// FeatureContext registers every step against a context owned by the current
// scenario. godog invokes the scenario initializer once per scenario, which
// is what keeps state from leaking between scenarios.
func FeatureContext(conf *config.TopLevel, s *godog.ScenarioContext) {
	bddCtx := NewBDDContext(conf)

	s.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, bddCtx.beforeScenario()
	})
	s.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		return ctx, bddCtx.afterScenario()
	})

	s.Step(`^a (first|second|third|fourth) account with more than (\d+) hbars$`, bddCtx.anAccountWithMoreThanHbars)
	s.Step(`^a first account with more than (\d+) hbars and (\d+) HTT tokens$`, bddCtx.aFirstAccountWithMoreThanHbarsAndTokens)
	s.Step(`^a (first|second|third|fourth) account with (\d+) hbars and (\d+) HTT tokens$`, bddCtx.anAccountWithHbarsAndTokens)
	s.Step(`^the (first|second|third|fourth) account's hbar balance is more than (\d+) hbars$`, bddCtx.accountHbarBalanceMoreThan)
	s.Step(`^the (first|second|third|fourth) account holds (\d+) HTT tokens$`, bddCtx.accountHoldsTokens)

	s.Step(`^I create a mintable token named "([^"]*)" with symbol "([^"]*)" and (\d+) decimals$`, bddCtx.iCreateAMintableToken)
	s.Step(`^I create a fixed supply token named "([^"]*)" with symbol "([^"]*)" and an initial supply of (\d+)$`, bddCtx.iCreateAFixedSupplyToken)
	s.Step(`^the token has the name "([^"]*)"$`, bddCtx.theTokenHasTheName)
	s.Step(`^the token has the symbol "([^"]*)"$`, bddCtx.theTokenHasTheSymbol)
	s.Step(`^the token has (\d+) decimals$`, bddCtx.theTokenHasDecimals)
	s.Step(`^the token is owned by the (first|second|third|fourth) account$`, bddCtx.theTokenIsOwnedByTheAccount)
	s.Step(`^I mint (\d+) additional tokens$`, bddCtx.iMintAdditionalTokens)
	s.Step(`^an attempt to mint (\d+) additional tokens is rejected$`, bddCtx.anAttemptToMintTokensIsRejected)
	s.Step(`^the total supply of the token is (\d+)$`, bddCtx.theTotalSupplyOfTheTokenIs)

	s.Step(`^the (first|second|third|fourth) account creates a transaction to transfer (\d+) HTT tokens to the (first|second|third|fourth) account$`, bddCtx.accountCreatesTransferTo)
	s.Step(`^a transaction is created to transfer (\d+) HTT tokens out of the first and second accounts and (\d+) HTT tokens into the third account and (\d+) HTT tokens into the fourth account$`, bddCtx.aMultiPartyTransferIsCreated)
	s.Step(`^the (first|second|third|fourth) account submits the transaction$`, bddCtx.accountSubmitsTheTransaction)

	s.Step(`^a (\d+) of (\d+) threshold key with the first and second account keys$`, bddCtx.aThresholdKeyWithFirstAndSecondAccountKeys)
	s.Step(`^a topic is created with the memo "([^"]*)" and the first account's key as the submit key$`, bddCtx.aTopicIsCreatedWithFirstAccountSubmitKey)
	s.Step(`^a topic is created with the memo "([^"]*)" and the threshold key as the submit key$`, bddCtx.aTopicIsCreatedWithThresholdSubmitKey)
	s.Step(`^the message "([^"]*)" is published to the topic$`, bddCtx.theMessageIsPublishedToTheTopic)
	s.Step(`^the message "([^"]*)" is published to the topic signed by the (first|second|third|fourth) account$`, bddCtx.theMessageIsPublishedToTheTopicSignedBy)
	s.Step(`^publishing the message "([^"]*)" to the topic signed only by the (first|second|third|fourth) account is rejected$`, bddCtx.publishingSignedOnlyByAccountIsRejected)
	s.Step(`^the topic info reports the memo "([^"]*)"$`, bddCtx.theTopicInfoReportsTheMemo)
	s.Step(`^the message "([^"]*)" is received by the topic within (\d+) seconds$`, bddCtx.theMessageIsReceivedWithinSeconds)
}
