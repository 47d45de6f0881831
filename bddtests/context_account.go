/*
SPDX-License-Identifier: Apache-2.0
*/

package bddtests

import (
	"fmt"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/krishanb4/go-coding-challenge/internal/ledger"
)

// feeHeadroom is added on top of a "more than N hbars" floor so the account
// can also pay the fees the scenario incurs.
const feeHeadroom = 10

func (b *BDDContext) anAccountWithMoreThanHbars(ordinal string, min int64) (err error) {
	errRetFunc := func() error {
		return fmt.Errorf("Error provisioning %s account with more than %d hbars:  %s", ordinal, min, err)
	}
	var ref ledger.AccountRef
	if ref, err = b.client.CreateAccount(hedera.NewHbar(float64(min + feeHeadroom))); err != nil {
		return errRetFunc()
	}
	b.setAccount(ordinal, ref)
	return nil
}

func (b *BDDContext) anAccountWithHbarsAndTokens(ordinal string, hbars, tokens int64) (err error) {
	errRetFunc := func() error {
		return fmt.Errorf("Error provisioning %s account with %d hbars and %d HTT tokens:  %s", ordinal, hbars, tokens, err)
	}
	var ref ledger.AccountRef
	if ref, err = b.client.CreateAccount(hedera.NewHbar(float64(hbars))); err != nil {
		return errRetFunc()
	}
	b.setAccount(ordinal, ref)
	return b.reconcileTokens(ordinal, uint64(tokens))
}

func (b *BDDContext) aFirstAccountWithMoreThanHbarsAndTokens(min, tokens int64) error {
	if err := b.anAccountWithMoreThanHbars("first", min); err != nil {
		return err
	}
	return b.reconcileTokens("first", uint64(tokens))
}

// reconcileTokens drives the account to an exact HTT balance, creating the
// scenario token first if no earlier step has. Failures here are logged and
// swallowed: the balance assertion steps are the correctness gate.
func (b *BDDContext) reconcileTokens(ordinal string, displayTokens uint64) error {
	token, err := b.ensureScenarioToken()
	if err != nil {
		return err
	}
	ref, err := b.account(ordinal)
	if err != nil {
		return err
	}
	result := b.client.EnsureTokenBalance(ref, token.Treasury, token.ID, token.SupplyKey,
		ledger.RawAmount(displayTokens, token.Decimals))
	ledger.LogSetup(b.logger, result)
	return nil
}

func (b *BDDContext) accountHbarBalanceMoreThan(ordinal string, min int64) (err error) {
	errRetFunc := func() error {
		return fmt.Errorf("Error verifying hbar balance of %s account:  %s", ordinal, err)
	}
	var ref ledger.AccountRef
	if ref, err = b.account(ordinal); err != nil {
		return errRetFunc()
	}
	var balance ledger.Balance
	if balance, err = b.client.AccountBalance(ref); err != nil {
		return errRetFunc()
	}
	if floor := hedera.NewHbar(float64(min)).AsTinybar(); balance.Tinybars <= floor {
		err = fmt.Errorf("expected more than %d hbars, account holds %d tinybars", min, balance.Tinybars)
		return errRetFunc()
	}
	return nil
}

func (b *BDDContext) accountHoldsTokens(ordinal string, displayTokens int64) (err error) {
	errRetFunc := func() error {
		return fmt.Errorf("Error verifying HTT balance of %s account:  %s", ordinal, err)
	}
	var token *scenarioToken
	if token, err = b.token(); err != nil {
		return errRetFunc()
	}
	var ref ledger.AccountRef
	if ref, err = b.account(ordinal); err != nil {
		return errRetFunc()
	}
	var balance ledger.Balance
	if balance, err = b.client.AccountBalance(ref); err != nil {
		return errRetFunc()
	}
	expected := ledger.RawAmount(uint64(displayTokens), token.Decimals)
	if held := balance.Token(token.ID); held != expected {
		err = fmt.Errorf("expected exactly %d HTT, account holds %d HTT (%d raw units)",
			displayTokens, ledger.DisplayAmount(held, token.Decimals), held)
		return errRetFunc()
	}
	return nil
}
