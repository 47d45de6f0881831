/*
SPDX-License-Identifier: Apache-2.0
*/

package bddtests

import (
	"fmt"

	"github.com/krishanb4/go-coding-challenge/internal/ledger"
)

func (b *BDDContext) accountCreatesTransferTo(payerOrdinal string, displayTokens int64, recipientOrdinal string) (err error) {
	errRetFunc := func() error {
		return fmt.Errorf("Error building transfer of %d HTT from %s to %s account:  %s", displayTokens, payerOrdinal, recipientOrdinal, err)
	}
	var token *scenarioToken
	if token, err = b.token(); err != nil {
		return errRetFunc()
	}
	var payer, recipient ledger.AccountRef
	if payer, err = b.account(payerOrdinal); err != nil {
		return errRetFunc()
	}
	if recipient, err = b.account(recipientOrdinal); err != nil {
		return errRetFunc()
	}
	amount := ledger.RawAmount(uint64(displayTokens), token.Decimals)
	plan := ledger.NewTransferPlan(payer).
		Debit(token.ID, payer, amount).
		Credit(token.ID, recipient, amount)
	if err = plan.Validate(); err != nil {
		return errRetFunc()
	}
	b.SetTagValue(tagTransfer, plan)
	return nil
}

func (b *BDDContext) aMultiPartyTransferIsCreated(outTokens, thirdInTokens, fourthInTokens int64) (err error) {
	errRetFunc := func() error {
		return fmt.Errorf("Error building multi-party transfer:  %s", err)
	}
	var token *scenarioToken
	if token, err = b.token(); err != nil {
		return errRetFunc()
	}
	accounts := map[string]ledger.AccountRef{}
	for _, ordinal := range []string{"first", "second", "third", "fourth"} {
		if accounts[ordinal], err = b.account(ordinal); err != nil {
			return errRetFunc()
		}
	}
	out := ledger.RawAmount(uint64(outTokens), token.Decimals)
	plan := ledger.NewTransferPlan(accounts["first"]).
		Debit(token.ID, accounts["first"], out).
		Debit(token.ID, accounts["second"], out).
		Credit(token.ID, accounts["third"], ledger.RawAmount(uint64(thirdInTokens), token.Decimals)).
		Credit(token.ID, accounts["fourth"], ledger.RawAmount(uint64(fourthInTokens), token.Decimals))
	if err = plan.Validate(); err != nil {
		return errRetFunc()
	}
	b.SetTagValue(tagTransfer, plan)
	return nil
}

func (b *BDDContext) accountSubmitsTheTransaction(ordinal string) (err error) {
	errRetFunc := func() error {
		return fmt.Errorf("Error submitting transfer as %s account:  %s", ordinal, err)
	}
	var plan *ledger.TransferPlan
	if plan, err = b.transfer(); err != nil {
		return errRetFunc()
	}
	var submitter ledger.AccountRef
	if submitter, err = b.account(ordinal); err != nil {
		return errRetFunc()
	}
	if !plan.Payer().Same(submitter) {
		err = fmt.Errorf("transfer was created with payer %s, not the %s account", plan.Payer().ID, ordinal)
		return errRetFunc()
	}
	var receipt ledger.Receipt
	if receipt, err = b.client.SubmitTransfer(plan); err != nil {
		return errRetFunc()
	}
	if !receipt.Success {
		err = fmt.Errorf("transfer finished with status '%s'", receipt.Status)
		return errRetFunc()
	}
	b.logger.Infow("transfer submitted", "payer", submitter.ID.String(), "status", receipt.Status)
	return nil
}
