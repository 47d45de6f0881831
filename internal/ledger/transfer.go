/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/pkg/errors"
)

// TransferEntry is a single token movement within a transfer. Amount is in
// raw units, negative for debits and positive for credits.
type TransferEntry struct {
	Token   hedera.TokenID
	Account AccountRef
	Amount  int64
}

// TransferPlan accumulates the entries of a multi-party token transfer across
// steps before a later step submits it. The payer submits the transaction and
// covers the network fee; every debited account must sign.
type TransferPlan struct {
	payer   AccountRef
	entries []TransferEntry
}

// NewTransferPlan returns an empty plan submitted and paid for by payer.
func NewTransferPlan(payer AccountRef) *TransferPlan {
	return &TransferPlan{payer: payer}
}

// Payer returns the account that submits the transaction.
func (p *TransferPlan) Payer() AccountRef {
	return p.payer
}

// Debit removes amount raw units of token from account.
func (p *TransferPlan) Debit(token hedera.TokenID, account AccountRef, amount uint64) *TransferPlan {
	p.entries = append(p.entries, TransferEntry{Token: token, Account: account, Amount: -int64(amount)})
	return p
}

// Credit adds amount raw units of token to account.
func (p *TransferPlan) Credit(token hedera.TokenID, account AccountRef, amount uint64) *TransferPlan {
	p.entries = append(p.entries, TransferEntry{Token: token, Account: account, Amount: int64(amount)})
	return p
}

// Entries returns the accumulated entries in insertion order.
func (p *TransferPlan) Entries() []TransferEntry {
	return p.entries
}

// Net returns the sum of all entry amounts for the given token.
func (p *TransferPlan) Net(token hedera.TokenID) int64 {
	var net int64
	for _, e := range p.entries {
		if e.Token.String() == token.String() {
			net += e.Amount
		}
	}
	return net
}

// Validate checks the ledger invariant that every token's entries sum to
// zero. A plan that fails validation must never be submitted.
func (p *TransferPlan) Validate() error {
	if len(p.entries) == 0 {
		return errors.New("transfer plan has no entries")
	}
	nets := map[string]int64{}
	for _, e := range p.entries {
		nets[e.Token.String()] += e.Amount
	}
	for token, net := range nets {
		if net != 0 {
			return errors.Errorf("transfer entries for token %s net to %d, want 0", token, net)
		}
	}
	return nil
}

// Signers returns the distinct accounts whose balances are debited. Each of
// them must sign the frozen transaction before submission.
func (p *TransferPlan) Signers() []AccountRef {
	var signers []AccountRef
	seen := map[string]bool{}
	for _, e := range p.entries {
		if e.Amount >= 0 {
			continue
		}
		id := e.Account.ID.String()
		if seen[id] {
			continue
		}
		seen[id] = true
		signers = append(signers, e.Account)
	}
	return signers
}
