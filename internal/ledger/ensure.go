/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/pkg/errors"
)

// tokenOps is the slice of client capability balance reconciliation executes
// against. *Client implements it over the network; unit tests supply an
// in-memory implementation.
type tokenOps interface {
	AccountBalance(ref AccountRef) (Balance, error)
	AssociateToken(ref AccountRef, token hedera.TokenID) (Receipt, error)
	MintToken(token hedera.TokenID, amount uint64, supplyKey hedera.PrivateKey) (Receipt, error)
	BurnToken(token hedera.TokenID, amount uint64, supplyKey hedera.PrivateKey) (Receipt, error)
	SubmitTransfer(plan *TransferPlan) (Receipt, error)
}

func ensureTokenBalance(ops tokenOps, target, treasury AccountRef, token hedera.TokenID, supplyKey *hedera.PrivateKey, expected uint64) SetupResult {
	role := RoleHolder
	if target.Same(treasury) {
		role = RoleTreasury
	}
	result := SetupResult{Account: target.ID.String(), Token: token.String(), Role: role}

	// Transfers to unassociated accounts fail at the network layer, so
	// association always happens before any balance math for holders.
	if role == RoleHolder {
		if _, err := ops.AssociateToken(target, token); err != nil {
			result.Err = err
			return result
		}
	}

	balance, err := ops.AccountBalance(target)
	if err != nil {
		result.Err = err
		return result
	}
	result.Step = Reconcile(balance.Token(token), expected, role)

	switch result.Step.Action {
	case ActionNone:
	case ActionMint:
		if supplyKey == nil {
			result.Err = errors.New("cannot mint: token has no supply key")
			break
		}
		_, result.Err = ops.MintToken(token, result.Step.Amount, *supplyKey)
	case ActionBurn:
		if supplyKey == nil {
			result.Err = errors.New("cannot burn: token has no supply key")
			break
		}
		_, result.Err = ops.BurnToken(token, result.Step.Amount, *supplyKey)
	case ActionFund:
		if err := coverFunding(ops, treasury, token, supplyKey, result.Step.Amount); err != nil {
			result.Err = err
			break
		}
		plan := NewTransferPlan(treasury).
			Debit(token, treasury, result.Step.Amount).
			Credit(token, target, result.Step.Amount)
		_, result.Err = ops.SubmitTransfer(plan)
	case ActionReturn:
		plan := NewTransferPlan(treasury).
			Debit(token, target, result.Step.Amount).
			Credit(token, treasury, result.Step.Amount)
		_, result.Err = ops.SubmitTransfer(plan)
	}
	return result
}

// coverFunding backs a funding transfer with fresh supply. The full amount is
// minted into the treasury before it moves out, so a treasury balance that
// earlier steps reconciled to an exact value survives funding each holder.
// Without a supply key the treasury must already hold the amount.
func coverFunding(ops tokenOps, treasury AccountRef, token hedera.TokenID, supplyKey *hedera.PrivateKey, amount uint64) error {
	if supplyKey != nil {
		_, err := ops.MintToken(token, amount, *supplyKey)
		return err
	}
	balance, err := ops.AccountBalance(treasury)
	if err != nil {
		return err
	}
	if held := balance.Token(token); held < amount {
		return errors.Errorf("treasury holds %d of %d needed and token has no supply key", held, amount)
	}
	return nil
}
