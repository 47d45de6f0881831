/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"testing"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryLedger is an in-memory tokenOps with the network's association and
// insufficient-balance rules, so reconciliation sequences run without a
// client.
type memoryLedger struct {
	token      hedera.TokenID
	treasury   AccountRef
	balances   map[string]uint64
	associated map[string]bool
	minted     uint64
	burned     uint64
	transfers  int
}

func newMemoryLedger(token hedera.TokenID, treasury AccountRef) *memoryLedger {
	return &memoryLedger{
		token:      token,
		treasury:   treasury,
		balances:   map[string]uint64{},
		associated: map[string]bool{treasury.ID.String(): true},
	}
}

func (m *memoryLedger) AccountBalance(ref AccountRef) (Balance, error) {
	return BalanceOf(0, map[string]uint64{m.token.String(): m.balances[ref.ID.String()]}), nil
}

func (m *memoryLedger) AssociateToken(ref AccountRef, token hedera.TokenID) (Receipt, error) {
	m.associated[ref.ID.String()] = true
	return Receipt{Status: "SUCCESS", Success: true}, nil
}

func (m *memoryLedger) MintToken(token hedera.TokenID, amount uint64, supplyKey hedera.PrivateKey) (Receipt, error) {
	m.minted += amount
	m.balances[m.treasury.ID.String()] += amount
	return Receipt{Status: "SUCCESS", Success: true}, nil
}

func (m *memoryLedger) BurnToken(token hedera.TokenID, amount uint64, supplyKey hedera.PrivateKey) (Receipt, error) {
	held := m.balances[m.treasury.ID.String()]
	if held < amount {
		return Receipt{Status: "INSUFFICIENT_TOKEN_BALANCE"}, errors.Errorf("treasury holds %d, cannot burn %d", held, amount)
	}
	m.burned += amount
	m.balances[m.treasury.ID.String()] = held - amount
	return Receipt{Status: "SUCCESS", Success: true}, nil
}

func (m *memoryLedger) SubmitTransfer(plan *TransferPlan) (Receipt, error) {
	if err := plan.Validate(); err != nil {
		return Receipt{}, err
	}
	for _, entry := range plan.Entries() {
		id := entry.Account.ID.String()
		if entry.Amount < 0 && m.balances[id] < uint64(-entry.Amount) {
			return Receipt{Status: "INSUFFICIENT_TOKEN_BALANCE"},
				errors.Errorf("account %s holds %d, cannot debit %d", id, m.balances[id], -entry.Amount)
		}
		if entry.Amount > 0 && !m.associated[id] {
			return Receipt{Status: "TOKEN_NOT_ASSOCIATED_TO_ACCOUNT"},
				errors.Errorf("account %s is not associated with %s", id, entry.Token)
		}
	}
	for _, entry := range plan.Entries() {
		id := entry.Account.ID.String()
		m.balances[id] = uint64(int64(m.balances[id]) + entry.Amount)
	}
	m.transfers++
	return Receipt{Status: "SUCCESS", Success: true}, nil
}

func testSupplyKey(t *testing.T) *hedera.PrivateKey {
	key, err := hedera.PrivateKeyGenerateEd25519()
	require.NoError(t, err)
	return &key
}

// Reconciling the treasury and then funding several holders must leave the
// treasury at its reconciled balance: each funding transfer is backed by a
// mint of the same amount, not paid out of the treasury's own holdings.
func TestEnsureTokenBalancePreservesTreasuryAcrossFunding(t *testing.T) {
	token := hedera.TokenID{Token: 5005}
	first := testAccount(1001)
	supplyKey := testSupplyKey(t)
	ml := newMemoryLedger(token, first)

	result := ensureTokenBalance(ml, first, first, token, supplyKey, 10000)
	require.False(t, result.Failed())
	require.Equal(t, uint64(10000), ml.balances[first.ID.String()])

	for _, holder := range []AccountRef{testAccount(1002), testAccount(1003), testAccount(1004)} {
		result = ensureTokenBalance(ml, holder, first, token, supplyKey, 10000)
		require.False(t, result.Failed())
		assert.Equal(t, uint64(10000), ml.balances[holder.ID.String()])
		assert.Equal(t, uint64(10000), ml.balances[first.ID.String()])
	}
	assert.Equal(t, uint64(40000), ml.minted)
	assert.Equal(t, 3, ml.transfers)
}

func TestEnsureTokenBalanceAssociatesHolderBeforeFunding(t *testing.T) {
	token := hedera.TokenID{Token: 5005}
	treasury := testAccount(1001)
	holder := testAccount(1002)
	ml := newMemoryLedger(token, treasury)

	result := ensureTokenBalance(ml, holder, treasury, token, testSupplyKey(t), 500)
	require.False(t, result.Failed())
	assert.True(t, ml.associated[holder.ID.String()])
	assert.Equal(t, uint64(500), ml.balances[holder.ID.String()])
}

func TestEnsureTokenBalanceFundsFromFixedSupplyHoldings(t *testing.T) {
	token := hedera.TokenID{Token: 5005}
	treasury := testAccount(1001)
	holder := testAccount(1002)
	ml := newMemoryLedger(token, treasury)
	ml.balances[treasury.ID.String()] = 1000

	result := ensureTokenBalance(ml, holder, treasury, token, nil, 400)
	require.False(t, result.Failed())
	assert.Equal(t, uint64(400), ml.balances[holder.ID.String()])
	assert.Equal(t, uint64(600), ml.balances[treasury.ID.String()])
	assert.Zero(t, ml.minted)
}

func TestEnsureTokenBalanceReportsFixedSupplyShortfall(t *testing.T) {
	token := hedera.TokenID{Token: 5005}
	treasury := testAccount(1001)
	holder := testAccount(1002)
	ml := newMemoryLedger(token, treasury)
	ml.balances[treasury.ID.String()] = 100

	result := ensureTokenBalance(ml, holder, treasury, token, nil, 400)
	require.True(t, result.Failed())
	assert.Contains(t, result.Err.Error(), "no supply key")
	assert.Equal(t, uint64(100), ml.balances[treasury.ID.String()])
	assert.Zero(t, ml.balances[holder.ID.String()])
}

func TestEnsureTokenBalanceReturnsHolderSurplus(t *testing.T) {
	token := hedera.TokenID{Token: 5005}
	treasury := testAccount(1001)
	holder := testAccount(1002)
	ml := newMemoryLedger(token, treasury)
	ml.associated[holder.ID.String()] = true
	ml.balances[holder.ID.String()] = 900

	result := ensureTokenBalance(ml, holder, treasury, token, nil, 200)
	require.False(t, result.Failed())
	assert.Equal(t, ActionReturn, result.Step.Action)
	assert.Equal(t, uint64(200), ml.balances[holder.ID.String()])
	assert.Equal(t, uint64(700), ml.balances[treasury.ID.String()])
}

func TestEnsureTokenBalanceBurnsTreasurySurplus(t *testing.T) {
	token := hedera.TokenID{Token: 5005}
	treasury := testAccount(1001)
	ml := newMemoryLedger(token, treasury)
	ml.balances[treasury.ID.String()] = 10000

	result := ensureTokenBalance(ml, treasury, treasury, token, testSupplyKey(t), 4000)
	require.False(t, result.Failed())
	assert.Equal(t, uint64(4000), ml.balances[treasury.ID.String()])
	assert.Equal(t, uint64(6000), ml.burned)
}

func TestEnsureTokenBalanceMatchingBalanceTouchesNothing(t *testing.T) {
	token := hedera.TokenID{Token: 5005}
	treasury := testAccount(1001)
	ml := newMemoryLedger(token, treasury)
	ml.balances[treasury.ID.String()] = 10000

	result := ensureTokenBalance(ml, treasury, treasury, token, nil, 10000)
	require.False(t, result.Failed())
	assert.Equal(t, ActionNone, result.Step.Action)
	assert.Zero(t, ml.minted)
	assert.Zero(t, ml.transfers)
}
