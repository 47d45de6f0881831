/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"testing"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccount(num uint64) AccountRef {
	return AccountRef{ID: hedera.AccountID{Account: num}}
}

func TestTransferPlanNetsToZero(t *testing.T) {
	token := hedera.TokenID{Token: 5005}
	first := testAccount(1001)
	second := testAccount(1002)
	third := testAccount(1003)
	fourth := testAccount(1004)

	plan := NewTransferPlan(first).
		Debit(token, first, 1000).
		Debit(token, second, 1000).
		Credit(token, third, 500).
		Credit(token, fourth, 1500)

	assert.NoError(t, plan.Validate())
	assert.Zero(t, plan.Net(token))
	assert.Len(t, plan.Entries(), 4)
}

func TestTransferPlanRejectsUnbalancedEntries(t *testing.T) {
	token := hedera.TokenID{Token: 5005}
	plan := NewTransferPlan(testAccount(1001)).
		Debit(token, testAccount(1001), 1000).
		Credit(token, testAccount(1002), 900)

	err := plan.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "net to -100")
	assert.Equal(t, int64(-100), plan.Net(token))
}

func TestTransferPlanRejectsEmptyPlan(t *testing.T) {
	err := NewTransferPlan(testAccount(1001)).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entries")
}

func TestTransferPlanValidatesPerToken(t *testing.T) {
	htt := hedera.TokenID{Token: 5005}
	other := hedera.TokenID{Token: 6006}
	first := testAccount(1001)
	second := testAccount(1002)

	plan := NewTransferPlan(first).
		Debit(htt, first, 1000).
		Credit(htt, second, 1000).
		Debit(other, second, 300).
		Credit(other, first, 200)

	err := plan.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), other.String())
	assert.Zero(t, plan.Net(htt))
	assert.Equal(t, int64(-100), plan.Net(other))
}

func TestTransferPlanSignersAreDebitedAccounts(t *testing.T) {
	token := hedera.TokenID{Token: 5005}
	first := testAccount(1001)
	second := testAccount(1002)
	third := testAccount(1003)

	plan := NewTransferPlan(first).
		Debit(token, first, 500).
		Debit(token, second, 500).
		Credit(token, third, 1000)

	signers := plan.Signers()
	require.Len(t, signers, 2)
	assert.True(t, signers[0].Same(first))
	assert.True(t, signers[1].Same(second))
}

func TestTransferPlanSignersDeduplicated(t *testing.T) {
	token := hedera.TokenID{Token: 5005}
	first := testAccount(1001)
	second := testAccount(1002)

	plan := NewTransferPlan(first).
		Debit(token, first, 300).
		Debit(token, first, 200).
		Credit(token, second, 500)

	assert.NoError(t, plan.Validate())
	assert.Len(t, plan.Signers(), 1)
}

func TestTransferPlanPayer(t *testing.T) {
	payer := testAccount(1001)
	assert.True(t, NewTransferPlan(payer).Payer().Same(payer))
}
