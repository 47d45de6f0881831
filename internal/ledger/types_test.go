/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"testing"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/stretchr/testify/assert"
)

func TestRawAmount(t *testing.T) {
	assert.Equal(t, uint64(10000), RawAmount(100, 2))
	assert.Equal(t, uint64(100), RawAmount(100, 0))
	assert.Equal(t, uint64(0), RawAmount(0, 2))
	assert.Equal(t, uint64(50_000_000), RawAmount(50, 6))
}

func TestDisplayAmount(t *testing.T) {
	assert.Equal(t, uint64(100), DisplayAmount(10000, 2))
	assert.Equal(t, uint64(100), DisplayAmount(100, 0))
	assert.Equal(t, uint64(0), DisplayAmount(99, 2))
}

func TestRawDisplayRoundTrip(t *testing.T) {
	for _, display := range []uint64{0, 1, 50, 100, 1000} {
		for _, decimals := range []uint32{0, 2, 8} {
			assert.Equal(t, display, DisplayAmount(RawAmount(display, decimals), decimals))
		}
	}
}

func TestBalanceOf(t *testing.T) {
	token := hedera.TokenID{Token: 5005}
	other := hedera.TokenID{Token: 6006}
	balance := BalanceOf(150, map[string]uint64{token.String(): 10000})

	assert.Equal(t, int64(150), balance.Tinybars)
	assert.Equal(t, uint64(10000), balance.Token(token))
	assert.Zero(t, balance.Token(other))
}

func TestAccountRefSame(t *testing.T) {
	a := AccountRef{ID: hedera.AccountID{Account: 1001}}
	b := AccountRef{ID: hedera.AccountID{Account: 1001}}
	c := AccountRef{ID: hedera.AccountID{Account: 1002}}

	assert.True(t, a.Same(b))
	assert.False(t, a.Same(c))
}
