/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// AccountRef identifies a ledger account together with the private key that
// authorizes transactions for it. Fixture accounts and accounts provisioned
// during a scenario are both represented this way.
type AccountRef struct {
	ID  hedera.AccountID
	Key hedera.PrivateKey
}

// Same reports whether two refs name the same ledger account.
func (a AccountRef) Same(other AccountRef) bool {
	return a.ID.String() == other.ID.String()
}

// Balance is the normalized result of an account balance query. Token
// balances are exposed through a single accessor so callers never inspect the
// shape of the underlying SDK collection.
type Balance struct {
	Tinybars int64

	balance hedera.AccountBalance
	tokens  map[string]uint64
}

// BalanceOf builds a Balance from already-normalized holdings, keyed by token
// ID string. The client builds Balance values straight from SDK query
// results; this constructor serves code that holds the amounts itself.
func BalanceOf(tinybars int64, tokens map[string]uint64) Balance {
	return Balance{Tinybars: tinybars, tokens: tokens}
}

// Token returns the raw balance of the given token, zero when the account
// holds none.
func (b Balance) Token(id hedera.TokenID) uint64 {
	if b.tokens != nil {
		return b.tokens[id.String()]
	}
	return b.balance.Tokens.Get(id)
}

// TokenSpec describes a token to be created. InitialSupply is expressed in
// raw units. A nil SupplyKey produces a fixed-supply token.
type TokenSpec struct {
	Name          string
	Symbol        string
	Decimals      uint32
	InitialSupply uint64
	Treasury      AccountRef
	AdminKey      *hedera.PublicKey
	SupplyKey     *hedera.PublicKey
}

// TokenDetails is the normalized result of a token info query.
type TokenDetails struct {
	Name        string
	Symbol      string
	Decimals    uint32
	TotalSupply uint64
	Treasury    hedera.AccountID
}

// TopicDetails is the normalized result of a topic info query.
type TopicDetails struct {
	Memo      string
	SubmitKey hedera.Key
}

// Receipt is the normalized outcome of a submitted transaction.
type Receipt struct {
	Status  string
	Success bool
}

// RawAmount converts a display amount to raw token units.
func RawAmount(display uint64, decimals uint32) uint64 {
	return display * pow10(decimals)
}

// DisplayAmount converts raw token units to the display amount. Truncates
// toward zero when the raw amount is not a whole multiple.
func DisplayAmount(raw uint64, decimals uint32) uint64 {
	return raw / pow10(decimals)
}

func pow10(exp uint32) uint64 {
	result := uint64(1)
	for i := uint32(0); i < exp; i++ {
		result *= 10
	}
	return result
}
