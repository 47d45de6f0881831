/*
SPDX-License-Identifier: Apache-2.0
*/

package bddtests

import (
	"fmt"

	"github.com/krishanb4/go-coding-challenge/internal/ledger"
)

// Defaults for the token the transfer scenarios trade in.
const (
	defaultTokenName     = "Test Token"
	defaultTokenSymbol   = "HTT"
	defaultTokenDecimals = 2
)

// ensureScenarioToken returns the scenario's token, creating the default
// mintable HTT token with the first account as treasury when no token step
// has run yet.
func (b *BDDContext) ensureScenarioToken() (*scenarioToken, error) {
	if value, err := b.GetTagValue(tagToken); err == nil {
		return value.(*scenarioToken), nil
	}
	treasury, err := b.account("first")
	if err != nil {
		return nil, err
	}
	return b.createToken(defaultTokenName, defaultTokenSymbol, defaultTokenDecimals, 0, treasury, true)
}

func (b *BDDContext) createToken(name, symbol string, decimals uint32, initialSupply uint64, treasury ledger.AccountRef, mintable bool) (*scenarioToken, error) {
	spec := ledger.TokenSpec{
		Name:          name,
		Symbol:        symbol,
		Decimals:      decimals,
		InitialSupply: initialSupply,
		Treasury:      treasury,
	}
	token := &scenarioToken{Decimals: decimals, Treasury: treasury}
	if mintable {
		adminKey := treasury.Key.PublicKey()
		supplyKey := treasury.Key.PublicKey()
		spec.AdminKey = &adminKey
		spec.SupplyKey = &supplyKey
		treasuryKey := treasury.Key
		token.SupplyKey = &treasuryKey
	}
	id, err := b.client.CreateToken(spec)
	if err != nil {
		return nil, err
	}
	token.ID = id
	b.SetTagValue(tagToken, token)
	b.logger.Infow("token created", "token", id.String(), "symbol", symbol, "mintable", mintable)
	return token, nil
}

func (b *BDDContext) iCreateAMintableToken(name, symbol string, decimals int64) (err error) {
	errRetFunc := func() error {
		return fmt.Errorf("Error creating mintable token '%s':  %s", symbol, err)
	}
	var treasury ledger.AccountRef
	if treasury, err = b.account("first"); err != nil {
		return errRetFunc()
	}
	if _, err = b.createToken(name, symbol, uint32(decimals), 0, treasury, true); err != nil {
		return errRetFunc()
	}
	return nil
}

func (b *BDDContext) iCreateAFixedSupplyToken(name, symbol string, initialSupply int64) (err error) {
	errRetFunc := func() error {
		return fmt.Errorf("Error creating fixed supply token '%s':  %s", symbol, err)
	}
	var treasury ledger.AccountRef
	if treasury, err = b.account("first"); err != nil {
		return errRetFunc()
	}
	raw := ledger.RawAmount(uint64(initialSupply), defaultTokenDecimals)
	if _, err = b.createToken(name, symbol, defaultTokenDecimals, raw, treasury, false); err != nil {
		return errRetFunc()
	}
	return nil
}

func (b *BDDContext) theTokenHasTheName(name string) error {
	details, err := b.tokenDetails()
	if err != nil {
		return err
	}
	if details.Name != name {
		return fmt.Errorf("expected token name '%s', got '%s'", name, details.Name)
	}
	return nil
}

func (b *BDDContext) theTokenHasTheSymbol(symbol string) error {
	details, err := b.tokenDetails()
	if err != nil {
		return err
	}
	if details.Symbol != symbol {
		return fmt.Errorf("expected token symbol '%s', got '%s'", symbol, details.Symbol)
	}
	return nil
}

func (b *BDDContext) theTokenHasDecimals(decimals int64) error {
	details, err := b.tokenDetails()
	if err != nil {
		return err
	}
	if int64(details.Decimals) != decimals {
		return fmt.Errorf("expected %d decimals, got %d", decimals, details.Decimals)
	}
	return nil
}

func (b *BDDContext) theTokenIsOwnedByTheAccount(ordinal string) error {
	details, err := b.tokenDetails()
	if err != nil {
		return err
	}
	ref, err := b.account(ordinal)
	if err != nil {
		return err
	}
	if details.Treasury.String() != ref.ID.String() {
		return fmt.Errorf("expected treasury %s, got %s", ref.ID, details.Treasury)
	}
	return nil
}

func (b *BDDContext) iMintAdditionalTokens(amount int64) (err error) {
	errRetFunc := func() error {
		return fmt.Errorf("Error minting %d additional tokens:  %s", amount, err)
	}
	var token *scenarioToken
	if token, err = b.token(); err != nil {
		return errRetFunc()
	}
	if token.SupplyKey == nil {
		err = fmt.Errorf("token has no supply key")
		return errRetFunc()
	}
	if _, err = b.client.MintToken(token.ID, ledger.RawAmount(uint64(amount), token.Decimals), *token.SupplyKey); err != nil {
		return errRetFunc()
	}
	return nil
}

// A rejected mint is this step's success: the scenario asserts that the
// network refuses to inflate a fixed supply token.
func (b *BDDContext) anAttemptToMintTokensIsRejected(amount int64) error {
	token, err := b.token()
	if err != nil {
		return err
	}
	supplyKey := token.Treasury.Key
	if token.SupplyKey != nil {
		supplyKey = *token.SupplyKey
	}
	receipt, err := b.client.MintToken(token.ID, ledger.RawAmount(uint64(amount), token.Decimals), supplyKey)
	if err == nil {
		return fmt.Errorf("expected mint of %d to be rejected, got status '%s'", amount, receipt.Status)
	}
	b.logger.Infow("mint rejected as expected", "token", token.ID.String(), "error", err)
	return nil
}

func (b *BDDContext) theTotalSupplyOfTheTokenIs(displaySupply int64) error {
	token, err := b.token()
	if err != nil {
		return err
	}
	details, err := b.tokenDetails()
	if err != nil {
		return err
	}
	expected := ledger.RawAmount(uint64(displaySupply), token.Decimals)
	if details.TotalSupply != expected {
		return fmt.Errorf("expected total supply of %d raw units, got %d", expected, details.TotalSupply)
	}
	return nil
}

func (b *BDDContext) tokenDetails() (ledger.TokenDetails, error) {
	token, err := b.token()
	if err != nil {
		return ledger.TokenDetails{}, err
	}
	return b.client.TokenInfo(token.ID)
}
