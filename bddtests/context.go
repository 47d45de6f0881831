/*
SPDX-License-Identifier: Apache-2.0
*/

package bddtests

import (
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/krishanb4/go-coding-challenge/common/flogging"
	"github.com/krishanb4/go-coding-challenge/internal/config"
	"github.com/krishanb4/go-coding-challenge/internal/ledger"
)

// Tag keys for the shared scenario state. The tag store is the only channel
// between steps: an identifier referenced by a later step must have been set
// by an earlier one in the same scenario.
const (
	tagToken        = "token"
	tagTopic        = "topic"
	tagTransfer     = "transfer"
	tagThresholdKey = "thresholdKey"
)

// scenarioToken is the token created during the scenario together with
// everything later steps need to mint against it or fund accounts from it.
type scenarioToken struct {
	ID        hedera.TokenID
	Decimals  uint32
	Treasury  ledger.AccountRef
	SupplyKey *hedera.PrivateKey
}

// BDDContext represents the current context for the executing scenario.
// Each scenario owns an independent instance and its own client session, so
// concurrently running scenarios never share state.
type BDDContext struct {
	conf   *config.TopLevel
	logger *zap.SugaredLogger
	client *ledger.Client
	tags   map[string]interface{}
}

// NewBDDContext returns an empty context for one scenario run.
func NewBDDContext(conf *config.TopLevel) *BDDContext {
	return &BDDContext{
		conf:   conf,
		logger: flogging.MustGetLogger("bddtests"),
		tags:   make(map[string]interface{}),
	}
}

func (b *BDDContext) beforeScenario() error {
	operator, err := b.conf.Operator.Ref()
	if err != nil {
		return err
	}
	b.client, err = ledger.NewClient(b.conf.Network, operator)
	return err
}

func (b *BDDContext) afterScenario() error {
	if b.client == nil {
		return nil
	}
	err := b.client.Close()
	b.client = nil
	return err
}

// SetTagValue stores a value for subsequent steps in the same scenario.
func (b *BDDContext) SetTagValue(key string, value interface{}) {
	b.tags[key] = value
}

// GetTagValue returns a previously stored value. Reading a key never set is a
// step-ordering bug and fails the scenario.
func (b *BDDContext) GetTagValue(key string) (interface{}, error) {
	value, ok := b.tags[key]
	if !ok {
		return nil, errors.Errorf("no value set for '%s'; an earlier step must create it", key)
	}
	return value, nil
}

func (b *BDDContext) setAccount(ordinal string, ref ledger.AccountRef) {
	b.SetTagValue("account."+ordinal, ref)
}

func (b *BDDContext) account(ordinal string) (ledger.AccountRef, error) {
	value, err := b.GetTagValue("account." + ordinal)
	if err != nil {
		return ledger.AccountRef{}, err
	}
	return value.(ledger.AccountRef), nil
}

func (b *BDDContext) token() (*scenarioToken, error) {
	value, err := b.GetTagValue(tagToken)
	if err != nil {
		return nil, err
	}
	return value.(*scenarioToken), nil
}

func (b *BDDContext) topic() (hedera.TopicID, error) {
	value, err := b.GetTagValue(tagTopic)
	if err != nil {
		return hedera.TopicID{}, err
	}
	return value.(hedera.TopicID), nil
}

func (b *BDDContext) transfer() (*ledger.TransferPlan, error) {
	value, err := b.GetTagValue(tagTransfer)
	if err != nil {
		return nil, err
	}
	return value.(*ledger.TransferPlan), nil
}

func (b *BDDContext) thresholdKey() (*hedera.KeyList, error) {
	value, err := b.GetTagValue(tagThresholdKey)
	if err != nil {
		return nil, err
	}
	return value.(*hedera.KeyList), nil
}
