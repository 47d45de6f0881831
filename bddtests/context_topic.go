/*
SPDX-License-Identifier: Apache-2.0
*/

package bddtests

import (
	"fmt"
	"time"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/krishanb4/go-coding-challenge/internal/ledger"
)

func (b *BDDContext) aThresholdKeyWithFirstAndSecondAccountKeys(threshold, of int64) (err error) {
	errRetFunc := func() error {
		return fmt.Errorf("Error building %d of %d threshold key:  %s", threshold, of, err)
	}
	if of != 2 {
		err = fmt.Errorf("threshold key steps name exactly the first and second accounts")
		return errRetFunc()
	}
	var first, second ledger.AccountRef
	if first, err = b.account("first"); err != nil {
		return errRetFunc()
	}
	if second, err = b.account("second"); err != nil {
		return errRetFunc()
	}
	keyList := hedera.KeyListWithThreshold(uint(threshold)).
		Add(first.Key.PublicKey()).
		Add(second.Key.PublicKey())
	b.SetTagValue(tagThresholdKey, keyList)
	return nil
}

func (b *BDDContext) aTopicIsCreatedWithFirstAccountSubmitKey(memo string) (err error) {
	errRetFunc := func() error {
		return fmt.Errorf("Error creating topic with memo '%s':  %s", memo, err)
	}
	var first ledger.AccountRef
	if first, err = b.account("first"); err != nil {
		return errRetFunc()
	}
	var topic hedera.TopicID
	if topic, err = b.client.CreateTopic(memo, first.Key.PublicKey()); err != nil {
		return errRetFunc()
	}
	b.SetTagValue(tagTopic, topic)
	b.logger.Infow("topic created", "topic", topic.String(), "memo", memo)
	return nil
}

func (b *BDDContext) aTopicIsCreatedWithThresholdSubmitKey(memo string) (err error) {
	errRetFunc := func() error {
		return fmt.Errorf("Error creating topic with memo '%s' and threshold submit key:  %s", memo, err)
	}
	var keyList *hedera.KeyList
	if keyList, err = b.thresholdKey(); err != nil {
		return errRetFunc()
	}
	var topic hedera.TopicID
	if topic, err = b.client.CreateTopic(memo, keyList); err != nil {
		return errRetFunc()
	}
	b.SetTagValue(tagTopic, topic)
	b.logger.Infow("topic created", "topic", topic.String(), "memo", memo)
	return nil
}

func (b *BDDContext) theMessageIsPublishedToTheTopic(message string) error {
	return b.publishSignedBy(message, "first")
}

func (b *BDDContext) theMessageIsPublishedToTheTopicSignedBy(message, ordinal string) error {
	return b.publishSignedBy(message, ordinal)
}

func (b *BDDContext) publishSignedBy(message, ordinal string) (err error) {
	errRetFunc := func() error {
		return fmt.Errorf("Error publishing message '%s' signed by %s account:  %s", message, ordinal, err)
	}
	var topic hedera.TopicID
	if topic, err = b.topic(); err != nil {
		return errRetFunc()
	}
	var signer ledger.AccountRef
	if signer, err = b.account(ordinal); err != nil {
		return errRetFunc()
	}
	var receipt ledger.Receipt
	if receipt, err = b.client.SubmitMessage(topic, message, signer.Key); err != nil {
		return errRetFunc()
	}
	if !receipt.Success {
		err = fmt.Errorf("message submission finished with status '%s'", receipt.Status)
		return errRetFunc()
	}
	return nil
}

// Rejection is this step's success: a topic guarded by a submit key must
// refuse a message whose signatures do not satisfy the key.
func (b *BDDContext) publishingSignedOnlyByAccountIsRejected(message, ordinal string) error {
	topic, err := b.topic()
	if err != nil {
		return err
	}
	signer, err := b.account(ordinal)
	if err != nil {
		return err
	}
	receipt, err := b.client.SubmitMessage(topic, message, signer.Key)
	if err == nil {
		return fmt.Errorf("expected submission signed only by %s account to be rejected, got status '%s'", ordinal, receipt.Status)
	}
	b.logger.Infow("message rejected as expected", "topic", topic.String(), "error", err)
	return nil
}

func (b *BDDContext) theTopicInfoReportsTheMemo(memo string) (err error) {
	errRetFunc := func() error {
		return fmt.Errorf("Error verifying memo of topic:  %s", err)
	}
	var topic hedera.TopicID
	if topic, err = b.topic(); err != nil {
		return errRetFunc()
	}
	var details ledger.TopicDetails
	if details, err = b.client.TopicInfo(topic); err != nil {
		return errRetFunc()
	}
	if details.Memo != memo {
		err = fmt.Errorf("expected memo '%s', got '%s'", memo, details.Memo)
		return errRetFunc()
	}
	return nil
}

func (b *BDDContext) theMessageIsReceivedWithinSeconds(message string, seconds int64) (err error) {
	errRetFunc := func() error {
		return fmt.Errorf("Error waiting for message '%s':  %s", message, err)
	}
	var topic hedera.TopicID
	if topic, err = b.topic(); err != nil {
		return errRetFunc()
	}
	if err = b.client.AwaitTopicMessage(topic, message, time.Duration(seconds)*time.Second); err != nil {
		return errRetFunc()
	}
	return nil
}
