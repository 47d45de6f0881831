/*
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"reflect"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/krishanb4/go-coding-challenge/internal/ledger"
)

// Prefix is the environment variable prefix for all suite configuration.
// HEDERA_OPERATOR_ACCOUNTID and HEDERA_OPERATOR_PRIVATEKEY select the paying
// account; HEDERA_NETWORK selects the network.
const Prefix = "HEDERA"

// Operator is the account that pays for and signs suite transactions.
type Operator struct {
	AccountID  hedera.AccountID `mapstructure:"accountid"`
	PrivateKey string           `mapstructure:"privatekey"`
}

// Ref parses the operator's key and returns a signing account reference.
func (o Operator) Ref() (ledger.AccountRef, error) {
	key, err := hedera.PrivateKeyFromString(o.PrivateKey)
	if err != nil {
		return ledger.AccountRef{}, errors.WithMessage(err, "parsing operator private key")
	}
	return ledger.AccountRef{ID: o.AccountID, Key: key}, nil
}

// Logging configures the suite's log output.
type Logging struct {
	Format  string `mapstructure:"format"`
	LogSpec string `mapstructure:"logspec"`
}

// TopLevel directly corresponds to the suite config yaml.
type TopLevel struct {
	Network  string   `mapstructure:"network"`
	Operator Operator `mapstructure:"operator"`
	Logging  Logging  `mapstructure:"logging"`
}

// HasOperator reports whether an operator account and key are configured.
// Without them the suite cannot reach the network and skips.
func (c *TopLevel) HasOperator() bool {
	return c.Operator.AccountID.Account != 0 && c.Operator.PrivateKey != ""
}

// Load reads the suite configuration from hedera.yaml in the given search
// paths (defaulting to the working directory and its parent) merged with
// HEDERA_* environment variables. A missing config file is not an error; a
// malformed one is.
func Load(searchPaths ...string) (*TopLevel, error) {
	v := viper.New()
	v.SetConfigName("hedera")
	v.SetConfigType("yaml")
	if len(searchPaths) == 0 {
		searchPaths = []string{".", ".."}
	}
	for _, path := range searchPaths {
		v.AddConfigPath(path)
	}

	v.SetEnvPrefix(Prefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{
		"network",
		"operator.accountid",
		"operator.privatekey",
		"logging.format",
		"logging.logspec",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.WithMessagef(err, "binding env for '%s'", key)
		}
	}

	v.SetDefault("network", "testnet")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, errors.WithMessage(err, "reading suite config")
		}
	}

	var conf TopLevel
	if err := v.Unmarshal(&conf, viper.DecodeHook(decodeHook())); err != nil {
		return nil, errors.WithMessage(err, "unmarshaling suite config")
	}
	return &conf, nil
}

// decodeHook parses Hedera entity IDs at unmarshal time so the rest of the
// suite never handles raw ID strings.
func decodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		raw := data.(string)
		switch to {
		case reflect.TypeOf(hedera.AccountID{}):
			if raw == "" {
				return hedera.AccountID{}, nil
			}
			return hedera.AccountIDFromString(raw)
		case reflect.TypeOf(hedera.TokenID{}):
			if raw == "" {
				return hedera.TokenID{}, nil
			}
			return hedera.TokenIDFromString(raw)
		}
		return data, nil
	}
}
