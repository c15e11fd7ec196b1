// Copyright © 2025 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package configure

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/hyperledger/firefly-signer/pkg/secp256k1"
)

// Identities are the accounts taking part in post-deploy configuration.
// OperatorKey falls back to AdminKey, and OperatorAddress is derived from the
// operator key when left empty. A configured OperatorAddress must belong to the
// operator key, since the operator signs the member setup calls.
type Identities struct {
	AdminKey        string `yaml:"adminKey" mapstructure:"adminKey"`
	OperatorKey     string `yaml:"operatorKey,omitempty" mapstructure:"operatorKey"`
	OperatorAddress string `yaml:"operatorAddress,omitempty" mapstructure:"operatorAddress"`
	MemberAddress   string `yaml:"memberAddress" mapstructure:"memberAddress"`
}

// Resolve fills in defaulted fields and validates every key and address.
func (ids Identities) Resolve() (*Identities, error) {
	if _, err := parsePrivateKey(ids.AdminKey); err != nil {
		return nil, fmt.Errorf("invalid admin key: %w", err)
	}
	if ids.OperatorKey == "" {
		ids.OperatorKey = ids.AdminKey
	}
	operator, err := parsePrivateKey(ids.OperatorKey)
	if err != nil {
		return nil, fmt.Errorf("invalid operator key: %w", err)
	}
	if ids.OperatorAddress == "" {
		ids.OperatorAddress = operator.Address.String()
	} else if _, err := ethtypes.NewAddress(ids.OperatorAddress); err != nil {
		return nil, fmt.Errorf("invalid operator address '%s': %w", ids.OperatorAddress, err)
	} else if !strings.EqualFold(ids.OperatorAddress, operator.Address.String()) {
		return nil, fmt.Errorf("operator address %s does not match the operator key", ids.OperatorAddress)
	}
	if _, err := ethtypes.NewAddress(ids.MemberAddress); err != nil {
		return nil, fmt.Errorf("invalid member address '%s': %w", ids.MemberAddress, err)
	}
	return &ids, nil
}

// AddressForKey returns the account address controlled by a hex private key.
func AddressForKey(privateKey string) (string, error) {
	keyPair, err := parsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}
	return keyPair.Address.String(), nil
}

func parsePrivateKey(privateKey string) (*secp256k1.KeyPair, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("private key is not hex encoded")
	}
	if len(b) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(b))
	}
	return secp256k1.NewSecp256k1KeyPair(b)
}
