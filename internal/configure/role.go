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

	"golang.org/x/crypto/sha3"
)

// RoleID derives the access-control role identifier for roleName: the legacy
// Keccak-256 of its UTF-8 bytes, 0x-prefixed hex.
func RoleID(roleName string) string {
	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte(roleName))
	return "0x" + hex.EncodeToString(hash.Sum(nil))
}
