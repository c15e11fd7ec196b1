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


package build

import (
	"fmt"
	"strings"

	"github.com/vaultchain-africa/vc-automation/internal/process"
)

// CheckToolchain looks up every executable on the PATH and reports the ones
// that are missing in a single error.
func CheckToolchain(runner process.IRunner, executables ...string) error {
	missing := []string{}
	for _, executable := range executables {
		if _, err := runner.LookPath(executable); err != nil {
			missing = append(missing, executable)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("'%s' not found in PATH. Is Foundry installed on your computer?", strings.Join(missing, "', '"))
	}
	return nil
}
