/*
 * Copyright (c) 2026, Signal Foundry, Inc. (https://www.signalfoundry.io).
 *
 * Signal Foundry, Inc. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package config

import "sync"

// AISRuntime holds the runtime configuration for the account intelligence server.
type AISRuntime struct {
	AISHome string `yaml:"ais_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *AISRuntime
	once          sync.Once
)

// InitializeAISRuntime initializes the AISRuntime configuration.
func InitializeAISRuntime(aisHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &AISRuntime{
			AISHome: aisHome,
			Config:  *config,
		}
	})

	return nil
}

// GetAISRuntime returns the AISRuntime configuration.
func GetAISRuntime() *AISRuntime {

	if runtimeConfig == nil {
		panic("AISRuntime is not initialized")
	}
	return runtimeConfig
}
