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

package provider

import (
	"github.com/signalfoundry/account-intelligence-service/internal/signals/service"
)

// SignalProviderInterface defines the interface for the signal provider.
type SignalProviderInterface interface {
	GetSignalService() service.SignalServiceInterface
}

// SignalProvider is the default implementation of the SignalProviderInterface.
type SignalProvider struct{}

// NewSignalProvider creates a new instance of SignalProvider.
func NewSignalProvider() SignalProviderInterface {

	return &SignalProvider{}
}

// GetSignalService returns the signal service instance.
func (sp *SignalProvider) GetSignalService() service.SignalServiceInterface {

	return service.GetSignalService()
}
