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
	"github.com/signalfoundry/account-intelligence-service/internal/org_config/service"
)

// OrgConfigProviderInterface defines the interface for the organization config provider.
type OrgConfigProviderInterface interface {
	GetOrgConfigService() service.OrgConfigServiceInterface
}

// OrgConfigProvider is the default implementation of the OrgConfigProviderInterface.
type OrgConfigProvider struct{}

// NewOrgConfigProvider creates a new instance of OrgConfigProvider.
func NewOrgConfigProvider() OrgConfigProviderInterface {

	return &OrgConfigProvider{}
}

// GetOrgConfigService returns the organization config service instance.
func (op *OrgConfigProvider) GetOrgConfigService() service.OrgConfigServiceInterface {

	return service.GetOrgConfigService()
}
