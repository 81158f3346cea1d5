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

package service

import (
	"github.com/signalfoundry/account-intelligence-service/internal/org_config/model"
)

// OrgConfigServiceInterface defines the service interface.
type OrgConfigServiceInterface interface {
	GetOrgConfig(orgId string) (*model.OrgConfig, error)
	UpdateOrgConfig(orgConfig model.OrgConfig) (*model.OrgConfig, error)
	GetOrgMembers(orgId string) ([]model.OrgMember, error)
}

// OrgConfigService is the default implementation.
type OrgConfigService struct{}

// GetOrgConfigService returns the organization config service instance.
func GetOrgConfigService() OrgConfigServiceInterface {

	return &OrgConfigService{}
}

func (ocs *OrgConfigService) GetOrgConfig(orgId string) (*model.OrgConfig, error) {

	return GetOrgConfig(orgId)
}

func (ocs *OrgConfigService) UpdateOrgConfig(orgConfig model.OrgConfig) (*model.OrgConfig, error) {

	return UpdateOrgConfig(orgConfig)
}

func (ocs *OrgConfigService) GetOrgMembers(orgId string) ([]model.OrgMember, error) {

	return GetOrgMembers(orgId)
}
