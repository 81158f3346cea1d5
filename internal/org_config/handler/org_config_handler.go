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

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/signalfoundry/account-intelligence-service/internal/org_config/model"
	"github.com/signalfoundry/account-intelligence-service/internal/org_config/provider"
	errors2 "github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/security"
	"github.com/signalfoundry/account-intelligence-service/internal/system/utils"
)

type OrgConfigHandler struct{}

func NewOrgConfigHandler() *OrgConfigHandler {

	return &OrgConfigHandler{}
}

// GetOrgConfig fetches the organization configuration, defaults included.
func (och *OrgConfigHandler) GetOrgConfig(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "org_config:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	orgId := utils.ExtractOrgIdFromPath(r)
	orgConfigService := provider.NewOrgConfigProvider().GetOrgConfigService()
	orgConfig, err := orgConfigService.GetOrgConfig(orgId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(orgConfig)
}

// UpdateOrgConfig replaces the organization configuration.
func (och *OrgConfigHandler) UpdateOrgConfig(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "org_config:update"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var orgConfig model.OrgConfig
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&orgConfig); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "organization config"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	orgConfig.OrgId = utils.ExtractOrgIdFromPath(r)
	orgConfigService := provider.NewOrgConfigProvider().GetOrgConfigService()
	updated, err := orgConfigService.UpdateOrgConfig(orgConfig)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(updated)
}
