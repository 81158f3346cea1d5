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
	"fmt"
	"net/http"
	"time"

	"github.com/signalfoundry/account-intelligence-service/internal/org_config/model"
	"github.com/signalfoundry/account-intelligence-service/internal/org_config/store"
	"github.com/signalfoundry/account-intelligence-service/internal/system/cache"
	"github.com/signalfoundry/account-intelligence-service/internal/system/config"
	errors2 "github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
)

var orgConfigCache = cache.NewCache(5 * time.Minute)

// GetOrgConfig returns the stored configuration for an organization, falling
// back to the deployment defaults when nothing has been stored yet.
func GetOrgConfig(orgId string) (*model.OrgConfig, error) {

	if cached, found := orgConfigCache.Get(orgId); found {
		orgConfig := cached.(model.OrgConfig)
		return &orgConfig, nil
	}

	orgConfig, err := store.GetOrgConfig(orgId)
	if err != nil {
		return nil, err
	}
	if orgConfig == nil {
		defaults := defaultOrgConfig(orgId)
		orgConfigCache.Set(orgId, defaults)
		return &defaults, nil
	}

	orgConfigCache.Set(orgId, *orgConfig)
	return orgConfig, nil
}

// UpdateOrgConfig validates, clips, and stores the configuration for an
// organization. Thresholds are clipped so that HOT >= WARM >= COLD always
// holds after a write.
func UpdateOrgConfig(orgConfig model.OrgConfig) (*model.OrgConfig, error) {

	logger := log.GetLogger()
	maxScore := config.GetAISRuntime().Config.Scoring.MaxScore

	if orgConfig.HotThreshold < 0 || orgConfig.HotThreshold > maxScore ||
		orgConfig.WarmThreshold < 0 || orgConfig.WarmThreshold > maxScore ||
		orgConfig.ColdThreshold < 0 || orgConfig.ColdThreshold > maxScore {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_TIER_THRESHOLDS.Code,
			Message:     errors2.INVALID_TIER_THRESHOLDS.Message,
			Description: fmt.Sprintf("Tier thresholds must be between 0 and %.0f.", maxScore),
		}, http.StatusBadRequest)
	}

	// Clip rather than reject ordering violations.
	if orgConfig.WarmThreshold > orgConfig.HotThreshold {
		orgConfig.WarmThreshold = orgConfig.HotThreshold
	}
	if orgConfig.ColdThreshold > orgConfig.WarmThreshold {
		orgConfig.ColdThreshold = orgConfig.WarmThreshold
	}

	orgConfig.UpdatedAt = time.Now().UTC()
	if err := store.UpsertOrgConfig(orgConfig); err != nil {
		return nil, err
	}
	orgConfigCache.Delete(orgConfig.OrgId)

	logger.Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeAdmin,
		TargetID:      orgConfig.OrgId,
		TargetType:    log.TargetTypeOrgConfig,
		ActionID:      log.ActionUpdateOrgConfig,
	})
	return &orgConfig, nil
}

// GetOrgMembers returns the members of an organization.
func GetOrgMembers(orgId string) ([]model.OrgMember, error) {

	return store.GetOrgMembers(orgId)
}

func defaultOrgConfig(orgId string) model.OrgConfig {

	scoringConfig := config.GetAISRuntime().Config.Scoring
	return model.OrgConfig{
		OrgId:         orgId,
		HotThreshold:  scoringConfig.DefaultHotThreshold,
		WarmThreshold: scoringConfig.DefaultWarmThreshold,
		ColdThreshold: scoringConfig.DefaultColdThreshold,
		InAppEnabled:  true,
	}
}
