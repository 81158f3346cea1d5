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

package integration

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/signalfoundry/account-intelligence-service/internal/org_config/model"
	orgconfigservice "github.com/signalfoundry/account-intelligence-service/internal/org_config/service"
)

func Test_OrgConfig(t *testing.T) {
	orgConfigSvc := orgconfigservice.GetOrgConfigService()
	orgId := "org-config"

	t.Run("Defaults_before_first_write", func(t *testing.T) {
		orgConfig, err := orgConfigSvc.GetOrgConfig(orgId)
		require.NoError(t, err, "Failed to get organization config")
		require.Equal(t, 70.0, orgConfig.HotThreshold)
		require.Equal(t, 40.0, orgConfig.WarmThreshold)
		require.Equal(t, 15.0, orgConfig.ColdThreshold)
		require.True(t, orgConfig.InAppEnabled)
	})

	t.Run("Update_persists", func(t *testing.T) {
		updated, err := orgConfigSvc.UpdateOrgConfig(model.OrgConfig{
			OrgId:           orgId,
			HotThreshold:    80,
			WarmThreshold:   50,
			ColdThreshold:   20,
			SlackWebhookUrl: "https://hooks.slack.example/T000/B000",
			InAppEnabled:    true,
			SlackEnabled:    true,
		})
		require.NoError(t, err, "Failed to update organization config")
		require.Equal(t, 80.0, updated.HotThreshold)

		stored, err := orgConfigSvc.GetOrgConfig(orgId)
		require.NoError(t, err)
		require.Equal(t, 80.0, stored.HotThreshold)
		require.Equal(t, 50.0, stored.WarmThreshold)
		require.True(t, stored.SlackEnabled)
	})

	t.Run("Ordering_violations_are_clipped", func(t *testing.T) {
		updated, err := orgConfigSvc.UpdateOrgConfig(model.OrgConfig{
			OrgId:         orgId,
			HotThreshold:  60,
			WarmThreshold: 90,
			ColdThreshold: 95,
			InAppEnabled:  true,
		})
		require.NoError(t, err, "Clipping must not reject the update")
		require.Equal(t, 60.0, updated.HotThreshold)
		require.Equal(t, 60.0, updated.WarmThreshold, "WARM clipped down to HOT")
		require.Equal(t, 60.0, updated.ColdThreshold, "COLD clipped down to WARM")

		stored, err := orgConfigSvc.GetOrgConfig(orgId)
		require.NoError(t, err)
		require.Equal(t, 60.0, stored.WarmThreshold)
	})
}
