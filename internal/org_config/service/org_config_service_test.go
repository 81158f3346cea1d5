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
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/signalfoundry/account-intelligence-service/internal/org_config/model"
	"github.com/signalfoundry/account-intelligence-service/internal/system/config"
	"github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	config.OverrideAISRuntime(config.Config{
		Scoring: config.ScoringConfig{
			MaxScore:             100,
			DefaultHotThreshold:  70,
			DefaultWarmThreshold: 40,
			DefaultColdThreshold: 15,
		},
	})
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// UpdateOrgConfig – early-return validation (no DB required)
// ---------------------------------------------------------------------------

func TestUpdateOrgConfig_RejectsOutOfRangeThresholds(t *testing.T) {
	cases := []struct {
		name      string
		orgConfig model.OrgConfig
	}{
		{"negative hot", model.OrgConfig{OrgId: "org1", HotThreshold: -1, WarmThreshold: 40, ColdThreshold: 15}},
		{"hot above max score", model.OrgConfig{OrgId: "org1", HotThreshold: 101, WarmThreshold: 40, ColdThreshold: 15}},
		{"negative warm", model.OrgConfig{OrgId: "org1", HotThreshold: 70, WarmThreshold: -5, ColdThreshold: 15}},
		{"cold above max score", model.OrgConfig{OrgId: "org1", HotThreshold: 70, WarmThreshold: 40, ColdThreshold: 200}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := UpdateOrgConfig(tc.orgConfig)
			require.Error(t, err)

			clientErr, ok := err.(*errors.ClientError)
			require.True(t, ok, "expected a ClientError")
			assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
		})
	}
}

// ---------------------------------------------------------------------------
// defaultOrgConfig
// ---------------------------------------------------------------------------

func TestDefaultOrgConfig(t *testing.T) {
	defaults := defaultOrgConfig("org1")

	assert.Equal(t, "org1", defaults.OrgId)
	assert.Equal(t, 70.0, defaults.HotThreshold)
	assert.Equal(t, 40.0, defaults.WarmThreshold)
	assert.Equal(t, 15.0, defaults.ColdThreshold)
	assert.True(t, defaults.InAppEnabled)
	assert.False(t, defaults.EmailEnabled)
	assert.False(t, defaults.SlackEnabled)
}
