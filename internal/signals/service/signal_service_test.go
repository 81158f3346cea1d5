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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/signalfoundry/account-intelligence-service/internal/signals/model"
	"github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// deriveIdempotencyKey
// ---------------------------------------------------------------------------

func TestDeriveIdempotencyKey_Deterministic(t *testing.T) {
	occurredAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	request := model.SignalRequest{
		Source:     "github",
		SignalType: "repo_starred",
		Actor:      model.Actor{Email: "dev@acme.com", ExternalId: "octocat"},
	}

	first := deriveIdempotencyKey("org1", request, occurredAt)
	second := deriveIdempotencyKey("org1", request, occurredAt)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64, "sha256 hex digest")
}

func TestDeriveIdempotencyKey_EmailCaseInsensitive(t *testing.T) {
	occurredAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	lower := model.SignalRequest{
		Source:     "github",
		SignalType: "repo_starred",
		Actor:      model.Actor{Email: "dev@acme.com"},
	}
	upper := lower
	upper.Actor.Email = " DEV@ACME.COM "

	assert.Equal(t,
		deriveIdempotencyKey("org1", lower, occurredAt),
		deriveIdempotencyKey("org1", upper, occurredAt))
}

func TestDeriveIdempotencyKey_DistinguishingFields(t *testing.T) {
	occurredAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	base := model.SignalRequest{
		Source:     "github",
		SignalType: "repo_starred",
		Actor:      model.Actor{Email: "dev@acme.com"},
	}
	baseKey := deriveIdempotencyKey("org1", base, occurredAt)

	otherOrg := deriveIdempotencyKey("org2", base, occurredAt)
	assert.NotEqual(t, baseKey, otherOrg)

	otherType := base
	otherType.SignalType = "pr_opened"
	assert.NotEqual(t, baseKey, deriveIdempotencyKey("org1", otherType, occurredAt))

	otherTime := deriveIdempotencyKey("org1", base, occurredAt.Add(time.Millisecond))
	assert.NotEqual(t, baseKey, otherTime)
}

// ---------------------------------------------------------------------------
// validateSignalRequest – early-return validation (no DB required)
// ---------------------------------------------------------------------------

func TestValidateSignalRequest(t *testing.T) {
	valid := model.SignalRequest{Source: "github", SignalType: "repo_starred"}
	assert.NoError(t, validateSignalRequest(valid))

	cases := []struct {
		name    string
		request model.SignalRequest
	}{
		{"missing source", model.SignalRequest{SignalType: "repo_starred"}},
		{"unknown source", model.SignalRequest{Source: "carrier_pigeon", SignalType: "repo_starred"}},
		{"missing signal type", model.SignalRequest{Source: "github"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateSignalRequest(tc.request)
			require.Error(t, err)

			clientErr, ok := err.(*errors.ClientError)
			require.True(t, ok, "expected a ClientError")
			assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
		})
	}
}
