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
	"time"

	"github.com/stretchr/testify/require"
	"github.com/signalfoundry/account-intelligence-service/internal/signals/model"
	"github.com/signalfoundry/account-intelligence-service/internal/signals/service"
)

func Test_SignalIngestion(t *testing.T) {
	signalSvc := service.GetSignalService()
	orgId := "org-ingest"

	request := model.SignalRequest{
		IdempotencyKey: "evt-0001",
		Source:         "github",
		SignalType:     "repo_starred",
		Actor: model.Actor{
			Email: "dev@ingestcorp.com",
			Name:  "Dev One",
		},
		Properties: map[string]interface{}{"repo": "ingestcorp/sdk"},
		OccurredAt: time.Now().UTC().Add(-time.Hour),
	}

	var signalId string

	t.Run("Ingest_new_signal", func(t *testing.T) {
		signal, created, err := signalSvc.IngestSignal(orgId, request)
		require.NoError(t, err, "Failed to ingest signal")
		require.True(t, created, "Expected a new signal")
		require.NotEmpty(t, signal.SignalId)
		require.NotEmpty(t, signal.ContactId, "Corporate email should resolve a contact")
		require.NotEmpty(t, signal.AccountId, "Corporate email should resolve an account")
		signalId = signal.SignalId
	})

	t.Run("Replay_returns_stored_signal", func(t *testing.T) {
		replayed, created, err := signalSvc.IngestSignal(orgId, request)
		require.NoError(t, err, "Failed to replay signal")
		require.False(t, created, "Replay must not create a second signal")
		require.Equal(t, signalId, replayed.SignalId, "Replay must return the original signal")
	})

	t.Run("Get_signal_by_id", func(t *testing.T) {
		signal, err := signalSvc.GetSignal(orgId, signalId)
		require.NoError(t, err, "Failed to get signal")
		require.Equal(t, "repo_starred", signal.SignalType)
		require.Equal(t, "evt-0001", signal.IdempotencyKey)
	})

	t.Run("Derived_key_deduplicates", func(t *testing.T) {
		noKey := request
		noKey.IdempotencyKey = ""

		first, created, err := signalSvc.IngestSignal(orgId, noKey)
		require.NoError(t, err)
		require.True(t, created)

		second, created, err := signalSvc.IngestSignal(orgId, noKey)
		require.NoError(t, err)
		require.False(t, created, "Identical payload must deduplicate on the derived key")
		require.Equal(t, first.SignalId, second.SignalId)
	})

	t.Run("Free_email_domain_stays_unattributed", func(t *testing.T) {
		anonymous := model.SignalRequest{
			Source:     "website",
			SignalType: "docs_visited",
			Actor:      model.Actor{Email: "someone@gmail.com"},
			OccurredAt: time.Now().UTC(),
		}
		signal, created, err := signalSvc.IngestSignal(orgId, anonymous)
		require.NoError(t, err)
		require.True(t, created)
		require.NotEmpty(t, signal.ContactId, "Free-mail actors still get a contact")
		require.Empty(t, signal.AccountId, "Free-mail domains never derive an account")
	})

	t.Run("Account_hint_attributes_unresolved_actor", func(t *testing.T) {
		hinted := model.SignalRequest{
			Source:      "webhook",
			SignalType:  "trial_started",
			Actor:       model.Actor{Email: "someone-else@gmail.com"},
			AccountHint: "acc-from-crm",
			OccurredAt:  time.Now().UTC(),
		}
		signal, created, err := signalSvc.IngestSignal(orgId, hinted)
		require.NoError(t, err)
		require.True(t, created)
		require.Equal(t, "acc-from-crm", signal.AccountId,
			"Producer hint attributes the signal when resolution finds no account")
		require.Equal(t, "acc-from-crm", signal.AccountHint)

		stored, err := signalSvc.GetSignal(orgId, signal.SignalId)
		require.NoError(t, err)
		require.Equal(t, "acc-from-crm", stored.AccountId)
	})

	t.Run("Signals_listed_by_account", func(t *testing.T) {
		stored, err := signalSvc.GetSignal(orgId, signalId)
		require.NoError(t, err)

		signals, err := signalSvc.GetSignalsByAccount(orgId, stored.AccountId)
		require.NoError(t, err, "Failed to list signals by account")
		require.GreaterOrEqual(t, len(signals), 1, "Expected at least one attributed signal")
	})
}
