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
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	alertmodel "github.com/signalfoundry/account-intelligence-service/internal/alerts/model"
	"github.com/signalfoundry/account-intelligence-service/internal/system/config"
	"github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	config.OverrideAISRuntime(config.Config{})
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// webhookSlackSender
// ---------------------------------------------------------------------------

func TestWebhookSlackSender_PostsTextPayload(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := webhookSlackSender{}.Post(server.URL, "*rule*\nmessage")
	require.NoError(t, err)
	assert.Equal(t, "*rule*\nmessage", received["text"])
}

func TestWebhookSlackSender_NonSuccessStatusFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	err := webhookSlackSender{}.Post(server.URL, "message")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

// ---------------------------------------------------------------------------
// deliverSlack
// ---------------------------------------------------------------------------

type recordingSlackSender struct {
	webhookUrl string
	message    string
	err        error
}

func (s *recordingSlackSender) Post(webhookUrl, message string) error {
	s.webhookUrl = webhookUrl
	s.message = message
	return s.err
}

func testAlertEvent() alertmodel.AlertEvent {
	return alertmodel.AlertEvent{
		RuleId:      "rule-1",
		RuleName:    "hot accounts",
		OrgId:       "org1",
		AccountId:   "acc1",
		TriggerType: "new_hot_signal",
		Message:     "Tracked signal: demo_requested arrived from source: website",
		TriggeredAt: time.Now().UTC(),
	}
}

func TestDeliverSlack_FormatsMessage(t *testing.T) {
	sender := &recordingSlackSender{}
	service := NewNotificationServiceWithSenders(nil, nil, sender)

	err := service.deliverSlack(testAlertEvent(), "https://hooks.slack.example/T000/B000")
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.slack.example/T000/B000", sender.webhookUrl)
	assert.Equal(t, "*hot accounts*\nTracked signal: demo_requested arrived from source: website", sender.message)
}

func TestDeliverSlack_WrapsSenderError(t *testing.T) {
	sender := &recordingSlackSender{err: assert.AnError}
	service := NewNotificationServiceWithSenders(nil, nil, sender)

	err := service.deliverSlack(testAlertEvent(), "https://hooks.slack.example/T000/B000")
	require.Error(t, err)

	serverErr, ok := err.(*errors.ServerError)
	require.True(t, ok, "expected a ServerError")
	assert.Equal(t, errors.SEND_SLACK.Code, serverErr.Code)
}

// ---------------------------------------------------------------------------
// deliverInApp
// ---------------------------------------------------------------------------

func TestDeliverInApp_WithoutRepositoryFails(t *testing.T) {
	service := NewNotificationServiceWithSenders(nil, nil, nil)

	err := service.deliverInApp(testAlertEvent())
	require.Error(t, err)

	serverErr, ok := err.(*errors.ServerError)
	require.True(t, ok, "expected a ServerError")
	assert.Equal(t, errors.ADD_NOTIFICATION.Code, serverErr.Code)
}

// ---------------------------------------------------------------------------
// Tier movement messages
// ---------------------------------------------------------------------------

func TestTierMovementMessages(t *testing.T) {
	assert.Equal(t, "Account moved from WARM to HOT with score 82.5",
		tierChangeMessage("WARM", "HOT", 82.5))
	assert.Equal(t, "Account entered the HOT tier with score 82.5",
		tierChangeMessage("", "HOT", 82.5))
	assert.Equal(t, "Account is now HOT with score 82.5",
		newHotAccountMessage(82.5))
}

func TestNotifyTierChange_WithoutRepositoryFails(t *testing.T) {
	service := NewNotificationServiceWithSenders(nil, nil, nil)

	err := service.NotifyTierChange("org1", "acc1", "WARM", "HOT", 82.5)
	require.Error(t, err)

	serverErr, ok := err.(*errors.ServerError)
	require.True(t, ok, "expected a ServerError")
	assert.Equal(t, errors.ADD_NOTIFICATION.Code, serverErr.Code)
}
