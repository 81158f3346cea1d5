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
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	alertmodel "github.com/signalfoundry/account-intelligence-service/internal/alerts/model"
	notificationservice "github.com/signalfoundry/account-intelligence-service/internal/notifications/service"
	orgconfigmodel "github.com/signalfoundry/account-intelligence-service/internal/org_config/model"
	orgconfigservice "github.com/signalfoundry/account-intelligence-service/internal/org_config/service"
	"github.com/signalfoundry/account-intelligence-service/internal/system/constants"
)

// flakyEmailSender records every recipient and bounces one of them.
type flakyEmailSender struct {
	failFor   string
	attempted []string
	delivered []string
}

func (s *flakyEmailSender) Send(to, subject, body string) error {
	s.attempted = append(s.attempted, to)
	if to == s.failFor {
		return fmt.Errorf("mailbox unavailable: %s", to)
	}
	s.delivered = append(s.delivered, to)
	return nil
}

func Test_EmailFanoutIsolation(t *testing.T) {
	orgId := "org-email-fanout"

	for i, email := range []string{"one@fanoutcorp.com", "two@fanoutcorp.com", "three@fanoutcorp.com"} {
		_, err := testDB.Exec(
			`INSERT INTO org_members (member_id, org_id, email, member_name, member_role)
			 VALUES ($1, $2, $3, $4, $5)`,
			fmt.Sprintf("member-fanout-%d", i+1), orgId, email, fmt.Sprintf("Member %d", i+1), "admin")
		require.NoError(t, err, "Failed to seed organization member")
	}

	_, err := orgconfigservice.GetOrgConfigService().UpdateOrgConfig(orgconfigmodel.OrgConfig{
		OrgId:         orgId,
		HotThreshold:  70,
		WarmThreshold: 40,
		ColdThreshold: 15,
		EmailEnabled:  true,
	})
	require.NoError(t, err, "Failed to enable email for the organization")

	sender := &flakyEmailSender{failFor: "two@fanoutcorp.com"}
	svc := notificationservice.NewNotificationServiceWithSenders(nil, sender, nil)

	err = svc.Dispatch(alertmodel.AlertEvent{
		RuleId:      "rule-fanout",
		RuleName:    "hot accounts",
		OrgId:       orgId,
		AccountId:   "acc-fanout",
		TriggerType: constants.TriggerScoreThreshold,
		Message:     "Score crossed above 70.0 (now 85.0)",
		Channels:    []string{constants.ChannelEmail},
		TriggeredAt: time.Now().UTC(),
	})
	require.Error(t, err, "A bounced recipient surfaces as a delivery error")

	require.ElementsMatch(t, []string{"one@fanoutcorp.com", "two@fanoutcorp.com", "three@fanoutcorp.com"},
		sender.attempted, "Every member must be attempted despite the bounce")
	require.ElementsMatch(t, []string{"one@fanoutcorp.com", "three@fanoutcorp.com"}, sender.delivered,
		"One bounce must not block the remaining recipients")
}
