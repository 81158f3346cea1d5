/*
 * Copyright (c) 2026, Signal Foundry, Inc. (https://www.signalfoundry.io).
 *
 * Signal Foundry, Inc. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package services

import (
	"net/http"
	"strings"

	"github.com/signalfoundry/account-intelligence-service/internal/alerts/handler"
)

type AlertRulesService struct {
	alertRuleHandler *handler.AlertRuleHandler
}

func NewAlertRulesService() *AlertRulesService {

	return &AlertRulesService{
		alertRuleHandler: handler.NewAlertRuleHandler(),
	}
}

// Route handles all organization-aware alert rule endpoints.
func (s *AlertRulesService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && path == "/alert-rules":
		s.alertRuleHandler.AddAlertRule(w, r)

	case method == http.MethodGet && path == "/alert-rules":
		s.alertRuleHandler.GetAlertRules(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/alert-rules/"):
		s.alertRuleHandler.GetAlertRule(w, r)

	case method == http.MethodPut && strings.HasPrefix(path, "/alert-rules/"):
		s.alertRuleHandler.UpdateAlertRule(w, r)

	case method == http.MethodDelete && strings.HasPrefix(path, "/alert-rules/"):
		s.alertRuleHandler.DeleteAlertRule(w, r)

	default:
		http.NotFound(w, r)
	}
}
