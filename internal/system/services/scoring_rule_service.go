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

	"github.com/signalfoundry/account-intelligence-service/internal/scoring/handler"
)

type ScoringRulesService struct {
	scoringRuleHandler *handler.ScoringRuleHandler
}

func NewScoringRulesService() *ScoringRulesService {

	return &ScoringRulesService{
		scoringRuleHandler: handler.NewScoringRuleHandler(),
	}
}

// Route handles all organization-aware scoring rule endpoints.
func (s *ScoringRulesService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && path == "/scoring-rules/preview":
		s.scoringRuleHandler.PreviewScore(w, r)

	case method == http.MethodPost && path == "/scoring-rules":
		s.scoringRuleHandler.AddScoringRule(w, r)

	case method == http.MethodGet && path == "/scoring-rules":
		s.scoringRuleHandler.GetScoringRules(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/scoring-rules/"):
		s.scoringRuleHandler.GetScoringRule(w, r)

	case method == http.MethodPut && strings.HasPrefix(path, "/scoring-rules/"):
		s.scoringRuleHandler.UpdateScoringRule(w, r)

	case method == http.MethodDelete && strings.HasPrefix(path, "/scoring-rules/"):
		s.scoringRuleHandler.DeleteScoringRule(w, r)

	default:
		http.NotFound(w, r)
	}
}
