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

	"github.com/signalfoundry/account-intelligence-service/internal/accounts/handler"
)

type AccountsService struct {
	accountHandler *handler.AccountHandler
}

func NewAccountsService() *AccountsService {

	return &AccountsService{
		accountHandler: handler.NewAccountHandler(),
	}
}

// Route handles all organization-aware account endpoints.
func (s *AccountsService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodGet && path == "/accounts":
		s.accountHandler.GetAccounts(w, r)

	case method == http.MethodGet && path == "/accounts/scores":
		s.accountHandler.GetAccountScores(w, r)

	case method == http.MethodGet && strings.HasSuffix(path, "/score") && strings.HasPrefix(path, "/accounts/"):
		s.accountHandler.GetAccountScore(w, r)

	case method == http.MethodGet && strings.HasSuffix(path, "/snapshots") && strings.HasPrefix(path, "/accounts/"):
		s.accountHandler.GetScoreSnapshots(w, r)

	case method == http.MethodPost && strings.HasSuffix(path, "/recompute") && strings.HasPrefix(path, "/accounts/"):
		s.accountHandler.RecomputeScore(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/accounts/"):
		s.accountHandler.GetAccount(w, r)

	default:
		http.NotFound(w, r)
	}
}
