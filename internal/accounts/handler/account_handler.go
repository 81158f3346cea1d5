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

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/signalfoundry/account-intelligence-service/internal/accounts/provider"
	"github.com/signalfoundry/account-intelligence-service/internal/system/security"
	"github.com/signalfoundry/account-intelligence-service/internal/system/utils"
)

type AccountHandler struct{}

func NewAccountHandler() *AccountHandler {

	return &AccountHandler{}
}

// GetAccounts fetches the accounts of the organization.
func (ah *AccountHandler) GetAccounts(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "accounts:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	orgId := utils.ExtractOrgIdFromPath(r)
	accountService := provider.NewAccountProvider().GetAccountService()
	accounts, err := accountService.GetAccounts(orgId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(accounts)
}

// GetAccount fetches a single account.
func (ah *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "accounts:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	orgId := utils.ExtractOrgIdFromPath(r)
	accountService := provider.NewAccountProvider().GetAccountService()
	account, err := accountService.GetAccount(orgId, extractAccountId(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(account)
}

// GetAccountScores fetches scored accounts, optionally filtered by tier.
func (ah *AccountHandler) GetAccountScores(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "accounts:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	orgId := utils.ExtractOrgIdFromPath(r)
	tier := r.URL.Query().Get("tier")
	accountService := provider.NewAccountProvider().GetAccountService()
	scores, err := accountService.GetAccountScoresByTier(orgId, tier)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(scores)
}

// GetAccountScore fetches the current score of an account. An account that
// has never been scored yields a 204.
func (ah *AccountHandler) GetAccountScore(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "accounts:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	orgId := utils.ExtractOrgIdFromPath(r)
	accountService := provider.NewAccountProvider().GetAccountService()
	score, err := accountService.GetAccountScore(orgId, extractAccountId(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if score == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(score)
}

// GetScoreSnapshots fetches the score history of an account.
func (ah *AccountHandler) GetScoreSnapshots(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "accounts:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	sinceDays := 0
	if raw := r.URL.Query().Get("since_days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			sinceDays = parsed
		}
	}

	orgId := utils.ExtractOrgIdFromPath(r)
	accountService := provider.NewAccountProvider().GetAccountService()
	snapshots, err := accountService.GetScoreSnapshots(orgId, extractAccountId(r), sinceDays)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(snapshots)
}

// RecomputeScore recomputes an account's score synchronously. A concurrent
// recompute already in flight yields a 202.
func (ah *AccountHandler) RecomputeScore(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "accounts:recompute"); err != nil {
		utils.HandleError(w, err)
		return
	}

	orgId := utils.ExtractOrgIdFromPath(r)
	accountService := provider.NewAccountProvider().GetAccountService()
	result, err := accountService.RecomputeAccountScore(orgId, extractAccountId(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if result == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(result)
}

// extractAccountId pulls the account id segment out of /accounts/{id}[/...].
func extractAccountId(r *http.Request) string {

	path := strings.TrimPrefix(strings.TrimSuffix(r.URL.Path, "/"), "/accounts/")
	if idx := strings.Index(path, "/"); idx >= 0 {
		return path[:idx]
	}
	return path
}
