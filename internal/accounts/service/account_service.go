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
	"fmt"
	"net/http"
	"time"

	"github.com/signalfoundry/account-intelligence-service/internal/accounts/model"
	"github.com/signalfoundry/account-intelligence-service/internal/accounts/store"
	alertmodel "github.com/signalfoundry/account-intelligence-service/internal/alerts/model"
	alertservice "github.com/signalfoundry/account-intelligence-service/internal/alerts/service"
	scoringmodel "github.com/signalfoundry/account-intelligence-service/internal/scoring/model"
	scoringservice "github.com/signalfoundry/account-intelligence-service/internal/scoring/service"
	errors2 "github.com/signalfoundry/account-intelligence-service/internal/system/errors"
)

// GetAccounts returns all accounts of an organization.
func GetAccounts(orgId string) ([]model.Account, error) {

	return store.GetAccountsByOrg(orgId)
}

// GetAccount returns a single account.
func GetAccount(orgId, accountId string) (*model.Account, error) {

	account, err := store.GetAccountById(orgId, accountId)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, accountNotFoundError(accountId)
	}
	return account, nil
}

// GetAccountScore returns the current score of an account, nil when the
// account has never been scored.
func GetAccountScore(orgId, accountId string) (*model.AccountScore, error) {

	if _, err := GetAccount(orgId, accountId); err != nil {
		return nil, err
	}
	return store.GetAccountScore(orgId, accountId)
}

// GetAccountScoresByTier returns the scored accounts of an organization,
// optionally narrowed to one tier.
func GetAccountScoresByTier(orgId, tier string) ([]model.AccountScore, error) {

	if tier == "" {
		return store.GetAccountScoresByOrg(orgId)
	}
	return store.GetAccountScoresByTier(orgId, tier)
}

// GetScoreSnapshots returns the score history of an account over the last
// sinceDays days.
func GetScoreSnapshots(orgId, accountId string, sinceDays int) ([]model.ScoreSnapshot, error) {

	if _, err := GetAccount(orgId, accountId); err != nil {
		return nil, err
	}
	if sinceDays <= 0 {
		sinceDays = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -sinceDays)
	return store.GetScoreSnapshotsSince(orgId, accountId, since)
}

// RecomputeAccountScore recomputes an account's score synchronously and runs
// alert evaluation on the movement. Returns the fresh score result, or nil
// when another recompute already holds the lock.
func RecomputeAccountScore(orgId, accountId string) (*scoringmodel.ScoreResult, error) {

	if _, err := GetAccount(orgId, accountId); err != nil {
		return nil, err
	}

	result, err := scoringservice.RecomputeAccountScore(orgId, accountId)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	newScore := result.Result.Score
	alertservice.EvaluateForAccount(alertmodel.EvaluationContext{
		OrgId:     orgId,
		AccountId: accountId,
		OldScore:  result.OldScore,
		NewScore:  &newScore,
		OldTier:   result.OldTier,
		NewTier:   result.Result.Tier,
		Now:       result.Result.ComputedAt,
	})
	return &result.Result, nil
}

func accountNotFoundError(accountId string) error {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.ACCOUNT_NOT_FOUND.Code,
		Message:     errors2.ACCOUNT_NOT_FOUND.Message,
		Description: fmt.Sprintf("No account found with id: %s.", accountId),
	}, http.StatusNotFound)
}
