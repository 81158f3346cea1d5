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
	"github.com/signalfoundry/account-intelligence-service/internal/accounts/model"
	scoringmodel "github.com/signalfoundry/account-intelligence-service/internal/scoring/model"
)

// AccountServiceInterface defines the service interface.
type AccountServiceInterface interface {
	GetAccounts(orgId string) ([]model.Account, error)
	GetAccount(orgId, accountId string) (*model.Account, error)
	GetAccountScore(orgId, accountId string) (*model.AccountScore, error)
	GetAccountScoresByTier(orgId, tier string) ([]model.AccountScore, error)
	GetScoreSnapshots(orgId, accountId string, sinceDays int) ([]model.ScoreSnapshot, error)
	RecomputeAccountScore(orgId, accountId string) (*scoringmodel.ScoreResult, error)
}

// AccountService is the default implementation.
type AccountService struct{}

// GetAccountService returns the account service instance.
func GetAccountService() AccountServiceInterface {

	return &AccountService{}
}

func (as *AccountService) GetAccounts(orgId string) ([]model.Account, error) {

	return GetAccounts(orgId)
}

func (as *AccountService) GetAccount(orgId, accountId string) (*model.Account, error) {

	return GetAccount(orgId, accountId)
}

func (as *AccountService) GetAccountScore(orgId, accountId string) (*model.AccountScore, error) {

	return GetAccountScore(orgId, accountId)
}

func (as *AccountService) GetAccountScoresByTier(orgId, tier string) ([]model.AccountScore, error) {

	return GetAccountScoresByTier(orgId, tier)
}

func (as *AccountService) GetScoreSnapshots(orgId, accountId string, sinceDays int) ([]model.ScoreSnapshot, error) {

	return GetScoreSnapshots(orgId, accountId, sinceDays)
}

func (as *AccountService) RecomputeAccountScore(orgId, accountId string) (*scoringmodel.ScoreResult, error) {

	return RecomputeAccountScore(orgId, accountId)
}
