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

package store

import (
	"fmt"
	"time"

	"github.com/signalfoundry/account-intelligence-service/internal/accounts/model"
	"github.com/signalfoundry/account-intelligence-service/internal/system/database/provider"
	"github.com/signalfoundry/account-intelligence-service/internal/system/database/scripts"
	errors2 "github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
)

// AddAccount inserts a new account. Duplicate (org, domain) pairs are ignored.
func AddAccount(account model.Account) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for adding account: %s", account.AccountId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	defer dbClient.Close()

	query := scripts.InsertAccount[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, account.AccountId, account.OrgId, account.AccountName,
		account.Domain, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding account: %s", account.AccountId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.EXECUTE_QUERY.Code,
			Message:     errors2.EXECUTE_QUERY.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	logger.Info(fmt.Sprintf("Account: %s added successfully", account.AccountId))
	return nil
}

// GetAccountById fetches an account by id.
func GetAccountById(orgId, accountId string) (*model.Account, error) {

	return getAccount(scripts.GetAccountById[provider.NewDBProvider().GetDBType()], orgId, accountId)
}

// GetAccountByDomain fetches an account by its org-scoped domain.
func GetAccountByDomain(orgId, domain string) (*model.Account, error) {

	return getAccount(scripts.GetAccountByDomain[provider.NewDBProvider().GetDBType()], orgId, domain)
}

func getAccount(query string, args ...interface{}) (*model.Account, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for fetching account"
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(query, args...)
	if err != nil {
		errorMsg := "Failed in fetching account"
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ACCOUNT.Code,
			Message:     errors2.GET_ACCOUNT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	if len(results) == 0 {
		return nil, nil
	}

	account := accountFromRow(results[0])
	return &account, nil
}

// GetAccountsByOrg fetches all accounts for an organization.
func GetAccountsByOrg(orgId string) ([]model.Account, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching accounts for organization: %s", orgId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	defer dbClient.Close()

	query := scripts.GetAccountsByOrg[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, orgId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching accounts for organization: %s", orgId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ACCOUNT.Code,
			Message:     errors2.GET_ACCOUNT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}

	var accounts []model.Account
	for _, row := range results {
		accounts = append(accounts, accountFromRow(row))
	}
	return accounts, nil
}

// GetAccountIdsByOrg fetches all account ids for an organization.
func GetAccountIdsByOrg(orgId string) ([]string, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching account ids for organization: %s", orgId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	defer dbClient.Close()

	query := scripts.GetAccountIdsByOrg[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, orgId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching account ids for organization: %s", orgId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ACCOUNT.Code,
			Message:     errors2.GET_ACCOUNT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}

	var accountIds []string
	for _, row := range results {
		accountIds = append(accountIds, row["account_id"].(string))
	}
	return accountIds, nil
}

// GetOrgIds fetches the distinct organization ids that own accounts.
func GetOrgIds() ([]string, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for fetching organization ids"
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	defer dbClient.Close()

	query := scripts.GetOrgIds[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query)
	if err != nil {
		errorMsg := "Failed in fetching organization ids"
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_ACCOUNT.Code,
			Message:     errors2.GET_ACCOUNT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}

	var orgIds []string
	for _, row := range results {
		orgIds = append(orgIds, row["org_id"].(string))
	}
	return orgIds, nil
}

func accountFromRow(row map[string]interface{}) model.Account {

	var account model.Account
	account.AccountId = row["account_id"].(string)
	account.OrgId = row["org_id"].(string)
	account.AccountName = row["account_name"].(string)
	account.Domain = row["domain"].(string)
	account.CreatedAt = row["created_at"].(time.Time)
	account.UpdatedAt = row["updated_at"].(time.Time)
	return account
}
