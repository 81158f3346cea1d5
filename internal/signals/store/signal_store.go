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
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/signalfoundry/account-intelligence-service/internal/signals/model"
	"github.com/signalfoundry/account-intelligence-service/internal/system/database/provider"
	"github.com/signalfoundry/account-intelligence-service/internal/system/database/scripts"
	errors2 "github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
)

// Helper to marshal JSONB fields, handling nil maps
func marshalJsonb(data map[string]interface{}) (sql.NullString, error) {
	if data == nil {
		return sql.NullString{Valid: false}, nil
	}
	bytes, err := json.Marshal(data)
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to marshal signal properties to JSON for storing in database."
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: errorMsg,
		}, err)
		return sql.NullString{}, serverError
	}
	return sql.NullString{String: string(bytes), Valid: true}, nil
}

// AddSignal inserts a signal. Returns false without error when a signal with
// the same idempotency key already exists for the organization.
func AddSignal(signal model.Signal) (bool, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for adding signal with id: %s", signal.SignalId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_SIGNAL.Code,
			Message:     errors2.ADD_SIGNAL.Message,
			Description: errorMsg,
		}, err)
		return false, serverError
	}
	defer dbClient.Close()

	propertiesJson, err := marshalJsonb(signal.Properties)
	if err != nil {
		return false, err
	}

	query := scripts.InsertSignal[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query,
		signal.SignalId, signal.OrgId, signal.IdempotencyKey, signal.Source, signal.SignalType,
		signal.Actor.Email, signal.Actor.ExternalId, signal.Actor.ProfileUrl, signal.Actor.Name,
		signal.AnonymousId, signal.ContactId, signal.AccountId, signal.AccountHint, propertiesJson,
		signal.OccurredAt, signal.ReceivedAt,
	)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in adding signal with id: %s", signal.SignalId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_SIGNAL.Code,
			Message:     errors2.ADD_SIGNAL.Message,
			Description: errorMsg,
		}, err)
		return false, serverError
	}

	// ON CONFLICT DO NOTHING returns no rows for duplicates.
	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("Duplicate signal for idempotency key: %s", signal.IdempotencyKey))
		return false, nil
	}
	logger.Info(fmt.Sprintf("Signal with signal id: %s persisted successfully", signal.SignalId))
	return true, nil
}

// GetSignalByIdempotencyKey fetches a signal by its org-scoped idempotency key.
func GetSignalByIdempotencyKey(orgId, idempotencyKey string) (*model.Signal, error) {

	return getSignal(scripts.GetSignalByIdempotencyKey[provider.NewDBProvider().GetDBType()], orgId, idempotencyKey)
}

// GetSignalById fetches a signal by its id.
func GetSignalById(orgId, signalId string) (*model.Signal, error) {

	return getSignal(scripts.GetSignalById[provider.NewDBProvider().GetDBType()], orgId, signalId)
}

func getSignal(query string, args ...interface{}) (*model.Signal, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for fetching signal"
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
		errorMsg := "Failed in fetching signal"
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_SIGNAL.Code,
			Message:     errors2.GET_SIGNAL.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	if len(results) == 0 {
		return nil, nil
	}

	signal, err := signalFromRow(results[0])
	if err != nil {
		return nil, err
	}
	return signal, nil
}

// GetSignalsByAccount fetches all signals attributed to an account, most recent first.
func GetSignalsByAccount(orgId, accountId string) ([]model.Signal, error) {

	return getSignals(scripts.GetSignalsByAccount[provider.NewDBProvider().GetDBType()], orgId, accountId)
}

// GetSignalsByAccountSince fetches signals attributed to an account that occurred at or after the given time.
func GetSignalsByAccountSince(orgId, accountId string, since time.Time) ([]model.Signal, error) {

	return getSignals(scripts.GetSignalsByAccountSince[provider.NewDBProvider().GetDBType()], orgId, accountId, since)
}

func getSignals(query string, args ...interface{}) ([]model.Signal, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for fetching signals"
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
		errorMsg := "Failed in fetching signals"
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_SIGNAL.Code,
			Message:     errors2.GET_SIGNAL.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}

	var signals []model.Signal
	for _, row := range results {
		signal, err := signalFromRow(row)
		if err != nil {
			return nil, err
		}
		signals = append(signals, *signal)
	}
	return signals, nil
}

// CountSignalsByAccountSince counts signals for an account that occurred at or after the given time.
func CountSignalsByAccountSince(orgId, accountId string, since time.Time) (int, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for counting signals for account: %s", accountId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return 0, serverError
	}
	defer dbClient.Close()

	query := scripts.CountSignalsByAccountSince[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, orgId, accountId, since)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in counting signals for account: %s", accountId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_SIGNAL.Code,
			Message:     errors2.GET_SIGNAL.Message,
			Description: errorMsg,
		}, err)
		return 0, serverError
	}
	if len(results) == 0 || results[0]["signal_count"] == nil {
		return 0, nil
	}
	return int(results[0]["signal_count"].(int64)), nil
}

// GetLatestSignalTime returns the occurred_at of the most recent signal for an account, nil when none exist.
func GetLatestSignalTime(orgId, accountId string) (*time.Time, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching latest signal time for account: %s", accountId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	defer dbClient.Close()

	query := scripts.GetLatestSignalTimeByAccount[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, orgId, accountId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching latest signal time for account: %s", accountId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_SIGNAL.Code,
			Message:     errors2.GET_SIGNAL.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	if len(results) == 0 || results[0]["last_signal_at"] == nil {
		return nil, nil
	}
	lastSignalAt := results[0]["last_signal_at"].(time.Time)
	return &lastSignalAt, nil
}

func signalFromRow(row map[string]interface{}) (*model.Signal, error) {

	var signal model.Signal
	signal.SignalId = row["signal_id"].(string)
	signal.OrgId = row["org_id"].(string)
	signal.IdempotencyKey = row["idempotency_key"].(string)
	signal.Source = row["source"].(string)
	signal.SignalType = row["signal_type"].(string)
	signal.Actor.Email = stringOrEmpty(row["actor_email"])
	signal.Actor.ExternalId = stringOrEmpty(row["actor_external_id"])
	signal.Actor.ProfileUrl = stringOrEmpty(row["actor_profile_url"])
	signal.Actor.Name = stringOrEmpty(row["actor_name"])
	signal.AnonymousId = stringOrEmpty(row["anonymous_id"])
	signal.ContactId = stringOrEmpty(row["contact_id"])
	signal.AccountId = stringOrEmpty(row["account_id"])
	signal.AccountHint = stringOrEmpty(row["account_hint"])
	signal.OccurredAt = row["occurred_at"].(time.Time)
	signal.ReceivedAt = row["received_at"].(time.Time)

	if raw, ok := row["properties"].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &signal.Properties); err != nil {
			errorMsg := fmt.Sprintf("Failed to unmarshal properties for signal: %s", signal.SignalId)
			log.GetLogger().Debug(errorMsg, log.Error(err))
			return nil, errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.UNMARSHAL_JSON.Code,
				Message:     errors2.UNMARSHAL_JSON.Message,
				Description: errorMsg,
			}, err)
		}
	}
	return &signal, nil
}

func stringOrEmpty(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}
