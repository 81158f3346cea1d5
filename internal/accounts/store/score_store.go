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

// UpsertAccountScore replaces the current score row for an account.
func UpsertAccountScore(score model.AccountScore) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for updating score of account: %s", score.AccountId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	defer dbClient.Close()

	query := scripts.UpsertAccountScore[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, score.AccountId, score.OrgId, score.Score, score.Tier, score.Trend,
		score.SignalCount, score.DistinctUsers, score.LastSignalAt, score.ComputedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while updating score of account: %s", score.AccountId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_ACCOUNT_SCORE.Code,
			Message:     errors2.UPDATE_ACCOUNT_SCORE.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	return nil
}

// GetAccountScore fetches the current score for an account, nil when never scored.
func GetAccountScore(orgId, accountId string) (*model.AccountScore, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching score of account: %s", accountId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	defer dbClient.Close()

	query := scripts.GetAccountScore[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, orgId, accountId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching score of account: %s", accountId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_ACCOUNT_SCORE.Code,
			Message:     errors2.UPDATE_ACCOUNT_SCORE.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	if len(results) == 0 {
		return nil, nil
	}

	score := accountScoreFromRow(results[0])
	return &score, nil
}

// GetAccountScoresByOrg fetches current scores for an organization, highest first.
func GetAccountScoresByOrg(orgId string) ([]model.AccountScore, error) {

	return getAccountScores(scripts.GetAccountScoresByOrg[provider.NewDBProvider().GetDBType()], orgId)
}

// GetAccountScoresByTier fetches current scores for an organization filtered by tier.
func GetAccountScoresByTier(orgId, tier string) ([]model.AccountScore, error) {

	return getAccountScores(scripts.GetAccountScoresByTier[provider.NewDBProvider().GetDBType()], orgId, tier)
}

func getAccountScores(query string, args ...interface{}) ([]model.AccountScore, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for fetching account scores"
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
		errorMsg := "Failed in fetching account scores"
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_ACCOUNT_SCORE.Code,
			Message:     errors2.UPDATE_ACCOUNT_SCORE.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}

	var scores []model.AccountScore
	for _, row := range results {
		scores = append(scores, accountScoreFromRow(row))
	}
	return scores, nil
}

// AddScoreSnapshot appends a snapshot row. Snapshots are never updated or deleted.
func AddScoreSnapshot(snapshot model.ScoreSnapshot) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for adding snapshot for account: %s", snapshot.AccountId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	defer dbClient.Close()

	query := scripts.InsertScoreSnapshot[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, snapshot.SnapshotId, snapshot.OrgId, snapshot.AccountId,
		snapshot.Score, snapshot.Tier, snapshot.RecordedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding snapshot for account: %s", snapshot.AccountId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_SCORE_SNAPSHOT.Code,
			Message:     errors2.ADD_SCORE_SNAPSHOT.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	return nil
}

// GetLatestScoreSnapshot fetches the most recent snapshot for an account, nil when none exist.
func GetLatestScoreSnapshot(orgId, accountId string) (*model.ScoreSnapshot, error) {

	snapshots, err := getScoreSnapshots(scripts.GetLatestScoreSnapshot[provider.NewDBProvider().GetDBType()], orgId, accountId)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, nil
	}
	return &snapshots[0], nil
}

// GetScoreSnapshotsSince fetches snapshots recorded at or after the given time, oldest first.
func GetScoreSnapshotsSince(orgId, accountId string, since time.Time) ([]model.ScoreSnapshot, error) {

	return getScoreSnapshots(scripts.GetScoreSnapshotsSince[provider.NewDBProvider().GetDBType()], orgId, accountId, since)
}

// GetOldestScoreSnapshotSince fetches the oldest snapshot within a lookback window, nil when none exist.
func GetOldestScoreSnapshotSince(orgId, accountId string, since time.Time) (*model.ScoreSnapshot, error) {

	snapshots, err := getScoreSnapshots(scripts.GetOldestScoreSnapshotSince[provider.NewDBProvider().GetDBType()], orgId, accountId, since)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, nil
	}
	return &snapshots[0], nil
}

func getScoreSnapshots(query string, args ...interface{}) ([]model.ScoreSnapshot, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for fetching score snapshots"
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
		errorMsg := "Failed in fetching score snapshots"
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_SCORE_SNAPSHOT.Code,
			Message:     errors2.GET_SCORE_SNAPSHOT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}

	var snapshots []model.ScoreSnapshot
	for _, row := range results {
		var snapshot model.ScoreSnapshot
		snapshot.SnapshotId = row["snapshot_id"].(string)
		snapshot.OrgId = row["org_id"].(string)
		snapshot.AccountId = row["account_id"].(string)
		snapshot.Score = row["score"].(float64)
		snapshot.Tier = row["tier"].(string)
		snapshot.RecordedAt = row["recorded_at"].(time.Time)
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

func accountScoreFromRow(row map[string]interface{}) model.AccountScore {

	var score model.AccountScore
	score.AccountId = row["account_id"].(string)
	score.OrgId = row["org_id"].(string)
	score.Score = row["score"].(float64)
	score.Tier = row["tier"].(string)
	score.Trend = row["trend"].(string)
	score.SignalCount = int(row["signal_count"].(int64))
	score.DistinctUsers = int(row["distinct_users"].(int64))
	if lastSignalAt, ok := row["last_signal_at"].(time.Time); ok {
		score.LastSignalAt = &lastSignalAt
	}
	score.ComputedAt = row["computed_at"].(time.Time)
	return score
}
