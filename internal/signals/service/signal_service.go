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
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	identityservice "github.com/signalfoundry/account-intelligence-service/internal/identity/service"
	"github.com/signalfoundry/account-intelligence-service/internal/signals/model"
	"github.com/signalfoundry/account-intelligence-service/internal/signals/store"
	"github.com/signalfoundry/account-intelligence-service/internal/system/constants"
	errors2 "github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
)

// RecomputeEnqueuer accepts rescore requests for accounts whose signal set
// changed. Enqueue reports false when the request was dropped.
type RecomputeEnqueuer interface {
	Enqueue(orgId, accountId string) bool
}

var recomputeQueue RecomputeEnqueuer

var resolver = identityservice.NewResolver()

// SetRecomputeQueue wires the queue that receives rescore requests after
// ingestion. Signals ingested before a queue is set skip the rescore.
func SetRecomputeQueue(queue RecomputeEnqueuer) {

	recomputeQueue = queue
}

// SetResolver overrides the identity resolver. Intended for tests.
func SetResolver(r *identityservice.Resolver) {

	resolver = r
}

// IngestSignal validates, deduplicates, resolves, and persists an incoming
// signal. The returned flag reports whether a new signal was created; a replay
// of an already-ingested idempotency key returns the stored signal unchanged.
func IngestSignal(orgId string, request model.SignalRequest) (*model.Signal, bool, error) {

	logger := log.GetLogger()
	if err := validateSignalRequest(request); err != nil {
		return nil, false, err
	}

	now := time.Now().UTC()
	occurredAt := request.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}

	idempotencyKey := request.IdempotencyKey
	if idempotencyKey == "" {
		idempotencyKey = deriveIdempotencyKey(orgId, request, occurredAt)
	}

	existing, err := store.GetSignalByIdempotencyKey(orgId, idempotencyKey)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		logger.Debug(fmt.Sprintf("Replayed signal with idempotency key: %s", idempotencyKey))
		return existing, false, nil
	}

	resolution, err := resolver.Resolve(orgId, request.Source, request.Actor)
	if err != nil {
		return nil, false, err
	}

	signal := model.Signal{
		SignalId:       uuid.New().String(),
		OrgId:          orgId,
		IdempotencyKey: idempotencyKey,
		Source:         request.Source,
		SignalType:     request.SignalType,
		Actor:          request.Actor,
		AnonymousId:    resolution.AnonymousId,
		ContactId:      resolution.ContactId,
		AccountId:      resolution.AccountId,
		AccountHint:    request.AccountHint,
		Properties:     request.Properties,
		OccurredAt:     occurredAt,
		ReceivedAt:     now,
	}
	if signal.AccountId == "" && request.AccountHint != "" {
		// Resolution found no account; honor the producer's attribution.
		signal.AccountId = request.AccountHint
	}

	inserted, err := store.AddSignal(signal)
	if err != nil {
		return nil, false, err
	}
	if !inserted {
		// Lost the race against a concurrent replay of the same key.
		stored, err := store.GetSignalByIdempotencyKey(orgId, idempotencyKey)
		if err != nil {
			return nil, false, err
		}
		return stored, false, nil
	}

	if signal.AccountId != "" {
		publishRecompute(orgId, signal.AccountId)
	}
	return &signal, true, nil
}

// GetSignal returns a stored signal by its id.
func GetSignal(orgId, signalId string) (*model.Signal, error) {

	signal, err := store.GetSignalById(orgId, signalId)
	if err != nil {
		return nil, err
	}
	if signal == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.SIGNAL_NOT_FOUND.Code,
			Message:     errors2.SIGNAL_NOT_FOUND.Message,
			Description: fmt.Sprintf("No signal found with id: %s.", signalId),
		}, http.StatusNotFound)
	}
	return signal, nil
}

// GetSignalsByAccount returns the signals attributed to an account, newest first.
func GetSignalsByAccount(orgId, accountId string) ([]model.Signal, error) {

	return store.GetSignalsByAccount(orgId, accountId)
}

func publishRecompute(orgId, accountId string) {

	logger := log.GetLogger()
	if recomputeQueue == nil {
		logger.Warn("No recompute queue configured; skipping rescore for account: " + accountId)
		return
	}
	if !recomputeQueue.Enqueue(orgId, accountId) {
		errorMsg := fmt.Sprintf("Rescore request dropped for account: %s", accountId)
		logger.Error(errorMsg, log.Error(errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.PUBLISH_EVENT.Code,
			Message:     errors2.PUBLISH_EVENT.Message,
			Description: errorMsg,
		}, nil)))
	}
}

// deriveIdempotencyKey builds a stable key from the signal's identifying
// fields so that producers without their own keys still deduplicate.
func deriveIdempotencyKey(orgId string, request model.SignalRequest, occurredAt time.Time) string {

	seed := strings.Join([]string{
		orgId,
		request.Source,
		request.SignalType,
		strings.ToLower(strings.TrimSpace(request.Actor.Email)),
		request.Actor.ExternalId,
		occurredAt.UTC().Format(time.RFC3339Nano),
	}, "|")
	digest := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(digest[:])
}

func validateSignalRequest(request model.SignalRequest) error {

	if !constants.AllowedSignalSources[request.Source] {
		return invalidSignalError(fmt.Sprintf("Unsupported signal source: %s.", request.Source))
	}
	if request.SignalType == "" {
		return invalidSignalError("Signal type is required.")
	}
	return nil
}

func invalidSignalError(description string) error {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.INVALID_SIGNAL.Code,
		Message:     errors2.INVALID_SIGNAL.Message,
		Description: description,
	}, http.StatusBadRequest)
}
