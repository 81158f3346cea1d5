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
	"strings"

	"github.com/signalfoundry/account-intelligence-service/internal/signals/model"
	"github.com/signalfoundry/account-intelligence-service/internal/signals/provider"
	aiscontext "github.com/signalfoundry/account-intelligence-service/internal/system/context"
	errors2 "github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/security"
	"github.com/signalfoundry/account-intelligence-service/internal/system/utils"
)

type SignalHandler struct{}

func NewSignalHandler() *SignalHandler {

	return &SignalHandler{}
}

// AddSignal handles signal intake. Replays of an already-ingested idempotency
// key return the stored signal with a 200 instead of a 201.
func (sh *SignalHandler) AddSignal(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "signals:create"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.SignalRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		clientError := errors2.NewClientErrorWithTraceID(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "signal"),
		}, http.StatusBadRequest, aiscontext.GetTraceID(r.Context()))
		utils.WriteErrorResponse(w, clientError)
		return
	}

	orgId := utils.ExtractOrgIdFromPath(r)
	signalService := provider.NewSignalProvider().GetSignalService()
	signal, created, err := signalService.IngestSignal(orgId, request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(signal)
}

// GetSignal fetches a single signal by id.
func (sh *SignalHandler) GetSignal(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "signals:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	signalId := strings.TrimPrefix(strings.TrimSuffix(r.URL.Path, "/"), "/signals/")
	orgId := utils.ExtractOrgIdFromPath(r)
	signalService := provider.NewSignalProvider().GetSignalService()
	signal, err := signalService.GetSignal(orgId, signalId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(signal)
}

// GetSignals fetches the signals attributed to an account.
func (sh *SignalHandler) GetSignals(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "signals:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	accountId := r.URL.Query().Get("account_id")
	if accountId == "" {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "Missing account_id parameter.",
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	orgId := utils.ExtractOrgIdFromPath(r)
	signalService := provider.NewSignalProvider().GetSignalService()
	signals, err := signalService.GetSignalsByAccount(orgId, accountId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(signals)
}
