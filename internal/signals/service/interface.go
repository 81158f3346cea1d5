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
	"github.com/signalfoundry/account-intelligence-service/internal/signals/model"
)

// SignalServiceInterface defines the service interface.
type SignalServiceInterface interface {
	IngestSignal(orgId string, request model.SignalRequest) (*model.Signal, bool, error)
	GetSignal(orgId, signalId string) (*model.Signal, error)
	GetSignalsByAccount(orgId, accountId string) ([]model.Signal, error)
}

// SignalService is the default implementation.
type SignalService struct{}

// GetSignalService returns the signal service instance.
func GetSignalService() SignalServiceInterface {

	return &SignalService{}
}

func (ss *SignalService) IngestSignal(orgId string, request model.SignalRequest) (*model.Signal, bool, error) {

	return IngestSignal(orgId, request)
}

func (ss *SignalService) GetSignal(orgId, signalId string) (*model.Signal, error) {

	return GetSignal(orgId, signalId)
}

func (ss *SignalService) GetSignalsByAccount(orgId, accountId string) ([]model.Signal, error) {

	return GetSignalsByAccount(orgId, accountId)
}
