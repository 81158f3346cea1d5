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
	"sync"

	"github.com/signalfoundry/account-intelligence-service/internal/notifications/store"
)

var (
	instance *NotificationService
	mu       sync.RWMutex
)

// InitNotificationService wires the shared notification service against the
// given feed repository. Called once at startup.
func InitNotificationService(repository *store.NotificationRepository) *NotificationService {

	mu.Lock()
	defer mu.Unlock()
	instance = NewNotificationService(repository)
	return instance
}

// OverrideNotificationService swaps the shared instance. Intended for tests.
func OverrideNotificationService(service *NotificationService) {

	mu.Lock()
	defer mu.Unlock()
	instance = service
}

// GetNotificationService returns the shared notification service, nil before
// initialization.
func GetNotificationService() *NotificationService {

	mu.RLock()
	defer mu.RUnlock()
	return instance
}
