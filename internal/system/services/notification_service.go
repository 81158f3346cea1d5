/*
 * Copyright (c) 2026, Signal Foundry, Inc. (https://www.signalfoundry.io).
 *
 * Signal Foundry, Inc. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package services

import (
	"net/http"
	"strings"

	"github.com/signalfoundry/account-intelligence-service/internal/notifications/handler"
)

type NotificationFeedService struct {
	notificationHandler *handler.NotificationHandler
}

func NewNotificationFeedService() *NotificationFeedService {

	return &NotificationFeedService{
		notificationHandler: handler.NewNotificationHandler(),
	}
}

// Route handles the in-app notification feed endpoints.
func (s *NotificationFeedService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodGet && path == "/notifications":
		s.notificationHandler.GetNotifications(w, r)

	case method == http.MethodPost && strings.HasPrefix(path, "/notifications/") && strings.HasSuffix(path, "/read"):
		s.notificationHandler.MarkRead(w, r)

	default:
		http.NotFound(w, r)
	}
}
