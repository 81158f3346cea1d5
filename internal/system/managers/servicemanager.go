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

package managers

import (
	"net/http"
	"strings"

	healthhandler "github.com/signalfoundry/account-intelligence-service/internal/health_check/handler"
	"github.com/signalfoundry/account-intelligence-service/internal/system/constants"
	"github.com/signalfoundry/account-intelligence-service/internal/system/services"
	"github.com/signalfoundry/account-intelligence-service/internal/system/utils"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

type ServiceManager struct {
	mux *http.ServeMux
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux) ServiceManagerInterface {

	return &ServiceManager{
		mux: mux,
	}
}

func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	utils.RewriteToDefaultOrg(apiBasePath, sm.mux, "default")

	healthHandler := healthhandler.NewHealthHandler()
	sm.mux.HandleFunc("/health", healthHandler.HandleHealth)
	sm.mux.HandleFunc("/ready", healthHandler.HandleReadiness)

	signalService := services.NewSignalIntakeService()
	scoringRulesService := services.NewScoringRulesService()
	alertRulesService := services.NewAlertRulesService()
	accountsService := services.NewAccountsService()
	orgConfigService := services.NewOrgConfigHTTPService()
	notificationsService := services.NewNotificationFeedService()

	// Single organization dispatcher for all services.
	utils.MountOrgDispatcher(sm.mux, apiBasePath, func(w http.ResponseWriter, r *http.Request) {
		// Internal path after organization and base path stripping.
		path := strings.TrimSuffix(r.URL.Path, "/")

		switch {
		case strings.HasPrefix(path, constants.SignalsApiPath):
			signalService.Route(w, r)
		case strings.HasPrefix(path, constants.ScoringRulesApiPath):
			scoringRulesService.Route(w, r)
		case strings.HasPrefix(path, constants.AlertRulesApiPath):
			alertRulesService.Route(w, r)
		case strings.HasPrefix(path, constants.AccountsApiPath):
			accountsService.Route(w, r)
		case strings.HasPrefix(path, constants.OrgConfigApiPath):
			orgConfigService.Route(w, r)
		case strings.HasPrefix(path, constants.NotificationsApiPath):
			notificationsService.Route(w, r)
		default:
			http.NotFound(w, r)
		}
	})
	return nil
}
