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

package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	alertservice "github.com/signalfoundry/account-intelligence-service/internal/alerts/service"
	notificationservice "github.com/signalfoundry/account-intelligence-service/internal/notifications/service"
	notificationstore "github.com/signalfoundry/account-intelligence-service/internal/notifications/store"
	scoringservice "github.com/signalfoundry/account-intelligence-service/internal/scoring/service"
	signalservice "github.com/signalfoundry/account-intelligence-service/internal/signals/service"
	"github.com/signalfoundry/account-intelligence-service/internal/system/config"
	"github.com/signalfoundry/account-intelligence-service/internal/system/constants"
	dbprovider "github.com/signalfoundry/account-intelligence-service/internal/system/database/provider"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
	"github.com/signalfoundry/account-intelligence-service/internal/system/managers"
	"github.com/signalfoundry/account-intelligence-service/internal/system/schedulers"
	"github.com/signalfoundry/account-intelligence-service/internal/system/workers"
)

const configFile = "repository/conf/deployment.yaml"
const schemaFile = "dbscripts/postgres.sql"

func main() {

	aisHome := getAISHome()

	envFiles, _ := filepath.Glob("config/*.env")
	_ = godotenv.Load(envFiles...)

	aisConfig, err := config.LoadConfig(aisHome, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.InitializeAISRuntime(aisHome, aisConfig); err != nil {
		stdlog.Fatalf("Failed to initialize runtime: %v", err)
	}

	if err := log.Init(aisConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := log.GetLogger()

	initDatabase(aisHome)

	// Notification feed is optional; the service runs without Mongo and
	// delivers to the remaining channels.
	if mongoDatabase, err := notificationstore.ConnectMongo(); err != nil {
		logger.Warn("Notification feed database unavailable", log.Error(err))
	} else {
		repository := notificationstore.NewNotificationRepository(mongoDatabase)
		dispatcher := notificationservice.InitNotificationService(repository)
		alertservice.SetDispatcher(dispatcher)
		scoringservice.SetTierNotifier(dispatcher)
	}

	scoringWorker := workers.NewScoringWorker(aisConfig.Scoring.QueueSize)
	scoringWorker.Start()
	defer scoringWorker.Stop()
	signalservice.SetRecomputeQueue(scoringWorker)

	sweepInterval := time.Duration(aisConfig.Alerting.SweepIntervalMins) * time.Minute
	if sweepInterval <= 0 {
		sweepInterval = 15 * time.Minute
	}
	alertSweep := schedulers.NewScheduler("alert-sweep", sweepInterval, schedulers.AlertSweepTask)
	alertSweep.Start()
	defer alertSweep.Stop()

	rescoreInterval := time.Duration(aisConfig.Scoring.RescoreIntervalMins) * time.Minute
	if rescoreInterval <= 0 {
		rescoreInterval = 6 * time.Hour
	}
	periodicRescore := schedulers.NewScheduler("periodic-rescore", rescoreInterval,
		schedulers.PeriodicRescoreTask(scoringWorker))
	periodicRescore.Start()
	defer periodicRescore.Stop()

	serverAddr := fmt.Sprintf("%s:%d", aisConfig.Addr.Host, aisConfig.Addr.Port)
	mux := enableCORS(initMultiplexer())
	logger.Info("Account intelligence service starting on: " + serverAddr)

	listener, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.Error(err))
	}

	server := &http.Server{Handler: mux}
	if err := server.Serve(listener); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// initDatabase applies the schema and verifies connectivity.
func initDatabase(aisHome string) {

	logger := log.GetLogger()
	dbClient, err := dbprovider.NewDBProvider().GetDBClient()
	if err != nil {
		logger.Fatal("Failed to connect to the database", log.Error(err))
	}
	defer dbClient.Close()

	if err := dbClient.InitDatabase(aisHome, schemaFile); err != nil {
		logger.Fatal("Failed to initialize the database schema", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)
	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Fatal("Failed to register the services", log.Error(err))
	}
	return mux
}

func enableCORS(next http.Handler) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getAISHome() string {

	projectHomeFlag := flag.String("aisHome", "", "Path to the service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		return *projectHomeFlag
	}
	dir, err := os.Getwd()
	if err != nil {
		stdlog.Fatalf("Failed to get current working directory: %v", err)
	}
	return dir
}
