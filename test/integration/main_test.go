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

package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/signalfoundry/account-intelligence-service/internal/system/config"
	"github.com/signalfoundry/account-intelligence-service/internal/system/database/provider"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
	"github.com/signalfoundry/account-intelligence-service/test/setup"
)

// testDB gives tests direct SQL access for fixtures the service surface does
// not expose, such as rewinding trigger stamps.
var testDB *sql.DB

func TestMain(m *testing.M) {
	ctx := context.Background()
	os.Setenv("TEST_MODE", "true")

	conf := config.Config{
		Log: config.LogConfig{
			LogLevel: "ERROR",
		},
		Scoring: config.ScoringConfig{
			MaxScore:             100,
			TrendEpsilon:         2.5,
			DefaultHotThreshold:  70,
			DefaultWarmThreshold: 40,
			DefaultColdThreshold: 15,
			QueueSize:            100,
		},
		Alerting: config.AlertingConfig{
			CooldownMins: 60,
		},
	}
	config.OverrideAISRuntime(conf)
	_ = log.Init("ERROR")

	pg, err := setup.SetupTestPostgres(ctx)
	if err != nil {
		fmt.Println("Failed to start test DB:", err)
		os.Exit(1)
	}

	provider.SetTestDB(pg.DB)
	testDB = pg.DB
	if err := setup.ApplySchemaFromFile(pg.DB, "../../dbscripts/postgres.sql"); err != nil {
		fmt.Println("Failed to create tables from schema:", err)
		os.Exit(1)
	}

	code := m.Run()

	_ = pg.Container.Terminate(ctx)

	os.Exit(code)
}
