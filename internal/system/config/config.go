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

package config

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

type AuthConfig struct {
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type AuthServerConfig struct {
	IntrospectionEndPoint string `yaml:"introspectionEndpoint"`
	TokenEndpoint         string `yaml:"tokenEndpoint"`
	RevocationEndpoint    string `yaml:"revocationEndpoint"`
	ClientID              string `yaml:"client_id"`
	ClientSecret          string `yaml:"client_secret"`
	AdminUsername         string `yaml:"admin_username"`
	AdminPassword         string `yaml:"admin_password"`

	RequiredScopes map[string][]string `yaml:"required_scopes"`
}

type DataSourceConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type SMTPConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	FromAddress string `yaml:"from_address"`
}

type SlackConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

type NotificationsConfig struct {
	SMTP  SMTPConfig  `yaml:"smtp"`
	Slack SlackConfig `yaml:"slack"`
}

type ScoringConfig struct {
	MaxScore             float64 `yaml:"max_score"`
	TrendEpsilon         float64 `yaml:"trend_epsilon"`
	DefaultHotThreshold  float64 `yaml:"default_hot_threshold"`
	DefaultWarmThreshold float64 `yaml:"default_warm_threshold"`
	DefaultColdThreshold float64 `yaml:"default_cold_threshold"`
	RescoreIntervalMins  int     `yaml:"rescore_interval_mins"`
	QueueSize            int     `yaml:"queue_size"`
}

type AlertingConfig struct {
	CooldownMins      int `yaml:"cooldown_mins"`
	SweepIntervalMins int `yaml:"sweep_interval_mins"`
}

type Config struct {
	Addr          AddrConfig          `yaml:"addr"`
	Log           LogConfig           `yaml:"log"`
	Auth          AuthConfig          `yaml:"auth"`
	AuthServer    AuthServerConfig    `yaml:"auth_server"`
	DataSource    DataSourceConfig    `yaml:"datasource"`
	Mongo         MongoConfig         `yaml:"mongo"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Scoring       ScoringConfig       `yaml:"scoring"`
	Alerting      AlertingConfig      `yaml:"alerting"`
}
