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

package scripts

// Signal queries.

var InsertSignal = map[string]string{
	"postgres": `
		INSERT INTO signals (
		signal_id, org_id, idempotency_key, source, signal_type, actor_email, actor_external_id,
		actor_profile_url, actor_name, anonymous_id, contact_id, account_id, account_hint, properties, occurred_at, received_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	ON CONFLICT (org_id, idempotency_key) DO NOTHING
	RETURNING signal_id;`,
}

var GetSignalByIdempotencyKey = map[string]string{
	"postgres": `SELECT signal_id, org_id, idempotency_key, source, signal_type, actor_email, actor_external_id,
       actor_profile_url, actor_name, anonymous_id, contact_id, account_id, account_hint, properties::text, occurred_at, received_at
       FROM signals WHERE org_id = $1 AND idempotency_key = $2`,
}

var GetSignalById = map[string]string{
	"postgres": `SELECT signal_id, org_id, idempotency_key, source, signal_type, actor_email, actor_external_id,
       actor_profile_url, actor_name, anonymous_id, contact_id, account_id, account_hint, properties::text, occurred_at, received_at
       FROM signals WHERE org_id = $1 AND signal_id = $2`,
}

var GetSignalsByAccount = map[string]string{
	"postgres": `SELECT signal_id, org_id, idempotency_key, source, signal_type, actor_email, actor_external_id,
       actor_profile_url, actor_name, anonymous_id, contact_id, account_id, account_hint, properties::text, occurred_at, received_at
       FROM signals WHERE org_id = $1 AND account_id = $2 ORDER BY occurred_at DESC`,
}

var GetSignalsByAccountSince = map[string]string{
	"postgres": `SELECT signal_id, org_id, idempotency_key, source, signal_type, actor_email, actor_external_id,
       actor_profile_url, actor_name, anonymous_id, contact_id, account_id, account_hint, properties::text, occurred_at, received_at
       FROM signals WHERE org_id = $1 AND account_id = $2 AND occurred_at >= $3 ORDER BY occurred_at DESC`,
}

var CountSignalsByAccountSince = map[string]string{
	"postgres": `SELECT COUNT(*) AS signal_count FROM signals WHERE org_id = $1 AND account_id = $2 AND occurred_at >= $3`,
}

var GetLatestSignalTimeByAccount = map[string]string{
	"postgres": `SELECT MAX(occurred_at) AS last_signal_at FROM signals WHERE org_id = $1 AND account_id = $2`,
}

// Identity queries.

var GetIdentityByTypeAndValue = map[string]string{
	"postgres": `SELECT identity_id, org_id, identity_type, identity_value, contact_id, confidence, verified,
       created_at, updated_at FROM identities WHERE identity_type = $1 AND identity_value = $2`,
}

var GetIdentitiesByContact = map[string]string{
	"postgres": `SELECT identity_id, org_id, identity_type, identity_value, contact_id, confidence, verified,
       created_at, updated_at FROM identities WHERE org_id = $1 AND contact_id = $2`,
}

var UpsertIdentity = map[string]string{
	"postgres": `
		INSERT INTO identities (
		identity_id, org_id, identity_type, identity_value, contact_id, confidence, verified, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (identity_type, identity_value) DO UPDATE SET
		confidence = GREATEST(identities.confidence, EXCLUDED.confidence),
		verified = identities.verified OR EXCLUDED.verified,
		updated_at = EXCLUDED.updated_at
	RETURNING identity_id, org_id, contact_id, confidence, verified;`,
}

// Contact queries.

var InsertContact = map[string]string{
	"postgres": `INSERT INTO contacts (contact_id, org_id, email, name, account_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
}

var GetContactById = map[string]string{
	"postgres": `SELECT contact_id, org_id, email, name, account_id, created_at, updated_at
       FROM contacts WHERE org_id = $1 AND contact_id = $2`,
}

var GetContactsByName = map[string]string{
	"postgres": `SELECT contact_id, org_id, email, name, account_id, created_at, updated_at
       FROM contacts WHERE org_id = $1 AND LOWER(name) = LOWER($2)`,
}

var UpdateContactAccount = map[string]string{
	"postgres": `UPDATE contacts SET account_id = $1, updated_at = $2 WHERE org_id = $3 AND contact_id = $4`,
}

// Account queries.

var InsertAccount = map[string]string{
	"postgres": `INSERT INTO accounts (account_id, org_id, account_name, domain, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (org_id, domain) DO NOTHING`,
}

var GetAccountById = map[string]string{
	"postgres": `SELECT account_id, org_id, account_name, domain, created_at, updated_at
       FROM accounts WHERE org_id = $1 AND account_id = $2`,
}

var GetAccountByDomain = map[string]string{
	"postgres": `SELECT account_id, org_id, account_name, domain, created_at, updated_at
       FROM accounts WHERE org_id = $1 AND domain = $2`,
}

var GetAccountsByOrg = map[string]string{
	"postgres": `SELECT account_id, org_id, account_name, domain, created_at, updated_at
       FROM accounts WHERE org_id = $1 ORDER BY created_at DESC`,
}

var GetAccountIdsByOrg = map[string]string{
	"postgres": `SELECT account_id FROM accounts WHERE org_id = $1`,
}

var GetOrgIds = map[string]string{
	"postgres": `SELECT DISTINCT org_id FROM accounts`,
}

// Account score queries.

var UpsertAccountScore = map[string]string{
	"postgres": `
		INSERT INTO account_scores (account_id, org_id, score, tier, trend, signal_count, distinct_users, last_signal_at, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (account_id) DO UPDATE SET
		score = EXCLUDED.score,
		tier = EXCLUDED.tier,
		trend = EXCLUDED.trend,
		signal_count = EXCLUDED.signal_count,
		distinct_users = EXCLUDED.distinct_users,
		last_signal_at = EXCLUDED.last_signal_at,
		computed_at = EXCLUDED.computed_at`,
}

var GetAccountScore = map[string]string{
	"postgres": `SELECT account_id, org_id, score, tier, trend, signal_count, distinct_users, last_signal_at, computed_at
       FROM account_scores WHERE org_id = $1 AND account_id = $2`,
}

var GetAccountScoresByOrg = map[string]string{
	"postgres": `SELECT account_id, org_id, score, tier, trend, signal_count, distinct_users, last_signal_at, computed_at
       FROM account_scores WHERE org_id = $1 ORDER BY score DESC`,
}

var GetAccountScoresByTier = map[string]string{
	"postgres": `SELECT account_id, org_id, score, tier, trend, signal_count, distinct_users, last_signal_at, computed_at
       FROM account_scores WHERE org_id = $1 AND tier = $2 ORDER BY score DESC`,
}

// Score snapshot queries.

var InsertScoreSnapshot = map[string]string{
	"postgres": `INSERT INTO score_snapshots (snapshot_id, org_id, account_id, score, tier, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
}

var GetLatestScoreSnapshot = map[string]string{
	"postgres": `SELECT snapshot_id, org_id, account_id, score, tier, recorded_at
       FROM score_snapshots WHERE org_id = $1 AND account_id = $2 ORDER BY recorded_at DESC LIMIT 1`,
}

var GetScoreSnapshotsSince = map[string]string{
	"postgres": `SELECT snapshot_id, org_id, account_id, score, tier, recorded_at
       FROM score_snapshots WHERE org_id = $1 AND account_id = $2 AND recorded_at >= $3 ORDER BY recorded_at ASC`,
}

var GetOldestScoreSnapshotSince = map[string]string{
	"postgres": `SELECT snapshot_id, org_id, account_id, score, tier, recorded_at
       FROM score_snapshots WHERE org_id = $1 AND account_id = $2 AND recorded_at >= $3 ORDER BY recorded_at ASC LIMIT 1`,
}

// Scoring rule queries.

var InsertScoringRule = map[string]string{
	"postgres": `INSERT INTO scoring_rules (rule_id, org_id, rule_name, signal_type, source, weight, decay_window,
		conditions, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
}

var GetScoringRules = map[string]string{
	"postgres": `SELECT rule_id, org_id, rule_name, signal_type, source, weight, decay_window, conditions::text,
       is_active, created_at, updated_at FROM scoring_rules WHERE org_id = $1`,
}

var GetActiveScoringRules = map[string]string{
	"postgres": `SELECT rule_id, org_id, rule_name, signal_type, source, weight, decay_window, conditions::text,
       is_active, created_at, updated_at FROM scoring_rules WHERE org_id = $1 AND is_active = true`,
}

var GetScoringRule = map[string]string{
	"postgres": `SELECT rule_id, org_id, rule_name, signal_type, source, weight, decay_window, conditions::text,
       is_active, created_at, updated_at FROM scoring_rules WHERE org_id = $1 AND rule_id = $2`,
}

var UpdateScoringRule = map[string]string{
	"postgres": `
		UPDATE scoring_rules
		SET rule_name = $1,
			signal_type = $2,
			source = $3,
			weight = $4,
			decay_window = $5,
			conditions = $6,
			is_active = $7,
			updated_at = $8
		WHERE org_id = $9 AND rule_id = $10
	`,
}

var DeleteScoringRule = map[string]string{
	"postgres": `DELETE FROM scoring_rules WHERE org_id = $1 AND rule_id = $2`,
}

// Alert rule queries.

var InsertAlertRule = map[string]string{
	"postgres": `INSERT INTO alert_rules (rule_id, org_id, rule_name, trigger_type, params, channels, is_active,
		created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
}

var GetAlertRules = map[string]string{
	"postgres": `SELECT rule_id, org_id, rule_name, trigger_type, params::text, channels::text, is_active,
       created_at, updated_at FROM alert_rules WHERE org_id = $1`,
}

var GetActiveAlertRules = map[string]string{
	"postgres": `SELECT rule_id, org_id, rule_name, trigger_type, params::text, channels::text, is_active,
       created_at, updated_at FROM alert_rules WHERE org_id = $1 AND is_active = true`,
}

var GetAlertRule = map[string]string{
	"postgres": `SELECT rule_id, org_id, rule_name, trigger_type, params::text, channels::text, is_active,
       created_at, updated_at FROM alert_rules WHERE org_id = $1 AND rule_id = $2`,
}

var UpdateAlertRule = map[string]string{
	"postgres": `
		UPDATE alert_rules
		SET rule_name = $1,
			trigger_type = $2,
			params = $3,
			channels = $4,
			is_active = $5,
			updated_at = $6
		WHERE org_id = $7 AND rule_id = $8
	`,
}

var DeleteAlertRule = map[string]string{
	"postgres": `DELETE FROM alert_rules WHERE org_id = $1 AND rule_id = $2`,
}

var GetAlertRuleLastTriggered = map[string]string{
	"postgres": `SELECT last_triggered_at FROM alert_rule_triggers WHERE rule_id = $1 AND account_id = $2`,
}

var StampAlertRuleTriggered = map[string]string{
	"postgres": `
		INSERT INTO alert_rule_triggers (rule_id, account_id, last_triggered_at)
		VALUES ($1, $2, $3)
	ON CONFLICT (rule_id, account_id) DO UPDATE SET last_triggered_at = EXCLUDED.last_triggered_at`,
}

var DeleteAlertRuleTriggers = map[string]string{
	"postgres": `DELETE FROM alert_rule_triggers WHERE rule_id = $1`,
}

// Org config queries.

var GetOrgConfig = map[string]string{
	"postgres": `SELECT org_id, hot_threshold, warm_threshold, cold_threshold, slack_webhook_url,
       inapp_enabled, email_enabled, slack_enabled, updated_at FROM org_configs WHERE org_id = $1`,
}

var UpsertOrgConfig = map[string]string{
	"postgres": `
		INSERT INTO org_configs (org_id, hot_threshold, warm_threshold, cold_threshold, slack_webhook_url,
		inapp_enabled, email_enabled, slack_enabled, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (org_id) DO UPDATE SET
		hot_threshold = EXCLUDED.hot_threshold,
		warm_threshold = EXCLUDED.warm_threshold,
		cold_threshold = EXCLUDED.cold_threshold,
		slack_webhook_url = EXCLUDED.slack_webhook_url,
		inapp_enabled = EXCLUDED.inapp_enabled,
		email_enabled = EXCLUDED.email_enabled,
		slack_enabled = EXCLUDED.slack_enabled,
		updated_at = EXCLUDED.updated_at`,
}

// Org member queries.

var GetOrgMembers = map[string]string{
	"postgres": `SELECT member_id, org_id, email, member_name, member_role FROM org_members WHERE org_id = $1`,
}
