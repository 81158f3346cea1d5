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

package store

import (
	"fmt"
	"time"

	"github.com/signalfoundry/account-intelligence-service/internal/identity/model"
	"github.com/signalfoundry/account-intelligence-service/internal/system/database/provider"
	"github.com/signalfoundry/account-intelligence-service/internal/system/database/scripts"
	errors2 "github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
)

// GetIdentityByTypeAndValue fetches an identity by its globally unique (type, value) pair.
func GetIdentityByTypeAndValue(identityType, identityValue string) (*model.Identity, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching identity of type: %s", identityType)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	defer dbClient.Close()

	query := scripts.GetIdentityByTypeAndValue[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, identityType, identityValue)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching identity of type: %s", identityType)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_IDENTITY.Code,
			Message:     errors2.GET_IDENTITY.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	if len(results) == 0 {
		return nil, nil
	}

	identity := identityFromRow(results[0])
	return &identity, nil
}

// GetIdentitiesByContact fetches all identities linked to a contact.
func GetIdentitiesByContact(orgId, contactId string) ([]model.Identity, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching identities of contact: %s", contactId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	defer dbClient.Close()

	query := scripts.GetIdentitiesByContact[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, orgId, contactId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching identities of contact: %s", contactId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_IDENTITY.Code,
			Message:     errors2.GET_IDENTITY.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}

	var identities []model.Identity
	for _, row := range results {
		identities = append(identities, identityFromRow(row))
	}
	return identities, nil
}

// UpsertIdentity inserts an identity or, when the (type, value) pair already
// exists, raises its confidence and verified flag. Confidence never goes down.
// Returns the stored identity.
func UpsertIdentity(identity model.Identity) (*model.Identity, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for upserting identity of type: %s", identity.IdentityType)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	defer dbClient.Close()

	query := scripts.UpsertIdentity[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query,
		identity.IdentityId, identity.OrgId, identity.IdentityType, identity.IdentityValue,
		identity.ContactId, identity.Confidence, identity.Verified, identity.CreatedAt, identity.UpdatedAt,
	)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in upserting identity of type: %s", identity.IdentityType)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPSERT_IDENTITY.Code,
			Message:     errors2.UPSERT_IDENTITY.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	if len(results) == 0 {
		errorMsg := "Identity upsert returned no row"
		logger.Debug(errorMsg)
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPSERT_IDENTITY.Code,
			Message:     errors2.UPSERT_IDENTITY.Message,
			Description: errorMsg,
		}, nil)
	}

	row := results[0]
	stored := identity
	stored.IdentityId = row["identity_id"].(string)
	stored.OrgId = row["org_id"].(string)
	stored.ContactId = row["contact_id"].(string)
	stored.Confidence = row["confidence"].(float64)
	stored.Verified = row["verified"].(bool)
	return &stored, nil
}

// AddContact inserts a new contact.
func AddContact(contact model.Contact) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for adding contact: %s", contact.ContactId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	defer dbClient.Close()

	query := scripts.InsertContact[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, contact.ContactId, contact.OrgId, contact.Email, contact.Name,
		contact.AccountId, contact.CreatedAt, contact.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding contact: %s", contact.ContactId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.EXECUTE_QUERY.Code,
			Message:     errors2.EXECUTE_QUERY.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	logger.Info(fmt.Sprintf("Contact: %s added successfully", contact.ContactId))
	return nil
}

// GetContactById fetches a contact by id.
func GetContactById(orgId, contactId string) (*model.Contact, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching contact: %s", contactId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	defer dbClient.Close()

	query := scripts.GetContactById[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, orgId, contactId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching contact: %s", contactId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_CONTACT.Code,
			Message:     errors2.GET_CONTACT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	if len(results) == 0 {
		return nil, nil
	}

	contact := contactFromRow(results[0])
	return &contact, nil
}

// GetContactsByName fetches contacts with a case-insensitive exact name match.
func GetContactsByName(orgId, name string) ([]model.Contact, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching contacts by name for organization: %s", orgId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}
	defer dbClient.Close()

	query := scripts.GetContactsByName[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, orgId, name)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching contacts by name for organization: %s", orgId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_CONTACT.Code,
			Message:     errors2.GET_CONTACT.Message,
			Description: errorMsg,
		}, err)
		return nil, serverError
	}

	var contacts []model.Contact
	for _, row := range results {
		contacts = append(contacts, contactFromRow(row))
	}
	return contacts, nil
}

// UpdateContactAccount links a contact to an account.
func UpdateContactAccount(orgId, contactId, accountId string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for updating contact: %s", contactId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	defer dbClient.Close()

	query := scripts.UpdateContactAccount[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, accountId, time.Now().UTC(), orgId, contactId)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while updating account for contact: %s", contactId)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.EXECUTE_QUERY.Code,
			Message:     errors2.EXECUTE_QUERY.Message,
			Description: errorMsg,
		}, err)
		return serverError
	}
	return nil
}

func identityFromRow(row map[string]interface{}) model.Identity {

	var identity model.Identity
	identity.IdentityId = row["identity_id"].(string)
	identity.OrgId = row["org_id"].(string)
	identity.IdentityType = row["identity_type"].(string)
	identity.IdentityValue = row["identity_value"].(string)
	identity.ContactId = row["contact_id"].(string)
	identity.Confidence = row["confidence"].(float64)
	identity.Verified = row["verified"].(bool)
	identity.CreatedAt = row["created_at"].(time.Time)
	identity.UpdatedAt = row["updated_at"].(time.Time)
	return identity
}

func contactFromRow(row map[string]interface{}) model.Contact {

	var contact model.Contact
	contact.ContactId = row["contact_id"].(string)
	contact.OrgId = row["org_id"].(string)
	if email, ok := row["email"].(string); ok {
		contact.Email = email
	}
	if name, ok := row["name"].(string); ok {
		contact.Name = name
	}
	if accountId, ok := row["account_id"].(string); ok {
		contact.AccountId = accountId
	}
	contact.CreatedAt = row["created_at"].(time.Time)
	contact.UpdatedAt = row["updated_at"].(time.Time)
	return contact
}
