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
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	accountmodel "github.com/signalfoundry/account-intelligence-service/internal/accounts/model"
	accountstore "github.com/signalfoundry/account-intelligence-service/internal/accounts/store"
	"github.com/signalfoundry/account-intelligence-service/internal/identity/model"
	"github.com/signalfoundry/account-intelligence-service/internal/identity/store"
	signalmodel "github.com/signalfoundry/account-intelligence-service/internal/signals/model"
	"github.com/signalfoundry/account-intelligence-service/internal/system/constants"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
)

// Confidence assigned per resolution stage. Stronger evidence wins and
// confidence never decreases on an existing identity.
const (
	ConfidenceEmail      = 1.0
	ConfidenceExternalId = 0.9
	ConfidenceProfileUrl = 0.7
	ConfidenceName       = 0.5
)

// Shared mailbox providers whose domains never identify an account.
var freeEmailDomains = map[string]bool{
	"gmail.com":   true,
	"yahoo.com":   true,
	"hotmail.com": true,
	"outlook.com": true,
	"icloud.com":  true,
	"proton.me":   true,
	"aol.com":     true,
}

// IdentityStore is the identity persistence surface the resolver needs.
type IdentityStore interface {
	GetIdentityByTypeAndValue(identityType, identityValue string) (*model.Identity, error)
	UpsertIdentity(identity model.Identity) (*model.Identity, error)
}

// ContactStore is the contact persistence surface the resolver needs.
type ContactStore interface {
	AddContact(contact model.Contact) error
	GetContactById(orgId, contactId string) (*model.Contact, error)
	GetContactsByName(orgId, name string) ([]model.Contact, error)
	UpdateContactAccount(orgId, contactId, accountId string) error
}

// AccountStore is the account persistence surface the resolver needs.
type AccountStore interface {
	AddAccount(account accountmodel.Account) error
	GetAccountByDomain(orgId, domain string) (*accountmodel.Account, error)
}

type storeBackedIdentities struct{}

func (storeBackedIdentities) GetIdentityByTypeAndValue(identityType, identityValue string) (*model.Identity, error) {
	return store.GetIdentityByTypeAndValue(identityType, identityValue)
}

func (storeBackedIdentities) UpsertIdentity(identity model.Identity) (*model.Identity, error) {
	return store.UpsertIdentity(identity)
}

type storeBackedContacts struct{}

func (storeBackedContacts) AddContact(contact model.Contact) error {
	return store.AddContact(contact)
}

func (storeBackedContacts) GetContactById(orgId, contactId string) (*model.Contact, error) {
	return store.GetContactById(orgId, contactId)
}

func (storeBackedContacts) GetContactsByName(orgId, name string) ([]model.Contact, error) {
	return store.GetContactsByName(orgId, name)
}

func (storeBackedContacts) UpdateContactAccount(orgId, contactId, accountId string) error {
	return store.UpdateContactAccount(orgId, contactId, accountId)
}

type storeBackedAccounts struct{}

func (storeBackedAccounts) AddAccount(account accountmodel.Account) error {
	return accountstore.AddAccount(account)
}

func (storeBackedAccounts) GetAccountByDomain(orgId, domain string) (*accountmodel.Account, error) {
	return accountstore.GetAccountByDomain(orgId, domain)
}

// Resolver links incoming actor evidence to contacts and accounts.
type Resolver struct {
	identities IdentityStore
	contacts   ContactStore
	accounts   AccountStore
}

// NewResolver returns a resolver backed by the database stores.
func NewResolver() *Resolver {
	return &Resolver{
		identities: storeBackedIdentities{},
		contacts:   storeBackedContacts{},
		accounts:   storeBackedAccounts{},
	}
}

// NewResolverWithStores wires a resolver against explicit store implementations.
func NewResolverWithStores(identities IdentityStore, contacts ContactStore, accounts AccountStore) *Resolver {
	return &Resolver{
		identities: identities,
		contacts:   contacts,
		accounts:   accounts,
	}
}

// Resolve runs the staged resolution over the actor evidence of a signal.
// Stages are tried strongest-first: email, source-scoped external id,
// profile URL, then a single-match name lookup. Evidence that resolves
// nothing yields an anonymous id instead of a contact.
func (r *Resolver) Resolve(orgId, source string, actor signalmodel.Actor) (*model.Resolution, error) {

	email := strings.ToLower(strings.TrimSpace(actor.Email))

	if email != "" {
		resolution, err := r.resolveByIdentity(orgId, constants.IdentityTypeEmail, email, actor, ConfidenceEmail, true)
		if err != nil {
			return nil, err
		}
		if resolution != nil {
			r.backfillProfileUrl(orgId, actor, resolution.ContactId)
			return resolution, nil
		}
	}

	if actor.ExternalId != "" {
		value := source + ":" + actor.ExternalId
		resolution, err := r.resolveByIdentity(orgId, constants.IdentityTypeExternalID, value, actor, ConfidenceExternalId, false)
		if err != nil {
			return nil, err
		}
		if resolution != nil {
			r.backfillProfileUrl(orgId, actor, resolution.ContactId)
			return resolution, nil
		}
	}

	if actor.ProfileUrl != "" {
		resolution, err := r.resolveByIdentity(orgId, constants.IdentityTypeProfileURL, actor.ProfileUrl, actor, ConfidenceProfileUrl, false)
		if err != nil {
			return nil, err
		}
		if resolution != nil {
			return resolution, nil
		}
	}

	if actor.Name != "" {
		resolution, err := r.resolveByName(orgId, actor.Name)
		if err != nil {
			return nil, err
		}
		if resolution != nil {
			return resolution, nil
		}
	}

	return &model.Resolution{AnonymousId: anonymousIdFor(source, actor)}, nil
}

// resolveByIdentity looks an identity up and links or creates a contact for
// it. Identities owned by another organization are never reused.
func (r *Resolver) resolveByIdentity(orgId, identityType, identityValue string, actor signalmodel.Actor,
	confidence float64, verified bool) (*model.Resolution, error) {

	logger := log.GetLogger()
	identity, err := r.identities.GetIdentityByTypeAndValue(identityType, identityValue)
	if err != nil {
		return nil, err
	}

	if identity != nil {
		if identity.OrgId != orgId {
			logger.Warn(fmt.Sprintf("Identity of type %s is owned by a different organization; skipping", identityType))
			return nil, nil
		}

		// Bump confidence and verified; the store keeps the maximum.
		now := time.Now().UTC()
		stored, err := r.identities.UpsertIdentity(model.Identity{
			IdentityId:    identity.IdentityId,
			OrgId:         orgId,
			IdentityType:  identityType,
			IdentityValue: identityValue,
			ContactId:     identity.ContactId,
			Confidence:    confidence,
			Verified:      verified,
			CreatedAt:     identity.CreatedAt,
			UpdatedAt:     now,
		})
		if err != nil {
			return nil, err
		}

		accountId, err := r.ensureAccount(orgId, stored.ContactId, actor)
		if err != nil {
			return nil, err
		}
		return &model.Resolution{ContactId: stored.ContactId, AccountId: accountId, Confidence: stored.Confidence}, nil
	}

	// No identity yet: mint a contact and link the evidence to it.
	now := time.Now().UTC()
	contact := model.Contact{
		ContactId: uuid.New().String(),
		OrgId:     orgId,
		Email:     strings.ToLower(strings.TrimSpace(actor.Email)),
		Name:      actor.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.contacts.AddContact(contact); err != nil {
		return nil, err
	}

	if _, err := r.identities.UpsertIdentity(model.Identity{
		IdentityId:    uuid.New().String(),
		OrgId:         orgId,
		IdentityType:  identityType,
		IdentityValue: identityValue,
		ContactId:     contact.ContactId,
		Confidence:    confidence,
		Verified:      verified,
		CreatedAt:     now,
		UpdatedAt:     now,
	}); err != nil {
		return nil, err
	}

	accountId, err := r.ensureAccount(orgId, contact.ContactId, actor)
	if err != nil {
		return nil, err
	}
	return &model.Resolution{ContactId: contact.ContactId, AccountId: accountId, Confidence: confidence}, nil
}

// resolveByName links only when exactly one contact carries the name.
func (r *Resolver) resolveByName(orgId, name string) (*model.Resolution, error) {

	contacts, err := r.contacts.GetContactsByName(orgId, name)
	if err != nil {
		return nil, err
	}
	if len(contacts) != 1 {
		return nil, nil
	}
	return &model.Resolution{
		ContactId:  contacts[0].ContactId,
		AccountId:  contacts[0].AccountId,
		Confidence: ConfidenceName,
	}, nil
}

// backfillProfileUrl stores profile URL evidence against an already resolved
// contact. Failures only log; the resolution itself already succeeded.
func (r *Resolver) backfillProfileUrl(orgId string, actor signalmodel.Actor, contactId string) {

	if actor.ProfileUrl == "" || contactId == "" {
		return
	}
	now := time.Now().UTC()
	if _, err := r.identities.UpsertIdentity(model.Identity{
		IdentityId:    uuid.New().String(),
		OrgId:         orgId,
		IdentityType:  constants.IdentityTypeProfileURL,
		IdentityValue: actor.ProfileUrl,
		ContactId:     contactId,
		Confidence:    ConfidenceProfileUrl,
		Verified:      false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}); err != nil {
		log.GetLogger().Warn("Failed to backfill profile URL identity", log.Error(err))
	}
}

// ensureAccount links the contact to an account derived from its email
// domain. Shared mailbox domains never produce an account.
func (r *Resolver) ensureAccount(orgId, contactId string, actor signalmodel.Actor) (string, error) {

	contact, err := r.contacts.GetContactById(orgId, contactId)
	if err != nil {
		return "", err
	}
	if contact == nil {
		return "", nil
	}
	if contact.AccountId != "" {
		return contact.AccountId, nil
	}

	email := contact.Email
	if email == "" {
		email = strings.ToLower(strings.TrimSpace(actor.Email))
	}
	domain := emailDomain(email)
	if domain == "" || freeEmailDomains[domain] {
		return "", nil
	}

	account, err := r.accounts.GetAccountByDomain(orgId, domain)
	if err != nil {
		return "", err
	}
	if account == nil {
		now := time.Now().UTC()
		newAccount := accountmodel.Account{
			AccountId:   uuid.New().String(),
			OrgId:       orgId,
			AccountName: domain,
			Domain:      domain,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := r.accounts.AddAccount(newAccount); err != nil {
			return "", err
		}
		// Re-read: a concurrent insert for the same domain wins on conflict.
		account, err = r.accounts.GetAccountByDomain(orgId, domain)
		if err != nil {
			return "", err
		}
		if account == nil {
			account = &newAccount
		}
	}

	if err := r.contacts.UpdateContactAccount(orgId, contactId, account.AccountId); err != nil {
		return "", err
	}
	return account.AccountId, nil
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return email[at+1:]
}

func anonymousIdFor(source string, actor signalmodel.Actor) string {
	switch {
	case actor.Email != "":
		return source + ":" + strings.ToLower(strings.TrimSpace(actor.Email))
	case actor.ExternalId != "":
		return source + ":" + actor.ExternalId
	default:
		return source + ":" + constants.IdentityTypeAnonymous
	}
}
