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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	accountmodel "github.com/signalfoundry/account-intelligence-service/internal/accounts/model"
	"github.com/signalfoundry/account-intelligence-service/internal/identity/model"
	signalmodel "github.com/signalfoundry/account-intelligence-service/internal/signals/model"
	"github.com/signalfoundry/account-intelligence-service/internal/system/constants"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// In-memory store fakes
// ---------------------------------------------------------------------------

type fakeIdentityStore struct {
	identities map[string]*model.Identity
}

func newFakeIdentityStore() *fakeIdentityStore {
	return &fakeIdentityStore{identities: map[string]*model.Identity{}}
}

func identityKey(identityType, identityValue string) string {
	return identityType + "|" + identityValue
}

func (s *fakeIdentityStore) GetIdentityByTypeAndValue(identityType, identityValue string) (*model.Identity, error) {
	identity, ok := s.identities[identityKey(identityType, identityValue)]
	if !ok {
		return nil, nil
	}
	copied := *identity
	return &copied, nil
}

func (s *fakeIdentityStore) UpsertIdentity(identity model.Identity) (*model.Identity, error) {
	key := identityKey(identity.IdentityType, identity.IdentityValue)
	if existing, ok := s.identities[key]; ok {
		if identity.Confidence > existing.Confidence {
			existing.Confidence = identity.Confidence
		}
		existing.Verified = existing.Verified || identity.Verified
		existing.UpdatedAt = identity.UpdatedAt
		copied := *existing
		return &copied, nil
	}
	stored := identity
	s.identities[key] = &stored
	copied := stored
	return &copied, nil
}

type fakeContactStore struct {
	contacts map[string]*model.Contact
}

func newFakeContactStore() *fakeContactStore {
	return &fakeContactStore{contacts: map[string]*model.Contact{}}
}

func (s *fakeContactStore) AddContact(contact model.Contact) error {
	stored := contact
	s.contacts[contact.ContactId] = &stored
	return nil
}

func (s *fakeContactStore) GetContactById(orgId, contactId string) (*model.Contact, error) {
	contact, ok := s.contacts[contactId]
	if !ok || contact.OrgId != orgId {
		return nil, nil
	}
	copied := *contact
	return &copied, nil
}

func (s *fakeContactStore) GetContactsByName(orgId, name string) ([]model.Contact, error) {
	var matches []model.Contact
	for _, contact := range s.contacts {
		if contact.OrgId == orgId && contact.Name == name {
			matches = append(matches, *contact)
		}
	}
	return matches, nil
}

func (s *fakeContactStore) UpdateContactAccount(orgId, contactId, accountId string) error {
	if contact, ok := s.contacts[contactId]; ok && contact.OrgId == orgId {
		contact.AccountId = accountId
	}
	return nil
}

type fakeAccountStore struct {
	accounts map[string]*accountmodel.Account
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: map[string]*accountmodel.Account{}}
}

func (s *fakeAccountStore) AddAccount(account accountmodel.Account) error {
	key := account.OrgId + "|" + account.Domain
	if _, ok := s.accounts[key]; ok {
		return nil
	}
	stored := account
	s.accounts[key] = &stored
	return nil
}

func (s *fakeAccountStore) GetAccountByDomain(orgId, domain string) (*accountmodel.Account, error) {
	account, ok := s.accounts[orgId+"|"+domain]
	if !ok {
		return nil, nil
	}
	copied := *account
	return &copied, nil
}

func newTestResolver() (*Resolver, *fakeIdentityStore, *fakeContactStore, *fakeAccountStore) {
	identities := newFakeIdentityStore()
	contacts := newFakeContactStore()
	accounts := newFakeAccountStore()
	return NewResolverWithStores(identities, contacts, accounts), identities, contacts, accounts
}

// ---------------------------------------------------------------------------
// Resolve – staged resolution
// ---------------------------------------------------------------------------

func TestResolve_NewEmailCreatesContactAndAccount(t *testing.T) {
	resolver, identities, contacts, accounts := newTestResolver()

	resolution, err := resolver.Resolve("org1", "github", signalmodel.Actor{
		Email: "Dev@Acme.com",
		Name:  "Dev One",
	})
	require.NoError(t, err)
	require.NotNil(t, resolution)

	assert.NotEmpty(t, resolution.ContactId)
	assert.NotEmpty(t, resolution.AccountId)
	assert.Empty(t, resolution.AnonymousId)
	assert.Equal(t, ConfidenceEmail, resolution.Confidence)

	identity, err := identities.GetIdentityByTypeAndValue(constants.IdentityTypeEmail, "dev@acme.com")
	require.NoError(t, err)
	require.NotNil(t, identity, "email identity lowercased and stored")
	assert.True(t, identity.Verified)

	contact, err := contacts.GetContactById("org1", resolution.ContactId)
	require.NoError(t, err)
	require.NotNil(t, contact)
	assert.Equal(t, "dev@acme.com", contact.Email)
	assert.Equal(t, resolution.AccountId, contact.AccountId)

	account, err := accounts.GetAccountByDomain("org1", "acme.com")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "acme.com", account.Domain)
}

func TestResolve_FreeEmailDomainSkipsAccount(t *testing.T) {
	resolver, _, _, accounts := newTestResolver()

	resolution, err := resolver.Resolve("org1", "github", signalmodel.Actor{Email: "dev@gmail.com"})
	require.NoError(t, err)

	assert.NotEmpty(t, resolution.ContactId)
	assert.Empty(t, resolution.AccountId)
	assert.Empty(t, accounts.accounts)
}

func TestResolve_ExistingEmailReusesContact(t *testing.T) {
	resolver, _, _, _ := newTestResolver()

	first, err := resolver.Resolve("org1", "github", signalmodel.Actor{Email: "dev@acme.com"})
	require.NoError(t, err)
	second, err := resolver.Resolve("org1", "npm", signalmodel.Actor{Email: "DEV@ACME.COM"})
	require.NoError(t, err)

	assert.Equal(t, first.ContactId, second.ContactId)
	assert.Equal(t, first.AccountId, second.AccountId)
}

func TestResolve_ExternalIdIsSourceScoped(t *testing.T) {
	resolver, identities, _, _ := newTestResolver()

	resolution, err := resolver.Resolve("org1", "github", signalmodel.Actor{ExternalId: "octocat"})
	require.NoError(t, err)
	assert.NotEmpty(t, resolution.ContactId)
	assert.Equal(t, ConfidenceExternalId, resolution.Confidence)

	identity, err := identities.GetIdentityByTypeAndValue(constants.IdentityTypeExternalID, "github:octocat")
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.False(t, identity.Verified)

	// Same external id on a different source does not collide.
	other, err := resolver.Resolve("org1", "npm", signalmodel.Actor{ExternalId: "octocat"})
	require.NoError(t, err)
	assert.NotEqual(t, resolution.ContactId, other.ContactId)
}

func TestResolve_EmailWinsOverExternalId(t *testing.T) {
	resolver, _, _, _ := newTestResolver()

	byEmail, err := resolver.Resolve("org1", "github", signalmodel.Actor{Email: "dev@acme.com"})
	require.NoError(t, err)

	both, err := resolver.Resolve("org1", "github", signalmodel.Actor{
		Email:      "dev@acme.com",
		ExternalId: "someone-else",
	})
	require.NoError(t, err)
	assert.Equal(t, byEmail.ContactId, both.ContactId)
	assert.Equal(t, ConfidenceEmail, both.Confidence)
}

func TestResolve_ProfileUrlBackfilledAfterEmailResolution(t *testing.T) {
	resolver, identities, _, _ := newTestResolver()

	resolution, err := resolver.Resolve("org1", "github", signalmodel.Actor{
		Email:      "dev@acme.com",
		ProfileUrl: "https://github.com/dev",
	})
	require.NoError(t, err)

	identity, err := identities.GetIdentityByTypeAndValue(constants.IdentityTypeProfileURL, "https://github.com/dev")
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, resolution.ContactId, identity.ContactId)

	// A later signal with only the profile URL resolves to the same contact.
	later, err := resolver.Resolve("org1", "github", signalmodel.Actor{ProfileUrl: "https://github.com/dev"})
	require.NoError(t, err)
	assert.Equal(t, resolution.ContactId, later.ContactId)
}

func TestResolve_CrossOrgIdentityIsNeverReused(t *testing.T) {
	resolver, _, _, _ := newTestResolver()

	_, err := resolver.Resolve("org1", "github", signalmodel.Actor{ExternalId: "octocat"})
	require.NoError(t, err)

	// Identity values are globally unique, so the second org resolves nothing
	// on this stage and falls through to an anonymous id.
	resolution, err := resolver.Resolve("org2", "github", signalmodel.Actor{ExternalId: "octocat"})
	require.NoError(t, err)
	assert.Empty(t, resolution.ContactId)
	assert.Equal(t, "github:octocat", resolution.AnonymousId)
}

func TestResolve_SingleNameMatchLinks(t *testing.T) {
	resolver, _, contacts, _ := newTestResolver()

	seeded, err := resolver.Resolve("org1", "github", signalmodel.Actor{
		Email: "dev@acme.com",
		Name:  "Dev One",
	})
	require.NoError(t, err)

	byName, err := resolver.Resolve("org1", "discord", signalmodel.Actor{Name: "Dev One"})
	require.NoError(t, err)
	assert.Equal(t, seeded.ContactId, byName.ContactId)
	assert.Equal(t, ConfidenceName, byName.Confidence)

	// A second contact with the same name makes the match ambiguous.
	require.NoError(t, contacts.AddContact(model.Contact{
		ContactId: "other",
		OrgId:     "org1",
		Name:      "Dev One",
	}))
	ambiguous, err := resolver.Resolve("org1", "discord", signalmodel.Actor{Name: "Dev One"})
	require.NoError(t, err)
	assert.Empty(t, ambiguous.ContactId)
	assert.NotEmpty(t, ambiguous.AnonymousId)
}

func TestResolve_NoEvidenceClustersUnderStableAnonymousId(t *testing.T) {
	resolver, _, contacts, _ := newTestResolver()

	first, err := resolver.Resolve("org1", "website", signalmodel.Actor{})
	require.NoError(t, err)
	second, err := resolver.Resolve("org1", "website", signalmodel.Actor{})
	require.NoError(t, err)

	// Actors without identifying evidence never mint a contact; their signals
	// cluster under one stable per-source anonymous id.
	assert.Empty(t, first.ContactId)
	assert.Empty(t, first.AccountId)
	assert.Equal(t, "website:anonymous", first.AnonymousId)
	assert.Equal(t, first.AnonymousId, second.AnonymousId)
	assert.Empty(t, contacts.contacts)
}

// ---------------------------------------------------------------------------
// anonymousIdFor / emailDomain
// ---------------------------------------------------------------------------

func TestAnonymousIdFor(t *testing.T) {
	assert.Equal(t, "github:dev@acme.com",
		anonymousIdFor("github", signalmodel.Actor{Email: "Dev@Acme.com "}))
	assert.Equal(t, "github:octocat",
		anonymousIdFor("github", signalmodel.Actor{ExternalId: "octocat"}))
	assert.Equal(t, "website:anonymous",
		anonymousIdFor("website", signalmodel.Actor{Name: "Someone"}))
}

func TestEmailDomain(t *testing.T) {
	assert.Equal(t, "acme.com", emailDomain("dev@acme.com"))
	assert.Equal(t, "", emailDomain("not-an-email"))
	assert.Equal(t, "", emailDomain("trailing@"))
	assert.Equal(t, "b.com", emailDomain("weird@a@b.com"))
}
