package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanEditOwner(t *testing.T) {
	m := WorkspaceMember{IsOwner: true}

	for _, resource := range []string{ResourceTests, ResourceOffers, ResourceFinancial, ResourceMembers} {
		assert.True(t, m.CanEdit(resource), resource)
	}
}

func TestCanEditFullAccess(t *testing.T) {
	m := WorkspaceMember{MemberPermissions: MemberPermissions{FullAccess: true}}

	for _, resource := range []string{ResourceTests, ResourceOffers, ResourceFinancial, ResourceMembers} {
		assert.True(t, m.CanEdit(resource), resource)
	}
}

func TestCanEditSingleFlag(t *testing.T) {
	m := WorkspaceMember{MemberPermissions: MemberPermissions{EditTests: true}}

	assert.True(t, m.CanEdit(ResourceTests))
	assert.False(t, m.CanEdit(ResourceOffers))
	assert.False(t, m.CanEdit(ResourceFinancial))
	assert.False(t, m.CanEdit(ResourceMembers))
}

func TestCanEditUnknownResource(t *testing.T) {
	m := WorkspaceMember{MemberPermissions: MemberPermissions{EditTests: true, EditOffers: true}}
	assert.False(t, m.CanEdit("reports"))
}

func TestCanViewAlwaysTrue(t *testing.T) {
	m := WorkspaceMember{MemberPermissions: MemberPermissions{ViewOnly: true}}
	assert.True(t, m.CanView())

	empty := WorkspaceMember{}
	assert.True(t, empty.CanView())
}

func TestViewOnlyPermissions(t *testing.T) {
	p := ViewOnlyPermissions()

	assert.True(t, p.ViewOnly)
	assert.False(t, p.EditTests)
	assert.False(t, p.EditOffers)
	assert.False(t, p.EditFinancial)
	assert.False(t, p.ManageMembers)
	assert.False(t, p.FullAccess)
}
