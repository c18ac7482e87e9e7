package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsAny(t *testing.T) {
	admins := NewRoleSet("100", "200")

	assert.True(t, admins.ContainsAny([]string{"300", "200"}))
	assert.False(t, admins.ContainsAny([]string{"300", "400"}))
	assert.False(t, admins.ContainsAny(nil))
}

func TestEmptySetAllowsNobody(t *testing.T) {
	assert.False(t, NewRoleSet().ContainsAny([]string{"100"}))
}
