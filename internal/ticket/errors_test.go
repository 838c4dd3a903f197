package ticket

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_KindMatching(t *testing.T) {
	cause := errors.New("timeout")
	err := fmt.Errorf("open: %w", provisioningFailed(cause))

	assert.ErrorIs(t, err, ErrProvisioningFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrConfigurationMissing)
	assert.Equal(t, "open: provisioning_failed: timeout", err.Error())

	missing := configurationMissing("role", "Founder👑")
	assert.ErrorIs(t, missing, ErrConfigurationMissing)
	assert.Equal(t, `configuration_missing: role "Founder👑" not found`, missing.Error())

	assert.Equal(t, "already_has_ticket", ErrAlreadyHasTicket.Error())
}

func TestKind(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(k.String())
		assert.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	k, err := ParseKind("Purchase")
	assert.NoError(t, err)
	assert.Equal(t, Purchase, k)

	_, err = ParseKind("refund")
	assert.Error(t, err)
	assert.Equal(t, "kind(9)", Kind(9).String())
}
