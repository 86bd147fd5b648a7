package version_test

import (
	"testing"

	"github.com/AdguardTeam/replitdb/internal/version"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, "ReplitDB-Go", version.Name())
	assert.NotEmpty(t, version.Version())

	// Not set by the linker in tests.
	assert.Empty(t, version.Branch())
	assert.Empty(t, version.CommitTime())
	assert.Empty(t, version.Revision())
}
