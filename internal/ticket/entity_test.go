// AngelaMos | 2026
// entity_test.go

package ticket_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/repairdesk/internal/ticket"
)

func TestStringListValue(t *testing.T) {
	v, err := ticket.StringList{"screen", "battery"}.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte(`["screen","battery"]`), v)

	v, err = ticket.StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)
}

func TestStringListScan(t *testing.T) {
	var l ticket.StringList
	require.NoError(t, l.Scan([]byte(`["screen","battery"]`)))
	assert.Equal(t, ticket.StringList{"screen", "battery"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Nil(t, l)

	require.Error(t, l.Scan(42))
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{
		ticket.StatusPending,
		ticket.StatusInProgress,
		ticket.StatusCompleted,
		ticket.StatusDelivered,
	} {
		assert.True(t, ticket.ValidStatus(status), status)
	}

	assert.False(t, ticket.ValidStatus("exploded"))
	assert.False(t, ticket.ValidStatus(""))
}
