package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemSweepValidate(t *testing.T) {
	tests := []struct {
		name    string
		sweep   ItemSweep
		wantErr bool
	}{
		{"valid", ItemSweep{Label: "A", FixedUsers: 16, Items: []int{16, 32}}, false},
		{"missing label", ItemSweep{FixedUsers: 16, Items: []int{16}}, true},
		{"no values", ItemSweep{Label: "A", FixedUsers: 16}, true},
		{"zero fixed users", ItemSweep{Label: "A", Items: []int{16}}, true},
		{"negative value", ItemSweep{Label: "A", FixedUsers: 16, Items: []int{16, -1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sweep.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserSweepValidate(t *testing.T) {
	assert.NoError(t, UserSweep{Label: "B", FixedItems: 128, Users: []int{16}}.Validate())
	assert.Error(t, UserSweep{Label: "B", FixedItems: 0, Users: []int{16}}.Validate())
	assert.Error(t, UserSweep{Label: "B", FixedItems: 128}.Validate())
}

func TestDefaultSweepTables(t *testing.T) {
	items := DefaultItemSweeps()
	users := DefaultUserSweeps()

	require.Len(t, items, 3)
	require.Len(t, users, 3)
	for _, s := range items {
		assert.NoError(t, s.Validate())
		assert.Len(t, s.Items, 6)
	}
	for _, s := range users {
		assert.NoError(t, s.Validate())
		assert.Len(t, s.Users, 6)
	}
	assert.Equal(t, "small users (16)", items[0].Label)
	assert.Equal(t, 1024, items[2].FixedUsers)
	assert.Equal(t, "large items (1024)", users[2].Label)
}
