// AngelaMos | 2026
// entity_test.go

package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []Feature {
	return []Feature{
		{Name: "basic_wall", IsFree: true, IsPremium: true},
		{Name: "premium_themes", IsFree: false, IsPremium: true},
		{Name: "retired_thing", IsFree: false, IsPremium: false},
	}
}

func TestResolve_FreeUser(t *testing.T) {
	resolved := Resolve(false, testCatalog())

	require.Len(t, resolved, 3)
	assert.True(t, resolved["basic_wall"].CanUse)
	assert.False(t, resolved["premium_themes"].CanUse)
	assert.False(t, resolved["retired_thing"].CanUse)
}

func TestResolve_PremiumUser(t *testing.T) {
	resolved := Resolve(true, testCatalog())

	assert.True(t, resolved["basic_wall"].CanUse)
	assert.True(t, resolved["premium_themes"].CanUse)
}

func TestResolve_BothFlagsOffDisablesForEveryone(t *testing.T) {
	catalog := []Feature{{Name: "off", IsFree: false, IsPremium: false}}

	assert.False(t, Resolve(false, catalog)["off"].CanUse)
	assert.False(t, Resolve(true, catalog)["off"].CanUse)
}

func TestResolve_UnknownFeatureAbsent(t *testing.T) {
	resolved := Resolve(true, testCatalog())

	_, ok := resolved["never_seeded"]
	assert.False(t, ok)
}

func TestResolve_Deterministic(t *testing.T) {
	catalog := testCatalog()

	first := Resolve(true, catalog)
	second := Resolve(true, catalog)

	assert.Equal(t, first, second)
}

func TestResolve_CarriesCatalogMetadata(t *testing.T) {
	catalog := []Feature{{
		Name:        "music_player",
		Label:       "Music Player",
		Description: "Attach a song to a wall",
		Icon:        "music",
		IsPremium:   true,
	}}

	resolved := Resolve(false, catalog)

	entry := resolved["music_player"]
	assert.Equal(t, "Music Player", entry.Label)
	assert.Equal(t, "Attach a song to a wall", entry.Description)
	assert.Equal(t, "music", entry.Icon)
	assert.True(t, entry.IsPremium)
	assert.False(t, entry.CanUse)
}
