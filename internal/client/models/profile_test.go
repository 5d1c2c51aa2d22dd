package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserKey_Priority(t *testing.T) {
	p := &Profile{ID: "u-1", Email: "a@b.c"}
	require.Equal(t, "u-1", p.UserKey())

	p = &Profile{Email: "a@b.c"}
	require.Equal(t, "a@b.c", p.UserKey())

	p = &Profile{}
	require.Equal(t, "anonymous", p.UserKey())

	var nilProfile *Profile
	require.Equal(t, "anonymous", nilProfile.UserKey())
}

func TestFilterOverlay_DropsUnknownFields(t *testing.T) {
	fields := map[string]string{
		"avatar_index": "2",
		"bio":          "hello",
		"total_shakes": "999",
		"id":           "evil",
	}
	got := FilterOverlay(fields)
	require.Equal(t, map[string]string{"avatar_index": "2", "bio": "hello"}, got)

	require.Empty(t, FilterOverlay(map[string]string{"id": "evil"}))
}

func TestMergeProfile_OverlayNeverTouchesServerFields(t *testing.T) {
	remote := Profile{
		ID:          "u-1",
		Name:        "Dana",
		Email:       "dana@example.com",
		TotalShakes: 20,
		DailyShakes: 3,
	}

	// Adversarial overlay: non-allow-listed keys must be ignored even if
	// they name real profile fields.
	overlay := map[string]string{
		"avatar_index": "2",
		"bio":          "shaking daily",
		"phone":        "555-0101",
		"id":           "evil",
		"total_shakes": "9999",
		"email":        "evil@example.com",
	}

	merged := MergeProfile(remote, overlay)

	require.Equal(t, "u-1", merged.ID)
	require.Equal(t, "dana@example.com", merged.Email)
	require.Equal(t, 20, merged.TotalShakes)
	require.Equal(t, 3, merged.DailyShakes)

	require.NotNil(t, merged.AvatarIndex)
	require.Equal(t, 2, *merged.AvatarIndex)
	require.Equal(t, "shaking daily", merged.Bio)
	require.Equal(t, "555-0101", merged.Phone)
}

func TestMergeProfile_InvalidAvatarIndexIgnored(t *testing.T) {
	remote := Profile{ID: "u-1"}
	merged := MergeProfile(remote, map[string]string{"avatar_index": "two"})
	require.Nil(t, merged.AvatarIndex)
}

func TestMergeProfile_EmptyOverlayIsIdentity(t *testing.T) {
	idx := 4
	remote := Profile{ID: "u-1", AvatarIndex: &idx, Bio: "kept"}
	require.Equal(t, remote, MergeProfile(remote, nil))
}
