package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnimationStyle_IsValid(t *testing.T) {
	for _, style := range []AnimationStyle{AnimationNone, AnimationFade, AnimationSlideUp, AnimationBounce, AnimationPulse} {
		assert.True(t, style.IsValid(), string(style))
	}

	assert.False(t, AnimationStyle("spin").IsValid())
	assert.False(t, AnimationStyle("").IsValid())
}

func TestPageSettings_Validate(t *testing.T) {
	s := DefaultSettings("ann")
	assert.NoError(t, s.Validate())

	s.AnimationStyle = "wiggle"
	assert.Error(t, s.Validate())

	s = DefaultSettings("ann")
	s.Background = ""
	assert.Error(t, s.Validate())

	s = DefaultSettings("ann")
	s.Background = `url("/anime-girl.gif")`
	assert.NoError(t, s.Validate())
	assert.True(t, s.IsImageBackground())

	s.Background = `url("/anime-girl.gif"`
	assert.Error(t, s.Validate())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings("ann")

	assert.Equal(t, "ann", s.ProfileInfo.Name)
	assert.Equal(t, AnimationFade, s.AnimationStyle)
	assert.True(t, s.EnableParallax)
	assert.ElementsMatch(t, []string{"website", "github"}, s.SelectedWebsites)
	assert.False(t, s.IsImageBackground())
}
