package account

import (
	"errors"
	"fmt"
	"strings"
)

type AnimationStyle string

const (
	AnimationNone    AnimationStyle = "none"
	AnimationFade    AnimationStyle = "fade"
	AnimationSlideUp AnimationStyle = "slide-up"
	AnimationBounce  AnimationStyle = "bounce"
	AnimationPulse   AnimationStyle = "pulse"
)

func (s AnimationStyle) IsValid() bool {
	switch s {
	case AnimationNone, AnimationFade, AnimationSlideUp, AnimationBounce, AnimationPulse:
		return true
	}
	return false
}

type ProfileInfo struct {
	Name   string `json:"name"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

// PageSettings is the per-account page configuration. Background is either a
// CSS descriptor (e.g. "bg-gradient-to-br from-purple-900 to-indigo-900") or
// an image descriptor of the form url("...").
type PageSettings struct {
	Background          string         `json:"background"`
	EnableParallax      bool           `json:"enable_parallax"`
	EnableSnowParticles bool           `json:"enable_snow_particles"`
	EnableCustomCursor  bool           `json:"enable_custom_cursor"`
	ProfileInfo         ProfileInfo    `json:"profile_info"`
	SelectedWebsites    []string       `json:"selected_websites"`
	AnimationStyle      AnimationStyle `json:"animation_style"`
}

// IsImageBackground reports whether the background descriptor references an
// image rather than a CSS class string.
func (s *PageSettings) IsImageBackground() bool {
	return strings.HasPrefix(s.Background, "url(")
}

func (s *PageSettings) Validate() error {
	if s.Background == "" {
		return errors.New("background must not be empty")
	}
	if s.IsImageBackground() && !strings.HasSuffix(s.Background, ")") {
		return errors.New("image background must be a url(...) descriptor")
	}
	if !s.AnimationStyle.IsValid() {
		return fmt.Errorf("unknown animation style %q", s.AnimationStyle)
	}
	return nil
}

// DefaultSettings mirrors what a fresh signup gets before any editing.
func DefaultSettings(username string) PageSettings {
	return PageSettings{
		Background:          "bg-gradient-to-br from-purple-900 to-indigo-900",
		EnableParallax:      true,
		EnableSnowParticles: true,
		EnableCustomCursor:  true,
		ProfileInfo: ProfileInfo{
			Name:   username,
			Bio:    "",
			Avatar: "/placeholder.svg",
		},
		SelectedWebsites: []string{"website", "github"},
		AnimationStyle:   AnimationFade,
	}
}
