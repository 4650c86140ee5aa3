package http

import (
	"time"

	"github.com/khoahotran/krypton/internal/domain/account"
	"github.com/khoahotran/krypton/internal/domain/catalog"
	"github.com/khoahotran/krypton/internal/domain/page"
)

// Auth DTOs

type SignupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AccountDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func ToAccountDTO(a *account.Account) AccountDTO {
	return AccountDTO{
		ID:        a.ID.String(),
		Username:  a.Username,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}

// Settings DTOs

type ProfileInfoDTO struct {
	Name   string `json:"name"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

type SettingsDTO struct {
	Background          string         `json:"background"`
	EnableParallax      bool           `json:"enable_parallax"`
	EnableSnowParticles bool           `json:"enable_snow_particles"`
	EnableCustomCursor  bool           `json:"enable_custom_cursor"`
	ProfileInfo         ProfileInfoDTO `json:"profile_info"`
	SelectedWebsites    []string       `json:"selected_websites"`
	AnimationStyle      string         `json:"animation_style"`
}

type UpdateSettingsRequest struct {
	Background          string         `json:"background" binding:"required"`
	EnableParallax      bool           `json:"enable_parallax"`
	EnableSnowParticles bool           `json:"enable_snow_particles"`
	EnableCustomCursor  bool           `json:"enable_custom_cursor"`
	ProfileInfo         ProfileInfoDTO `json:"profile_info"`
	SelectedWebsites    []string       `json:"selected_websites"`
	AnimationStyle      string         `json:"animation_style" binding:"required"`
}

func (req *UpdateSettingsRequest) ToDomainSettings() account.PageSettings {
	return account.PageSettings{
		Background:          req.Background,
		EnableParallax:      req.EnableParallax,
		EnableSnowParticles: req.EnableSnowParticles,
		EnableCustomCursor:  req.EnableCustomCursor,
		ProfileInfo: account.ProfileInfo{
			Name:   req.ProfileInfo.Name,
			Bio:    req.ProfileInfo.Bio,
			Avatar: req.ProfileInfo.Avatar,
		},
		SelectedWebsites: req.SelectedWebsites,
		AnimationStyle:   account.AnimationStyle(req.AnimationStyle),
	}
}

func ToSettingsDTO(s account.PageSettings) SettingsDTO {
	return SettingsDTO{
		Background:          s.Background,
		EnableParallax:      s.EnableParallax,
		EnableSnowParticles: s.EnableSnowParticles,
		EnableCustomCursor:  s.EnableCustomCursor,
		ProfileInfo: ProfileInfoDTO{
			Name:   s.ProfileInfo.Name,
			Bio:    s.ProfileInfo.Bio,
			Avatar: s.ProfileInfo.Avatar,
		},
		SelectedWebsites: s.SelectedWebsites,
		AnimationStyle:   string(s.AnimationStyle),
	}
}

// Page DTOs

type LinkDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type PageDTO struct {
	Username  string      `json:"username"`
	Settings  SettingsDTO `json:"settings"`
	Links     []LinkDTO   `json:"links"`
	ViewCount int64       `json:"view_count"`
}

func toLinkDTOs(links []catalog.Link) []LinkDTO {
	out := make([]LinkDTO, len(links))
	for i, l := range links {
		out[i] = LinkDTO(l)
	}
	return out
}

func ToPageDTO(p *page.Page) PageDTO {
	return PageDTO{
		Username:  p.Username,
		Settings:  ToSettingsDTO(p.Settings),
		Links:     toLinkDTOs(p.Links),
		ViewCount: p.ViewCount,
	}
}
