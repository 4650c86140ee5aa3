package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	settingsUC "github.com/khoahotran/krypton/internal/application/usecase/settings"
	"github.com/khoahotran/krypton/pkg/apperror"
)

type SettingsHandler struct {
	settingsUseCase *settingsUC.SettingsUseCase
}

func NewSettingsHandler(uc *settingsUC.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{settingsUseCase: uc}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	accountID, ok := GetAccountIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("accountID not found in context"))
		return
	}

	input := settingsUC.GetSettingsInput{AccountID: accountID}
	output, err := h.settingsUseCase.ExecuteGet(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account":  ToAccountDTO(output.Account),
		"settings": ToSettingsDTO(output.Account.Settings),
	})
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	accountID, ok := GetAccountIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("accountID not found in context"))
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for settings update", err))
		return
	}

	input := settingsUC.UpdateSettingsInput{
		AccountID: accountID,
		Settings:  req.ToDomainSettings(),
	}
	output, err := h.settingsUseCase.ExecuteUpdate(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToSettingsDTO(output.Settings))
}

func (h *SettingsHandler) UploadAvatar(c *gin.Context) {
	accountID, ok := GetAccountIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("accountID not found in context"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("avatar file is required", err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInvalidInput("cannot open uploaded file", err))
		return
	}
	defer file.Close()

	input := settingsUC.UploadAvatarInput{
		AccountID: accountID,
		File:      file,
	}
	output, err := h.settingsUseCase.ExecuteUploadAvatar(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": output.AvatarURL})
}
