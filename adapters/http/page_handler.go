package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	pageUC "github.com/khoahotran/krypton/internal/application/usecase/page"
	"github.com/khoahotran/krypton/pkg/apperror"
)

type PageHandler struct {
	pageUseCase *pageUC.PageUseCase
}

func NewPageHandler(uc *pageUC.PageUseCase) *PageHandler {
	return &PageHandler{pageUseCase: uc}
}

func (h *PageHandler) GetPage(c *gin.Context) {
	username := c.Param("username")

	input := pageUC.GetPageInput{Username: username}
	output, err := h.pageUseCase.ExecuteGetPage(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			c.JSON(http.StatusNotFound, notFoundModel(username))
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToPageDTO(output.Page))
}

// notFoundModel is the view model for an unclaimed username: a title, an
// explanation, and a signup call to action.
func notFoundModel(username string) gin.H {
	return gin.H{
		"error":        "not found",
		"title":        "Profile Not Found",
		"message":      fmt.Sprintf("The username @%s doesn't exist or hasn't been claimed yet on Krypton.lol.", username),
		"signup_url":   "/signup",
		"signup_label": "Create Your Krypton Page",
	}
}
