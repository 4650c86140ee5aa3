package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/khoahotran/krypton/internal/application/usecase/auth"
	"github.com/khoahotran/krypton/pkg/apperror"
)

type AuthHandler struct {
	signupUseCase       *authUC.SignupUseCase
	loginUseCase        *authUC.LoginUseCase
	availabilityUseCase *authUC.AvailabilityUseCase
}

func NewAuthHandler(signupUC *authUC.SignupUseCase, loginUC *authUC.LoginUseCase, availabilityUC *authUC.AvailabilityUseCase) *AuthHandler {
	return &AuthHandler{
		signupUseCase:       signupUC,
		loginUseCase:        loginUC,
		availabilityUseCase: availabilityUC,
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for signup", err))
		return
	}

	input := authUC.SignupInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}

	output, err := h.signupUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"access_token": output.AccessToken,
		"account":      ToAccountDTO(output.Account),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for login", err))
		return
	}

	input := authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": output.AccessToken,
		"account":      ToAccountDTO(output.Account),
	})
}

// CheckAvailability answers the signup form's debounced username poll.
func (h *AuthHandler) CheckAvailability(c *gin.Context) {
	username := c.Query("username")

	available, err := h.availabilityUseCase.Execute(c.Request.Context(), username)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":  username,
		"available": available,
	})
}
