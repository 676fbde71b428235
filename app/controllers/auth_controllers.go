package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/bloom/app/services"
	"github.com/shashiranjanraj/bloom/pkg/bind"
	"github.com/shashiranjanraj/bloom/pkg/middleware"
	"github.com/shashiranjanraj/bloom/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

// Register handles POST /api/auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.service.Register(in)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			response.Error(w, http.StatusConflict, "email already registered")
			return
		}
		response.Error(w, http.StatusInternalServerError, "registration failed")
		return
	}

	response.Created(w, map[string]interface{}{"user": user, "token": token})
}

// Login handles POST /api/auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.service.Login(in.Email, in.Password)
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	response.Success(w, map[string]interface{}{"user": user, "token": token})
}

// Me handles GET /api/auth/me.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	user, err := c.service.Profile(userID)
	if err != nil {
		response.NotFound(w)
		return
	}
	response.Success(w, user)
}

// UpdateProfile handles PUT /api/auth/me.
func (c *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.UpdateProfileInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.UpdateProfile(userID, in)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "profile update failed")
		return
	}
	response.Success(w, user)
}
