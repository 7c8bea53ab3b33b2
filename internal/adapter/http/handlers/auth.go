package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
	"taskboard/pkg/translator"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.RegisterRequest
	if _, ok := decodeBody(c, &req, lang); !ok {
		return
	}

	input, err := validation.BuildRegisterInput(req)
	if err != nil {
		respondValidationError(c, err, lang)
		return
	}

	session, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			respondValidationError(c, validation.EmailTaken(), lang)
			return
		}
		zap.L().Error("failed to register user", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailRegister, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message: translator.Localize(lang, apierrors.MsgRegistered, nil),
		User:    mapper.ToUserItem(session.User),
		Token:   session.Token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.LoginRequest
	if _, ok := decodeBody(c, &req, lang); !ok {
		return
	}

	if err := validation.CheckLogin(req); err != nil {
		respondValidationError(c, err, lang)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidCredentials, lang),
			)
			return
		}
		zap.L().Error("failed to log in", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailLogin, lang),
		)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Message: translator.Localize(lang, apierrors.MsgLoggedIn, nil),
		User:    mapper.ToUserItem(session.User),
		Token:   session.Token,
	})
}

// Logout is stateless: tokens are not revoked server-side and simply expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: translator.Localize(middleware.GetLang(c), apierrors.MsgLoggedOut, nil),
	})
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	lang := middleware.GetLang(c)
	authenticated, _ := middleware.CurrentUser(c)

	user, err := h.authService.CurrentUser(c.Request.Context(), authenticated.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthenticated, lang),
			)
			return
		}
		zap.L().Error("failed to load current user", zap.Uint64("user_id", authenticated.ID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCurrentUser, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserItem(user))
}
