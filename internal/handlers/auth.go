package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"urbexblog/internal/apperr"
	"urbexblog/internal/logger"
	"urbexblog/internal/services"
	helpers "urbexblog/internal/utils/helpres"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login godoc
// @Summary Вход администратора
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Пароль администратора"
// @Success 200 {object} loginResponse
// @Failure 400 {string} string "Не указан пароль"
// @Failure 401 {string} string "Неверные учётные данные"
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger.Log.Info("Запрос на вход администратора")
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("Невалидный JSON при входе", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Missing password")
		return
	}

	token, err := h.authService.IssueToken(req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidInput):
			helpers.Error(w, http.StatusBadRequest, "Missing password")
		case errors.Is(err, apperr.ErrInvalidCredentials):
			helpers.Error(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			logger.Log.Error("Ошибка выдачи токена", zap.Error(err))
			helpers.Error(w, http.StatusInternalServerError, "Internal error")
		}
		return
	}

	helpers.JSON(w, http.StatusOK, loginResponse{Token: token})
}
