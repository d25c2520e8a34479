package auth

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/auth/model/dto"
	"hotelier/internal/domains/auth/service"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/validator"
	"hotelier/transport/http/request"
	"hotelier/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Post("/logout", handler.Logout)
		r.Post("/change-password", handler.ChangePassword)
	})
}

// fail records err on scope and writes it. Client errors are not logged as errors.
// Register creates an admin or operator account.
// @Summary Register a new operator account
// @Description Admin only. Creates an admin or operator account.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Data[dto.RegisterResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/register [post]
// @Security BearerAuth
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req, err := request.Body[dto.RegisterRequest](r)
	if err != nil {
		response.Fail(w, scope, err, "register")

		return
	}

	res, err := handler.service.Register(ctx, req)
	if err != nil {
		response.Fail(w, scope, err, "register")

		return
	}

	log.Info().Str("email", req.NormalizedEmail()).Str("level", req.Level).Msg("account registered")
	response.WithJSON(w, http.StatusCreated, res)
}

// Login exchanges credentials for a JWT pair.
// @Summary Login
// @Description Checks the credentials against the user record and returns a JWT pair.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.LoginResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req, err := request.Body[dto.LoginRequest](r)
	if err != nil {
		response.Fail(w, scope, err, "login")

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		response.Fail(w, scope, err, "login")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// RefreshToken rotates a token pair.
// @Summary Refresh token
// @Description Exchanges a refresh token for a new pair. The used refresh token is revoked.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Data[dto.RefreshTokenResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	req, err := request.Body[dto.RefreshTokenRequest](r)
	if err != nil {
		response.Fail(w, scope, err, "refresh token")

		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		response.Fail(w, scope, err, "refresh token")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Logout revokes the current session.
// @Summary Logout
// @Description Revokes the access token (and the refresh token when given) and drops the cached hotel settings.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LogoutRequest false "Logout Request"
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/logout [post]
// @Security BearerAuth
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	req := dto.LogoutRequest{}

	if r.ContentLength > 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			response.Fail(w, scope, err, "logout")

			return
		}
	}

	if err := handler.service.Logout(ctx, req); err != nil {
		response.Fail(w, scope, err, "logout")

		return
	}

	response.WithMessage(w, http.StatusOK, "Logged out successfully")
}

// ChangePassword replaces the caller's password after checking the current one.
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/change-password [post]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == "" {
		response.Fail(w, scope, failure.Unauthorized("missing session"), "change password")

		return
	}

	req, err := request.Body[dto.ChangePasswordRequest](r)
	if err != nil {
		response.Fail(w, scope, err, "change password")

		return
	}

	if err = handler.service.ChangePassword(ctx, req, userID); err != nil {
		response.Fail(w, scope, err, "change password")

		return
	}

	log.Info().Str("user_id", userID).Msg("password changed")
	response.WithMessage(w, http.StatusOK, "Password changed successfully")
}
