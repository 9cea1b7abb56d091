package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"vaultapi/internal/http/middleware"
	"vaultapi/internal/model"
	"vaultapi/internal/service"
)

type cardPayload struct {
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVC        string `json:"cvc"`
}

type registerRequest struct {
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Tier     model.Tier   `json:"tier"`
	CardData *cardPayload `json:"cardData"`
}

// Register handles POST /api/auth/register.
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		in := service.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Tier:     req.Tier,
			IP:       c.IP(),
		}
		if req.CardData != nil {
			in.Card = &service.CardDetails{
				Number: req.CardData.CardNumber,
				Expiry: req.CardData.Expiry,
				CVC:    req.CardData.CVC,
			}
		}

		if err := svc.Register(c.UserContext(), in); err != nil {
			switch {
			case errors.Is(err, service.ErrEmailTaken):
				return writeError(c, fiber.StatusConflict, "EMAIL_TAKEN", "email is already registered")
			case errors.Is(err, service.ErrNameRequired),
				errors.Is(err, service.ErrEmailRequired),
				errors.Is(err, service.ErrPasswordTooShort),
				errors.Is(err, service.ErrInvalidTier):
				return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", err.Error())
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"msg":     "Account created. You may now sign in.",
		})
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		token, err := svc.Login(c.UserContext(), req.Email, req.Password, c.IP())
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.JSON(fiber.Map{"success": true, "token": token})
	}
}

type meResponse struct {
	Success     bool               `json:"success"`
	User        *model.User        `json:"user"`
	Plan        string             `json:"plan"`
	RenewalDate string             `json:"renewal_date"`
	Stats       service.UsageStats `json:"stats"`
}

// Me handles GET /api/auth/me: profile plus computed storage stats.
func Me(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, err := svc.Profile(c.UserContext(), middleware.UserID(c))
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "user not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.JSON(meResponse{
			Success:     true,
			User:        profile.User,
			Plan:        profile.Plan,
			RenewalDate: profile.RenewalDate.Format("Jan 2, 2006"),
			Stats:       profile.Stats,
		})
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword handles PUT /api/auth/change-password.
func ChangePassword(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req changePasswordRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		err := svc.ChangePassword(c.UserContext(), middleware.UserID(c), req.CurrentPassword, req.NewPassword)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidCredentials):
				return writeError(c, fiber.StatusBadRequest, "INVALID_PASSWORD", "current password is incorrect")
			case errors.Is(err, service.ErrPasswordTooShort):
				return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", err.Error())
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		return c.JSON(fiber.Map{"success": true, "msg": "Password updated successfully."})
	}
}

type emailRequest struct {
	Email string `json:"email"`
}

// VerifyEmail handles POST /api/auth/verify-email: it begins the recovery
// flow by issuing a mailed reset token. The response is the same whether or
// not the account exists.
func VerifyEmail(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req emailRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		if err := svc.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"msg":     "If that account exists, a reset link is on its way.",
		})
	}
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword handles POST /api/auth/reset-password. A valid mailed token
// is required; possessing only the email is not enough.
func ResetPassword(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req resetPasswordRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		err := svc.ResetPassword(c.UserContext(), req.Email, req.Token, req.NewPassword)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidResetToken):
				return writeError(c, fiber.StatusBadRequest, "INVALID_RESET_TOKEN", "invalid or expired reset token")
			case errors.Is(err, service.ErrPasswordTooShort):
				return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", err.Error())
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		return c.JSON(fiber.Map{"success": true, "msg": "Password has been reset."})
	}
}

type upgradePlanRequest struct {
	Plan model.Tier `json:"plan"`
}

// UpgradePlan handles PUT /api/auth/upgrade-plan.
func UpgradePlan(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req upgradePlanRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		u, err := svc.UpgradePlan(c.UserContext(), middleware.UserID(c), req.Plan)
		if err != nil {
			if errors.Is(err, service.ErrInvalidTier) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_PLAN", "unknown plan")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.JSON(fiber.Map{"success": true, "user": u})
	}
}
