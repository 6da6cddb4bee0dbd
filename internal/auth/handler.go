package auth

import (
	"hotelpos-backend/internal/config"
	"hotelpos-backend/internal/database"
	"hotelpos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	UserID string `json:"userId"`
	PIN    string `json:"pin"`
}

type UserRequest struct {
	Name string          `json:"name"`
	Role models.UserRole `json:"role"`
	PIN  string          `json:"pin"`
}

func validRole(r models.UserRole) bool {
	return r == models.RoleAdmin || r == models.RoleCashier || r == models.RoleKitchen
}

// LoginScreenHandler giriş ekranının kullanıcı listesini döner. Token
// istemez; PIN hash'i asla dışarı çıkmaz.
func LoginScreenHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("name asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar okunamadı")
		}
		out := make([]fiber.Map, 0, len(users))
		for _, u := range users {
			out = append(out, fiber.Map{"id": u.ID, "name": u.Name, "role": u.Role})
		}
		return c.JSON(out)
	}
}

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.UserID == "" || body.PIN == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı ve PIN zorunlu")
		}

		var user models.User
		if err := database.DB.Where("id = ?", body.UserID).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı veya PIN hatalı")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(body.PIN)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı veya PIN hatalı")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":   user.ID,
				"name": user.Name,
				"role": user.Role,
			},
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(CtxUserIDKey).(string)

		var user models.User
		if err := database.DB.Where("id = ?", userID).First(&user).Error; err == nil {
			return c.JSON(fiber.Map{
				"id":   user.ID,
				"name": user.Name,
				"role": user.Role,
			})
		}

		// Kullanıcı silinmişse token içeriğiyle yetinilir
		return c.JSON(fiber.Map{
			"id":   userID,
			"name": c.Locals(CtxUserNameKey),
			"role": c.Locals(CtxUserRoleKey),
		})
	}
}

/* =========================
 * Kullanıcı yönetimi (admin)
 * ========================= */

func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" || len(body.PIN) < 4 {
			return fiber.NewError(fiber.StatusBadRequest, "İsim ve en az 4 haneli PIN zorunlu")
		}
		if !validRole(body.Role) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rol")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.PIN), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "PIN hashlenemedi")
		}
		user := models.User{
			ID:      uuid.NewString(),
			Name:    body.Name,
			Role:    body.Role,
			PinHash: string(hash),
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":   user.ID,
			"name": user.Name,
			"role": user.Role,
		})
	}
}

func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var user models.User
		if err := database.DB.Where("id = ?", id).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		if body.Name != "" {
			user.Name = body.Name
		}
		if body.Role != "" {
			if !validRole(body.Role) {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rol")
			}
			user.Role = body.Role
		}
		if body.PIN != "" {
			if len(body.PIN) < 4 {
				return fiber.NewError(fiber.StatusBadRequest, "PIN en az 4 haneli olmalı")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(body.PIN), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "PIN hashlenemedi")
			}
			user.PinHash = string(hash)
		}

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı güncellenemedi")
		}
		return c.JSON(fiber.Map{
			"id":   user.ID,
			"name": user.Name,
			"role": user.Role,
		})
	}
}

// DeleteUserHandler son admini silmeyi reddeder; sistem kilitlenmemeli.
func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var user models.User
		if err := database.DB.Where("id = ?", id).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		if user.Role == models.RoleAdmin {
			var admins int64
			database.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins)
			if admins <= 1 {
				return fiber.NewError(fiber.StatusConflict, "Son admin silinemez")
			}
		}

		if err := database.DB.Delete(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı silinemedi")
		}
		return c.JSON(fiber.Map{"message": "Kullanıcı silindi"})
	}
}
