package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/medinatrips/medina-api/initializers"
	"github.com/medinatrips/medina-api/models"
	"gorm.io/gorm"
)

func sanitizeUser(user models.User) models.User {
	user.Password = ""
	return user
}

func GetUsers(ctx *gin.Context) {
	var users []models.User
	if err := initializers.DB.Order("username").Find(&users).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch users", err)
		return
	}
	for i := range users {
		users[i] = sanitizeUser(users[i])
	}
	ctx.JSON(http.StatusOK, gin.H{"users": users})
}

func GetUserByID(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid user id", err)
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "User not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch user", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": sanitizeUser(user)})
}

// CreateUser lets an admin provision an account with an explicit role.
func CreateUser(ctx *gin.Context) {
	var user models.User
	if err := ctx.ShouldBindJSON(&user); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if user.Role != "admin" && user.Role != "staff" {
		respondWithError(ctx, http.StatusBadRequest, "Role must be admin or staff", nil)
		return
	}

	exists, err := checkUserExists(user.Email, user.Username)
	if err != nil {
		log.Println("Database error during user check:", err)
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, nil)
		return
	}
	if exists {
		respondWithError(ctx, http.StatusBadRequest, msgUserAlreadyExists, nil)
		return
	}

	hashedPassword, err := hashPassword(user.Password)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgFailedToHashPassword, err)
		return
	}
	user.Password = hashedPassword

	if err := initializers.DB.Create(&user).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"user": sanitizeUser(user)})
}

func UpdateUser(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid user id", err)
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "User not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch user", err)
		}
		return
	}

	var input models.User
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updates := map[string]any{}
	if input.Fullname != "" {
		updates["fullname"] = input.Fullname
	}
	if input.Email != "" {
		updates["email"] = input.Email
	}
	if input.Phone != "" {
		updates["phone"] = input.Phone
	}
	if input.Role != "" {
		if input.Role != "admin" && input.Role != "staff" {
			respondWithError(ctx, http.StatusBadRequest, "Role must be admin or staff", nil)
			return
		}
		updates["role"] = input.Role
	}
	if input.Password != "" {
		hashedPassword, err := hashPassword(input.Password)
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, msgFailedToHashPassword, err)
			return
		}
		updates["password"] = hashedPassword
	}

	if len(updates) > 0 {
		if err := initializers.DB.Model(&user).Updates(updates).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to update user", err)
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"user": sanitizeUser(user)})
}

func DeleteUser(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid user id", err)
		return
	}

	if result := initializers.DB.Delete(&models.User{}, userID); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete user", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully."})
}
