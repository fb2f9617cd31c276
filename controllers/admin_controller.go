package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chicknext/chicknext/models"
	"github.com/chicknext/chicknext/utils"
)

// AdminController handles CRUD over administrator accounts, including the
// optional profile image coupled to each row.
type AdminController struct {
	db           *gorm.DB
	store        *utils.UploadStore
	creds        utils.CredentialVerifier
	redirectBase string
}

// NewAdminController creates an AdminController.
func NewAdminController(db *gorm.DB, store *utils.UploadStore, creds utils.CredentialVerifier, redirectBase string) *AdminController {
	return &AdminController{db: db, store: store, creds: creds, redirectBase: redirectBase}
}

// List returns all administrators ordered by id.
func (a *AdminController) List(ctx *gin.Context) {
	var admins []models.Admin
	if err := a.db.Order("adminid").Find(&admins).Error; err != nil {
		utils.Text(ctx, http.StatusInternalServerError, "Error fetching admin data")
		return
	}
	ctx.JSON(http.StatusOK, admins)
}

// Get returns one administrator by id.
func (a *AdminController) Get(ctx *gin.Context) {
	var admin models.Admin
	if err := a.db.First(&admin, "adminid = ?", ctx.Param("adminid")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Text(ctx, http.StatusNotFound, "Admin not found")
			return
		}
		utils.Text(ctx, http.StatusInternalServerError, "Error fetching admin data")
		return
	}
	ctx.JSON(http.StatusOK, admin)
}

// Create inserts an administrator from a multipart form and redirects the
// browser to the admin listing page on the web service.
func (a *AdminController) Create(ctx *gin.Context) {
	hash, err := a.creds.Hash(ctx.PostForm("password"))
	if err != nil {
		utils.Text(ctx, http.StatusInternalServerError, "Error inserting admin")
		return
	}

	admin := models.Admin{
		FirstName:    utils.SanitizeText(ctx.PostForm("firstName")),
		LastName:     utils.SanitizeText(ctx.PostForm("lastName")),
		Username:     utils.SanitizeText(ctx.PostForm("username")),
		PasswordHash: hash,
		Email:        ctx.PostForm("email"),
		Tel:          ctx.PostForm("tel"),
	}

	if fh, err := ctx.FormFile("profileImage"); err == nil {
		name, err := a.store.Save(fh)
		if err != nil {
			utils.Text(ctx, http.StatusInternalServerError, "Error inserting admin")
			return
		}
		admin.ProfileImage = &name
	}

	if err := a.db.Create(&admin).Error; err != nil {
		utils.Text(ctx, http.StatusInternalServerError, "Error inserting admin")
		return
	}
	ctx.Redirect(http.StatusFound, a.redirectBase+"/admin")
}

// Update overwrites an administrator's fields; the stored image reference is
// only touched when a new file is uploaded. The previous image file is left
// behind on this path; only Delete cleans files up.
func (a *AdminController) Update(ctx *gin.Context) {
	hash, err := a.creds.Hash(ctx.PostForm("password"))
	if err != nil {
		utils.Text(ctx, http.StatusInternalServerError, "Error updating admin")
		return
	}

	updates := map[string]interface{}{
		"Fname":      utils.SanitizeText(ctx.PostForm("firstName")),
		"Lname":      utils.SanitizeText(ctx.PostForm("lastName")),
		"username":   utils.SanitizeText(ctx.PostForm("username")),
		"mypassword": hash,
		"email":      ctx.PostForm("email"),
		"tel":        ctx.PostForm("tel"),
	}

	if fh, err := ctx.FormFile("profileImage"); err == nil {
		name, err := a.store.Save(fh)
		if err != nil {
			utils.Text(ctx, http.StatusInternalServerError, "Error updating admin")
			return
		}
		updates["profile_image"] = name
	}

	if err := a.db.Model(&models.Admin{}).Where("adminid = ?", ctx.Param("adminid")).Updates(updates).Error; err != nil {
		utils.Text(ctx, http.StatusInternalServerError, "Error updating admin")
		return
	}
	utils.Text(ctx, http.StatusOK, "Admin updated successfully")
}

// Delete removes an administrator row and best-effort deletes its referenced
// image file. Unlike product deletion this path 404s when the row is gone.
func (a *AdminController) Delete(ctx *gin.Context) {
	id := ctx.Param("adminid")

	var admin models.Admin
	if err := a.db.First(&admin, "adminid = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Text(ctx, http.StatusNotFound, "Admin not found")
			return
		}
		utils.Text(ctx, http.StatusInternalServerError, "Error fetching admin")
		return
	}

	if err := a.db.Delete(&models.Admin{}, "adminid = ?", id).Error; err != nil {
		utils.Text(ctx, http.StatusInternalServerError, "Error deleting admin")
		return
	}

	if admin.ProfileImage != nil && *admin.ProfileImage != "" {
		a.store.Remove(*admin.ProfileImage)
	}
	utils.Text(ctx, http.StatusOK, "Admin and associated image deleted successfully")
}
