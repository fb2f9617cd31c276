package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chicknext/chicknext/models"
	"github.com/chicknext/chicknext/utils"
)

// invalidCredentialsMsg is shared between the no-such-user and wrong-password
// paths so responses cannot be used to enumerate usernames.
const invalidCredentialsMsg = "Invalid username or password."

// passwordMask is what the legacy log_history.pw column receives; plaintext
// credentials are never written anywhere.
const passwordMask = "********"

// AuthController handles the sign-in flow: input validation, awaited
// reCAPTCHA verification, credential check, session issuance, and
// fire-and-forget audit logging.
type AuthController struct {
	db       *gorm.DB
	creds    utils.CredentialVerifier
	sessions *utils.SessionStore
	captcha  *utils.RecaptchaVerifier
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB, creds utils.CredentialVerifier, sessions *utils.SessionStore, captcha *utils.RecaptchaVerifier) *AuthController {
	return &AuthController{db: db, creds: creds, sessions: sessions, captcha: captcha}
}

// SignIn authenticates an administrator and issues a session cookie.
func (a *AuthController) SignIn(ctx *gin.Context) {
	var req struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		Recaptcha string `json:"recaptcha"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ErrorJSON(ctx, http.StatusBadRequest, "Username and password are required.")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.ErrorJSON(ctx, http.StatusBadRequest, "Username and password are required.")
		return
	}
	if req.Recaptcha == "" {
		utils.ErrorJSON(ctx, http.StatusBadRequest, "Please complete the reCAPTCHA")
		return
	}

	// The challenge must be verified before any credential lookup happens.
	ok, err := a.captcha.Verify(ctx.Request.Context(), req.Recaptcha)
	if err != nil {
		utils.Sugar.Errorf("recaptcha verification error: %v", err)
		utils.ErrorJSON(ctx, http.StatusInternalServerError, "An error occurred while verifying reCAPTCHA.")
		return
	}
	if !ok {
		utils.ErrorJSON(ctx, http.StatusBadRequest, "reCAPTCHA verification failed.")
		return
	}

	var admin models.Admin
	if err := a.db.Where("username = ?", req.Username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ErrorJSON(ctx, http.StatusUnauthorized, invalidCredentialsMsg)
			return
		}
		utils.Sugar.Errorf("admin lookup failed: %v", err)
		utils.ErrorJSON(ctx, http.StatusInternalServerError, "An error occurred while processing your request.")
		return
	}

	if !a.creds.Verify(admin.PasswordHash, req.Password) {
		utils.ErrorJSON(ctx, http.StatusUnauthorized, invalidCredentialsMsg)
		return
	}

	token, err := a.sessions.Create(ctx.Request.Context(), admin.Username)
	if err != nil {
		utils.Sugar.Errorf("session creation failed: %v", err)
		utils.ErrorJSON(ctx, http.StatusInternalServerError, "An error occurred while processing your request.")
		return
	}

	ctx.SetCookie("cookie", token, int(a.sessions.TTL().Seconds()), "/", "", false, true)
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    gin.H{"username": admin.Username},
	})

	// Audit after the response is committed; a failure here is logged
	// server-side only and never alters what the client already received.
	go a.recordLogin(admin.Username)
}

func (a *AuthController) recordLogin(username string) {
	record := models.LoginRecord{
		Username:  username,
		Password:  passwordMask,
		SaveLogin: time.Now().Format("2006-01-02 15:04:05"),
	}
	if err := a.db.Create(&record).Error; err != nil {
		utils.Sugar.Errorf("failed to record login for %s: %v", username, err)
		return
	}
	utils.Sugar.Infof("login successful by %s at %s", username, record.SaveLogin)
}
