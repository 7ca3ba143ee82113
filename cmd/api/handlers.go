package main

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"worklog/internal/attendance"
	"worklog/internal/auth"
	"worklog/internal/config"
	"worklog/internal/queue"
	"worklog/internal/store"
)

type api struct {
	cfg     config.App
	repo    *attendance.Repository
	svc     *attendance.Service
	cache   *store.StatsCache
	q       queue.Queue
	uploads attendance.Uploader
}

func (a *api) register(c *gin.Context) {
	var req struct {
		Email    string  `json:"email" binding:"required,email"`
		Password string  `json:"password" binding:"required"`
		FullName *string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := a.repo.CreateProfile(c.Request.Context(), req.Email, req.FullName, hash)
	if errors.Is(err, attendance.ErrEmailTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed: " + err.Error()})
		return
	}

	a.issueTokens(c, profile, http.StatusCreated)
}

func (a *api) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, hash, err := a.repo.GetProfileByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil || !auth.VerifyPassword(req.Password, hash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	a.issueTokens(c, *profile, http.StatusOK)
}

func (a *api) refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, err := auth.Parse(req.RefreshToken, a.cfg.JWTSigningKey, a.cfg.JWTIssuer)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	active, err := a.repo.RefreshTokenActive(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !active {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token revoked or expired"})
		return
	}

	profile, err := a.repo.GetProfile(c.Request.Context(), claims.Subject)
	if err != nil || profile == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}

	// Rotate: the presented token is revoked once a new pair is issued.
	_ = a.repo.RevokeRefreshToken(c.Request.Context(), req.RefreshToken)
	a.issueTokens(c, *profile, http.StatusOK)
}

func (a *api) logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.repo.RevokeRefreshToken(c.Request.Context(), req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *api) issueTokens(c *gin.Context, profile attendance.Profile, status int) {
	tokens, err := auth.Issue(profile.ID, profile.Role, a.cfg.JWTIssuer, a.cfg.JWTSigningKey, a.cfg.AccessTTL, a.cfg.RefreshTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}
	if err := a.repo.SaveRefreshToken(c.Request.Context(), profile.ID, tokens.RefreshToken, tokens.RefreshExp); err != nil {
		log.Printf("save refresh token failed: %v", err)
	}
	c.JSON(status, gin.H{
		"profile":       profile,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_at":    tokens.AccessExp.Unix(),
	})
}

func (a *api) me(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)
	profile, err := a.repo.GetProfile(c.Request.Context(), claims.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (a *api) status(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)
	checkedIn, err := a.svc.CheckedIn(c.Request.Context(), claims.Subject)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checked_in": checkedIn})
}

func (a *api) myRecords(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)
	records, err := a.svc.Records(c.Request.Context(), claims.Subject)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (a *api) submitAttendance(c *gin.Context) {
	if a.uploads == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}
	claims, _ := auth.ClaimsFrom(c)

	rec, err := a.svc.SubmitAttendance(c.Request.Context(), claims.Subject, screenshotFromForm(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	a.publishRecord(c, rec)
	c.JSON(http.StatusCreated, gin.H{"record": rec, "checked_in": rec.Status == attendance.StatusCheckIn})
}

func (a *api) submitWorkUpdate(c *gin.Context) {
	if a.uploads == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}
	claims, _ := auth.ClaimsFrom(c)

	rec, err := a.svc.SubmitWorkUpdate(c.Request.Context(), claims.Subject, screenshotFromForm(c), c.PostForm("description"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	a.publishRecord(c, rec)
	c.JSON(http.StatusCreated, gin.H{"record": rec})
}

func (a *api) adminEmployees(c *gin.Context) {
	profiles, err := a.repo.ListProfiles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": profiles})
}

func (a *api) adminRecords(c *gin.Context) {
	filter := attendance.RecordFilter{
		EmployeeID: c.Query("employee_id"),
		Date:       c.Query("date"),
	}
	records, err := a.svc.AllRecords(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (a *api) adminStats(c *gin.Context) {
	filter := attendance.RecordFilter{
		EmployeeID: c.Query("employee_id"),
		Date:       c.Query("date"),
	}

	// The worker keeps the unfiltered day view warm; filtered views are
	// computed on demand.
	if filter == (attendance.RecordFilter{}) {
		if stats, ok := a.cache.Get(c.Request.Context(), time.Now()); ok {
			c.JSON(http.StatusOK, gin.H{"stats": stats})
			return
		}
	}

	stats, err := a.svc.Stats(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if filter == (attendance.RecordFilter{}) {
		if err := a.cache.Set(c.Request.Context(), time.Now(), stats); err != nil {
			log.Printf("stats cache set failed: %v", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// publishRecord notifies the worker that a record was created. Failures are
// logged; the submission already succeeded.
func (a *api) publishRecord(c *gin.Context, rec attendance.Record) {
	if err := a.q.Publish(c.Request.Context(), queue.Message{Type: "record", Body: []byte(rec.ID)}); err != nil {
		log.Printf("queue publish failed: %v", err)
	}
}

// screenshotFromForm reads the multipart "screenshot" field. A missing or
// unreadable file yields a zero Screenshot, which the service rejects as a
// validation error before any storage call.
func screenshotFromForm(c *gin.Context) attendance.Screenshot {
	file, header, err := c.Request.FormFile("screenshot")
	if err != nil {
		return attendance.Screenshot{}
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return attendance.Screenshot{}
	}
	return attendance.Screenshot{Filename: header.Filename, Data: data}
}

func writeServiceError(c *gin.Context, err error) {
	var verr attendance.ValidationError
	var uerr *attendance.UploadError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.As(err, &uerr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
