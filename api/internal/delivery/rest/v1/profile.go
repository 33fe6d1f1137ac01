package v1

import (
	"errors"
	"net/http"
	"payout/api/internal/domain"
	"payout/api/internal/logger"

	"github.com/gin-gonic/gin"
)

func (h *Handler) profileInfo(c *gin.Context) {
	var errid = logger.GenErrorId()

	userId := sessionUserId(c)
	if userId == "" {
		responseErr(c, http.StatusUnauthorized, domain.ErrMsgUnauthenticated, "")
		return
	}

	profile, err := h.services.Profiles.Find(userId)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			responseErr(c, http.StatusNotFound, domain.ErrMsgProfileNotFound, "")
			return
		}
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.Error("find profile error: "+err.Error(), logger.LS_WITHDRAWALS, false)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responseProfile{
		Error: false,
		Profile: domain.ResponseProfileInfo{
			UserId:   profile.UserID,
			Username: profile.Username,
			Email:    profile.Email,
			Balance:  profile.Balance.String(),
		},
	})
}

func (h *Handler) initProfileRoutes(g *gin.RouterGroup) {
	g.GET("/profile", h.sessionMiddleware(), h.profileInfo)
}
