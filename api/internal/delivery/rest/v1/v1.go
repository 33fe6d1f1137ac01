package v1

import (
	"payout/api/internal/config"
	"payout/api/internal/infra/nats"
	"payout/api/internal/logger"
	"payout/api/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	services  *service.Services
	db        *gorm.DB
	config    *config.Config
	Natsinfra *nats.NatsInfra
	log       logger.Logger
}

func (h *Handler) InitRoutes(g *gin.RouterGroup) {
	{
		h.initWithdrawalRoutes(g)
		h.initProfileRoutes(g)

		h.initAdminRoutes(g)
	}
}

func NewHandler(services *service.Services, db *gorm.DB, config *config.Config, natsinfra *nats.NatsInfra, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		Natsinfra: natsinfra,
		log:       log,
		services:  services,
		db:        db,
	}
}
