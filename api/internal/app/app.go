package app

import (
	"fmt"
	"os"
	"os/signal"
	"payout/api/internal/config"
	"payout/api/internal/delivery"
	"payout/api/internal/infra/nats"
	"payout/api/internal/logger"
	"payout/api/internal/service"
	"syscall"

	"github.com/gin-gonic/gin"
	cors "github.com/rs/cors/wrapper/gin"
	"gorm.io/gorm"
)

type App struct {
	Config    *config.Config
	Db        *gorm.DB
	NatsInfra *nats.NatsInfra
	Log       logger.Logger
}

func (app *App) Start() {

	defer func() {
		// TODO: close logger
		// app.Log.Close()
	}()

	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(cors.Default())

	services := service.NewServices(app.NatsInfra.Ns, app.Db, app.Log, app.Config)

	app.Autostart(services)

	{
		h := delivery.InitHandler(services, app.Db, app.Config, app.NatsInfra, app.Log)

		h.InitAPI(r)
	}

	eChan := make(chan error)
	interrupt := make(chan os.Signal, 1)

	fmt.Println("internal web is starting")

	go func() {
		err := r.Run(app.Config.Api.Ipv4)
		if err != nil {
			eChan <- fmt.Errorf("listen and serve: %w", err)
		}
	}()

	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-eChan:
		app.Log.TemplHTTPError("app fatal error", app.Config.Api.Ipv4, err)
		return
	case <-interrupt:
		return
	}

}

// start autostart services
func (app *App) Autostart(services *service.Services) {

	fmt.Println("Autostart: start notice dispatch")
	services.Notices.StartDispatch()

	fmt.Println("Autostart: start wait delivery receipts")
	services.DeliveryReceipts.StartWaitReceipts()

	fmt.Println("Autostart: start stuck withdrawals sweep")
	services.Sweeper.StartSweep()

}
