package server

import (
	"fmt"
	"log/slog"
	"time"

	"student-activity-system/config"
	"student-activity-system/internal/global/database"
	"student-activity-system/internal/global/logger"
	"student-activity-system/internal/global/middleware"
	"student-activity-system/internal/global/sentry"
	"student-activity-system/internal/module"
	"student-activity-system/tools"

	"github.com/gin-gonic/gin"
)

var log *slog.Logger

func Init() {
	config.Init()

	// Sentry 在 Logger 之前初始化，slog 的 Sentry handler 依赖 SDK 就绪
	if err := sentry.Init(); err != nil {
		panic(err)
	}
	log = logger.New("Server")

	database.Init()
	database.InitRedis()

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

func Run() {
	gin.SetMode(string(config.Get().Mode))
	r := gin.New()

	switch config.Get().Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Cors())
	// Sentry 中间件在 Recovery 之前，panic 上报后再交由 Recovery 兜底
	r.Use(sentry.Middleware())
	r.Use(middleware.Recovery())

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + config.Get().Prefix))
	}
	defer sentry.Flush(2 * time.Second)

	err := r.Run(config.Get().Host + ":" + config.Get().Port)
	tools.PanicOnErr(err)
}
