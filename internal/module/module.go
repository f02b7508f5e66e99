package module

import (
	"student-activity-system/internal/module/activity"
	"student-activity-system/internal/module/ping"
	"student-activity-system/internal/module/qrtoken"
	"student-activity-system/internal/module/scan"
	"student-activity-system/internal/module/stats"
	"student-activity-system/internal/module/user"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&user.ModuleUser{},
		&ping.ModulePing{},
		&activity.ModuleActivity{},
		&qrtoken.ModuleQRToken{},
		&scan.ModuleScan{},
		&stats.ModuleStats{},
	})
}
