package qrtoken

import (
	"log/slog"

	"student-activity-system/internal/global/logger"
)

var log *slog.Logger

type ModuleQRToken struct{}

func (q *ModuleQRToken) GetName() string {
	return "QRToken"
}

func (q *ModuleQRToken) Init() {
	log = logger.New("QRToken")
}
