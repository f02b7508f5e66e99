package scan

import (
	"log/slog"

	"student-activity-system/internal/global/logger"
)

var log *slog.Logger

type ModuleScan struct{}

func (s *ModuleScan) GetName() string {
	return "Scan"
}

func (s *ModuleScan) Init() {
	log = logger.New("Scan")
}
