package stats

import (
	"log/slog"

	"student-activity-system/internal/global/logger"
)

var log *slog.Logger

type ModuleStats struct{}

func (s *ModuleStats) GetName() string {
	return "Stats"
}

func (s *ModuleStats) Init() {
	log = logger.New("Stats")
}
