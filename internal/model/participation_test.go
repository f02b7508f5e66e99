package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// 状态序号必须严格递增，状态机只能前进不能回退
func TestStageRankOrdering(t *testing.T) {
	require.Less(t, StageRank(ParticipationRegistered), StageRank(ParticipationCheckedIn))
	require.Less(t, StageRank(ParticipationCheckedIn), StageRank(ParticipationCheckedOut))
	require.Less(t, StageRank(ParticipationCheckedOut), StageRank(ParticipationCompleted))
	require.Equal(t, -1, StageRank("unknown"))
}
