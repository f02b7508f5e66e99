package scan

import (
	"testing"
	"time"

	"student-activity-system/internal/model"

	"github.com/stretchr/testify/require"
)

func TestActivityStatusGate(t *testing.T) {
	require.Nil(t, activityStatusError(&model.Activity{Status: model.ActivityStatusOngoing}))

	for _, status := range []string{
		model.ActivityStatusDraft,
		model.ActivityStatusPublished,
		model.ActivityStatusCompleted,
		model.ActivityStatusCancelled,
	} {
		scanErr := activityStatusError(&model.Activity{Status: status})
		require.NotNil(t, scanErr, "status=%s", status)
		require.Equal(t, CodeActivityNotOngoing, scanErr.Code)
		require.Equal(t, CategoryRestricted, scanErr.Category())
		require.Equal(t, status, scanErr.Details["activity_status"])
	}
}

func TestActivityWindowGate(t *testing.T) {
	act := &model.Activity{StartDate: 20250310, EndDate: 20250312}

	require.Nil(t, activityWindowError(act, 20250310), "首日应在窗口内")
	require.Nil(t, activityWindowError(act, 20250312), "末日应在窗口内")

	early := activityWindowError(act, 20250309)
	require.NotNil(t, early)
	require.Equal(t, CodeActivityNotStarted, early.Code)

	late := activityWindowError(act, 20250313)
	require.NotNil(t, late)
	require.Equal(t, CodeActivityExpired, late.Code)
}

func TestUserStatusGate(t *testing.T) {
	require.Nil(t, userStatusError(&model.User{Status: model.UserStatusActive}))

	suspended := userStatusError(&model.User{Status: model.UserStatusSuspended})
	require.NotNil(t, suspended)
	require.Equal(t, CodeStudentAccountInactive, suspended.Code)
	require.Equal(t, model.UserStatusSuspended, suspended.Details["user_status"])
}

func TestEligibilityBoundary(t *testing.T) {
	faculty := &model.Activity{
		Level:        model.ActivityLevelFaculty,
		EligibleOrgs: []uint{7},
	}
	require.True(t, isEligible(faculty, 7), "组织在限定列表内应通过")
	require.False(t, isEligible(faculty, 8), "组织不在限定列表内应拒绝")

	university := &model.Activity{Level: model.ActivityLevelUniversity, EligibleOrgs: []uint{7}}
	require.True(t, isEligible(university, 8), "校级活动不限组织")

	open := &model.Activity{Level: model.ActivityLevelFaculty}
	require.True(t, isEligible(open, 0), "未限定组织的院级活动不设限")
}

func TestCapacityBoundary(t *testing.T) {
	unlimited := &model.Activity{MaxParticipants: 0}
	require.True(t, hasCapacity(unlimited, 100000))

	capped := &model.Activity{MaxParticipants: 3}
	require.True(t, hasCapacity(capped, 2))
	require.False(t, hasCapacity(capped, 3), "满员后不再放行")
	require.False(t, hasCapacity(capped, 4))
}

func TestDuplicateCheckInGate(t *testing.T) {
	checkedInAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	dup := duplicateCheckInError(&model.Participation{
		Status:      model.ParticipationCheckedIn,
		CheckedInAt: &checkedInAt,
	})
	require.NotNil(t, dup)
	require.Equal(t, CodeAlreadyCheckedIn, dup.Code)
	require.Equal(t, CategoryAlreadyDone, dup.Category())
	require.Equal(t, checkedInAt.Format(time.RFC3339), dup.Details["previous_check_in"])

	out := duplicateCheckInError(&model.Participation{Status: model.ParticipationCheckedOut})
	require.NotNil(t, out)
	require.Equal(t, CodeAlreadyCheckedOut, out.Code)
	require.Equal(t, CategoryFlowViolation, out.Category(), "签退后再签到是流程违规")

	done := duplicateCheckInError(&model.Participation{Status: model.ParticipationCompleted})
	require.NotNil(t, done)
	require.Equal(t, CodeAlreadyCompleted, done.Code)
	require.Equal(t, CategoryFlowViolation, done.Category())

	require.Nil(t, duplicateCheckInError(&model.Participation{Status: model.ParticipationRegistered}),
		"已报名未签到不算重复")
}

func TestCategoryMappingClosed(t *testing.T) {
	// 每个状态码只属于一个分类，未知码按内部错误处理
	require.Equal(t, CategorySuccess, CategoryOf(CodeCheckInSuccess))
	require.Equal(t, CategoryAlreadyDone, CategoryOf(CodeRepeatedDuplicate))
	require.Equal(t, CategoryRestricted, CategoryOf(CodeMaxParticipantsReached))
	require.Equal(t, CategoryRestricted, CategoryOf(CodeQRExpired))
	require.Equal(t, CategoryFlowViolation, CategoryOf(CodeAlreadyCheckedOut))
	require.Equal(t, CategoryError, CategoryOf(CodeQRInvalid))
	require.Equal(t, CategoryError, CategoryOf("SOMETHING_UNKNOWN"))
}

func TestDateInt(t *testing.T) {
	require.Equal(t, int64(20250310), dateInt(time.Date(2025, 3, 10, 23, 59, 0, 0, time.Local)))
	require.Equal(t, int64(20251201), dateInt(time.Date(2025, 12, 1, 0, 0, 0, 0, time.Local)))
}
