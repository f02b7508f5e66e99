package scan

import (
	"time"

	"student-activity-system/internal/model"

	"github.com/gin-gonic/gin"
)

// 以下均为纯函数，只依赖传入的数据做判定，方便单测

// activityStatusError 签到只允许 ongoing 状态的活动
// 状态码固定为 ACTIVITY_NOT_ONGOING，提示语区分具体状态
func activityStatusError(act *model.Activity) *ScanError {
	if act.Status == model.ActivityStatusOngoing {
		return nil
	}
	var reason string
	switch act.Status {
	case model.ActivityStatusDraft:
		reason = "活动尚未发布，无法签到"
	case model.ActivityStatusPublished:
		reason = "活动已发布但尚未开始进行，无法签到"
	case model.ActivityStatusCompleted:
		reason = "活动已结束，无法签到"
	case model.ActivityStatusCancelled:
		reason = "活动已取消，无法签到"
	default:
		reason = "活动当前状态不允许签到"
	}
	return newScanError(CodeActivityNotOngoing, reason).
		WithDetails(gin.H{"activity_status": act.Status})
}

// activityWindowError 校验今天是否落在活动日期窗口内（含两端）
func activityWindowError(act *model.Activity, today int64) *ScanError {
	if act.StartDate > 0 && today < act.StartDate {
		return newScanError(CodeActivityNotStarted, "活动日期未到，无法签到").
			WithDetails(gin.H{"start_date": act.StartDate})
	}
	if act.EndDate > 0 && today > act.EndDate {
		return newScanError(CodeActivityExpired, "活动日期已过，无法签到").
			WithDetails(gin.H{"end_date": act.EndDate})
	}
	return nil
}

// userStatusError 学生账号必须是 active 状态
func userStatusError(u *model.User) *ScanError {
	if u.Status == model.UserStatusActive {
		return nil
	}
	var reason string
	switch u.Status {
	case model.UserStatusInactive:
		reason = "学生账号未激活"
	case model.UserStatusSuspended:
		reason = "学生账号已被停用"
	default:
		reason = "学生账号状态异常"
	}
	return newScanError(CodeStudentAccountInactive, reason).
		WithDetails(gin.H{"user_status": u.Status})
}

// isEligible 资格判定：校级活动或未限定组织时无条件通过
// 院级活动要求学生所属组织在限定列表内
func isEligible(act *model.Activity, orgID uint) bool {
	if act.Level != model.ActivityLevelFaculty || len(act.EligibleOrgs) == 0 {
		return true
	}
	for _, id := range act.EligibleOrgs {
		if id == orgID {
			return true
		}
	}
	return false
}

// hasCapacity 容量判定：上限为0表示不限制
// currentCheckedIn 是判定时刻的 checked_in 计数，先查后写允许轻微超售
func hasCapacity(act *model.Activity, currentCheckedIn int64) bool {
	if act.MaxParticipants == 0 {
		return true
	}
	return currentCheckedIn < int64(act.MaxParticipants)
}

// duplicateCheckInError 已有参与记录时判定签到是否允许
// 阶段序号不超过 registered 的记录才可推进；checked_in 是无害重复，
// checked_out/completed 违反单向流程
func duplicateCheckInError(p *model.Participation) *ScanError {
	if model.StageRank(p.Status) <= model.StageRank(model.ParticipationRegistered) {
		return nil
	}
	switch p.Status {
	case model.ParticipationCheckedIn:
		details := gin.H{}
		if p.CheckedInAt != nil {
			details["previous_check_in"] = p.CheckedInAt.Format(time.RFC3339)
		}
		return newScanError(CodeAlreadyCheckedIn, "该学生已签到，无需重复操作").
			WithDetails(details)
	case model.ParticipationCheckedOut:
		return newScanError(CodeAlreadyCheckedOut, "该学生已签退，签退后不允许再次签到")
	case model.ParticipationCompleted:
		return newScanError(CodeAlreadyCompleted, "该学生的参与已结算，不允许再次签到")
	}
	return nil
}

// dateInt 把时间转换为 yyyymmdd 整数，与活动日期字段同构
func dateInt(t time.Time) int64 {
	y, m, d := t.Date()
	return int64(y)*10000 + int64(m)*100 + int64(d)
}
