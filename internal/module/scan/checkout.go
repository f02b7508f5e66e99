package scan

import (
	"time"

	"student-activity-system/config"
	"student-activity-system/internal/model"
	"student-activity-system/internal/module/qrtoken"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CheckOut 签退入口：checked_in → checked_out
// 签退不再复核资格与容量，这些闸门只在准入时生效
func CheckOut(c *gin.Context) {
	activityID, ok := parseActivityID(c)
	if !ok {
		return
	}

	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		scanFail(c, newScanError(CodeValidationError, "缺少活动或二维码数据"))
		return
	}

	now := time.Now()

	claim, err := qrtoken.Decode(req.QRData, now)
	if err != nil {
		if errors.Is(err, qrtoken.ErrExpired) {
			scanFail(c, newScanError(CodeQRExpired, "二维码已过期，请刷新后重试"))
			return
		}
		scanFail(c, newScanError(CodeQRInvalid, "二维码无效或已损坏"))
		return
	}

	db := ledgerDB()

	var act model.Activity
	if err := db.First(&act, "id = ?", activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			scanFail(c, newScanError(CodeActivityNotFound, "指定的活动不存在"))
			return
		}
		failInternal(c, "查询活动失败", err)
		return
	}

	// 签退窗口比签到宽：活动结束后仍允许补签退
	if act.Status != model.ActivityStatusOngoing && act.Status != model.ActivityStatusCompleted {
		scanFail(c, newScanError(CodeInvalidCheckoutStatus, "活动当前状态不允许签退").
			WithDetails(gin.H{"activity_status": act.Status}))
		return
	}

	var u model.User
	if err := db.First(&u, "student_id = ?", claim.UID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			scanFail(c, newScanError(CodeStudentNotFound, "系统中不存在该学生"))
			return
		}
		failInternal(c, "查询学生失败", err)
		return
	}
	if scanErr := userStatusError(&u); scanErr != nil {
		scanFail(c, scanErr)
		return
	}

	allowDirect := config.Get().Scan.AllowDirectCheckout

	p, outcome, scanErr, err := applyCheckOut(db, act.ID, u.StudentID, now, allowDirect)
	if err != nil {
		failInternal(c, "签退写入失败", err)
		return
	}
	if scanErr != nil {
		scanFail(c, scanErr)
		return
	}

	data := gin.H{
		"user_name":            u.DisplayName(),
		"student_id":           u.StudentID,
		"participation_status": p.Status,
		"activity_title":       act.Title,
	}
	if p.CheckedOutAt != nil {
		data["checked_out_at"] = p.CheckedOutAt.Format(time.RFC3339)
	}
	if p.CheckedInAt != nil {
		data["previous_check_in"] = p.CheckedInAt.Format(time.RFC3339)
	}

	switch outcome {
	case checkOutDuplicate:
		// 重复签退按轻提示处理，返回原有时间戳，未写入任何数据
		if bumpDuplicate(c.Request.Context(), act.ID, u.StudentID) {
			scanFail(c, newScanError(CodeRepeatedDuplicate, "该学生已多次重复扫码，请确认操作").
				WithDetails(gin.H{"checked_out_at": data["checked_out_at"]}))
			return
		}
		data["is_duplicate"] = true
		scanOK(c, CodeCheckOutSuccess, "签退成功（此前已签退）", data)
		return
	case checkOutDirect:
		data["is_direct_checkout"] = true
		clearDuplicate(c.Request.Context(), act.ID, u.StudentID)
		log.Info("直接签退成功",
			"activity_id", act.ID,
			"student_id", u.StudentID)
		scanOK(c, CodeCheckOutSuccess, "签退成功（未经签到）", data)
		return
	}

	clearDuplicate(c.Request.Context(), act.ID, u.StudentID)

	log.Info("签退成功",
		"activity_id", act.ID,
		"student_id", u.StudentID)

	scanOK(c, CodeCheckOutSuccess, "签退成功", data)
}
