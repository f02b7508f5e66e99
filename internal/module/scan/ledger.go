package scan

import (
	"time"

	"student-activity-system/internal/global/database"
	"student-activity-system/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 参与台账：唯一持有参与记录状态机的写入权
// 同一 (activity_id, user_id) 上的查找与写入在一个事务内完成，
// 行锁加唯一索引保证并发扫码时状态只会单向前进

// applyCheckIn 原子地创建或推进参与记录到 checked_in
// 返回值 created 表示是否新建了记录；scanErr 非空表示业务拒绝（事务内未写入）
func applyCheckIn(db *gorm.DB, activityID uint, studentID string, now time.Time) (p *model.Participation, created bool, scanErr *ScanError, err error) {
	err = db.Transaction(func(tx *gorm.DB) error {
		var existing model.Participation
		findErr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("activity_id = ? AND user_id = ?", activityID, studentID).
			First(&existing).Error

		switch {
		case findErr == nil:
			// 已有记录，事务内复核状态再决定是否推进
			if dup := duplicateCheckInError(&existing); dup != nil {
				scanErr = dup
				p = &existing
				return nil
			}
			// registered → checked_in，条件更新防止锁外竞争
			res := tx.Model(&model.Participation{}).
				Where("id = ? AND status = ?", existing.ID, model.ParticipationRegistered).
				Updates(map[string]any{
					"status":        model.ParticipationCheckedIn,
					"checked_in_at": now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errors.New("participation status changed concurrently")
			}
			existing.Status = model.ParticipationCheckedIn
			existing.CheckedInAt = &now
			p = &existing
			return nil

		case errors.Is(findErr, gorm.ErrRecordNotFound):
			// 无记录，签到时直接创建
			fresh := model.Participation{
				ActivityID:   activityID,
				UserID:       studentID,
				Status:       model.ParticipationCheckedIn,
				RegisteredAt: &now,
				CheckedInAt:  &now,
			}
			if createErr := tx.Create(&fresh).Error; createErr != nil {
				if errors.Is(createErr, gorm.ErrDuplicatedKey) {
					// 并发扫码抢先创建了记录，按重复处理
					var raced model.Participation
					if readErr := tx.Where("activity_id = ? AND user_id = ?", activityID, studentID).
						First(&raced).Error; readErr != nil {
						return readErr
					}
					scanErr = duplicateCheckInError(&raced)
					if scanErr == nil {
						scanErr = newScanError(CodeAlreadyCheckedIn, "该学生已签到，无需重复操作")
					}
					p = &raced
					return nil
				}
				return createErr
			}
			p = &fresh
			created = true
			return nil

		default:
			return findErr
		}
	})
	return
}

// checkOutOutcome 签退事务的结果种类
type checkOutOutcome int

const (
	checkOutApplied checkOutOutcome = iota // 正常 checked_in → checked_out
	checkOutDuplicate                      // 已签退，无害重复，未写入
	checkOutDirect                         // 宽松模式下未签到直接签退（registered 或无记录）
)

// applyCheckOut 原子地推进参与记录到 checked_out
// 严格模式下仅 checked_in 可签退；allowDirect 为 true 时开放
// registered|<无记录> → checked_out 的宽松转移，不补 checked_in_at
func applyCheckOut(db *gorm.DB, activityID uint, studentID string, now time.Time, allowDirect bool) (p *model.Participation, outcome checkOutOutcome, scanErr *ScanError, err error) {
	err = db.Transaction(func(tx *gorm.DB) error {
		var existing model.Participation
		findErr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("activity_id = ? AND user_id = ?", activityID, studentID).
			First(&existing).Error

		switch {
		case findErr == nil:
			switch existing.Status {
			case model.ParticipationCheckedOut:
				// 重复签退按无害处理，返回原时间戳，不写入
				outcome = checkOutDuplicate
				p = &existing
				return nil
			case model.ParticipationCompleted:
				scanErr = newScanError(CodeAlreadyCompleted, "该学生的参与已结算，无法签退")
				p = &existing
				return nil
			case model.ParticipationRegistered:
				// 已报名未签到走与无记录相同的宽松闸门
				if !allowDirect {
					scanErr = newScanError(CodeNotCheckedIn, "该学生已报名但未签到，无法签退")
					return nil
				}
			}
			// checked_in → checked_out（宽松模式下也允许 registered → checked_out），
			// checked_in_at 保持不变，条件更新防止锁外竞争
			res := tx.Model(&model.Participation{}).
				Where("id = ? AND status = ?", existing.ID, existing.Status).
				Updates(map[string]any{
					"status":         model.ParticipationCheckedOut,
					"checked_out_at": now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errors.New("participation status changed concurrently")
			}
			if existing.Status == model.ParticipationRegistered {
				outcome = checkOutDirect
			} else {
				outcome = checkOutApplied
			}
			existing.Status = model.ParticipationCheckedOut
			existing.CheckedOutAt = &now
			p = &existing
			return nil

		case errors.Is(findErr, gorm.ErrRecordNotFound):
			if !allowDirect {
				scanErr = newScanError(CodeNotCheckedIn, "该学生未签到，无法签退")
				return nil
			}
			// 宽松模式：<无记录> → checked_out，不补 checked_in_at
			fresh := model.Participation{
				ActivityID:   activityID,
				UserID:       studentID,
				Status:       model.ParticipationCheckedOut,
				RegisteredAt: &now,
				CheckedOutAt: &now,
			}
			if createErr := tx.Create(&fresh).Error; createErr != nil {
				if errors.Is(createErr, gorm.ErrDuplicatedKey) {
					var raced model.Participation
					if readErr := tx.Where("activity_id = ? AND user_id = ?", activityID, studentID).
						First(&raced).Error; readErr != nil {
						return readErr
					}
					outcome = checkOutDuplicate
					p = &raced
					return nil
				}
				return createErr
			}
			p = &fresh
			outcome = checkOutDirect
			return nil

		default:
			return findErr
		}
	})
	return
}

// countCheckedIn 统计活动当前 checked_in 人数
// 放在写事务之外读取，容量是软限制（见容量判定）
func countCheckedIn(db *gorm.DB, activityID uint) (int64, error) {
	var count int64
	err := db.Model(&model.Participation{}).
		Where("activity_id = ? AND status = ?", activityID, model.ParticipationCheckedIn).
		Count(&count).Error
	return count, err
}

// loadParticipation 读取当前参与记录，无记录时返回 nil
func loadParticipation(db *gorm.DB, activityID uint, studentID string) (*model.Participation, error) {
	var p model.Participation
	err := db.Where("activity_id = ? AND user_id = ?", activityID, studentID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ledgerDB 默认使用全局连接，便于测试替换
func ledgerDB() *gorm.DB {
	return database.DB
}
