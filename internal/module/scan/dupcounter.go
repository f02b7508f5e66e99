package scan

import (
	"context"
	"fmt"
	"time"

	"student-activity-system/config"
	"student-activity-system/internal/global/database"
)

// dupWindow 重复扫码计数的时间窗口
const dupWindow = 10 * time.Minute

// bumpDuplicate 累计同一 (活动, 学生) 的连续重复扫码次数
// 达到配置阈值时返回 true，提示操作端升级反馈
// Redis 不可用时静默降级，始终返回 false
func bumpDuplicate(ctx context.Context, activityID uint, studentID string) bool {
	threshold := config.Get().Scan.DuplicateAlertThreshold
	rdb := database.RDB
	if rdb == nil || threshold <= 0 {
		return false
	}
	key := fmt.Sprintf("scan:dup:%d:%s", activityID, studentID)
	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false
	}
	if count == 1 {
		rdb.Expire(ctx, key, dupWindow)
	}
	return count >= int64(threshold)
}

// clearDuplicate 状态成功推进后清除重复计数
func clearDuplicate(ctx context.Context, activityID uint, studentID string) {
	rdb := database.RDB
	if rdb == nil {
		return
	}
	rdb.Del(ctx, fmt.Sprintf("scan:dup:%d:%s", activityID, studentID))
}
