package scan

import (
	"student-activity-system/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// resolveOrgID 解析学生的组织归属（经由系所）
// 无系所或系所查不到时返回对应的扫码错误
func resolveOrgID(db *gorm.DB, u *model.User) (uint, *ScanError, error) {
	if u.DepartmentID == nil {
		return 0, newScanError(CodeNoDepartment, "该学生未设置所属系所，无法参加限定组织的活动"), nil
	}
	var dept model.Department
	err := db.First(&dept, "id = ?", *u.DepartmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, newScanError(CodeDepartmentNotFound, "学生所属系所不存在"), nil
	}
	if err != nil {
		return 0, nil, err
	}
	return dept.OrganizationID, nil, nil
}

// checkEligibility 组合资格闸门：仅院级且限定了组织的活动需要解析归属
func checkEligibility(db *gorm.DB, act *model.Activity, u *model.User) (*ScanError, error) {
	if act.Level != model.ActivityLevelFaculty || len(act.EligibleOrgs) == 0 {
		return nil, nil
	}
	orgID, scanErr, err := resolveOrgID(db, u)
	if scanErr != nil || err != nil {
		return scanErr, err
	}
	if !isEligible(act, orgID) {
		return newScanError(CodeFacultyRestriction, "该学生所属组织不在本活动的参与范围内"), nil
	}
	return nil, nil
}
