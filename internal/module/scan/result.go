package scan

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Category 扫码结果分类，决定操作端的提示强度与音效
type Category string

const (
	CategorySuccess       Category = "success"        // 正常完成
	CategoryAlreadyDone   Category = "already_done"   // 重复操作，无害
	CategoryRestricted    Category = "restricted"     // 业务规则拒绝
	CategoryFlowViolation Category = "flow_violation" // 违反单向生命周期
	CategoryError         Category = "error"          // 数据缺失或内部错误
)

// 扫码状态码，字符串值是对外契约，不可改动
const (
	CodeCheckInSuccess  = "CHECKIN_SUCCESS"
	CodeCheckOutSuccess = "CHECKOUT_SUCCESS"

	CodeAlreadyCheckedIn        = "ALREADY_CHECKED_IN"
	CodeRepeatedDuplicate       = "REPEATED_DUPLICATE_ATTEMPT"
	CodeAlreadyCheckedOut       = "ALREADY_CHECKED_OUT"
	CodeAlreadyCompleted        = "ALREADY_COMPLETED"
	CodeFacultyRestriction      = "FACULTY_RESTRICTION"
	CodeActivityNotOngoing      = "ACTIVITY_NOT_ONGOING"
	CodeActivityNotStarted      = "ACTIVITY_NOT_STARTED"
	CodeActivityExpired         = "ACTIVITY_EXPIRED"
	CodeMaxParticipantsReached  = "MAX_PARTICIPANTS_REACHED"
	CodeNotCheckedIn            = "NOT_CHECKED_IN"
	CodeStudentAccountInactive  = "STUDENT_ACCOUNT_INACTIVE"
	CodeQRExpired               = "QR_EXPIRED"
	CodeInvalidCheckoutStatus   = "INVALID_CHECKOUT_STATUS"
	CodeActivityNotFound        = "ACTIVITY_NOT_FOUND"
	CodeStudentNotFound         = "STUDENT_NOT_FOUND"
	CodeQRInvalid               = "QR_INVALID"
	CodeDepartmentNotFound      = "DEPARTMENT_NOT_FOUND"
	CodeNoDepartment            = "NO_DEPARTMENT"
	CodeValidationError         = "VALIDATION_ERROR"
	CodeInternalError           = "INTERNAL_ERROR"
)

// categories 状态码到分类的封闭映射，每个码只属于一个分类
var categories = map[string]Category{
	CodeCheckInSuccess:  CategorySuccess,
	CodeCheckOutSuccess: CategorySuccess,

	CodeAlreadyCheckedIn:  CategoryAlreadyDone,
	CodeRepeatedDuplicate: CategoryAlreadyDone,

	CodeFacultyRestriction:     CategoryRestricted,
	CodeActivityNotOngoing:     CategoryRestricted,
	CodeActivityNotStarted:     CategoryRestricted,
	CodeActivityExpired:        CategoryRestricted,
	CodeMaxParticipantsReached: CategoryRestricted,
	CodeNotCheckedIn:           CategoryRestricted,
	CodeStudentAccountInactive: CategoryRestricted,
	CodeQRExpired:              CategoryRestricted,
	CodeInvalidCheckoutStatus:  CategoryRestricted,

	CodeAlreadyCheckedOut: CategoryFlowViolation,
	CodeAlreadyCompleted:  CategoryFlowViolation,

	CodeActivityNotFound:   CategoryError,
	CodeStudentNotFound:    CategoryError,
	CodeQRInvalid:          CategoryError,
	CodeDepartmentNotFound: CategoryError,
	CodeNoDepartment:       CategoryError,
	CodeValidationError:    CategoryError,
	CodeInternalError:      CategoryError,
}

// CategoryOf 返回状态码所属分类，未知码按内部错误处理
func CategoryOf(code string) Category {
	if cat, ok := categories[code]; ok {
		return cat
	}
	return CategoryError
}

// ScanError 扫码失败结果，业务失败都通过它返回，不抛异常
type ScanError struct {
	Code    string
	Message string
	Details gin.H
}

func (e *ScanError) Error() string {
	return e.Code + ": " + e.Message
}

func (e *ScanError) Category() Category {
	return CategoryOf(e.Code)
}

func newScanError(code, message string) *ScanError {
	return &ScanError{Code: code, Message: message}
}

// WithDetails 附带给操作端展示的细节字段
func (e *ScanError) WithDetails(details gin.H) *ScanError {
	return &ScanError{Code: e.Code, Message: e.Message, Details: details}
}

// ScanResult 扫码接口的统一响应体
type ScanResult struct {
	Success  bool     `json:"success"`
	Code     string   `json:"code"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Data     gin.H    `json:"data,omitempty"`
}

// scanOK 写出成功响应
func scanOK(c *gin.Context, code, message string, data gin.H) {
	c.JSON(http.StatusOK, ScanResult{
		Success:  true,
		Code:     code,
		Category: CategoryOf(code),
		Message:  message,
		Data:     data,
	})
}

// scanFail 写出失败响应，HTTP 状态码按分类映射
func scanFail(c *gin.Context, err *ScanError) {
	status := http.StatusBadRequest
	switch err.Code {
	case CodeActivityNotFound, CodeStudentNotFound, CodeDepartmentNotFound:
		status = http.StatusNotFound
	case CodeInternalError:
		status = http.StatusInternalServerError
	}
	c.JSON(status, ScanResult{
		Success:  false,
		Code:     err.Code,
		Category: err.Category(),
		Message:  err.Message,
		Data:     err.Details,
	})
}
