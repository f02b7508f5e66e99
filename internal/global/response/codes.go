package response

// 通用错误码定义，业务扫码结果另见 scan 模块的状态码
var (
	ErrInvalidRequest  = newError(40001, "请求参数错误")
	ErrInvalidPassword = newError(40002, "密码错误")
	ErrTokenInvalid    = newError(40101, "登录凭证无效或已过期")
	ErrUnauthorized    = newError(40102, "未授权的访问")
	ErrForbidden       = newError(40301, "权限不足")
	ErrNotFound        = newError(40401, "资源不存在")
	ErrAlreadyExists   = newError(40901, "资源已存在")
	ErrServerInternal  = newError(50001, "服务器内部错误")
	ErrDatabase        = newError(50002, "数据库操作失败")
)
