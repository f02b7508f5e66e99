package tools

// GenerateUniqueKey 带有限重试的唯一键生成工具
// generate 产生候选键，claim 尝试占用（返回 true 表示占用成功）
// 重试耗尽后退回最后一个候选键复用，保证调用方总能拿到键
func GenerateUniqueKey(maxRetries int, generate func() string, claim func(key string) bool) string {
	var key string
	for i := 0; i < maxRetries; i++ {
		key = generate()
		if claim(key) {
			return key
		}
	}
	// 重试耗尽，复用最后一个候选键
	if key == "" {
		key = generate()
		claim(key)
	}
	return key
}
