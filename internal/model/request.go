package model

// GenerateRequest 段落生成请求
type GenerateRequest struct {
	Input *string `json:"input"` // 格式: topic + 字数，如 "moon30"
}
