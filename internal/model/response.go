package model

// GenerateResponse 段落生成响应
type GenerateResponse struct {
	Success     bool   `json:"success"`
	Input       string `json:"input"`
	Topic       string `json:"topic"`
	WordCount   int    `json:"word_count"`
	Paragraph   string `json:"paragraph"`
	UsedContext bool   `json:"used_context"`
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Code     int    `json:"code"`
	Reason   string `json:"reason,omitempty"` // 机器可读原因
	Message  string `json:"message"`
	Detail   string `json:"detail,omitempty"`
	Received any    `json:"received,omitempty"` // 校验失败的值
	Example  any    `json:"example,omitempty"`
}

// 错误码
const (
	CodeInvalidBody         = 40001
	CodeInvalidFormat       = 40002
	CodeWordCountOutOfRange = 40003
	CodeInternal            = 50000
	CodeGenerationFailed    = 50001
)

// ServiceInfo 服务信息
type ServiceInfo struct {
	Service     string            `json:"service"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
	Usage       Usage             `json:"usage"`
}

// Usage 接口用法示例
type Usage struct {
	Endpoint string          `json:"endpoint"`
	Method   string          `json:"method"`
	Body     GenerateExample `json:"body"`
	Example  string          `json:"example"`
}

// GenerateExample 请求体示例
type GenerateExample struct {
	Input string `json:"input"`
}
