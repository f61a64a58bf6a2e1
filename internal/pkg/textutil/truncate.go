// Package textutil 文本处理工具
package textutil

// TruncateRunes 按字符（rune）截断到最多 n 个字符，n <= 0 时不截断
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
