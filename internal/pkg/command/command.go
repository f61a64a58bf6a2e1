// Package command 解析 "topic+字数" 形式的紧凑指令，例如 "moon30"
package command

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidFormat 指令不符合 topic+number 格式
	ErrInvalidFormat = errors.New("invalid input format")
	// ErrWordCountOutOfRange 字数不在允许范围内
	ErrWordCountOutOfRange = errors.New("word count out of range")
)

// 非贪婪的主题部分 + 结尾连续数字
var commandPattern = regexp.MustCompile(`^([a-zA-Z\s]+?)(\d+)$`)

// ParsedRequest 解析后的指令
type ParsedRequest struct {
	Topic     string
	WordCount int
}

// Parse 将 "moon30" 解析为 (moon, 30)
// 纯函数，不做字数范围校验
func Parse(input string) (*ParsedRequest, error) {
	m := commandPattern.FindStringSubmatch(input)
	if m == nil {
		return nil, ErrInvalidFormat
	}

	topic := strings.TrimSpace(m[1])
	if topic == "" {
		return nil, ErrInvalidFormat
	}

	wordCount, err := strconv.Atoi(m[2])
	if errors.Is(err, strconv.ErrRange) {
		return nil, &wordCountOverflowError{digits: m[2]}
	}
	if err != nil || wordCount <= 0 {
		return nil, ErrInvalidFormat
	}

	return &ParsedRequest{
		Topic:     topic,
		WordCount: wordCount,
	}, nil
}

// Format 将 (topic, wordCount) 重新序列化为指令
func Format(topic string, wordCount int) string {
	return topic + strconv.Itoa(wordCount)
}

// wordCountOverflowError 数字部分超出 int 范围，格式本身合法
type wordCountOverflowError struct {
	digits string
}

func (e *wordCountOverflowError) Error() string {
	return fmt.Sprintf("word count %s overflows int", e.digits)
}

func (e *wordCountOverflowError) Unwrap() error {
	return ErrWordCountOutOfRange
}

// Limits 字数范围（闭区间）
type Limits struct {
	MinWords int
	MaxWords int
}

// Check 校验字数是否在范围内
func (l Limits) Check(req *ParsedRequest) error {
	if req.WordCount < l.MinWords || req.WordCount > l.MaxWords {
		return l.rangeError(req.WordCount)
	}
	return nil
}

func (l Limits) rangeError(received any) *ValidationError {
	return &ValidationError{
		Reason:   ReasonWordCountOutOfRange,
		Message:  fmt.Sprintf("Word count must be between %d and %d", l.MinWords, l.MaxWords),
		Received: received,
		err:      ErrWordCountOutOfRange,
	}
}

// Reason 校验失败原因（机器可读）
type Reason string

const (
	ReasonInvalidFormat       Reason = "invalid_format"
	ReasonWordCountOutOfRange Reason = "word_count_out_of_range"
)

// ValidationError 指令校验错误，携带失败的值
type ValidationError struct {
	Reason   Reason
	Message  string
	Received any
	err      error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

// Validate 解析并校验指令
func Validate(input string, limits Limits) (*ParsedRequest, error) {
	req, err := Parse(input)
	// 超出 int 的字数按越界处理，回显原始数字串
	var overflow *wordCountOverflowError
	if errors.As(err, &overflow) {
		return nil, limits.rangeError(overflow.digits)
	}
	if err != nil {
		return nil, &ValidationError{
			Reason:   ReasonInvalidFormat,
			Message:  `Invalid input format. Use format: topic + number (e.g., "moon30")`,
			Received: input,
			err:      err,
		}
	}
	if err := limits.Check(req); err != nil {
		return nil, err
	}
	return req, nil
}
