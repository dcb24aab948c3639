// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resp

import (
	"github.com/pkg/errors"
)

// ErrorKind 对解码错误分类 供调用方判断是否可恢复
type ErrorKind uint8

const (
	// KindRecoverableIncomplete 表示输入不完整 补充数据后可以继续
	KindRecoverableIncomplete ErrorKind = iota
	KindInvalidFormat
	KindLengthExceeded
	KindDepthExceeded
	KindOverflow
	KindInvalidUtf8
	KindProtocolLimit
)

func (k ErrorKind) String() string {
	switch k {
	case KindRecoverableIncomplete:
		return "Incomplete"
	case KindInvalidFormat:
		return "InvalidFormat"
	case KindLengthExceeded:
		return "LengthExceeded"
	case KindDepthExceeded:
		return "DepthExceeded"
	case KindOverflow:
		return "Overflow"
	case KindInvalidUtf8:
		return "InvalidUtf8"
	case KindProtocolLimit:
		return "ProtocolLimit"
	default:
		return "Unknown"
	}
}

// DecodeError 是 resp 包返回的所有解码/编码错误的具体类型
type DecodeError struct {
	Kind   ErrorKind
	reason string
}

func (e *DecodeError) Error() string {
	return "resp: " + e.reason
}

// Recoverable 报告该错误是否意味着输入不完整 调用方应当 Feed 更多
// 字节后重试 而不是放弃当前字节流
func (e *DecodeError) Recoverable() bool {
	return e.Kind == KindRecoverableIncomplete
}

func newDecodeError(kind ErrorKind, format string, args ...any) *DecodeError {
	return &DecodeError{Kind: kind, reason: errors.Errorf(format, args...).Error()}
}

func newError(format string, args ...any) error {
	return errors.Errorf("resp: "+format, args...)
}

var (
	// ErrIncomplete 表示当前缓冲区内的数据尚不足以解析出下一个完整
	// 的 Value 这是规范意义上的挂起信号 而不是格式错误 调用方应当
	// Feed 更多字节后重新调用 TryNext 该错误统一了规范中原本区分的
	// NeedMore/UnexpectedEof 两种结果 (参见 SPEC_FULL.md)
	ErrIncomplete = newDecodeError(KindRecoverableIncomplete, "need more data")

	// ErrNullValue 在调用方试图把一个 null 形式的聚合/字符串转换
	// 为标量类型时返回
	ErrNullValue = newError("value is null")

	// ErrInvalidUtf8 在 Text() 校验到非法 UTF-8 字节时返回
	ErrInvalidUtf8 = newDecodeError(KindInvalidUtf8, "invalid utf8")
)

func errInvalidFormat(format string, args ...any) *DecodeError {
	return newDecodeError(KindInvalidFormat, format, args...)
}

func errLengthExceeded(length, max int) *DecodeError {
	return newDecodeError(KindLengthExceeded, "bulk length %d exceeds max_length %d", length, max)
}

func errDepthExceeded(depth, max int) *DecodeError {
	return newDecodeError(KindDepthExceeded, "aggregate depth %d exceeds max_depth %d", depth, max)
}

func errOverflow(context string) *DecodeError {
	return newDecodeError(KindOverflow, "%s overflows signed 64-bit", context)
}

func errProtocolLimit(iterations, max int) *DecodeError {
	return newDecodeError(KindProtocolLimit, "try_next exceeded %d iterations (max %d)", iterations, max)
}
