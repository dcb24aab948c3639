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
	"math"
	"strconv"
)

var crlf = []byte("\r\n")

// Encode 把 v 序列化为规范的 RESP 字节形式 终止符始终是 \r\n
// 嵌套的聚合类型递归编码
func Encode(v Value) []byte {
	buf := make([]byte, 0, 64)
	return appendValue(buf, v)
}

// EncodeTo 把 v 追加编码到 dst 并返回扩容后的切片 适合在循环中
// 复用同一块缓冲区编码多个 Value 而不产生额外分配
func EncodeTo(dst []byte, v Value) []byte {
	return appendValue(dst, v)
}

func appendValue(buf []byte, v Value) []byte {
	switch v.Kind {
	case KindSimpleString:
		buf = append(buf, '+')
		buf = append(buf, v.str...)
		return append(buf, crlf...)

	case KindError:
		buf = append(buf, '-')
		buf = append(buf, v.str...)
		return append(buf, crlf...)

	case KindInteger:
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, v.i64, 10)
		return append(buf, crlf...)

	case KindBulkString:
		return appendBulkBytes(buf, '$', v.null, v.bytes)

	case KindBulkError:
		return appendTextOrNull(buf, '!', v.null, v.bytes)

	case KindVerbatimString:
		return appendTextOrNull(buf, '=', v.null, v.bytes)

	case KindArray:
		return appendAggregate(buf, '*', v.null, v.arr)

	case KindSet:
		return appendAggregate(buf, '~', v.null, v.arr)

	case KindPush:
		return appendAggregate(buf, '>', v.null, v.arr)

	case KindMap:
		if v.null {
			buf = append(buf, '%')
			buf = append(buf, '-', '1')
			return append(buf, crlf...)
		}
		buf = append(buf, '%')
		buf = strconv.AppendInt(buf, int64(len(v.pairs)), 10)
		buf = append(buf, crlf...)
		for _, p := range v.pairs {
			buf = appendValue(buf, p.Key)
			buf = appendValue(buf, p.Value)
		}
		return buf

	case KindNull:
		buf = append(buf, '_')
		return append(buf, crlf...)

	case KindBoolean:
		buf = append(buf, '#')
		if v.b {
			buf = append(buf, 't')
		} else {
			buf = append(buf, 'f')
		}
		return append(buf, crlf...)

	case KindDouble:
		buf = append(buf, ',')
		buf = appendDouble(buf, v.f64)
		return append(buf, crlf...)

	case KindBigNumber:
		buf = append(buf, '(')
		buf = append(buf, v.big...)
		return append(buf, crlf...)

	default:
		panic("resp: encode: unknown kind " + v.Kind.String())
	}
}

func appendBulkBytes(buf []byte, marker byte, isNull bool, payload []byte) []byte {
	buf = append(buf, marker)
	if isNull {
		buf = append(buf, '-', '1')
		return append(buf, crlf...)
	}
	buf = strconv.AppendInt(buf, int64(len(payload)), 10)
	buf = append(buf, crlf...)
	buf = append(buf, payload...)
	return append(buf, crlf...)
}

// appendTextOrNull 编码 BulkError/VerbatimString BulkError 和
// VerbatimString 在这个实现里被当作一整行 CRLF 结尾的文本 (与
// SimpleString/Error 同构) 而不是像 BulkString 那样长度前缀 + 二进制
// 负载 因此它们的内容不得包含 CR/LF null 形式写作字面文本 "-1"
func appendTextOrNull(buf []byte, marker byte, isNull bool, text []byte) []byte {
	buf = append(buf, marker)
	if isNull {
		buf = append(buf, '-', '1')
		return append(buf, crlf...)
	}
	buf = append(buf, text...)
	return append(buf, crlf...)
}

func appendAggregate(buf []byte, marker byte, isNull bool, elems []Value) []byte {
	buf = append(buf, marker)
	if isNull {
		buf = append(buf, '-', '1')
		return append(buf, crlf...)
	}
	buf = strconv.AppendInt(buf, int64(len(elems)), 10)
	buf = append(buf, crlf...)
	for _, e := range elems {
		buf = appendValue(buf, e)
	}
	return buf
}

// appendDouble 把 f 编码为 RESP3 Double 的规范文本形式 ±Inf 编码为
// inf/-inf NaN 编码为 nan
func appendDouble(buf []byte, f float64) []byte {
	switch {
	case math.IsInf(f, 1):
		return append(buf, "inf"...)
	case math.IsInf(f, -1):
		return append(buf, "-inf"...)
	case math.IsNaN(f):
		return append(buf, "nan"...)
	default:
		return strconv.AppendFloat(buf, f, 'g', -1, 64)
	}
}
