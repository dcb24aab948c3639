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
	"unicode/utf8"

	"github.com/spf13/cast"
)

func utf8ValidString(b []byte) bool {
	return utf8.Valid(b)
}

func doubleBitsEqual(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}

// ToInt64 尝试把 v 转换为 int64 这是纯粹的调用方便利方法 不属于
// 协议的一部分 Integer 原样返回 Boolean 映射为 0/1 其余类型借助
// cast 解析其文本/数值表示
func (v Value) ToInt64() (int64, error) {
	switch v.Kind {
	case KindInteger:
		return v.i64, nil
	case KindBoolean:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KindDouble:
		return cast.ToInt64E(v.f64)
	case KindSimpleString, KindError, KindBigNumber:
		return cast.ToInt64E(string(v.str) + string(v.big))
	case KindBulkString, KindBulkError, KindVerbatimString:
		if v.null {
			return 0, ErrNullValue
		}
		return cast.ToInt64E(string(v.bytes))
	default:
		return 0, newError("cannot convert %s to int64", v.Kind)
	}
}

// ToFloat64 尝试把 v 转换为 float64
func (v Value) ToFloat64() (float64, error) {
	switch v.Kind {
	case KindDouble:
		return v.f64, nil
	case KindInteger:
		return float64(v.i64), nil
	case KindBulkString, KindBulkError, KindVerbatimString:
		if v.null {
			return 0, ErrNullValue
		}
		return cast.ToFloat64E(string(v.bytes))
	case KindSimpleString, KindError, KindBigNumber:
		return cast.ToFloat64E(string(v.str) + string(v.big))
	default:
		return 0, newError("cannot convert %s to float64", v.Kind)
	}
}

// ToBool 尝试把 v 转换为 bool
func (v Value) ToBool() (bool, error) {
	switch v.Kind {
	case KindBoolean:
		return v.b, nil
	case KindInteger:
		return v.i64 != 0, nil
	case KindBulkString, KindBulkError, KindVerbatimString:
		if v.null {
			return false, ErrNullValue
		}
		return cast.ToBoolE(string(v.bytes))
	case KindSimpleString:
		return cast.ToBoolE(string(v.str))
	default:
		return false, newError("cannot convert %s to bool", v.Kind)
	}
}

// ToString 尝试把 v 转换为 string 对二进制安全的 BulkString 系
// 变体等价于 Text()
func (v Value) ToString() (string, error) {
	switch v.Kind {
	case KindInteger:
		return cast.ToStringE(v.i64)
	case KindDouble:
		return cast.ToStringE(v.f64)
	case KindBoolean:
		return cast.ToStringE(v.b)
	default:
		return v.Text()
	}
}

// FromInt64 构造一个 Integer Value 便于链式调用
func FromInt64(i int64) Value { return Integer(i) }

// FromString 构造一个 SimpleString Value 便于链式调用
func FromString(s string) Value { return SimpleString(s) }

// FromBool 构造一个 Boolean Value 便于链式调用
func FromBool(b bool) Value { return Boolean(b) }

// FromFloat64 构造一个 Double Value 便于链式调用
func FromFloat64(f float64) Value { return Double(f) }
