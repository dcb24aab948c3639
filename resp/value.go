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

// Package resp implements a streaming, resumable codec for the RESP
// (REdis Serialization Protocol) wire format, versions 2 and 3.
//
// Decode 从输入的任意长度分片中增量解析 Value 对方法 Decoder.Feed
// 追加字节 Decoder.TryNext 尝试取出下一个完整的 Value 数据不足时
// 会返回 ErrIncomplete 调用方补充数据后重试即可 Encode 则反向地把
// Value 序列化为规范的 RESP 字节形式
package resp

import "fmt"

// Kind 标识 Value 携带的 RESP 数据类型
type Kind uint8

const (
	KindSimpleString Kind = iota
	KindError
	KindInteger
	KindBulkString
	KindArray
	KindNull
	KindBoolean
	KindDouble
	KindBigNumber
	KindBulkError
	KindVerbatimString
	KindMap
	KindSet
	KindPush
)

func (k Kind) String() string {
	switch k {
	case KindSimpleString:
		return "SimpleString"
	case KindError:
		return "Error"
	case KindInteger:
		return "Integer"
	case KindBulkString:
		return "BulkString"
	case KindArray:
		return "Array"
	case KindNull:
		return "Null"
	case KindBoolean:
		return "Boolean"
	case KindDouble:
		return "Double"
	case KindBigNumber:
		return "BigNumber"
	case KindBulkError:
		return "BulkError"
	case KindVerbatimString:
		return "VerbatimString"
	case KindMap:
		return "Map"
	case KindSet:
		return "Set"
	case KindPush:
		return "Push"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Pair 是 Map 中的一个键值条目 RESP 不保证 key 唯一 因此 Map
// 被建模成有序的 Pair 序列而不是哈希表
type Pair struct {
	Key   Value
	Value Value
}

// Value 是 RESP2/RESP3 所有数据类型的标签联合
//
// 每个 Value 只携带它自身 Kind 对应的字段 其余字段保持零值
// 可空的聚合类型 (BulkString/Array/Map/Set/Push/BulkError/VerbatimString)
// 使用 null 字段区分【缺失】与【存在但为空】两种状态
type Value struct {
	Kind Kind

	str   []byte // SimpleString/Error 的文本 保证不含 CR/LF
	i64   int64  // Integer
	bytes []byte // BulkString/BulkError/VerbatimString 的负载 nil 表示该字段未使用
	null  bool   // BulkString/Array/Map/Set/Push/BulkError/VerbatimString 是否为 null 形式
	arr   []Value
	b     bool    // Boolean
	f64   float64 // Double
	big   []byte  // BigNumber 的十进制文本
	pairs []Pair  // Map
}

// SimpleString 构造一个 SimpleString Value s 不得包含 CR 或 LF
func SimpleString(s string) Value {
	return Value{Kind: KindSimpleString, str: []byte(s)}
}

// Error 构造一个 Error Value msg 不得包含 CR 或 LF
func Error(msg string) Value {
	return Value{Kind: KindError, str: []byte(msg)}
}

// Integer 构造一个 Integer Value
func Integer(i int64) Value {
	return Value{Kind: KindInteger, i64: i}
}

// BulkString 构造一个存在的 BulkString Value payload 可以为空切片
func BulkString(payload []byte) Value {
	return Value{Kind: KindBulkString, bytes: payload}
}

// NullBulkString 构造 BulkString 的 null 形式 ($-1\r\n)
func NullBulkString() Value {
	return Value{Kind: KindBulkString, null: true}
}

// Array 构造一个存在的 Array Value elems 可以为空切片
func Array(elems []Value) Value {
	return Value{Kind: KindArray, arr: elems}
}

// NullArray 构造 Array 的 null 形式 (*-1\r\n)
func NullArray() Value {
	return Value{Kind: KindArray, null: true}
}

// Null 构造 RESP3 的 _\r\n 它与 null 的 BulkString/Array 是不同的变体
func Null() Value {
	return Value{Kind: KindNull}
}

// Boolean 构造一个 RESP3 Boolean Value
func Boolean(b bool) Value {
	return Value{Kind: KindBoolean, b: b}
}

// Double 构造一个 RESP3 Double Value 支持 ±Inf 与 NaN
func Double(f float64) Value {
	return Value{Kind: KindDouble, f64: f}
}

// BigNumber 构造一个 RESP3 BigNumber Value text 是可选带负号的十进制数字串
func BigNumber(text []byte) Value {
	return Value{Kind: KindBigNumber, big: text}
}

// BulkError 构造一个存在的 RESP3 BulkError Value
func BulkError(payload []byte) Value {
	return Value{Kind: KindBulkError, bytes: payload}
}

// NullBulkError 构造 BulkError 的 null 形式 (!-1\r\n)
func NullBulkError() Value {
	return Value{Kind: KindBulkError, null: true}
}

// VerbatimString 构造一个存在的 RESP3 VerbatimString Value
//
// 按照惯例 payload 的前 3 个字节是格式标签 第 4 个字节是 ':'
// 其后才是真正的文本内容 本包不强制校验该约定 调用方可自行解析
func VerbatimString(payload []byte) Value {
	return Value{Kind: KindVerbatimString, bytes: payload}
}

// NullVerbatimString 构造 VerbatimString 的 null 形式 (=-1\r\n)
func NullVerbatimString() Value {
	return Value{Kind: KindVerbatimString, null: true}
}

// Map 构造一个存在的 RESP3 Map Value 保留原始到达顺序
func Map(pairs []Pair) Value {
	return Value{Kind: KindMap, pairs: pairs}
}

// NullMap 构造 Map 的 null 形式 (%-1\r\n)
func NullMap() Value {
	return Value{Kind: KindMap, null: true}
}

// Set 构造一个存在的 RESP3 Set Value
func Set(elems []Value) Value {
	return Value{Kind: KindSet, arr: elems}
}

// NullSet 构造 Set 的 null 形式 (~-1\r\n)
func NullSet() Value {
	return Value{Kind: KindSet, null: true}
}

// Push 构造一个存在的 RESP3 Push Value
func Push(elems []Value) Value {
	return Value{Kind: KindPush, arr: elems}
}

// NullPush 构造 Push 的 null 形式 (>-1\r\n)
func NullPush() Value {
	return Value{Kind: KindPush, null: true}
}

// IsNull 报告聚合/nullable 类型是否处于 null 形式 对于 Null(RESP3)
// 总是返回 true 对不可为空的变体 (SimpleString/Error/Integer/Boolean/
// Double/BigNumber) 总是返回 false
func (v Value) IsNull() bool {
	if v.Kind == KindNull {
		return true
	}
	return v.null
}

// Bytes 返回 BulkString/BulkError/VerbatimString 的原始负载
//
// RESP 的 BulkString/BulkError 在协议层面是二进制安全的 因此这里
// 始终返回原始字节 而不是做 UTF-8 校验 需要文本视图时使用 Text
func (v Value) Bytes() []byte {
	return v.bytes
}

// Text 返回 SimpleString/Error/BigNumber/BulkString 系变体的 UTF-8
// 文本视图 对 BulkString/BulkError/VerbatimString 会执行一次 UTF-8
// 校验 校验失败返回 ErrInvalidUtf8
func (v Value) Text() (string, error) {
	switch v.Kind {
	case KindSimpleString, KindError:
		return string(v.str), nil
	case KindBigNumber:
		return string(v.big), nil
	case KindBulkString, KindBulkError, KindVerbatimString:
		if v.null {
			return "", nil
		}
		if !utf8Valid(v.bytes) {
			return "", ErrInvalidUtf8
		}
		return string(v.bytes), nil
	default:
		return "", fmt.Errorf("resp: %s has no text view", v.Kind)
	}
}

// Int64 返回 Integer Value 的值
func (v Value) Int64() int64 {
	return v.i64
}

// Float64 返回 Double Value 的值
func (v Value) Float64() float64 {
	return v.f64
}

// Bool 返回 Boolean Value 的值
func (v Value) Bool() bool {
	return v.b
}

// Elements 返回 Array/Set/Push 的元素序列 null 形式返回 nil
func (v Value) Elements() []Value {
	return v.arr
}

// Pairs 返回 Map 的键值序列 保留到达顺序 null 形式返回 nil
func (v Value) Pairs() []Pair {
	return v.pairs
}

// IsEmptyOrNull 报告 v 是否为 Null(RESP3) null 形式 或者存在但为空
// 的聚合/字符串 (空 BulkString/空 Array/空 Map/空 Set/空 Push)
func (v Value) IsEmptyOrNull() bool {
	switch v.Kind {
	case KindNull:
		return true
	case KindBulkString, KindBulkError, KindVerbatimString:
		return v.null || len(v.bytes) == 0
	case KindArray, KindSet, KindPush:
		return v.null || len(v.arr) == 0
	case KindMap:
		return v.null || len(v.pairs) == 0
	default:
		return false
	}
}

// IntoOwned 返回 v 的一份深拷贝 所有底层切片都被复制 使得返回值
// 不再引用 Decoder 内部缓冲区的任何内存 Decoder 本身始终返回已经
// 拥有所有权的 Value 该方法留给希望在自定义零拷贝扩展之上再做一次
// 防御性拷贝的调用方
func (v Value) IntoOwned() Value {
	out := v
	out.str = cloneBytes(v.str)
	out.bytes = cloneBytes(v.bytes)
	out.big = cloneBytes(v.big)
	if v.arr != nil {
		out.arr = make([]Value, len(v.arr))
		for i, e := range v.arr {
			out.arr[i] = e.IntoOwned()
		}
	}
	if v.pairs != nil {
		out.pairs = make([]Pair, len(v.pairs))
		for i, p := range v.pairs {
			out.pairs[i] = Pair{Key: p.Key.IntoOwned(), Value: p.Value.IntoOwned()}
		}
	}
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Equal 对两个 Value 做结构化比较 浮点数按位比较 NaN 是否相等由
// 调用方自行决定 (bit-pattern 相等的 NaN 视为相等)
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindSimpleString, KindError:
		return string(v.str) == string(other.str)
	case KindInteger:
		return v.i64 == other.i64
	case KindBulkString, KindBulkError, KindVerbatimString:
		if v.null != other.null {
			return false
		}
		return v.null || bytesEqual(v.bytes, other.bytes)
	case KindArray, KindSet, KindPush:
		if v.null != other.null {
			return false
		}
		if v.null {
			return true
		}
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindNull:
		return true
	case KindBoolean:
		return v.b == other.b
	case KindDouble:
		return doubleBitsEqual(v.f64, other.f64)
	case KindBigNumber:
		return bytesEqual(v.big, other.big)
	case KindMap:
		if v.null != other.null {
			return false
		}
		if v.null {
			return true
		}
		if len(v.pairs) != len(other.pairs) {
			return false
		}
		for i := range v.pairs {
			if !v.pairs[i].Key.Equal(other.pairs[i].Key) || !v.pairs[i].Value.Equal(other.pairs[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func utf8Valid(b []byte) bool {
	return utf8ValidString(b)
}
