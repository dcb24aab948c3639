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

const (
	// DefaultMaxDepth 默认的聚合嵌套深度上限
	DefaultMaxDepth = 32

	// DefaultMaxLength 默认的 BulkString 负载长度上限 (512MB 是
	// Redis 文档规定的 BulkString 上限)
	DefaultMaxLength = 512 << 20

	// DefaultMaxIterationsPerCall 单次 TryNext 调用允许的状态迁移
	// 次数上限 用来限制类似"无穷多个裸 CRLF"这样的病态输入消耗的
	// CPU 时间
	DefaultMaxIterationsPerCall = 1024
)

// Limits 约束解码器的资源占用 config 标签供 confengine 的 YAML
// 解析使用 (参见 SPEC_FULL.md §2.2)
type Limits struct {
	// MaxDepth 聚合 (Array/Map/Set/Push) 嵌套深度上限 超过时返回
	// DepthExceeded
	MaxDepth int `config:"maxDepth"`

	// MaxLength BulkString 负载字节数上限 超过时返回 LengthExceeded
	MaxLength int `config:"maxLength"`

	// MaxIterationsPerCall 单次 TryNext 调用的状态迁移次数上限
	// 超过时返回 ProtocolLimit
	MaxIterationsPerCall int `config:"maxIterations"`

	// AllowExplicitPositiveSign 为 true 时 ":+123\r\n" 解析为 123
	// 默认为 false 即拒绝显式的正号 (与标准 Redis 行为一致)
	AllowExplicitPositiveSign bool `config:"allowExplicitPositiveSign"`
}

// DefaultLimits 返回一组适用于大多数场景的默认限制
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:                  DefaultMaxDepth,
		MaxLength:                 DefaultMaxLength,
		MaxIterationsPerCall:      DefaultMaxIterationsPerCall,
		AllowExplicitPositiveSign: false,
	}
}

func (l Limits) withDefaults() Limits {
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultMaxDepth
	}
	if l.MaxLength <= 0 {
		l.MaxLength = DefaultMaxLength
	}
	if l.MaxIterationsPerCall <= 0 {
		l.MaxIterationsPerCall = DefaultMaxIterationsPerCall
	}
	return l
}
