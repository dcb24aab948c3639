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

// Package buffer 实现一个可增长 可压缩的字节缓冲区 供流式解码器
// 持有尚未消费的输入
//
// 与固定容量 满了就丢弃多余字节的缓冲区不同 这里的 Buffer 在容量
// 不够时会扩容 并在游标前进后通过 Compact 把已消费的前缀丢弃 从而
// 在长期的流水线下维持有界的内存占用 底层存储借助
// bytebufferpool 复用 减少构造/解码/重置循环中的分配
package buffer

import (
	"github.com/valyala/bytebufferpool"
)

var pool bytebufferpool.Pool

// Buffer 是围绕一个可复用字节数组的增量输入缓冲区
//
// cursor 标记调用方已经消费到的逻辑位置 Bytes() 总是返回
// buf[cursor:] 即尚未消费的部分 Advance 推进 cursor Compact 在
// cursor 之前的数据不再被任何挂起状态引用时把它们移出缓冲区
type Buffer struct {
	bb     *bytebufferpool.ByteBuffer
	cursor int
}

// New 创建一个空的 Buffer 底层存储从 bytebufferpool 中借用
func New() *Buffer {
	return &Buffer{bb: pool.Get()}
}

// Feed 把 p 追加到缓冲区末尾 从不返回错误 也绝不会丢失尚未消费
// 的字节
func (b *Buffer) Feed(p []byte) {
	b.bb.Write(p)
}

// Bytes 返回尚未消费部分的只读视图 该切片在下一次 Feed 或
// Compact 之前保持有效
func (b *Buffer) Bytes() []byte {
	return b.bb.B[b.cursor:]
}

// Len 返回尚未消费的字节数
func (b *Buffer) Len() int {
	return len(b.bb.B) - b.cursor
}

// Advance 把游标向前推进 n 个字节 n 必须不超过 Len()
func (b *Buffer) Advance(n int) {
	b.cursor += n
}

// Compact 把已消费的前缀移出缓冲区 使得游标归零 调用方必须确保
// 没有任何挂起状态引用 cursor 之前的位置 (即没有正在进行中的
// 借用切片) 这通常在每次成功返回一个完整 Value 之后是安全的
func (b *Buffer) Compact() {
	if b.cursor == 0 {
		return
	}
	n := copy(b.bb.B, b.bb.B[b.cursor:])
	b.bb.B = b.bb.B[:n]
	b.cursor = 0
}

// Reset 丢弃全部数据 并把游标归零 底层存储交还给 pool 以便复用
func (b *Buffer) Reset() {
	pool.Put(b.bb)
	b.bb = pool.Get()
	b.cursor = 0
}
