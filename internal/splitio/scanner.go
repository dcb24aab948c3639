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

// Package splitio 在字节缓冲区中查找 RESP 的行终止符 \r\n
//
// RESP 的文本行 (SimpleString/Error/Integer/Double/BigNumber/...) 以
// \r\n 结尾 但缓冲区中可能出现孤立的 \r (后面不是 \n) 必须继续向后
// 扫描而不是把它当作终止符 一个朴素的实现会为每个孤立 \r 递归调用
// 自身 这在输入里塞满孤立 \r 时会打爆调用栈 FindCRLF 改用迭代扫描
package splitio

var CharCRLF = []byte("\r\n")

// FindCRLF 从 buf[start:] 中查找下一个完整的 \r\n 序列
//
// 返回值是 \r 在 buf 中的绝对下标 找不到完整序列时返回 -1
// 实现必须是迭代的 一连串裸 \r 不应导致栈溢出
func FindCRLF(buf []byte, start int) int {
	for i := start; i < len(buf); i++ {
		if buf[i] != '\r' {
			continue
		}
		if i+1 < len(buf) {
			if buf[i+1] == '\n' {
				return i
			}
			// 孤立的 \r 不是终止符 从下一个字节继续扫描
			continue
		}
		// \r 恰好是缓冲区最后一个字节 还不知道它后面是不是 \n
		return -1
	}
	return -1
}

// HasBareCRLF 报告 b 中是否包含裸露的 CR 或 LF 用于校验
// SimpleString/Error 等不允许换行的文本变体
func HasBareCRLF(b []byte) bool {
	for _, c := range b {
		if c == '\r' || c == '\n' {
			return true
		}
	}
	return false
}
