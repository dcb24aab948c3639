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

package common

const (
	// App 应用程序名称 也是 metrics 命名空间前缀
	App = "stream_resp"

	// Version 应用程序版本
	Version = "v0.0.1"

	// ReadWriteBlockSize decode 命令每次读取并喂给 Decoder 的块大小
	ReadWriteBlockSize = 4096
)
