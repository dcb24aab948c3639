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

// Package cmd 用 github.com/spf13/cobra 组织 stream-resp 的子命令
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "stream-resp",
	Short:         "Streaming RESP (REdis Serialization Protocol) codec",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute 运行根命令 由 main 调用
func Execute() error {
	return rootCmd.Execute()
}
