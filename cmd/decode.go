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

package cmd

import (
	"bufio"
	"encoding/base64"
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/daydaydrunk/stream-resp/common"
	"github.com/daydaydrunk/stream-resp/logger"
	"github.com/daydaydrunk/stream-resp/resp"
)

var decodeFilePaths []string

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode one or more RESP byte streams into newline-delimited JSON",
	Long: "Feeds each --file's bytes through a fresh decoder in fixed-size\n" +
		"chunks, simulating arbitrary chunk boundaries, and writes one JSON\n" +
		"object per decoded top-level value to stdout. Multiple --file flags\n" +
		"are decoded concurrently, bounded by common.Concurrency(); reads\n" +
		"stdin when no --file is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := decodeFilePaths
		if len(paths) == 0 {
			paths = []string{""}
		}

		out := &syncWriter{w: bufio.NewWriter(cmd.OutOrStdout())}
		defer out.Flush()

		sem := make(chan struct{}, common.Concurrency())
		var wg sync.WaitGroup
		var mu sync.Mutex
		var result error

		for _, path := range paths {
			path := path
			wg.Add(1)
			sem <- struct{}{}
			go func() {
				defer wg.Done()
				defer func() { <-sem }()

				if err := decodeFile(cmd, path, out); err != nil {
					mu.Lock()
					result = multierror.Append(result, errors.Wrapf(err, "decode %s", displayPath(path)))
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		return result
	},
}

func init() {
	decodeCmd.Flags().StringArrayVar(&decodeFilePaths, "file", nil, "RESP input file (repeatable; reads stdin if omitted)")
	rootCmd.AddCommand(decodeCmd)
}

func displayPath(path string) string {
	if path == "" {
		return "<stdin>"
	}
	return path
}

// syncWriter 序列化并发 decodeFile 调用对同一个输出流的写入 每次
// Write 对应 json.Encoder 的一整条编码结果 所以按调用加锁就够了
// 不会把多个 goroutine 的输出拆开交错
type syncWriter struct {
	mu sync.Mutex
	w  *bufio.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *syncWriter) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Flush()
}

// decodeFile 把 path (空字符串表示 stdin) 按 common.ReadWriteBlockSize
// 大小的定长块喂给一个独占的 Decoder 每喂完一块就把能取出的 Value
// 全部取出 这样即使整份输入一次性躺在磁盘上 解码器经历的也是真实
// 流式场景里会出现的任意切块边界
func decodeFile(cmd *cobra.Command, path string, out io.Writer) error {
	in := cmd.InOrStdin()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	dec := resp.New(resp.DefaultLimits())
	defer dec.Reset()
	enc := json.NewEncoder(out)

	name := displayPath(path)
	drain := func() error {
		for {
			v, err := dec.TryNext()
			if err != nil {
				de, ok := err.(*resp.DecodeError)
				if ok && de.Recoverable() {
					logger.Debugf("%s: try_next suspended, waiting for more input", name)
					return nil
				}
				return err
			}
			logger.Debugf("%s: decoded %s value", name, v.Kind.String())
			if err := enc.Encode(decodeValueToJSON(v)); err != nil {
				return err
			}
		}
	}

	chunk := make([]byte, common.ReadWriteBlockSize)
	for {
		n, err := in.Read(chunk)
		if n > 0 {
			logger.Debugf("%s: fed %d bytes", name, n)
			dec.Feed(chunk[:n])
			if derr := drain(); derr != nil {
				return derr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// decodeValueToJSON 把 resp.Value 投影成 map[string]any 只通过
// 导出的访问器读取字段 和 controller/decode.go 里 routeDecode 用的
// 是同一种投影规则 两处各自维护一份避免 cmd 包依赖 controller 包
func decodeValueToJSON(v resp.Value) map[string]any {
	m := map[string]any{"kind": v.Kind.String()}
	if v.IsNull() {
		m["null"] = true
		return m
	}

	switch v.Kind {
	case resp.KindSimpleString, resp.KindError, resp.KindBigNumber:
		text, _ := v.Text()
		m["value"] = text

	case resp.KindInteger:
		m["value"] = v.Int64()

	case resp.KindBoolean:
		m["value"] = v.Bool()

	case resp.KindDouble:
		m["value"] = v.Float64()

	case resp.KindBulkString, resp.KindBulkError, resp.KindVerbatimString:
		if text, err := v.Text(); err == nil {
			m["value"] = text
		} else {
			m["bytesBase64"] = base64.StdEncoding.EncodeToString(v.Bytes())
		}

	case resp.KindArray, resp.KindSet, resp.KindPush:
		elems := v.Elements()
		out := make([]map[string]any, 0, len(elems))
		for _, e := range elems {
			out = append(out, decodeValueToJSON(e))
		}
		m["elements"] = out

	case resp.KindMap:
		pairs := v.Pairs()
		out := make([]map[string]any, 0, len(pairs))
		for _, p := range pairs {
			out = append(out, map[string]any{
				"key":   decodeValueToJSON(p.Key),
				"value": decodeValueToJSON(p.Value),
			})
		}
		m["pairs"] = out
	}
	return m
}
