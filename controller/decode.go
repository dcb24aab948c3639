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

package controller

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/daydaydrunk/stream-resp/internal/metrics"
	"github.com/daydaydrunk/stream-resp/logger"
	"github.com/daydaydrunk/stream-resp/resp"
)

// routeDecode 把请求体当作原始 RESP 字节流解码 响应是换行分隔的
// JSON 每行对应一个顶层 Value 这是这个包里唯一真正跨越 I/O 边界的
// 地方 解码逻辑本身完全留在 resp 包里 这里只做编排和序列化
func (c *Controller) routeDecode(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	dec := resp.New(c.limits)
	defer dec.Reset()
	logger.Debugf("/decode: fed %d request body bytes", len(body))
	dec.Feed(body)

	w.Header().Set("Content-Type", "application/x-ndjson")
	enc := json.NewEncoder(w)

	for {
		v, err := dec.TryNext()
		if err != nil {
			de, ok := err.(*resp.DecodeError)
			if ok && de.Recoverable() {
				logger.Debugf("/decode: try_next suspended, waiting for more input")
				metrics.ObserveDecodeResult("", err)
				return
			}
			metrics.ObserveDecodeResult("", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		logger.Debugf("/decode: decoded %s value", v.Kind.String())
		metrics.ObserveDecodeResult(v.Kind.String(), nil)
		if err := enc.Encode(valueToJSON(v)); err != nil {
			logger.Errorf("failed to write decode response: %v", err)
			return
		}
	}
}

func valueToJSON(v resp.Value) map[string]any {
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
			out = append(out, valueToJSON(e))
		}
		m["elements"] = out

	case resp.KindMap:
		pairs := v.Pairs()
		out := make([]map[string]any, 0, len(pairs))
		for _, p := range pairs {
			out = append(out, map[string]any{
				"key":   valueToJSON(p.Key),
				"value": valueToJSON(p.Value),
			})
		}
		m["pairs"] = out
	}
	return m
}
