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

// Package metrics 定义进程级别的 prometheus 指标 供 debug server 的
// /metrics 路由暴露
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/daydaydrunk/stream-resp/common"
	"github.com/daydaydrunk/stream-resp/resp"
)

var (
	Uptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: common.App,
			Name:      "uptime",
			Help:      "Uptime in seconds",
		},
	)

	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: common.App,
			Name:      "build_info",
			Help:      "Build information",
		},
		[]string{"version", "git_hash", "build_time"},
	)

	// ValuesDecodedTotal 按 Value Kind 计数成功解码的数量
	ValuesDecodedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: common.App,
			Name:      "values_decoded_total",
			Help:      "Decoded RESP values total, labeled by kind",
		},
		[]string{"kind"},
	)

	// DecodeErrorsTotal 按错误类别计数解码失败的次数
	DecodeErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: common.App,
			Name:      "decode_errors_total",
			Help:      "Fatal decode errors total, labeled by error kind",
		},
		[]string{"kind"},
	)

	// IncompleteTotal 统计 try_next 因为数据不足而挂起的次数
	IncompleteTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: common.App,
			Name:      "incomplete_total",
			Help:      "try_next calls that suspended waiting for more input",
		},
	)
)

// panic_total 这个指标由 internal/rescue 注册 不在这里重复定义
// 两边都调用 promauto.NewCounter 注册同一个全限定名会在 init 阶段
// 因为 prometheus 重复注册而 panic

// ObserveDecodeResult 按 err 的类型把一次 TryNext 调用的结果计入
// 对应的计数器 err 为 nil 时 kind 必须是已经成功解码的 Value 的
// Kind
func ObserveDecodeResult(kind string, err error) {
	if err == nil {
		ValuesDecodedTotal.WithLabelValues(kind).Inc()
		return
	}
	de, ok := err.(*resp.DecodeError)
	if !ok {
		DecodeErrorsTotal.WithLabelValues("unknown").Inc()
		return
	}
	if de.Recoverable() {
		IncompleteTotal.Inc()
		return
	}
	DecodeErrorsTotal.WithLabelValues(de.Kind.String()).Inc()
}
