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

// Package controller 把 server 包的纯路由能力和这个项目具体的指标/
// 解码路由粘合在一起 对应教学代码里 controller.Controller 持有
// *server.Server 并在 setupServer 里注册路由的做法 这里砍掉了和
// 抓包/流水线相关的一切 只保留 /metrics 和 /decode
package controller

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/daydaydrunk/stream-resp/common"
	"github.com/daydaydrunk/stream-resp/confengine"
	"github.com/daydaydrunk/stream-resp/internal/metrics"
	"github.com/daydaydrunk/stream-resp/internal/rescue"
	"github.com/daydaydrunk/stream-resp/logger"
	"github.com/daydaydrunk/stream-resp/resp"
	"github.com/daydaydrunk/stream-resp/server"
)

// Controller 持有可选的 debug server 以及它暴露的 buildInfo
type Controller struct {
	buildInfo common.BuildInfo
	limits    resp.Limits
	svr       *server.Server
}

func setupLogger(conf *confengine.Config) error {
	var opts logger.Options
	if err := conf.UnpackChild("logger", &opts); err != nil {
		return err
	}
	if opts.Filename == "" {
		opts.Filename = "stream-resp.log"
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = 10
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = 7
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = 100
	}
	logger.SetOptions(opts)
	return nil
}

// New 按 conf 构造 Controller 当 server.enabled 为 false 时 .svr 为 nil
// Start 在这种情况下只是空操作
func New(conf *confengine.Config, buildInfo common.BuildInfo) (*Controller, error) {
	if err := setupLogger(conf); err != nil {
		return nil, err
	}

	var limits resp.Limits
	if err := conf.UnpackChild("decoder", &limits); err != nil {
		return nil, err
	}

	svr, err := server.New(conf)
	if err != nil {
		return nil, err
	}

	return &Controller{
		buildInfo: buildInfo,
		limits:    limits,
		svr:       svr,
	}, nil
}

// Start 注册路由并在后台启动 HTTP 监听 非阻塞
func (c *Controller) Start() error {
	if c.svr == nil {
		return nil
	}
	c.setupRoutes()

	go func() {
		defer rescue.HandleCrash()
		err := c.svr.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, io.EOF) {
			logger.Errorf("debug server exited: %v", err)
		}
	}()
	return nil
}

// Stop 优雅关闭 debug server (如果启用的话) 留给 ctx 一个有限的
// 等待窗口让在途的 /decode 请求完成
func (c *Controller) Stop(ctx context.Context) error {
	if c.svr == nil {
		return nil
	}
	return c.svr.Shutdown(ctx)
}

func (c *Controller) setupRoutes() {
	c.svr.RegisterGetRoute("/metrics", func(w http.ResponseWriter, r *http.Request) {
		c.recordMetrics()
		promhttp.Handler().ServeHTTP(w, r)
	})
	c.svr.RegisterPostRoute("/decode", c.routeDecode)
}

func (c *Controller) recordMetrics() {
	metrics.Uptime.Set(float64(time.Now().Unix() - common.Started()))
	metrics.BuildInfo.WithLabelValues(c.buildInfo.Version, c.buildInfo.GitHash, c.buildInfo.Time).Inc()
}
