// Package version 提供构建版本信息
package version

import (
	"fmt"
	"runtime"
)

// 构建时注入的变量，通过ldflags设置：
//
//	go build -ldflags "-X github.com/weisyn/vpnroom/internal/app/version.Version=v0.2.0"
var (
	Version   = "v0.0.1"
	BuildTime = "unknown"
	BuildEnv  = "development"
)

// BuildInfo 构建信息
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	BuildEnv  string `json:"build_env"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetBuildInfo 获取构建信息
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		BuildEnv:  BuildEnv,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String 多行展示
func (b BuildInfo) String() string {
	s := fmt.Sprintf("roomctl %s", b.Version)
	if b.BuildTime != "unknown" {
		s += fmt.Sprintf("\n构建时间: %s", b.BuildTime)
	}
	s += fmt.Sprintf("\n构建环境: %s", b.BuildEnv)
	s += fmt.Sprintf("\nGo版本: %s", b.GoVersion)
	s += fmt.Sprintf("\n平台: %s", b.Platform)
	return s
}
