package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGetBuildInfo 测试构建信息
func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.Contains(t, info.String(), "roomctl "+Version)
	assert.NotContains(t, info.String(), "构建时间")
}
