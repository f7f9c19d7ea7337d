// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import "strings"

// 版本信息相关
// 一部分版本信息使用了naza.bininfo，另外一些信息由本文件提供

// 版本，该变量由外部脚本修改维护
const TspesVersion = "v0.1.0"

var (
	TspesLibraryName = "tspes"
	TspesGithubRepo  = "github.com/q191201771/tspes"
	TspesGithubSite  = "https://github.com/q191201771/tspes"

	// e.g. tspes v0.1.0 (github.com/q191201771/tspes)
	TspesFullInfo = TspesLibraryName + " " + TspesVersion + " (" + TspesGithubRepo + ")"

	// e.g. 0.1.0
	TspesVersionDot string
)

func init() {
	TspesVersionDot = strings.TrimPrefix(TspesVersion, "v")
}
