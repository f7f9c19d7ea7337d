// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package logic

import (
	"path/filepath"

	"github.com/q191201771/naza/pkg/nazalog"
)

var Log = nazalog.GetGlobalLogger()

// DefaultConfFilenameList 没有指定配置文件时，按顺序作为优先级，找到第一个存在的并使用
var DefaultConfFilenameList = []string{
	filepath.FromSlash("tsparser.conf.json"),
	filepath.FromSlash("./conf/tsparser.conf.json"),
	filepath.FromSlash("../tsparser.conf.json"),
	filepath.FromSlash("../conf/tsparser.conf.json"),
	filepath.FromSlash("../../conf/tsparser.conf.json"),
}

