// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import (
	"fmt"

	"github.com/q191201771/naza/pkg/nazalog"
)

// LogDump 控制逐包诊断日志的打印次数
//
// trace级别不限次数，debug级别最多打印 debugMaxNum 次，其他级别不打印
type LogDump struct {
	log         nazalog.Logger
	debugMaxNum int

	count int // 已经放行的次数，trace级别也计入
}

// NewLogDump
//
// @param debugMaxNum: debug级别下最多打印的packet数
func NewLogDump(log nazalog.Logger, debugMaxNum int) LogDump {
	return LogDump{
		log:         log,
		debugMaxNum: debugMaxNum,
	}
}

// ShouldDump 返回true时计数加一，调用方随后调用 Outf
//
// 与 Outf 分开，是为了不打印时不用构造dump字符串
func (ld *LogDump) ShouldDump() bool {
	level := ld.log.GetOption().Level
	if level > nazalog.LevelDebug {
		return false
	}
	if level == nazalog.LevelDebug && ld.count >= ld.debugMaxNum {
		return false
	}
	ld.count++
	return true
}

func (ld *LogDump) Outf(format string, v ...interface{}) {
	ld.log.Out(ld.log.GetOption().Level, 3, fmt.Sprintf(format, v...))
}

// DumpCount 已经打印的次数
func (ld *LogDump) DumpCount() int {
	return ld.count
}
