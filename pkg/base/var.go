// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import "github.com/q191201771/naza/pkg/nazalog"

var Log = nazalog.GetGlobalLogger()

// ----- mpegts --------------------
var (
	// TsPacketReaderBufSize 读取字节流时使用的缓冲大小，7个TS packet为常见的UDP/SRT载荷大小
	TsPacketReaderBufSize = 188 * 7 * 16
)

// ----- logic --------------------
var (
	// DefaultPid 默认解析的音频PID
	DefaultPid uint16 = 136

	// DefaultOutExt 输出ES文件的扩展名
	DefaultOutExt = "mp2"

	// DefaultDumpMaxNum debug级别下，逐包诊断日志最多打印的次数
	DefaultDumpMaxNum = 64
)
