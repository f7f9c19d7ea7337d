// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import "errors"

// ----- 通用的 ---------------------------------------------------------------------------------------------------------

var (
	ErrShortBuffer  = errors.New("tspes: buffer too short")
	ErrFileNotExist = errors.New("tspes: file not exist")
)

// ----- pkg/mpegts ----------------------------------------------------------------------------------------------------

var (
	ErrMpegts = errors.New("tspes.mpegts: fxxk")

	ErrTsSyncByte   = errors.New("tspes.mpegts: invalid sync byte")
	ErrTsAdaptation = errors.New("tspes.mpegts: invalid adaptation field")
	ErrPesStartCode = errors.New("tspes.mpegts: invalid pes start code prefix")
)

// ----- pkg/logic -----------------------------------------------------------------------------------------------------

var (
	ErrInvalidUrl      = errors.New("tspes.logic: invalid input url")
	ErrInvalidConfig   = errors.New("tspes.logic: invalid config")
	ErrSessionDisposed = errors.New("tspes.logic: session already disposed")
)
