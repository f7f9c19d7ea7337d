// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

// +build !cgo

package logic

import (
	"fmt"
	"io"

	"github.com/q191201771/naza/pkg/nazaerrors"
	"github.com/q191201771/tspes/pkg/base"
)

// srtgo依赖libsrt，关闭cgo时不支持srt输入
func openSrtInput(rawUrl string) (io.ReadCloser, error) {
	return nil, nazaerrors.Wrap(fmt.Errorf("%w: srt input requires cgo. url=%s", base.ErrInvalidUrl, rawUrl))
}
