// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package logic

import (
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/q191201771/naza/pkg/nazaerrors"
	"github.com/q191201771/naza/pkg/nazanet"
	"github.com/q191201771/tspes/pkg/base"
)

const (
	schemeFile = "file://"
	schemeUdp  = "udp://"
	schemeSrt  = "srt://"
)

// OpenInput 打开TS数据源
//
// 支持以下格式:
//   /path/to/in.ts
//   file:///path/to/in.ts
//   udp://0.0.0.0:1234            监听本地端口，接收TS over UDP
//   srt://127.0.0.1:6001?streamid=xxx 作为caller连接SRT服务，query中的参数作为SRT socket选项
func OpenInput(rawUrl string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(rawUrl, schemeFile):
		return openFileInput(strings.TrimPrefix(rawUrl, schemeFile))
	case strings.HasPrefix(rawUrl, schemeUdp):
		return openUdpInput(strings.TrimPrefix(rawUrl, schemeUdp))
	case strings.HasPrefix(rawUrl, schemeSrt):
		return openSrtInput(rawUrl)
	case strings.Contains(rawUrl, "://"):
		return nil, nazaerrors.Wrap(fmt.Errorf("%w: %s", base.ErrInvalidUrl, rawUrl))
	}
	return openFileInput(rawUrl)
}

func openFileInput(filename string) (io.ReadCloser, error) {
	if filename == "" {
		return nil, nazaerrors.Wrap(base.ErrInvalidUrl)
	}
	fp, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nazaerrors.Wrap(fmt.Errorf("%w: %s", base.ErrFileNotExist, filename))
		}
		return nil, err
	}
	return fp, nil
}

// ---------------------------------------------------------------------------------------------------------------------

// udpInput 收到的数据报按顺序写入pipe，读端就是一个连续的字节流
type udpInput struct {
	conn *nazanet.UdpConnection
	pr   *io.PipeReader
	pw   *io.PipeWriter
}

func openUdpInput(addr string) (io.ReadCloser, error) {
	if addr == "" {
		return nil, nazaerrors.Wrap(base.ErrInvalidUrl)
	}
	conn, err := nazanet.NewUdpConnection(func(option *nazanet.UdpConnectionOption) {
		option.LAddr = addr
	})
	if err != nil {
		return nil, err
	}
	Log.Infof("udp input listen. addr=%s", addr)

	pr, pw := io.Pipe()
	in := &udpInput{
		conn: conn,
		pr:   pr,
		pw:   pw,
	}
	go func() {
		err := conn.RunLoop(func(b []byte, raddr *net.UDPAddr, err error) bool {
			if err != nil {
				return false
			}
			if _, werr := pw.Write(b); werr != nil {
				return false
			}
			return true
		})
		Log.Debugf("udp input loop done. addr=%s, err=%+v", addr, err)
		_ = pw.CloseWithError(err)
	}()
	return in, nil
}

func (in *udpInput) Read(b []byte) (int, error) {
	return in.pr.Read(b)
}

func (in *udpInput) Close() error {
	_ = in.pr.Close()
	return in.conn.Dispose()
}
