// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

// +build cgo

package logic

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/haivision/srtgo"
	"github.com/q191201771/naza/pkg/nazaerrors"
	"github.com/q191201771/tspes/pkg/base"
)

type srtInput struct {
	socket *srtgo.SrtSocket
	r      *bufio.Reader
}

func openSrtInput(rawUrl string) (io.ReadCloser, error) {
	host, port, options, err := parseSrtUrl(rawUrl)
	if err != nil {
		return nil, err
	}

	socket := srtgo.NewSrtSocket(host, port, options)
	if socket == nil {
		return nil, nazaerrors.Wrap(fmt.Errorf("%w: %s", base.ErrInvalidUrl, rawUrl))
	}
	if err = socket.Connect(); err != nil {
		socket.Close()
		return nil, err
	}
	Log.Infof("srt input connected. url=%s", rawUrl)

	return &srtInput{
		socket: socket,
		r:      bufio.NewReaderSize(socket, base.TsPacketReaderBufSize),
	}, nil
}

func (in *srtInput) Read(b []byte) (int, error) {
	n, err := in.r.Read(b)
	if errors.Is(err, srtgo.EConnLost) {
		return n, io.EOF
	}
	return n, err
}

func (in *srtInput) Close() error {
	in.socket.Close()
	return nil
}

// parseSrtUrl srt://host:port?k1=v1&k2=v2，query中的参数作为SRT socket选项，默认为caller模式的live传输
func parseSrtUrl(rawUrl string) (host string, port uint16, options map[string]string, err error) {
	u, err := url.Parse(rawUrl)
	if err != nil {
		return "", 0, nil, nazaerrors.Wrap(err)
	}
	host = u.Hostname()
	p, err := strconv.ParseUint(u.Port(), 10, 16)
	if host == "" || err != nil {
		return "", 0, nil, nazaerrors.Wrap(fmt.Errorf("%w: %s", base.ErrInvalidUrl, rawUrl))
	}

	options = map[string]string{
		"transtype": "live",
		"blocking":  "1",
	}
	for k, v := range u.Query() {
		if len(v) > 0 {
			options[k] = v[0]
		}
	}
	return host, uint16(p), options, nil
}
