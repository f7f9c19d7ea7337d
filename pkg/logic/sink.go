// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package logic

import (
	"os"

	"github.com/q191201771/tspes/pkg/mpegts"
)

// IEsSink 接收组装完成的PES负载
type IEsSink interface {
	// OnPesPacket
	//
	// @param payload: 不含PES header。内存块只在回调期间有效，如果需要持有，需自行拷贝
	OnPesPacket(pid uint16, header mpegts.PesHeader, payload []byte) error

	Dispose() error
}

// FileSink 将PES负载追加写入 PID<pid>.<ext> 文件，得到该PID的ES流
type FileSink struct {
	fw mpegts.FileWriter
}

func NewFileSink(outPath string, pid uint16, ext string) (*FileSink, error) {
	if err := os.MkdirAll(outPath, 0777); err != nil {
		return nil, err
	}
	s := &FileSink{}
	filename := mpegts.EsFilename(outPath, pid, ext)
	if err := s.fw.Create(filename); err != nil {
		return nil, err
	}
	Log.Infof("create es file. filename=%s", filename)
	return s, nil
}

func (s *FileSink) OnPesPacket(pid uint16, header mpegts.PesHeader, payload []byte) error {
	return s.fw.Write(payload)
}

func (s *FileSink) Dispose() error {
	Log.Infof("close es file. filename=%s, bytes=%d, count=%d", s.fw.Name(), s.fw.WriteBytes(), s.fw.WriteCount())
	return s.fw.Dispose()
}

func (s *FileSink) Name() string {
	return s.fw.Name()
}

// DiscardSink 只统计，不输出
type DiscardSink struct{}

func (DiscardSink) OnPesPacket(pid uint16, header mpegts.PesHeader, payload []byte) error {
	return nil
}

func (DiscardSink) Dispose() error {
	return nil
}
