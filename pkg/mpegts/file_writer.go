// Copyright 2019, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package mpegts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/q191201771/naza/pkg/nazaerrors"
	"github.com/q191201771/tspes/pkg/base"
)

// FileWriter 将组装完成的PES负载追加写入文件，即PID对应的ES流
type FileWriter struct {
	fp *os.File

	writeBytes int
	writeCount int
}

// EsFilename e.g. ./out/PID136.mp2
func EsFilename(dir string, pid uint16, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("PID%d.%s", pid, ext))
}

func (fw *FileWriter) Create(filename string) (err error) {
	fw.fp, err = os.Create(filename)
	return
}

func (fw *FileWriter) Write(b []byte) (err error) {
	if fw.fp == nil {
		return nazaerrors.Wrap(base.ErrMpegts)
	}
	if len(b) == 0 {
		return nil
	}
	_, err = fw.fp.Write(b)
	if err == nil {
		fw.writeBytes += len(b)
		fw.writeCount++
	}
	return
}

func (fw *FileWriter) Dispose() error {
	if fw.fp == nil {
		return nazaerrors.Wrap(base.ErrMpegts)
	}
	err := fw.fp.Close()
	fw.fp = nil
	return err
}

func (fw *FileWriter) Name() string {
	if fw.fp == nil {
		return ""
	}
	return fw.fp.Name()
}

func (fw *FileWriter) WriteBytes() int {
	return fw.writeBytes
}

func (fw *FileWriter) WriteCount() int {
	return fw.writeCount
}
