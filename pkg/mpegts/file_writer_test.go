// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package mpegts_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/q191201771/naza/pkg/assert"
	"github.com/q191201771/tspes/pkg/mpegts"
)

func TestEsFilename(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "PID136.mp2"), mpegts.EsFilename("out", 136, "mp2"))
	assert.Equal(t, "PID256.h264", mpegts.EsFilename("", 256, "h264"))
}

func TestFileWriter(t *testing.T) {
	dir, err := ioutil.TempDir("", "tspes")
	assert.Equal(t, nil, err)
	defer os.RemoveAll(dir)

	var fw mpegts.FileWriter
	assert.IsNotNil(t, fw.Write([]byte{1}))
	assert.IsNotNil(t, fw.Dispose())
	assert.Equal(t, "", fw.Name())

	filename := mpegts.EsFilename(dir, testPid, "mp2")
	err = fw.Create(filename)
	assert.Equal(t, nil, err)
	assert.Equal(t, filename, fw.Name())

	assert.Equal(t, nil, fw.Write(seqBytes(10, 0)))
	assert.Equal(t, nil, fw.Write(nil))
	assert.Equal(t, nil, fw.Write(seqBytes(5, 10)))
	assert.Equal(t, 15, fw.WriteBytes())
	assert.Equal(t, 2, fw.WriteCount())
	assert.Equal(t, nil, fw.Dispose())

	content, err := ioutil.ReadFile(filename)
	assert.Equal(t, nil, err)
	assert.Equal(t, seqBytes(15, 0), content)
}
