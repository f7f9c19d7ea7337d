// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package logic_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/q191201771/naza/pkg/assert"
	"github.com/q191201771/tspes/pkg/logic"
)

func TestOpenInput_File(t *testing.T) {
	dir, err := ioutil.TempDir("", "tspes")
	assert.Equal(t, nil, err)
	defer os.RemoveAll(dir)

	filename := filepath.Join(dir, "in.ts")
	err = ioutil.WriteFile(filename, []byte{0x47, 0x01, 0x02}, 0666)
	assert.Equal(t, nil, err)

	for _, u := range []string{filename, "file://" + filename} {
		in, err := logic.OpenInput(u)
		assert.Equal(t, nil, err)
		b, err := ioutil.ReadAll(in)
		assert.Equal(t, nil, err)
		assert.Equal(t, []byte{0x47, 0x01, 0x02}, b)
		assert.Equal(t, nil, in.Close())
	}

	_, err = logic.OpenInput(filepath.Join(dir, "not_exist.ts"))
	assert.IsNotNil(t, err)
}

func TestOpenInput_Invalid(t *testing.T) {
	for _, u := range []string{"", "file://", "udp://", "rtmp://127.0.0.1/live/test"} {
		_, err := logic.OpenInput(u)
		assert.IsNotNil(t, err)
	}
}
