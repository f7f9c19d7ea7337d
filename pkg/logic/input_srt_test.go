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
	"testing"

	"github.com/q191201771/naza/pkg/assert"
)

func TestParseSrtUrl(t *testing.T) {
	host, port, options, err := parseSrtUrl("srt://127.0.0.1:6001?streamid=live/test&latency=200")
	assert.Equal(t, nil, err)
	assert.Equal(t, "127.0.0.1", host)
	assert.Equal(t, uint16(6001), port)
	assert.Equal(t, "live", options["transtype"])
	assert.Equal(t, "1", options["blocking"])
	assert.Equal(t, "200", options["latency"])
	assert.Equal(t, "live/test", options["streamid"])

	_, _, _, err = parseSrtUrl("srt://127.0.0.1")
	assert.IsNotNil(t, err)
	_, _, _, err = parseSrtUrl("srt://:6001")
	assert.IsNotNil(t, err)
	_, _, _, err = parseSrtUrl("srt://127.0.0.1:70000")
	assert.IsNotNil(t, err)
}
