// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package mpegts_test

import (
	"testing"

	"github.com/q191201771/naza/pkg/assert"
	"github.com/q191201771/tspes/pkg/mpegts"
)

func TestParsePesHeader(t *testing.T) {
	b := pesBytes(mpegts.StreamIdAudio, 10, 0, []byte{1, 2, 3})
	h, err := mpegts.ParsePesHeader(b, len(b))
	assert.Equal(t, nil, err)
	assert.Equal(t, mpegts.PesStartCodePrefix, h.Pscp)
	assert.Equal(t, mpegts.StreamIdAudio, h.Sid)
	assert.Equal(t, uint16(10), h.Ppl)
	assert.Equal(t, uint8(0), h.Phdl)
	assert.Equal(t, 9, h.HeaderLength())
	size, ok := h.UnitSize()
	assert.Equal(t, true, ok)
	assert.Equal(t, 7, size)

	b = pesBytes(mpegts.StreamIdVideo, 0, 5, nil)
	h, err = mpegts.ParsePesHeader(b, len(b))
	assert.Equal(t, nil, err)
	assert.Equal(t, 14, h.HeaderLength())
	assert.Equal(t, true, h.IsUnbounded())
	_, ok = h.UnitSize()
	assert.Equal(t, false, ok)
}

func TestParsePesHeader_NoOptionalHeader(t *testing.T) {
	sids := []uint8{
		mpegts.StreamIdProgramStreamMap,
		mpegts.StreamIdPaddingStream,
		mpegts.StreamIdPrivateStream2,
		mpegts.StreamIdEcm,
		mpegts.StreamIdEmm,
		mpegts.StreamIdProgramStreamDirectory,
		mpegts.StreamIdDsmcc,
		mpegts.StreamIdItutH2221TypeE,
	}
	for _, sid := range sids {
		assert.Equal(t, false, mpegts.HasPesOptionalHeader(sid))

		// 只有6字节也可以解析
		b := pesBytes(sid, 100, 0, nil)
		assert.Equal(t, 6, len(b))
		h, err := mpegts.ParsePesHeader(b, len(b))
		assert.Equal(t, nil, err)
		assert.Equal(t, sid, h.Sid)
		assert.Equal(t, 6, h.HeaderLength())
		size, ok := h.UnitSize()
		assert.Equal(t, true, ok)
		assert.Equal(t, 100, size)
	}

	assert.Equal(t, true, mpegts.HasPesOptionalHeader(mpegts.StreamIdPrivateStream1))
	assert.Equal(t, true, mpegts.HasPesOptionalHeader(mpegts.StreamIdAudio))
	assert.Equal(t, true, mpegts.HasPesOptionalHeader(mpegts.StreamIdVideo))
}

func TestParsePesHeader_Invalid(t *testing.T) {
	var err error

	b := pesBytes(mpegts.StreamIdAudio, 10, 0, nil)
	b[2] = 0x02
	_, err = mpegts.ParsePesHeader(b, len(b))
	assert.IsNotNil(t, err)

	// 少于6字节
	b = pesBytes(mpegts.StreamIdAudio, 10, 0, nil)
	_, err = mpegts.ParsePesHeader(b, 5)
	assert.IsNotNil(t, err)

	// 有扩展头，但少于9字节
	_, err = mpegts.ParsePesHeader(b, 8)
	assert.IsNotNil(t, err)
	_, err = mpegts.ParsePesHeader(b[:8], 100)
	assert.IsNotNil(t, err)

	_, err = mpegts.ParsePesHeader(b, 9)
	assert.Equal(t, nil, err)
}

func TestParsePesHeader_PtsDts(t *testing.T) {
	frame := mpegts.Frame{
		Pts: 90000,
		Dts: 90000,
		Pid: mpegts.PidAudio,
		Sid: mpegts.StreamIdAudio,
		Raw: seqBytes(10, 0),
	}
	packets, _ := mpegts.SplitTsPackets(frame.Pack())
	assert.Equal(t, 1, len(packets))
	h, err := mpegts.ParsePesHeader(packets[0][4+1+int(packets[0][4]):], 188)
	assert.Equal(t, nil, err)
	assert.Equal(t, uint8(2), h.PtsDtsFlags)
	assert.Equal(t, uint64(90000+63000), h.Pts)
	assert.Equal(t, h.Pts, h.Dts)
	assert.Equal(t, 14, h.HeaderLength())

	frame = mpegts.Frame{
		Pts: 93600,
		Dts: 90000,
		Pid: mpegts.PidVideo,
		Sid: mpegts.StreamIdVideo,
		Key: true,
		Raw: seqBytes(10, 0),
	}
	packets, _ = mpegts.SplitTsPackets(frame.Pack())
	assert.Equal(t, 1, len(packets))
	h, err = mpegts.ParsePesHeader(packets[0][4+1+int(packets[0][4]):], 188)
	assert.Equal(t, nil, err)
	assert.Equal(t, uint8(3), h.PtsDtsFlags)
	assert.Equal(t, uint64(93600+63000), h.Pts)
	assert.Equal(t, uint64(90000+63000), h.Dts)
	assert.Equal(t, 19, h.HeaderLength())
}
