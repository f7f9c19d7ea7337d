// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package mpegts_test

import (
	"bytes"
	"context"
	"testing"

	ts "github.com/asticode/go-astits"
	"github.com/q191201771/naza/pkg/assert"
	"github.com/q191201771/tspes/pkg/mpegts"
)

// 用go-astits解复用同一份数据，PES负载应当和PesAssembler的组装结果一致
func TestPesAssembler_CompareWithAstits(t *testing.T) {
	sizes := []int{1, 33, 184, 700, 1500, 3000, 12345}
	stream, frames := packStream(sizes, testPid, true)

	// 其他PID的数据穿插在中间，不影响组装
	other, _ := packStream([]int{300, 400}, 257, false)
	mixed := append(append([]byte(nil), other[:mpegts.TsPacketSize]...), stream...)
	mixed = append(mixed, other[mpegts.TsPacketSize:]...)

	var expected [][]byte
	dmx := ts.NewDemuxer(context.Background(), bytes.NewReader(mixed), ts.DemuxerOptPacketSize(mpegts.TsPacketSize))
	for {
		d, err := dmx.NextData()
		if err != nil {
			assert.Equal(t, ts.ErrNoMorePackets, err)
			break
		}
		if d == nil || d.PES == nil || d.FirstPacket == nil || d.FirstPacket.Header.PID != testPid {
			continue
		}
		expected = append(expected, append([]byte(nil), d.PES.Data...))
	}
	assert.Equal(t, frames, expected)

	var units [][]byte
	a := mpegts.NewPesAssembler(testPid)
	tr := mpegts.NewTsPacketReader(bytes.NewReader(mixed))
	for {
		p, err := tr.ReadPacket()
		if err != nil {
			break
		}
		r := absorb(t, a, p)
		if r == mpegts.AssembleResultFinished || (r == mpegts.AssembleResultStarted && a.IsComplete()) {
			units = append(units, append([]byte(nil), a.Packet()...))
		}
	}
	assert.Equal(t, expected, units)
	assert.Equal(t, 0, tr.SkippedBytes())
}
