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
	"io"
	"testing"

	"github.com/q191201771/naza/pkg/assert"
	"github.com/q191201771/tspes/pkg/mpegts"
)

func TestTsPacketReader(t *testing.T) {
	stream, _ := packStream([]int{1000, 2000}, testPid, false)
	n := len(stream) / mpegts.TsPacketSize

	var b []byte
	b = append(b, 0x00, 0x11, 0x22, 0x33, 0x44) // 开头的垃圾数据
	b = append(b, stream[:mpegts.TsPacketSize]...)
	b = append(b, 0x00, 0x01) // 中间的垃圾数据
	b = append(b, stream[mpegts.TsPacketSize:]...)
	b = append(b, 0x47, 0x00, 0x01) // 末尾不足一个packet

	tr := mpegts.NewTsPacketReader(bytes.NewReader(b))
	var packets [][]byte
	for {
		p, err := tr.ReadPacket()
		if err != nil {
			assert.Equal(t, io.EOF, err)
			break
		}
		packets = append(packets, append([]byte(nil), p...))
	}

	assert.Equal(t, n, len(packets))
	assert.Equal(t, n, tr.PacketCount())
	assert.Equal(t, 5+2+3, tr.SkippedBytes())
	for i := range packets {
		assert.Equal(t, stream[i*mpegts.TsPacketSize:(i+1)*mpegts.TsPacketSize], packets[i])
	}

	// 空数据
	tr = mpegts.NewTsPacketReader(bytes.NewReader(nil))
	_, err := tr.ReadPacket()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 0, tr.SkippedBytes())
}

func TestSplitTsPackets(t *testing.T) {
	stream, _ := packStream([]int{500}, testPid, false)

	packets, skipped := mpegts.SplitTsPackets(stream)
	assert.Equal(t, len(stream)/mpegts.TsPacketSize, len(packets))
	assert.Equal(t, 0, skipped)

	b := append([]byte{0x01, 0x02}, stream...)
	b = append(b, 0x47)
	packets, skipped = mpegts.SplitTsPackets(b)
	assert.Equal(t, len(stream)/mpegts.TsPacketSize, len(packets))
	assert.Equal(t, 3, skipped)
	assert.Equal(t, stream[:mpegts.TsPacketSize], packets[0])

	packets, skipped = mpegts.SplitTsPackets(stream[:100])
	assert.Equal(t, 0, len(packets))
	assert.Equal(t, 100, skipped)
}
