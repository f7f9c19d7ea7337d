// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package mpegts

import (
	"bufio"
	"bytes"
	"io"

	"github.com/q191201771/tspes/pkg/base"
)

// TsPacketReader 从字节流中逐个读取188字节的TS packet
//
// 当前位置不是sync_byte时，逐字节向后移动，直到再次遇到0x47
type TsPacketReader struct {
	r      *bufio.Reader
	packet [TsPacketSize]byte

	skippedBytes int
	packetCount  int
}

func NewTsPacketReader(r io.Reader) *TsPacketReader {
	return &TsPacketReader{
		r: bufio.NewReaderSize(r, base.TsPacketReaderBufSize),
	}
}

// ReadPacket 返回的内存块在下一次调用前有效
//
// 数据读完时返回io.EOF，末尾不足188字节的部分计入 SkippedBytes
func (tr *TsPacketReader) ReadPacket() ([]byte, error) {
	for {
		b, err := tr.r.Peek(TsPacketSize)
		if len(b) < TsPacketSize {
			if err == nil {
				err = io.ErrUnexpectedEOF
			}
			if err == io.EOF && len(b) > 0 {
				Log.Warnf("drop tail bytes. len=%d", len(b))
				tr.skippedBytes += len(b)
				_, _ = tr.r.Discard(len(b))
			}
			return nil, err
		}

		if b[0] == syncByte {
			copy(tr.packet[:], b)
			_, _ = tr.r.Discard(TsPacketSize)
			tr.packetCount++
			return tr.packet[:], nil
		}

		n := resyncOffset(b)
		tr.skippedBytes += n
		_, _ = tr.r.Discard(n)
	}
}

// SkippedBytes 为了重新同步而跳过的字节数
func (tr *TsPacketReader) SkippedBytes() int {
	return tr.skippedBytes
}

func (tr *TsPacketReader) PacketCount() int {
	return tr.packetCount
}

// SplitTsPackets 将内存中的TS数据切分成多个TS packet，返回的每个packet引用 b 的内存
//
// @return skipped: 为了重新同步而跳过的字节数，包含末尾不足188字节的部分
func SplitTsPackets(b []byte) (packets [][]byte, skipped int) {
	for len(b) >= TsPacketSize {
		if b[0] != syncByte {
			n := resyncOffset(b[:TsPacketSize])
			skipped += n
			b = b[n:]
			continue
		}
		packets = append(packets, b[:TsPacketSize])
		b = b[TsPacketSize:]
	}
	skipped += len(b)
	return
}

// 第0个字节不是sync_byte，返回下一个sync_byte候选位置的偏移
func resyncOffset(b []byte) int {
	idx := bytes.IndexByte(b[1:], syncByte)
	if idx < 0 {
		return len(b)
	}
	return idx + 1
}
