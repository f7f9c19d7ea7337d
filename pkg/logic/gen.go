// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package logic

import (
	"io"

	"github.com/q191201771/tspes/pkg/mpegts"
)

// 每隔多少帧插入一个null packet
const genNullPacketInterval = 4

// GenerateStream 生成一段单PID的测试TS流，每帧之间穿插null packet
//
// 第i帧的大小为 frameSize + i*7，帧内容为递增字节，间隔1024个90kHz tick。返回写入的帧数
func GenerateStream(w io.Writer, pid uint16, frameNum int, frameSize int) (int, error) {
	var cc uint8
	var nullPacket [mpegts.TsPacketSize]byte
	nullPacket[0] = 0x47
	nullPacket[1] = uint8(mpegts.PidNull >> 8)
	nullPacket[2] = uint8(mpegts.PidNull & 0xFF)
	nullPacket[3] = 0x10

	for i := 0; i < frameNum; i++ {
		raw := make([]byte, frameSize+i*7)
		for j := range raw {
			raw[j] = uint8(i + j)
		}
		frame := mpegts.Frame{
			Pts: uint64(i) * 1024,
			Dts: uint64(i) * 1024,
			Cc:  cc,
			Pid: pid,
			Sid: mpegts.StreamIdAudio,
			Key: i == 0,
			Raw: raw,
		}
		if _, err := w.Write(frame.Pack()); err != nil {
			return i, err
		}
		cc = frame.Cc

		if i%genNullPacketInterval == genNullPacketInterval-1 {
			if _, err := w.Write(nullPacket[:]); err != nil {
				return i + 1, err
			}
		}
	}
	return frameNum, nil
}
