// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package logic_test

import (
	"github.com/q191201771/tspes/pkg/mpegts"
)

type memSink struct {
	pid      uint16
	units    [][]byte
	headers  []mpegts.PesHeader
	disposed int
}

func (s *memSink) OnPesPacket(pid uint16, header mpegts.PesHeader, payload []byte) error {
	s.pid = pid
	s.units = append(s.units, append([]byte(nil), payload...))
	s.headers = append(s.headers, header)
	return nil
}

func (s *memSink) Dispose() error {
	s.disposed++
	return nil
}

// 和 logic.GenerateStream 的帧内容保持一致
func genFrames(frameNum int, frameSize int) [][]byte {
	var frames [][]byte
	for i := 0; i < frameNum; i++ {
		raw := make([]byte, frameSize+i*7)
		for j := range raw {
			raw[j] = uint8(i + j)
		}
		frames = append(frames, raw)
	}
	return frames
}

func packFrame(pid uint16, cc *uint8, raw []byte) []byte {
	frame := mpegts.Frame{
		Cc:  *cc,
		Pid: pid,
		Sid: mpegts.StreamIdVideo,
		Raw: raw,
	}
	out := frame.Pack()
	*cc = frame.Cc
	return out
}

// tsPacket 构造单个TS packet，payload不足184字节时用adaptation field的stuffing补齐
func tsPacket(pid uint16, pusi bool, cc uint8, payload []byte) []byte {
	p := make([]byte, mpegts.TsPacketSize)
	p[0] = 0x47
	p[1] = uint8(pid>>8) & 0x1F
	if pusi {
		p[1] |= 0x40
	}
	p[2] = uint8(pid)
	p[3] = 0x10 | (cc & 0x0F)

	room := mpegts.TsPacketSize - mpegts.TsPacketHeaderLength - len(payload)
	if room > 0 {
		p[3] |= 0x20
		p[4] = uint8(room - 1)
		for i := 5; i < 4+room; i++ {
			p[i] = 0xFF
		}
		if room > 1 {
			p[5] = 0
		}
	}
	copy(p[mpegts.TsPacketSize-len(payload):], payload)
	return p
}
