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

// tsPacket 描述一个待构造的TS packet
//
// payload不足184字节时，自动用adaptation field的stuffing补齐
type tsPacket struct {
	pid       uint16
	pusi      bool
	cc        uint8
	scra      uint8
	af        []byte // adaptation field中长度字节之后的内容，nil表示不需要
	payload   []byte
	noPayload bool
}

func (s tsPacket) bytes() []byte {
	p := make([]byte, mpegts.TsPacketSize)
	p[0] = 0x47
	p[1] = uint8(s.pid>>8) & 0x1F
	if s.pusi {
		p[1] |= 0x40
	}
	p[2] = uint8(s.pid)

	afc := uint8(1)
	room := mpegts.TsPacketSize - mpegts.TsPacketHeaderLength - len(s.payload)
	if s.noPayload {
		afc = 2
		room = mpegts.TsPacketSize - mpegts.TsPacketHeaderLength
	} else if s.af != nil || room > 0 {
		afc = 3
	}
	p[3] = s.scra<<6 | afc<<4 | (s.cc & 0x0F)

	if afc != 1 {
		afLen := room - 1
		p[4] = uint8(afLen)
		body := p[5 : 5+afLen]
		for i := range body {
			body[i] = 0xFF
		}
		if afLen > 0 {
			body[0] = 0
		}
		copy(body, s.af)
	}
	copy(p[mpegts.TsPacketSize-len(s.payload):], s.payload)
	return p
}

// pesBytes 构造PES包的开头部分
//
// sid没有扩展头时忽略phdl
func pesBytes(sid uint8, ppl uint16, phdl uint8, data []byte) []byte {
	b := []byte{0x00, 0x00, 0x01, sid, uint8(ppl >> 8), uint8(ppl)}
	if mpegts.HasPesOptionalHeader(sid) {
		b = append(b, 0x80, 0x00, phdl)
		b = append(b, make([]byte, phdl)...)
	}
	return append(b, data...)
}

// pcrBytes 6字节PCR，reserved位写1
func pcrBytes(base uint64, ext uint16) []byte {
	return []byte{
		uint8(base >> 25),
		uint8(base >> 17),
		uint8(base >> 9),
		uint8(base >> 1),
		uint8(base&1)<<7 | 0x7E | uint8(ext>>8)&0x01,
		uint8(ext),
	}
}

func seqBytes(n int, start uint8) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = start + uint8(i)
	}
	return b
}

// absorb 解析header和adaptation field，然后喂给assembler
func absorb(t *testing.T, a *mpegts.PesAssembler, packet []byte) mpegts.AssembleResult {
	h, err := mpegts.ParseTsPacketHeader(packet)
	assert.Equal(t, nil, err)
	if !h.HasAdaptationField() {
		return a.AbsorbPacket(packet, &h, nil)
	}
	af, err := mpegts.ParseTsPacketAdaptation(packet, h.Adaptation)
	assert.Equal(t, nil, err)
	return a.AbsorbPacket(packet, &h, &af)
}
