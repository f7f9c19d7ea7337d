// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package mpegts

import (
	"github.com/q191201771/naza/pkg/nazabytes"
)

// AssembleResult AbsorbPacket 的处理结果，每次调用只返回其中一种
type AssembleResult int

const (
	AssembleResultUnexpectedPid AssembleResult = iota + 1 // 不是目标PID，状态不变
	AssembleResultPacketLost                              // 丢包，或者数据不属于任何已开始的PES包
	AssembleResultStarted                                 // 新的PES包开始
	AssembleResultContinue                                // PES包组装中
	AssembleResultFinished                                // PES包组装完成
)

func (r AssembleResult) String() string {
	switch r {
	case AssembleResultUnexpectedPid:
		return "UnexpectedPid"
	case AssembleResultPacketLost:
		return "PacketLost"
	case AssembleResultStarted:
		return "Started"
	case AssembleResultContinue:
		return "Continue"
	case AssembleResultFinished:
		return "Finished"
	}
	return "Unknown"
}

// PES_packet_length为16位，有界的PES包不会超过64KB
const initialPesBufferSize = 65536

const noCc int8 = -1

// PesAssembler 将某一个PID上的TS packet重新组装成PES包
//
// 一个实例只服务一个PID，调用方需按TS packet到达的顺序逐个调用 AbsorbPacket。
// 组装完成的数据在下一次 AssembleResultStarted 之前有效，调用方需要在此之前拷贝走
type PesAssembler struct {
	pid uint16

	buf       *nazabytes.Buffer
	started   bool
	lastCc    int8
	pesHeader PesHeader
}

func NewPesAssembler(pid uint16) *PesAssembler {
	a := &PesAssembler{}
	a.Init(pid)
	return a
}

// Init 重置所有状态，之后的行为和新创建的实例一致
func (a *PesAssembler) Init(pid uint16) {
	a.pid = pid
	if a.buf == nil {
		a.buf = nazabytes.NewBuffer(initialPesBufferSize)
	}
	a.reset()
	a.pesHeader = PesHeader{}
}

// AbsorbPacket
//
// @param packet: 完整的188字节TS packet
// @param h:      packet的TS header
// @param af:     packet的adaptation field，没有时传nil
func (a *PesAssembler) AbsorbPacket(packet []byte, h *TsPacketHeader, af *TsPacketAdaptation) AssembleResult {
	if h.Pid != a.pid {
		return AssembleResultUnexpectedPid
	}
	if len(packet) < TsPacketSize {
		Log.Warnf("packet too short. pid=%d, len=%d", a.pid, len(packet))
		a.reset()
		return AssembleResultPacketLost
	}

	offset := a.payloadOffset(packet, h, af)
	var payload []byte
	if h.HasPayload() && offset < TsPacketSize {
		payload = packet[offset:TsPacketSize]
	}

	if h.PayloadUnitStart {
		return a.start(h, payload)
	}

	// 没有负载的packet不参与组装，continuity_counter也不递增
	if len(payload) == 0 {
		return AssembleResultContinue
	}
	return a.continueWith(h, payload)
}

// Packet 当前组装中或已组装完成的PES负载，不含PES header
//
// 在第一次 AssembleResultStarted 之前没有意义
func (a *PesAssembler) Packet() []byte {
	return a.buf.Bytes()
}

func (a *PesAssembler) PacketByteCount() int {
	return a.buf.Len()
}

func (a *PesAssembler) PesHeader() PesHeader {
	return a.pesHeader
}

func (a *PesAssembler) Pid() uint16 {
	return a.pid
}

func (a *PesAssembler) IsStarted() bool {
	return a.started
}

// IsComplete PES_packet_length声明的数据是否已经全部到达
//
// 在 AssembleResultStarted 之后检查，用于处理整个PES包都在第一个TS packet中的情况
func (a *PesAssembler) IsComplete() bool {
	if a.pesHeader.Pscp != PesStartCodePrefix {
		return false
	}
	size, ok := a.pesHeader.UnitSize()
	return ok && a.buf.Len() >= size
}

// Flush 交出组装中的长度不限定的PES包
//
// PES_packet_length为0时只能由下一个PES包的开始来判断结束，调用方应该在喂入下一个
// payload_unit_start_indicator为1的packet之前调用。有界的PES包不完整时不交出，返回nil
func (a *PesAssembler) Flush() []byte {
	if !a.started || !a.pesHeader.IsUnbounded() || a.buf.Len() == 0 {
		return nil
	}
	a.started = false
	return a.buf.Bytes()
}

func (a *PesAssembler) start(h *TsPacketHeader, payload []byte) AssembleResult {
	// 未完成的上一个PES包直接丢弃
	a.buf.Reset()
	a.started = false
	a.pesHeader = PesHeader{}

	pesHeader, err := ParsePesHeader(payload, len(payload))
	if err != nil {
		Log.Debugf("parse pes header failed. pid=%d, err=%+v", a.pid, err)
		a.reset()
		return AssembleResultPacketLost
	}
	headerLength := pesHeader.HeaderLength()
	if headerLength > len(payload) {
		Log.Debugf("pes header not in one ts packet. pid=%d, header=%d, payload=%d", a.pid, headerLength, len(payload))
		a.reset()
		return AssembleResultPacketLost
	}
	if _, ok := pesHeader.UnitSize(); !ok && !pesHeader.IsUnbounded() {
		Log.Debugf("pes packet length less than header. pid=%d, ppl=%d, header=%d", a.pid, pesHeader.Ppl, headerLength)
		a.reset()
		return AssembleResultPacketLost
	}

	a.pesHeader = pesHeader
	a.started = true
	a.lastCc = int8(h.Cc)
	a.appendPayload(payload[headerLength:])
	return AssembleResultStarted
}

func (a *PesAssembler) continueWith(h *TsPacketHeader, payload []byte) AssembleResult {
	if !a.started {
		return AssembleResultPacketLost
	}

	// 加扰packet的continuity_counter不做检查
	if !h.IsScrambled() {
		expected := uint8(a.lastCc+1) & 0x0F
		if h.Cc != expected {
			Log.Debugf("continuity counter mismatch. pid=%d, expected=%d, got=%d", a.pid, expected, h.Cc)
			a.reset()
			return AssembleResultPacketLost
		}
	}

	a.lastCc = int8(h.Cc)
	a.appendPayload(payload)

	if a.IsComplete() {
		a.started = false
		return AssembleResultFinished
	}
	return AssembleResultContinue
}

func (a *PesAssembler) payloadOffset(packet []byte, h *TsPacketHeader, af *TsPacketAdaptation) int {
	offset := TsPacketHeaderLength
	if h.HasAdaptationField() {
		if af != nil {
			offset += 1 + int(af.Length)
		} else {
			offset += 1 + int(packet[TsPacketHeaderLength])
		}
	}
	return offset
}

// appendPayload 不超过PES_packet_length声明的长度，多出的字节不属于当前PES包
func (a *PesAssembler) appendPayload(b []byte) {
	if size, ok := a.pesHeader.UnitSize(); ok {
		remain := size - a.buf.Len()
		if remain <= 0 {
			return
		}
		if len(b) > remain {
			b = b[:remain]
		}
	}
	// 容量按倍数增长。nazabytes.Buffer自身每次只多扩一点，长度不限定的视频PES包会反复拷贝
	if len(a.buf.WritableBytes()) < len(b) {
		a.buf.Grow(a.buf.Cap() + len(b))
	}
	a.buf.Write(b)
}

func (a *PesAssembler) reset() {
	a.buf.Reset()
	a.started = false
	a.lastCc = noCc
}
