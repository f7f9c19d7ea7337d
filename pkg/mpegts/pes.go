// Copyright 2020, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package mpegts

import (
	"github.com/q191201771/naza/pkg/bele"
	"github.com/q191201771/naza/pkg/nazabits"
	"github.com/q191201771/naza/pkg/nazaerrors"
	"github.com/q191201771/tspes/pkg/base"
)

// -----------------------------------------------------------
// <iso13818-1.pdf>
// <2.4.3.6 PES packet> <page 49/174>
// <Table E.1 - PES packet header example> <page 142/174>
// <F.0.2 PES packet> <page 144/174>
// packet_start_code_prefix  [24b] *** always 0x00, 0x00, 0x01
// stream_id                 [8b]  *
// PES_packet_length         [16b] **
// -----以下字段只有部分stream_id才有-----
// '10'                      [2b]
// PES_scrambling_control    [2b]
// PES_priority              [1b]
// data_alignment_indicator  [1b]
// copyright                 [1b]
// original_or_copy          [1b]  *
// PTS_DTS_flags             [2b]
// ESCR_flag                 [1b]
// ES_rate_flag              [1b]
// DSM_trick_mode_flag       [1b]
// additional_copy_info_flag [1b]
// PES_CRC_flag              [1b]
// PES_extension_flag        [1b]  *
// PES_header_data_length    [8b]  *
// -----------------------------------------------------------
type PesHeader struct {
	Pscp uint32 // packet_start_code_prefix
	Sid  uint8  // stream_id
	Ppl  uint16 // PES_packet_length，为0表示长度不限定
	Phdl uint8  // PES_header_data_length

	PtsDtsFlags uint8
	Pts         uint64
	Dts         uint64
}

// ParsePesHeader 解析PES header的开头部分
//
// @param b:      PES包的起始字节
// @param length: b中可用的字节数
//
// 不修改任何外部状态。对于带扩展头的stream_id，不足9字节时返回错误，调用方需要提供更多数据
func ParsePesHeader(b []byte, length int) (h PesHeader, err error) {
	if length > len(b) {
		length = len(b)
	}
	if length < PesHeaderLength {
		return h, nazaerrors.Wrap(base.ErrShortBuffer)
	}

	h.Pscp = bele.BeUint24(b)
	if h.Pscp != PesStartCodePrefix {
		return PesHeader{}, nazaerrors.Wrap(base.ErrPesStartCode)
	}
	h.Sid = b[3]
	h.Ppl = bele.BeUint16(b[4:])

	if !HasPesOptionalHeader(h.Sid) {
		return h, nil
	}
	if length < PesOptionalHeaderLength {
		return PesHeader{}, nazaerrors.Wrap(base.ErrShortBuffer)
	}

	br := nazabits.NewBitReader(b[PesHeaderLength:length])
	_, _ = br.ReadBits8(8)
	h.PtsDtsFlags, _ = br.ReadBits8(2)
	_, _ = br.ReadBits8(6)
	h.Phdl, _ = br.ReadBits8(8)

	// PTS/DTS只在字节足够时解析，缺失不作为错误
	if h.PtsDtsFlags&0x2 != 0 && h.Phdl >= 5 && length >= PesOptionalHeaderLength+5 {
		_, h.Pts = readPts(b[PesOptionalHeaderLength:])
		h.Dts = h.Pts
	}
	if h.PtsDtsFlags == 0x3 && h.Phdl >= 10 && length >= PesOptionalHeaderLength+10 {
		_, h.Dts = readPts(b[PesOptionalHeaderLength+5:])
	}
	return h, nil
}

// HasPesOptionalHeader 以下stream_id的PES包没有扩展头
func HasPesOptionalHeader(sid uint8) bool {
	switch sid {
	case StreamIdProgramStreamMap,
		StreamIdPaddingStream,
		StreamIdPrivateStream2,
		StreamIdEcm,
		StreamIdEmm,
		StreamIdProgramStreamDirectory,
		StreamIdDsmcc,
		StreamIdItutH2221TypeE:
		return false
	}
	return true
}

// HeaderLength PES header的总长度，有扩展头时为9加PES_header_data_length，否则为6
func (h PesHeader) HeaderLength() int {
	if !HasPesOptionalHeader(h.Sid) {
		return PesHeaderLength
	}
	return PesOptionalHeaderLength + int(h.Phdl)
}

// UnitSize 根据PES_packet_length计算header之后的负载长度
//
// PES_packet_length不包含前6个字节，所以需要减去的是扩展头部分。
// 长度不限定时，或者PES_packet_length比扩展头还短时，ok返回false
func (h PesHeader) UnitSize() (size int, ok bool) {
	if h.Ppl == 0 {
		return 0, false
	}
	size = int(h.Ppl) - (h.HeaderLength() - PesHeaderLength)
	if size < 0 {
		return 0, false
	}
	return size, true
}

func (h PesHeader) IsUnbounded() bool {
	return h.Ppl == 0
}

// read pts or dts
func readPts(b []byte) (fb uint8, pts uint64) {
	fb = b[0] >> 4
	pts |= uint64((b[0]>>1)&0x07) << 30
	pts |= (uint64(b[1])<<8 | uint64(b[2])) >> 1 << 15
	pts |= (uint64(b[3])<<8 | uint64(b[4])) >> 1
	return
}
