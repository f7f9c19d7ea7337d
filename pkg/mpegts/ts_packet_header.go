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
	"github.com/q191201771/naza/pkg/nazaerrors"
	"github.com/q191201771/tspes/pkg/base"
)

// ------------------------------------------------
// <iso13818-1.pdf> <2.4.3.2> <page 36/174>
// sync_byte                    [8b]  * always 0x47
// transport_error_indicator    [1b]
// payload_unit_start_indicator [1b]
// transport_priority           [1b]
// PID                          [13b] **
// transport_scrambling_control [2b]
// adaptation_field_control     [2b]
// continuity_counter           [4b]  *
// ------------------------------------------------
type TsPacketHeader struct {
	Sync             uint8
	Err              bool
	PayloadUnitStart bool
	Prio             bool
	Pid              uint16
	Scra             uint8
	Adaptation       uint8
	Cc               uint8
}

// ParseTsPacketHeader 解析4字节TS Packet header
//
// 字节不足4个，或者sync_byte不是0x47时返回错误，此时不返回任何部分解析的结果
func ParseTsPacketHeader(b []byte) (h TsPacketHeader, err error) {
	if len(b) < TsPacketHeaderLength {
		return h, nazaerrors.Wrap(base.ErrShortBuffer)
	}

	word := bele.BeUint32(b)
	if uint8(word>>24) != syncByte {
		return h, nazaerrors.Wrap(base.ErrTsSyncByte)
	}

	h.Sync = uint8(word >> 24)
	h.Err = word&0x00800000 != 0
	h.PayloadUnitStart = word&0x00400000 != 0
	h.Prio = word&0x00200000 != 0
	h.Pid = uint16((word >> 8) & 0x1FFF)
	h.Scra = uint8((word >> 6) & 0x03)
	h.Adaptation = uint8((word >> 4) & 0x03)
	h.Cc = uint8(word & 0x0F)
	return
}

// HasAdaptationField adaptation_field_control为10或11
func (h TsPacketHeader) HasAdaptationField() bool {
	return h.Adaptation == AdaptationFieldControlOnly || h.Adaptation == AdaptationFieldControlFollowed
}

// HasPayload adaptation_field_control为01或11
func (h TsPacketHeader) HasPayload() bool {
	return h.Adaptation == AdaptationFieldControlNo || h.Adaptation == AdaptationFieldControlFollowed
}

func (h TsPacketHeader) IsScrambled() bool {
	return h.Scra != 0
}
