// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package mpegts

import (
	"time"

	"github.com/q191201771/naza/pkg/nazabits"
	"github.com/q191201771/naza/pkg/nazaerrors"
	"github.com/q191201771/tspes/pkg/base"
)

// ----------------------------------------------------------
// <iso13818-1.pdf> <Table 2-6> <page 40/174>
// adaptation_field_length              [8b] * 不包括自己这1字节
// discontinuity_indicator              [1b]
// random_access_indicator              [1b]
// elementary_stream_priority_indicator [1b]
// PCR_flag                             [1b]
// OPCR_flag                            [1b]
// splicing_point_flag                  [1b]
// transport_private_data_flag          [1b]
// adaptation_field_extension_flag      [1b] *
// -----if PCR_flag == 1-----
// program_clock_reference_base         [33b]
// reserved                             [6b]
// program_clock_reference_extension    [9b] ******
// -----if OPCR_flag == 1-----
// original_program_clock_reference_base      [33b]
// reserved                                   [6b]
// original_program_clock_reference_extension [9b] ******
// -----if splicing_point_flag == 1-----
// splice_countdown                     [8b] *
// -----if transport_private_data_flag == 1-----
// transport_private_data_length        [8b] *
// private_data_byte                    [N*8b]
// -----if adaptation_field_extension_flag == 1-----
// adaptation_field_extension_length    [8b] *
// ...                                  [N*8b]
// -----
// stuffing_byte                        [N*8b] 0xFF
// ----------------------------------------------------------
type TsPacketAdaptation struct {
	Length uint8

	Discontinuity            bool
	RandomAccess             bool
	EsPriority               bool
	PcrFlag                  bool
	OpcrFlag                 bool
	SplicingPointFlag        bool
	TransportPrivateDataFlag bool
	ExtensionFlag            bool

	Pcr  ClockReference
	Opcr ClockReference

	SpliceCountdown uint8

	// TransportPrivateData 拷贝自packet，不引用packet的内存
	TransportPrivateData []byte
	ExtensionLength      uint8

	// 所有可选字段之后，填充到 Length 的字节数
	StuffingBytes int
}

// ClockReference PCR或OPCR，33位base(90kHz)加9位extension
type ClockReference struct {
	Base      uint64
	Extension uint16
}

// Value 27MHz时钟下的tick数
func (c ClockReference) Value() uint64 {
	return c.Base*BaseToExtendedClockMultiplier + uint64(c.Extension)
}

func (c ClockReference) Seconds() float64 {
	return float64(c.Value()) / ExtendedClockFrequencyHz
}

func (c ClockReference) Duration() time.Duration {
	return time.Duration(c.Value() * 1000 / 27)
}

// ParseTsPacketAdaptation 解析紧跟在4字节TS header之后的adaptation field
//
// @param packet: 完整的TS packet，adaptation_field_length位于第4个字节
// @param afc:    TS header中的adaptation_field_control，调用方需保证它表示存在adaptation field
//
// 各可选字段累加的长度超过 adaptation_field_length 时返回错误，而不是截断
func ParseTsPacketAdaptation(packet []byte, afc uint8) (f TsPacketAdaptation, err error) {
	if afc != AdaptationFieldControlOnly && afc != AdaptationFieldControlFollowed {
		return f, nazaerrors.Wrap(base.ErrTsAdaptation)
	}
	if len(packet) < TsPacketHeaderLength+1 {
		return f, nazaerrors.Wrap(base.ErrShortBuffer)
	}

	length := int(packet[TsPacketHeaderLength])
	if length > maxAdaptationFieldLength {
		return f, nazaerrors.Wrap(base.ErrTsAdaptation)
	}
	if len(packet) < TsPacketHeaderLength+1+length {
		return f, nazaerrors.Wrap(base.ErrShortBuffer)
	}
	f.Length = uint8(length)

	// 只有长度字段，用于填充1个字节
	if length == 0 {
		return f, nil
	}

	body := packet[TsPacketHeaderLength+1 : TsPacketHeaderLength+1+length]
	br := nazabits.NewBitReader(body)
	f.Discontinuity = readFlag(&br)
	f.RandomAccess = readFlag(&br)
	f.EsPriority = readFlag(&br)
	f.PcrFlag = readFlag(&br)
	f.OpcrFlag = readFlag(&br)
	f.SplicingPointFlag = readFlag(&br)
	f.TransportPrivateDataFlag = readFlag(&br)
	f.ExtensionFlag = readFlag(&br)
	consumed := 1

	if f.PcrFlag {
		if consumed+6 > length {
			return TsPacketAdaptation{}, nazaerrors.Wrap(base.ErrTsAdaptation)
		}
		b, _ := br.ReadBytes(6)
		f.Pcr = parseClockReference(b)
		consumed += 6
	}

	if f.OpcrFlag {
		if consumed+6 > length {
			return TsPacketAdaptation{}, nazaerrors.Wrap(base.ErrTsAdaptation)
		}
		b, _ := br.ReadBytes(6)
		f.Opcr = parseClockReference(b)
		consumed += 6
	}

	if f.SplicingPointFlag {
		if consumed+1 > length {
			return TsPacketAdaptation{}, nazaerrors.Wrap(base.ErrTsAdaptation)
		}
		f.SpliceCountdown, _ = br.ReadBits8(8)
		consumed++
	}

	if f.TransportPrivateDataFlag {
		if consumed+1 > length {
			return TsPacketAdaptation{}, nazaerrors.Wrap(base.ErrTsAdaptation)
		}
		l, _ := br.ReadBits8(8)
		if consumed+1+int(l) > length {
			return TsPacketAdaptation{}, nazaerrors.Wrap(base.ErrTsAdaptation)
		}
		f.TransportPrivateData = append([]byte(nil), body[consumed+1:consumed+1+int(l)]...)
		_, _ = br.ReadBytes(uint(l))
		consumed += 1 + int(l)
	}

	if f.ExtensionFlag {
		if consumed+1 > length {
			return TsPacketAdaptation{}, nazaerrors.Wrap(base.ErrTsAdaptation)
		}
		f.ExtensionLength, _ = br.ReadBits8(8)
		if consumed+1+int(f.ExtensionLength) > length {
			return TsPacketAdaptation{}, nazaerrors.Wrap(base.ErrTsAdaptation)
		}
		consumed += 1 + int(f.ExtensionLength)
	}

	f.StuffingBytes = length - consumed
	return f, nil
}

func readFlag(br *nazabits.BitReader) bool {
	v, _ := br.ReadBits8(1)
	return v == 1
}

// base为前4字节加第5字节的最高位，extension为第5字节的最低位加第6字节，中间6位reserved
func parseClockReference(b []byte) (c ClockReference) {
	c.Base = uint64(b[0])<<25 | uint64(b[1])<<17 | uint64(b[2])<<9 | uint64(b[3])<<1 | uint64(b[4]>>7)
	c.Extension = uint16(b[4]&0x01)<<8 | uint16(b[5])
	return
}
