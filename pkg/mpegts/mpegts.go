// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

// Package mpegts 解析MPEG-TS，并将某一个PID上的PES包重新组装起来
//
// 包内所有解析函数都是纯计算，不做I/O。PesAssembler 是唯一持有跨包状态的结构体，一个PID对应一个实例，
// 不支持多个goroutine并发调用。
package mpegts

import "github.com/q191201771/naza/pkg/nazalog"

var Log = nazalog.GetGlobalLogger()

// <iso13818-1.pdf> <2.4.3.2> <page 36/174>
const (
	syncByte uint8 = 0x47

	TsPacketSize         = 188
	TsPacketHeaderLength = 4

	// adaptation_field_length 自身占用1字节，不计入长度
	maxAdaptationFieldLength = TsPacketSize - TsPacketHeaderLength - 1
)

// adaptation_field_control
const (
	AdaptationFieldControlReserved uint8 = 0x00 // reserved for future use
	AdaptationFieldControlNo       uint8 = 0x01 // No adaptation_field, payload only
	AdaptationFieldControlOnly     uint8 = 0x02 // Adaptation_field only, no payload
	AdaptationFieldControlFollowed uint8 = 0x03 // Adaptation_field followed by payload
)

// PID
const (
	PidPat  uint16 = 0x0000
	PidCat  uint16 = 0x0001
	PidTsdt uint16 = 0x0002
	PidNull uint16 = 0x1FFF

	PidVideo uint16 = 0x100
	PidAudio uint16 = 0x101
)

// PES
const (
	PesStartCodePrefix uint32 = 0x000001

	// packet_start_code_prefix + stream_id + PES_packet_length
	PesHeaderLength = 6

	// PesHeaderLength + '10'标志字节 + flags字节 + PES_header_data_length
	PesOptionalHeaderLength = 9
)

// <iso13818-1.pdf> <Table 2-18-Stream_id assignments> <page 52/174>
const (
	StreamIdProgramStreamMap       uint8 = 0xBC
	StreamIdPrivateStream1         uint8 = 0xBD
	StreamIdPaddingStream          uint8 = 0xBE
	StreamIdPrivateStream2         uint8 = 0xBF
	StreamIdAudio                  uint8 = 0xC0 // 110x xxxx
	StreamIdVideo                  uint8 = 0xE0 // 1110 xxxx
	StreamIdEcm                    uint8 = 0xF0
	StreamIdEmm                    uint8 = 0xF1
	StreamIdDsmcc                  uint8 = 0xF2
	StreamIdItutH2221TypeE         uint8 = 0xF8
	StreamIdProgramStreamDirectory uint8 = 0xFF
)

// 时钟
const (
	BaseClockFrequencyHz     = 90000    // PTS/DTS/PCR base
	ExtendedClockFrequencyHz = 27000000 // PCR

	BaseToExtendedClockMultiplier = 300
)

// 打包时PTS/DTS相对PCR的延时，单位为90kHz
const delay uint64 = 63000
