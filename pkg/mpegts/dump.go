// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package mpegts

import (
	"fmt"
	"strings"
)

// 逐包诊断输出的文本格式

func (h TsPacketHeader) String() string {
	return fmt.Sprintf("TS: SB=%d E=%d S=%d T=%d PID=%4d TSC=%d AFC=%d CC=%2d",
		h.Sync, b2i(h.Err), b2i(h.PayloadUnitStart), b2i(h.Prio), h.Pid, h.Scra, h.Adaptation, h.Cc)
}

func (f TsPacketAdaptation) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "AF: L=%3d DC=%d RA=%d SP=%d PR=%d OR=%d SF=%d TP=%d EX=%d",
		f.Length, b2i(f.Discontinuity), b2i(f.RandomAccess), b2i(f.EsPriority), b2i(f.PcrFlag), b2i(f.OpcrFlag),
		b2i(f.SplicingPointFlag), b2i(f.TransportPrivateDataFlag), b2i(f.ExtensionFlag))
	if f.PcrFlag {
		fmt.Fprintf(&sb, " PCR=%d (Time=%.6fs)", f.Pcr.Value(), f.Pcr.Seconds())
	}
	if f.OpcrFlag {
		fmt.Fprintf(&sb, " OPCR=%d (Time=%.6fs)", f.Opcr.Value(), f.Opcr.Seconds())
	}
	if f.SplicingPointFlag {
		fmt.Fprintf(&sb, " SC=%d", f.SpliceCountdown)
	}
	fmt.Fprintf(&sb, " Stuffing=%d", f.StuffingBytes)
	return sb.String()
}

func (h PesHeader) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PES: PSCP=%d SID=%d L=%d", b2i(h.Pscp == PesStartCodePrefix), h.Sid, h.Ppl)
	if HasPesOptionalHeader(h.Sid) {
		fmt.Fprintf(&sb, " HL=%d", h.HeaderLength())
	}
	if h.PtsDtsFlags&0x2 != 0 {
		fmt.Fprintf(&sb, " PTS=%d (Time=%.6fs)", h.Pts, float64(h.Pts)/BaseClockFrequencyHz)
	}
	if h.PtsDtsFlags == 0x3 {
		fmt.Fprintf(&sb, " DTS=%d (Time=%.6fs)", h.Dts, float64(h.Dts)/BaseClockFrequencyHz)
	}
	return sb.String()
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
