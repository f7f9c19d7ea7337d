// Copyright 2020, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	ts "github.com/asticode/go-astits"
	"github.com/q191201771/naza/pkg/nazalog"
	"github.com/q191201771/tspes/pkg/mpegts"
)

// 对同一个TS文件的同一个PID，分别用 mpegts.PesAssembler 和 go-astits 提取PES负载，逐个比较
//
// 用于验证组装结果。go-astits只在下一个unit start时输出PES包，所以文件末尾不完整的PES包不参与比较

const dumpMaxLen = 64

func main() {
	_ = nazalog.Init(func(option *nazalog.Option) {
		option.AssertBehavior = nazalog.AssertFatal
	})
	defer nazalog.Sync()

	filename, pid := parseFlag()

	content, err := ioutil.ReadFile(filename)
	nazalog.Assert(nil, err)

	units1 := assembleByTspes(content, pid)
	units2 := assembleByAstits(content, pid)
	nazalog.Infof("num of tspes=%d, num of astits=%d", len(units1), len(units2))

	m := len(units1)
	if m > len(units2) {
		m = len(units2)
	}
	diffCount := 0
	for i := 0; i < m; i++ {
		if bytes.Equal(units1[i], units2[i]) {
			continue
		}
		diffCount++
		nazalog.Warnf("diff. index=%d, len1=%d, len2=%d", i, len(units1[i]), len(units2[i]))
		nazalog.Debugf("\n%s", hex.Dump(head(units1[i])))
		nazalog.Debugf("\n%s", hex.Dump(head(units2[i])))
	}
	nazalog.Infof("compare done. same=%d, diff=%d", m-diffCount, diffCount)
	if diffCount != 0 || len(units1) != len(units2) {
		os.Exit(1)
	}
}

func assembleByTspes(content []byte, pid uint16) (units [][]byte) {
	packets, skipped := mpegts.SplitTsPackets(content)
	if skipped != 0 {
		nazalog.Warnf("skipped bytes. skipped=%d", skipped)
	}

	a := mpegts.NewPesAssembler(pid)
	delivered := false
	for _, packet := range packets {
		h, err := mpegts.ParseTsPacketHeader(packet)
		if err != nil {
			continue
		}
		var af *mpegts.TsPacketAdaptation
		if h.Pid == pid && h.HasAdaptationField() {
			f, err := mpegts.ParseTsPacketAdaptation(packet, h.Adaptation)
			if err != nil {
				nazalog.Warnf("%+v", err)
				continue
			}
			af = &f
		}
		if h.Pid == pid && h.PayloadUnitStart {
			if b := a.Flush(); b != nil {
				units = append(units, append([]byte(nil), b...))
			}
		}

		switch a.AbsorbPacket(packet, &h, af) {
		case mpegts.AssembleResultStarted:
			delivered = a.IsComplete()
			if delivered {
				units = append(units, append([]byte(nil), a.Packet()...))
			}
		case mpegts.AssembleResultFinished:
			// 整个PES包在Started时已经交出
			if !delivered {
				delivered = true
				units = append(units, append([]byte(nil), a.Packet()...))
			}
		case mpegts.AssembleResultPacketLost:
			nazalog.Warnf("packet lost. header=%s", h.String())
		}
	}
	return
}

func assembleByAstits(content []byte, pid uint16) (units [][]byte) {
	dmx := ts.NewDemuxer(context.Background(), bytes.NewReader(content), ts.DemuxerOptPacketSize(mpegts.TsPacketSize))
	for {
		d, err := dmx.NextData()
		if err != nil {
			if err != ts.ErrNoMorePackets {
				nazalog.Warnf("astits demux failed. err=%+v", err)
			}
			break
		}
		if d.PES == nil || d.FirstPacket == nil || d.FirstPacket.Header.PID != pid {
			continue
		}
		units = append(units, append([]byte(nil), d.PES.Data...))
	}
	return
}

func head(b []byte) []byte {
	if len(b) > dumpMaxLen {
		return b[:dumpMaxLen]
	}
	return b
}

func parseFlag() (string, uint16) {
	i := flag.String("i", "", "specify ts file")
	pid := flag.Int("pid", 136, "specify pid")
	flag.Parse()
	if *i == "" || *pid < 0 || *pid > 0x1FFF {
		flag.Usage()
		_, _ = fmt.Fprintf(os.Stderr, `
Example:
  ./bin/tscmp -i ./testdata/in.ts -pid 136
`)
		os.Exit(1)
	}
	return *i, uint16(*pid)
}
