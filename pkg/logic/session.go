// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package logic

import (
	"fmt"
	"io"
	"strings"

	"github.com/q191201771/naza/pkg/nazaerrors"
	"github.com/q191201771/tspes/pkg/base"
	"github.com/q191201771/tspes/pkg/mpegts"
)

type SessionOption struct {
	// DumpMaxNum debug级别下，逐包诊断日志最多打印的次数。trace级别时不限制
	DumpMaxNum int
}

var defaultSessionOption = SessionOption{
	DumpMaxNum: base.DefaultDumpMaxNum,
}

type ModSessionOption func(option *SessionOption)

type SessionStat struct {
	PacketCount        int // 喂入的TS packet总数
	InvalidPacketCount int // TS header或adaptation field解析失败的数量

	UnexpectedPidCount int
	PacketLostCount    int
	StartedCount       int
	ContinueCount      int
	FinishedCount      int

	DeliveredUnitCount int // 交给sink的PES包数量
	DeliveredBytes     int
	SkippedBytes       int // 为了重新同步而跳过的字节数，只有 RunWithReader 时有效
}

// Session 从TS流中提取一个PID上的PES包，交给 IEsSink
//
// 非并发安全，只能在一个协程中调用
type Session struct {
	uniqueKey string
	pid       uint16
	sink      IEsSink
	option    SessionOption

	assembler *mpegts.PesAssembler
	logDump   base.LogDump
	stat      SessionStat
	disposed  bool

	// 当前PES包已经在Started时交出，后续的Finished不再交出
	unitDelivered bool
}

func NewSession(pid uint16, sink IEsSink, modOptions ...ModSessionOption) *Session {
	option := defaultSessionOption
	for _, fn := range modOptions {
		fn(&option)
	}
	s := &Session{
		uniqueKey: fmt.Sprintf("PID%d", pid),
		pid:       pid,
		sink:      sink,
		option:    option,
		assembler: mpegts.NewPesAssembler(pid),
		logDump:   base.NewLogDump(Log, option.DumpMaxNum),
	}
	Log.Infof("[%s] lifecycle new session. session=%p", s.uniqueKey, s)
	return s
}

// FeedPacket 喂入一个TS packet
//
// 解析失败的packet只计数并跳过，返回的错误只来自sink
func (s *Session) FeedPacket(packet []byte) error {
	if s.disposed {
		return nazaerrors.Wrap(base.ErrSessionDisposed)
	}

	index := s.stat.PacketCount
	s.stat.PacketCount++

	h, err := mpegts.ParseTsPacketHeader(packet)
	if err != nil {
		s.stat.InvalidPacketCount++
		Log.Warnf("[%s] invalid ts packet header. index=%d, err=%+v", s.uniqueKey, index, err)
		return nil
	}
	if h.Pid != s.pid {
		s.assembler.AbsorbPacket(packet, &h, nil)
		s.stat.UnexpectedPidCount++
		return nil
	}

	var af *mpegts.TsPacketAdaptation
	if h.HasAdaptationField() {
		f, err := mpegts.ParseTsPacketAdaptation(packet, h.Adaptation)
		if err != nil {
			s.stat.InvalidPacketCount++
			Log.Warnf("[%s] invalid adaptation field. index=%d, header=%s, err=%+v", s.uniqueKey, index, h.String(), err)
			return nil
		}
		af = &f
	}

	// 长度不限定的PES包，只能在下一个PES包开始时交出
	if h.PayloadUnitStart {
		if err = s.flush(); err != nil {
			return err
		}
	}

	result := s.assembler.AbsorbPacket(packet, &h, af)

	var deliverErr error
	switch result {
	case mpegts.AssembleResultUnexpectedPid:
		s.stat.UnexpectedPidCount++
	case mpegts.AssembleResultPacketLost:
		s.stat.PacketLostCount++
	case mpegts.AssembleResultStarted:
		s.stat.StartedCount++
		s.unitDelivered = false
		if s.assembler.IsComplete() {
			s.unitDelivered = true
			deliverErr = s.deliver(s.assembler.Packet())
		}
	case mpegts.AssembleResultContinue:
		s.stat.ContinueCount++
	case mpegts.AssembleResultFinished:
		s.stat.FinishedCount++
		if !s.unitDelivered {
			s.unitDelivered = true
			deliverErr = s.deliver(s.assembler.Packet())
		}
	}

	if s.logDump.ShouldDump() {
		s.logDump.Outf("%s", s.dumpLine(index, h, af, result))
	}
	return deliverErr
}

// RunWithReader 从r中持续读取TS packet，直到读完或者出错
//
// 正常读完时返回nil
func (s *Session) RunWithReader(r io.Reader) error {
	tr := mpegts.NewTsPacketReader(r)
	defer func() {
		s.stat.SkippedBytes += tr.SkippedBytes()
	}()

	for {
		packet, err := tr.ReadPacket()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err = s.FeedPacket(packet); err != nil {
			return err
		}
	}
}

func (s *Session) Stat() SessionStat {
	return s.stat
}

func (s *Session) UniqueKey() string {
	return s.uniqueKey
}

// Dispose 交出未完成的长度不限定的PES包，并关闭sink
func (s *Session) Dispose() error {
	if s.disposed {
		return nazaerrors.Wrap(base.ErrSessionDisposed)
	}
	Log.Infof("[%s] lifecycle dispose session. stat=%+v, dumped=%d", s.uniqueKey, s.stat, s.logDump.DumpCount())

	flushErr := s.flush()
	s.disposed = true
	return nazaerrors.CombineErrors(flushErr, s.sink.Dispose())
}

func (s *Session) flush() error {
	if b := s.assembler.Flush(); b != nil {
		return s.deliver(b)
	}
	return nil
}

func (s *Session) deliver(payload []byte) error {
	s.stat.DeliveredUnitCount++
	s.stat.DeliveredBytes += len(payload)
	return s.sink.OnPesPacket(s.pid, s.assembler.PesHeader(), payload)
}

// dumpLine e.g.
// [PID136] 0000000012 TS: SB=71 E=0 S=1 T=0 PID= 136 TSC=0 AFC=1 CC= 7 Started PES: PSCP=1 SID=192 L=1832 HL=14 ...
func (s *Session) dumpLine(index int, h mpegts.TsPacketHeader, af *mpegts.TsPacketAdaptation, result mpegts.AssembleResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %010d %s", s.uniqueKey, index, h.String())
	if af != nil {
		sb.WriteString(" ")
		sb.WriteString(af.String())
	}
	sb.WriteString(" ")
	sb.WriteString(result.String())
	switch result {
	case mpegts.AssembleResultStarted:
		sb.WriteString(" ")
		sb.WriteString(s.assembler.PesHeader().String())
	case mpegts.AssembleResultFinished:
		fmt.Fprintf(&sb, " PES: Len=%d", s.assembler.PacketByteCount())
	}
	return sb.String()
}
