// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package logic

import (
	"os"
	"strings"

	"github.com/q191201771/naza/pkg/bininfo"
	"github.com/q191201771/naza/pkg/nazaerrors"
	"github.com/q191201771/naza/pkg/nazalog"
	"github.com/q191201771/tspes/pkg/base"
)

type ModConfig func(config *Config)

// Entry 读取配置并初始化日志，然后从输入中提取PES包写入ES文件，直到输入结束
func Entry(confFile string, modConfigs ...ModConfig) (SessionStat, error) {
	config, err := LoadConfAndInitLog(confFile, modConfigs...)
	if err != nil {
		return SessionStat{}, err
	}
	defer nazalog.Sync()

	dir, _ := os.Getwd()
	Log.Infof("wd: %s", dir)
	Log.Infof("args: %s", strings.Join(os.Args, " "))
	Log.Infof("bininfo: %s", bininfo.StringifySingleLine())
	Log.Infof("version: %s", base.TspesFullInfo)
	Log.Infof("config: %+v", *config)

	return Run(config)
}

// LoadConfAndInitLog
//
// @param modConfigs: 在配置文件之后生效，比如命令行参数
func LoadConfAndInitLog(confFile string, modConfigs ...ModConfig) (*Config, error) {
	config, err := LoadConf(confFile)
	if err != nil {
		return nil, err
	}
	for _, fn := range modConfigs {
		fn(config)
	}
	if err = config.check(); err != nil {
		return nil, err
	}

	if err = nazalog.Init(func(option *nazalog.Option) {
		*option = config.Log
	}); err != nil {
		return nil, err
	}
	return config, nil
}

// Run 不做日志初始化，供集成时直接使用
func Run(config *Config) (SessionStat, error) {
	if config.Input == "" {
		return SessionStat{}, nazaerrors.Wrap(base.ErrInvalidConfig)
	}

	in, err := OpenInput(config.Input)
	if err != nil {
		Log.Errorf("open input failed. input=%s, err=%+v", config.Input, err)
		return SessionStat{}, err
	}
	defer in.Close()

	sink, err := NewFileSink(config.OutPath, config.Pid, config.OutExt)
	if err != nil {
		Log.Errorf("create es file failed. path=%s, err=%+v", config.OutPath, err)
		return SessionStat{}, err
	}

	session := NewSession(config.Pid, sink, func(option *SessionOption) {
		option.DumpMaxNum = config.DumpMaxNum
	})
	runErr := session.RunWithReader(in)
	if runErr != nil {
		Log.Errorf("[%s] read input failed. err=%+v", session.UniqueKey(), runErr)
	}
	if err = session.Dispose(); err != nil {
		Log.Errorf("[%s] dispose failed. err=%+v", session.UniqueKey(), err)
		if runErr == nil {
			runErr = err
		}
	}

	stat := session.Stat()
	Log.Infof("[%s] done. packets=%d, invalid=%d, lost=%d, started=%d, finished=%d, units=%d, bytes=%d, skipped=%d",
		session.UniqueKey(), stat.PacketCount, stat.InvalidPacketCount, stat.PacketLostCount, stat.StartedCount,
		stat.FinishedCount, stat.DeliveredUnitCount, stat.DeliveredBytes, stat.SkippedBytes)
	return stat, runErr
}
