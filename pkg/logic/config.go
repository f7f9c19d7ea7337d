// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package logic

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/q191201771/naza/pkg/nazaerrors"
	"github.com/q191201771/naza/pkg/nazajson"
	"github.com/q191201771/naza/pkg/nazalog"
	"github.com/q191201771/tspes/pkg/base"
)

const maxPid = 0x1FFF

type Config struct {
	Pid        uint16         `json:"pid"`
	Input      string         `json:"input"`
	OutPath    string         `json:"out_path"`
	OutExt     string         `json:"out_ext"`
	DumpMaxNum int            `json:"dump_max_num"`
	Log        nazalog.Option `json:"log"`
}

// LoadConf 读取配置文件
//
// 如果confFile为空，按 DefaultConfFilenameList 查找，都不存在时使用默认配置
func LoadConf(confFile string) (*Config, error) {
	if confFile == "" {
		for _, filename := range DefaultConfFilenameList {
			if _, err := os.Stat(filename); err == nil {
				confFile = filename
				break
			}
		}
		if confFile == "" {
			return LoadConfFromRaw([]byte("{}"))
		}
	}

	rawContent, err := ioutil.ReadFile(confFile)
	if err != nil {
		return nil, err
	}
	return LoadConfFromRaw(rawContent)
}

// LoadConfFromRaw 解析json格式的配置内容，没有出现的字段使用默认值
func LoadConfFromRaw(rawContent []byte) (*Config, error) {
	var config Config
	if err := json.Unmarshal(rawContent, &config); err != nil {
		return nil, err
	}

	j, err := nazajson.New(rawContent)
	if err != nil {
		return nil, err
	}
	if !j.Exist("pid") {
		config.Pid = base.DefaultPid
	}
	if !j.Exist("out_path") {
		config.OutPath = "./"
	}
	if !j.Exist("out_ext") {
		config.OutExt = base.DefaultOutExt
	}
	if !j.Exist("dump_max_num") {
		config.DumpMaxNum = base.DefaultDumpMaxNum
	}
	if !j.Exist("log.level") {
		config.Log.Level = nazalog.LevelDebug
	}
	if !j.Exist("log.filename") {
		config.Log.Filename = "./logs/tsparser.log"
	}
	if !j.Exist("log.is_to_stdout") {
		config.Log.IsToStdout = true
	}
	if !j.Exist("log.short_file_flag") {
		config.Log.ShortFileFlag = true
	}
	if !j.Exist("log.assert_behavior") {
		config.Log.AssertBehavior = nazalog.AssertError
	}

	if err = config.check(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) check() error {
	if c.Pid > maxPid {
		return nazaerrors.Wrap(fmt.Errorf("%w: pid out of range. pid=%d", base.ErrInvalidConfig, c.Pid))
	}
	if c.OutExt == "" {
		return nazaerrors.Wrap(fmt.Errorf("%w: empty out_ext", base.ErrInvalidConfig))
	}
	if c.DumpMaxNum < 0 {
		return nazaerrors.Wrap(fmt.Errorf("%w: dump_max_num less than 0", base.ErrInvalidConfig))
	}
	return nil
}
