// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/q191201771/naza/pkg/bininfo"
	"github.com/q191201771/tspes/pkg/base"
	"github.com/q191201771/tspes/pkg/logic"
)

// 从TS流中提取一个PID上的PES包，写成ES文件，并打印逐包的诊断信息
//
// 诊断信息在debug级别下打印，条数见配置中的dump_max_num，trace级别下全部打印

type flagSet struct {
	confFile string
	input    string
	pid      int
	outPath  string
	genFile  string
	genNum   int
}

func main() {
	fs := parseFlag()

	if fs.genFile != "" {
		if err := generate(fs); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "generate failed. err=%+v\n", err)
			os.Exit(1)
		}
		return
	}

	_, err := logic.Entry(fs.confFile, func(config *logic.Config) {
		if fs.input != "" {
			config.Input = fs.input
		}
		if fs.pid >= 0 {
			config.Pid = uint16(fs.pid)
		}
		if fs.outPath != "" {
			config.OutPath = fs.outPath
		}
	})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "tsparser failed. err=%+v\n", err)
		os.Exit(1)
	}
}

func generate(fs flagSet) error {
	pid := base.DefaultPid
	if fs.pid >= 0 {
		pid = uint16(fs.pid)
	}
	fp, err := os.Create(fs.genFile)
	if err != nil {
		return err
	}
	defer fp.Close()
	n, err := logic.GenerateStream(fp, pid, fs.genNum, 400)
	_, _ = fmt.Fprintf(os.Stderr, "generate %d frames on PID %d. file=%s\n", n, pid, fs.genFile)
	return err
}

func parseFlag() flagSet {
	var fs flagSet
	binInfoFlag := flag.Bool("v", false, "show bin info")
	flag.StringVar(&fs.confFile, "c", "", "specify conf file")
	flag.StringVar(&fs.input, "i", "", "specify input, file path or udp://ip:port or srt://ip:port")
	flag.IntVar(&fs.pid, "pid", -1, "specify pid, overwrite the value in conf file")
	flag.StringVar(&fs.outPath, "o", "", "specify output dir of es file")
	flag.StringVar(&fs.genFile, "gen", "", "generate a test ts file and exit")
	flag.IntVar(&fs.genNum, "gen_num", 100, "frame number of generated ts file")
	flag.Parse()
	if *binInfoFlag {
		_, _ = fmt.Fprint(os.Stderr, bininfo.StringifyMultiLine())
		_, _ = fmt.Fprintln(os.Stderr, base.TspesFullInfo)
		os.Exit(0)
	}
	if fs.pid > 0x1FFF {
		flag.Usage()
		_, _ = fmt.Fprintf(os.Stderr, "\ninvalid pid. pid=%d\n", fs.pid)
		os.Exit(1)
	}
	if fs.confFile == "" && fs.input == "" && fs.genFile == "" {
		flag.Usage()
		_, _ = fmt.Fprintf(os.Stderr, `
Example:
  ./bin/tsparser -c ./conf/tsparser.conf.json
  ./bin/tsparser -i ./testdata/in.ts -pid 136 -o ./out
  ./bin/tsparser -i udp://0.0.0.0:1234 -pid 256
  ./bin/tsparser -gen ./testdata/in.ts -pid 136
`)
		os.Exit(1)
	}
	return fs
}
