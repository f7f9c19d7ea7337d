// Copyright 2020, Chef.  All rights reserved.
// https://github.com/q191201771/tspes
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package mpegts

// Frame 一个ES帧，打包成单个PID上的mpegts数据
//
// 用于生成测试流，以及命令行的 -gen 模式
type Frame struct {
	Pts uint64 // =(毫秒 * 90)
	Dts uint64
	Cc  uint8 // continuity_counter of TS Header

	// PID of TS Header
	Pid uint16

	// stream_id of PES Header
	// 音频 StreamIdAudio
	// 视频 StreamIdVideo
	Sid uint8

	// 为true时，首个packet携带adaptation field，其中包含random_access_indicator和PCR
	Key bool

	Raw []byte
}

// Pack 将帧打包成TS packet序列
//
// 注意，内部会增加 Frame.Cc 的值.
//
// PES_packet_length 为 len(Raw) 加上PES扩展头的长度，超过0xFFFF时写0，即长度不限定。
// 最后一个packet的空闲空间用adaptation field的stuffing填充，所以每个packet都是完整的188字节
//
// @return: 内存块为独立申请，调用结束后，内部不再持有
func (frame *Frame) Pack() []byte {
	bufLen := len(frame.Raw) * 2 // 预分配一块足够大的内存
	if bufLen < 1024 {
		bufLen = 1024
	}
	buf := make([]byte, bufLen)

	lpos := 0              // 当前输入帧的处理位置
	rpos := len(frame.Raw) // 当前输入帧大小
	first := true          // 是否为帧的首个packet的标准
	packetPosAtBuf := 0    // 当前输出packet相对于整个输出内存块的位置

	for first || lpos != rpos {
		if packetPosAtBuf+TsPacketSize > len(buf) {
			Log.Warnf("buffer too short. frame size=%d, buf=%d, packetPosAtBuf=%d", len(frame.Raw), len(buf), packetPosAtBuf)
			newBuf := make([]byte, packetPosAtBuf+TsPacketSize)
			copy(newBuf, buf)
			buf = newBuf
		}

		packet := buf[packetPosAtBuf : packetPosAtBuf+TsPacketSize] // 当前输出packet
		wpos := 0                                                   // 当前输出packet的写入位置
		packetPosAtBuf += TsPacketSize

		// 4字节头，只有PUSI、PID、AFC、CC非0
		packet[0] = syncByte
		packet[1] = 0x0
		if first {
			packet[1] = 0x40 // payload_unit_start_indicator
		}
		packet[1] |= uint8((frame.Pid >> 8) & 0x1F) // PID高5位
		packet[2] = uint8(frame.Pid & 0xFF)         // PID低8位

		// adaptation_field_control 先设置成无Adaptation
		packet[3] = 0x10 | (frame.Cc & 0x0f)
		frame.Cc++
		wpos += 4

		if first {
			if frame.Key {
				// 关键帧的首个packet带8字节AF：random_access + PCR(取DTS)
				packet[3] |= 0x20              // adaptation_field_control 设置Adaptation
				packet[4] = 7                  // adaptation_field_length
				packet[5] = 0x50               // random_access_indicator + PCR_flag
				packPcr(packet[6:], frame.Dts) // using 6 byte
				wpos += 8
			}

			// PES头只带PTS，或PTS+DTS
			packet[wpos] = 0x00        // packet_start_code_prefix 24-bits
			packet[wpos+1] = 0x00      //
			packet[wpos+2] = 0x01      //
			packet[wpos+3] = frame.Sid // stream_id
			wpos += 4

			// PTS相关
			headerSize := uint8(5)
			flags := uint8(0x80)
			// DTS相关
			if frame.Dts != frame.Pts {
				headerSize += 5
				flags |= 0x40
			}

			pesSize := rpos + int(headerSize) + 3 // PES Header剩余3字节 + PTS/DTS长度 + 整个帧的长度
			if pesSize > 0xFFFF {
				pesSize = 0
			}

			packet[wpos] = uint8(pesSize >> 8)     // PES_packet_length
			packet[wpos+1] = uint8(pesSize & 0xFF) //
			packet[wpos+2] = 0x80                  // 除了reserve的'10'，其他字段都是0
			packet[wpos+3] = flags                 // PTS/DTS flag
			packet[wpos+4] = headerSize            // PES_header_data_length: PTS+DTS数据长度
			wpos += 5

			packPts(packet[wpos:], flags>>6, frame.Pts+delay)
			wpos += 5
			if frame.Pts != frame.Dts {
				packPts(packet[wpos:], 1, frame.Dts+delay)
				wpos += 5
			}

			first = false
		}

		// 把帧的内容切割放入packet中
		bodySize := TsPacketSize - wpos // 当前TS packet，可写入大小
		inSize := rpos - lpos           // 整个帧剩余待打包大小

		if bodySize <= inSize {
			// 当前packet写不完这个帧，或者刚好够写完
			copy(packet[wpos:], frame.Raw[lpos:lpos+bodySize])
			lpos += bodySize
			continue
		}

		// 剩余数据不足以填满packet，差额用AF的stuffing补齐
		stuffSize := bodySize - inSize

		if packet[3]&0x20 != 0 {
			afEnd := TsPacketHeaderLength + 1 + int(packet[4])
			if wpos > afEnd {
				// PES头后移
				copy(packet[afEnd+stuffSize:], packet[afEnd:wpos])
			}
			wpos += stuffSize

			packet[4] += uint8(stuffSize) // adaptation_field_length
			for i := 0; i < stuffSize; i++ {
				packet[afEnd+i] = 0xFF
			}
		} else {
			packet[3] |= 0x20

			base := TsPacketHeaderLength
			if wpos > base {
				copy(packet[base+stuffSize:], packet[base:wpos])
			}
			wpos += stuffSize

			packet[4] = uint8(stuffSize - 1) // adaptation_field_length，为0时只有长度字段
			if stuffSize >= 2 {
				packet[5] = 0 // 所有flag都为0
				for i := 0; i < stuffSize-2; i++ {
					packet[6+i] = 0xFF
				}
			}
		}

		// 真实数据放在packet尾部
		copy(packet[wpos:], frame.Raw[lpos:rpos])
		lpos = rpos
	}

	return buf[:packetPosAtBuf]
}

// ----- private -------------------------------------------------------------------------------------------------------

// 只写入base，extension为0
func packPcr(out []byte, pcr uint64) {
	out[0] = uint8(pcr >> 25)
	out[1] = uint8(pcr >> 17)
	out[2] = uint8(pcr >> 9)
	out[3] = uint8(pcr >> 1)
	out[4] = uint8(pcr<<7) | 0x7e
	out[5] = 0
}

// 注意，除PTS外，DTS也使用这个函数打包
func packPts(out []byte, fb uint8, pts uint64) {
	var val uint64
	out[0] = (fb << 4) | (uint8(pts>>30) & 0x07) | 1

	val = (((pts >> 15) & 0x7FFF) << 1) | 1
	out[1] = uint8(val >> 8)
	out[2] = uint8(val)

	val = ((pts & 0x7FFF) << 1) | 1
	out[3] = uint8(val >> 8)
	out[4] = uint8(val)
}
