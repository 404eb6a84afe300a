package logger

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	callerWidth = 30
)

type alignedEncoder struct {
	zapcore.Encoder
	pool buffer.Pool
}

func newAlignedEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return &alignedEncoder{
		Encoder: zapcore.NewConsoleEncoder(cfg),
		pool:    buffer.NewPool(),
	}
}

func (enc *alignedEncoder) Clone() zapcore.Encoder {
	return &alignedEncoder{
		Encoder: enc.Encoder.Clone(),
		pool:    enc.pool,
	}
}

func (enc *alignedEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf := enc.pool.Get()

	buf.AppendString(entry.Time.Format(time.RFC3339))
	buf.AppendByte('\t')

	buf.AppendString(entry.Level.CapitalString())
	buf.AppendByte('\t')

	caller := entry.Caller.TrimmedPath()
	if len(caller) > callerWidth {
		caller = "..." + caller[len(caller)-callerWidth+3:]
	}
	buf.AppendString(padRight(caller, callerWidth))
	buf.AppendByte('\t')

	buf.AppendString(entry.Message)

	// 结构化字段以 key=value 形式追加在消息后
	for _, f := range fields {
		buf.AppendByte('\t')
		buf.AppendString(f.Key)
		buf.AppendByte('=')
		buf.AppendString(fieldValue(f))
	}

	buf.AppendByte('\n')

	return buf, nil
}

func fieldValue(f zapcore.Field) string {
	switch f.Type {
	case zapcore.StringType:
		return f.String
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return fmt.Sprintf("%d", f.Integer)
	case zapcore.BoolType:
		if f.Integer == 1 {
			return "true"
		}
		return "false"
	case zapcore.DurationType:
		return time.Duration(f.Integer).String()
	case zapcore.ErrorType:
		if err, ok := f.Interface.(error); ok {
			return err.Error()
		}
		return fmt.Sprint(f.Interface)
	default:
		if f.Interface != nil {
			return fmt.Sprint(f.Interface)
		}
		return fmt.Sprintf("%d", f.Integer)
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
