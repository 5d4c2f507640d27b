package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yanmxa/fsgate/internal/policy"
)

// snapshotMarshaler wraps a policy Snapshot for zap logging
type snapshotMarshaler policy.Snapshot

func (s snapshotMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	_ = enc.AddArray("allowed_extensions", zapcore.ArrayMarshalerFunc(func(ae zapcore.ArrayEncoder) error {
		for _, ext := range s.AllowedExtensions {
			ae.AppendString(ext)
		}
		return nil
	}))
	_ = enc.AddArray("restricted_paths", zapcore.ArrayMarshalerFunc(func(ae zapcore.ArrayEncoder) error {
		for _, p := range s.RestrictedPrefixes {
			ae.AppendString(p)
		}
		return nil
	}))
	enc.AddInt64("max_file_size_bytes", s.MaxFileSizeBytes)
	for name, on := range s.Categories {
		enc.AddBool("category."+name, on)
	}
	enc.AddString("base_dir", s.BaseDir)
	return nil
}

// PolicyField creates a zap field describing a policy
func PolicyField(p *policy.Policy) zap.Field {
	if p == nil {
		return zap.Skip()
	}
	return zap.Object("policy", snapshotMarshaler(p.Snapshot()))
}

// paramsMarshaler wraps tool parameters for zap logging
type paramsMarshaler map[string]any

func (m paramsMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for k, v := range m {
		if err := enc.AddReflected(k, v); err != nil {
			return err
		}
	}
	return nil
}

// ParamsField creates a zap field for tool call parameters
func ParamsField(params map[string]any) zap.Field {
	return zap.Object("params", paramsMarshaler(params))
}
