package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc/grpclog"
)

// minGRPCLevel keeps gRPC connection chatter out of the logs.
const minGRPCLevel = zapcore.WarnLevel

// GRPCLogger adapts a zap logger to grpclog.LoggerV2.
type GRPCLogger struct {
	// sugar receives the gRPC messages.
	sugar *zap.SugaredLogger
}

// NewGRPCLogger returns a gRPC logger named "grpc" that only passes warnings
// and errors of the global logger.
func NewGRPCLogger() *GRPCLogger {
	return &GRPCLogger{
		sugar: global.Load().Named("grpc").WithOptions(withMinLevel(minGRPCLevel)),
	}
}

// Install replaces the gRPC package logger. Call it before any gRPC activity.
func (l *GRPCLogger) Install() {
	grpclog.SetLoggerV2(l)
}

// Info implements grpclog.LoggerV2.
func (l *GRPCLogger) Info(args ...any) { l.sugar.Info(args...) }

// Infoln implements grpclog.LoggerV2.
func (l *GRPCLogger) Infoln(args ...any) { l.sugar.Infoln(args...) }

// Infof implements grpclog.LoggerV2.
func (l *GRPCLogger) Infof(format string, args ...any) { l.sugar.Infof(format, args...) }

// Warning implements grpclog.LoggerV2.
func (l *GRPCLogger) Warning(args ...any) { l.sugar.Warn(args...) }

// Warningln implements grpclog.LoggerV2.
func (l *GRPCLogger) Warningln(args ...any) { l.sugar.Warnln(args...) }

// Warningf implements grpclog.LoggerV2.
func (l *GRPCLogger) Warningf(format string, args ...any) { l.sugar.Warnf(format, args...) }

// Error implements grpclog.LoggerV2.
func (l *GRPCLogger) Error(args ...any) { l.sugar.Error(args...) }

// Errorln implements grpclog.LoggerV2.
func (l *GRPCLogger) Errorln(args ...any) { l.sugar.Errorln(args...) }

// Errorf implements grpclog.LoggerV2.
func (l *GRPCLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }

// Fatal implements grpclog.LoggerV2.
func (l *GRPCLogger) Fatal(args ...any) { l.sugar.Fatal(args...) }

// Fatalln implements grpclog.LoggerV2.
func (l *GRPCLogger) Fatalln(args ...any) { l.sugar.Fatalln(args...) }

// Fatalf implements grpclog.LoggerV2.
func (l *GRPCLogger) Fatalf(format string, args ...any) { l.sugar.Fatalf(format, args...) }

// V implements grpclog.LoggerV2. Verbose gRPC logging is never enabled.
func (l *GRPCLogger) V(int) bool { return false }

// minLevelCore drops entries below level regardless of the wrapped core.
type minLevelCore struct {
	zapcore.Core

	// level is the minimum level passed through.
	level zapcore.Level
}

func (c *minLevelCore) Enabled(l zapcore.Level) bool {
	return c.level.Enabled(l) && c.Core.Enabled(l)
}

//nolint:gocritic // AddCore requires ent to be passed by value.
func (c *minLevelCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.level.Enabled(ent.Level) {
		return ce
	}

	return c.Core.Check(ent, ce)
}

//nolint:ireturn // zapcore.Core is the zap extension point.
func (c *minLevelCore) With(fields []zapcore.Field) zapcore.Core {
	return &minLevelCore{Core: c.Core.With(fields), level: c.level}
}

// withMinLevel wraps the logger core in a minLevelCore.
//
//nolint:ireturn // zap.Option is the zap extension point.
func withMinLevel(lvl zapcore.Level) zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &minLevelCore{Core: core, level: lvl}
	})
}
