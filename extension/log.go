package extension

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/freqlab/clapkit/abi"
)

// HostLogID identifies the host logging extension.
const HostLogID ID = "clap.log"

// Severity classifies a logged message. Beyond the usual levels, the two
// misbehaving severities flag protocol violations by one side, so the
// embedding application can surface them separately.
type Severity int32

const (
	SeverityDebug   Severity = 0
	SeverityInfo    Severity = 1
	SeverityWarning Severity = 2
	SeverityError   Severity = 3
	SeverityFatal   Severity = 4
	// SeverityHostMisbehaving reports a protocol violation by the host.
	SeverityHostMisbehaving Severity = 5
	// SeverityPluginMisbehaving reports a protocol violation by the plugin.
	SeverityPluginMisbehaving Severity = 6
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	case SeverityHostMisbehaving:
		return "host_misbehaving"
	case SeverityPluginMisbehaving:
		return "plugin_misbehaving"
	default:
		return "unknown"
	}
}

func (s Severity) level() zapcore.Level {
	switch s {
	case SeverityDebug:
		return zapcore.DebugLevel
	case SeverityInfo:
		return zapcore.InfoLevel
	case SeverityWarning:
		return zapcore.WarnLevel
	case SeverityFatal:
		return zapcore.DPanicLevel
	default:
		return zapcore.ErrorLevel
	}
}

// HostLog is the host logging extension: plugins call Log from any thread
// to hand a message to the host's logging infrastructure.
type HostLog struct {
	SharedMarker
	Log func(host abi.InstanceHandle, severity Severity, msg string)
}

func (*HostLog) ExtensionID() ID {
	return HostLogID
}

func (*HostLog) Domain() ThreadDomain {
	return DomainShared
}

// NewHostLog builds a HostLog implementation routing every message to the
// given structured logger, tagged with its severity.
func NewHostLog(logger *zap.Logger) *HostLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HostLog{
		Log: func(host abi.InstanceHandle, severity Severity, msg string) {
			fields := []zap.Field{zap.Stringer("severity", severity)}
			if severity >= SeverityHostMisbehaving {
				fields = append(fields, zap.Bool("protocol_violation", true))
			}
			logger.Log(severity.level(), msg, fields...)
		},
	}
}
