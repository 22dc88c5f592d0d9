package logger

type Interface interface {
	Debug(v string)
	Debugf(format string, args ...any)
	Info(v string)
	Infof(format string, args ...any)
	Warn(v string)
	Warnf(format string, args ...any)
	Error(v string)
	Errorf(format string, args ...any)
	Fatal(v string)
	Fatalf(format string, args ...any)
}
