package kfmt

// Level defines the severity of a log message.
type Level uint8

// The supported log levels in increasing order of severity.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

	// logLevel is the minimum level for messages emitted by the *f helpers.
	logLevel = LevelInfo
)

// String implements fmt.Stringer for Level.
func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// SetLogLevel sets the minimum level of messages that get logged. Messages
// with a lower level are silently dropped.
func SetLogLevel(l Level) {
	logLevel = l
}

// LogLevel returns the currently active minimum log level.
func LogLevel() Level {
	return logLevel
}

// ParseLevel maps a level name as it appears on the kernel command line
// (debug, info, warn, error) to a Level.
func ParseLevel(name string) (Level, bool) {
	switch name {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelInfo, false
}

// Debugf logs a debug message on behalf of module.
func Debugf(module, format string, args ...interface{}) {
	logf(LevelDebug, module, format, args...)
}

// Infof logs an informational message on behalf of module.
func Infof(module, format string, args ...interface{}) {
	logf(LevelInfo, module, format, args...)
}

// Warnf logs a warning on behalf of module.
func Warnf(module, format string, args ...interface{}) {
	logf(LevelWarn, module, format, args...)
}

// Errorf logs an error on behalf of module.
func Errorf(module, format string, args ...interface{}) {
	logf(LevelError, module, format, args...)
}

// logf emits "[LEVEL] [module] message\n" to the active output sink.
func logf(level Level, module, format string, args ...interface{}) {
	if level < logLevel {
		return
	}

	Fprintf(outputSink, "[%s] [%s] ", levelNames[level], module)
	Fprintf(outputSink, format, args...)
	writeByte(outputSink, '\n')
}
