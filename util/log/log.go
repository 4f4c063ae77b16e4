package log

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const (
	logNameDebug   = "debug.log"
	logNameInfo    = "info.log"
	logNameWarning = "warn.log"
	logNameError   = "error.log"

	logTimeFormat = "2006-01-02 15:04:05.000"
)

// Logger holds one logrus instance per severity so each level can rotate
// its own file.
type Logger struct {
	Debug *logrus.Logger
	Info  *logrus.Logger
	Warn  *logrus.Logger
	Error *logrus.Logger
}

var (
	logger    Logger
	logPath   = "./logs"
	debug     bool
	logPrefix string
)

// Init creates the global logger instances under the given directory.
// Debug mode mirrors every level to stderr and adds the debug level file.
func Init(logDir string, debugMode bool) {
	if logDir != "" {
		logPath = logDir
	}
	err := os.MkdirAll(logPath, 0700)
	if err != nil {
		panic(err)
	}

	debug = debugMode

	logger = Logger{
		Debug: newLogger(logNameDebug, logrus.DebugLevel),
		Info:  newLogger(logNameInfo, logrus.InfoLevel),
		Warn:  newLogger(logNameWarning, logrus.WarnLevel),
		Error: newLogger(logNameError, logrus.ErrorLevel),
	}
}

// SetPrefix sets the output prefix for the logger. Commands use it to tag
// lines with their subsystem name.
func SetPrefix(prefix string) {
	logPrefix = prefix
}

// DebugLogger returns the debug-level instance, for injection into library
// packages that take their logger whole (rpcclient.UseLogger). Init must
// have run first.
func DebugLogger() *logrus.Logger {
	return logger.Debug
}

func newLogger(fileName string, level logrus.Level) *logrus.Logger {
	fileName = path.Join(logPath, fileName)

	l := &logrus.Logger{
		Out:       nil,
		Formatter: new(logFormatter),
		Level:     level,
		Hooks:     nil,
	}

	if debug {
		l.SetOutput(io.MultiWriter(os.Stderr, newLogWriter(fileName)))
		return l
	}

	if level >= logrus.DebugLevel {
		l.SetOutput(ioutil.Discard)
	} else {
		l.SetOutput(io.MultiWriter(os.Stderr, newLogWriter(fileName)))
	}

	return l
}

func newLogWriter(logPath string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    30,
		MaxBackups: 100,
		MaxAge:     30,
	}
}

// logFormatter defines a custom formatter for logrus.
type logFormatter struct{}

// Format formats log output.
func (f *logFormatter) Format(e *logrus.Entry) ([]byte, error) {
	if logPrefix != "" {
		return []byte(fmt.Sprintf("%s [%s][%s] %s",
			e.Time.Format(logTimeFormat), logPrefix, e.Level.String(), e.Message)), nil
	}
	return []byte(fmt.Sprintf("%s [%s] %s",
		e.Time.Format(logTimeFormat), e.Level.String(), e.Message)), nil
}

// Debugf logs in Debug level.
func Debugf(format string, v ...interface{}) {
	logger.Debug.Debug(logHandler(format, v))
}

// Debug logs in Debug level.
func Debug(v ...interface{}) {
	logger.Debug.Debug(logHandler("", v))
}

// Infof logs in Info level.
func Infof(format string, v ...interface{}) {
	logger.Info.Info(logHandler(format, v))
}

// Info logs in Info level.
func Info(v ...interface{}) {
	logger.Info.Info(logHandler("", v))
}

// Warnf logs in Warn level.
func Warnf(format string, v ...interface{}) {
	logger.Warn.Warn(logHandler(format, v))
}

// Warn logs in Warn level.
func Warn(v ...interface{}) {
	logger.Warn.Warn(logHandler("", v))
}

// Errorf logs in Error level.
func Errorf(format string, v ...interface{}) {
	logger.Error.Error(logHandler(format, v))
}

// Error logs in Error level.
func Error(v ...interface{}) {
	logger.Error.Error(logHandler("", v))
}

// Fatalf logs in Fatal level.
func Fatalf(format string, v ...interface{}) {
	logger.Error.Fatal(logHandler(format, v))
}

// Fatal logs in Fatal level.
func Fatal(v ...interface{}) {
	logger.Error.Fatal(logHandler("", v))
}

func logHandler(format string, v []interface{}) (msg string) {
	defer func() {
		if !strings.HasSuffix(msg, "\n") {
			msg += "\n"
		}
	}()

	if v == nil {
		return format
	}

	for i := 0; i < len(v); i++ {
		v[i] = extract(v[i])
	}

	if format == "" {
		for _, v := range v {
			msg += fmt.Sprint(v)
		}
		return msg
	}

	return fmt.Sprintf(format, v...)
}

func extract(v interface{}) interface{} {
	if v == nil {
		return nil
	}

	// Wrapped errors carry their stack; %+v renders it.
	if err, ok := v.(error); ok {
		return fmt.Sprintf("%+v", err)
	}

	if stringer, ok := v.(fmt.Stringer); ok {
		return stringer.String()
	}

	return v
}
