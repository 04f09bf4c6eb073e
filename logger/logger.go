package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const (
	permission = 0664
)

// LogBuild cấu hình logger trước khi tạo
type LogBuild struct {
	writer io.Writer
	path   string
	level  zerolog.Level
}

// LogData giữ logger đã tạo và file log (nếu có) để đóng khi tắt ứng dụng
type LogData struct {
	Writer  io.Writer
	LogFile *os.File
	Logger  zerolog.Logger
}

func New() *LogBuild {
	return &LogBuild{level: zerolog.InfoLevel}
}

func (build *LogBuild) FromPath(path string) *LogBuild {
	build.path = path
	return build
}

func (build *LogBuild) FromBuffer(w io.Writer) *LogBuild {
	build.writer = w
	return build
}

// Level đặt mức log theo tên ("debug", "info", ...); tên rỗng giữ mặc định info
func (build *LogBuild) Level(name string) *LogBuild {
	if name == "" {
		return build
	}
	if lvl, err := zerolog.ParseLevel(name); err == nil {
		build.level = lvl
	}
	return build
}

func (build *LogBuild) Make() (logData *LogData, err error) {
	logData = new(LogData)
	logData.Writer = os.Stdout
	if build.writer != nil {
		logData.Writer = build.writer
	}
	if build.path != "" {
		logData.LogFile, err = os.OpenFile(build.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, err
		}
		logData.Writer = zerolog.SyncWriter(logData.LogFile)
	}
	logData.Logger = zerolog.New(logData.Writer).Level(build.level).With().Timestamp().Logger()
	return
}

// Close đóng file log nếu có
func (logData *LogData) Close() error {
	if logData.LogFile == nil {
		return nil
	}
	return logData.LogFile.Close()
}
