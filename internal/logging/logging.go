// Package logging configures the standard logger.
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Init directs the standard logger to stdout and, when file is set, to a
// rotated log file as well. The returned closer releases the file.
func Init(file string) io.Closer {
	return InitWriter(os.Stdout, file)
}

// InitWriter is Init with console output going to w.
func InitWriter(w io.Writer, file string) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if file == "" {
		log.SetOutput(w)
		return nopCloser{}
	}

	lj := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    100, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(w, lj))
	log.Printf("[Logging] Writing logs to %s", file)
	return lj
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
