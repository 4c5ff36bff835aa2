// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Logger prints messages to console and, optionally, to a log file. Loggers are
// bound to a run id and to a named subsystem; e.g. "ReadMesh" or "MPMExplicit"
type Logger struct {
	RunId   string // unique id of analysis
	Name    string // subsystem name
	Verbose bool   // show info messages

	// log file; shared among sub-loggers
	file *logFile
}

// logFile holds a log file shared by all sub-loggers
type logFile struct {
	mu  sync.Mutex
	fil *os.File
	lgr *log.Logger
}

// NewLogger returns a new logger for a run
func NewLogger(runId string, verbose bool) *Logger {
	return &Logger{RunId: runId, Name: "IO", Verbose: verbose}
}

// Sub returns a logger for a named subsystem sharing run id, verbosity and file
func (o *Logger) Sub(name string) *Logger {
	if o == nil {
		return nil
	}
	return &Logger{RunId: o.RunId, Name: name, Verbose: o.Verbose, file: o.file}
}

// SetFile starts logging to dirout/fnkey.log
func (o *Logger) SetFile(dirout, fnkey string) (err error) {
	err = os.MkdirAll(dirout, 0777)
	if err != nil {
		return chk.Err("cannot create directory for log file:\n%v", err)
	}
	fil, err := os.Create(filepath.Join(dirout, fnkey+".log"))
	if err != nil {
		return chk.Err("cannot create log file:\n%v", err)
	}
	o.file = &logFile{fil: fil, lgr: log.New(fil, "", log.LstdFlags)}
	return
}

// Close flushes and closes the log file, if any
func (o *Logger) Close() (err error) {
	if o == nil || o.file == nil {
		return
	}
	o.file.mu.Lock()
	defer o.file.mu.Unlock()
	return o.file.fil.Close()
}

// Infof logs an info message; console output only if verbose
func (o *Logger) Infof(msg string, prm ...interface{}) {
	if o == nil {
		return
	}
	o.tofile("INFO", msg, prm...)
	if o.Verbose {
		io.Pf(o.prefix()+msg, prm...)
	}
}

// Warnf logs a warning message
func (o *Logger) Warnf(msg string, prm ...interface{}) {
	if o == nil {
		return
	}
	o.tofile("WARN", msg, prm...)
	io.Pfyel(o.prefix()+msg, prm...)
}

// Errorf logs an error message
func (o *Logger) Errorf(msg string, prm ...interface{}) {
	if o == nil {
		return
	}
	o.tofile("ERROR", msg, prm...)
	io.Pfred(o.prefix()+msg, prm...)
}

// LogErr logs error, if any, and returns true if err != nil
func (o *Logger) LogErr(err error, msg string) (stop bool) {
	if err == nil {
		return false
	}
	o.Errorf("%s:\n%v\n", msg, err)
	return true
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func (o *Logger) prefix() string {
	if len(o.RunId) > 8 {
		return io.Sf("[%s] [%s] ", o.RunId[:8], o.Name)
	}
	return io.Sf("[%s] [%s] ", o.RunId, o.Name)
}

func (o *Logger) tofile(level, msg string, prm ...interface{}) {
	if o.file == nil {
		return
	}
	o.file.mu.Lock()
	defer o.file.mu.Unlock()
	o.file.lgr.Printf("%s [%s] [%s] "+msg, append([]interface{}{level, o.RunId, o.Name}, prm...)...)
}
