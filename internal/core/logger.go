package core

import (
	"io"
	"io/ioutil"
	"log"
	"os"
)

// Logger defines the output interface used by the tree engine and the tools.
type Logger interface {
	Debug(...interface{})
	Debugf(string, ...interface{})
	Info(...interface{})
	Infof(string, ...interface{})
	Warn(...interface{})
	Warnf(string, ...interface{})
	Error(...interface{})
	Errorf(string, ...interface{})
}

// DefaultLogger wraps the standard log library. D is silent unless the logger
// was created verbose.
type DefaultLogger struct {
	D *log.Logger
	I *log.Logger
	W *log.Logger
	E *log.Logger
}

// NewLogger returns a configured default logger. Everything goes to stderr so
// that stdout stays reserved for the results.
func NewLogger(verbose bool) *DefaultLogger {
	var debug io.Writer = ioutil.Discard
	if verbose {
		debug = os.Stderr
	}
	return &DefaultLogger{
		D: log.New(debug, "[DEBUG] ", log.LstdFlags),
		I: log.New(os.Stderr, "[INFO] ", log.LstdFlags),
		W: log.New(os.Stderr, "[WARN] ", log.LstdFlags),
		E: log.New(os.Stderr, "[ERROR] ", log.LstdFlags),
	}
}

// Debug writes to the debug logger
func (d *DefaultLogger) Debug(v ...interface{}) { d.D.Print(v...) }

// Debugf writes to the debug logger
func (d *DefaultLogger) Debugf(f string, v ...interface{}) { d.D.Printf(f, v...) }

// Info writes to info logger
func (d *DefaultLogger) Info(v ...interface{}) { d.I.Print(v...) }

// Infof writes to info logger
func (d *DefaultLogger) Infof(f string, v ...interface{}) { d.I.Printf(f, v...) }

// Warn writes to the warning logger
func (d *DefaultLogger) Warn(v ...interface{}) { d.W.Print(v...) }

// Warnf writes to the warning logger
func (d *DefaultLogger) Warnf(f string, v ...interface{}) { d.W.Printf(f, v...) }

// Error writes to the error logger
func (d *DefaultLogger) Error(v ...interface{}) { d.E.Print(v...) }

// Errorf writes to the error logger
func (d *DefaultLogger) Errorf(f string, v ...interface{}) { d.E.Printf(f, v...) }

// SetOutput redirects all the levels to w. The debug level is redirected only
// if it is enabled.
func (d *DefaultLogger) SetOutput(w io.Writer) {
	if d.D.Writer() != ioutil.Discard {
		d.D.SetOutput(w)
	}
	d.I.SetOutput(w)
	d.W.SetOutput(w)
	d.E.SetOutput(w)
}
