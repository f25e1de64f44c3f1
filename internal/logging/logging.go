// Package logging builds the logger shared by every nictrace component.
//
// Debug mode logs all levels as "LEVEL: message key=value ..."; normal mode
// logs warnings and errors only, as bare messages.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options configures the logger behavior.
type Options struct {
	// Debug enables all levels with level prefixes and fields.
	Debug bool

	// Out is the log destination. Defaults to os.Stderr.
	Out io.Writer
}

// New returns a logger configured once from opts.
func New(opts Options) *logrus.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	l := logrus.New()
	l.SetOutput(out)

	if opts.Debug {
		l.SetLevel(logrus.DebugLevel)
		l.SetFormatter(&Formatter{Verbose: true})
	} else {
		l.SetLevel(logrus.WarnLevel)
		l.SetFormatter(&Formatter{})
	}

	return l
}

// Formatter renders entries as plain lines.
type Formatter struct {
	// Verbose adds the level prefix and the entry fields.
	Verbose bool
}

// Format implements logrus.Formatter.
func (f *Formatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	if f.Verbose {
		b.WriteString(strings.ToUpper(e.Level.String()))
		b.WriteString(": ")
	}
	b.WriteString(e.Message)

	if f.Verbose && len(e.Data) > 0 {
		keys := make([]string, 0, len(e.Data))
		for k := range e.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
		}
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}
