package annotations

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// OutputFormatter formats events for human-readable display.
type OutputFormatter struct {
	useColor bool
	writer   io.Writer
}

// NewOutputFormatter creates a formatter with color support detection.
func NewOutputFormatter(w io.Writer) *OutputFormatter {
	if w == nil {
		w = os.Stderr
	}

	// Auto-detect color support
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = !color.NoColor && isatty.IsTerminal(f.Fd())
	}

	return &OutputFormatter{
		useColor: useColor,
		writer:   w,
	}
}

// NewPlainFormatter creates a formatter that never emits color codes.
func NewPlainFormatter(w io.Writer) *OutputFormatter {
	f := NewOutputFormatter(w)
	f.useColor = false
	return f
}

// Handle implements Handler - prints events as they occur
func (f *OutputFormatter) Handle(event Event) {
	output := f.Format(event)
	if output != "" {
		fmt.Fprintln(f.writer, output)
	}
}

// Format converts an event to a human-readable string.
func (f *OutputFormatter) Format(event Event) string {
	latency := f.formatLatency(event.Latency)

	switch event.Name {
	case MatchOpened:
		// The exhausted event carries the timing; skip the open
		return ""

	case MatchExhausted:
		pattern, _ := event.Data["pattern"].(string)
		count, _ := event.Data["match.count"].(int)
		return fmt.Sprintf("%s %s%s%s",
			latency,
			f.wrap("Match", pattern),
			f.arrow(),
			f.colorizeCount("triples", count))

	case PathEvaluated:
		path, _ := event.Data["path"].(string)
		subject, _ := event.Data["subject"].(string)
		count, _ := event.Data["node.count"].(int)
		return fmt.Sprintf("%s %s from %s%s%s",
			latency,
			f.wrap("Path", path),
			subject,
			f.arrow(),
			f.colorizeCount("nodes", count))

	case OrderByMaterialized:
		variable, _ := event.Data["variable"].(string)
		count, _ := event.Data["solution.count"].(int)
		return fmt.Sprintf("%s %s materialized %s",
			latency,
			f.wrap("OrderBy", variable),
			f.colorizeCount("solutions", count))

	case LimitReached:
		limit, _ := event.Data["limit"].(int)
		return fmt.Sprintf("%s %s reached, upstream closed",
			latency,
			f.wrap("Limit", fmt.Sprint(limit)))

	case QueryClosed:
		pipeline, _ := event.Data["pipeline"].(string)
		count, _ := event.Data["solution.count"].(int)
		return fmt.Sprintf("%s %s %s closed after %s",
			latency,
			f.colorize("===", color.FgGreen),
			pipeline,
			f.colorizeCount("solutions", count))

	case ErrorEvaluation:
		operator, _ := event.Data["operator"].(string)
		return fmt.Sprintf("%s %s %s failed: %v",
			latency,
			f.colorize("✗", color.FgRed),
			operator,
			event.Data["error"])

	default:
		// Generic format for unknown events
		return fmt.Sprintf("%s %s %v", latency, event.Name, event.Data)
	}
}

// wrap renders Name(detail) with the operator name highlighted
func (f *OutputFormatter) wrap(name, detail string) string {
	if !f.useColor {
		return fmt.Sprintf("%s(%s)", name, detail)
	}
	return fmt.Sprintf("%s%s%s",
		color.BlueString(name+"("),
		color.CyanString(detail),
		color.BlueString(")"))
}

func (f *OutputFormatter) arrow() string {
	if !f.useColor {
		return " → "
	}
	return color.YellowString(" → ")
}

// formatLatency formats a duration as [XXXms] or [XXXµs] with color coding.
func (f *OutputFormatter) formatLatency(d time.Duration) string {
	// Use microseconds for sub-millisecond durations
	if d < time.Millisecond {
		s := fmt.Sprintf("[%dµs]", d.Microseconds())
		if !f.useColor {
			return s
		}
		return color.GreenString(s)
	}

	ms := float64(d.Microseconds()) / 1000.0
	s := fmt.Sprintf("[%.1fms]", ms)
	if !f.useColor {
		return s
	}

	switch {
	case ms < 50:
		return color.GreenString(s)
	case ms < 200:
		return color.YellowString(s)
	default:
		return color.RedString(s)
	}
}

// colorizeCount formats a count with a label, using color based on the label type.
func (f *OutputFormatter) colorizeCount(label string, count int) string {
	text := fmt.Sprintf("%d %s", count, label)
	if !f.useColor {
		return text
	}

	switch strings.ToLower(label) {
	case "triples":
		return color.BlueString(text)
	case "solutions":
		return color.MagentaString(text)
	case "nodes":
		return color.CyanString(text)
	default:
		return text
	}
}

// colorize applies color if enabled.
func (f *OutputFormatter) colorize(text string, attrs ...color.Attribute) string {
	if !f.useColor {
		return text
	}
	return color.New(attrs...).Sprint(text)
}

// ConsoleHandler creates a handler that prints formatted events to stderr.
func ConsoleHandler() Handler {
	return NewOutputFormatter(os.Stderr).Handle
}
