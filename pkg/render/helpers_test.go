package render_test

import "sync"

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) {
	l.record("debug", msg, fields)
}

func (l *recordingLogger) Info(msg string, fields map[string]interface{}) {
	l.record("info", msg, fields)
}

func (l *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	l.record("warn", msg, fields)
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.record("error", msg, fields)
}

func (l *recordingLogger) warnings() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []logEntry

	for _, e := range l.entries {
		if e.level == "warn" {
			out = append(out, e)
		}
	}

	return out
}
