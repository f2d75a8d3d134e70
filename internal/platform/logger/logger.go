package logger

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/rollbar/rollbar-go"

	"smart_edu_quiz/internal/domain/model"
)

// Logger prints to a standard logger and, when enabled, reports warnings and
// errors to Rollbar.
type Logger struct {
	std    *log.Logger
	remote bool
}

var Default = New(log.New(os.Stderr, "", log.LstdFlags), "", "")

func New(std *log.Logger, rollbarToken, env string) *Logger {
	l := &Logger{std: std}
	if rollbarToken != "" {
		rollbar.SetToken(rollbarToken)
		rollbar.SetEnvironment(env)
		rollbar.SetEnabled(true)
		l.remote = true
	} else {
		rollbar.SetEnabled(false)
	}
	return l
}

// Init replaces the package default logger.
func Init(rollbarToken, env string) *Logger {
	Default = New(log.New(os.Stderr, "", log.LstdFlags), rollbarToken, env)
	return Default
}

// Close flushes pending Rollbar items.
func (l *Logger) Close() {
	if l.remote {
		rollbar.Close()
	}
}

// prepare turns args into rollbar.Log items. A model.User becomes the person
// of a per-call context, so concurrent reports never share it. The first error
// is reported as the item; everything else goes to the extras.
func (l *Logger) prepare(msg string, args []interface{}) []interface{} {
	ctx := context.Background()
	extras := map[string]interface{}{}
	var err error
	var rest []interface{}
	for _, arg := range args {
		switch v := arg.(type) {
		case model.User:
			ctx = rollbar.NewPersonContext(ctx, &rollbar.Person{
				Id:       strconv.FormatInt(v.ID, 10),
				Username: v.Username,
				Email:    v.Email,
			})
		case error:
			if err == nil {
				err = v
				continue
			}
			rest = append(rest, v.Error())
		case map[string]interface{}:
			for k, x := range v {
				extras[k] = x
			}
		default:
			rest = append(rest, v)
		}
	}
	if len(rest) > 0 {
		extras["args"] = rest
	}
	if err != nil {
		extras["message"] = msg
		return []interface{}{ctx, extras, err}
	}
	return []interface{}{ctx, extras, msg}
}

func (l *Logger) print(level, msg string, args []interface{}) {
	if len(args) == 0 {
		l.std.Printf("%s: %s", level, msg)
		return
	}
	l.std.Printf("%s: %s %+v", level, msg, args)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.print("DEBUG", msg, args)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.print("INFO", msg, args)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	if l.remote {
		rollbar.Warning(l.prepare(msg, args)...)
	}
	l.print("WARN", msg, args)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	if l.remote {
		rollbar.Error(l.prepare(msg, args)...)
	}
	l.print("ERROR", msg, args)
}

func (l *Logger) Fatal(msg string, args ...interface{}) {
	if l.remote {
		rollbar.Critical(l.prepare(msg, args)...)
		rollbar.Close()
	}
	l.print("FATAL", msg, args)
	os.Exit(1)
}
