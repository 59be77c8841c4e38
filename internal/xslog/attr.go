package xslog

import (
	"log/slog"
	"time"

	"github.com/garrettladley/commish/internal/version"
)

const (
	keyError = "error"
)

func Error(err error) slog.Attr {
	return slog.String(keyError, err.Error())
}

func ErrorAny(err any) slog.Attr {
	return slog.Any(keyError, err)
}

func HTTPStatus(status int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, status)
}

func Method(method string) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, method)
}

func Path(path string) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, path)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func Backoff(backoff time.Duration) slog.Attr {
	const backoffKey = "backoff"
	return slog.Duration(backoffKey, backoff)
}

func Attempt(n int) slog.Attr {
	const attemptKey = "attempt"
	return slog.Int(attemptKey, n)
}

func Event(name string) slog.Attr {
	const eventKey = "event"
	return slog.String(eventKey, name)
}

func Target(target string) slog.Attr {
	const targetKey = "target"
	return slog.String(targetKey, target)
}

func State(state string) slog.Attr {
	const stateKey = "state"
	return slog.String(stateKey, state)
}

func Owner(owner string) slog.Attr {
	const ownerKey = "owner"
	return slog.String(ownerKey, owner)
}

func UserID(id string) slog.Attr {
	const userIDKey = "user_id"
	return slog.String(userIDKey, id)
}

func Data(data string) slog.Attr {
	const dataKey = "data"
	return slog.String(dataKey, data)
}

func Type(t string) slog.Attr {
	const typeKey = "type"
	return slog.String(typeKey, t)
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}

func Refs(refs int) slog.Attr {
	const refsKey = "refs"
	return slog.Int(refsKey, refs)
}

func Version() slog.Attr {
	const versionKey = "version"
	return slog.String(versionKey, version.Get())
}

func SessionID(id string) slog.Attr {
	const sessionIDKey = "session_id"
	return slog.String(sessionIDKey, id)
}

func Command(path string) slog.Attr {
	const commandKey = "command"
	return slog.String(commandKey, path)
}
