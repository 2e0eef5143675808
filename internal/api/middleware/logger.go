package middleware

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/JojoFlex1/done/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SensitivePaths are never logged with request or response bodies.
// They carry passwords, one-time codes or seed phrases.
var SensitivePaths = []string{
	"/auth/",
	"/wallet/generate",
	"/wallet/decrypt",
	"/wallet/provision",
}

type LoggerConfig struct {
	Skipper           middleware.Skipper
	Level             zerolog.Level
	LogRequestBody    bool
	LogRequestHeader  bool
	LogRequestQuery   bool
	LogResponseBody   bool
	LogResponseHeader bool
	// BodyLogSkipper reports requests whose bodies must not be logged.
	BodyLogSkipper func(req *http.Request) bool
}

var DefaultLoggerConfig = LoggerConfig{
	Skipper:           middleware.DefaultSkipper,
	Level:             zerolog.DebugLevel,
	LogRequestBody:    false,
	LogRequestHeader:  false,
	LogRequestQuery:   false,
	LogResponseBody:   false,
	LogResponseHeader: false,
	BodyLogSkipper:    SkipSensitivePaths,
}

// SkipSensitivePaths is the default BodyLogSkipper.
func SkipSensitivePaths(req *http.Request) bool {
	for _, p := range SensitivePaths {
		if strings.HasPrefix(req.URL.Path, p) {
			return true
		}
	}

	return false
}

func Logger() echo.MiddlewareFunc {
	return LoggerWithConfig(DefaultLoggerConfig)
}

// LoggerWithConfig attaches a request scoped zerolog logger carrying the request id to the
// request context and logs every request once it was handled.
//
//nolint:gocognit
func LoggerWithConfig(config LoggerConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultLoggerConfig.Skipper
	}
	if config.BodyLogSkipper == nil {
		config.BodyLogSkipper = DefaultLoggerConfig.BodyLogSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			res := c.Response()

			id := req.Header.Get(echo.HeaderXRequestID)
			if len(id) == 0 {
				id = res.Header().Get(echo.HeaderXRequestID)
			}

			in := time.Now()
			l := log.With().
				Str("id", id).
				Str("host", req.Host).
				Str("method", req.Method).
				Str("url", req.URL.Path).
				Str("bytes_in", req.Header.Get(echo.HeaderContentLength)).
				Logger()
			le := l.WithLevel(config.Level)

			ctx := l.WithContext(context.WithValue(req.Context(), util.CTXKeyRequestID, id))
			c.SetRequest(req.WithContext(ctx))
			req = c.Request()

			logBodies := !config.BodyLogSkipper(req)

			if config.LogRequestBody && logBodies {
				var reqBody []byte
				if req.Body != nil {
					var err error
					reqBody, err = io.ReadAll(req.Body)
					if err != nil {
						l.Error().Err(err).Msg("Failed to read body while logging request")
						return err
					}
					req.Body = io.NopCloser(bytes.NewBuffer(reqBody))
				}
				le = le.Bytes("req_body", reqBody)
			}

			if config.LogRequestHeader {
				header := zerolog.Dict()
				for k, v := range req.Header {
					if k == echo.HeaderAuthorization || k == "Cookie" {
						continue
					}
					header.Strs(k, v)
				}
				le = le.Dict("req_header", header)
			}

			if config.LogRequestQuery {
				query := zerolog.Dict()
				for k, v := range req.URL.Query() {
					query.Strs(k, v)
				}
				le = le.Dict("req_query", query)
			}

			var resBody *bytes.Buffer
			if config.LogResponseBody && logBodies {
				resBody = new(bytes.Buffer)
				mw := io.MultiWriter(res.Writer, resBody)
				res.Writer = &bodyDumpResponseWriter{Writer: mw, ResponseWriter: res.Writer}
			}

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			le = le.
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("duration_ms", time.Since(in)).
				Str("remote_ip", c.RealIP()).
				Str("user_agent", req.UserAgent())

			if err != nil {
				le = le.Err(err)
			}

			if resBody != nil {
				le = le.Bytes("res_body", resBody.Bytes())
			}

			if config.LogResponseHeader {
				header := zerolog.Dict()
				for k, v := range res.Header() {
					header.Strs(k, v)
				}
				le = le.Dict("res_header", header)
			}

			le.Send()

			return nil
		}
	}
}

type bodyDumpResponseWriter struct {
	io.Writer
	http.ResponseWriter
}

func (w *bodyDumpResponseWriter) WriteHeader(code int) {
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyDumpResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

func (w *bodyDumpResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *bodyDumpResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return http.NewResponseController(w.ResponseWriter).Hijack()
}
