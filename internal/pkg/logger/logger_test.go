package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(core zapcore.Core) *Logger {
	return &Logger{Logger: zap.New(core)}
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "default config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "console output",
			config: &Config{
				Level:  "info",
				Format: "console",
				Output: "console",
			},
			wantErr: false,
		},
		{
			name: "both output",
			config: &Config{
				Level:  "warn",
				Format: "json",
				Output: "both",
				File: FileConfig{
					Filename:   filepath.Join(dir, "both.log"),
					MaxSize:    10,
					MaxAge:     7,
					MaxBackups: 3,
				},
			},
			wantErr: false,
		},
		{
			name: "invalid level",
			config: &Config{
				Level:  "invalid",
				Format: "json",
				Output: "console",
			},
			wantErr: true,
		},
		{
			name: "invalid format",
			config: &Config{
				Level:  "info",
				Format: "xml",
				Output: "console",
			},
			wantErr: true,
		},
		{
			name: "file output without filename",
			config: &Config{
				Level:  "info",
				Format: "json",
				Output: "file",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && logger == nil {
				t.Error("New() returned nil logger")
			}
		})
	}
}

func TestFileOnly(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "shopper.log")
	logger, err := FileOnly(filename, "debug")
	if err != nil {
		t.Fatalf("FileOnly() error = %v", err)
	}
	logger.Info("written to file only")
	_ = logger.Sync()

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "written to file only") {
		t.Errorf("log file = %s", data)
	}
}

func TestContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	if got := GetRequestID(ctx); got != "req-1" {
		t.Errorf("GetRequestID() = %q, want req-1", got)
	}

	core, logs := observer.New(zapcore.InfoLevel)
	observed(core).WithContext(ctx).Info("hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["request_id"]; got != "req-1" {
		t.Errorf("request_id = %v, want req-1", got)
	}
}

func TestGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(GinLogger(observed(core), MiddlewareOptions{SkipPaths: []string{"/api/health"}}))
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/products", func(c *gin.Context) {
		if GetRequestID(c.Request.Context()) == "" {
			t.Error("request ID missing from handler context")
		}
		c.Status(http.StatusBadRequest)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if logs.Len() != 0 {
		t.Errorf("skipped path was logged")
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("request ID header not set on skipped path")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products?q=x", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn for 4xx", entries[0].Level)
	}
	if got := entries[0].ContextMap()["request_id"]; got != "fixed-id" {
		t.Errorf("request_id = %v, want fixed-id", got)
	}
	if got := w.Header().Get(RequestIDHeader); got != "fixed-id" {
		t.Errorf("response header = %q, want fixed-id", got)
	}
}

func TestGinRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.ErrorLevel)
	r := gin.New()
	r.Use(GinRecovery(observed(core), "Node-A"))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if body := w.Body.String(); body != `{"error":"Internal server error","serverName":"Node-A"}` {
		t.Errorf("body = %s", body)
	}
	if logs.FilterMessage("Panic recovered").Len() != 1 {
		t.Error("panic was not logged")
	}
}

func TestGlobalLogger(t *testing.T) {
	prev := L()
	defer SetGlobal(prev)

	core, logs := observer.New(zapcore.InfoLevel)
	SetGlobal(observed(core))
	L().Info("info message", zap.String("key", "value"))
	_ = Sync()

	if logs.FilterMessage("info message").Len() != 1 {
		t.Error("global logger did not receive the entry")
	}
}
