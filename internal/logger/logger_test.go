package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMethodTracing(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter("debug", "text", &buf)
	defer Initialize("info", "text")

	EnterMethod("projectService.Create", "name", "Redes")
	ExitMethod("projectService.Create", "projectID", 42)
	ExitMethodWithError("projectService.Delete", errors.New("gone"), "projectID", 42)

	out := buf.String()
	assert.Contains(t, out, "method=projectService.Create event=enter name=Redes")
	assert.Contains(t, out, "method=projectService.Create event=exit projectID=42")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "error=gone")
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter("warn", "json", &buf)
	defer Initialize("info", "text")

	EnterMethod("hidden")
	Info("hidden")
	WarnContext(context.Background(), "shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestBackendResult(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter("debug", "text", &buf)
	defer Initialize("info", "text")

	ctx := context.Background()
	BackendResult(ctx, "GET", "/projects/1", 404, errors.New("not found"))
	BackendResult(ctx, "GET", "/projects/1", 500, errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "Backend call rejected")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "Backend call failed")
}
