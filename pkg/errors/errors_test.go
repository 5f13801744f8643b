package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
	"time"
)

func TestAnimationErrorString(t *testing.T) {
	err := &AnimationError{
		Op:   "document.Load",
		Kind: KindParsing,
		Err:  &ParseError{Source: "walk.yaml", Field: "animations[0].fps", Got: -1},
	}
	got := err.Error()
	want := "document.Load [parsing]: invalid value for animations[0].fps in walk.yaml: got -1"
	if got != want {
		t.Errorf("AnimationError.Error() = %q, want %q", got, want)
	}
}

func TestAnimationErrorWithAnimation(t *testing.T) {
	err := &AnimationError{
		Op:        "animation.Instance.Advance",
		Kind:      KindInvalidArgument,
		Animation: "walk",
		Err:       stderrors.New("negative elapsed time"),
	}
	got := err.Error()
	want := "animation=walk"
	if !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestAnimationErrorUnwrap(t *testing.T) {
	inner := &ParseError{Field: "format", Got: "v2.0.0"}
	err := &AnimationError{Op: "document.Load", Kind: KindFormat, Err: inner}

	var pe *ParseError
	if !stderrors.As(err, &pe) {
		t.Fatal("expected errors.As to find the ParseError")
	}
	if pe != inner {
		t.Errorf("As() returned %p, want %p", pe, inner)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindInvalidArgument, "invalid argument"},
		{KindParsing, "parsing"},
		{KindFormat, "format"},
		{KindLookup, "lookup"},
		{KindPanic, "panic"},
		{ErrorKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic: test panic"
	if got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestPanicErrorStringWithOp(t *testing.T) {
	err := &PanicError{
		Op:        "animation.StepTickers",
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic in animation.StepTickers: test panic"
	if got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestParseErrorWithoutSource(t *testing.T) {
	err := &ParseError{Field: "artboard.background", Got: "#zz"}
	want := "invalid value for artboard.background: got #zz"
	if got := err.Error(); got != want {
		t.Errorf("ParseError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var capturedErr *AnimationError
	handler := &testHandler{
		onError: func(err *AnimationError) {
			capturedErr = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(&AnimationError{
		Op:   "test.op",
		Kind: KindInvalidArgument,
		Err:  stderrors.New("bad"),
	})

	if capturedErr == nil {
		t.Fatal("expected error to be captured")
	}
	if capturedErr.Op != "test.op" {
		t.Errorf("Op = %q, want %q", capturedErr.Op, "test.op")
	}
	if capturedErr.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportNil(t *testing.T) {
	called := false
	handler := &testHandler{
		onError: func(*AnimationError) { called = true },
	}
	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(nil)
	if called {
		t.Error("Report(nil) should not reach the handler")
	}
}

func TestRecover(t *testing.T) {
	var capturedPanic *PanicError
	handler := &testHandler{
		onPanic: func(err *PanicError) {
			capturedPanic = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if capturedPanic == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if capturedPanic.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", capturedPanic.Value, "intentional test panic")
	}
	if capturedPanic.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", capturedPanic.Op, "test.recover")
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Error("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	oldHandler := DefaultHandler
	defer SetHandler(oldHandler)

	SetHandler(nil)
	if DefaultHandler == nil {
		t.Error("SetHandler(nil) should set default LogHandler, not nil")
	}
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}
	h.HandleError(&AnimationError{
		Op:        "animation.Instance.Advance",
		Kind:      KindInvalidArgument,
		Animation: "walk",
		Err:       stderrors.New("negative elapsed time -0.5"),
	})
	want := "[timeline error] animation.Instance.Advance: negative elapsed time -0.5\n"
	if got := buf.String(); got != want {
		t.Errorf("terse output = %q, want %q", got, want)
	}

	buf.Reset()
	h.Verbose = true
	h.HandleError(&AnimationError{
		Op:        "animation.Instance.Advance",
		Kind:      KindInvalidArgument,
		Animation: "walk",
		Err:       stderrors.New("negative elapsed time -0.5"),
	})
	if got := buf.String(); !strings.Contains(got, "[invalid argument] animation=walk") {
		t.Errorf("verbose output %q missing kind and animation", got)
	}

	buf.Reset()
	h.HandlePanic(&PanicError{Op: "animation.StepTickers", Value: "boom"})
	if got := buf.String(); got != "[timeline panic] animation.StepTickers: boom\n" {
		t.Errorf("panic output = %q", got)
	}
}

type testHandler struct {
	onError func(*AnimationError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *AnimationError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
