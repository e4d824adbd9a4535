package host

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/aheuic/internal/storage"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestReadInt(t *testing.T) {
	h := New(log.NewTestLogger(t), Options{Input: strings.NewReader(" 12\n-7 x\nabc")})

	v, err := h.ReadInt()
	assert.NoError(t, err)
	assert.Equal(t, int32(12), v)

	v, err = h.ReadInt()
	assert.NoError(t, err)
	assert.Equal(t, int32(-7), v)

	_, err = h.ReadInt()
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestReadCharAfterReadInt(t *testing.T) {
	h := New(log.NewTestLogger(t), Options{Input: strings.NewReader("42 rest\n가\n")})

	v, err := h.ReadInt()
	assert.NoError(t, err)
	assert.Equal(t, int32(42), v)

	v, err = h.ReadChar()
	assert.NoError(t, err)
	assert.Equal(t, int32('가'), v)
}

func TestReadIntEOF(t *testing.T) {
	h := New(log.NewTestLogger(t), Options{})

	v, err := h.ReadInt()
	assert.NoError(t, err)
	assert.Equal(t, EOF, v)
}

func TestReadChar(t *testing.T) {
	h := New(log.NewTestLogger(t), Options{Input: strings.NewReader("가a")})

	v, err := h.ReadChar()
	assert.NoError(t, err)
	assert.Equal(t, int32('가'), v)

	v, err = h.ReadChar()
	assert.NoError(t, err)
	assert.Equal(t, int32('a'), v)

	v, err = h.ReadChar()
	assert.NoError(t, err)
	assert.Equal(t, EOF, v)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	h := New(log.NewTestLogger(t), Options{Output: &buf})

	assert.NoError(t, h.WriteInt(-42))
	assert.NoError(t, h.WriteChar('한'))
	assert.NoError(t, h.WriteChar('\n'))
	assert.Equal(t, "", buf.String())

	assert.NoError(t, h.Flush())
	assert.Equal(t, "-42한\n", buf.String())
}

func TestPromptFlushesOutput(t *testing.T) {
	var out, prompt bytes.Buffer
	h := New(log.NewTestLogger(t), Options{
		Input:  strings.NewReader("5"),
		Output: &out,
		Prompt: &prompt,
	})

	assert.NoError(t, h.WriteInt(1))
	v, err := h.ReadInt()
	assert.NoError(t, err)
	assert.Equal(t, int32(5), v)
	assert.Equal(t, "1", out.String())
	assert.Equal(t, "input an integer: ", prompt.String())
}

func TestStorageAccess(t *testing.T) {
	h := New(log.NewTestLogger(t), Options{})

	assert.NoError(t, h.Push(0, 1))
	assert.NoError(t, h.Push(0, 2))
	assert.NoError(t, h.Swap(0))
	assert.NoError(t, h.Duplicate(0))

	v, err := h.Pop(0)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), v)

	n, err := h.Storage().Len(0)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.True(t, errors.Is(h.Push(storage.ReservedIndex, 1), storage.ErrUnsupported))
}

func TestHostsAreIsolated(t *testing.T) {
	logger := log.NewTestLogger(t)
	first := New(logger, Options{})
	second := New(logger, Options{})

	assert.NoError(t, first.Push(3, 9))
	_, err := second.Pop(3)
	assert.True(t, errors.Is(err, storage.ErrUnderflow))
}
