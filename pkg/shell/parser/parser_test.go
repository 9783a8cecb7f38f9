package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharacterEntry(t *testing.T) {
	p := New(8)
	var buf []rune

	ev := p.Step('a', &buf)
	assert.Equal(t, Character, ev.Kind)
	assert.Equal(t, 'a', ev.Char)
	assert.Equal(t, []rune{'a'}, buf)
	assert.Equal(t, Normal, p.State())
}

func TestBackspace(t *testing.T) {
	p := New(8)
	buf := []rune{'a', 'b'}

	ev := p.Step(0x7F, &buf)
	assert.Equal(t, Backspace, ev.Kind)
	assert.Equal(t, []rune{'a'}, buf)

	buf = nil
	ev = p.Step(0x08, &buf)
	assert.Equal(t, None, ev.Kind)
}

func TestEnterAndTab(t *testing.T) {
	p := New(8)
	var buf []rune

	assert.Equal(t, Enter, p.Step('\r', &buf).Kind)
	assert.Equal(t, Enter, p.Step('\n', &buf).Kind)
	assert.Equal(t, Tab, p.Step('\t', &buf).Kind)
}

func TestBufferFullDiscardsSilently(t *testing.T) {
	p := New(1)
	buf := []rune{'a'}

	ev := p.Step('b', &buf)
	assert.Equal(t, None, ev.Kind)
	assert.Equal(t, []rune{'a'}, buf, "buffer unchanged when full")
}

func TestOtherControlCharIgnored(t *testing.T) {
	p := New(8)
	var buf []rune
	ev := p.Step(0x07, &buf) // BEL
	assert.Equal(t, None, ev.Kind)
	assert.Equal(t, Normal, p.State())
}

func TestDoubleEscapeClears(t *testing.T) {
	p := New(8)
	buf := []rune{'a', 'b', 'c'}

	assert.Equal(t, None, p.Step(0x1B, &buf).Kind)
	assert.Equal(t, EscapeStart, p.State())

	ev := p.Step(0x1B, &buf)
	assert.Equal(t, ClearAndRedraw, ev.Kind)
	assert.Empty(t, buf)
	assert.Equal(t, Normal, p.State())
}

func TestUpAndDownArrow(t *testing.T) {
	p := New(8)
	var buf []rune

	p.Step(0x1B, &buf)
	p.Step('[', &buf)
	ev := p.Step('A', &buf)
	assert.Equal(t, UpArrow, ev.Kind)
	assert.Equal(t, Normal, p.State())

	p.Step(0x1B, &buf)
	p.Step('[', &buf)
	ev = p.Step('B', &buf)
	assert.Equal(t, DownArrow, ev.Kind)
}

func TestUnknownEscapeSequenceSwallowed(t *testing.T) {
	p := New(8)
	var buf []rune

	p.Step(0x1B, &buf)
	p.Step('[', &buf)
	ev := p.Step('Z', &buf)
	assert.Equal(t, None, ev.Kind)
	assert.Equal(t, Normal, p.State())
}

func TestEscapeSequenceInnerBufferOverflowResets(t *testing.T) {
	p := New(8)
	var buf []rune

	p.Step(0x1B, &buf)
	p.Step('[', &buf)
	for i := 0; i < maxEscapeBuf-1; i++ {
		ev := p.Step('0', &buf)
		assert.Equal(t, None, ev.Kind)
	}
	assert.Equal(t, EscapeSequence, p.State())

	ev := p.Step('0', &buf)
	assert.Equal(t, None, ev.Kind)
	assert.Equal(t, Normal, p.State(), "inner buffer reaching the cap resets to Normal")
}

func TestBareEscapeThenOtherCharIsNotLost(t *testing.T) {
	p := New(8)
	var buf []rune

	p.Step(0x1B, &buf)
	assert.Equal(t, EscapeStart, p.State())

	ev := p.Step('x', &buf)
	assert.Equal(t, Character, ev.Kind)
	assert.Equal(t, 'x', ev.Char)
	assert.Equal(t, []rune{'x'}, buf)
	assert.Equal(t, Normal, p.State())
}

func TestParserNeverGetsStuck(t *testing.T) {
	p := New(16)
	var buf []rune
	inputs := []rune{0x1B, '[', 'A', 'a', 'b', 0x1B, 0x1B, '\t', '\r', 0x08, 0x1B, '['}
	for _, c := range inputs {
		p.Step(c, &buf)
	}
	assert.True(t, p.State() == Normal || p.State() == EscapeSequence || p.State() == EscapeStart)
}
