package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/lapsctl/internal/client/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubTerminal(t *testing.T, terminal bool, pw string, err error) {
	t.Helper()
	oldRead, oldIs := readPassword, isTerminal
	readPassword = func(int) ([]byte, error) { return []byte(pw), err }
	isTerminal = func(int) bool { return terminal }
	t.Cleanup(func() {
		readPassword, isTerminal = oldRead, oldIs
	})
}

func TestGetSimpleText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"trims newline", "hello\n", "hello", false},
		{"trims spaces", "  padded  \n", "padded", false},
		{"partial line at EOF", "tail", "tail", false},
		{"empty input", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetSimpleText(bufio.NewReader(strings.NewReader(tt.input)), "> ", &out)
			if tt.wantErr {
				require.ErrorIs(t, err, io.EOF)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "> ", out.String())
		})
	}
}

func TestPromptSecret_Terminal(t *testing.T) {
	stubTerminal(t, true, "s3cret", nil)

	var out bytes.Buffer
	p := NewTerminalPrompter(strings.NewReader(""), &out, 0)
	got, err := p.PromptSecret("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Equal(t, "Password: \n", out.String())
}

func TestPromptSecret_TerminalError(t *testing.T) {
	boom := errors.New("tty gone")
	stubTerminal(t, true, "", boom)

	p := NewTerminalPrompter(strings.NewReader(""), io.Discard, 0)
	_, err := p.PromptSecret("Password: ")
	require.ErrorIs(t, err, boom)
}

func TestPromptSecret_PipedInput(t *testing.T) {
	stubTerminal(t, false, "unused", nil)

	p := NewTerminalPrompter(strings.NewReader("from-pipe\n"), io.Discard, 0)
	got, err := p.PromptSecret("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "from-pipe", got)
}

func TestPromptChoice(t *testing.T) {
	candidates := []resolver.Candidate{
		{JamfID: "11", Name: "mac", Serial: "S11", ManagementID: "m-11"},
		{JamfID: "12", Name: "mac", Serial: "S12", ManagementID: "m-12"},
	}

	t.Run("returns typed id", func(t *testing.T) {
		var out bytes.Buffer
		p := NewTerminalPrompter(strings.NewReader("12\n"), &out, 0)
		got, err := p.PromptChoice("mac", candidates)
		require.NoError(t, err)
		assert.Equal(t, "12", got)
		assert.Contains(t, out.String(), `Multiple devices match "mac"`)
		assert.Contains(t, out.String(), "S11")
		assert.Contains(t, out.String(), "m-12")
	})

	t.Run("q cancels", func(t *testing.T) {
		p := NewTerminalPrompter(strings.NewReader("Q\n"), io.Discard, 0)
		_, err := p.PromptChoice("mac", candidates)
		require.ErrorIs(t, err, resolver.ErrCancelled)
	})

	t.Run("eof", func(t *testing.T) {
		p := NewTerminalPrompter(strings.NewReader(""), io.Discard, 0)
		_, err := p.PromptChoice("mac", candidates)
		require.ErrorIs(t, err, io.EOF)
	})
}

func TestPromptYesNo(t *testing.T) {
	tests := map[string]bool{
		"y\n":     true,
		"YES\n":   true,
		"n\n":     false,
		"\n":      false,
		"maybe\n": false,
		"":        false,
	}
	for input, want := range tests {
		p := NewTerminalPrompter(strings.NewReader(input), io.Discard, 0)
		got, err := p.PromptYesNo("Apply?")
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}
}
