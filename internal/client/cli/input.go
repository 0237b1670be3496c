package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/lapsctl/internal/client/resolver"
	"golang.org/x/term"
)

// readPassword and isTerminal are test seams for golang.org/x/term.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// TerminalPrompter asks questions on the terminal. Prompts never interleave.
type TerminalPrompter struct {
	mu     sync.Mutex
	reader *bufio.Reader
	out    io.Writer
	fd     int
}

// NewTerminalPrompter reads answers from in and writes prompts to out. fd is
// the descriptor used for hidden input when it is a terminal; otherwise
// secrets are read from in like any other line.
func NewTerminalPrompter(in io.Reader, out io.Writer, fd int) *TerminalPrompter {
	return &TerminalPrompter{reader: bufio.NewReader(in), out: out, fd: fd}
}

// PromptSecret reads a secret without echo.
func (p *TerminalPrompter) PromptSecret(message string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !isTerminal(p.fd) {
		return GetSimpleText(p.reader, message, p.out)
	}

	if _, err := fmt.Fprint(p.out, message); err != nil {
		return "", err
	}
	pw, err := readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// PromptChoice lists candidates and reads the Jamf ID of the intended one.
// Entering q cancels.
func (p *TerminalPrompter) PromptChoice(identifier string, candidates []resolver.Candidate) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "Multiple devices match %q:\n", identifier)
	renderCandidates(p.out, candidates)

	answer, err := GetSimpleText(p.reader, "Enter the Jamf ID of the intended device (q to cancel): ", p.out)
	if err != nil {
		return "", err
	}
	if strings.EqualFold(answer, "q") {
		return "", resolver.ErrCancelled
	}
	return answer, nil
}

// PromptYesNo asks a yes/no question. Anything but y or yes is a no.
func (p *TerminalPrompter) PromptYesNo(message string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	answer, err := GetSimpleText(p.reader, message+" [y/N]: ", p.out)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
