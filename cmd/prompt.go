package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// errQuit is returned when the user answers a prompt with q.
var errQuit = errors.New("quit requested")

const quitToken = "q"

// prompter asks questions on a line-based terminal.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask prints question and returns the answer without its line ending. End
// of input counts as q.
func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				fmt.Fprintln(p.out)
				return quitToken, nil
			}
		} else {
			return "", err
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// askPositiveInt repeats question until the answer is a positive integer.
// It returns errQuit when the user answers q.
func (p *prompter) askPositiveInt(question string) (int, error) {
	for {
		ans, err := p.ask(question)
		if err != nil {
			return 0, err
		}
		ans = strings.TrimSpace(ans)
		if ans == quitToken {
			return 0, errQuit
		}
		if !isNumeric(ans) {
			fmt.Fprint(p.out, "\n**Please enter numeric characters only**\n\n")
			continue
		}
		n, err := strconv.Atoi(ans)
		if err != nil || n <= 0 {
			fmt.Fprint(p.out, "\n**Please enter non-zero numeric characters only**\n\n")
			continue
		}
		return n, nil
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
