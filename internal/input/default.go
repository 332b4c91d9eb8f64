package input

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/eiannone/keyboard"
	"github.com/rs/zerolog/log"
)

func printMenu(out io.Writer, title string, options []string) {
	fmt.Fprintln(out, title)
	for i, o := range options {
		fmt.Fprintf(out, "%2v) %v\n", i+1, o)
	}
	fmt.Fprint(out, "> ")
}

// KeyboardChooser picks an entry with a single key press.
type KeyboardChooser struct {
	Out io.Writer
}

func (c *KeyboardChooser) Choose(title string, options []string) (int, error) {
	printMenu(c.Out, title, options)

	keys, err := keyboard.GetKeys(8)
	if nil != err {
		return -1, fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			log.Warn().Err(err).Msg("Unable to close keyboard")
		}
	}()

	for key := range keys {
		if nil != key.Err {
			return -1, key.Err
		}
		if key.Key == keyboard.KeyEsc || key.Key == keyboard.KeyCtrlC {
			fmt.Fprintln(c.Out)
			return -1, ErrCancelled
		}
		if idx, ok := OptionIndex(key.Rune, len(options)); ok {
			fmt.Fprintln(c.Out, string(key.Rune))
			return idx, nil
		}
	}
	return -1, ErrCancelled
}

// LineChooser reads the entry number from a line of input, for pipes.
type LineChooser struct {
	In  *bufio.Reader
	Out io.Writer
}

func NewLineChooser(in io.Reader, out io.Writer) *LineChooser {
	return &LineChooser{In: bufio.NewReader(in), Out: out}
}

func (c *LineChooser) Choose(title string, options []string) (int, error) {
	printMenu(c.Out, title, options)

	line, err := c.In.ReadString('\n')
	if nil != err && (err != io.EOF || line == "") {
		return -1, ErrCancelled
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if nil != err || n < 1 || n > len(options) {
		return -1, fmt.Errorf("not a menu entry: %q", strings.TrimSpace(line))
	}
	return n - 1, nil
}
