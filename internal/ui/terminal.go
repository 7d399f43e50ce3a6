package ui

import (
	"fmt"
	"io"
	"strings"

	md "github.com/MichaelMure/go-term-markdown"
	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/recrsn/finsight/internal/config"
)

// Terminal handles the terminal user interface using pterm and readline
type Terminal struct {
	config   config.UIConfig
	readline *readline.Instance
}

// NewTerminal creates a new Terminal instance with history support
func NewTerminal(cfg config.UIConfig, historyFile string) (*Terminal, error) {
	if !cfg.ColorEnabled {
		pterm.DisableColor()
	}

	rlConfig := &readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		HistoryLimit:    1000,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    GetPathCompleter(),
	}

	instance, err := readline.NewEx(rlConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %v", err)
	}

	return &Terminal{
		config:   cfg,
		readline: instance,
	}, nil
}

// ShowHeader displays the application header
func (u *Terminal) ShowHeader() {
	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgBlue)).WithMargin(10)
	header.Println("Finsight - Financial Report Analyzer")
}

// AskInput reads one line of input with history support. An interrupt or EOF
// is reported as io.EOF so callers can exit cleanly.
func (u *Terminal) AskInput(prompt string) (string, error) {
	u.readline.SetPrompt(prompt)
	line, err := u.readline.Readline()
	if err == readline.ErrInterrupt || err == io.EOF {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// StartSpinner starts a spinner with the given text
func (u *Terminal) StartSpinner(text string) *pterm.SpinnerPrinter {
	if !u.config.ShowSpinner {
		fmt.Println(text + "...")
		return nil
	}

	spinner, _ := pterm.DefaultSpinner.Start(text)
	return spinner
}

// StopSpinner stops a spinner with success
func (u *Terminal) StopSpinner(spinner *pterm.SpinnerPrinter, text string) {
	if spinner == nil {
		fmt.Println(text)
		return
	}

	spinner.Success(text)
}

// StopSpinnerFail stops a spinner with failure
func (u *Terminal) StopSpinnerFail(spinner *pterm.SpinnerPrinter, text string) {
	if spinner == nil {
		pterm.Error.Println(text)
		return
	}

	spinner.Fail(text)
}

// PrintAgentLabel prints the agent label without a newline, ahead of a
// streamed answer.
func (u *Terminal) PrintAgentLabel() {
	pterm.FgLightCyan.Print("Agent: ")
}

// PrintAnswerChunk prints one streamed fragment of the final answer
func (u *Terminal) PrintAnswerChunk(chunk string) {
	fmt.Print(chunk)
}

// PrintAnswerDone terminates a streamed answer
func (u *Terminal) PrintAnswerDone() {
	fmt.Println()
}

// PrintAgentMessage prints a complete agent answer with markdown formatting
func (u *Terminal) PrintAgentMessage(message string) {
	u.PrintAgentLabel()
	fmt.Println(string(md.Render(message, 80, 0)))
}

// PrintError prints an error message
func (u *Terminal) PrintError(message string) {
	pterm.Error.Println(message)
}

// PrintSuccess prints a success message
func (u *Terminal) PrintSuccess(message string) {
	pterm.Success.Println(message)
}

// PrintInfo prints an informational message
func (u *Terminal) PrintInfo(message string) {
	pterm.Info.Println(message)
}

// Debugf prints a diagnostic trace line. Hidden unless pterm debug output is
// enabled.
func (u *Terminal) Debugf(format string, args ...any) {
	pterm.Debug.Printfln(format, args...)
}

// ClearScreen clears the terminal
func (u *Terminal) ClearScreen() {
	fmt.Print("\033[H\033[2J")
}

// Close releases the readline instance
func (u *Terminal) Close() {
	_ = u.readline.Close()
}
