package operations

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

const (
	quitSentinel     = "q"
	affirmativeToken = "yes"
)

// Restorer is the slice of the Operator the interactive session needs.
type Restorer interface {
	ListBackups() ([]string, error)
	RestoreBackup(path string) error
}

// Session walks a human operator through restoring one backup: list the
// custom-format artifacts, take a 1-based selection, ask for explicit
// confirmation, then restore. Quitting, an invalid selection, or a negative
// confirmation all end the session cleanly without an error.
type Session struct {
	restorer Restorer
	in       *bufio.Reader
	out      io.Writer
}

func NewSession(restorer Restorer, in io.Reader, out io.Writer) *Session {
	return &Session{
		restorer: restorer,
		in:       bufio.NewReader(in),
		out:      out,
	}
}

// Run drives the session to one of its terminal states. It returns an error
// only for real failures (listing or restore); cancellation is a normal
// return.
func (s *Session) Run() error {
	backups, err := s.restorer.ListBackups()
	if err != nil {
		return fmt.Errorf("list backups: %w", err)
	}
	if len(backups) == 0 {
		fmt.Fprintln(s.out, "No backups found.")
		return nil
	}

	s.printBackups(backups)

	selected, ok, err := s.selectBackup(backups)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, "Restore cancelled.")
		return nil
	}

	confirmed, err := s.confirm(selected)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(s.out, "Restore cancelled.")
		return nil
	}

	if err := s.restorer.RestoreBackup(selected); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Restored %s.\n", filepath.Base(selected))
	return nil
}

func (s *Session) printBackups(backups []string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintln(s.out, bold("Available backups:"))

	for i, path := range backups {
		line := fmt.Sprintf("%3d. %s", i+1, filepath.Base(path))
		if info, err := os.Stat(path); err == nil {
			line += fmt.Sprintf("  %.2f MB  %s",
				float64(info.Size())/(1024*1024),
				info.ModTime().Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintln(s.out, line)
	}
}

// selectBackup prompts for a 1-based index. The quit sentinel, a
// non-numeric token, or an out-of-range index all report not-ok.
func (s *Session) selectBackup(backups []string) (string, bool, error) {
	fmt.Fprintf(s.out, "Select a backup to restore [1-%d, %s to quit]: ", len(backups), quitSentinel)

	input, err := s.readLine()
	if err != nil {
		return "", false, err
	}
	if strings.EqualFold(input, quitSentinel) {
		return "", false, nil
	}

	index, err := strconv.Atoi(input)
	if err != nil || index < 1 || index > len(backups) {
		return "", false, nil
	}
	return backups[index-1], true, nil
}

func (s *Session) confirm(path string) (bool, error) {
	warn := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(s.out, "%s Restore %s over the current database contents? [%s/no]: ",
		warn("This cannot be undone."), filepath.Base(path), affirmativeToken)

	input, err := s.readLine()
	if err != nil {
		return false, err
	}
	return strings.EqualFold(input, affirmativeToken), nil
}

// readLine reads one trimmed input line. EOF counts as an empty answer so a
// closed input stream cancels instead of erroring.
func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
