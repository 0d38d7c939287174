// Package snake fills in command flags interactively when they were left
// unset on the command line.
package snake

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// SecretAnnotation marks a flag whose answer is masked while typed.
const SecretAnnotation = "daybook_secret"

var templates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

// MarkSecret masks the answer for the named flag.
func MarkSecret(cmd *cobra.Command, name string) {
	_ = cmd.Flags().SetAnnotation(name, SecretAnnotation, []string{"true"})
}

// PromptFlags asks for every named string flag that was not set. Flags
// whose default is empty must be answered.
func PromptFlags(cmd *cobra.Command, names ...string) error {
	for _, name := range names {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			return fmt.Errorf("snake: no flag %q", name)
		}
		if f.Changed {
			continue
		}
		answer, err := PromptFlagString(cmd, f)
		if err != nil {
			return err
		}
		if err := f.Value.Set(answer); err != nil {
			return err
		}
		f.Changed = true
	}
	return nil
}

// PromptFlagString reads one answer for f.
func PromptFlagString(cmd *cobra.Command, f *pflag.Flag) (string, error) {
	validate := func(input string) error {
		if strings.TrimSpace(input) == "" && f.DefValue == "" {
			return errors.New("empty")
		}
		return nil
	}

	prompt := promptui.Prompt{
		Label:     label(f),
		Default:   f.DefValue,
		Templates: templates,
		Validate:  validate,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    NopCloser(cmd.OutOrStdout()),
	}
	if _, secret := f.Annotations[SecretAnnotation]; secret {
		prompt.Mask = '*'
		prompt.Default = ""
	}

	result, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt for --%s: %w", f.Name, err)
	}
	if result == "" {
		result = f.DefValue
	}
	return strings.TrimSpace(result), nil
}

// Confirm asks a yes/no question; anything but a yes is a no.
func Confirm(cmd *cobra.Command, question string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     question,
		IsConfirm: true,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    NopCloser(cmd.OutOrStdout()),
	}
	result, err := prompt.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	yes, _ := ParseBool(result)
	return yes, nil
}

func label(f *pflag.Flag) string {
	if f.Usage == "" {
		return f.Name
	}
	return fmt.Sprintf("%s (%s)", f.Name, f.Usage)
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NopCloser returns a WriteCloser with a no-op Close method wrapping w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}
