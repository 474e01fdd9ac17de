package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// resolvePrompt picks the prompt from, in order: the --file flag, the
// positional argument, piped stdin, then fallback.
func resolvePrompt(args []string, file string, stdin *os.File, fallback string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if len(args) > 0 {
		return args[0], nil
	}

	if isPiped(stdin) {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		if prompt := strings.TrimSpace(string(data)); prompt != "" {
			return prompt, nil
		}
	}

	return fallback, nil
}

func isPiped(f *os.File) bool {
	if f == nil {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}
