// Package auth collects credentials on the terminal and resolves which
// GitHub identity a command applies to.
package auth

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gnomegl/gitdash/internal/store"
	"golang.org/x/term"
)

// ReadSecret prompts on out and reads a secret from in. Terminal input is
// read without echo; anything else is read up to the first newline.
func ReadSecret(in *os.File, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)

	if term.IsTerminal(int(in.Fd())) {
		secret, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(secret), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ResolveIdentity returns arg when given, otherwise the identity saved by
// the last login. It returns "" when neither exists.
func ResolveIdentity(arg string, st store.Store) (string, error) {
	if identity := strings.TrimSpace(arg); identity != "" {
		return identity, nil
	}
	saved, err := st.Get(store.KeyIdentity)
	if err != nil {
		return "", fmt.Errorf("failed to read saved identity: %w", err)
	}
	return saved, nil
}
