package main

import (
	"bufio"
	"crypto/ed25519"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/complex-gh/babyjubhd"
	"github.com/mattn/go-tty"
	"github.com/tyler-smith/go-bip39"
	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/crypto/ssh"
	"golang.org/x/term"
	lang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// seedSource builds the seed source selected by the command line flags.
func seedSource() (babyjubhd.SeedSource, error) {
	var passphrase string
	if askPassphrase {
		pass, err := readPassword("Enter the BIP39 passphrase: ")
		_, _ = fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, err
		}
		passphrase = string(pass)
	}

	if sshKeyPath != "" {
		key, err := readSSHKey(sshKeyPath)
		if err != nil {
			return nil, err
		}
		return babyjubhd.SSHKey{Key: key, SeedPassphrase: seedPassphrase, Passphrase: passphrase}, nil
	}
	if seedPassphrase != "" {
		return nil, errors.New("--seed-passphrase requires --ssh-key")
	}

	phrase, err := readMnemonic(os.Stdin)
	if err != nil {
		return nil, err
	}
	return babyjubhd.Mnemonic{Phrase: phrase, Passphrase: passphrase}, nil
}

// readMnemonic reads the phrase from a pipe, or prompts for it on the tty.
func readMnemonic(stdin *os.File) (string, error) {
	if fi, _ := stdin.Stat(); fi != nil && (fi.Mode()&os.ModeNamedPipe) != 0 {
		return scanMnemonic(stdin)
	}
	phrase, err := readPassword("Enter the seed phrase: ")
	_, _ = fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return normalizeMnemonic(string(phrase))
}

func scanMnemonic(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("could not read seed phrase: %w", err)
		}
		return "", errors.New("no seed phrase on stdin")
	}
	return normalizeMnemonic(scanner.Text())
}

// normalizeMnemonic collapses runs of whitespace so pasted phrases produce
// the same seed as their canonical form.
func normalizeMnemonic(s string) (string, error) {
	phrase := strings.Join(strings.Fields(s), " ")
	if phrase == "" {
		return "", errors.New("empty seed phrase")
	}
	return phrase, nil
}

func readSSHKey(path string) (*ed25519.PrivateKey, error) {
	f, err := openKeyFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read key: %w", err)
	}
	defer f.Close() //nolint:errcheck
	bts, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("could not read key: %w", err)
	}

	key, err := parsePrivateKey(bts, nil)
	if err != nil && isPasswordError(err) {
		pass, err := askKeyPassphrase(path)
		if err != nil {
			return nil, err
		}
		key, err = parsePrivateKey(bts, pass)
		if err != nil {
			return nil, fmt.Errorf("could not parse key with passphrase: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("could not parse key: %w", err)
	}

	switch key := key.(type) {
	case *ed25519.PrivateKey:
		return key, nil
	default:
		return nil, fmt.Errorf("unknown key type: %T", key)
	}
}

func openKeyFile(path string) (*os.File, error) {
	if path == "-" {
		return os.Stdin, nil
	}

	resolvedPath, err := resolveKeyPath(path)
	if err != nil {
		return nil, err
	}

	// G304: resolvedPath is user-provided input, which is expected for a CLI tool
	f, err := os.Open(resolvedPath) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", resolvedPath, err)
	}
	return f, nil
}

// resolveKeyPath returns path if it exists. A bare file name that does not
// exist is looked up in the default SSH directory.
func resolveKeyPath(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	cleanedPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanedPath); dir != "." && dir != "" {
		return "", fmt.Errorf("could not open %s: %w", path, os.ErrNotExist)
	}
	pathLower := strings.ToLower(path)
	if strings.HasPrefix(pathLower, "./") || strings.HasPrefix(pathLower, "../") ||
		strings.HasPrefix(pathLower, ".\\") || strings.HasPrefix(pathLower, "..\\") {
		return "", fmt.Errorf("could not open %s: %w", path, os.ErrNotExist)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, ".ssh", filepath.Base(cleanedPath))
	if _, err := os.Stat(defaultPath); err != nil {
		return "", fmt.Errorf("could not open %s: %w", path, os.ErrNotExist)
	}
	return defaultPath, nil
}

func parsePrivateKey(bts, pass []byte) (interface{}, error) {
	if len(pass) == 0 {
		//nolint: wrapcheck
		return ssh.ParseRawPrivateKey(bts)
	}
	//nolint: wrapcheck
	return ssh.ParseRawPrivateKeyWithPassphrase(bts, pass)
}

func isPasswordError(err error) bool {
	var kerr *ssh.PassphraseMissingError
	return errors.As(err, &kerr)
}

func askKeyPassphrase(path string) ([]byte, error) {
	defer fmt.Fprintf(os.Stderr, "\n")
	return readPassword(fmt.Sprintf("Enter the passphrase to unlock %q: ", path))
}

func readPassword(msg string) ([]byte, error) {
	_, _ = fmt.Fprint(os.Stderr, msg)
	t, err := tty.Open()
	if err != nil {
		return nil, fmt.Errorf("could not open tty: %w", err)
	}
	defer t.Close()                                     //nolint: errcheck
	pass, err := term.ReadPassword(int(t.Input().Fd())) //nolint: gosec
	if err != nil {
		return nil, fmt.Errorf("could not read passphrase: %w", err)
	}
	return pass, nil
}

// setLanguage sets the language of the bip39 word list used by the mnemonic
// command.
func setLanguage(language string) error {
	list := getWordlist(language)
	if list == nil {
		return fmt.Errorf("this language is not supported")
	}
	bip39.SetWordList(list)
	return nil
}

func sanitizeLang(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

var wordLists = map[lang.Tag][]string{
	lang.Chinese:              wordlists.ChineseSimplified,
	lang.SimplifiedChinese:    wordlists.ChineseSimplified,
	lang.TraditionalChinese:   wordlists.ChineseTraditional,
	lang.Czech:                wordlists.Czech,
	lang.AmericanEnglish:      wordlists.English,
	lang.BritishEnglish:       wordlists.English,
	lang.English:              wordlists.English,
	lang.French:               wordlists.French,
	lang.Italian:              wordlists.Italian,
	lang.Japanese:             wordlists.Japanese,
	lang.Korean:               wordlists.Korean,
	lang.Spanish:              wordlists.Spanish,
	lang.EuropeanSpanish:      wordlists.Spanish,
	lang.LatinAmericanSpanish: wordlists.Spanish,
}

func getWordlist(language string) []string {
	language = sanitizeLang(language)
	tag := lang.Make(language)
	en := display.English.Languages()
	for t := range wordLists {
		if sanitizeLang(en.Name(t)) == language {
			tag = t
			break
		}
	}
	if tag == lang.Und {
		return nil
	}
	base, _ := tag.Base()
	btag := lang.MustParse(base.String())
	wl := wordLists[tag]
	if wl == nil {
		return wordLists[btag]
	}
	return wl
}
